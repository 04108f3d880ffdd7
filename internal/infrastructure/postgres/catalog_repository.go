package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var (
	_ repository.ModelRepository = (*ModelRepo)(nil)
	_ repository.UnitRepository  = (*UnitRepo)(nil)
)

// ── Modelos ──────────────────────────────────────────────────────────────────

const modelColumns = `id, store_id, name, brand, created_at`

// ModelRepo implementación de ModelRepository (usable con pool o tx).
type ModelRepo struct {
	q Querier
}

// NewModelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewModelRepository(q Querier) *ModelRepo {
	return &ModelRepo{q: q}
}

func scanModel(row scanner) (*entity.ProductModel, error) {
	var m entity.ProductModel
	if err := row.Scan(&m.ID, &m.StoreID, &m.Name, &m.Brand, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModelRepo) Create(ctx context.Context, m *entity.ProductModel) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_models (id, store_id, name, brand, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.StoreID, m.Name, m.Brand, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert model: %w", err)
	}
	return nil
}

func (r *ModelRepo) get(ctx context.Context, where string, args ...any) (*entity.ProductModel, error) {
	m, err := scanModel(r.q.QueryRow(ctx, `SELECT `+modelColumns+` FROM product_models WHERE `+where, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get model: %w", err)
	}
	return m, nil
}

func (r *ModelRepo) GetByID(ctx context.Context, storeID, id string) (*entity.ProductModel, error) {
	return r.get(ctx, `store_id = $1 AND id = $2`, storeID, id)
}

// sameNameWhere compara nombres sin mayúsculas ni espacios en los extremos,
// igual que el backend en memoria.
const sameNameWhere = `store_id = $1 AND lower(btrim(name)) = lower(btrim($2))`

func (r *ModelRepo) FindByName(ctx context.Context, storeID, name string) (*entity.ProductModel, error) {
	return r.get(ctx, sameNameWhere+` ORDER BY created_at, id LIMIT 1`, storeID, name)
}

func (r *ModelRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.ProductModel, error) {
	rows, err := r.q.Query(ctx, `SELECT `+modelColumns+` FROM product_models WHERE store_id = $1 ORDER BY created_at, id`, storeID)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return collect(rows, scanModel)
}

func (r *ModelRepo) Update(ctx context.Context, m *entity.ProductModel) error {
	tag, err := r.q.Exec(ctx, `UPDATE product_models SET name = $3, brand = $4 WHERE store_id = $1 AND id = $2`,
		m.StoreID, m.ID, m.Name, m.Brand)
	if err != nil {
		return fmt.Errorf("update model: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ModelRepo) Delete(ctx context.Context, storeID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_models WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return false, fmt.Errorf("delete model: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ModelRepo) Count(ctx context.Context, storeID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product_models WHERE store_id = $1`, storeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count models: %w", err)
	}
	return n, nil
}

// ── Unidades ─────────────────────────────────────────────────────────────────

const unitColumns = `id, store_id, model_id, color, storage, battery, imei, price, sold, created_at`

// UnitRepo implementación de UnitRepository (usable con pool o tx).
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

func scanUnit(row scanner) (*entity.ProductUnit, error) {
	var u entity.ProductUnit
	if err := row.Scan(&u.ID, &u.StoreID, &u.ModelID, &u.Color, &u.Storage, &u.Battery, &u.IMEI, &u.Price, &u.Sold, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste una unidad. IMEI repetido en la tienda => domain.ErrDuplicate.
func (r *UnitRepo) Create(ctx context.Context, u *entity.ProductUnit) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_units (id, store_id, model_id, color, storage, battery, imei, price, sold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.StoreID, u.ModelID, u.Color, u.Storage, u.Battery, u.IMEI, u.Price, u.Sold, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) get(ctx context.Context, where string, args ...any) (*entity.ProductUnit, error) {
	u, err := scanUnit(r.q.QueryRow(ctx, `SELECT `+unitColumns+` FROM product_units WHERE `+where, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

func (r *UnitRepo) GetByID(ctx context.Context, storeID, id string) (*entity.ProductUnit, error) {
	return r.get(ctx, `store_id = $1 AND id = $2`, storeID, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *UnitRepo) GetForUpdate(ctx context.Context, storeID, id string) (*entity.ProductUnit, error) {
	return r.get(ctx, `store_id = $1 AND id = $2 FOR UPDATE`, storeID, id)
}

func (r *UnitRepo) GetByIMEI(ctx context.Context, storeID, imei string) (*entity.ProductUnit, error) {
	if imei == "" {
		return nil, nil
	}
	return r.get(ctx, `store_id = $1 AND imei = $2`, storeID, imei)
}

func (r *UnitRepo) List(ctx context.Context, storeID string, f repository.UnitFilter) ([]*entity.ProductUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM product_units WHERE store_id = $1`
	args := []any{storeID}
	if f.ModelID != "" {
		args = append(args, f.ModelID)
		query += ` AND model_id = $` + strconv.Itoa(len(args))
	}
	if f.Sold != nil {
		args = append(args, *f.Sold)
		query += ` AND sold = $` + strconv.Itoa(len(args))
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return collect(rows, scanUnit)
}

func (r *UnitRepo) Update(ctx context.Context, u *entity.ProductUnit) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE product_units SET model_id = $3, color = $4, storage = $5, battery = $6, imei = $7, price = $8
		WHERE store_id = $1 AND id = $2`,
		u.StoreID, u.ID, u.ModelID, u.Color, u.Storage, u.Battery, u.IMEI, u.Price,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UnitRepo) Delete(ctx context.Context, storeID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_units WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return false, fmt.Errorf("delete unit: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkSold actualización condicional: solo afecta la fila si sold=false.
func (r *UnitRepo) MarkSold(ctx context.Context, storeID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE product_units SET sold = TRUE WHERE store_id = $1 AND id = $2 AND sold = FALSE`, storeID, id)
	if err != nil {
		return false, fmt.Errorf("mark unit sold: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UnitRepo) MarkUnsold(ctx context.Context, storeID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE product_units SET sold = FALSE WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return false, fmt.Errorf("mark unit unsold: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UnitRepo) CountAvailable(ctx context.Context, storeID, modelID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM product_units
		WHERE store_id = $1 AND sold = FALSE AND ($2 = '' OR model_id = $2)`, storeID, modelID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count available units: %w", err)
	}
	return n, nil
}

func (r *UnitRepo) CountByModel(ctx context.Context, storeID, modelID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product_units WHERE store_id = $1 AND model_id = $2`, storeID, modelID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count units by model: %w", err)
	}
	return n, nil
}
