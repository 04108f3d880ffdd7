package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, store_id, date, items, total, customer_id, payment_method, note, created_at`

// SaleRepo implementación de SaleRepository. Las líneas se guardan como JSONB.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row scanner) (*entity.Sale, error) {
	var (
		s     entity.Sale
		items []byte
	)
	if err := row.Scan(&s.ID, &s.StoreID, &s.Date, &items, &s.Total, &s.CustomerID, &s.PaymentMethod, &s.Note, &s.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &s.Items); err != nil {
		return nil, fmt.Errorf("decode sale items: %w", err)
	}
	return &s, nil
}

// Create persiste la venta con su foto de líneas.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("encode sale items: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO sales (id, store_id, date, items, total, customer_id, payment_method, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.StoreID, s.Date, items, s.Total, s.CustomerID, s.PaymentMethod, s.Note, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta de la tienda.
func (r *SaleRepo) GetByID(ctx context.Context, storeID, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE store_id = $1 AND id = $2`, storeID, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListByStore lista las ventas en orden de registro.
func (r *SaleRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales WHERE store_id = $1 ORDER BY seq`, storeID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return collect(rows, scanSale)
}

// UpdateDetails corrige forma de pago y observación; las líneas no se tocan.
func (r *SaleRepo) UpdateDetails(ctx context.Context, storeID, id, paymentMethod, note string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE sales SET payment_method = $3, note = $4 WHERE store_id = $1 AND id = $2`,
		storeID, id, paymentMethod, note)
	if err != nil {
		return false, fmt.Errorf("update sale: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete elimina la venta; false si no existía en la tienda.
func (r *SaleRepo) Delete(ctx context.Context, storeID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return false, fmt.Errorf("delete sale: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Count cantidad de ventas de la tienda.
func (r *SaleRepo) Count(ctx context.Context, storeID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE store_id = $1`, storeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}
