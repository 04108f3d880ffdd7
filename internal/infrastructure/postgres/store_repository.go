package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, name, slug, active, logo_url, created_at, updated_at`

// StoreRepo implementación de StoreRepository.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

func scanStore(row scanner) (*entity.Store, error) {
	var s entity.Store
	if err := row.Scan(&s.ID, &s.Name, &s.Slug, &s.Active, &s.LogoURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una tienda. Slug duplicado => domain.ErrDuplicate.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stores (id, name, slug, active, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.Slug, s.Active, s.LogoURL, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func (r *StoreRepo) get(ctx context.Context, where string, arg any) (*entity.Store, error) {
	s, err := scanStore(r.q.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE `+where, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

// GetByID obtiene una tienda por ID (activa o no).
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	if id == "" {
		return nil, nil
	}
	return r.get(ctx, `id = $1`, id)
}

// GetBySlug obtiene una tienda por slug.
func (r *StoreRepo) GetBySlug(ctx context.Context, slug string) (*entity.Store, error) {
	return r.get(ctx, `slug = $1`, slug)
}

// List lista todas las tiendas por fecha de creación.
func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx, `SELECT `+storeColumns+` FROM stores ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return collect(rows, scanStore)
}

// Update modifica nombre, slug, estado y logo.
func (r *StoreRepo) Update(ctx context.Context, s *entity.Store) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stores SET name = $2, slug = $3, active = $4, logo_url = $5, updated_at = $6
		WHERE id = $1`,
		s.ID, s.Name, s.Slug, s.Active, s.LogoURL, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
