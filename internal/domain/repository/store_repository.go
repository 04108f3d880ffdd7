package repository

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (tenant).
// Los Get devuelven (nil, nil) si no existe.
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Store, error)
	List(ctx context.Context) ([]*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
}
