package repository

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, storeID, id string) (*entity.Customer, error)
	GetByDocument(ctx context.Context, storeID, document string) (*entity.Customer, error)
	// FindByName busca por nombre exacto sin distinguir mayúsculas.
	FindByName(ctx context.Context, storeID, name string) (*entity.Customer, error)
	ListByStore(ctx context.Context, storeID string) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, storeID, id string) (bool, error)
	Count(ctx context.Context, storeID string) (int, error)
}
