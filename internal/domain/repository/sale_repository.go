package repository

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, storeID, id string) (*entity.Sale, error)
	// ListByStore devuelve las ventas en orden de inserción.
	ListByStore(ctx context.Context, storeID string) ([]*entity.Sale, error)
	// UpdateDetails modifica solo forma de pago y observación.
	UpdateDetails(ctx context.Context, storeID, id, paymentMethod, note string) (bool, error)
	Delete(ctx context.Context, storeID, id string) (bool, error)
	Count(ctx context.Context, storeID string) (int, error)
}
