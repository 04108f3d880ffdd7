package sales

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción. Los repositorios recibidos
// están atados a ella; si fn devuelve error se hace rollback.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		models repository.ModelRepository,
		units repository.UnitRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, store *entity.Store, sale *entity.Sale, customer *entity.Customer) ([]byte, error)
}

// CacheInvalidator descarta los agregados cacheados de una tienda tras escribir ventas.
type CacheInvalidator interface {
	InvalidateStore(ctx context.Context, storeID string)
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateStore(context.Context, string) {}
