package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

// ImportedSaleLineName nombre de la línea sintética cuando una venta importada
// no referencia unidades del catálogo.
const ImportedSaleLineName = "Venta importada"

// HistoricalSale venta proveniente de una importación: ya ocurrió fuera del
// sistema, así que trae su propia fecha y un total declarado.
type HistoricalSale struct {
	CustomerID    string
	UnitIDs       []string
	DeclaredTotal decimal.Decimal
	PaymentMethod string
	Note          string
	Date          time.Time
}

// Record registra una venta histórica. Las unidades inexistentes o ya vendidas
// se omiten en lugar de abortar. Si ninguna unidad resuelve y el total declarado
// es positivo se guarda una única línea sintética con ese valor, de modo que el
// total siga siendo la suma de las líneas.
func (e *Engine) Record(ctx context.Context, scope tenancy.Scope, in HistoricalSale) (*entity.Sale, error) {
	if in.CustomerID == "" {
		return nil, domain.InvalidInput("la venta no tiene cliente")
	}
	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = entity.PaymentCash
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		StoreID:       scope.StoreID(),
		CustomerID:    in.CustomerID,
		PaymentMethod: payment,
		Note:          strings.TrimSpace(in.Note),
	}
	err := e.tx.RunSale(ctx, func(models repository.ModelRepository, units repository.UnitRepository, saleRepo repository.SaleRepository) error {
		items, err := snapshot(ctx, scope.StoreID(), dedupe(in.UnitIDs), models, units, true)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			if !in.DeclaredTotal.IsPositive() {
				return domain.InvalidInput("la venta no tiene productos ni valor total")
			}
			items = []entity.SaleItem{{ModelName: ImportedSaleLineName, Price: in.DeclaredTotal}}
		}
		if err := markSold(ctx, scope.StoreID(), items, units); err != nil {
			return err
		}
		return commit(ctx, sale, items, date, saleRepo)
	})
	if err != nil {
		return nil, err
	}
	e.cache.InvalidateStore(ctx, scope.StoreID())
	return sale, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
