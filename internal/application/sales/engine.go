// Package sales contiene el motor de ventas: validación en dos pasadas,
// marca condicional de unidades vendidas y reversión compensatoria.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

// Engine orquesta la creación, corrección y reversión de ventas.
type Engine struct {
	tx        TxRunner
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	receipts  ReceiptGenerator
	cache     CacheInvalidator
}

// NewEngine construye el motor. receipts y cache pueden ser nil.
func NewEngine(tx TxRunner, customers repository.CustomerRepository, sales repository.SaleRepository, receipts ReceiptGenerator, cache CacheInvalidator) *Engine {
	if cache == nil {
		cache = noopInvalidator{}
	}
	return &Engine{tx: tx, customers: customers, sales: sales, receipts: receipts, cache: cache}
}

// Create registra una venta. Primero valida todas las unidades (existen y no
// están vendidas) y solo después las marca; ninguna venta inválida deja unidades
// marcadas. El total sale del precio actual de cada unidad.
func (e *Engine) Create(ctx context.Context, scope tenancy.Scope, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.UnitIDs) == 0 {
		return nil, domain.InvalidInput("la venta debe incluir al menos una unidad")
	}
	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		return nil, domain.InvalidInput("la forma de pago es obligatoria")
	}
	seen := make(map[string]struct{}, len(in.UnitIDs))
	for _, id := range in.UnitIDs {
		if _, dup := seen[id]; dup {
			return nil, domain.InvalidInput(fmt.Sprintf("unidad %s repetida en la venta", id))
		}
		seen[id] = struct{}{}
	}
	customer, err := e.customers.GetByID(ctx, scope.StoreID(), in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFound("cliente no encontrado")
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		StoreID:       scope.StoreID(),
		CustomerID:    customer.ID,
		PaymentMethod: payment,
		Note:          strings.TrimSpace(in.Note),
	}
	err = e.tx.RunSale(ctx, func(models repository.ModelRepository, units repository.UnitRepository, saleRepo repository.SaleRepository) error {
		items, err := snapshot(ctx, scope.StoreID(), in.UnitIDs, models, units, false)
		if err != nil {
			return err
		}
		if err := markSold(ctx, scope.StoreID(), items, units); err != nil {
			return err
		}
		return commit(ctx, sale, items, time.Now().UTC(), saleRepo)
	})
	if err != nil {
		return nil, err
	}
	e.cache.InvalidateStore(ctx, scope.StoreID())
	return toSaleResponse(sale, customer.Name), nil
}

// snapshot primera pasada: resuelve cada unidad en el orden recibido y arma la
// foto de la línea. Con lenient, las unidades inexistentes o vendidas se omiten.
func snapshot(ctx context.Context, storeID string, unitIDs []string, models repository.ModelRepository, units repository.UnitRepository, lenient bool) ([]entity.SaleItem, error) {
	items := make([]entity.SaleItem, 0, len(unitIDs))
	names := make(map[string]string)
	for _, id := range unitIDs {
		u, err := units.GetForUpdate(ctx, storeID, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			if lenient {
				continue
			}
			return nil, domain.NotFound(fmt.Sprintf("unidad %s no encontrada", id))
		}
		if u.Sold {
			if lenient {
				continue
			}
			return nil, domain.Conflict(fmt.Sprintf("unidad %s ya vendida", id))
		}
		name, ok := names[u.ModelID]
		if !ok {
			m, err := models.GetByID(ctx, storeID, u.ModelID)
			if err != nil {
				return nil, err
			}
			name = entity.RemovedModelName
			if m != nil {
				name = m.Name
			}
			names[u.ModelID] = name
		}
		items = append(items, entity.SaleItem{
			UnitID:    u.ID,
			ModelID:   u.ModelID,
			ModelName: name,
			Color:     u.Color,
			Storage:   u.Storage,
			Price:     u.Price,
		})
	}
	return items, nil
}

// markSold segunda pasada: marca condicional (solo si sold=false). Si otra
// transacción ganó la carrera, la actualización no afecta filas y se aborta.
func markSold(ctx context.Context, storeID string, items []entity.SaleItem, units repository.UnitRepository) error {
	for _, it := range items {
		if it.UnitID == "" {
			continue
		}
		ok, err := units.MarkSold(ctx, storeID, it.UnitID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.Conflict(fmt.Sprintf("unidad %s ya vendida", it.UnitID))
		}
	}
	return nil
}

func commit(ctx context.Context, sale *entity.Sale, items []entity.SaleItem, date time.Time, saleRepo repository.SaleRepository) error {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	now := time.Now().UTC()
	sale.Items = items
	sale.Total = total
	sale.Date = date
	sale.CreatedAt = now
	return saleRepo.Create(ctx, sale)
}

// Delete revierte una venta: devuelve a disponible cada unidad que todavía
// exista y elimina el registro.
func (e *Engine) Delete(ctx context.Context, scope tenancy.Scope, id string) error {
	err := e.tx.RunSale(ctx, func(_ repository.ModelRepository, units repository.UnitRepository, saleRepo repository.SaleRepository) error {
		sale, err := saleRepo.GetByID(ctx, scope.StoreID(), id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.NotFound("venta no encontrada")
		}
		for _, it := range sale.Items {
			if it.UnitID == "" {
				continue
			}
			if _, err := units.MarkUnsold(ctx, scope.StoreID(), it.UnitID); err != nil {
				return err
			}
		}
		ok, err := saleRepo.Delete(ctx, scope.StoreID(), id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFound("venta no encontrada")
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.cache.InvalidateStore(ctx, scope.StoreID())
	return nil
}

// Update corrige forma de pago y/o observación.
func (e *Engine) Update(ctx context.Context, scope tenancy.Scope, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if in.PaymentMethod == nil && in.Note == nil {
		return nil, domain.InvalidInput("ningún campo para actualizar")
	}
	sale, err := e.sales.GetByID(ctx, scope.StoreID(), id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta no encontrada")
	}
	payment, note := sale.PaymentMethod, sale.Note
	if in.PaymentMethod != nil {
		payment = strings.TrimSpace(*in.PaymentMethod)
		if payment == "" {
			return nil, domain.InvalidInput("la forma de pago no puede estar vacía")
		}
	}
	if in.Note != nil {
		note = strings.TrimSpace(*in.Note)
	}
	ok, err := e.sales.UpdateDetails(ctx, scope.StoreID(), id, payment, note)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFound("venta no encontrada")
	}
	sale.PaymentMethod, sale.Note = payment, note
	name, err := e.customerName(ctx, scope.StoreID(), sale.CustomerID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, name), nil
}

// List devuelve las ventas de la tienda en orden de registro.
func (e *Engine) List(ctx context.Context, scope tenancy.Scope) ([]*dto.SaleResponse, error) {
	list, err := e.sales.ListByStore(ctx, scope.StoreID())
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		name, ok := names[s.CustomerID]
		if !ok {
			if name, err = e.customerName(ctx, scope.StoreID(), s.CustomerID); err != nil {
				return nil, err
			}
			names[s.CustomerID] = name
		}
		out = append(out, toSaleResponse(s, name))
	}
	return out, nil
}

// Get obtiene una venta con el nombre del cliente.
func (e *Engine) Get(ctx context.Context, scope tenancy.Scope, id string) (*dto.SaleResponse, error) {
	sale, err := e.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	name, err := e.customerName(ctx, scope.StoreID(), sale.CustomerID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, name), nil
}

// Receipt genera el PDF del comprobante de la venta.
func (e *Engine) Receipt(ctx context.Context, scope tenancy.Scope, id string) ([]byte, error) {
	if e.receipts == nil {
		return nil, fmt.Errorf("generador de comprobantes no configurado")
	}
	sale, err := e.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	customer, err := e.customers.GetByID(ctx, scope.StoreID(), sale.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &entity.Customer{ID: sale.CustomerID, Name: entity.RemovedCustomerName}
	}
	store := scope.Store()
	return e.receipts.GenerateReceipt(ctx, &store, sale, customer)
}

func (e *Engine) find(ctx context.Context, scope tenancy.Scope, id string) (*entity.Sale, error) {
	sale, err := e.sales.GetByID(ctx, scope.StoreID(), id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta no encontrada")
	}
	return sale, nil
}

func (e *Engine) customerName(ctx context.Context, storeID, customerID string) (string, error) {
	c, err := e.customers.GetByID(ctx, storeID, customerID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return entity.RemovedCustomerName, nil
	}
	return c.Name, nil
}

func toSaleResponse(s *entity.Sale, customerName string) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			UnitID:    it.UnitID,
			ModelID:   it.ModelID,
			ModelName: it.ModelName,
			Color:     it.Color,
			Storage:   it.Storage,
			Price:     it.Price,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		Date:          s.Date,
		Items:         items,
		Total:         s.Total,
		CustomerID:    s.CustomerID,
		CustomerName:  customerName,
		PaymentMethod: s.PaymentMethod,
		Note:          s.Note,
	}
}
