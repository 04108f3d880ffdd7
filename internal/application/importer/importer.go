package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/sales"
	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/application/usecase"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
	"github.com/jhoicas/CellStock-api/internal/domain/rules"
)

const (
	maxErrors  = 20
	maxSamples = 10
)

// Deps dependencias del importador.
type Deps struct {
	Models       *usecase.ModelUseCase
	Units        *usecase.UnitUseCase
	Customers    *usecase.CustomerUseCase
	Sales        *sales.Engine
	ModelRepo    repository.ModelRepository
	UnitRepo     repository.UnitRepository
	CustomerRepo repository.CustomerRepository
	Mappings     repository.IDMappingRepository
	Cache        sales.CacheInvalidator
}

// Importer aplica lotes de registros externos a una tienda. Cada registro se
// procesa por separado; un fallo queda en el resumen y no detiene el lote.
type Importer struct {
	d   Deps
	now func() time.Time
}

// New construye el importador.
func New(d Deps) *Importer {
	return &Importer{d: d, now: func() time.Time { return time.Now().UTC() }}
}

// outcome resultado de un registro: creado o reconocido como existente.
type outcome struct {
	created bool
	label   string
}

// Import clasifica (si kind es auto), valida y aplica cada registro.
func (im *Importer) Import(ctx context.Context, scope tenancy.Scope, kind Kind, rows []Row) (*dto.ImportSummary, error) {
	if len(rows) == 0 {
		return nil, domain.InvalidInput("el archivo no contiene registros")
	}
	if kind == KindAuto || kind == "" {
		detected, err := Classify(rows[0])
		if err != nil {
			return nil, err
		}
		kind = detected
	}

	sum := &dto.ImportSummary{
		Kind:         string(kind),
		TotalRecords: len(rows),
		Errors:       []string{},
		Details:      dto.ImportDetails{SampleCreated: []string{}, SampleSkipped: []string{}},
	}
	for i, raw := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := im.apply(ctx, scope, kind, raw)
		if err != nil {
			if len(sum.Errors) < maxErrors {
				sum.Errors = append(sum.Errors, fmt.Sprintf("registro %d: %s", i+1, err.Error()))
			}
			continue
		}
		if out.created {
			sum.Imported++
			if len(sum.Details.SampleCreated) < maxSamples {
				sum.Details.SampleCreated = append(sum.Details.SampleCreated, out.label)
			}
		} else if len(sum.Details.SampleSkipped) < maxSamples {
			sum.Details.SampleSkipped = append(sum.Details.SampleSkipped, out.label)
		}
	}
	sum.Success = len(sum.Errors) == 0
	if sum.Imported > 0 && im.d.Cache != nil {
		im.d.Cache.InvalidateStore(ctx, scope.StoreID())
	}
	return sum, nil
}

func (im *Importer) apply(ctx context.Context, scope tenancy.Scope, kind Kind, raw Row) (outcome, error) {
	rec, err := decode(kind, raw, im.now())
	if err != nil {
		return outcome{}, err
	}
	switch r := rec.(type) {
	case ModelRecord:
		return im.importModel(ctx, scope, r)
	case CustomerRecord:
		return im.importCustomer(ctx, scope, r)
	case ProductRecord:
		return im.importProduct(ctx, scope, r)
	case SaleRecord:
		return im.importSale(ctx, scope, r)
	}
	return outcome{}, domain.InvalidInput("tipo de registro desconocido")
}

// ── modelos ──────────────────────────────────────────────────────────────────

func (im *Importer) importModel(ctx context.Context, scope tenancy.Scope, r ModelRecord) (outcome, error) {
	m, created, err := im.resolveModel(ctx, scope, r.ExternalID, r.Name, r.Brand)
	if err != nil {
		return outcome{}, err
	}
	return outcome{created: created, label: m.Name}, nil
}

// resolveModel busca por mapeo, luego por nombre (sin mayúsculas) y si no
// existe lo crea. En todos los casos registra el mapeo del ID externo.
func (im *Importer) resolveModel(ctx context.Context, scope tenancy.Scope, externalID, name, brand string) (*entity.ProductModel, bool, error) {
	storeID := scope.StoreID()
	if externalID != "" {
		id, ok, err := im.d.Mappings.Get(ctx, storeID, entity.MappingModel, externalID)
		if err != nil {
			return nil, false, err
		}
		if ok {
			m, err := im.d.ModelRepo.GetByID(ctx, storeID, id)
			if err != nil {
				return nil, false, err
			}
			if m != nil {
				return m, false, nil
			}
		}
	}
	if name == "" {
		return nil, false, domain.NotFound(fmt.Sprintf("modelo %s no importado", externalID))
	}
	m, err := im.d.ModelRepo.FindByName(ctx, storeID, name)
	if err != nil {
		return nil, false, err
	}
	created := false
	if m == nil {
		if m, err = im.d.Models.CreateEntity(ctx, scope, dto.CreateModelRequest{Name: name, Brand: brand}); err != nil {
			return nil, false, err
		}
		created = true
	}
	if err := im.remember(ctx, storeID, entity.MappingModel, externalID, m.ID); err != nil {
		return nil, false, err
	}
	return m, created, nil
}

// ── clientes ─────────────────────────────────────────────────────────────────

func (im *Importer) importCustomer(ctx context.Context, scope tenancy.Scope, r CustomerRecord) (outcome, error) {
	c, created, err := im.resolveCustomer(ctx, scope, r)
	if err != nil {
		return outcome{}, err
	}
	return outcome{created: created, label: c.Name}, nil
}

// resolveCustomer busca por mapeo, luego por documento y luego por nombre.
// Si no existe lo crea con las mismas validaciones que la API.
func (im *Importer) resolveCustomer(ctx context.Context, scope tenancy.Scope, r CustomerRecord) (*entity.Customer, bool, error) {
	storeID := scope.StoreID()
	if r.ExternalID != "" {
		id, ok, err := im.d.Mappings.Get(ctx, storeID, entity.MappingCustomer, r.ExternalID)
		if err != nil {
			return nil, false, err
		}
		if ok {
			c, err := im.d.CustomerRepo.GetByID(ctx, storeID, id)
			if err != nil {
				return nil, false, err
			}
			if c != nil {
				return c, false, nil
			}
		}
	}
	var (
		c   *entity.Customer
		err error
	)
	if doc := rules.Digits(r.Document); doc != "" {
		if c, err = im.d.CustomerRepo.GetByDocument(ctx, storeID, doc); err != nil {
			return nil, false, err
		}
	}
	if c == nil && r.Name != "" {
		if c, err = im.d.CustomerRepo.FindByName(ctx, storeID, r.Name); err != nil {
			return nil, false, err
		}
	}
	created := false
	if c == nil {
		if r.Name == "" {
			return nil, false, domain.InvalidInput("no se pudo resolver el cliente")
		}
		c, err = im.d.Customers.CreateEntity(ctx, scope, dto.CreateCustomerRequest{
			Name:     r.Name,
			Document: r.Document,
			Contact:  r.Contact,
			Email:    r.Email,
			Phone:    r.Phone,
			Address:  r.Address,
		})
		if err != nil {
			return nil, false, err
		}
		created = true
	}
	if err := im.remember(ctx, storeID, entity.MappingCustomer, r.ExternalID, c.ID); err != nil {
		return nil, false, err
	}
	return c, created, nil
}

// ── productos ────────────────────────────────────────────────────────────────

func (im *Importer) importProduct(ctx context.Context, scope tenancy.Scope, r ProductRecord) (outcome, error) {
	storeID := scope.StoreID()
	if r.ExternalID != "" {
		id, ok, err := im.d.Mappings.Get(ctx, storeID, entity.MappingProduct, r.ExternalID)
		if err != nil {
			return outcome{}, err
		}
		if ok {
			u, err := im.d.UnitRepo.GetByID(ctx, storeID, id)
			if err != nil {
				return outcome{}, err
			}
			if u != nil {
				return outcome{label: productLabel(r)}, nil
			}
		}
	}
	if r.IMEI != "" {
		u, err := im.d.UnitRepo.GetByIMEI(ctx, storeID, r.IMEI)
		if err != nil {
			return outcome{}, err
		}
		if u != nil {
			if err := im.remember(ctx, storeID, entity.MappingProduct, r.ExternalID, u.ID); err != nil {
				return outcome{}, err
			}
			return outcome{label: productLabel(r)}, nil
		}
	}
	m, _, err := im.resolveModel(ctx, scope, r.ModelRef, r.ModelName, "")
	if err != nil {
		return outcome{}, err
	}
	u, _, err := im.d.Units.CreateEntity(ctx, scope, dto.CreateUnitRequest{
		ModelID: m.ID,
		Color:   r.Color,
		Storage: r.Storage,
		Battery: r.Battery,
		IMEI:    r.IMEI,
		Price:   r.Price,
	})
	if err != nil {
		return outcome{}, err
	}
	if err := im.remember(ctx, storeID, entity.MappingProduct, r.ExternalID, u.ID); err != nil {
		return outcome{}, err
	}
	if r.ModelName == "" {
		r.ModelName = m.Name
	}
	return outcome{created: true, label: productLabel(r)}, nil
}

func productLabel(r ProductRecord) string {
	label := r.ModelName
	if label == "" {
		label = "modelo " + r.ModelRef
	}
	if r.Color != "" {
		label += " " + r.Color
	}
	if r.Storage != "" {
		label += " " + r.Storage
	}
	return label
}

// ── ventas ───────────────────────────────────────────────────────────────────

// importSale no deduplica: cada registro con cliente resoluble genera una venta.
func (im *Importer) importSale(ctx context.Context, scope tenancy.Scope, r SaleRecord) (outcome, error) {
	storeID := scope.StoreID()
	c, _, err := im.resolveCustomer(ctx, scope, CustomerRecord{
		ExternalID: r.CustomerRef,
		Name:       r.CustomerName,
		Document:   r.CustomerDocument,
		Contact:    r.CustomerContact,
	})
	if err != nil {
		return outcome{}, fmt.Errorf("cliente: %w", err)
	}
	unitIDs := make([]string, 0, len(r.ProductRefs))
	for _, ref := range r.ProductRefs {
		id, ok, err := im.d.Mappings.Get(ctx, storeID, entity.MappingProduct, ref)
		if err != nil {
			return outcome{}, err
		}
		if ok {
			unitIDs = append(unitIDs, id)
			continue
		}
		u, err := im.d.UnitRepo.GetByIMEI(ctx, storeID, ref)
		if err != nil {
			return outcome{}, err
		}
		if u != nil {
			unitIDs = append(unitIDs, u.ID)
		}
	}
	sale, err := im.d.Sales.Record(ctx, scope, sales.HistoricalSale{
		CustomerID:    c.ID,
		UnitIDs:       unitIDs,
		DeclaredTotal: r.Total,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
		Date:          r.Date,
	})
	if err != nil {
		return outcome{}, err
	}
	return outcome{created: true, label: fmt.Sprintf("%s %s", c.Name, sale.Total.StringFixed(2))}, nil
}

func (im *Importer) remember(ctx context.Context, storeID, kind, externalID, internalID string) error {
	if externalID == "" {
		return nil
	}
	return im.d.Mappings.Put(ctx, entity.IDMapping{StoreID: storeID, Kind: kind, ExternalID: externalID, InternalID: internalID})
}
