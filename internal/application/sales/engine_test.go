package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/sales"
	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/application/usecase"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/memory"
)

type fixture struct {
	scope     tenancy.Scope
	other     tenancy.Scope
	engine    *sales.Engine
	models    *usecase.ModelUseCase
	units     *usecase.UnitUseCase
	customers *usecase.CustomerUseCase
	unitRepo  repository.UnitRepository
	cache     *spyCache
}

type spyCache struct {
	mu    sync.Mutex
	calls []string
}

func (s *spyCache) InvalidateStore(_ context.Context, storeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, storeID)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.NewDB()
	stores := memory.NewStoreRepository(db)
	now := time.Now()
	require.NoError(t, stores.Create(ctx, &entity.Store{ID: "s1", Name: "Loja 1", Slug: "loja1", Active: true, CreatedAt: now}))
	require.NoError(t, stores.Create(ctx, &entity.Store{ID: "s2", Name: "Loja 2", Slug: "loja2", Active: true, CreatedAt: now}))
	dir := tenancy.NewDirectory(stores)
	super := entity.Actor{Role: entity.RoleSuperAdmin}
	scope, err := dir.Access(ctx, super, "loja1")
	require.NoError(t, err)
	other, err := dir.Access(ctx, super, "loja2")
	require.NoError(t, err)

	modelRepo := memory.NewModelRepository(db)
	unitRepo := memory.NewUnitRepository(db)
	customerRepo := memory.NewCustomerRepository(db)
	cache := &spyCache{}
	return &fixture{
		scope:     scope,
		other:     other,
		engine:    sales.NewEngine(memory.NewTxRunner(db), customerRepo, memory.NewSaleRepository(db), nil, cache),
		models:    usecase.NewModelUseCase(modelRepo, unitRepo, nil),
		units:     usecase.NewUnitUseCase(modelRepo, unitRepo, nil),
		customers: usecase.NewCustomerUseCase(customerRepo, nil),
		unitRepo:  unitRepo,
		cache:     cache,
	}
}

func (f *fixture) model(t *testing.T, name string) string {
	t.Helper()
	m, err := f.models.Create(context.Background(), f.scope, dto.CreateModelRequest{Name: name})
	require.NoError(t, err)
	return m.ID
}

func (f *fixture) unit(t *testing.T, modelID string, price int64) string {
	t.Helper()
	u, err := f.units.Create(context.Background(), f.scope, dto.CreateUnitRequest{
		ModelID: modelID, Color: "Black", Storage: "128GB", Price: decimal.NewFromInt(price),
	})
	require.NoError(t, err)
	return u.ID
}

func (f *fixture) customer(t *testing.T) string {
	t.Helper()
	c, err := f.customers.Create(context.Background(), f.scope, dto.CreateCustomerRequest{
		Name: "Maria", Document: "123.456.789-01", Contact: "11987654321",
	})
	require.NoError(t, err)
	return c.ID
}

func (f *fixture) sold(t *testing.T, unitID string) bool {
	t.Helper()
	u, err := f.unitRepo.GetByID(context.Background(), f.scope.StoreID(), unitID)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.Sold
}

// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCompleto_VentaYReversion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unitID := f.unit(t, f.model(t, "X"), 100)
	customerID := f.customer(t)

	sale, err := f.engine.Create(ctx, f.scope, dto.CreateSaleRequest{
		CustomerID: customerID, UnitIDs: []string{unitID}, PaymentMethod: "pix",
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Maria", sale.CustomerName)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "X", sale.Items[0].ModelName)
	assert.True(t, f.sold(t, unitID))
	assert.Equal(t, []string{"s1"}, f.cache.calls)

	require.NoError(t, f.engine.Delete(ctx, f.scope, sale.ID))
	assert.False(t, f.sold(t, unitID))

	_, err = f.engine.Get(ctx, f.scope, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	again, err := f.engine.Create(ctx, f.scope, dto.CreateSaleRequest{
		CustomerID: customerID, UnitIDs: []string{unitID}, PaymentMethod: "pix",
	})
	require.NoError(t, err, "tras revertir, la misma unidad se vuelve a vender")
	assert.NotEqual(t, sale.ID, again.ID)
}

func TestCreate_TotalEsSumaDeLineas(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, "iPhone 13")
	ids := []string{f.unit(t, m, 1500), f.unit(t, m, 2300), f.unit(t, m, 99)}

	sale, err := f.engine.Create(context.Background(), f.scope, dto.CreateSaleRequest{
		CustomerID: f.customer(t), UnitIDs: ids, PaymentMethod: "dinheiro",
	})
	require.NoError(t, err)
	sum := decimal.Zero
	for i, it := range sale.Items {
		assert.Equal(t, ids[i], it.UnitID, "se respeta el orden recibido")
		sum = sum.Add(it.Price)
	}
	assert.True(t, sum.Equal(sale.Total))
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(3899)))
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unitID := f.unit(t, f.model(t, "X"), 100)
	customerID := f.customer(t)

	cases := []struct {
		name string
		in   dto.CreateSaleRequest
		want error
	}{
		{"sin unidades", dto.CreateSaleRequest{CustomerID: customerID, PaymentMethod: "pix"}, domain.ErrInvalidInput},
		{"sin forma de pago", dto.CreateSaleRequest{CustomerID: customerID, UnitIDs: []string{unitID}}, domain.ErrInvalidInput},
		{"unidad repetida", dto.CreateSaleRequest{CustomerID: customerID, UnitIDs: []string{unitID, unitID}, PaymentMethod: "pix"}, domain.ErrInvalidInput},
		{"cliente inexistente", dto.CreateSaleRequest{CustomerID: "nope", UnitIDs: []string{unitID}, PaymentMethod: "pix"}, domain.ErrNotFound},
		{"unidad inexistente", dto.CreateSaleRequest{CustomerID: customerID, UnitIDs: []string{"nope"}, PaymentMethod: "pix"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.engine.Create(ctx, f.scope, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.False(t, f.sold(t, unitID))
	assert.Empty(t, f.cache.calls)
}

func TestCreate_UnidadYaVendidaSinCommitParcial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.model(t, "X")
	a, b := f.unit(t, m, 100), f.unit(t, m, 200)
	customerID := f.customer(t)

	_, err := f.engine.Create(ctx, f.scope, dto.CreateSaleRequest{CustomerID: customerID, UnitIDs: []string{b}, PaymentMethod: "pix"})
	require.NoError(t, err)

	_, err = f.engine.Create(ctx, f.scope, dto.CreateSaleRequest{CustomerID: customerID, UnitIDs: []string{a, b}, PaymentMethod: "pix"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, f.sold(t, a), "la unidad válida no debe quedar marcada")

	list, err := f.engine.List(ctx, f.scope)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_ConcurrenciaUnaSolaVentaPorUnidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unitID := f.unit(t, f.model(t, "X"), 100)
	customerID := f.customer(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.Create(ctx, f.scope, dto.CreateSaleRequest{CustomerID: customerID, UnitIDs: []string{unitID}, PaymentMethod: "pix"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, ok)
}

func TestCreate_PrecioActualNoRetroactivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.model(t, "X")
	first, second := f.unit(t, m, 100), f.unit(t, m, 100)
	customerID := f.customer(t)

	old, err := f.engine.Create(ctx, f.scope, dto.CreateSaleRequest{CustomerID: customerID, UnitIDs: []string{first}, PaymentMethod: "pix"})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(150)
	_, err = f.units.Update(ctx, f.scope, first, dto.UpdateUnitRequest{Price: &newPrice})
	require.NoError(t, err)
	_, err = f.units.Update(ctx, f.scope, second, dto.UpdateUnitRequest{Price: &newPrice})
	require.NoError(t, err)

	fresh, err := f.engine.Create(ctx, f.scope, dto.CreateSaleRequest{CustomerID: customerID, UnitIDs: []string{second}, PaymentMethod: "pix"})
	require.NoError(t, err)
	assert.True(t, fresh.Total.Equal(newPrice), "la venta nueva usa el precio vigente")

	stored, err := f.engine.Get(ctx, f.scope, old.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(100)), "la venta histórica no cambia")
	assert.True(t, stored.Items[0].Price.Equal(decimal.NewFromInt(100)))
}

func TestCreate_ModeloRemovidoYClienteRemovido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.model(t, "X")
	unitID := f.unit(t, m, 100)
	customerID := f.customer(t)

	// La unidad se borra y se vuelve a crear sin modelo para simular un modelo eliminado.
	u, err := f.unitRepo.GetByID(ctx, f.scope.StoreID(), unitID)
	require.NoError(t, err)
	_, err = f.unitRepo.Delete(ctx, f.scope.StoreID(), unitID)
	require.NoError(t, err)
	u.ModelID = "modelo-borrado"
	require.NoError(t, f.unitRepo.Create(ctx, u))

	sale, err := f.engine.Create(ctx, f.scope, dto.CreateSaleRequest{CustomerID: customerID, UnitIDs: []string{unitID}, PaymentMethod: "pix"})
	require.NoError(t, err)
	assert.Equal(t, entity.RemovedModelName, sale.Items[0].ModelName)

	require.NoError(t, f.customers.Delete(ctx, f.scope, customerID))
	got, err := f.engine.Get(ctx, f.scope, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RemovedCustomerName, got.CustomerName)
}

func TestDelete_UnidadBorradaSeOmite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.model(t, "X")
	a, b := f.unit(t, m, 100), f.unit(t, m, 100)

	sale, err := f.engine.Create(ctx, f.scope, dto.CreateSaleRequest{CustomerID: f.customer(t), UnitIDs: []string{a, b}, PaymentMethod: "pix"})
	require.NoError(t, err)
	require.NoError(t, f.units.Delete(ctx, f.scope, a))

	require.NoError(t, f.engine.Delete(ctx, f.scope, sale.ID))
	assert.False(t, f.sold(t, b))

	assert.ErrorIs(t, f.engine.Delete(ctx, f.scope, sale.ID), domain.ErrNotFound)
}

func TestUpdate_SoloPagoYObservacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sale, err := f.engine.Create(ctx, f.scope, dto.CreateSaleRequest{
		CustomerID: f.customer(t), UnitIDs: []string{f.unit(t, f.model(t, "X"), 100)}, PaymentMethod: "pix",
	})
	require.NoError(t, err)

	_, err = f.engine.Update(ctx, f.scope, sale.ID, dto.UpdateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	empty := ""
	_, err = f.engine.Update(ctx, f.scope, sale.ID, dto.UpdateSaleRequest{PaymentMethod: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	note := "entregue"
	_, err = f.engine.Update(ctx, f.scope, "nope", dto.UpdateSaleRequest{Note: &note})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	card := "cartao_credito"
	got, err := f.engine.Update(ctx, f.scope, sale.ID, dto.UpdateSaleRequest{PaymentMethod: &card, Note: &note})
	require.NoError(t, err)
	assert.Equal(t, card, got.PaymentMethod)
	assert.Equal(t, note, got.Note)
	assert.True(t, got.Total.Equal(sale.Total))
}

func TestAislamientoEntreTiendas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unitID := f.unit(t, f.model(t, "X"), 100)
	customerID := f.customer(t)
	sale, err := f.engine.Create(ctx, f.scope, dto.CreateSaleRequest{CustomerID: customerID, UnitIDs: []string{unitID}, PaymentMethod: "pix"})
	require.NoError(t, err)

	_, err = f.engine.Get(ctx, f.other, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.engine.Delete(ctx, f.other, sale.ID), domain.ErrNotFound)

	_, err = f.engine.Create(ctx, f.other, dto.CreateSaleRequest{CustomerID: customerID, UnitIDs: []string{unitID}, PaymentMethod: "pix"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.engine.List(ctx, f.other)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecord_VentaHistorica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.model(t, "X")
	unitID := f.unit(t, m, 100)
	customerID := f.customer(t)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	sale, err := f.engine.Record(ctx, f.scope, sales.HistoricalSale{
		CustomerID: customerID, UnitIDs: []string{unitID, "desconocida"}, PaymentMethod: "pix", Date: date,
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, date, sale.Date)
	assert.True(t, f.sold(t, unitID))

	synthetic, err := f.engine.Record(ctx, f.scope, sales.HistoricalSale{
		CustomerID: customerID, UnitIDs: []string{unitID}, DeclaredTotal: decimal.NewFromInt(350),
	})
	require.NoError(t, err, "la unidad ya vendida se omite")
	require.Len(t, synthetic.Items, 1)
	assert.Equal(t, sales.ImportedSaleLineName, synthetic.Items[0].ModelName)
	assert.True(t, synthetic.Total.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, entity.PaymentCash, synthetic.PaymentMethod)

	_, err = f.engine.Record(ctx, f.scope, sales.HistoricalSale{CustomerID: customerID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
