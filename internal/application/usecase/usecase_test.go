package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/application/usecase"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

type catalog struct {
	scope     tenancy.Scope
	other     tenancy.Scope
	models    *usecase.ModelUseCase
	units     *usecase.UnitUseCase
	customers *usecase.CustomerUseCase
}

func newCatalog(t *testing.T) *catalog {
	t.Helper()
	ctx := context.Background()
	db := memory.NewDB()
	stores := memory.NewStoreRepository(db)
	require.NoError(t, stores.Create(ctx, &entity.Store{ID: "s1", Name: "A", Slug: "a", Active: true}))
	require.NoError(t, stores.Create(ctx, &entity.Store{ID: "s2", Name: "B", Slug: "b", Active: true}))
	dir := tenancy.NewDirectory(stores)
	scope, err := dir.Access(ctx, entity.Actor{Role: entity.RoleStoreAdmin, StoreID: "s1"}, "a")
	require.NoError(t, err)
	other, err := dir.Access(ctx, entity.Actor{Role: entity.RoleStoreAdmin, StoreID: "s2"}, "b")
	require.NoError(t, err)

	modelRepo := memory.NewModelRepository(db)
	unitRepo := memory.NewUnitRepository(db)
	return &catalog{
		scope:     scope,
		other:     other,
		models:    usecase.NewModelUseCase(modelRepo, unitRepo, nil),
		units:     usecase.NewUnitUseCase(modelRepo, unitRepo, nil),
		customers: usecase.NewCustomerUseCase(memory.NewCustomerRepository(db), nil),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestModel_DeleteConUnidadesEsConflicto(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	m, err := c.models.Create(ctx, c.scope, dto.CreateModelRequest{Name: "iPhone 13", Brand: "Apple"})
	require.NoError(t, err)
	u, err := c.units.Create(ctx, c.scope, dto.CreateUnitRequest{ModelID: m.ID, Color: "Black", Storage: "128GB", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	linked, err := c.models.HasLinkedUnits(ctx, c.scope, m.ID)
	require.NoError(t, err)
	assert.True(t, linked)
	assert.ErrorIs(t, c.models.Delete(ctx, c.scope, m.ID), domain.ErrConflict)

	got, err := c.models.Get(ctx, c.scope, m.ID)
	require.NoError(t, err, "el modelo sigue existiendo")
	assert.Equal(t, 1, got.AvailableUnits)

	require.NoError(t, c.units.Delete(ctx, c.scope, u.ID))
	require.NoError(t, c.models.Delete(ctx, c.scope, m.ID))
	_, err = c.models.Get(ctx, c.scope, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnit_CreateValidaciones(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	m, err := c.models.Create(ctx, c.scope, dto.CreateModelRequest{Name: "X"})
	require.NoError(t, err)

	_, err = c.units.Create(ctx, c.scope, dto.CreateUnitRequest{ModelID: "nope", Color: "Black", Storage: "128GB"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.units.Create(ctx, c.scope, dto.CreateUnitRequest{ModelID: m.ID, Storage: "128GB"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.units.Create(ctx, c.scope, dto.CreateUnitRequest{ModelID: m.ID, Color: "Black"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.units.Create(ctx, c.scope, dto.CreateUnitRequest{ModelID: m.ID, Color: "Black", Storage: "128GB", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.units.Create(ctx, c.scope, dto.CreateUnitRequest{ModelID: m.ID, Color: "Black", Storage: "128GB", Battery: ptr(101)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.units.Create(ctx, c.other, dto.CreateUnitRequest{ModelID: m.ID, Color: "Black", Storage: "128GB"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el modelo de otra tienda no existe para esta")

	_, err = c.units.Create(ctx, c.scope, dto.CreateUnitRequest{ModelID: m.ID, Color: "Black", Storage: "128GB", IMEI: "356"})
	require.NoError(t, err)
	_, err = c.units.Create(ctx, c.scope, dto.CreateUnitRequest{ModelID: m.ID, Color: "Blue", Storage: "128GB", IMEI: "356"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUnit_UpdateParcialYFiltros(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	m, err := c.models.Create(ctx, c.scope, dto.CreateModelRequest{Name: "X"})
	require.NoError(t, err)
	u, err := c.units.Create(ctx, c.scope, dto.CreateUnitRequest{ModelID: m.ID, Color: "Black", Storage: "128GB", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	_, err = c.units.Update(ctx, c.scope, u.ID, dto.UpdateUnitRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := c.units.Update(ctx, c.scope, u.ID, dto.UpdateUnitRequest{Color: ptr("Gold")})
	require.NoError(t, err)
	assert.Equal(t, "Gold", got.Color)
	assert.Equal(t, "128GB", got.Storage, "los campos no enviados no cambian")
	assert.Equal(t, "X", got.ModelName)

	sold := false
	list, err := c.units.List(ctx, c.scope, repository.UnitFilter{ModelID: m.ID, Sold: &sold})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = c.units.List(ctx, c.other, repository.UnitFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestModel_UpdateSinCampos(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	m, err := c.models.Create(ctx, c.scope, dto.CreateModelRequest{Name: "X"})
	require.NoError(t, err)

	_, err = c.models.Update(ctx, c.scope, m.ID, dto.UpdateModelRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := c.models.Update(ctx, c.scope, m.ID, dto.UpdateModelRequest{Brand: ptr("Apple")})
	require.NoError(t, err)
	assert.Equal(t, "X", got.Name)
	assert.Equal(t, "Apple", got.Brand)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomer_Validaciones(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	_, err := c.customers.Create(ctx, c.scope, dto.CreateCustomerRequest{Name: "Ana", Document: "123", Contact: "11987654321"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "cpf")

	_, err = c.customers.Create(ctx, c.scope, dto.CreateCustomerRequest{Name: "Ana", Document: "123.456.789-01", Contact: "123"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "whatsapp")

	list, _ := c.customers.List(ctx, c.scope)
	assert.Empty(t, list, "sin escrituras parciales")

	got, err := c.customers.Create(ctx, c.scope, dto.CreateCustomerRequest{Name: "Ana", Document: "123.456.789-01", Contact: "1198765432"})
	require.NoError(t, err)
	assert.Equal(t, "12345678901", got.Document)
	assert.Equal(t, "1198765432", got.Contact)

	// En la actualización solo se valida lo que cambia.
	upd, err := c.customers.Update(ctx, c.scope, got.ID, dto.UpdateCustomerRequest{Email: ptr("ana@x.com")})
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", upd.Email)

	_, err = c.customers.Update(ctx, c.scope, got.ID, dto.UpdateCustomerRequest{Contact: ptr("99")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.customers.Get(ctx, c.other, got.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tiendas y usuarios
// ──────────────────────────────────────────────────────────────────────────────

type fakeStats struct{}

func (fakeStats) StoreStats(context.Context, string) (dto.StoreStats, error) {
	return dto.StoreStats{TotalModels: 3, Revenue: decimal.NewFromInt(10)}, nil
}

type fakeAssets struct {
	saved map[string][]byte
	err   error
}

func (f *fakeAssets) Save(_ context.Context, name string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved[name] = data
	return "/uploads/" + name, nil
}

func newStoreUseCase(assets usecase.AssetStorage) *usecase.StoreUseCase {
	return usecase.NewStoreUseCase(memory.NewStoreRepository(memory.NewDB()), fakeStats{}, assets, 5<<20)
}

func TestStore_CreateYVerify(t *testing.T) {
	uc := newStoreUseCase(nil)
	ctx := context.Background()

	s, err := uc.Create(ctx, dto.CreateStoreRequest{Name: "Isaac Imports"})
	require.NoError(t, err)
	assert.Equal(t, "isaacimports", s.Slug)
	assert.True(t, s.Active)

	other, err := uc.Create(ctx, dto.CreateStoreRequest{Name: "Outra", Slug: "Isaac-Imports"})
	require.NoError(t, err)
	assert.Equal(t, "isaac-imports", other.Slug, "el slug enviado tiene prioridad y conserva el guion")
	_, err = uc.Create(ctx, dto.CreateStoreRequest{Name: "ISAAC imports"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	v, err := uc.Verify(ctx, "isaacimports")
	require.NoError(t, err)
	assert.True(t, v.Exists)
	assert.Equal(t, "Isaac Imports", v.Name)

	_, err = uc.Update(ctx, s.ID, dto.UpdateStoreRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, s.ID, dto.UpdateStoreRequest{Active: ptr(false)})
	require.NoError(t, err)
	_, err = uc.Verify(ctx, "isaacimports")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Get(ctx, s.ID)
	require.NoError(t, err, "por ID se obtiene aunque esté inactiva")
	assert.Equal(t, 3, got.Stats.TotalModels)
}

func TestStore_UploadLogo(t *testing.T) {
	assets := &fakeAssets{saved: map[string][]byte{}}
	uc := newStoreUseCase(assets)
	ctx := context.Background()
	s, err := uc.Create(ctx, dto.CreateStoreRequest{Name: "Loja"})
	require.NoError(t, err)

	_, err = uc.UploadLogo(ctx, s.ID, "logo.exe", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UploadLogo(ctx, s.ID, "logo.png", make([]byte, 5<<20+1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UploadLogo(ctx, "nope", "logo.png", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.UploadLogo(ctx, s.ID, "Logo.PNG", []byte("png"))
	require.NoError(t, err)
	assert.Contains(t, out.LogoURL, "/uploads/logos/"+s.ID)
	assert.Len(t, assets.saved, 1)

	assets.err = errors.New("disco lleno")
	_, err = uc.UploadLogo(ctx, s.ID, "logo.png", []byte("png"))
	assert.Error(t, err)
}

func TestUser_Admin(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDB()
	stores := memory.NewStoreRepository(db)
	require.NoError(t, stores.Create(ctx, &entity.Store{ID: "s1", Name: "Loja", Slug: "loja", Active: true, CreatedAt: time.Now()}))
	uc := usecase.NewUserUseCase(memory.NewUserRepository(db), stores)

	_, err := uc.Create(ctx, dto.CreateUserRequest{Email: "a@x.com", Password: "p", Role: entity.RoleStoreAdmin})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "store_admin exige tienda")

	_, err = uc.Create(ctx, dto.CreateUserRequest{Email: "a@x.com", Password: "p", Role: entity.RoleStoreAdmin, StoreID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Email: "a@x.com", Password: "p", Role: "vendedor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err := uc.Create(ctx, dto.CreateUserRequest{Email: "A@x.com", Password: "p", Role: entity.RoleStoreAdmin, StoreID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "Loja", u.StoreName)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Email: "a@X.com", Password: "p", Role: entity.RoleSuperAdmin})
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Loja", list[0].StoreName)

	_, err = uc.Update(ctx, u.ID, dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	upd, err := uc.Update(ctx, u.ID, dto.UpdateUserRequest{Role: ptr(entity.RoleSuperAdmin)})
	require.NoError(t, err)
	assert.Empty(t, upd.StoreID, "super_admin no tiene tienda")

	require.NoError(t, uc.Delete(ctx, u.ID))
	assert.ErrorIs(t, uc.Delete(ctx, u.ID), domain.ErrNotFound)
}
