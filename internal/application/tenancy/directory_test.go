package tenancy_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/memory"
)

func newDirectory(t *testing.T) *tenancy.Directory {
	t.Helper()
	repo := memory.NewStoreRepository(memory.NewDB())
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, repo.Create(ctx, &entity.Store{ID: "a", Name: "Loja A", Slug: "lojaa", Active: true, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &entity.Store{ID: "b", Name: "Loja B", Slug: "lojab", Active: true, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &entity.Store{ID: "c", Name: "Loja C", Slug: "lojac", Active: false, CreatedAt: now}))
	return tenancy.NewDirectory(repo)
}

func TestResolve(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()

	s, err := d.Resolve(ctx, "lojaa")
	require.NoError(t, err)
	assert.Equal(t, "a", s.ID)

	_, err = d.Resolve(ctx, "lojac")
	assert.ErrorIs(t, err, domain.ErrNotFound, "inactiva se trata como no encontrada")

	_, err = d.Resolve(ctx, "noexiste")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s, err = d.GetByID(ctx, "c")
	require.NoError(t, err, "por ID se obtienen también las inactivas")
	assert.False(t, s.Active)
}

func TestAccess_Politica(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()

	super := entity.Actor{UserID: "u0", Role: entity.RoleSuperAdmin}
	adminA := entity.Actor{UserID: "u1", Role: entity.RoleStoreAdmin, StoreID: "a"}
	sinTienda := entity.Actor{UserID: "u2", Role: entity.RoleStoreAdmin}
	rolRaro := entity.Actor{UserID: "u3", Role: "vendedor", StoreID: "a"}

	scope, err := d.Access(ctx, super, "lojab")
	require.NoError(t, err)
	assert.Equal(t, "b", scope.StoreID())

	scope, err = d.Access(ctx, adminA, "lojaa")
	require.NoError(t, err)
	assert.Equal(t, "a", scope.StoreID())
	assert.Equal(t, adminA, scope.Actor())

	_, err = d.Access(ctx, adminA, "lojab")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = d.Access(ctx, sinTienda, "lojaa")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = d.Access(ctx, rolRaro, "lojaa")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdminAccess(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()

	scope, err := d.AdminAccess(ctx, entity.Actor{Role: entity.RoleSuperAdmin}, "c")
	require.NoError(t, err)
	assert.Equal(t, "lojac", scope.Store().Slug)

	_, err = d.AdminAccess(ctx, entity.Actor{Role: entity.RoleStoreAdmin, StoreID: "c"}, "c")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = d.AdminAccess(ctx, entity.Actor{Role: entity.RoleSuperAdmin}, "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScopeVacio(t *testing.T) {
	var s tenancy.Scope
	assert.Empty(t, s.StoreID())
}
