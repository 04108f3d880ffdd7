// Package tenancy resuelve tiendas por slug y decide si un actor puede operar sobre ellas.
// Toda operación acotada a una tienda recibe un Scope, que solo este paquete construye.
package tenancy

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

// Scope es una tienda ya autorizada para un actor.
type Scope struct {
	store entity.Store
	actor entity.Actor
}

// StoreID devuelve el ID de la tienda. Un Scope vacío devuelve "" y no coincide con ningún registro.
func (s Scope) StoreID() string { return s.store.ID }

// Store devuelve una copia de la tienda.
func (s Scope) Store() entity.Store { return s.store }

// Actor devuelve el actor autorizado.
func (s Scope) Actor() entity.Actor { return s.actor }

// Directory implementa la resolución y autorización de tiendas.
type Directory struct {
	stores repository.StoreRepository
}

// NewDirectory construye el directorio.
func NewDirectory(stores repository.StoreRepository) *Directory {
	return &Directory{stores: stores}
}

// Resolve devuelve la tienda activa con ese slug. Las inactivas se reportan como no encontradas.
func (d *Directory) Resolve(ctx context.Context, slug string) (*entity.Store, error) {
	store, err := d.stores.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if store == nil || !store.Active {
		return nil, domain.NotFound("tienda no encontrada")
	}
	return store, nil
}

// Authorize verifica que el actor pueda operar sobre la tienda.
// super_admin opera sobre cualquiera; store_admin solo sobre la suya.
func (d *Directory) Authorize(store *entity.Store, actor entity.Actor) (*entity.Store, error) {
	if actor.IsPlatform() {
		return store, nil
	}
	if actor.Role != entity.RoleStoreAdmin || actor.StoreID == "" || actor.StoreID != store.ID {
		return nil, domain.Forbidden("acceso denegado a esta tienda")
	}
	return store, nil
}

// Access resuelve el slug y autoriza al actor en un solo paso.
func (d *Directory) Access(ctx context.Context, actor entity.Actor, slug string) (Scope, error) {
	store, err := d.Resolve(ctx, slug)
	if err != nil {
		return Scope{}, err
	}
	if _, err := d.Authorize(store, actor); err != nil {
		return Scope{}, err
	}
	return Scope{store: *store, actor: actor}, nil
}

// GetByID busca la tienda por ID, incluidas las inactivas (rutas administrativas).
func (d *Directory) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	store, err := d.stores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.NotFound("tienda no encontrada")
	}
	return store, nil
}

// AdminAccess autoriza a un super_admin sobre una tienda por ID, activa o no.
func (d *Directory) AdminAccess(ctx context.Context, actor entity.Actor, storeID string) (Scope, error) {
	if !actor.IsPlatform() {
		return Scope{}, domain.Forbidden("se requiere rol super_admin")
	}
	store, err := d.GetByID(ctx, storeID)
	if err != nil {
		return Scope{}, err
	}
	return Scope{store: *store, actor: actor}, nil
}
