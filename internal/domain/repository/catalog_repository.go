package repository

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
)

// ModelRepository define el puerto de persistencia para ProductModel.
// Todas las operaciones están acotadas a la tienda.
type ModelRepository interface {
	Create(ctx context.Context, model *entity.ProductModel) error
	GetByID(ctx context.Context, storeID, id string) (*entity.ProductModel, error)
	// FindByName busca por nombre exacto sin distinguir mayúsculas.
	FindByName(ctx context.Context, storeID, name string) (*entity.ProductModel, error)
	ListByStore(ctx context.Context, storeID string) ([]*entity.ProductModel, error)
	Update(ctx context.Context, model *entity.ProductModel) error
	Delete(ctx context.Context, storeID, id string) (bool, error)
	Count(ctx context.Context, storeID string) (int, error)
}

// UnitFilter filtros opcionales para listar unidades.
type UnitFilter struct {
	ModelID string
	Sold    *bool
}

// UnitRepository define el puerto de persistencia para ProductUnit.
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.ProductUnit) error
	GetByID(ctx context.Context, storeID, id string) (*entity.ProductUnit, error)
	// GetForUpdate igual que GetByID, bloqueando la fila cuando el backend lo soporta.
	GetForUpdate(ctx context.Context, storeID, id string) (*entity.ProductUnit, error)
	GetByIMEI(ctx context.Context, storeID, imei string) (*entity.ProductUnit, error)
	List(ctx context.Context, storeID string, f UnitFilter) ([]*entity.ProductUnit, error)
	// Update persiste los campos editables; no modifica sold.
	Update(ctx context.Context, unit *entity.ProductUnit) error
	Delete(ctx context.Context, storeID, id string) (bool, error)
	// MarkSold pone sold=true solo si sold=false. Devuelve false si no cambió ninguna fila.
	MarkSold(ctx context.Context, storeID, id string) (bool, error)
	// MarkUnsold pone sold=false. Devuelve false si la unidad ya no existe.
	MarkUnsold(ctx context.Context, storeID, id string) (bool, error)
	// CountAvailable cuenta unidades no vendidas; modelID vacío = toda la tienda.
	CountAvailable(ctx context.Context, storeID, modelID string) (int, error)
	// CountByModel cuenta todas las unidades (vendidas o no) que referencian el modelo.
	CountByModel(ctx context.Context, storeID, modelID string) (int, error)
}
