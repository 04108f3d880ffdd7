package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

// errNoFields se devuelve cuando un PATCH no trae ningún campo.
var errNoFields = domain.InvalidInput("ningún campo para actualizar")

// ModelUseCase casos de uso del catálogo de modelos.
type ModelUseCase struct {
	models repository.ModelRepository
	units  repository.UnitRepository
	cache  CacheInvalidator
}

// NewModelUseCase construye el caso de uso. cache puede ser nil.
func NewModelUseCase(models repository.ModelRepository, units repository.UnitRepository, cache CacheInvalidator) *ModelUseCase {
	return &ModelUseCase{models: models, units: units, cache: orNoCache(cache)}
}

// Create crea un modelo en la tienda.
func (uc *ModelUseCase) Create(ctx context.Context, scope tenancy.Scope, in dto.CreateModelRequest) (*dto.ModelResponse, error) {
	m, err := uc.CreateEntity(ctx, scope, in)
	if err != nil {
		return nil, err
	}
	uc.cache.InvalidateStore(ctx, scope.StoreID())
	return toModelResponse(m, 0), nil
}

// CreateEntity igual que Create pero devuelve la entidad y no toca la caché:
// la importación la invalida una sola vez al cerrar el lote.
func (uc *ModelUseCase) CreateEntity(ctx context.Context, scope tenancy.Scope, in dto.CreateModelRequest) (*entity.ProductModel, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.InvalidInput("el nombre del modelo es obligatorio")
	}
	m := &entity.ProductModel{
		ID:        uuid.New().String(),
		StoreID:   scope.StoreID(),
		Name:      name,
		Brand:     strings.TrimSpace(in.Brand),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.models.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// List lista los modelos con su cantidad de unidades disponibles.
func (uc *ModelUseCase) List(ctx context.Context, scope tenancy.Scope) ([]*dto.ModelResponse, error) {
	list, err := uc.models.ListByStore(ctx, scope.StoreID())
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ModelResponse, 0, len(list))
	for _, m := range list {
		n, err := uc.units.CountAvailable(ctx, scope.StoreID(), m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toModelResponse(m, n))
	}
	return out, nil
}

// Get obtiene un modelo con su cantidad de unidades disponibles.
func (uc *ModelUseCase) Get(ctx context.Context, scope tenancy.Scope, id string) (*dto.ModelResponse, error) {
	m, err := uc.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	n, err := uc.units.CountAvailable(ctx, scope.StoreID(), m.ID)
	if err != nil {
		return nil, err
	}
	return toModelResponse(m, n), nil
}

// Update aplica solo los campos enviados.
func (uc *ModelUseCase) Update(ctx context.Context, scope tenancy.Scope, id string, in dto.UpdateModelRequest) (*dto.ModelResponse, error) {
	if in.Name == nil && in.Brand == nil {
		return nil, errNoFields
	}
	m, err := uc.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.InvalidInput("el nombre del modelo es obligatorio")
		}
		m.Name = name
	}
	if in.Brand != nil {
		m.Brand = strings.TrimSpace(*in.Brand)
	}
	if err := uc.models.Update(ctx, m); err != nil {
		return nil, err
	}
	uc.cache.InvalidateStore(ctx, scope.StoreID())
	return uc.Get(ctx, scope, id)
}

// Delete elimina el modelo si ninguna unidad lo referencia.
// La verificación se hace por conteo, antes de cualquier escritura.
func (uc *ModelUseCase) Delete(ctx context.Context, scope tenancy.Scope, id string) error {
	if _, err := uc.find(ctx, scope, id); err != nil {
		return err
	}
	linked, err := uc.units.CountByModel(ctx, scope.StoreID(), id)
	if err != nil {
		return err
	}
	if linked > 0 {
		return domain.Conflict("no se puede eliminar: el modelo tiene unidades asociadas")
	}
	ok, err := uc.models.Delete(ctx, scope.StoreID(), id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("modelo no encontrado")
	}
	uc.cache.InvalidateStore(ctx, scope.StoreID())
	return nil
}

// HasLinkedUnits indica si alguna unidad referencia el modelo.
func (uc *ModelUseCase) HasLinkedUnits(ctx context.Context, scope tenancy.Scope, id string) (bool, error) {
	n, err := uc.units.CountByModel(ctx, scope.StoreID(), id)
	return n > 0, err
}

func (uc *ModelUseCase) find(ctx context.Context, scope tenancy.Scope, id string) (*entity.ProductModel, error) {
	m, err := uc.models.GetByID(ctx, scope.StoreID(), id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("modelo no encontrado")
	}
	return m, nil
}

func toModelResponse(m *entity.ProductModel, available int) *dto.ModelResponse {
	return &dto.ModelResponse{
		ID:             m.ID,
		Name:           m.Name,
		Brand:          m.Brand,
		AvailableUnits: available,
		CreatedAt:      m.CreatedAt,
	}
}
