package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

// UnitUseCase casos de uso de unidades (equipos individuales).
// El flag Sold no se edita aquí; solo lo cambia el motor de ventas.
type UnitUseCase struct {
	models repository.ModelRepository
	units  repository.UnitRepository
	cache  CacheInvalidator
}

// NewUnitUseCase construye el caso de uso. cache puede ser nil.
func NewUnitUseCase(models repository.ModelRepository, units repository.UnitRepository, cache CacheInvalidator) *UnitUseCase {
	return &UnitUseCase{models: models, units: units, cache: orNoCache(cache)}
}

// Create registra una unidad. Color y capacidad son obligatorios y el modelo debe existir en la tienda.
func (uc *UnitUseCase) Create(ctx context.Context, scope tenancy.Scope, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	u, modelName, err := uc.CreateEntity(ctx, scope, in)
	if err != nil {
		return nil, err
	}
	uc.cache.InvalidateStore(ctx, scope.StoreID())
	return toUnitResponse(u, modelName), nil
}

// CreateEntity igual que Create pero devuelve la entidad y no invalida la caché
// (lo usa la importación).
func (uc *UnitUseCase) CreateEntity(ctx context.Context, scope tenancy.Scope, in dto.CreateUnitRequest) (*entity.ProductUnit, string, error) {
	color := strings.TrimSpace(in.Color)
	storage := strings.TrimSpace(in.Storage)
	if color == "" || storage == "" {
		return nil, "", domain.InvalidInput("color y capacidad son obligatorios")
	}
	if in.Price.IsNegative() {
		return nil, "", domain.InvalidInput("el precio no puede ser negativo")
	}
	if err := validateBattery(in.Battery); err != nil {
		return nil, "", err
	}
	model, err := uc.models.GetByID(ctx, scope.StoreID(), in.ModelID)
	if err != nil {
		return nil, "", err
	}
	if model == nil {
		return nil, "", domain.NotFound("modelo no encontrado")
	}
	u := &entity.ProductUnit{
		ID:        uuid.New().String(),
		StoreID:   scope.StoreID(),
		ModelID:   model.ID,
		Color:     color,
		Storage:   storage,
		Battery:   in.Battery,
		IMEI:      strings.TrimSpace(in.IMEI),
		Price:     in.Price,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.units.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, "", domain.Conflict("ya existe una unidad con ese IMEI")
		}
		return nil, "", err
	}
	return u, model.Name, nil
}

// List lista unidades, opcionalmente por modelo y estado de venta.
func (uc *UnitUseCase) List(ctx context.Context, scope tenancy.Scope, f repository.UnitFilter) ([]*dto.UnitResponse, error) {
	list, err := uc.units.List(ctx, scope.StoreID(), f)
	if err != nil {
		return nil, err
	}
	models, err := uc.models.ListByStore(ctx, scope.StoreID())
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(models))
	for _, m := range models {
		names[m.ID] = m.Name
	}
	out := make([]*dto.UnitResponse, 0, len(list))
	for _, u := range list {
		name, ok := names[u.ModelID]
		if !ok {
			name = entity.RemovedModelName
		}
		out = append(out, toUnitResponse(u, name))
	}
	return out, nil
}

// Get obtiene una unidad con el nombre de su modelo.
func (uc *UnitUseCase) Get(ctx context.Context, scope tenancy.Scope, id string) (*dto.UnitResponse, error) {
	u, err := uc.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	name, err := uc.modelName(ctx, scope, u.ModelID)
	if err != nil {
		return nil, err
	}
	return toUnitResponse(u, name), nil
}

// Update aplica solo los campos enviados.
func (uc *UnitUseCase) Update(ctx context.Context, scope tenancy.Scope, id string, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	if in.ModelID == nil && in.Color == nil && in.Storage == nil && in.Battery == nil && in.IMEI == nil && in.Price == nil {
		return nil, errNoFields
	}
	u, err := uc.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.ModelID != nil {
		model, err := uc.models.GetByID(ctx, scope.StoreID(), *in.ModelID)
		if err != nil {
			return nil, err
		}
		if model == nil {
			return nil, domain.NotFound("modelo no encontrado")
		}
		u.ModelID = model.ID
	}
	if in.Color != nil {
		if strings.TrimSpace(*in.Color) == "" {
			return nil, domain.InvalidInput("color no puede estar vacío")
		}
		u.Color = strings.TrimSpace(*in.Color)
	}
	if in.Storage != nil {
		if strings.TrimSpace(*in.Storage) == "" {
			return nil, domain.InvalidInput("capacidad no puede estar vacía")
		}
		u.Storage = strings.TrimSpace(*in.Storage)
	}
	if in.Battery != nil {
		if err := validateBattery(in.Battery); err != nil {
			return nil, err
		}
		u.Battery = in.Battery
	}
	if in.IMEI != nil {
		u.IMEI = strings.TrimSpace(*in.IMEI)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.InvalidInput("el precio no puede ser negativo")
		}
		u.Price = *in.Price
	}
	if err := uc.units.Update(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("ya existe una unidad con ese IMEI")
		}
		return nil, err
	}
	uc.cache.InvalidateStore(ctx, scope.StoreID())
	return uc.Get(ctx, scope, id)
}

// Delete elimina una unidad. Las ventas conservan su foto de la unidad.
func (uc *UnitUseCase) Delete(ctx context.Context, scope tenancy.Scope, id string) error {
	ok, err := uc.units.Delete(ctx, scope.StoreID(), id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("unidad no encontrada")
	}
	uc.cache.InvalidateStore(ctx, scope.StoreID())
	return nil
}

// CountAvailable cuenta las unidades sin vender del modelo.
func (uc *UnitUseCase) CountAvailable(ctx context.Context, scope tenancy.Scope, modelID string) (int, error) {
	return uc.units.CountAvailable(ctx, scope.StoreID(), modelID)
}

func (uc *UnitUseCase) find(ctx context.Context, scope tenancy.Scope, id string) (*entity.ProductUnit, error) {
	u, err := uc.units.GetByID(ctx, scope.StoreID(), id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("unidad no encontrada")
	}
	return u, nil
}

func (uc *UnitUseCase) modelName(ctx context.Context, scope tenancy.Scope, modelID string) (string, error) {
	m, err := uc.models.GetByID(ctx, scope.StoreID(), modelID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return entity.RemovedModelName, nil
	}
	return m.Name, nil
}

func validateBattery(b *int) error {
	if b != nil && (*b < 0 || *b > 100) {
		return domain.InvalidInput("la batería debe estar entre 0 y 100")
	}
	return nil
}

func toUnitResponse(u *entity.ProductUnit, modelName string) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:        u.ID,
		ModelID:   u.ModelID,
		ModelName: modelName,
		Color:     u.Color,
		Storage:   u.Storage,
		Battery:   u.Battery,
		IMEI:      u.IMEI,
		Price:     u.Price,
		Sold:      u.Sold,
		CreatedAt: u.CreatedAt,
	}
}
