package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
	"github.com/jhoicas/CellStock-api/internal/domain/rules"
)

// AssetStorage guarda un archivo y devuelve la URL pública estable.
type AssetStorage interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// statsProvider calcula métricas resumidas de una tienda.
// Lo implementa *analytics.DashboardUseCase.
type statsProvider interface {
	StoreStats(ctx context.Context, storeID string) (dto.StoreStats, error)
}

// StoreUseCase administración de tiendas (solo super_admin).
type StoreUseCase struct {
	repo          repository.StoreRepository
	stats         statsProvider
	assets        AssetStorage
	maxAssetBytes int64
}

// NewStoreUseCase construye el caso de uso. assets puede ser nil si no hay subida de logos.
func NewStoreUseCase(repo repository.StoreRepository, stats statsProvider, assets AssetStorage, maxAssetBytes int64) *StoreUseCase {
	return &StoreUseCase{repo: repo, stats: stats, assets: assets, maxAssetBytes: maxAssetBytes}
}

// Create crea una tienda activa. El slug se deriva del nombre (o del slug enviado).
// Devuelve Conflict si el slug ya existe.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.InvalidInput("el nombre de la tienda es obligatorio")
	}
	source := in.Slug
	if strings.TrimSpace(source) == "" {
		source = name
	}
	slug, err := rules.Slugify(source)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("ya existe una tienda con este slug")
	}
	now := time.Now().UTC()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, store); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("ya existe una tienda con este slug")
		}
		return nil, err
	}
	return toStoreResponse(store), nil
}

// List lista todas las tiendas (activas o no) con sus métricas.
func (uc *StoreUseCase) List(ctx context.Context) ([]*dto.StoreWithStats, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StoreWithStats, 0, len(list))
	for _, s := range list {
		stats, err := uc.stats.StoreStats(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.StoreWithStats{StoreResponse: *toStoreResponse(s), Stats: stats})
	}
	return out, nil
}

// Get obtiene una tienda por ID con sus métricas, incluso si está inactiva.
func (uc *StoreUseCase) Get(ctx context.Context, id string) (*dto.StoreWithStats, error) {
	s, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := uc.stats.StoreStats(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	return &dto.StoreWithStats{StoreResponse: *toStoreResponse(s), Stats: stats}, nil
}

// Update modifica nombre, estado o logo. El slug no cambia.
func (uc *StoreUseCase) Update(ctx context.Context, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == nil && in.Active == nil && in.LogoURL == nil {
		return nil, errNoFields
	}
	s, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.InvalidInput("el nombre de la tienda es obligatorio")
		}
		s.Name = name
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	if in.LogoURL != nil {
		s.LogoURL = strings.TrimSpace(*in.LogoURL)
	}
	s.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toStoreResponse(s), nil
}

// UploadLogo valida la imagen (extensión y tamaño), la guarda y actualiza la tienda.
func (uc *StoreUseCase) UploadLogo(ctx context.Context, id, filename string, data []byte) (*dto.StoreResponse, error) {
	if uc.assets == nil {
		return nil, errors.New("almacenamiento de archivos no configurado")
	}
	ext, err := rules.ValidateAsset(filename, int64(len(data)), uc.maxAssetBytes)
	if err != nil {
		return nil, err
	}
	s, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := uc.assets.Save(ctx, "logos/"+s.ID+"-"+uuid.New().String()[:8]+ext, data)
	if err != nil {
		return nil, err
	}
	return uc.Update(ctx, id, dto.UpdateStoreRequest{LogoURL: &url})
}

// Verify respuesta pública: solo tiendas activas.
func (uc *StoreUseCase) Verify(ctx context.Context, slug string) (*dto.VerifyStoreResponse, error) {
	s, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if s == nil || !s.Active {
		return nil, domain.NotFound("tienda no encontrada")
	}
	return &dto.VerifyStoreResponse{Exists: true, Name: s.Name, Slug: s.Slug}, nil
}

func (uc *StoreUseCase) find(ctx context.Context, id string) (*entity.Store, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("tienda no encontrada")
	}
	return s, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Slug:      s.Slug,
		Active:    s.Active,
		LogoURL:   s.LogoURL,
		CreatedAt: s.CreatedAt,
	}
}
