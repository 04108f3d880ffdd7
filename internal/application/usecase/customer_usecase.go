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
	"github.com/jhoicas/CellStock-api/internal/domain/rules"
)

// CustomerUseCase casos de uso para clientes de la tienda.
type CustomerUseCase struct {
	repo  repository.CustomerRepository
	cache CacheInvalidator
}

// NewCustomerUseCase construye el caso de uso. cache puede ser nil.
func NewCustomerUseCase(repo repository.CustomerRepository, cache CacheInvalidator) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, cache: orNoCache(cache)}
}

// Create valida documento y WhatsApp y persiste el cliente. Sin escrituras parciales.
func (uc *CustomerUseCase) Create(ctx context.Context, scope tenancy.Scope, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.CreateEntity(ctx, scope, in)
	if err != nil {
		return nil, err
	}
	uc.cache.InvalidateStore(ctx, scope.StoreID())
	return toCustomerResponse(c), nil
}

// CreateEntity igual que Create pero devuelve la entidad (lo usa la importación).
func (uc *CustomerUseCase) CreateEntity(ctx context.Context, scope tenancy.Scope, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.InvalidInput("el nombre del cliente es obligatorio")
	}
	doc, err := rules.NormalizeDocument(in.Document)
	if err != nil {
		return nil, err
	}
	contact, err := rules.NormalizeContact(in.Contact)
	if err != nil {
		return nil, err
	}
	c := &entity.Customer{
		ID:        uuid.New().String(),
		StoreID:   scope.StoreID(),
		Name:      name,
		Document:  doc,
		Contact:   contact,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List lista los clientes de la tienda.
func (uc *CustomerUseCase) List(ctx context.Context, scope tenancy.Scope) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.ListByStore(ctx, scope.StoreID())
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Get obtiene un cliente por ID.
func (uc *CustomerUseCase) Get(ctx context.Context, scope tenancy.Scope, id string) (*dto.CustomerResponse, error) {
	c, err := uc.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Update aplica y valida solo los campos enviados.
func (uc *CustomerUseCase) Update(ctx context.Context, scope tenancy.Scope, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == nil && in.Document == nil && in.Contact == nil && in.Email == nil && in.Phone == nil && in.Address == nil {
		return nil, errNoFields
	}
	c, err := uc.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.InvalidInput("el nombre del cliente es obligatorio")
		}
		c.Name = name
	}
	if in.Document != nil {
		if c.Document, err = rules.NormalizeDocument(*in.Document); err != nil {
			return nil, err
		}
	}
	if in.Contact != nil {
		if c.Contact, err = rules.NormalizeContact(*in.Contact); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.cache.InvalidateStore(ctx, scope.StoreID())
	return toCustomerResponse(c), nil
}

// Delete elimina un cliente. Sus ventas muestran "Cliente removido".
func (uc *CustomerUseCase) Delete(ctx context.Context, scope tenancy.Scope, id string) error {
	ok, err := uc.repo.Delete(ctx, scope.StoreID(), id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("cliente no encontrado")
	}
	uc.cache.InvalidateStore(ctx, scope.StoreID())
	return nil
}

func (uc *CustomerUseCase) find(ctx context.Context, scope tenancy.Scope, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, scope.StoreID(), id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente no encontrado")
	}
	return c, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Document:  c.Document,
		Contact:   c.Contact,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}
