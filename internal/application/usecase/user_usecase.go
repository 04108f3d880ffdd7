package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

// UserUseCase administración de cuentas de operador (solo super_admin).
type UserUseCase struct {
	repo   repository.UserRepository
	stores repository.StoreRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, stores repository.StoreRepository) *UserUseCase {
	return &UserUseCase{repo: repo, stores: stores}
}

// Create crea una cuenta. El email es único global; store_admin exige una tienda existente.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.InvalidInput("email y password son obligatorios")
	}
	if !entity.IsValidRole(in.Role) {
		return nil, domain.InvalidInput("rol inválido: use super_admin o store_admin")
	}
	storeID := strings.TrimSpace(in.StoreID)
	if in.Role == entity.RoleStoreAdmin && storeID == "" {
		return nil, domain.InvalidInput("un usuario de tienda debe tener store_id")
	}
	if in.Role == entity.RoleSuperAdmin {
		storeID = ""
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("ya existe un usuario con este email")
	}
	store, err := uc.storeFor(ctx, storeID)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		StoreID:      storeID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("ya existe un usuario con este email")
		}
		return nil, err
	}
	return ToUserResponse(user, store), nil
}

// List lista todas las cuentas con el nombre de su tienda.
func (uc *UserUseCase) List(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		store, err := uc.stores.GetByID(ctx, u.StoreID)
		if err != nil {
			return nil, err
		}
		out = append(out, ToUserResponse(u, store))
	}
	return out, nil
}

// Update aplica solo los campos enviados.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Name == nil && in.Password == nil && in.Role == nil && in.StoreID == nil && in.Active == nil {
		return nil, errNoFields
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("usuario no encontrado")
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.InvalidInput("password no puede estar vacío")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if in.Role != nil {
		if !entity.IsValidRole(*in.Role) {
			return nil, domain.InvalidInput("rol inválido: use super_admin o store_admin")
		}
		u.Role = *in.Role
	}
	if in.StoreID != nil {
		u.StoreID = strings.TrimSpace(*in.StoreID)
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if u.Role == entity.RoleSuperAdmin {
		u.StoreID = ""
	}
	if u.Role == entity.RoleStoreAdmin && u.StoreID == "" {
		return nil, domain.InvalidInput("un usuario de tienda debe tener store_id")
	}
	store, err := uc.storeFor(ctx, u.StoreID)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToUserResponse(u, store), nil
}

// Delete elimina una cuenta.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("usuario no encontrado")
	}
	return nil
}

func (uc *UserUseCase) storeFor(ctx context.Context, storeID string) (*entity.Store, error) {
	if storeID == "" {
		return nil, nil
	}
	store, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.NotFound("tienda no encontrada")
	}
	return store, nil
}

// ToUserResponse convierte la entidad a DTO (sin hash). store puede ser nil.
func ToUserResponse(u *entity.User, store *entity.Store) *dto.UserResponse {
	out := &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		StoreID:   u.StoreID,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
	if store != nil {
		out.StoreName = store.Name
	}
	return out
}
