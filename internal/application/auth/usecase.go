package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/usecase"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
	"github.com/jhoicas/CellStock-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

var errBadCredentials = domain.Unauthenticated("email o contraseña incorrectos")

// AuthUseCase login y consulta de la cuenta autenticada.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, storeRepo repository.StoreRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, storeRepo: storeRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password (bcrypt), genera JWT y devuelve token + usuario + tienda.
// Cuenta inexistente o password incorrecto => Unauthenticated; cuenta inactiva => Forbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.InvalidInput("email y password son obligatorios")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errBadCredentials
	}
	if !user.Active {
		return nil, domain.Forbidden("la cuenta está desactivada")
	}
	store, err := uc.store(ctx, user.StoreID)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:  user.ID,
		StoreID: user.StoreID,
		Role:    user.Role,
		Email:   user.Email,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	out := &dto.LoginResponse{
		Token:   token,
		User:    *usecase.ToUserResponse(user, store),
		StoreID: user.StoreID,
	}
	if store != nil {
		out.StoreSlug = store.Slug
	}
	return out, nil
}

// Me devuelve la cuenta del token actual con el slug de su tienda.
func (uc *AuthUseCase) Me(ctx context.Context, actor entity.Actor) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("usuario no encontrado")
	}
	store, err := uc.store(ctx, user.StoreID)
	if err != nil {
		return nil, err
	}
	out := &dto.MeResponse{User: *usecase.ToUserResponse(user, store)}
	if store != nil {
		out.StoreSlug = store.Slug
	}
	return out, nil
}

func (uc *AuthUseCase) store(ctx context.Context, storeID string) (*entity.Store, error) {
	if storeID == "" {
		return nil, nil
	}
	return uc.storeRepo.GetByID(ctx, storeID)
}
