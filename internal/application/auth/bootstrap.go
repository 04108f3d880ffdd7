package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
	"github.com/jhoicas/CellStock-api/internal/domain/rules"
)

// BootstrapInput cuentas y tienda por defecto.
type BootstrapInput struct {
	AdminEmail         string
	AdminPassword      string
	StoreName          string
	StoreAdminEmail    string
	StoreAdminPassword string
}

// BootstrapResult qué se creó en esta ejecución.
type BootstrapResult struct {
	SuperAdminCreated bool
	StoreCreated      bool
	StoreAdminCreated bool
	StoreSlug         string
}

// Bootstrap aprovisiona, una vez al arrancar, un super_admin si no existe
// ninguno y la tienda por defecto con su administrador si el slug no existe.
// Es idempotente.
func Bootstrap(ctx context.Context, users repository.UserRepository, stores repository.StoreRepository, in BootstrapInput) (BootstrapResult, error) {
	var res BootstrapResult
	now := time.Now().UTC()

	exists, err := users.ExistsWithRole(ctx, entity.RoleSuperAdmin)
	if err != nil {
		return res, fmt.Errorf("bootstrap super_admin: %w", err)
	}
	if !exists && in.AdminEmail != "" {
		if err := createAccount(ctx, users, in.AdminEmail, in.AdminPassword, "Super Admin", entity.RoleSuperAdmin, "", now); err != nil {
			return res, fmt.Errorf("bootstrap super_admin: %w", err)
		}
		res.SuperAdminCreated = true
	}

	if in.StoreName == "" {
		return res, nil
	}
	slug, err := rules.Slugify(in.StoreName)
	if err != nil {
		return res, fmt.Errorf("bootstrap tienda: %w", err)
	}
	res.StoreSlug = slug
	store, err := stores.GetBySlug(ctx, slug)
	if err != nil {
		return res, fmt.Errorf("bootstrap tienda: %w", err)
	}
	if store != nil {
		return res, nil
	}
	store = &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.StoreName,
		Slug:      slug,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := stores.Create(ctx, store); err != nil {
		return res, fmt.Errorf("bootstrap tienda: %w", err)
	}
	res.StoreCreated = true

	if in.StoreAdminEmail == "" {
		return res, nil
	}
	existing, err := users.GetByEmail(ctx, in.StoreAdminEmail)
	if err != nil {
		return res, fmt.Errorf("bootstrap admin de tienda: %w", err)
	}
	if existing == nil {
		if err := createAccount(ctx, users, in.StoreAdminEmail, in.StoreAdminPassword, "Admin "+in.StoreName, entity.RoleStoreAdmin, store.ID, now); err != nil {
			return res, fmt.Errorf("bootstrap admin de tienda: %w", err)
		}
		res.StoreAdminCreated = true
	}
	return res, nil
}

func createAccount(ctx context.Context, users repository.UserRepository, email, password, name, role, storeID string, now time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		StoreID:      storeID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
