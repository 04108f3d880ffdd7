package dto

import "time"

// CreateUserRequest entrada para crear una cuenta de operador (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=200"`
	Role     string `json:"role" validate:"required,oneof=super_admin store_admin"`
	StoreID  string `json:"store_id" validate:"required_if=Role store_admin"`
}

// UpdateUserRequest actualización parcial; solo se aplican los campos no nulos.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	StoreID  *string `json:"store_id"`
	Active   *bool   `json:"active"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	StoreID   string    `json:"store_id,omitempty"`
	StoreName string    `json:"store_name,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT, datos de la cuenta y tienda asociada.
type LoginResponse struct {
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	StoreID   string       `json:"store_id,omitempty"`
	StoreSlug string       `json:"store_slug,omitempty"`
}

// MeResponse identidad del token actual.
type MeResponse struct {
	User      UserResponse `json:"user"`
	StoreSlug string       `json:"store_slug,omitempty"`
}
