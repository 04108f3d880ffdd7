package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin = "super_admin" // operador de plataforma
	RoleStoreAdmin = "store_admin" // operador de una tienda
)

// User representa una cuenta de operador.
// StoreID es obligatorio si Role es RoleStoreAdmin y vacío para RoleSuperAdmin.
type User struct {
	ID           string
	Email        string // único global
	PasswordHash string // bcrypt hash
	Name         string
	Role         string
	StoreID      string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si r es un rol conocido.
func IsValidRole(r string) bool {
	return r == RoleSuperAdmin || r == RoleStoreAdmin
}

// Actor es la identidad que ejecuta una operación (extraída del token).
type Actor struct {
	UserID  string
	Email   string
	Role    string
	StoreID string
}

// IsPlatform indica si el actor es operador de plataforma.
func (a Actor) IsPlatform() bool { return a.Role == RoleSuperAdmin }
