package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrForbidden       = errors.New("acceso denegado")
	ErrUnauthenticated = errors.New("no autenticado")
	ErrTokenExpired    = errors.New("token expirado")
)

// Error es un error de dominio con mensaje legible. Kind es uno de los sentinelas
// de arriba, de modo que errors.Is(err, domain.ErrNotFound) sigue funcionando.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

// InvalidInput construye un ErrInvalidInput con mensaje.
func InvalidInput(msg string) error { return &Error{Kind: ErrInvalidInput, Msg: msg} }

// NotFound construye un ErrNotFound con mensaje.
func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Msg: msg} }

// Conflict construye un ErrConflict con mensaje.
func Conflict(msg string) error { return &Error{Kind: ErrConflict, Msg: msg} }

// Forbidden construye un ErrForbidden con mensaje.
func Forbidden(msg string) error { return &Error{Kind: ErrForbidden, Msg: msg} }

// Unauthenticated construye un ErrUnauthenticated con mensaje.
func Unauthenticated(msg string) error { return &Error{Kind: ErrUnauthenticated, Msg: msg} }

// IsConflict reporta conflictos de negocio, incluidos los duplicados de almacenamiento.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrDuplicate)
}
