package entity

import "time"

// Store representa una tienda (tenant). Todo el catálogo, clientes y ventas le pertenecen.
type Store struct {
	ID        string
	Name      string
	Slug      string // único, derivado del nombre
	Active    bool   // inactiva = invisible por slug, pero accesible por ID para administración
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
