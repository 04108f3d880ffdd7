package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStoreRequest entrada para crear una tienda. Sin Slug, se deriva del nombre.
type CreateStoreRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Slug string `json:"slug"` // opcional, se normaliza igual que el nombre
}

// UpdateStoreRequest actualización parcial de tienda.
type UpdateStoreRequest struct {
	Name    *string `json:"name"`
	Active  *bool   `json:"active"`
	LogoURL *string `json:"logo_url"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Active    bool      `json:"active"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreStats métricas resumidas de una tienda para el panel de plataforma.
type StoreStats struct {
	TotalModels    int             `json:"total_models"`
	AvailableUnits int             `json:"available_units"`
	TotalCustomers int             `json:"total_customers"`
	TotalSales     int             `json:"total_sales"`
	Revenue        decimal.Decimal `json:"revenue"`
}

// StoreWithStats tienda con sus métricas.
type StoreWithStats struct {
	StoreResponse
	Stats StoreStats `json:"stats"`
}

// VerifyStoreResponse respuesta pública de GET /api/stores/:slug/verify.
type VerifyStoreResponse struct {
	Exists bool   `json:"exists"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
}
