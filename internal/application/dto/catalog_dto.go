package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateModelRequest entrada para crear un modelo.
type CreateModelRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Brand string `json:"brand" validate:"omitempty,max=100"`
}

// UpdateModelRequest actualización parcial de un modelo.
type UpdateModelRequest struct {
	Name  *string `json:"name"`
	Brand *string `json:"brand"`
}

// ModelResponse salida de un modelo con su cantidad de unidades disponibles.
type ModelResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Brand          string    `json:"brand,omitempty"`
	AvailableUnits int       `json:"available_units"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateUnitRequest entrada para crear una unidad.
type CreateUnitRequest struct {
	ModelID string          `json:"model_id" validate:"required"`
	Color   string          `json:"color" validate:"required"`
	Storage string          `json:"storage" validate:"required"`
	Battery *int            `json:"battery" validate:"omitempty,min=0,max=100"`
	IMEI    string          `json:"imei"`
	Price   decimal.Decimal `json:"price"`
}

// UpdateUnitRequest actualización parcial de una unidad. Sold no es editable.
type UpdateUnitRequest struct {
	ModelID *string          `json:"model_id"`
	Color   *string          `json:"color"`
	Storage *string          `json:"storage"`
	Battery *int             `json:"battery"`
	IMEI    *string          `json:"imei"`
	Price   *decimal.Decimal `json:"price"`
}

// UnitResponse salida de una unidad con el nombre de su modelo.
type UnitResponse struct {
	ID        string          `json:"id"`
	ModelID   string          `json:"model_id"`
	ModelName string          `json:"model_name"`
	Color     string          `json:"color"`
	Storage   string          `json:"storage"`
	Battery   *int            `json:"battery,omitempty"`
	IMEI      string          `json:"imei,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Sold      bool            `json:"sold"`
	CreatedAt time.Time       `json:"created_at"`
}
