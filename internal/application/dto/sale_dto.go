package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta. El precio sale de las unidades.
type CreateSaleRequest struct {
	CustomerID    string   `json:"customer_id" validate:"required"`
	UnitIDs       []string `json:"unit_ids" validate:"required,min=1"`
	PaymentMethod string   `json:"payment_method" validate:"required"`
	Note          string   `json:"note"`
}

// UpdateSaleRequest solo forma de pago y observación son editables.
type UpdateSaleRequest struct {
	PaymentMethod *string `json:"payment_method"`
	Note          *string `json:"note"`
}

// SaleItemResponse línea de la venta (foto al momento de vender).
type SaleItemResponse struct {
	UnitID    string          `json:"unit_id"`
	ModelID   string          `json:"model_id"`
	ModelName string          `json:"model_name"`
	Color     string          `json:"color"`
	Storage   string          `json:"storage"`
	Price     decimal.Decimal `json:"price"`
}

// SaleResponse salida de una venta con el nombre del cliente.
type SaleResponse struct {
	ID            string             `json:"id"`
	Date          time.Time          `json:"date"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	CustomerID    string             `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	PaymentMethod string             `json:"payment_method"`
	Note          string             `json:"note,omitempty"`
}
