package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago conocidos.
const (
	PaymentCash         = "dinheiro"
	PaymentPix          = "pix"
	PaymentCreditCard   = "cartao_credito"
	PaymentDebitCard    = "cartao_debito"
	PaymentBankTransfer = "transferencia"
)

// PaymentMethods lista los métodos de pago aceptados por la importación.
var PaymentMethods = []string{PaymentCash, PaymentPix, PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer}

// Placeholders usados cuando el registro referenciado ya no existe.
const (
	RemovedModelName    = "Modelo removido"
	RemovedCustomerName = "Cliente removido"
)

// SaleItem es la foto de una unidad al momento de la venta. No se modifica después.
type SaleItem struct {
	UnitID    string          `json:"unit_id"`
	ModelID   string          `json:"model_id"`
	ModelName string          `json:"model_name"`
	Color     string          `json:"color"`
	Storage   string          `json:"storage"`
	Price     decimal.Decimal `json:"price"`
}

// Sale es una venta confirmada. Solo PaymentMethod y Note son editables.
type Sale struct {
	ID            string
	StoreID       string
	Date          time.Time
	Items         []SaleItem
	Total         decimal.Decimal // suma de Items[].Price
	CustomerID    string
	PaymentMethod string
	Note          string
	CreatedAt     time.Time
}
