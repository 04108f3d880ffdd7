package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductUnit es un equipo físico, con precio propio y vendible una sola vez.
// Sold solo pasa a true desde el motor de ventas y vuelve a false al revertir la venta.
type ProductUnit struct {
	ID        string
	StoreID   string
	ModelID   string
	Color     string
	Storage   string // capacidad, ej. "128GB"
	Battery   *int   // salud de batería en %, opcional
	IMEI      string
	Price     decimal.Decimal
	Sold      bool
	CreatedAt time.Time
}
