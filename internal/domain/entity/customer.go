package entity

import "time"

// Customer representa un cliente de la tienda.
type Customer struct {
	ID        string
	StoreID   string
	Name      string
	Document  string // documento de identidad normalizado a 11 dígitos
	Contact   string // WhatsApp normalizado a 10 u 11 dígitos
	Email     string
	Phone     string // teléfono secundario
	Address   string
	CreatedAt time.Time
}
