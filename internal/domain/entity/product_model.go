package entity

import "time"

// ProductModel es una entrada de catálogo (ej. "iPhone 13"), sin atributos de unidad.
type ProductModel struct {
	ID        string
	StoreID   string
	Name      string
	Brand     string
	CreatedAt time.Time
}
