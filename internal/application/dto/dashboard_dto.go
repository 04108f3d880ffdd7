package dto

import "github.com/shopspring/decimal"

// DashboardStats respuesta de GET /api/stores/:slug/dashboard.
type DashboardStats struct {
	TotalModels    int             `json:"total_models"`
	AvailableUnits int             `json:"available_units"`
	TotalCustomers int             `json:"total_customers"`
	TotalSales     int             `json:"total_sales"`
	Revenue        decimal.Decimal `json:"revenue"` // suma de todas las ventas, sin filtro de mes

	InStock    []ModelStock `json:"in_stock"`
	OutOfStock []ModelStock `json:"out_of_stock"`

	// Top 10 modelos por unidades vendidas, opcionalmente filtrado por mes (YYYY-MM o solo YYYY).
	TopModels []TopModel `json:"top_models"`
	Month     string     `json:"month,omitempty"`
}

// ModelStock modelo con su cantidad de unidades disponibles.
type ModelStock struct {
	ModelID        string `json:"model_id"`
	Name           string `json:"name"`
	AvailableUnits int    `json:"available_units"`
}

// TopModel modelo más vendido.
type TopModel struct {
	ModelID  string          `json:"model_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// PlatformDashboard respuesta de GET /api/admin/dashboard.
// Los totales suman todas las tiendas; Stores trae el desglose por tienda.
type PlatformDashboard struct {
	TotalStores    int             `json:"total_stores"`
	ActiveStores   int             `json:"active_stores"`
	TotalUsers     int             `json:"total_users"`
	TotalModels    int             `json:"total_models"`
	AvailableUnits int             `json:"available_units"`
	TotalCustomers int             `json:"total_customers"`
	TotalSales     int             `json:"total_sales"`
	Revenue        decimal.Decimal `json:"revenue"`

	// Top 10 de toda la plataforma. Los modelos pertenecen a cada tienda,
	// así que un mismo nombre puede aparecer una vez por tienda.
	TopModels []TopModel       `json:"top_models"`
	Stores    []StoreWithStats `json:"stores"`
}
