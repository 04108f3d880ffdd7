// Package importer reconcilia registros externos (CSV, JSON, XLSX ya
// decodificados) con el catálogo, los clientes y las ventas de una tienda.
package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/CellStock-api/internal/domain"
)

// Row registro crudo tal como lo entrega el decodificador de archivos.
type Row = map[string]any

// Kind tipo de registro importado.
type Kind string

const (
	KindAuto      Kind = "auto"
	KindModels    Kind = "models"
	KindProducts  Kind = "products"
	KindCustomers Kind = "customers"
	KindSales     Kind = "sales"
)

// ParseKind acepta los nombres en inglés y los alias en portugués.
// Vacío equivale a auto.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return KindAuto, nil
	case "models", "modelos":
		return KindModels, nil
	case "products", "produtos", "units":
		return KindProducts, nil
	case "customers", "clientes":
		return KindCustomers, nil
	case "sales", "vendas":
		return KindSales, nil
	}
	return "", domain.InvalidInput("data_type inválido: use auto, models, products, customers o sales")
}

// Record unión de los cuatro tipos de registro ya validados.
type Record interface {
	kind() Kind
}

// ModelRecord modelo externo.
type ModelRecord struct {
	ExternalID string
	Name       string
	Brand      string
}

// CustomerRecord cliente externo. Documento y contacto sin normalizar.
type CustomerRecord struct {
	ExternalID string
	Name       string
	Document   string
	Contact    string
	Email      string
	Phone      string
	Address    string
}

// ProductRecord unidad externa. El modelo se referencia por ID externo y/o nombre.
type ProductRecord struct {
	ExternalID string
	ModelRef   string
	ModelName  string
	Color      string
	Storage    string
	Battery    *int
	IMEI       string
	Price      decimal.Decimal
}

// SaleRecord venta histórica.
type SaleRecord struct {
	CustomerRef      string
	CustomerName     string
	CustomerDocument string
	CustomerContact  string
	ProductRefs      []string
	Total            decimal.Decimal
	PaymentMethod    string
	Date             time.Time
	Note             string
}

func (ModelRecord) kind() Kind    { return KindModels }
func (CustomerRecord) kind() Kind { return KindCustomers }
func (ProductRecord) kind() Kind  { return KindProducts }
func (SaleRecord) kind() Kind     { return KindSales }
