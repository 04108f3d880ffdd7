package entity

// Tipos de entidad con mapeo de IDs externos.
const (
	MappingModel    = "model"
	MappingCustomer = "customer"
	MappingProduct  = "product"
)

// IDMapping asocia un ID externo (de un archivo importado) con el ID interno de la tienda.
type IDMapping struct {
	StoreID    string
	Kind       string
	ExternalID string
	InternalID string
}
