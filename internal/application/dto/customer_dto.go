package dto

import "time"

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Document string `json:"document" validate:"required"`
	Contact  string `json:"contact" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UpdateCustomerRequest actualización parcial; solo se validan los campos enviados.
type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	Document *string `json:"document"`
	Contact  *string `json:"contact"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
