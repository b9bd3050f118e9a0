package dto

import "time"

// AddressDTO dirección física en requests y respuestas.
type AddressDTO struct {
	Street  string `json:"street" validate:"omitempty,max=120"`
	City    string `json:"city" validate:"omitempty,max=80"`
	State   string `json:"state" validate:"omitempty,max=80"`
	ZipCode string `json:"zipCode" validate:"omitempty,max=20"`
	Country string `json:"country" validate:"omitempty,max=80"`
}

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name    string     `json:"name" validate:"required,min=2,max=120"`
	Email   string     `json:"email" validate:"omitempty,email"`
	Phone   string     `json:"phone" validate:"omitempty,phone"`
	Type    string     `json:"type" validate:"required,oneof=residential commercial industrial"`
	Status  string     `json:"status" validate:"omitempty,oneof=active inactive prospect archived"`
	Address AddressDTO `json:"address"`
	Notes   string     `json:"notes" validate:"omitempty,max=2000"`
	Tags    []string   `json:"tags" validate:"omitempty,dive,max=40"`
}

// UpdateCustomerRequest actualización de cliente (mismos campos que el alta).
type UpdateCustomerRequest = CreateCustomerRequest

// ListCustomersRequest filtros de listado.
type ListCustomersRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=active inactive prospect archived"`
	Type   string `query:"type" validate:"omitempty,oneof=residential commercial industrial"`
	Search string `query:"search" validate:"omitempty,max=120"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenantId"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	Address   AddressDTO `json:"address"`
	Notes     string     `json:"notes,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
