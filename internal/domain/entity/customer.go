package entity

import "time"

// Tipos de cliente.
const (
	CustomerTypeResidential = "residential"
	CustomerTypeCommercial  = "commercial"
	CustomerTypeIndustrial  = "industrial"
)

// Estados de cliente.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
	CustomerStatusProspect = "prospect"
	CustomerStatusArchived = "archived"
)

// Customer representa un cliente del tenant (CRM).
type Customer struct {
	ID        string
	TenantID  string
	Name      string
	Email     string
	Phone     string
	Type      string // ver constantes CustomerType*
	Status    string // ver constantes CustomerStatus*
	Address   Address
	Notes     string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address dirección física (usada por Customer y Job).
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}
