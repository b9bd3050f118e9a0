package repository

import "github.com/jobblox/crm-api/internal/domain/entity"

// InvoiceFilter filtros de listado de facturas.
type InvoiceFilter struct {
	Status     string
	CustomerID string
}

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	ListByTenant(tenantID string, filter InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error)
	Update(invoice *entity.Invoice) error
	Delete(id string) error
	// NextNumber devuelve el siguiente consecutivo INV-YYYY-NNNN del tenant.
	NextNumber(tenantID string, year int) (string, error)
}
