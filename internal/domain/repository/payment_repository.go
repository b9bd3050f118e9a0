package repository

import "github.com/jobblox/crm-api/internal/domain/entity"

// PaymentFilter filtros de listado de pagos.
type PaymentFilter struct {
	Status     string
	CustomerID string
	InvoiceID  string
}

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	ListByTenant(tenantID string, filter PaymentFilter, limit, offset int) ([]*entity.Payment, int, error)
	Update(payment *entity.Payment) error
}
