package repository

import "github.com/jobblox/crm-api/internal/domain/entity"

// CustomerFilter filtros de listado de clientes.
type CustomerFilter struct {
	Status string
	Type   string
	Search string // busca en name, email y phone
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByTenantAndEmail(tenantID, email string) (*entity.Customer, error)
	ListByTenant(tenantID string, filter CustomerFilter, limit, offset int) ([]*entity.Customer, int, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
