package repository

import "github.com/jobblox/crm-api/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	GetByDomain(domain string) (*entity.Tenant, error)
	List(limit, offset int) ([]*entity.Tenant, error)
	Update(tenant *entity.Tenant) error
}
