package repository

import "github.com/jobblox/crm-api/internal/domain/entity"

// EstimateFilter filtros de listado de cotizaciones.
type EstimateFilter struct {
	Status     string
	CustomerID string
}

// EstimateRepository define el puerto de persistencia para Estimate.
type EstimateRepository interface {
	Create(estimate *entity.Estimate) error
	GetByID(id string) (*entity.Estimate, error)
	ListByTenant(tenantID string, filter EstimateFilter, limit, offset int) ([]*entity.Estimate, int, error)
	Update(estimate *entity.Estimate) error
	Delete(id string) error
	// NextNumber devuelve el siguiente consecutivo EST-YYYY-NNNN del tenant.
	NextNumber(tenantID string, year int) (string, error)
}
