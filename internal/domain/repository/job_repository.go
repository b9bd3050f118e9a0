package repository

import "github.com/jobblox/crm-api/internal/domain/entity"

// JobFilter filtros de listado de trabajos.
type JobFilter struct {
	Status     string
	CustomerID string
	AssignedTo string // ID de Employee asignado
}

// JobRepository define el puerto de persistencia para Job.
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id string) (*entity.Job, error)
	ListByTenant(tenantID string, filter JobFilter, limit, offset int) ([]*entity.Job, int, error)
	Update(job *entity.Job) error
	Delete(id string) error
}
