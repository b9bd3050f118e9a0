package repository

import "github.com/jobblox/crm-api/internal/domain/entity"

// EmployeeFilter filtros de listado de empleados.
type EmployeeFilter struct {
	Status     string
	Department string
}

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetByUserID(userID string) (*entity.Employee, error)
	ListByTenant(tenantID string, filter EmployeeFilter, limit, offset int) ([]*entity.Employee, int, error)
	Update(employee *entity.Employee) error
	Delete(id string) error
}
