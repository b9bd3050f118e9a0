package sdk

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jobblox/crm-api/pkg/apiclient"
)

// EmployeesService operaciones sobre empleados.
type EmployeesService struct {
	client *apiclient.Client
}

// EmployeeListParams filtros de listado de empleados.
type EmployeeListParams struct {
	PageParams
	Status     string
	Department string
}

// EmployeeInput payload de creación/actualización de empleado.
type EmployeeInput struct {
	FirstName    string                `json:"firstName"`
	LastName     string                `json:"lastName"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone,omitempty"`
	Department   string                `json:"department,omitempty"`
	Position     string                `json:"position,omitempty"`
	HourlyRate   decimal.Decimal       `json:"hourlyRate"`
	Skills       []string              `json:"skills,omitempty"`
	Availability map[string][]TimeSlot `json:"availability,omitempty"`
}

// List lista empleados con filtros y paginación.
func (s *EmployeesService) List(ctx context.Context, params EmployeeListParams) ([]Employee, *apiclient.Pagination, error) {
	query := url.Values{}
	params.apply(query)
	setIfNotEmpty(query, "status", params.Status)
	setIfNotEmpty(query, "department", params.Department)

	var employees []Employee
	resp, err := s.client.Get(ctx, "/employees", query, &employees)
	if err != nil {
		return nil, nil, err
	}
	return employees, resp.Pagination, nil
}

// Get devuelve un empleado por ID.
func (s *EmployeesService) Get(ctx context.Context, id string) (*Employee, error) {
	var employee Employee
	_, err := s.client.Get(ctx, "/employees/"+id, nil, &employee)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Create da de alta un empleado (crea también su usuario con rol employee).
func (s *EmployeesService) Create(ctx context.Context, input EmployeeInput) (*Employee, error) {
	var employee Employee
	_, err := s.client.Post(ctx, "/employees", input, &employee)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/employees`)
	return &employee, nil
}

// Update actualiza un empleado.
func (s *EmployeesService) Update(ctx context.Context, id string, input EmployeeInput) (*Employee, error) {
	var employee Employee
	_, err := s.client.Put(ctx, "/employees/"+id, input, &employee)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/employees`)
	return &employee, nil
}

// Deactivate desactiva un empleado (no elimina histórico).
func (s *EmployeesService) Deactivate(ctx context.Context, id string) (*Employee, error) {
	var employee Employee
	_, err := s.client.Patch(ctx, "/employees/"+id+"/deactivate", nil, &employee)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/employees`)
	return &employee, nil
}
