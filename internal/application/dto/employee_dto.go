package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeSlotDTO franja horaria de disponibilidad.
type TimeSlotDTO struct {
	Start     string `json:"start" validate:"required,len=5"`
	End       string `json:"end" validate:"required,len=5"`
	Available bool   `json:"available"`
}

// CreateEmployeeRequest alta de empleado; crea también su usuario con rol
// employee y la contraseña temporal indicada.
type CreateEmployeeRequest struct {
	FirstName    string                   `json:"firstName" validate:"required,max=50"`
	LastName     string                   `json:"lastName" validate:"required,max=50"`
	Email        string                   `json:"email" validate:"required,email"`
	Phone        string                   `json:"phone" validate:"omitempty,phone"`
	Password     string                   `json:"password" validate:"required,strongpassword"`
	Department   string                   `json:"department" validate:"omitempty,max=80"`
	Position     string                   `json:"position" validate:"omitempty,max=80"`
	HourlyRate   decimal.Decimal          `json:"hourlyRate"`
	Skills       []string                 `json:"skills" validate:"omitempty,dive,max=60"`
	Availability map[string][]TimeSlotDTO `json:"availability" validate:"omitempty,dive,dive"`
}

// UpdateEmployeeRequest actualización de empleado (sin password).
type UpdateEmployeeRequest struct {
	FirstName    string                   `json:"firstName" validate:"required,max=50"`
	LastName     string                   `json:"lastName" validate:"required,max=50"`
	Phone        string                   `json:"phone" validate:"omitempty,phone"`
	Department   string                   `json:"department" validate:"omitempty,max=80"`
	Position     string                   `json:"position" validate:"omitempty,max=80"`
	HourlyRate   decimal.Decimal          `json:"hourlyRate"`
	Skills       []string                 `json:"skills" validate:"omitempty,dive,max=60"`
	Availability map[string][]TimeSlotDTO `json:"availability" validate:"omitempty,dive,dive"`
}

// ListEmployeesRequest filtros de listado de empleados.
type ListEmployeesRequest struct {
	PageRequest
	Status     string `query:"status" validate:"omitempty,oneof=active inactive"`
	Department string `query:"department" validate:"omitempty,max=80"`
}

// EmployeeResponse empleado en respuestas (incluye datos del usuario).
type EmployeeResponse struct {
	ID             string                   `json:"id"`
	TenantID       string                   `json:"tenantId"`
	UserID         string                   `json:"userId"`
	EmployeeNumber string                   `json:"employeeNumber"`
	FirstName      string                   `json:"firstName"`
	LastName       string                   `json:"lastName"`
	Email          string                   `json:"email"`
	Department     string                   `json:"department,omitempty"`
	Position       string                   `json:"position,omitempty"`
	HourlyRate     decimal.Decimal          `json:"hourlyRate"`
	Skills         []string                 `json:"skills,omitempty"`
	Availability   map[string][]TimeSlotDTO `json:"availability,omitempty"`
	Status         string                   `json:"status"`
	CreatedAt      time.Time                `json:"createdAt"`
}
