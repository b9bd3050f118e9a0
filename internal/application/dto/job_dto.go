package dto

import "time"

// CreateJobRequest alta de trabajo (nace en estado draft).
type CreateJobRequest struct {
	CustomerID     string     `json:"customerId" validate:"required,uuid4"`
	Title          string     `json:"title" validate:"required,min=2,max=160"`
	Description    string     `json:"description" validate:"omitempty,max=4000"`
	Type           string     `json:"type" validate:"required,oneof=installation repair maintenance consultation emergency"`
	Priority       string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	ScheduledDate  *time.Time `json:"scheduledDate"`
	EstimatedHours float64    `json:"estimatedHours" validate:"omitempty,gte=0"`
	AssignedTo     []string   `json:"assignedTo" validate:"omitempty,dive,uuid4"`
	Location       AddressDTO `json:"location"`
	Notes          string     `json:"notes" validate:"omitempty,max=2000"`
	Tags           []string   `json:"tags" validate:"omitempty,dive,max=40"`
}

// UpdateJobRequest actualización de trabajo (el estado se cambia aparte).
type UpdateJobRequest = CreateJobRequest

// UpdateJobStatusRequest cambio de estado; el servidor valida la transición.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft scheduled in_progress completed cancelled on_hold"`
}

// AssignJobRequest reemplaza la lista de empleados asignados.
type AssignJobRequest struct {
	AssignedTo []string `json:"assignedTo" validate:"required,dive,uuid4"`
}

// ListJobsRequest filtros de listado de trabajos.
type ListJobsRequest struct {
	PageRequest
	Status     string `query:"status" validate:"omitempty,oneof=draft scheduled in_progress completed cancelled on_hold"`
	CustomerID string `query:"customerId" validate:"omitempty,uuid4"`
	AssignedTo string `query:"assignedTo" validate:"omitempty,uuid4"`
}

// JobResponse trabajo en respuestas.
type JobResponse struct {
	ID             string     `json:"id"`
	TenantID       string     `json:"tenantId"`
	CustomerID     string     `json:"customerId"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	ScheduledDate  *time.Time `json:"scheduledDate,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	EstimatedHours float64    `json:"estimatedHours,omitempty"`
	ActualHours    float64    `json:"actualHours,omitempty"`
	AssignedTo     []string   `json:"assignedTo,omitempty"`
	Location       AddressDTO `json:"location"`
	Notes          string     `json:"notes,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
