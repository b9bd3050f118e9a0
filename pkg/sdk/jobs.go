package sdk

import (
	"context"
	"net/url"
	"time"

	"github.com/jobblox/crm-api/pkg/apiclient"
)

// JobsService operaciones sobre trabajos.
type JobsService struct {
	client *apiclient.Client
}

// JobListParams filtros de listado de trabajos.
type JobListParams struct {
	PageParams
	Status     string
	CustomerID string
	AssignedTo string
}

// JobInput payload de creación/actualización de trabajo.
type JobInput struct {
	CustomerID     string     `json:"customerId"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	ScheduledDate  *time.Time `json:"scheduledDate,omitempty"`
	EstimatedHours float64    `json:"estimatedHours,omitempty"`
	AssignedTo     []string   `json:"assignedTo,omitempty"`
	Location       Address    `json:"location"`
	Notes          string     `json:"notes,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
}

// List lista trabajos con filtros y paginación.
func (s *JobsService) List(ctx context.Context, params JobListParams) ([]Job, *apiclient.Pagination, error) {
	query := url.Values{}
	params.apply(query)
	setIfNotEmpty(query, "status", params.Status)
	setIfNotEmpty(query, "customerId", params.CustomerID)
	setIfNotEmpty(query, "assignedTo", params.AssignedTo)

	var jobs []Job
	resp, err := s.client.Get(ctx, "/jobs", query, &jobs)
	if err != nil {
		return nil, nil, err
	}
	return jobs, resp.Pagination, nil
}

// Get devuelve un trabajo por ID.
func (s *JobsService) Get(ctx context.Context, id string) (*Job, error) {
	var job Job
	_, err := s.client.Get(ctx, "/jobs/"+id, nil, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Create crea un trabajo (nace en estado draft).
func (s *JobsService) Create(ctx context.Context, input JobInput) (*Job, error) {
	var job Job
	_, err := s.client.Post(ctx, "/jobs", input, &job)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/jobs`)
	return &job, nil
}

// Update actualiza los datos de un trabajo.
func (s *JobsService) Update(ctx context.Context, id string, input JobInput) (*Job, error) {
	var job Job
	_, err := s.client.Put(ctx, "/jobs/"+id, input, &job)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/jobs`)
	return &job, nil
}

// UpdateStatus cambia el estado del trabajo; el servidor valida la transición.
func (s *JobsService) UpdateStatus(ctx context.Context, id, status string) (*Job, error) {
	var job Job
	_, err := s.client.Patch(ctx, "/jobs/"+id+"/status", map[string]string{"status": status}, &job)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/jobs`)
	return &job, nil
}

// Assign asigna empleados al trabajo (reemplaza la lista).
func (s *JobsService) Assign(ctx context.Context, id string, employeeIDs []string) (*Job, error) {
	var job Job
	_, err := s.client.Patch(ctx, "/jobs/"+id+"/assign", map[string][]string{"assignedTo": employeeIDs}, &job)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/jobs`)
	return &job, nil
}

// Delete elimina un trabajo.
func (s *JobsService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/jobs/"+id, nil)
	if err != nil {
		return err
	}
	_ = s.client.InvalidateCache(`/jobs`)
	return nil
}
