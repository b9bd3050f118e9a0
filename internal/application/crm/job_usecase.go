package crm

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// JobUseCase CRUD y ciclo de vida de trabajos.
type JobUseCase struct {
	jobRepo      repository.JobRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(jobRepo repository.JobRepository, customerRepo repository.CustomerRepository, employeeRepo repository.EmployeeRepository) *JobUseCase {
	return &JobUseCase{jobRepo: jobRepo, customerRepo: customerRepo, employeeRepo: employeeRepo}
}

// Create da de alta un trabajo en estado draft. Valida que el cliente y los
// empleados asignados pertenezcan al tenant.
func (uc *JobUseCase) Create(ctx context.Context, tenantID string, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	if err := uc.validateAssignees(tenantID, in.AssignedTo); err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = entity.JobPriorityMedium
	}
	now := time.Now()
	job := &entity.Job{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		CustomerID:     in.CustomerID,
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		Status:         entity.JobStatusDraft,
		Priority:       priority,
		ScheduledDate:  in.ScheduledDate,
		EstimatedHours: in.EstimatedHours,
		AssignedTo:     in.AssignedTo,
		Location:       toAddress(in.Location),
		Notes:          in.Notes,
		Tags:           in.Tags,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.jobRepo.Create(job); err != nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

// Get devuelve un trabajo por ID, verificando que pertenezca al tenant.
func (uc *JobUseCase) Get(ctx context.Context, tenantID, id string) (*dto.JobResponse, error) {
	job, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

// List lista trabajos del tenant con filtros y paginación.
func (uc *JobUseCase) List(ctx context.Context, tenantID string, in dto.ListJobsRequest) ([]dto.JobResponse, dto.Pagination, error) {
	in.DefaultPage()
	filter := repository.JobFilter{
		Status:     in.Status,
		CustomerID: in.CustomerID,
		AssignedTo: in.AssignedTo,
	}
	jobs, total, err := uc.jobRepo.ListByTenant(tenantID, filter, in.Limit, in.Offset())
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, *toJobResponse(j))
	}
	return out, dto.NewPagination(in.Page, in.Limit, total), nil
}

// Update actualiza los datos de un trabajo (el estado se cambia con UpdateStatus).
func (uc *JobUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.validateAssignees(tenantID, in.AssignedTo); err != nil {
		return nil, err
	}

	job.Title = in.Title
	job.Description = in.Description
	job.Type = in.Type
	if in.Priority != "" {
		job.Priority = in.Priority
	}
	job.ScheduledDate = in.ScheduledDate
	job.EstimatedHours = in.EstimatedHours
	job.AssignedTo = in.AssignedTo
	job.Location = toAddress(in.Location)
	job.Notes = in.Notes
	job.Tags = in.Tags
	job.UpdatedAt = time.Now()

	if err := uc.jobRepo.Update(job); err != nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

// UpdateStatus aplica una transición de estado validada por la tabla del
// dominio. Devuelve ErrInvalidTransition si el cambio no está permitido.
func (uc *JobUseCase) UpdateStatus(ctx context.Context, tenantID, id, status string) (*dto.JobResponse, error) {
	job, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransitionJob(job.Status, status) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	switch status {
	case entity.JobStatusInProgress:
		if job.StartDate == nil {
			job.StartDate = &now
		}
	case entity.JobStatusCompleted:
		job.EndDate = &now
	}
	job.Status = status
	job.UpdatedAt = now

	if err := uc.jobRepo.Update(job); err != nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

// Assign reemplaza la lista de empleados asignados.
func (uc *JobUseCase) Assign(ctx context.Context, tenantID, id string, employeeIDs []string) (*dto.JobResponse, error) {
	job, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.validateAssignees(tenantID, employeeIDs); err != nil {
		return nil, err
	}
	job.AssignedTo = employeeIDs
	job.UpdatedAt = time.Now()
	if err := uc.jobRepo.Update(job); err != nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

// Delete elimina un trabajo. Solo se permiten borrar borradores y cancelados.
func (uc *JobUseCase) Delete(ctx context.Context, tenantID, id string) error {
	job, err := uc.getOwned(tenantID, id)
	if err != nil {
		return err
	}
	if job.Status != entity.JobStatusDraft && job.Status != entity.JobStatusCancelled {
		return domain.ErrConflict
	}
	return uc.jobRepo.Delete(id)
}

func (uc *JobUseCase) getOwned(tenantID, id string) (*entity.Job, error) {
	job, err := uc.jobRepo.GetByID(id)
	if err != nil || job == nil {
		return nil, domain.ErrNotFound
	}
	if job.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return job, nil
}

func (uc *JobUseCase) validateAssignees(tenantID string, employeeIDs []string) error {
	for _, employeeID := range employeeIDs {
		employee, err := uc.employeeRepo.GetByID(employeeID)
		if err != nil || employee == nil {
			return domain.ErrNotFound
		}
		if employee.TenantID != tenantID {
			return domain.ErrForbidden
		}
	}
	return nil
}

func toJobResponse(j *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:             j.ID,
		TenantID:       j.TenantID,
		CustomerID:     j.CustomerID,
		Title:          j.Title,
		Description:    j.Description,
		Type:           j.Type,
		Status:         j.Status,
		Priority:       j.Priority,
		ScheduledDate:  j.ScheduledDate,
		StartDate:      j.StartDate,
		EndDate:        j.EndDate,
		EstimatedHours: j.EstimatedHours,
		ActualHours:    j.ActualHours,
		AssignedTo:     j.AssignedTo,
		Location:       toAddressDTO(j.Location),
		Notes:          j.Notes,
		Tags:           j.Tags,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}
