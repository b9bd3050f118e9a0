package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jobblox/crm-api/internal/domain"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implementación de JobRepository (usable con pool o tx).
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobColumns = `id, tenant_id, customer_id, title, description, type, status, priority,
	scheduled_date, start_date, end_date, estimated_hours, actual_hours, assigned_to,
	location_street, location_city, location_state, location_zip, location_country,
	notes, tags, created_at, updated_at`

// Create persiste un nuevo trabajo.
func (r *JobRepo) Create(job *entity.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.TenantID, job.CustomerID, job.Title, job.Description,
		job.Type, job.Status, job.Priority,
		job.ScheduledDate, job.StartDate, job.EndDate, job.EstimatedHours, job.ActualHours, job.AssignedTo,
		job.Location.Street, job.Location.City, job.Location.State, job.Location.ZipCode, job.Location.Country,
		job.Notes, job.Tags, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajo por ID.
func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	j, err := scanJob(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return j, nil
}

// ListByTenant lista trabajos del tenant con filtros y paginación.
// AssignedTo filtra por membresía en el arreglo de asignados.
func (r *JobRepo) ListByTenant(tenantID string, filter repository.JobFilter, limit, offset int) ([]*entity.Job, int, error) {
	where := `WHERE tenant_id = $1`
	args := []any{tenantID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		where += fmt.Sprintf(` AND customer_id = $%d`, len(args))
	}
	if filter.AssignedTo != "" {
		args = append(args, filter.AssignedTo)
		where += fmt.Sprintf(` AND $%d = ANY(assigned_to)`, len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM jobs `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var list []*entity.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, j)
	}
	return list, total, rows.Err()
}

// Update actualiza un trabajo.
func (r *JobRepo) Update(job *entity.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, description = $3, type = $4, status = $5, priority = $6,
		    scheduled_date = $7, start_date = $8, end_date = $9,
		    estimated_hours = $10, actual_hours = $11, assigned_to = $12,
		    location_street = $13, location_city = $14, location_state = $15,
		    location_zip = $16, location_country = $17,
		    notes = $18, tags = $19, updated_at = $20
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.Title, job.Description, job.Type, job.Status, job.Priority,
		job.ScheduledDate, job.StartDate, job.EndDate,
		job.EstimatedHours, job.ActualHours, job.AssignedTo,
		job.Location.Street, job.Location.City, job.Location.State, job.Location.ZipCode, job.Location.Country,
		job.Notes, job.Tags, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// Delete elimina un trabajo por ID.
func (r *JobRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	err := row.Scan(
		&j.ID, &j.TenantID, &j.CustomerID, &j.Title, &j.Description,
		&j.Type, &j.Status, &j.Priority,
		&j.ScheduledDate, &j.StartDate, &j.EndDate, &j.EstimatedHours, &j.ActualHours, &j.AssignedTo,
		&j.Location.Street, &j.Location.City, &j.Location.State, &j.Location.ZipCode, &j.Location.Country,
		&j.Notes, &j.Tags, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	return &j, nil
}
