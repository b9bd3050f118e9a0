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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación de EmployeeRepository (usable con pool o tx).
// La disponibilidad semanal se persiste como documento JSONB.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `id, tenant_id, user_id, employee_number, department, position,
	hourly_rate, skills, certifications, availability, status, created_at, updated_at`

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	availability, err := marshalAvailability(employee.Availability)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(context.Background(), query,
		employee.ID, employee.TenantID, employee.UserID, employee.EmployeeNumber,
		employee.Department, employee.Position,
		employee.HourlyRate, employee.Skills, employee.Certifications, availability,
		employee.Status, employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByUserID obtiene el empleado asociado a un usuario.
func (r *EmployeeRepo) GetByUserID(userID string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID))
}

// ListByTenant lista empleados del tenant con filtros y paginación.
func (r *EmployeeRepo) ListByTenant(tenantID string, filter repository.EmployeeFilter, limit, offset int) ([]*entity.Employee, int, error) {
	where := `WHERE tenant_id = $1`
	args := []any{tenantID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		where += fmt.Sprintf(` AND department = $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM employees `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM employees %s ORDER BY employee_number LIMIT $%d OFFSET $%d`,
		employeeColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// Update actualiza un empleado.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	availability, err := marshalAvailability(employee.Availability)
	if err != nil {
		return err
	}
	query := `
		UPDATE employees
		SET department = $2, position = $3, hourly_rate = $4,
		    skills = $5, certifications = $6, availability = $7,
		    status = $8, updated_at = $9
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		employee.ID, employee.Department, employee.Position, employee.HourlyRate,
		employee.Skills, employee.Certifications, availability,
		employee.Status, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// Delete elimina un empleado por ID.
func (r *EmployeeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) scanOne(row pgx.Row) (*entity.Employee, error) {
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	var availability []byte
	err := row.Scan(
		&e.ID, &e.TenantID, &e.UserID, &e.EmployeeNumber,
		&e.Department, &e.Position,
		&e.HourlyRate, &e.Skills, &e.Certifications, &availability,
		&e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	e.Availability, err = unmarshalAvailability(availability)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
