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

var _ repository.EstimateRepository = (*EstimateRepo)(nil)

// EstimateRepo implementación de EstimateRepository (usable con pool o tx).
// Los items se persisten como documento JSONB: viajan siempre con la cabecera
// y no se consultan por separado.
type EstimateRepo struct {
	q Querier
}

// NewEstimateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEstimateRepository(q Querier) *EstimateRepo {
	return &EstimateRepo{q: q}
}

const estimateColumns = `id, tenant_id, customer_id, job_id, number, title, status, items,
	subtotal, tax, discount, total, valid_until, sent_at, approved_at, notes, created_at, updated_at`

// Create persiste una nueva cotización.
func (r *EstimateRepo) Create(estimate *entity.Estimate) error {
	items, err := marshalLineItems(estimate.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO estimates (` + estimateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.q.Exec(context.Background(), query,
		estimate.ID, estimate.TenantID, estimate.CustomerID, nullIfEmpty(estimate.JobID),
		estimate.Number, estimate.Title, estimate.Status, items,
		estimate.Subtotal, estimate.Tax, estimate.Discount, estimate.Total,
		estimate.ValidUntil, estimate.SentAt, estimate.ApprovedAt, estimate.Notes,
		estimate.CreatedAt, estimate.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert estimate: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID.
func (r *EstimateRepo) GetByID(id string) (*entity.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE id = $1`
	e, err := scanEstimate(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// ListByTenant lista cotizaciones del tenant con filtros y paginación.
func (r *EstimateRepo) ListByTenant(tenantID string, filter repository.EstimateFilter, limit, offset int) ([]*entity.Estimate, int, error) {
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

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM estimates `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count estimates: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM estimates %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		estimateColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list estimates: %w", err)
	}
	defer rows.Close()

	var list []*entity.Estimate
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// Update actualiza una cotización (incluye el reemplazo completo de items).
func (r *EstimateRepo) Update(estimate *entity.Estimate) error {
	items, err := marshalLineItems(estimate.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE estimates
		SET customer_id = $2, job_id = $3, title = $4, status = $5, items = $6,
		    subtotal = $7, tax = $8, discount = $9, total = $10,
		    valid_until = $11, sent_at = $12, approved_at = $13, notes = $14, updated_at = $15
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		estimate.ID, estimate.CustomerID, nullIfEmpty(estimate.JobID), estimate.Title, estimate.Status, items,
		estimate.Subtotal, estimate.Tax, estimate.Discount, estimate.Total,
		estimate.ValidUntil, estimate.SentAt, estimate.ApprovedAt, estimate.Notes, estimate.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update estimate: %w", err)
	}
	return nil
}

// Delete elimina una cotización por ID.
func (r *EstimateRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM estimates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	return nil
}

// NextNumber devuelve el siguiente consecutivo EST-YYYY-NNNN del tenant para el año dado.
// Debe llamarse dentro de la transacción que inserta el documento para evitar huecos por carrera.
func (r *EstimateRepo) NextNumber(tenantID string, year int) (string, error) {
	return nextDocumentNumber(r.q, "estimates", "EST", tenantID, year)
}

func scanEstimate(row pgx.Row) (*entity.Estimate, error) {
	var e entity.Estimate
	var jobID *string
	var items []byte
	err := row.Scan(
		&e.ID, &e.TenantID, &e.CustomerID, &jobID, &e.Number, &e.Title, &e.Status, &items,
		&e.Subtotal, &e.Tax, &e.Discount, &e.Total,
		&e.ValidUntil, &e.SentAt, &e.ApprovedAt, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan estimate: %w", err)
	}
	if jobID != nil {
		e.JobID = *jobID
	}
	e.Items, err = unmarshalLineItems(items)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// nextDocumentNumber calcula el siguiente consecutivo <prefix>-<year>-NNNN por tenant y año.
// Debe llamarse con el Querier de la transacción que inserta el documento: el
// advisory lock serializa la asignación por (tabla, tenant, año) y se libera
// en el COMMIT, de modo que dos Creates concurrentes no leen el mismo MAX.
func nextDocumentNumber(q Querier, table, prefix, tenantID string, year int) (string, error) {
	lockKey := fmt.Sprintf("%s:%s:%d", table, tenantID, year)
	if _, err := q.Exec(context.Background(), `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return "", fmt.Errorf("lock %s numbering: %w", prefix, err)
	}
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(SUBSTRING(number FROM '[0-9]+$')::INT), 0)
		FROM %s WHERE tenant_id = $1 AND number LIKE $2`, table)
	var last int
	if err := q.QueryRow(context.Background(), query, tenantID, pattern).Scan(&last); err != nil {
		return "", fmt.Errorf("next %s number: %w", prefix, err)
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, last+1), nil
}
