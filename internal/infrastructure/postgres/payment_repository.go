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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, tenant_id, invoice_id, customer_id, amount, method, status,
	reference, paid_at, created_at, updated_at`

// Create persiste un nuevo pago.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.TenantID, payment.InvoiceID, payment.CustomerID,
		payment.Amount, payment.Method, payment.Status,
		payment.Reference, payment.PaidAt, payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ListByTenant lista pagos del tenant con filtros y paginación.
func (r *PaymentRepo) ListByTenant(tenantID string, filter repository.PaymentFilter, limit, offset int) ([]*entity.Payment, int, error) {
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
	if filter.InvoiceID != "" {
		args = append(args, filter.InvoiceID)
		where += fmt.Sprintf(` AND invoice_id = $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM payments `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM payments %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		paymentColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Update actualiza un pago (cambios de estado: process, refund).
func (r *PaymentRepo) Update(payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET amount = $2, method = $3, status = $4, reference = $5, paid_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.Amount, payment.Method, payment.Status,
		payment.Reference, payment.PaidAt, payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID, &p.TenantID, &p.InvoiceID, &p.CustomerID,
		&p.Amount, &p.Method, &p.Status,
		&p.Reference, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	return &p, nil
}
