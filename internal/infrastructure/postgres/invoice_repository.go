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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Igual que en estimates, los items viven en una columna JSONB.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, tenant_id, customer_id, job_id, estimate_id, number, title, status, items,
	subtotal, tax, discount, total, paid_amount, balance_due,
	issue_date, due_date, sent_at, paid_at, terms, notes, created_at, updated_at`

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	items, err := marshalLineItems(invoice.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err = r.q.Exec(context.Background(), query,
		invoice.ID, invoice.TenantID, invoice.CustomerID,
		nullIfEmpty(invoice.JobID), nullIfEmpty(invoice.EstimateID),
		invoice.Number, invoice.Title, invoice.Status, items,
		invoice.Subtotal, invoice.Tax, invoice.Discount, invoice.Total,
		invoice.PaidAmount, invoice.BalanceDue,
		invoice.IssueDate, invoice.DueDate, invoice.SentAt, invoice.PaidAt,
		invoice.Terms, invoice.Notes, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

// ListByTenant lista facturas del tenant con filtros y paginación.
func (r *InvoiceRepo) ListByTenant(tenantID string, filter repository.InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error) {
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
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM invoices `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM invoices %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		invoiceColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, inv)
	}
	return list, total, rows.Err()
}

// Update actualiza una factura completa (cabecera, items y saldos).
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	items, err := marshalLineItems(invoice.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE invoices
		SET customer_id = $2, job_id = $3, estimate_id = $4, title = $5, status = $6, items = $7,
		    subtotal = $8, tax = $9, discount = $10, total = $11,
		    paid_amount = $12, balance_due = $13,
		    issue_date = $14, due_date = $15, sent_at = $16, paid_at = $17,
		    terms = $18, notes = $19, updated_at = $20
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CustomerID,
		nullIfEmpty(invoice.JobID), nullIfEmpty(invoice.EstimateID),
		invoice.Title, invoice.Status, items,
		invoice.Subtotal, invoice.Tax, invoice.Discount, invoice.Total,
		invoice.PaidAmount, invoice.BalanceDue,
		invoice.IssueDate, invoice.DueDate, invoice.SentAt, invoice.PaidAt,
		invoice.Terms, invoice.Notes, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// Delete elimina una factura por ID.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// NextNumber devuelve el siguiente consecutivo INV-YYYY-NNNN del tenant para el año dado.
// Debe llamarse dentro de la transacción que inserta el documento para evitar huecos por carrera.
func (r *InvoiceRepo) NextNumber(tenantID string, year int) (string, error) {
	return nextDocumentNumber(r.q, "invoices", "INV", tenantID, year)
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var jobID, estimateID *string
	var items []byte
	err := row.Scan(
		&inv.ID, &inv.TenantID, &inv.CustomerID, &jobID, &estimateID,
		&inv.Number, &inv.Title, &inv.Status, &items,
		&inv.Subtotal, &inv.Tax, &inv.Discount, &inv.Total,
		&inv.PaidAmount, &inv.BalanceDue,
		&inv.IssueDate, &inv.DueDate, &inv.SentAt, &inv.PaidAt,
		&inv.Terms, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	if jobID != nil {
		inv.JobID = *jobID
	}
	if estimateID != nil {
		inv.EstimateID = *estimateID
	}
	inv.Items, err = unmarshalLineItems(items)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
