package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jobblox/crm-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only de agregación para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetRevenueMetrics devuelve lo facturado (total de facturas emitidas en el rango,
// excluyendo borradores y canceladas) y lo recaudado (pagos completados en el rango).
// Usa COALESCE para devolver cero si el período no tiene movimiento.
func (r *AnalyticsRepo) GetRevenueMetrics(
	ctx context.Context,
	tenantID string,
	from, to time.Time,
) (invoiced, collected decimal.Decimal, err error) {
	const invoicedQuery = `
	SELECT COALESCE(SUM(total), 0)
	FROM invoices
	WHERE tenant_id = $1
	  AND issue_date BETWEEN $2 AND $3
	  AND status NOT IN ('draft', 'cancelled')`

	if err = r.pool.QueryRow(ctx, invoicedQuery, tenantID, from, to).Scan(&invoiced); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.GetRevenueMetrics invoiced: %w", err)
	}

	const collectedQuery = `
	SELECT COALESCE(SUM(amount), 0)
	FROM payments
	WHERE tenant_id = $1
	  AND status = 'completed'
	  AND paid_at BETWEEN $2 AND $3`

	if err = r.pool.QueryRow(ctx, collectedQuery, tenantID, from, to).Scan(&collected); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.GetRevenueMetrics collected: %w", err)
	}
	return invoiced, collected, nil
}

// GetOutstandingBalance devuelve la suma de saldos pendientes de facturas emitidas no pagadas.
func (r *AnalyticsRepo) GetOutstandingBalance(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(balance_due), 0)
	FROM invoices
	WHERE tenant_id = $1
	  AND status IN ('sent', 'viewed', 'partial', 'overdue')`

	var balance decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, tenantID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetOutstandingBalance: %w", err)
	}
	return balance, nil
}

// CountJobsByStatus devuelve el número de trabajos del tenant agrupados por estado.
func (r *AnalyticsRepo) CountJobsByStatus(ctx context.Context, tenantID string) (map[string]int, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM jobs
	WHERE tenant_id = $1
	GROUP BY status`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountJobsByStatus: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics.CountJobsByStatus scan: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// GetTopCustomers devuelve los `limit` clientes con mayor facturación en el rango,
// con el número total de trabajos de cada uno.
func (r *AnalyticsRepo) GetTopCustomers(
	ctx context.Context,
	tenantID string,
	from, to time.Time,
	limit int,
) ([]repository.TopCustomer, error) {
	const query = `
	SELECT
	    c.id                                         AS customer_id,
	    c.name                                       AS customer_name,
	    COALESCE(SUM(i.total), 0)                    AS revenue,
	    (SELECT COUNT(*) FROM jobs j
	      WHERE j.customer_id = c.id)                AS job_count
	FROM customers c
	JOIN invoices i ON i.customer_id = c.id
	WHERE c.tenant_id = $1
	  AND i.issue_date BETWEEN $2 AND $3
	  AND i.status NOT IN ('draft', 'cancelled')
	GROUP BY c.id, c.name
	ORDER BY revenue DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, tenantID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopCustomers: %w", err)
	}
	defer rows.Close()

	var results []repository.TopCustomer
	for rows.Next() {
		var row repository.TopCustomer
		if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.Revenue, &row.JobCount); err != nil {
			return nil, fmt.Errorf("analytics.GetTopCustomers scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetTopCustomers rows: %w", err)
	}
	if results == nil {
		results = []repository.TopCustomer{}
	}
	return results, nil
}
