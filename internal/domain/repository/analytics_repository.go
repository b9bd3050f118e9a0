package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopCustomer fila del widget de mejores clientes del dashboard.
type TopCustomer struct {
	CustomerID   string
	CustomerName string
	Revenue      decimal.Decimal
	JobCount     int
}

// AnalyticsRepository consultas read-only de agregación para el dashboard.
// Se separa de los repositorios CRUD porque sus queries cruzan varias tablas.
type AnalyticsRepository interface {
	// GetRevenueMetrics devuelve lo facturado y lo recaudado en el rango.
	GetRevenueMetrics(ctx context.Context, tenantID string, from, to time.Time) (invoiced, collected decimal.Decimal, err error)
	// GetOutstandingBalance devuelve la suma de saldos pendientes de facturas no pagadas.
	GetOutstandingBalance(ctx context.Context, tenantID string) (decimal.Decimal, error)
	// CountJobsByStatus devuelve el número de trabajos por estado.
	CountJobsByStatus(ctx context.Context, tenantID string) (map[string]int, error)
	// GetTopCustomers devuelve los mejores clientes por facturación en el rango.
	GetTopCustomers(ctx context.Context, tenantID string, from, to time.Time, limit int) ([]TopCustomer, error)
}
