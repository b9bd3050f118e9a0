// Package analytics contiene el caso de uso del dashboard de métricas del tenant.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

const dashboardTopCustomers = 5 // número de clientes en el widget del dashboard

// DashboardUseCase genera el resumen operativo y financiero del tenant.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). No accede a las
// tablas de facturas o trabajos directamente; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetStats construye las métricas del dashboard para el tenant.
//
// Cuatro consultas en paralelo:
//  1. GetRevenueMetrics(mes)  → facturado y recaudado
//  2. GetOutstandingBalance   → saldo pendiente total
//  3. CountJobsByStatus       → trabajos por estado
//  4. GetTopCustomers(mes)    → mejores clientes
func (uc *DashboardUseCase) GetStats(ctx context.Context, tenantID string) (*dto.DashboardStatsResponse, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := now

	type revenueResult struct {
		invoiced  decimal.Decimal
		collected decimal.Decimal
		err       error
	}
	type balanceResult struct {
		balance decimal.Decimal
		err     error
	}
	type jobsResult struct {
		counts map[string]int
		err    error
	}
	type customersResult struct {
		customers []repository.TopCustomer
		err       error
	}

	revenueCh := make(chan revenueResult, 1)
	balanceCh := make(chan balanceResult, 1)
	jobsCh := make(chan jobsResult, 1)
	customersCh := make(chan customersResult, 1)

	go func() {
		invoiced, collected, err := uc.analyticsRepo.GetRevenueMetrics(ctx, tenantID, monthStart, monthEnd)
		revenueCh <- revenueResult{invoiced, collected, err}
	}()
	go func() {
		balance, err := uc.analyticsRepo.GetOutstandingBalance(ctx, tenantID)
		balanceCh <- balanceResult{balance, err}
	}()
	go func() {
		counts, err := uc.analyticsRepo.CountJobsByStatus(ctx, tenantID)
		jobsCh <- jobsResult{counts, err}
	}()
	go func() {
		customers, err := uc.analyticsRepo.GetTopCustomers(ctx, tenantID, monthStart, monthEnd, dashboardTopCustomers)
		customersCh <- customersResult{customers, err}
	}()

	revenue := <-revenueCh
	balance := <-balanceCh
	jobs := <-jobsCh
	customers := <-customersCh

	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de ingreso: %w", revenue.err)
	}
	if balance.err != nil {
		return nil, fmt.Errorf("dashboard: saldo pendiente: %w", balance.err)
	}
	if jobs.err != nil {
		return nil, fmt.Errorf("dashboard: trabajos por estado: %w", jobs.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: mejores clientes: %w", customers.err)
	}

	topCustomers := make([]dto.TopCustomerDTO, 0, len(customers.customers))
	for _, c := range customers.customers {
		topCustomers = append(topCustomers, dto.TopCustomerDTO{
			CustomerID: c.CustomerID,
			Name:       c.CustomerName,
			Revenue:    c.Revenue.Round(2),
			JobCount:   c.JobCount,
		})
	}

	return &dto.DashboardStatsResponse{
		RevenueInvoiced:    revenue.invoiced.Round(2),
		RevenueCollected:   revenue.collected.Round(2),
		OutstandingBalance: balance.balance.Round(2),
		JobsByStatus:       jobs.counts,
		TopCustomers:       topCustomers,
	}, nil
}
