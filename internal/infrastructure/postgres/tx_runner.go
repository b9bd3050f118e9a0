package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobblox/crm-api/internal/application/auth"
	"github.com/jobblox/crm-api/internal/application/billing"
	"github.com/jobblox/crm-api/internal/application/usecase"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// Ensure TxRunner implements every transactional port of the application layer.
var _ auth.BootstrapTxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)
var _ usecase.StaffTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBootstrap inicia una transacción con repos de tenant y usuario (alta tenant+owner).
func (r *TxRunner) RunBootstrap(ctx context.Context, fn func(
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tenantRepo := NewTenantRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(tenantRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling inicia una transacción con los repos de facturación
// (aprobar cotización y registrar/procesar/reembolsar pagos).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	estimateRepo repository.EstimateRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	estimateRepo := NewEstimateRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)
	paymentRepo := NewPaymentRepository(tx)

	if err := fn(estimateRepo, invoiceRepo, paymentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStaff inicia una transacción con repos de usuario y empleado (alta/actualización de personal).
func (r *TxRunner) RunStaff(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	employeeRepo repository.EmployeeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	employeeRepo := NewEmployeeRepository(tx)

	if err := fn(userRepo, employeeRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
