package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobblox/crm-api/internal/application/billing"
	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. La transacción del fake
// ejecuta el callback directamente contra los mismos mapas: suficiente para
// verificar la lógica de saldo y estado sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeEstimateRepo struct {
	byID         map[string]*entity.Estimate
	seq          int
	onNextNumber func()
}

func newFakeEstimateRepo() *fakeEstimateRepo {
	return &fakeEstimateRepo{byID: map[string]*entity.Estimate{}}
}

func (r *fakeEstimateRepo) Create(e *entity.Estimate) error { r.byID[e.ID] = e; return nil }
func (r *fakeEstimateRepo) GetByID(id string) (*entity.Estimate, error) {
	return r.byID[id], nil
}
func (r *fakeEstimateRepo) ListByTenant(tenantID string, _ repository.EstimateFilter, _, _ int) ([]*entity.Estimate, int, error) {
	var out []*entity.Estimate
	for _, e := range r.byID {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}
func (r *fakeEstimateRepo) Update(e *entity.Estimate) error { r.byID[e.ID] = e; return nil }
func (r *fakeEstimateRepo) Delete(id string) error          { delete(r.byID, id); return nil }
func (r *fakeEstimateRepo) NextNumber(_ string, year int) (string, error) {
	if r.onNextNumber != nil {
		r.onNextNumber()
	}
	r.seq++
	return fmt.Sprintf("EST-%d-%04d", year, r.seq), nil
}

type fakeInvoiceRepo struct {
	byID         map[string]*entity.Invoice
	seq          int
	onNextNumber func()
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byID: map[string]*entity.Invoice{}}
}

func (r *fakeInvoiceRepo) Create(i *entity.Invoice) error { r.byID[i.ID] = i; return nil }
func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.byID[id], nil
}
func (r *fakeInvoiceRepo) ListByTenant(tenantID string, _ repository.InvoiceFilter, _, _ int) ([]*entity.Invoice, int, error) {
	var out []*entity.Invoice
	for _, i := range r.byID {
		if i.TenantID == tenantID {
			out = append(out, i)
		}
	}
	return out, len(out), nil
}
func (r *fakeInvoiceRepo) Update(i *entity.Invoice) error { r.byID[i.ID] = i; return nil }
func (r *fakeInvoiceRepo) Delete(id string) error         { delete(r.byID, id); return nil }
func (r *fakeInvoiceRepo) NextNumber(_ string, year int) (string, error) {
	if r.onNextNumber != nil {
		r.onNextNumber()
	}
	r.seq++
	return fmt.Sprintf("INV-%d-%04d", year, r.seq), nil
}

type fakePaymentRepo struct {
	byID map[string]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byID: map[string]*entity.Payment{}}
}

func (r *fakePaymentRepo) Create(p *entity.Payment) error { r.byID[p.ID] = p; return nil }
func (r *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	return r.byID[id], nil
}
func (r *fakePaymentRepo) ListByTenant(tenantID string, _ repository.PaymentFilter, _, _ int) ([]*entity.Payment, int, error) {
	var out []*entity.Payment
	for _, p := range r.byID {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}
func (r *fakePaymentRepo) Update(p *entity.Payment) error { r.byID[p.ID] = p; return nil }

type fakeTxRunner struct {
	estimates *fakeEstimateRepo
	invoices  *fakeInvoiceRepo
	payments  *fakePaymentRepo
	inTx      bool
}

func (t *fakeTxRunner) RunBilling(_ context.Context, fn func(
	repository.EstimateRepository,
	repository.InvoiceRepository,
	repository.PaymentRepository,
) error) error {
	t.inTx = true
	defer func() { t.inTx = false }()
	return fn(t.estimates, t.invoices, t.payments)
}

// billingFixture entorno de prueba con una factura enviada de $500.
type billingFixture struct {
	tenantID  string
	invoice   *entity.Invoice
	estimates *fakeEstimateRepo
	invoices  *fakeInvoiceRepo
	payments  *fakePaymentRepo
	paymentUC *billing.PaymentUseCase
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()
	estimates := newFakeEstimateRepo()
	invoices := newFakeInvoiceRepo()
	payments := newFakePaymentRepo()
	tx := &fakeTxRunner{estimates: estimates, invoices: invoices, payments: payments}

	tenantID := uuid.New().String()
	total := decimal.NewFromInt(500)
	now := time.Now()
	invoice := &entity.Invoice{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		CustomerID: uuid.New().String(),
		Number:     "INV-2026-0001",
		Status:     entity.InvoiceStatusSent,
		Total:      total,
		PaidAmount: decimal.Zero,
		BalanceDue: total,
		IssueDate:  now,
		DueDate:    now.AddDate(0, 1, 0),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, invoices.Create(invoice))

	return &billingFixture{
		tenantID:  tenantID,
		invoice:   invoice,
		estimates: estimates,
		invoices:  invoices,
		payments:  payments,
		paymentUC: billing.NewPaymentUseCase(payments, invoices, tx),
	}
}

func paymentReq(invoiceID string, amount int64) dto.CreatePaymentRequest {
	return dto.CreatePaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(amount),
		Method:    entity.PaymentMethodCard,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests PaymentUseCase
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Un pago parcial deja la factura en partial con el saldo reducido.
func TestPaymentCreate_PagoParcial(t *testing.T) {
	fx := newBillingFixture(t)

	resp, err := fx.paymentUC.Create(context.Background(), fx.tenantID, paymentReq(fx.invoice.ID, 200))
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusCompleted, resp.Status)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(200)))

	inv, _ := fx.invoices.GetByID(fx.invoice.ID)
	assert.Equal(t, entity.InvoiceStatusPartial, inv.Status)
	assert.True(t, inv.PaidAmount.Equal(decimal.NewFromInt(200)), "PaidAmount debe acumular el pago")
	assert.True(t, inv.BalanceDue.Equal(decimal.NewFromInt(300)), "BalanceDue = Total - PaidAmount")
	assert.Nil(t, inv.PaidAt, "una factura parcial no tiene PaidAt")
}

// Caso 2: Un pago por el saldo completo deja la factura en paid con PaidAt.
func TestPaymentCreate_PagoCompleto(t *testing.T) {
	fx := newBillingFixture(t)

	_, err := fx.paymentUC.Create(context.Background(), fx.tenantID, paymentReq(fx.invoice.ID, 500))
	require.NoError(t, err)

	inv, _ := fx.invoices.GetByID(fx.invoice.ID)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.BalanceDue.IsZero())
	assert.NotNil(t, inv.PaidAt)
}

// Caso 3: Un pago mayor al saldo pendiente se rechaza con ErrOverpayment
// y no modifica la factura.
func TestPaymentCreate_Sobrepago(t *testing.T) {
	fx := newBillingFixture(t)

	_, err := fx.paymentUC.Create(context.Background(), fx.tenantID, paymentReq(fx.invoice.ID, 600))
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	inv, _ := fx.invoices.GetByID(fx.invoice.ID)
	assert.True(t, inv.PaidAmount.IsZero(), "un sobrepago rechazado no debe tocar la factura")
	assert.Equal(t, entity.InvoiceStatusSent, inv.Status)
}

// Caso 4: Montos cero o negativos se rechazan.
func TestPaymentCreate_MontoInvalido(t *testing.T) {
	fx := newBillingFixture(t)

	_, err := fx.paymentUC.Create(context.Background(), fx.tenantID, paymentReq(fx.invoice.ID, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 5: No se puede pagar una factura en draft ni cancelada.
func TestPaymentCreate_FacturaNoPagable(t *testing.T) {
	fx := newBillingFixture(t)

	for _, status := range []string{entity.InvoiceStatusDraft, entity.InvoiceStatusCancelled} {
		fx.invoice.Status = status
		_, err := fx.paymentUC.Create(context.Background(), fx.tenantID, paymentReq(fx.invoice.ID, 100))
		assert.ErrorIs(t, err, domain.ErrConflict, "estado %s no admite pagos", status)
	}
}

// Caso 6: Una factura de otro tenant es invisible para el caller.
func TestPaymentCreate_OtroTenant(t *testing.T) {
	fx := newBillingFixture(t)

	_, err := fx.paymentUC.Create(context.Background(), uuid.New().String(), paymentReq(fx.invoice.ID, 100))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Caso 7: El refund de un pago completado devuelve el saldo a la factura.
// Si queda en cero pagado, la factura vuelve a sent.
func TestPaymentRefund_RestauraSaldo(t *testing.T) {
	fx := newBillingFixture(t)

	resp, err := fx.paymentUC.Create(context.Background(), fx.tenantID, paymentReq(fx.invoice.ID, 500))
	require.NoError(t, err)

	refunded, err := fx.paymentUC.Refund(context.Background(), fx.tenantID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRefunded, refunded.Status)

	inv, _ := fx.invoices.GetByID(fx.invoice.ID)
	assert.Equal(t, entity.InvoiceStatusSent, inv.Status)
	assert.True(t, inv.PaidAmount.IsZero())
	assert.True(t, inv.BalanceDue.Equal(inv.Total))
	assert.Nil(t, inv.PaidAt)
}

// Caso 8: Refund sobre un pago que no está completed se rechaza.
func TestPaymentRefund_SoloCompletados(t *testing.T) {
	fx := newBillingFixture(t)

	pending := &entity.Payment{
		ID:        uuid.New().String(),
		TenantID:  fx.tenantID,
		InvoiceID: fx.invoice.ID,
		Amount:    decimal.NewFromInt(100),
		Method:    entity.PaymentMethodCash,
		Status:    entity.PaymentStatusPending,
	}
	require.NoError(t, fx.payments.Create(pending))

	_, err := fx.paymentUC.Refund(context.Background(), fx.tenantID, pending.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Caso 9: Process confirma un pago pendiente y lo aplica a la factura.
func TestPaymentProcess_AplicaPendiente(t *testing.T) {
	fx := newBillingFixture(t)

	pending := &entity.Payment{
		ID:        uuid.New().String(),
		TenantID:  fx.tenantID,
		InvoiceID: fx.invoice.ID,
		Amount:    decimal.NewFromInt(500),
		Method:    entity.PaymentMethodTransfer,
		Status:    entity.PaymentStatusPending,
	}
	require.NoError(t, fx.payments.Create(pending))

	resp, err := fx.paymentUC.Process(context.Background(), fx.tenantID, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCompleted, resp.Status)
	assert.NotNil(t, resp.PaidAt)

	inv, _ := fx.invoices.GetByID(fx.invoice.ID)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests EstimateUseCase.Approve — conversión cotización → factura
// ──────────────────────────────────────────────────────────────────────────────

func newEstimateUC(fx *billingFixture) *billing.EstimateUseCase {
	tx := &fakeTxRunner{estimates: fx.estimates, invoices: fx.invoices, payments: fx.payments}
	return billing.NewEstimateUseCase(fx.estimates, fx.invoices, nil, tx, nil)
}

func sentEstimate(t *testing.T, fx *billingFixture) *entity.Estimate {
	t.Helper()
	now := time.Now()
	sent := now.AddDate(0, 0, -3)
	estimate := &entity.Estimate{
		ID:         uuid.New().String(),
		TenantID:   fx.tenantID,
		CustomerID: uuid.New().String(),
		Number:     "EST-2026-0001",
		Title:      "Panel upgrade",
		Status:     entity.EstimateStatusSent,
		Items: []entity.LineItem{{
			ID:          uuid.New().String(),
			Description: "Labor",
			Quantity:    decimal.NewFromInt(8),
			Unit:        "hours",
			UnitPrice:   decimal.NewFromInt(90),
			Total:       decimal.NewFromInt(720),
			Taxable:     true,
		}},
		Subtotal:   decimal.NewFromInt(720),
		Tax:        decimal.NewFromInt(57),
		Discount:   decimal.Zero,
		Total:      decimal.NewFromInt(777),
		ValidUntil: now.AddDate(0, 1, 0),
		SentAt:     &sent,
		CreatedAt:  sent,
		UpdatedAt:  sent,
	}
	require.NoError(t, fx.estimates.Create(estimate))
	return estimate
}

// Caso 1: Aprobar una cotización enviada crea la factura en draft con los
// mismos items y totales, y marca la cotización como approved.
func TestEstimateApprove_CreaFactura(t *testing.T) {
	fx := newBillingFixture(t)
	uc := newEstimateUC(fx)
	estimate := sentEstimate(t, fx)

	invoice, err := uc.Approve(context.Background(), fx.tenantID, estimate.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, estimate.ID, invoice.EstimateID)
	assert.Equal(t, estimate.CustomerID, invoice.CustomerID)
	assert.True(t, invoice.Total.Equal(estimate.Total))
	assert.True(t, invoice.BalanceDue.Equal(estimate.Total), "la factura nace sin pagos")
	assert.Regexp(t, `^INV-\d{4}-\d{4}$`, invoice.Number)

	est, _ := fx.estimates.GetByID(estimate.ID)
	assert.Equal(t, entity.EstimateStatusApproved, est.Status)
	assert.NotNil(t, est.ApprovedAt)
}

// Caso 2: Una cotización en draft no es aprobable (el cliente nunca la vio).
func TestEstimateApprove_DraftRechazado(t *testing.T) {
	fx := newBillingFixture(t)
	uc := newEstimateUC(fx)
	estimate := sentEstimate(t, fx)
	estimate.Status = entity.EstimateStatusDraft

	_, err := uc.Approve(context.Background(), fx.tenantID, estimate.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Caso 3: Una cotización vencida no es aprobable.
func TestEstimateApprove_VencidaRechazada(t *testing.T) {
	fx := newBillingFixture(t)
	uc := newEstimateUC(fx)
	estimate := sentEstimate(t, fx)
	estimate.ValidUntil = time.Now().AddDate(0, 0, -1)

	_, err := uc.Approve(context.Background(), fx.tenantID, estimate.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Caso 4: Aprobar dos veces no genera dos facturas.
func TestEstimateApprove_Idempotencia(t *testing.T) {
	fx := newBillingFixture(t)
	uc := newEstimateUC(fx)
	estimate := sentEstimate(t, fx)

	_, err := uc.Approve(context.Background(), fx.tenantID, estimate.ID)
	require.NoError(t, err)

	_, err = uc.Approve(context.Background(), fx.tenantID, estimate.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una cotización approved no se aprueba de nuevo")
}
