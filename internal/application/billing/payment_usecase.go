package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain"
	domainbilling "github.com/jobblox/crm-api/internal/domain/billing"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// PaymentUseCase registro y reversa de pagos. Toda mutación que toca pago y
// factura corre dentro de una transacción.
type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
	txRunner    BillingTxRunner
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(paymentRepo repository.PaymentRepository, invoiceRepo repository.InvoiceRepository, txRunner BillingTxRunner) *PaymentUseCase {
	return &PaymentUseCase{paymentRepo: paymentRepo, invoiceRepo: invoiceRepo, txRunner: txRunner}
}

// Create registra un pago completado contra una factura y actualiza saldo y
// estado de la factura en la misma transacción. Devuelve ErrOverpayment si
// el monto excede el saldo pendiente.
func (uc *PaymentUseCase) Create(ctx context.Context, tenantID string, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	invoice, err := uc.ownedInvoice(tenantID, in.InvoiceID)
	if err != nil {
		return nil, err
	}
	switch invoice.Status {
	case entity.InvoiceStatusCancelled, entity.InvoiceStatusDraft:
		return nil, domain.ErrConflict
	}
	if in.Amount.GreaterThan(invoice.BalanceDue) {
		return nil, domain.ErrOverpayment
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		InvoiceID:  invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     in.Amount,
		Method:     in.Method,
		Status:     entity.PaymentStatusCompleted,
		Reference:  in.Reference,
		PaidAt:     &now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.EstimateRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		applyPayment(invoice, in.Amount, now)
		return invoiceRepo.Update(invoice)
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// Get devuelve un pago del tenant.
func (uc *PaymentUseCase) Get(ctx context.Context, tenantID, id string) (*dto.PaymentResponse, error) {
	payment, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// List lista pagos del tenant con filtros y paginación.
func (uc *PaymentUseCase) List(ctx context.Context, tenantID string, in dto.ListPaymentsRequest) ([]dto.PaymentResponse, dto.Pagination, error) {
	in.DefaultPage()
	filter := repository.PaymentFilter{
		Status:     in.Status,
		CustomerID: in.CustomerID,
		InvoiceID:  in.InvoiceID,
	}
	payments, total, err := uc.paymentRepo.ListByTenant(tenantID, filter, in.Limit, in.Offset())
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, *toPaymentResponse(p))
	}
	return out, dto.NewPagination(in.Page, in.Limit, total), nil
}

// Process confirma un pago pendiente y lo aplica a la factura.
func (uc *PaymentUseCase) Process(ctx context.Context, tenantID, id string) (*dto.PaymentResponse, error) {
	payment, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	if payment.Status != entity.PaymentStatusPending {
		return nil, domain.ErrConflict
	}
	invoice, err := uc.ownedInvoice(tenantID, payment.InvoiceID)
	if err != nil {
		return nil, err
	}
	if payment.Amount.GreaterThan(invoice.BalanceDue) {
		return nil, domain.ErrOverpayment
	}

	now := time.Now()
	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.EstimateRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		payment.Status = entity.PaymentStatusCompleted
		payment.PaidAt = &now
		payment.UpdatedAt = now
		if err := paymentRepo.Update(payment); err != nil {
			return err
		}
		applyPayment(invoice, payment.Amount, now)
		return invoiceRepo.Update(invoice)
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// Refund reversa un pago completado; la factura recupera el saldo y deja de
// figurar como pagada.
func (uc *PaymentUseCase) Refund(ctx context.Context, tenantID, id string) (*dto.PaymentResponse, error) {
	payment, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	if payment.Status != entity.PaymentStatusCompleted {
		return nil, domain.ErrConflict
	}
	invoice, err := uc.ownedInvoice(tenantID, payment.InvoiceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.EstimateRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		payment.Status = entity.PaymentStatusRefunded
		payment.UpdatedAt = now
		if err := paymentRepo.Update(payment); err != nil {
			return err
		}
		invoice.PaidAmount = invoice.PaidAmount.Sub(payment.Amount)
		if invoice.PaidAmount.IsNegative() {
			invoice.PaidAmount = decimal.Zero
		}
		invoice.BalanceDue = domainbilling.BalanceDue(invoice.Total, invoice.PaidAmount)
		invoice.PaidAt = nil
		if invoice.PaidAmount.IsZero() {
			invoice.Status = entity.InvoiceStatusSent
		} else {
			invoice.Status = entity.InvoiceStatusPartial
		}
		invoice.UpdatedAt = now
		return invoiceRepo.Update(invoice)
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// applyPayment aplica un monto a la factura y recalcula saldo y estado.
func applyPayment(invoice *entity.Invoice, amount decimal.Decimal, now time.Time) {
	invoice.PaidAmount = invoice.PaidAmount.Add(amount)
	invoice.BalanceDue = domainbilling.BalanceDue(invoice.Total, invoice.PaidAmount)
	if invoice.BalanceDue.IsZero() {
		invoice.Status = entity.InvoiceStatusPaid
		invoice.PaidAt = &now
	} else {
		invoice.Status = entity.InvoiceStatusPartial
	}
	invoice.UpdatedAt = now
}

func (uc *PaymentUseCase) getOwned(tenantID, id string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil || payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return payment, nil
}

func (uc *PaymentUseCase) ownedInvoice(tenantID, invoiceID string) (*entity.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return invoice, nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:         p.ID,
		TenantID:   p.TenantID,
		InvoiceID:  p.InvoiceID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount,
		Method:     p.Method,
		Status:     p.Status,
		Reference:  p.Reference,
		PaidAt:     p.PaidAt,
		CreatedAt:  p.CreatedAt,
	}
}
