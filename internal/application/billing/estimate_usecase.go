package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain"
	domainbilling "github.com/jobblox/crm-api/internal/domain/billing"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// EstimateUseCase ciclo de vida de cotizaciones: draft → sent → approved,
// con conversión a factura al aprobar.
type EstimateUseCase struct {
	estimateRepo repository.EstimateRepository
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	txRunner     BillingTxRunner
	mailer       MailSender
}

// NewEstimateUseCase construye el caso de uso.
func NewEstimateUseCase(
	estimateRepo repository.EstimateRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	txRunner BillingTxRunner,
	mailer MailSender,
) *EstimateUseCase {
	return &EstimateUseCase{
		estimateRepo: estimateRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		txRunner:     txRunner,
		mailer:       mailer,
	}
}

// Create crea una cotización en draft con número consecutivo EST-YYYY-NNNN.
// Los totales se derivan de las líneas; nunca se aceptan del cliente.
func (uc *EstimateUseCase) Create(ctx context.Context, tenantID string, in dto.CreateEstimateRequest) (*dto.EstimateResponse, error) {
	if _, err := uc.ownedCustomer(tenantID, in.CustomerID); err != nil {
		return nil, err
	}

	items := toLineItems(in.Items)
	totals := domainbilling.ComputeTotals(items, in.TaxRate, in.Discount)

	now := time.Now()
	estimate := &entity.Estimate{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		CustomerID: in.CustomerID,
		JobID:      in.JobID,
		Title:      in.Title,
		Status:     entity.EstimateStatusDraft,
		Items:      items,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Discount:   totals.Discount,
		Total:      totals.Total,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.ValidUntil != nil {
		estimate.ValidUntil = *in.ValidUntil
	} else {
		estimate.ValidUntil = now.AddDate(0, 1, 0)
	}

	// Número e inserción en la misma transacción: el consecutivo se asigna
	// bajo lock, así dos Creates concurrentes no comparten el mismo MAX.
	err := uc.txRunner.RunBilling(ctx, func(
		estimateRepo repository.EstimateRepository,
		_ repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		number, err := estimateRepo.NextNumber(tenantID, now.Year())
		if err != nil {
			return fmt.Errorf("consecutivo de cotización: %w", err)
		}
		estimate.Number = number
		return estimateRepo.Create(estimate)
	})
	if err != nil {
		return nil, err
	}
	return toEstimateResponse(estimate), nil
}

// Get devuelve una cotización del tenant. Marca sent → viewed si aplica.
func (uc *EstimateUseCase) Get(ctx context.Context, tenantID, id string) (*dto.EstimateResponse, error) {
	estimate, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	return toEstimateResponse(estimate), nil
}

// List lista cotizaciones del tenant. Las vencidas se reportan como expired.
func (uc *EstimateUseCase) List(ctx context.Context, tenantID string, in dto.ListEstimatesRequest) ([]dto.EstimateResponse, dto.Pagination, error) {
	in.DefaultPage()
	filter := repository.EstimateFilter{Status: in.Status, CustomerID: in.CustomerID}
	estimates, total, err := uc.estimateRepo.ListByTenant(tenantID, filter, in.Limit, in.Offset())
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	now := time.Now()
	out := make([]dto.EstimateResponse, 0, len(estimates))
	for _, e := range estimates {
		if e.Status == entity.EstimateStatusSent && e.ValidUntil.Before(now) {
			e.Status = entity.EstimateStatusExpired
		}
		out = append(out, *toEstimateResponse(e))
	}
	return out, dto.NewPagination(in.Page, in.Limit, total), nil
}

// Update actualiza una cotización. Solo se editan borradores.
func (uc *EstimateUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateEstimateRequest) (*dto.EstimateResponse, error) {
	estimate, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	if estimate.Status != entity.EstimateStatusDraft {
		return nil, domain.ErrConflict
	}

	items := toLineItems(in.Items)
	totals := domainbilling.ComputeTotals(items, in.TaxRate, in.Discount)

	estimate.Title = in.Title
	estimate.JobID = in.JobID
	estimate.Items = items
	estimate.Subtotal = totals.Subtotal
	estimate.Tax = totals.Tax
	estimate.Discount = totals.Discount
	estimate.Total = totals.Total
	estimate.Notes = in.Notes
	if in.ValidUntil != nil {
		estimate.ValidUntil = *in.ValidUntil
	}
	estimate.UpdatedAt = time.Now()

	if err := uc.estimateRepo.Update(estimate); err != nil {
		return nil, err
	}
	return toEstimateResponse(estimate), nil
}

// Send envía la cotización al cliente por correo y la marca como sent.
func (uc *EstimateUseCase) Send(ctx context.Context, tenantID, id string) (*dto.EstimateResponse, error) {
	estimate, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	if estimate.Status != entity.EstimateStatusDraft && estimate.Status != entity.EstimateStatusSent {
		return nil, domain.ErrConflict
	}
	customer, err := uc.ownedCustomer(tenantID, estimate.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	subject := fmt.Sprintf("Estimate %s", estimate.Number)
	body := fmt.Sprintf("Hi %s,\n\nPlease find your estimate %s for a total of %s.\nIt is valid until %s.",
		customer.Name, estimate.Number, estimate.Total.StringFixed(2), estimate.ValidUntil.Format("January 2, 2006"))
	if err := uc.mailer.SendDocument(ctx, customer.Email, subject, body, nil, ""); err != nil {
		return nil, fmt.Errorf("enviar cotización: %w", err)
	}

	now := time.Now()
	estimate.Status = entity.EstimateStatusSent
	estimate.SentAt = &now
	estimate.UpdatedAt = now
	if err := uc.estimateRepo.Update(estimate); err != nil {
		return nil, err
	}
	return toEstimateResponse(estimate), nil
}

// Approve aprueba la cotización y genera la factura correspondiente en una
// sola transacción: o quedan ambas o ninguna.
func (uc *EstimateUseCase) Approve(ctx context.Context, tenantID, id string) (*dto.InvoiceResponse, error) {
	estimate, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	switch estimate.Status {
	case entity.EstimateStatusSent, entity.EstimateStatusViewed:
		// aprobable
	default:
		return nil, domain.ErrConflict
	}
	if estimate.ValidUntil.Before(time.Now()) {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	var invoice *entity.Invoice
	err = uc.txRunner.RunBilling(ctx, func(
		estimateRepo repository.EstimateRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		number, err := invoiceRepo.NextNumber(tenantID, now.Year())
		if err != nil {
			return fmt.Errorf("consecutivo de factura: %w", err)
		}
		invoice = &entity.Invoice{
			ID:         uuid.New().String(),
			TenantID:   tenantID,
			CustomerID: estimate.CustomerID,
			JobID:      estimate.JobID,
			EstimateID: estimate.ID,
			Number:     number,
			Title:      estimate.Title,
			Status:     entity.InvoiceStatusDraft,
			Items:      estimate.Items,
			Subtotal:   estimate.Subtotal,
			Tax:        estimate.Tax,
			Discount:   estimate.Discount,
			Total:      estimate.Total,
			BalanceDue: estimate.Total,
			IssueDate:  now,
			DueDate:    now.AddDate(0, 1, 0),
			Notes:      estimate.Notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := invoiceRepo.Create(invoice); err != nil {
			return err
		}
		estimate.Status = entity.EstimateStatusApproved
		estimate.ApprovedAt = &now
		estimate.UpdatedAt = now
		return estimateRepo.Update(estimate)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Delete elimina una cotización en borrador.
func (uc *EstimateUseCase) Delete(ctx context.Context, tenantID, id string) error {
	estimate, err := uc.getOwned(tenantID, id)
	if err != nil {
		return err
	}
	if estimate.Status != entity.EstimateStatusDraft {
		return domain.ErrConflict
	}
	return uc.estimateRepo.Delete(id)
}

func (uc *EstimateUseCase) getOwned(tenantID, id string) (*entity.Estimate, error) {
	estimate, err := uc.estimateRepo.GetByID(id)
	if err != nil || estimate == nil {
		return nil, domain.ErrNotFound
	}
	if estimate.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return estimate, nil
}

func (uc *EstimateUseCase) ownedCustomer(tenantID, customerID string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

// ── Conversión DTO ────────────────────────────────────────────────────────────

func toLineItems(in []dto.LineItemRequest) []entity.LineItem {
	items := make([]entity.LineItem, 0, len(in))
	for _, item := range in {
		items = append(items, entity.LineItem{
			ID:          uuid.New().String(),
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Taxable:     item.Taxable,
		})
	}
	return items
}

func toLineItemResponses(items []entity.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.LineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
			Taxable:     item.Taxable,
		})
	}
	return out
}

func toEstimateResponse(e *entity.Estimate) *dto.EstimateResponse {
	resp := &dto.EstimateResponse{
		ID:         e.ID,
		TenantID:   e.TenantID,
		CustomerID: e.CustomerID,
		JobID:      e.JobID,
		Number:     e.Number,
		Title:      e.Title,
		Status:     e.Status,
		Items:      toLineItemResponses(e.Items),
		Subtotal:   e.Subtotal,
		Tax:        e.Tax,
		Discount:   e.Discount,
		Total:      e.Total,
		SentAt:     e.SentAt,
		ApprovedAt: e.ApprovedAt,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if !e.ValidUntil.IsZero() {
		validUntil := e.ValidUntil
		resp.ValidUntil = &validUntil
	}
	return resp
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:         inv.ID,
		TenantID:   inv.TenantID,
		CustomerID: inv.CustomerID,
		JobID:      inv.JobID,
		EstimateID: inv.EstimateID,
		Number:     inv.Number,
		Title:      inv.Title,
		Status:     inv.Status,
		Items:      toLineItemResponses(inv.Items),
		Subtotal:   inv.Subtotal,
		Tax:        inv.Tax,
		Discount:   inv.Discount,
		Total:      inv.Total,
		PaidAmount: inv.PaidAmount,
		BalanceDue: inv.BalanceDue,
		IssueDate:  inv.IssueDate,
		DueDate:    inv.DueDate,
		SentAt:     inv.SentAt,
		PaidAt:     inv.PaidAt,
		Terms:      inv.Terms,
		Notes:      inv.Notes,
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
	}
}
