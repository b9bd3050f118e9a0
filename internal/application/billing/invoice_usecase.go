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

// InvoiceUseCase ciclo de vida de facturas.
type InvoiceUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	tenantRepo   repository.TenantRepository
	txRunner     BillingTxRunner
	mailer       MailSender
	pdfGenerator PDFGenerator
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	tenantRepo repository.TenantRepository,
	txRunner BillingTxRunner,
	mailer MailSender,
	pdfGenerator PDFGenerator,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		tenantRepo:   tenantRepo,
		txRunner:     txRunner,
		mailer:       mailer,
		pdfGenerator: pdfGenerator,
	}
}

// Create crea una factura en draft con número consecutivo INV-YYYY-NNNN.
// Subtotal, impuesto, total y saldo se derivan de las líneas.
func (uc *InvoiceUseCase) Create(ctx context.Context, tenantID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if _, err := uc.ownedCustomer(tenantID, in.CustomerID); err != nil {
		return nil, err
	}

	items := toLineItems(in.Items)
	totals := domainbilling.ComputeTotals(items, in.TaxRate, in.Discount)

	now := time.Now()
	invoice := &entity.Invoice{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		CustomerID: in.CustomerID,
		JobID:      in.JobID,
		Title:      in.Title,
		Status:     entity.InvoiceStatusDraft,
		Items:      items,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Discount:   totals.Discount,
		Total:      totals.Total,
		BalanceDue: totals.Total,
		IssueDate:  now,
		Terms:      in.Terms,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.DueDate != nil {
		invoice.DueDate = *in.DueDate
	} else {
		invoice.DueDate = now.AddDate(0, 1, 0) // Net 30 por defecto
	}

	// Número e inserción en la misma transacción: el consecutivo se asigna
	// bajo lock, así dos Creates concurrentes no comparten el mismo MAX.
	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.EstimateRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		number, err := invoiceRepo.NextNumber(tenantID, now.Year())
		if err != nil {
			return fmt.Errorf("consecutivo de factura: %w", err)
		}
		invoice.Number = number
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Get devuelve una factura del tenant. Las vencidas se reportan como overdue.
func (uc *InvoiceUseCase) Get(ctx context.Context, tenantID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	markOverdue(invoice)
	return toInvoiceResponse(invoice), nil
}

// List lista facturas del tenant con filtros y paginación.
func (uc *InvoiceUseCase) List(ctx context.Context, tenantID string, in dto.ListInvoicesRequest) ([]dto.InvoiceResponse, dto.Pagination, error) {
	in.DefaultPage()
	filter := repository.InvoiceFilter{Status: in.Status, CustomerID: in.CustomerID}
	invoices, total, err := uc.invoiceRepo.ListByTenant(tenantID, filter, in.Limit, in.Offset())
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		markOverdue(inv)
		out = append(out, *toInvoiceResponse(inv))
	}
	return out, dto.NewPagination(in.Page, in.Limit, total), nil
}

// Update actualiza una factura. Solo se editan borradores.
func (uc *InvoiceUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != entity.InvoiceStatusDraft {
		return nil, domain.ErrConflict
	}

	items := toLineItems(in.Items)
	totals := domainbilling.ComputeTotals(items, in.TaxRate, in.Discount)

	invoice.Title = in.Title
	invoice.JobID = in.JobID
	invoice.Items = items
	invoice.Subtotal = totals.Subtotal
	invoice.Tax = totals.Tax
	invoice.Discount = totals.Discount
	invoice.Total = totals.Total
	invoice.BalanceDue = domainbilling.BalanceDue(totals.Total, invoice.PaidAmount)
	invoice.Terms = in.Terms
	invoice.Notes = in.Notes
	if in.DueDate != nil {
		invoice.DueDate = *in.DueDate
	}
	invoice.UpdatedAt = time.Now()

	if err := uc.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Send envía la factura al cliente por correo con el PDF adjunto y la marca
// como sent.
func (uc *InvoiceUseCase) Send(ctx context.Context, tenantID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.getOwned(tenantID, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != entity.InvoiceStatusDraft && invoice.Status != entity.InvoiceStatusSent {
		return nil, domain.ErrConflict
	}
	customer, err := uc.ownedCustomer(tenantID, invoice.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil || tenant == nil {
		return nil, domain.ErrNotFound
	}

	pdfBytes, err := uc.pdfGenerator.GenerateInvoice(tenant, customer, invoice)
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}

	subject := fmt.Sprintf("Invoice %s from %s", invoice.Number, tenant.Name)
	body := fmt.Sprintf("Hi %s,\n\nPlease find attached invoice %s for a total of %s, due on %s.",
		customer.Name, invoice.Number, invoice.Total.StringFixed(2), invoice.DueDate.Format("January 2, 2006"))
	filename := fmt.Sprintf("%s.pdf", invoice.Number)
	if err := uc.mailer.SendDocument(ctx, customer.Email, subject, body, pdfBytes, filename); err != nil {
		return nil, fmt.Errorf("enviar factura: %w", err)
	}

	now := time.Now()
	invoice.Status = entity.InvoiceStatusSent
	invoice.SentAt = &now
	invoice.UpdatedAt = now
	if err := uc.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Delete cancela una factura. Solo borradores y enviadas sin pagos.
func (uc *InvoiceUseCase) Delete(ctx context.Context, tenantID, id string) error {
	invoice, err := uc.getOwned(tenantID, id)
	if err != nil {
		return err
	}
	if !invoice.PaidAmount.IsZero() {
		return domain.ErrConflict
	}
	invoice.Status = entity.InvoiceStatusCancelled
	invoice.UpdatedAt = time.Now()
	return uc.invoiceRepo.Update(invoice)
}

func (uc *InvoiceUseCase) getOwned(tenantID, id string) (*entity.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return invoice, nil
}

func (uc *InvoiceUseCase) ownedCustomer(tenantID, customerID string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

// markOverdue reclasifica facturas enviadas con fecha de vencimiento pasada.
func markOverdue(invoice *entity.Invoice) {
	switch invoice.Status {
	case entity.InvoiceStatusSent, entity.InvoiceStatusViewed, entity.InvoiceStatusPartial:
		if !invoice.DueDate.IsZero() && invoice.DueDate.Before(time.Now()) {
			invoice.Status = entity.InvoiceStatusOverdue
		}
	}
}
