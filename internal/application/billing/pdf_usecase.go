package billing

import (
	"context"
	"fmt"

	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// PDFUseCase descarga del PDF de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	tenantRepo   repository.TenantRepository
	pdfGenerator PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	tenantRepo repository.TenantRepository,
	pdfGenerator PDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		tenantRepo:   tenantRepo,
		pdfGenerator: pdfGenerator,
	}
}

// GenerateInvoicePDF genera el PDF de la factura indicada.
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, tenantID, invoiceID string) (*dto.InvoicePDFResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	customer, err := uc.customerRepo.GetByID(invoice.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil || tenant == nil {
		return nil, domain.ErrNotFound
	}

	content, err := uc.pdfGenerator.GenerateInvoice(tenant, customer, invoice)
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	return &dto.InvoicePDFResponse{
		FileName: fmt.Sprintf("%s.pdf", invoice.Number),
		Content:  content,
	}, nil
}
