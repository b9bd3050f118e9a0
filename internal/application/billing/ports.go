// Package billing contiene los casos de uso de cotizaciones, facturas y pagos.
package billing

import (
	"context"

	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función con repos de facturación atados a una
// misma transacción. Se usa para las operaciones que mutan más de un
// agregado: aprobar cotización (estimate + invoice) y registrar pago
// (payment + invoice).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		estimateRepo repository.EstimateRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// MailSender envía documentos (cotizaciones y facturas) por correo.
type MailSender interface {
	SendDocument(ctx context.Context, to, subject, body string, attachment []byte, filename string) error
}

// PDFGenerator genera el PDF de una factura.
type PDFGenerator interface {
	GenerateInvoice(tenant *entity.Tenant, customer *entity.Customer, invoice *entity.Invoice) ([]byte, error)
}
