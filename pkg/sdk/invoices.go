package sdk

import (
	"context"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jobblox/crm-api/pkg/apiclient"
)

// InvoicesService operaciones sobre facturas.
type InvoicesService struct {
	client *apiclient.Client
}

// InvoiceListParams filtros de listado de facturas.
type InvoiceListParams struct {
	PageParams
	Status     string
	CustomerID string
}

// InvoiceInput payload de creación/actualización de factura.
type InvoiceInput struct {
	CustomerID string          `json:"customerId"`
	JobID      string          `json:"jobId,omitempty"`
	Items      []LineItemInput `json:"items"`
	TaxRate    decimal.Decimal `json:"taxRate"`
	Discount   decimal.Decimal `json:"discount"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// List lista facturas con filtros y paginación.
func (s *InvoicesService) List(ctx context.Context, params InvoiceListParams) ([]Invoice, *apiclient.Pagination, error) {
	query := url.Values{}
	params.apply(query)
	setIfNotEmpty(query, "status", params.Status)
	setIfNotEmpty(query, "customerId", params.CustomerID)

	var invoices []Invoice
	resp, err := s.client.Get(ctx, "/invoices", query, &invoices)
	if err != nil {
		return nil, nil, err
	}
	return invoices, resp.Pagination, nil
}

// Get devuelve una factura por ID.
func (s *InvoicesService) Get(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	_, err := s.client.Get(ctx, "/invoices/"+id, nil, &invoice)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Create crea una factura; el servidor asigna el número y calcula totales.
func (s *InvoicesService) Create(ctx context.Context, input InvoiceInput) (*Invoice, error) {
	var invoice Invoice
	_, err := s.client.Post(ctx, "/invoices", input, &invoice)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/invoices`)
	return &invoice, nil
}

// Update actualiza una factura en borrador.
func (s *InvoicesService) Update(ctx context.Context, id string, input InvoiceInput) (*Invoice, error) {
	var invoice Invoice
	_, err := s.client.Put(ctx, "/invoices/"+id, input, &invoice)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/invoices`)
	return &invoice, nil
}

// Send envía la factura al cliente por correo (draft → sent).
func (s *InvoicesService) Send(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	_, err := s.client.Post(ctx, "/invoices/"+id+"/send", nil, &invoice)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/invoices`)
	return &invoice, nil
}

// PDF descarga el PDF de la factura (contenido en base64 dentro del envelope).
func (s *InvoicesService) PDF(ctx context.Context, id string) (*InvoicePDF, error) {
	var pdf InvoicePDF
	_, err := s.client.GetNoCache(ctx, "/invoices/"+id+"/pdf", nil, &pdf)
	if err != nil {
		return nil, err
	}
	return &pdf, nil
}

// Delete cancela/elimina una factura en borrador.
func (s *InvoicesService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/invoices/"+id, nil)
	if err != nil {
		return err
	}
	_ = s.client.InvalidateCache(`/invoices`)
	return nil
}
