package sdk

import (
	"context"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jobblox/crm-api/pkg/apiclient"
)

// EstimatesService operaciones sobre estimados.
type EstimatesService struct {
	client *apiclient.Client
}

// EstimateListParams filtros de listado de estimados.
type EstimateListParams struct {
	PageParams
	Status     string
	CustomerID string
}

// LineItemInput renglón de estimado o factura en payloads de escritura.
type LineItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Taxable     bool            `json:"taxable"`
}

// EstimateInput payload de creación/actualización de estimado.
type EstimateInput struct {
	CustomerID string          `json:"customerId"`
	JobID      string          `json:"jobId,omitempty"`
	Items      []LineItemInput `json:"items"`
	TaxRate    decimal.Decimal `json:"taxRate"`
	Discount   decimal.Decimal `json:"discount"`
	ValidUntil *time.Time      `json:"validUntil,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// List lista estimados con filtros y paginación.
func (s *EstimatesService) List(ctx context.Context, params EstimateListParams) ([]Estimate, *apiclient.Pagination, error) {
	query := url.Values{}
	params.apply(query)
	setIfNotEmpty(query, "status", params.Status)
	setIfNotEmpty(query, "customerId", params.CustomerID)

	var estimates []Estimate
	resp, err := s.client.Get(ctx, "/estimates", query, &estimates)
	if err != nil {
		return nil, nil, err
	}
	return estimates, resp.Pagination, nil
}

// Get devuelve un estimado por ID.
func (s *EstimatesService) Get(ctx context.Context, id string) (*Estimate, error) {
	var estimate Estimate
	_, err := s.client.Get(ctx, "/estimates/"+id, nil, &estimate)
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// Create crea un estimado; el servidor calcula los totales.
func (s *EstimatesService) Create(ctx context.Context, input EstimateInput) (*Estimate, error) {
	var estimate Estimate
	_, err := s.client.Post(ctx, "/estimates", input, &estimate)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/estimates`)
	return &estimate, nil
}

// Update actualiza un estimado en borrador.
func (s *EstimatesService) Update(ctx context.Context, id string, input EstimateInput) (*Estimate, error) {
	var estimate Estimate
	_, err := s.client.Put(ctx, "/estimates/"+id, input, &estimate)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/estimates`)
	return &estimate, nil
}

// Send envía el estimado al cliente por correo (draft → sent).
func (s *EstimatesService) Send(ctx context.Context, id string) (*Estimate, error) {
	var estimate Estimate
	_, err := s.client.Post(ctx, "/estimates/"+id+"/send", nil, &estimate)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/estimates`)
	return &estimate, nil
}

// Approve aprueba el estimado y devuelve la factura generada.
func (s *EstimatesService) Approve(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	_, err := s.client.Post(ctx, "/estimates/"+id+"/approve", nil, &invoice)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/estimates|/invoices`)
	return &invoice, nil
}

// Delete elimina un estimado en borrador.
func (s *EstimatesService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/estimates/"+id, nil)
	if err != nil {
		return err
	}
	_ = s.client.InvalidateCache(`/estimates`)
	return nil
}
