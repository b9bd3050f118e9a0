package sdk

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jobblox/crm-api/pkg/apiclient"
)

// PaymentsService operaciones sobre pagos.
type PaymentsService struct {
	client *apiclient.Client
}

// PaymentListParams filtros de listado de pagos.
type PaymentListParams struct {
	PageParams
	Status     string
	CustomerID string
	InvoiceID  string
}

// PaymentInput payload de registro de pago.
type PaymentInput struct {
	InvoiceID string          `json:"invoiceId"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// List lista pagos con filtros y paginación.
func (s *PaymentsService) List(ctx context.Context, params PaymentListParams) ([]Payment, *apiclient.Pagination, error) {
	query := url.Values{}
	params.apply(query)
	setIfNotEmpty(query, "status", params.Status)
	setIfNotEmpty(query, "customerId", params.CustomerID)
	setIfNotEmpty(query, "invoiceId", params.InvoiceID)

	var payments []Payment
	resp, err := s.client.Get(ctx, "/payments", query, &payments)
	if err != nil {
		return nil, nil, err
	}
	return payments, resp.Pagination, nil
}

// Get devuelve un pago por ID.
func (s *PaymentsService) Get(ctx context.Context, id string) (*Payment, error) {
	var payment Payment
	_, err := s.client.Get(ctx, "/payments/"+id, nil, &payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create registra un pago contra una factura; el servidor actualiza saldo y
// estado de la factura en la misma transacción.
func (s *PaymentsService) Create(ctx context.Context, input PaymentInput) (*Payment, error) {
	var payment Payment
	_, err := s.client.Post(ctx, "/payments", input, &payment)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/payments|/invoices`)
	return &payment, nil
}

// Process confirma un pago pendiente.
func (s *PaymentsService) Process(ctx context.Context, id string) (*Payment, error) {
	var payment Payment
	_, err := s.client.Post(ctx, "/payments/"+id+"/process", nil, &payment)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/payments|/invoices`)
	return &payment, nil
}

// Refund reversa un pago completado; la factura recupera el saldo.
func (s *PaymentsService) Refund(ctx context.Context, id string) (*Payment, error) {
	var payment Payment
	_, err := s.client.Post(ctx, "/payments/"+id+"/refund", nil, &payment)
	if err != nil {
		return nil, err
	}
	_ = s.client.InvalidateCache(`/payments|/invoices`)
	return &payment, nil
}
