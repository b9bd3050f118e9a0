package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest renglón en payloads de escritura. El total lo calcula el
// servidor; no se acepta del cliente.
type LineItemRequest struct {
	Description string          `json:"description" validate:"required,max=300"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Unit        string          `json:"unit" validate:"omitempty,max=20"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Taxable     bool            `json:"taxable"`
}

// LineItemResponse renglón en respuestas, con el total derivado.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
	Taxable     bool            `json:"taxable"`
}

// ── Estimates ─────────────────────────────────────────────────────────────────

// CreateEstimateRequest alta de cotización.
type CreateEstimateRequest struct {
	CustomerID string            `json:"customerId" validate:"required,uuid4"`
	JobID      string            `json:"jobId" validate:"omitempty,uuid4"`
	Title      string            `json:"title" validate:"omitempty,max=160"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRate    decimal.Decimal   `json:"taxRate"`
	Discount   decimal.Decimal   `json:"discount"`
	ValidUntil *time.Time        `json:"validUntil"`
	Notes      string            `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateEstimateRequest actualización (solo en estado draft).
type UpdateEstimateRequest = CreateEstimateRequest

// ListEstimatesRequest filtros de listado de cotizaciones.
type ListEstimatesRequest struct {
	PageRequest
	Status     string `query:"status" validate:"omitempty,oneof=draft sent viewed approved rejected expired"`
	CustomerID string `query:"customerId" validate:"omitempty,uuid4"`
}

// EstimateResponse cotización en respuestas.
type EstimateResponse struct {
	ID         string             `json:"id"`
	TenantID   string             `json:"tenantId"`
	CustomerID string             `json:"customerId"`
	JobID      string             `json:"jobId,omitempty"`
	Number     string             `json:"number"`
	Title      string             `json:"title,omitempty"`
	Status     string             `json:"status"`
	Items      []LineItemResponse `json:"items"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Tax        decimal.Decimal    `json:"tax"`
	Discount   decimal.Decimal    `json:"discount"`
	Total      decimal.Decimal    `json:"total"`
	ValidUntil *time.Time         `json:"validUntil,omitempty"`
	SentAt     *time.Time         `json:"sentAt,omitempty"`
	ApprovedAt *time.Time         `json:"approvedAt,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// ── Invoices ──────────────────────────────────────────────────────────────────

// CreateInvoiceRequest alta de factura.
type CreateInvoiceRequest struct {
	CustomerID string            `json:"customerId" validate:"required,uuid4"`
	JobID      string            `json:"jobId" validate:"omitempty,uuid4"`
	Title      string            `json:"title" validate:"omitempty,max=160"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRate    decimal.Decimal   `json:"taxRate"`
	Discount   decimal.Decimal   `json:"discount"`
	DueDate    *time.Time        `json:"dueDate"`
	Terms      string            `json:"terms" validate:"omitempty,max=120"`
	Notes      string            `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateInvoiceRequest actualización (solo en estado draft).
type UpdateInvoiceRequest = CreateInvoiceRequest

// ListInvoicesRequest filtros de listado de facturas.
type ListInvoicesRequest struct {
	PageRequest
	Status     string `query:"status" validate:"omitempty,oneof=draft sent viewed partial paid overdue cancelled"`
	CustomerID string `query:"customerId" validate:"omitempty,uuid4"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID         string             `json:"id"`
	TenantID   string             `json:"tenantId"`
	CustomerID string             `json:"customerId"`
	JobID      string             `json:"jobId,omitempty"`
	EstimateID string             `json:"estimateId,omitempty"`
	Number     string             `json:"number"`
	Title      string             `json:"title,omitempty"`
	Status     string             `json:"status"`
	Items      []LineItemResponse `json:"items"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Tax        decimal.Decimal    `json:"tax"`
	Discount   decimal.Decimal    `json:"discount"`
	Total      decimal.Decimal    `json:"total"`
	PaidAmount decimal.Decimal    `json:"paidAmount"`
	BalanceDue decimal.Decimal    `json:"balanceDue"`
	IssueDate  time.Time          `json:"issueDate"`
	DueDate    time.Time          `json:"dueDate"`
	SentAt     *time.Time         `json:"sentAt,omitempty"`
	PaidAt     *time.Time         `json:"paidAt,omitempty"`
	Terms      string             `json:"terms,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// InvoicePDFResponse documento PDF generado (content en base64 sobre el wire).
type InvoicePDFResponse struct {
	FileName string `json:"fileName"`
	Content  []byte `json:"content"`
}

// ── Payments ──────────────────────────────────────────────────────────────────

// CreatePaymentRequest registro de pago contra una factura.
type CreatePaymentRequest struct {
	InvoiceID string          `json:"invoiceId" validate:"required,uuid4"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    string          `json:"method" validate:"required,oneof=cash check card transfer"`
	Reference string          `json:"reference" validate:"omitempty,max=120"`
}

// ListPaymentsRequest filtros de listado de pagos.
type ListPaymentsRequest struct {
	PageRequest
	Status     string `query:"status" validate:"omitempty,oneof=pending completed failed refunded"`
	CustomerID string `query:"customerId" validate:"omitempty,uuid4"`
	InvoiceID  string `query:"invoiceId" validate:"omitempty,uuid4"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenantId"`
	InvoiceID  string          `json:"invoiceId"`
	CustomerID string          `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Status     string          `json:"status"`
	Reference  string          `json:"reference,omitempty"`
	PaidAt     *time.Time      `json:"paidAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
