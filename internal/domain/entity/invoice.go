package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusViewed    = "viewed"
	InvoiceStatusPartial   = "partial"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice representa la cabecera de una factura del tenant.
// Invariante: BalanceDue = Total - PaidAmount después de cada mutación.
type Invoice struct {
	ID         string
	TenantID   string
	CustomerID string
	JobID      string // opcional; vacío si no está ligada a un Job
	EstimateID string // opcional; set cuando proviene de un Estimate aprobado
	Number     string // formato INV-YYYY-NNNN
	Title      string
	Status     string // ver constantes InvoiceStatus*
	Items      []LineItem
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	PaidAmount decimal.Decimal
	BalanceDue decimal.Decimal
	IssueDate  time.Time
	DueDate    time.Time
	SentAt     *time.Time
	PaidAt     *time.Time
	Terms      string // "Net 30", "Due on Receipt", etc.
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LineItem línea de documento monetario (Invoice y Estimate).
// Total se deriva de Quantity * UnitPrice; no se acepta del cliente.
type LineItem struct {
	ID          string
	Description string
	Quantity    decimal.Decimal
	Unit        string // hours, each, days...
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	Taxable     bool
}
