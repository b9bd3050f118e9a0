package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cotización.
const (
	EstimateStatusDraft    = "draft"
	EstimateStatusSent     = "sent"
	EstimateStatusViewed   = "viewed"
	EstimateStatusApproved = "approved"
	EstimateStatusRejected = "rejected"
	EstimateStatusExpired  = "expired"
)

// Estimate representa una cotización enviada a un cliente.
// Una cotización aprobada puede convertirse en Invoice (conserva los items).
type Estimate struct {
	ID         string
	TenantID   string
	CustomerID string
	JobID      string // opcional
	Number     string // formato EST-YYYY-NNNN
	Title      string
	Status     string // ver constantes EstimateStatus*
	Items      []LineItem
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	ValidUntil time.Time
	SentAt     *time.Time
	ApprovedAt *time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
