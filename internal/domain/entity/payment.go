package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCheck    = "check"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// Estados de pago.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment representa un pago aplicado a una factura.
// Registrar un pago completado actualiza PaidAmount/BalanceDue de la factura
// en la misma transacción.
type Payment struct {
	ID         string
	TenantID   string
	InvoiceID  string
	CustomerID string
	Amount     decimal.Decimal
	Method     string // ver constantes PaymentMethod*
	Status     string // ver constantes PaymentStatus*
	Reference  string // número de cheque, últimos dígitos, etc.
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
