// Package billing contiene los servicios de dominio de documentos monetarios
// (Estimate e Invoice): cálculo de líneas, subtotal, impuesto, descuento y saldo.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jobblox/crm-api/internal/domain/entity"
)

// Totals totales derivados de las líneas de un documento.
// Invariante: Total = Subtotal + Tax - Discount.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal calcula el total de una línea: Quantity * UnitPrice, redondeado a 2 decimales.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// ComputeTotals recalcula los totales del documento a partir de sus líneas.
// taxRate es fraccional (0.08 = 8%); el impuesto solo aplica sobre líneas Taxable.
// discount se resta del total final y nunca produce un total negativo.
func ComputeTotals(items []entity.LineItem, taxRate, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	taxable := decimal.Zero
	for i := range items {
		items[i].Total = LineTotal(items[i].Quantity, items[i].UnitPrice)
		subtotal = subtotal.Add(items[i].Total)
		if items[i].Taxable {
			taxable = taxable.Add(items[i].Total)
		}
	}
	tax := taxable.Mul(taxRate).Round(2)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	total := subtotal.Add(tax).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return Totals{
		Subtotal: subtotal.Round(2),
		Tax:      tax,
		Discount: discount.Round(2),
		Total:    total.Round(2),
	}
}

// BalanceDue calcula el saldo pendiente de una factura: Total - PaidAmount.
// Nunca retorna negativo.
func BalanceDue(total, paidAmount decimal.Decimal) decimal.Decimal {
	balance := total.Sub(paidAmount)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance.Round(2)
}
