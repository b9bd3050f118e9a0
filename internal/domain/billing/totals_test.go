package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jobblox/crm-api/internal/domain/billing"
	"github.com/jobblox/crm-api/internal/domain/entity"
)

// Vector de referencia: items=[{quantity:2, unitPrice:50}], tax=8%, discount=0
// → subtotal=100, tax=8, total=108.
func TestComputeTotals_VectorBase(t *testing.T) {
	items := []entity.LineItem{
		{Description: "Labor", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50), Taxable: true},
	}

	totals := billing.ComputeTotals(items, decimal.NewFromFloat(0.08), decimal.Zero)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(100)), "subtotal esperado 100, obtenido %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(8)), "tax esperado 8, obtenido %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(108)), "total esperado 108, obtenido %s", totals.Total)
	assert.True(t, items[0].Total.Equal(decimal.NewFromInt(100)), "la línea debe quedar con su total derivado")
}

func TestComputeTotals_SoloLineasGravadasPaganImpuesto(t *testing.T) {
	items := []entity.LineItem{
		{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(200), Taxable: true},
		{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), Taxable: false},
	}

	totals := billing.ComputeTotals(items, decimal.NewFromFloat(0.10), decimal.Zero)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(300)))
	// Solo los 200 gravados pagan el 10%
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(20)), "tax esperado 20, obtenido %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(320)))
}

func TestComputeTotals_DescuentoSeRestaDelTotal(t *testing.T) {
	items := []entity.LineItem{
		{Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromFloat(25.50), Taxable: true},
	}

	totals := billing.ComputeTotals(items, decimal.Zero, decimal.NewFromInt(10))

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(102)))
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(92)), "total esperado 92, obtenido %s", totals.Total)
}

func TestComputeTotals_DescuentoNuncaProduceTotalNegativo(t *testing.T) {
	items := []entity.LineItem{
		{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10), Taxable: false},
	}

	totals := billing.ComputeTotals(items, decimal.Zero, decimal.NewFromInt(50))

	assert.True(t, totals.Total.Equal(decimal.Zero), "el total no puede ser negativo")
}

func TestBalanceDue(t *testing.T) {
	cases := []struct {
		name     string
		total    decimal.Decimal
		paid     decimal.Decimal
		expected decimal.Decimal
	}{
		{"sin pagos", decimal.NewFromInt(108), decimal.Zero, decimal.NewFromInt(108)},
		{"pago parcial", decimal.NewFromInt(108), decimal.NewFromInt(50), decimal.NewFromInt(58)},
		{"pago completo", decimal.NewFromInt(108), decimal.NewFromInt(108), decimal.Zero},
		{"sobrepago se trunca a cero", decimal.NewFromInt(108), decimal.NewFromInt(200), decimal.Zero},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := billing.BalanceDue(tc.total, tc.paid)
			assert.True(t, got.Equal(tc.expected), "esperado %s, obtenido %s", tc.expected, got)
		})
	}
}
