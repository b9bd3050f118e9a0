// Package pdf implementa la representación imprimible de una factura.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  N° Factura + Fechas         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: Cliente + contacto + dirección                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qty | Description | Unit | Unit Price | Amount      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Tax / Discount / TOTAL / Balance Due   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Términos de pago + notas                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/jobblox/crm-api/internal/application/billing"
	"github.com/jobblox/crm-api/internal/domain/entity"
)

var _ appbilling.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// usPrinter formatea montos con separador de miles estilo en-US (1,250.00).
var usPrinter = message.NewPrinter(language.AmericanEnglish)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoice genera el PDF de la factura y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoice(
	tenant *entity.Tenant,
	customer *entity.Customer,
	invoice *entity.Invoice,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+invoice.Number, true).
		WithAuthor(tenant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, tenant))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de items
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(invoice.Items) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	// Footer: términos y notas
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(invoice) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y número + fechas de la factura (der).
func headerRow(invoice *entity.Invoice, tenant *entity.Tenant) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(tenant.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Issued: "+invoice.IssueDate.Format("01/02/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Due: "+invoice.DueDate.Format("01/02/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

// billToRow: datos del cliente facturado.
func billToRow(customer *entity.Customer) core.Row {
	addr := customer.Address
	addressLine := fmt.Sprintf("%s, %s, %s %s",
		nonEmpty(addr.Street, "—"),
		nonEmpty(addr.City, "—"),
		nonEmpty(addr.State, "—"),
		addr.ZipCode,
	)
	return row.New(16).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s   |   %s   |   %s",
				addressLine,
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de items.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Description", 5, align.Left),
		h("Unit", 1, align.Center),
		h("Unit Price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

// tableItemRows: una fila por línea de la factura.
func tableItemRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				nonEmpty(it.Unit, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(it.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(34).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Tax:"),
			label("Discount:"),
			grandLabel("TOTAL:"),
			label("Paid:"),
			grandLabel("BALANCE DUE:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(invoice.Subtotal)),
			value("$"+formatMoney(invoice.Tax)),
			value("-$"+formatMoney(invoice.Discount)),
			grandValue("$"+formatMoney(invoice.Total)),
			value("$"+formatMoney(invoice.PaidAmount)),
			grandValue("$"+formatMoney(invoice.BalanceDue)),
		),
		col.New(3),
	)
}

// footerRows: términos de pago y notas libres.
func footerRows(invoice *entity.Invoice) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Payment terms: "+nonEmpty(invoice.Terms, "Net 30"), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
		)),
	}
	if invoice.Notes != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(invoice.Notes, props.Text{Size: 7.5, Color: colorGray, Top: 2}),
		)))
	}
	rows = append(rows, row.New(6).Add(col.New(12).Add(
		text.New("Thank you for your business.", props.Text{
			Size: 7.5, Align: align.Center, Color: colorGray, Top: 2,
		}),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea un monto con separador de miles y dos decimales (1,250.00).
func formatMoney(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return usPrinter.Sprintf("%.2f", f)
}
