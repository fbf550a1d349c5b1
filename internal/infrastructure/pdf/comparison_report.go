// Package pdf genera el reporte impreso de una comparación de snapshots con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + snapshots comparados │ Fecha / moneda     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍAS: Cant. actual | anterior | Δ | Valor | Δ valor  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RANKINGS: una tabla por vista (top N)                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/daskasas/inventory-tracker/internal/application/comparison"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/domain/ranking"
)

var _ comparison.ReportGenerator = (*ReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLoss    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportGenerator implementa comparison.ReportGenerator usando Maroto v2.
type ReportGenerator struct {
	author string
}

// NewReportGenerator construye el generador; author va a los metadatos del PDF.
func NewReportGenerator(author string) *ReportGenerator { return &ReportGenerator{author: author} }

// GenerateComparisonReport genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) GenerateComparisonReport(_ context.Context, data *comparison.ReportData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("pdf: reporte sin datos")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(data.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("Category movement"))
	m.AddRows(categoryHeaderRow(data.Currency))
	m.AddRows(categoryRows(data.Categories)...)

	currency := data.Currency
	sections := []struct {
		title  string
		metric string
		lines  []ranking.RankedLine
	}{
		{"Most sold products", "Change", data.MostSold},
		{"Top gross profit (tier 4 price)", "Profit " + currency, data.TopGrossProfit},
		{"Largest stock increases", "Change", data.TopIncreases},
		{"Stagnated products", "Change", data.Stagnated},
	}
	for _, s := range sections {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle(s.title))
		m.AddRows(lineHeaderRow(s.metric))
		m.AddRows(lineRows(s.lines)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("Least sold categories"))
	m.AddRows(leastSoldHeaderRow())
	m.AddRows(leastSoldRows(data.LeastSoldCategories)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y snapshots (izq), fecha y moneda (der).
func headerRow(data *comparison.ReportData) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(data.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s vs %s", data.CurrentID, data.PreviousID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generated "+data.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Top %d  |  Amounts in %s", data.N, data.Currency), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(strings.ToUpper(title), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

// headerCell celda de cabecera de tabla.
func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type, color *props.Color) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
	}))
}

func categoryHeaderRow(currency string) core.Row {
	return row.New(7).Add(
		headerCell("Category", 3, align.Left),
		headerCell("Qty now", 1, align.Right),
		headerCell("Qty before", 2, align.Right),
		headerCell("Change", 1, align.Right),
		headerCell("Value "+currency, 2, align.Right),
		headerCell("Value before", 2, align.Right),
		headerCell("Change", 1, align.Right),
	)
}

func categoryRows(in []entity.CategoryChange) []core.Row {
	rows := make([]core.Row, 0, len(in))
	for _, c := range in {
		rows = append(rows, row.New(6).Add(
			cell(c.Category, 3, align.Left, nil),
			cell(formatQuantity(c.CurrentQuantity), 1, align.Right, nil),
			cell(formatQuantity(c.PreviousQuantity), 2, align.Right, nil),
			cell(formatQuantity(c.QuantityChange), 1, align.Right, signColor(c.QuantityChange)),
			cell(formatMoney(c.CurrentValue), 2, align.Right, nil),
			cell(formatMoney(c.PreviousValue), 2, align.Right, nil),
			cell(formatMoney(c.ValueChange), 1, align.Right, signColor(c.ValueChange)),
		))
	}
	return orEmpty(rows)
}

func lineHeaderRow(metric string) core.Row {
	return row.New(7).Add(
		headerCell("Code", 2, align.Left),
		headerCell("Product", 4, align.Left),
		headerCell("Category", 3, align.Left),
		headerCell("Qty now", 1, align.Right),
		headerCell(metric, 2, align.Right),
	)
}

func lineRows(in []ranking.RankedLine) []core.Row {
	rows := make([]core.Row, 0, len(in))
	for _, l := range in {
		rows = append(rows, row.New(6).Add(
			cell(l.ProductCode, 2, align.Left, nil),
			cell(l.Name, 4, align.Left, nil),
			cell(l.Category, 3, align.Left, colorGray),
			cell(formatQuantity(l.CurrentQuantity), 1, align.Right, nil),
			cell(formatQuantity(l.Metric), 2, align.Right, signColor(l.Metric)),
		))
	}
	return orEmpty(rows)
}

func leastSoldHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Category", 6, align.Left),
		headerCell("Qty now", 2, align.Right),
		headerCell("Qty before", 2, align.Right),
		headerCell("Change", 2, align.Right),
	)
}

func leastSoldRows(in []ranking.RankedCategory) []core.Row {
	rows := make([]core.Row, 0, len(in))
	for _, c := range in {
		rows = append(rows, row.New(6).Add(
			cell(c.Category, 6, align.Left, nil),
			cell(formatQuantity(c.CurrentQuantity), 2, align.Right, nil),
			cell(formatQuantity(c.PreviousQuantity), 2, align.Right, nil),
			cell(formatQuantity(c.QuantityChange), 2, align.Right, signColor(c.QuantityChange)),
		))
	}
	return orEmpty(rows)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// orEmpty fila "sin datos" para tablas vacías.
func orEmpty(rows []core.Row) []core.Row {
	if len(rows) > 0 {
		return rows
	}
	return []core.Row{row.New(6).Add(col.New(12).Add(
		text.New("No data", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))}
}

func signColor(d decimal.Decimal) *props.Color {
	if d.IsNegative() {
		return colorLoss
	}
	return nil
}

// formatMoney dos decimales con separador de miles. Ej: 1234567.5 → "1,234,567.50".
func formatMoney(d decimal.Decimal) string {
	return groupThousands(d.StringFixed(2))
}

// formatQuantity cantidades sin ceros de relleno ("12", "2.5").
func formatQuantity(d decimal.Decimal) string {
	return groupThousands(d.String())
}

// groupThousands inserta comas de miles en la parte entera de un número ya formateado.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}
