// Package ranking contiene las proyecciones de solo lectura que consume la capa de presentación:
// resúmenes por categoría de un Snapshot y top-N sobre un SnapshotDiff.
//
// Todas las funciones son puras. Un n <= 0 devuelve vacío y un n mayor que el grupo devuelve
// el grupo completo; acotar n al rango [1, grupo] es responsabilidad del llamador (ver ClampN).
package ranking

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/daskasas/inventory-tracker/internal/domain/entity"
)

// MaxProductN tope de filas en las vistas de productos.
const MaxProductN = 30

// ProfitTier nivel de precio usado como proxy de utilidad en TopGrossProfit.
const ProfitTier = 4

// ClampN acota n al rango [1, groupCount]. Con groupCount <= 0 devuelve 0.
func ClampN(n, groupCount int) int {
	if groupCount <= 0 {
		return 0
	}
	if n < 1 {
		return 1
	}
	if n > groupCount {
		return groupCount
	}
	return n
}

// RankedLine fila de producto con la métrica usada para ordenarla.
type RankedLine struct {
	entity.DiffLine
	Metric decimal.Decimal
}

// RankedCategory rollup de categoría con la métrica usada para ordenarlo.
type RankedCategory struct {
	entity.CategoryChange
	Metric decimal.Decimal
}

// MostSold productos con mayor disminución de cantidad (más negativo primero).
// Empates: orden natural del diff.
func MostSold(d *entity.SnapshotDiff, n int) []RankedLine {
	return topLines(d, n,
		func(l entity.DiffLine) bool { return l.QuantityChange.IsNegative() },
		func(l entity.DiffLine) decimal.Decimal { return l.QuantityChange },
		ascending,
	)
}

// TopGrossProfit productos por (PriceTier4 − AverageCost) × |QuantityChange|, mayor primero.
// Cuentan tanto aumentos como disminuciones.
func TopGrossProfit(d *entity.SnapshotDiff, n int) []RankedLine {
	return topLines(d, n,
		func(entity.DiffLine) bool { return true },
		GrossProfit,
		descending,
	)
}

// GrossProfit proxy de utilidad de una fila.
func GrossProfit(l entity.DiffLine) decimal.Decimal {
	return l.PriceTier(ProfitTier).Sub(l.AverageCost).Mul(l.QuantityChange.Abs())
}

// TopIncreases productos con mayor aumento positivo de cantidad.
func TopIncreases(d *entity.SnapshotDiff, n int) []RankedLine {
	return topLines(d, n,
		func(l entity.DiffLine) bool { return l.QuantityChange.IsPositive() },
		func(l entity.DiffLine) decimal.Decimal { return l.QuantityChange },
		descending,
	)
}

// Stagnated productos sin disminución (cambio >= 0), el menor cambio primero.
func Stagnated(d *entity.SnapshotDiff, n int) []RankedLine {
	return topLines(d, n,
		func(l entity.DiffLine) bool { return !l.QuantityChange.IsNegative() },
		func(l entity.DiffLine) decimal.Decimal { return l.QuantityChange },
		ascending,
	)
}

// LeastSoldCategories categorías con cambio agregado <= 0, la más cercana a cero primero.
func LeastSoldCategories(d *entity.SnapshotDiff, n int) []RankedCategory {
	if d == nil || n <= 0 {
		return []RankedCategory{}
	}
	out := make([]RankedCategory, 0, len(d.Categories))
	for _, c := range d.Categories {
		if c.QuantityChange.IsPositive() {
			continue
		}
		out = append(out, RankedCategory{CategoryChange: c, Metric: c.QuantityChange})
	}
	slices.SortStableFunc(out, func(a, b RankedCategory) int { return descending(a.Metric, b.Metric) })
	return out[:min(n, len(out))]
}

// ── helpers ───────────────────────────────────────────────────────────────────

func ascending(a, b decimal.Decimal) int  { return a.Cmp(b) }
func descending(a, b decimal.Decimal) int { return b.Cmp(a) }

func topLines(
	d *entity.SnapshotDiff,
	n int,
	keep func(entity.DiffLine) bool,
	metric func(entity.DiffLine) decimal.Decimal,
	order func(a, b decimal.Decimal) int,
) []RankedLine {
	if d == nil || n <= 0 {
		return []RankedLine{}
	}
	out := make([]RankedLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		if keep(l) {
			out = append(out, RankedLine{DiffLine: l, Metric: metric(l)})
		}
	}
	slices.SortStableFunc(out, func(a, b RankedLine) int { return order(a.Metric, b.Metric) })
	return out[:min(n, len(out))]
}
