package ranking

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
)

// CategorySummary totales de una categoría de un snapshot (gráficos del dashboard).
type CategorySummary struct {
	Category           string
	SKUCount           int
	TotalQuantity      decimal.Decimal
	TotalValue         decimal.Decimal // Σ quantity × averageCost
	UnrealisedValue    decimal.Decimal // Σ (priceTier1 − averageCost) × quantity
	AverageGrossMargin decimal.Decimal // UnrealisedValue / TotalValue; 0 si TotalValue = 0
}

// Métricas por las que se puede ordenar un resumen de categorías.
const (
	MetricCategory   = "category"
	MetricSKUCount   = "sku_count"
	MetricQuantity   = "quantity"
	MetricValue      = "value"
	MetricUnrealised = "unrealised"
	MetricMargin     = "margin"
)

// CategorySummaries agrupa el snapshot por categoría. Resultado ordenado por nombre de categoría.
func CategorySummaries(s *entity.Snapshot) []CategorySummary {
	if s == nil {
		return []CategorySummary{}
	}
	byName := make(map[string]*CategorySummary)
	var names []string
	for _, r := range s.Records {
		cs, ok := byName[r.Category]
		if !ok {
			cs = &CategorySummary{Category: r.Category}
			byName[r.Category] = cs
			names = append(names, r.Category)
		}
		cs.SKUCount++
		cs.TotalQuantity = cs.TotalQuantity.Add(r.Quantity)
		cs.TotalValue = cs.TotalValue.Add(r.TotalValue())
		cs.UnrealisedValue = cs.UnrealisedValue.Add(r.UnrealisedValue())
	}
	slices.Sort(names)

	out := make([]CategorySummary, 0, len(names))
	for _, name := range names {
		cs := *byName[name]
		if !cs.TotalValue.IsZero() {
			cs.AverageGrossMargin = cs.UnrealisedValue.Div(cs.TotalValue)
		}
		out = append(out, cs)
	}
	return out
}

// SortSummaries devuelve una copia ordenada ascendentemente por la métrica indicada,
// igual que los gráficos de barras del dashboard. Empates: por nombre de categoría.
func SortSummaries(in []CategorySummary, metric string) ([]CategorySummary, error) {
	key, err := summaryKey(metric)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b CategorySummary) int {
		if c := key(a).Cmp(key(b)); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return out, nil
}

func summaryKey(metric string) (func(CategorySummary) decimal.Decimal, error) {
	switch metric {
	case "", MetricCategory:
		return func(CategorySummary) decimal.Decimal { return decimal.Zero }, nil
	case MetricSKUCount:
		return func(c CategorySummary) decimal.Decimal { return decimal.NewFromInt(int64(c.SKUCount)) }, nil
	case MetricQuantity:
		return func(c CategorySummary) decimal.Decimal { return c.TotalQuantity }, nil
	case MetricValue:
		return func(c CategorySummary) decimal.Decimal { return c.TotalValue }, nil
	case MetricUnrealised:
		return func(c CategorySummary) decimal.Decimal { return c.UnrealisedValue }, nil
	case MetricMargin:
		return func(c CategorySummary) decimal.Decimal { return c.AverageGrossMargin }, nil
	default:
		return nil, fmt.Errorf("métrica de categoría desconocida %q: %w", metric, domain.ErrInvalidInput)
	}
}
