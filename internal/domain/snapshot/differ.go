package snapshot

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
)

// Diff compara current contra previous. La comparación está anclada en el catálogo actual:
// los productos que solo existen en previous no generan fila, pero sí pesan en los rollups
// por categoría, que se calculan agrupando cada snapshot por separado.
func Diff(current, previous *entity.Snapshot) (*entity.SnapshotDiff, error) {
	if current == nil || previous == nil {
		return nil, fmt.Errorf("diff: snapshot nil: %w", domain.ErrPreconditionViolation)
	}
	if err := current.Validate(); err != nil {
		return nil, fmt.Errorf("diff: snapshot actual: %w", err)
	}
	if err := previous.Validate(); err != nil {
		return nil, fmt.Errorf("diff: snapshot anterior: %w", err)
	}

	prev := previous.Index()
	lines := make([]entity.DiffLine, 0, len(current.Records))
	for _, r := range current.Records {
		line := entity.DiffLine{
			ProductCode:      r.ProductCode,
			Name:             r.Name,
			Category:         r.Category,
			AverageCost:      r.AverageCost,
			PriceTiers:       r.PriceTiers,
			CurrentQuantity:  r.Quantity,
			PreviousQuantity: decimal.Zero,
		}
		if p, ok := prev[r.ProductCode]; ok {
			line.PreviousQuantity = p.Quantity
			line.InPrevious = true
		}
		line.QuantityChange = line.CurrentQuantity.Sub(line.PreviousQuantity)
		lines = append(lines, line)
	}

	return &entity.SnapshotDiff{
		CurrentID:  current.ID,
		PreviousID: previous.ID,
		Lines:      lines,
		Categories: categoryChanges(current, previous),
	}, nil
}

type categoryTotals struct {
	quantity decimal.Decimal
	value    decimal.Decimal
}

func groupByCategory(s *entity.Snapshot) map[string]categoryTotals {
	out := make(map[string]categoryTotals)
	for _, r := range s.Records {
		t := out[r.Category]
		t.quantity = t.quantity.Add(r.Quantity)
		t.value = t.value.Add(r.TotalValue())
		out[r.Category] = t
	}
	return out
}

// categoryChanges une los totales por categoría de ambos lados (outer join, ceros si falta un lado).
func categoryChanges(current, previous *entity.Snapshot) []entity.CategoryChange {
	cur := groupByCategory(current)
	prev := groupByCategory(previous)

	names := make([]string, 0, len(cur)+len(prev))
	for name := range cur {
		names = append(names, name)
	}
	for name := range prev {
		if _, ok := cur[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]entity.CategoryChange, 0, len(names))
	for _, name := range names {
		c, p := cur[name], prev[name]
		out = append(out, entity.CategoryChange{
			Category:         name,
			CurrentQuantity:  c.quantity,
			PreviousQuantity: p.quantity,
			QuantityChange:   c.quantity.Sub(p.quantity),
			CurrentValue:     c.value,
			PreviousValue:    p.value,
			ValueChange:      c.value.Sub(p.value),
		})
	}
	return out
}
