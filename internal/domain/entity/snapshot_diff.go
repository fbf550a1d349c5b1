package entity

import (
	"slices"

	"github.com/shopspring/decimal"
)

// DiffLine fila por producto de la comparación, anclada en el snapshot actual.
// Los campos descriptivos (nombre, categoría, costo, precios) vienen del snapshot actual.
type DiffLine struct {
	ProductCode      string
	Name             string
	Category         string
	AverageCost      decimal.Decimal
	PriceTiers       [PriceTierCount]decimal.Decimal
	CurrentQuantity  decimal.Decimal
	PreviousQuantity decimal.Decimal // 0 si el producto no existía en el snapshot anterior
	QuantityChange   decimal.Decimal // Current − Previous; negativo = vendido
	InPrevious       bool
}

// PriceTier devuelve el nivel de precio n (1..5).
func (l DiffLine) PriceTier(n int) decimal.Decimal {
	if n < 1 || n > PriceTierCount {
		return decimal.Zero
	}
	return l.PriceTiers[n-1]
}

// CategoryChange rollup por categoría calculado agrupando cada snapshot por separado.
type CategoryChange struct {
	Category         string
	CurrentQuantity  decimal.Decimal
	PreviousQuantity decimal.Decimal
	QuantityChange   decimal.Decimal
	CurrentValue     decimal.Decimal // Σ quantity × averageCost del snapshot actual
	PreviousValue    decimal.Decimal
	ValueChange      decimal.Decimal
}

// SnapshotDiff comparación transitoria entre dos snapshots; no se comparte entre peticiones.
type SnapshotDiff struct {
	CurrentID  string
	PreviousID string
	Lines      []DiffLine       // mismo orden que current.Records
	Categories []CategoryChange // ordenadas por nombre de categoría
}

// Clone copia profunda de las filas y rollups.
func (d *SnapshotDiff) Clone() *SnapshotDiff {
	out := *d
	out.Lines = slices.Clone(d.Lines)
	out.Categories = slices.Clone(d.Categories)
	return &out
}

// Line busca la fila de un producto.
func (d *SnapshotDiff) Line(code string) (DiffLine, bool) {
	for _, l := range d.Lines {
		if l.ProductCode == code {
			return l, true
		}
	}
	return DiffLine{}, false
}

// Category busca el rollup de una categoría.
func (d *SnapshotDiff) Category(name string) (CategoryChange, bool) {
	for _, c := range d.Categories {
		if c.Category == name {
			return c, true
		}
	}
	return CategoryChange{}, false
}
