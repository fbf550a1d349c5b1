package entity

import "github.com/shopspring/decimal"

// PriceTierCount cantidad de niveles de precio que exporta el sistema de inventario.
const PriceTierCount = 5

// ProductRecord representa una fila canónica de un Snapshot: un SKU ya limpio y validado.
// Quantity es la suma de los conteos de stock observados (0 si no hubo observación).
type ProductRecord struct {
	ProductCode string // único dentro del snapshot
	Name        string
	Category    string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
	PriceTiers  [PriceTierCount]decimal.Decimal // PriceTier1..PriceTier5; el 1 es el precio de venta al público
}

// PriceTier devuelve el nivel de precio n (1..5).
func (p ProductRecord) PriceTier(n int) decimal.Decimal {
	if n < 1 || n > PriceTierCount {
		return decimal.Zero
	}
	return p.PriceTiers[n-1]
}

// TotalValue valor del stock a costo promedio: Quantity × AverageCost.
func (p ProductRecord) TotalValue() decimal.Decimal {
	return p.Quantity.Mul(p.AverageCost)
}

// UnrealisedValue utilidad bruta aún no capturada: (PriceTier1 − AverageCost) × Quantity.
func (p ProductRecord) UnrealisedValue() decimal.Decimal {
	return p.PriceTier(1).Sub(p.AverageCost).Mul(p.Quantity)
}
