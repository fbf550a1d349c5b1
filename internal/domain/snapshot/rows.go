package snapshot

import (
	"github.com/shopspring/decimal"

	"github.com/daskasas/inventory-tracker/internal/domain/entity"
)

// InventoryRow fila tipada del listado maestro de inventario, sin reglas de negocio aplicadas.
// Los campos numéricos son NullDecimal: una celda vacía llega como Valid=false.
type InventoryRow struct {
	ProductCode string
	Name        string
	Category    string
	AverageCost decimal.NullDecimal
	PriceTiers  [entity.PriceTierCount]decimal.NullDecimal
}

// StockObservation una observación de un conteo de stock (un producto puede aparecer varias veces).
type StockObservation struct {
	ProductCode string
	Quantity    decimal.NullDecimal
}
