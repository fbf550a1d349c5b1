package snapshot

import "github.com/shopspring/decimal"

// StockAggregate stock sumado por ProductCode.
type StockAggregate struct {
	Quantities             map[string]decimal.Decimal
	DroppedMissingQuantity int // filas descartadas por no traer cantidad

	order []string
}

// AggregateStock agrupa las observaciones por código y suma la cantidad.
// Las filas sin cantidad se descartan antes de agregar y se cuentan en DroppedMissingQuantity.
func AggregateStock(rows []StockObservation) StockAggregate {
	agg := StockAggregate{Quantities: make(map[string]decimal.Decimal, len(rows))}
	for _, r := range rows {
		if !r.Quantity.Valid {
			agg.DroppedMissingQuantity++
			continue
		}
		cur, ok := agg.Quantities[r.ProductCode]
		if !ok {
			agg.order = append(agg.order, r.ProductCode)
		}
		agg.Quantities[r.ProductCode] = cur.Add(r.Quantity.Decimal)
	}
	return agg
}

// Lookup devuelve la cantidad agregada de un código y si fue observado.
func (a StockAggregate) Lookup(code string) (decimal.Decimal, bool) {
	q, ok := a.Quantities[code]
	return q, ok
}

// Codes códigos distintos en orden de primera aparición.
func (a StockAggregate) Codes() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Len cantidad de códigos distintos.
func (a StockAggregate) Len() int { return len(a.Quantities) }
