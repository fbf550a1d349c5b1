package snapshot_test

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/domain/snapshot"
)

var testDate = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nd(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(dec(s))
}

// invRow fila de inventario con los 5 niveles de precio iguales a tier1 salvo que se indique otra cosa.
func invRow(code, name, category, cost, tier1 string) snapshot.InventoryRow {
	r := snapshot.InventoryRow{ProductCode: code, Name: name, Category: category, AverageCost: nd(cost)}
	for i := range r.PriceTiers {
		r.PriceTiers[i] = nd(tier1)
	}
	return r
}

func obs(code, qty string) snapshot.StockObservation {
	return snapshot.StockObservation{ProductCode: code, Quantity: nd(qty)}
}

func record(code, category, qty, cost, tier1 string) entity.ProductRecord {
	r := entity.ProductRecord{
		ProductCode: code,
		Name:        "Producto " + code,
		Category:    category,
		Quantity:    dec(qty),
		AverageCost: dec(cost),
	}
	for i := range r.PriceTiers {
		r.PriceTiers[i] = dec(tier1)
	}
	return r
}

func snap(t *testing.T, id string, records ...entity.ProductRecord) *entity.Snapshot {
	t.Helper()
	s, err := entity.NewSnapshot(id, testDate, records)
	require.NoError(t, err)
	return s
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	msg := fmt.Sprintf("esperado %s, obtenido %s", want, got.String())
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok {
			msg += ": " + fmt.Sprintf(format, msgAndArgs[1:]...)
		}
	}
	assert.True(t, dec(want).Equal(got), msg)
}

func itoaInt(n int) string { return strconv.Itoa(n) }
