package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/domain/snapshot"
	"github.com/daskasas/inventory-tracker/internal/infrastructure/sqlite"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "inventory_data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func rec(code, category, qty, cost, tier1 string) entity.ProductRecord {
	r := entity.ProductRecord{
		ProductCode: code, Name: "Producto " + code, Category: category,
		Quantity:    decimal.RequireFromString(qty),
		AverageCost: decimal.RequireFromString(cost),
	}
	r.PriceTiers[0] = decimal.RequireFromString(tier1)
	for i := 1; i < entity.PriceTierCount; i++ {
		r.PriceTiers[i] = decimal.NewFromInt(int64(20 + i))
	}
	return r
}

func assertSameRecords(t *testing.T, want, got []entity.ProductRecord) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ProductCode, got[i].ProductCode)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Category, got[i].Category)
		assert.True(t, want[i].Quantity.Equal(got[i].Quantity), "quantity de %s", want[i].ProductCode)
		assert.True(t, want[i].AverageCost.Equal(got[i].AverageCost), "cost de %s", want[i].ProductCode)
		for n := range want[i].PriceTiers {
			assert.True(t, want[i].PriceTiers[n].Equal(got[i].PriceTiers[n]), "tier %d de %s", n+1, want[i].ProductCode)
		}
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	created := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	s, err := entity.NewSnapshot("inventory_data_2024-03-15", created, []entity.ProductRecord{
		rec("P002", "Lamps", "12.5", "7.25", "19.99"),
		rec("P001", "Chairs", "0", "5", "15"),
	})
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, s))
	got, err := store.Load(ctx, s.ID)
	require.NoError(t, err)

	assert.Equal(t, s.ID, got.ID)
	assert.True(t, created.Equal(got.CreatedAt))
	assertSameRecords(t, s.Records, got.Records)
}

func TestStore_SaveReemplazaCompleto(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	id := "inventory_data_2024-03-15"
	first, _ := entity.NewSnapshot(id, time.Now(), []entity.ProductRecord{
		rec("P001", "Chairs", "1", "5", "15"),
		rec("P002", "Chairs", "2", "5", "15"),
	})
	second, _ := entity.NewSnapshot(id, time.Now(), []entity.ProductRecord{
		rec("P003", "Lamps", "3", "5", "15"),
	})

	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assertSameRecords(t, second.Records, got.Records)

	ids, err := store.ListIdentifiers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)
}

func TestStore_SnapshotVacio(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	s, _ := entity.NewSnapshot("inventory_data_2024-01-01", time.Now(), nil)
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Records)
}

func TestStore_NotFoundYOrden(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	_, err := store.Load(ctx, "inventory_data_2020-01-01")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ids, err := store.ListIdentifiers(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []string{"inventory_data_2024-03-15", "inventory_data_2023-11-30", "inventory_data_2024-02-01"} {
		s, _ := entity.NewSnapshot(id, time.Now(), nil)
		require.NoError(t, store.Save(ctx, s))
	}
	ids, err = store.ListIdentifiers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"inventory_data_2023-11-30", "inventory_data_2024-02-01", "inventory_data_2024-03-15"}, ids)
}

// Un lector concurrente nunca ve filas de dos versiones del mismo identificador.
func TestStore_LecturaDuranteSobrescritura(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	id := "inventory_data_2024-03-15"
	a, _ := entity.NewSnapshot(id, time.Now(), []entity.ProductRecord{
		rec("A1", "Chairs", "1", "5", "15"), rec("A2", "Chairs", "1", "5", "15"),
	})
	b, _ := entity.NewSnapshot(id, time.Now(), []entity.ProductRecord{
		rec("B1", "Lamps", "2", "5", "15"), rec("B2", "Lamps", "2", "5", "15"), rec("B3", "Lamps", "2", "5", "15"),
	})
	require.NoError(t, store.Save(ctx, a))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			next := a
			if i%2 == 0 {
				next = b
			}
			assert.NoError(t, store.Save(ctx, next))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 40; i++ {
			got, err := store.Load(ctx, id)
			if !assert.NoError(t, err) {
				return
			}
			prefix := got.Records[0].ProductCode[:1]
			for _, r := range got.Records {
				assert.Equal(t, prefix, r.ProductCode[:1], "snapshot mezclado")
			}
			if prefix == "A" {
				assert.Len(t, got.Records, 2)
			} else {
				assert.Len(t, got.Records, 3)
			}
		}
	}()
	wg.Wait()
}

func TestStore_SaveDiff(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	current, _ := entity.NewSnapshot("inventory_data_2024-03-15", time.Now(), []entity.ProductRecord{
		rec("P001", "Widgets", "4", "5", "15"),
		rec("P999", "Widgets", "2", "5", "15"),
	})
	previous, _ := entity.NewSnapshot("inventory_data_2024-03-08", time.Now(), []entity.ProductRecord{
		rec("P001", "Widgets", "10", "5", "15"),
	})
	d, err := snapshot.Diff(current, previous)
	require.NoError(t, err)

	require.NoError(t, store.SaveDiff(ctx, "merged_data_2024-03-15", d))
	require.NoError(t, store.SaveDiff(ctx, "merged_data_2024-03-15", d), "sobrescribir no duplica filas")

	got, err := store.LoadDiff(ctx, "merged_data_2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, d.CurrentID, got.CurrentID)
	assert.Equal(t, d.PreviousID, got.PreviousID)
	require.Len(t, got.Lines, 2)

	l, ok := got.Line("P001")
	require.True(t, ok)
	assert.True(t, l.QuantityChange.Equal(decimal.NewFromInt(-6)))
	assert.True(t, l.InPrevious)
	l, ok = got.Line("P999")
	require.True(t, ok)
	assert.False(t, l.InPrevious)
	assert.True(t, l.PreviousQuantity.IsZero())

	require.Len(t, got.Categories, 1)
	assert.True(t, got.Categories[0].ValueChange.Equal(decimal.NewFromInt(-20)))

	_, err = store.LoadDiff(ctx, "merged_data_1999-01-01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
