package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/infrastructure/memory"
)

func rec(code string, qty int64) entity.ProductRecord {
	r := entity.ProductRecord{
		ProductCode: code, Name: "n" + code, Category: "Widgets",
		Quantity: decimal.NewFromInt(qty), AverageCost: decimal.NewFromInt(5),
	}
	for i := range r.PriceTiers {
		r.PriceTiers[i] = decimal.NewFromInt(20)
	}
	return r
}

func TestStore_RoundTripYReemplazo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s1, _ := entity.NewSnapshot("inventory_data_2024-03-15", time.Now(), []entity.ProductRecord{rec("P1", 1), rec("P2", 2)})

	require.NoError(t, store.Save(ctx, s1))
	got, err := store.Load(ctx, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, s1, got)

	got.Records[0].Name = "mutado"
	again, _ := store.Load(ctx, s1.ID)
	assert.Equal(t, "nP1", again.Records[0].Name, "el store no comparte memoria con el llamador")

	s2, _ := entity.NewSnapshot(s1.ID, time.Now(), []entity.ProductRecord{rec("P9", 9)})
	require.NoError(t, store.Save(ctx, s2))
	got, _ = store.Load(ctx, s1.ID)
	require.Len(t, got.Records, 1, "save reemplaza, no mezcla")
	assert.Equal(t, "P9", got.Records[0].ProductCode)
}

func TestStore_NotFoundYListado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	_, err := store.Load(ctx, "inventory_data_1999-01-01")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, id := range []string{"inventory_data_2024-03-15", "inventory_data_2023-12-31", "inventory_data_2024-01-02"} {
		s, _ := entity.NewSnapshot(id, time.Now(), nil)
		require.NoError(t, store.Save(ctx, s))
	}
	ids, err := store.ListIdentifiers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"inventory_data_2023-12-31", "inventory_data_2024-01-02", "inventory_data_2024-03-15"}, ids)
}

// Lecturas concurrentes con sobrescrituras del mismo id ven siempre un snapshot completo.
func TestStore_LecturasAisladas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	const id = "inventory_data_2024-03-15"
	mk := func(n int) *entity.Snapshot {
		recs := make([]entity.ProductRecord, n)
		for i := range recs {
			recs[i] = rec(fmt.Sprintf("P%03d", i), int64(n))
		}
		s, _ := entity.NewSnapshot(id, time.Now(), recs)
		return s
	}
	require.NoError(t, store.Save(ctx, mk(10)))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = store.Save(ctx, mk(10+w*10))
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s, err := store.Load(ctx, id)
				if !assert.NoError(t, err) {
					return
				}
				n := int64(len(s.Records))
				for _, r := range s.Records {
					assert.True(t, r.Quantity.Equal(decimal.NewFromInt(n)), "snapshot mezclado")
				}
			}
		}()
	}
	wg.Wait()
}

func TestStore_SaveDiff(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	d := &entity.SnapshotDiff{CurrentID: "a", PreviousID: "b", Lines: []entity.DiffLine{{ProductCode: "P1"}}}

	require.NoError(t, store.SaveDiff(ctx, "merged_data_2024-03-15", d))
	got, err := store.LoadDiff(ctx, "merged_data_2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, d, got)

	// Modificar lo leído no altera lo guardado.
	got.Lines[0].ProductCode = "CAMBIADO"
	got.Categories = append(got.Categories, entity.CategoryChange{Category: "Extra"})
	again, err := store.LoadDiff(ctx, "merged_data_2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "P1", again.Lines[0].ProductCode)
	assert.Empty(t, again.Categories)

	// Tampoco el diff original del llamador después de guardarlo.
	d.Lines[0].ProductCode = "OTRO"
	again, err = store.LoadDiff(ctx, "merged_data_2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "P1", again.Lines[0].ProductCode)

	_, err = store.LoadDiff(ctx, "merged_data_2000-01-01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Error(t, store.SaveDiff(ctx, "", d))
}
