package comparison_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daskasas/inventory-tracker/internal/application/comparison"
	"github.com/daskasas/inventory-tracker/internal/application/dto"
	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/infrastructure/memory"
)

const (
	currentID  = "inventory_data_2024-03-15"
	previousID = "inventory_data_2024-03-08"
)

type fakeReport struct {
	got *comparison.ReportData
	err error
}

func (f *fakeReport) GenerateComparisonReport(_ context.Context, data *comparison.ReportData) ([]byte, error) {
	f.got = data
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func rec(code, category string, qty int64) entity.ProductRecord {
	r := entity.ProductRecord{
		ProductCode: code, Name: code, Category: category,
		Quantity: decimal.NewFromInt(qty), AverageCost: decimal.NewFromInt(5),
	}
	for i := range r.PriceTiers {
		r.PriceTiers[i] = decimal.NewFromInt(20)
	}
	return r
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	cur, err := entity.NewSnapshot(currentID, time.Now(), []entity.ProductRecord{
		rec("P001", "Widgets", 4), // -6
		rec("P002", "Widgets", 7), // +2
		rec("P003", "Lamps", 3),   // 0
		rec("P999", "Lamps", 2),   // nuevo
	})
	require.NoError(t, err)
	prev, err := entity.NewSnapshot(previousID, time.Now(), []entity.ProductRecord{
		rec("P001", "Widgets", 10),
		rec("P002", "Widgets", 5),
		rec("P003", "Lamps", 3),
		rec("P500", "Rugs", 8), // solo en el anterior
	})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, cur))
	require.NoError(t, store.Save(ctx, prev))
	return store
}

func newUseCase(store *memory.Store, report comparison.ReportGenerator, opts comparison.Options) *comparison.CompareUseCase {
	return comparison.NewCompareUseCase(store, store, report, opts, zerolog.Nop())
}

func TestDiffID(t *testing.T) {
	assert.Equal(t, "merged_data_2024-03-15", comparison.DiffID("inventory_data_2024-03-15"))
	assert.Equal(t, "merged_data_manual", comparison.DiffID("manual"))
	assert.Equal(t, "merged_data_corte_final", comparison.DiffID("corte_final"))
}

func TestCompare(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := newUseCase(store, nil, comparison.Options{})

	res, err := uc.Compare(ctx, currentID, previousID)
	require.NoError(t, err)
	assert.Empty(t, res.PersistedAs)
	require.Len(t, res.Lines, 4, "anclado en el snapshot actual")
	assert.Equal(t, "-6", res.Lines[0].QuantityChange.String())
	assert.False(t, res.Lines[3].InPrevious)

	names := make([]string, 0, len(res.Categories))
	for _, c := range res.Categories {
		names = append(names, c.Category)
	}
	assert.Equal(t, []string{"Lamps", "Rugs", "Widgets"}, names, "outer join ordenado por nombre")

	_, err = store.LoadDiff(ctx, "merged_data_2024-03-15")
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin PersistDiff no se guarda nada")
}

func TestCompare_PersisteSiEstaConfigurado(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := newUseCase(store, nil, comparison.Options{PersistDiff: true})

	res, err := uc.Compare(ctx, currentID, previousID)
	require.NoError(t, err)
	assert.Equal(t, "merged_data_2024-03-15", res.PersistedAs)

	saved, err := store.LoadDiff(ctx, res.PersistedAs)
	require.NoError(t, err)
	assert.Equal(t, currentID, saved.CurrentID)
	assert.Len(t, saved.Lines, 4)
}

func TestCompare_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(seed(t), nil, comparison.Options{})

	_, err := uc.Compare(ctx, currentID, "inventory_data_1999-01-01")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Compare(ctx, "", previousID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRankings(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(seed(t), nil, comparison.Options{TopN: 10})

	cases := []struct {
		view  string
		codes []string
	}{
		{comparison.ViewMostSold, []string{"P001"}},
		{comparison.ViewTopIncreases, []string{"P002", "P999"}},
		{comparison.ViewStagnated, []string{"P003", "P002", "P999"}},
		{comparison.ViewGrossProfit, []string{"P001", "P002", "P999", "P003"}},
	}
	for _, tc := range cases {
		t.Run(tc.view, func(t *testing.T) {
			res, err := uc.Rankings(ctx, dto.RankingRequest{Current: currentID, Previous: previousID, View: tc.view})
			require.NoError(t, err)
			assert.Equal(t, 4, res.GroupSize)
			assert.Equal(t, 4, res.N, "TopN 10 se acota al tamaño del grupo")
			codes := make([]string, 0, len(res.Lines))
			for _, l := range res.Lines {
				codes = append(codes, l.ProductCode)
			}
			assert.Equal(t, tc.codes, codes)
			assert.Empty(t, res.Categories)
		})
	}
}

func TestRankings_CategoriasYAcotado(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(seed(t), nil, comparison.Options{})

	res, err := uc.Rankings(ctx, dto.RankingRequest{
		Current: currentID, Previous: previousID, View: comparison.ViewLeastSoldCategories, N: -3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.GroupSize)
	assert.Equal(t, 1, res.N, "N negativo se acota a 1")
	require.Len(t, res.Categories, 1)
	assert.Equal(t, "Widgets", res.Categories[0].Category, "Widgets cambia -4 y Rugs -8: el más cercano a cero primero")
	assert.Empty(t, res.Lines)

	_, err = uc.Rankings(ctx, dto.RankingRequest{Current: currentID, Previous: previousID, View: "best"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRankings_TopeDeProductos(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	var many []entity.ProductRecord
	for i := 0; i < 40; i++ {
		many = append(many, rec(fmt.Sprintf("P%03d", i), "Widgets", int64(i)))
	}
	s, _ := entity.NewSnapshot(currentID, time.Now(), many)
	require.NoError(t, store.Save(ctx, s))
	uc := newUseCase(store, nil, comparison.Options{})

	res, err := uc.Rankings(ctx, dto.RankingRequest{Current: currentID, Previous: currentID, View: comparison.ViewStagnated, N: 100})
	require.NoError(t, err)
	assert.Equal(t, 30, res.N)
	assert.Len(t, res.Lines, 30)
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	fake := &fakeReport{}
	uc := newUseCase(seed(t), fake, comparison.Options{TopN: 2, Currency: "ZAR"})

	pdf, err := uc.Report(ctx, currentID, previousID, 0)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))

	require.NotNil(t, fake.got)
	assert.Equal(t, "ZAR", fake.got.Currency)
	assert.Equal(t, 2, fake.got.N)
	assert.Len(t, fake.got.TopGrossProfit, 2)
	assert.Len(t, fake.got.MostSold, 1)
	assert.Len(t, fake.got.LeastSoldCategories, 2)
	assert.Len(t, fake.got.Categories, 3)

	// El encabezado muestra el N efectivo, no el pedido.
	_, err = uc.Report(ctx, currentID, previousID, 50)
	require.NoError(t, err)
	assert.Equal(t, 4, fake.got.N, "4 productos en el snapshot actual")
	assert.Len(t, fake.got.Stagnated, 3)

	fake.err = errors.New("sin fuentes")
	_, err = uc.Report(ctx, currentID, previousID, 5)
	assert.ErrorContains(t, err, "sin fuentes")
}
