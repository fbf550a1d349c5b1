// Package comparison contiene los casos de uso sobre dos snapshots: diff, rankings y reporte.
package comparison

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daskasas/inventory-tracker/internal/application/dto"
	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/domain/ranking"
	"github.com/daskasas/inventory-tracker/internal/domain/repository"
	"github.com/daskasas/inventory-tracker/internal/domain/snapshot"
)

// Vistas de ranking disponibles.
const (
	ViewMostSold            = "most_sold"
	ViewGrossProfit         = "gross_profit"
	ViewLeastSoldCategories = "least_sold_categories"
	ViewTopIncreases        = "top_increases"
	ViewStagnated           = "stagnated"
)

// Views nombres válidos en orden de presentación.
var Views = []string{ViewMostSold, ViewGrossProfit, ViewLeastSoldCategories, ViewTopIncreases, ViewStagnated}

// DiffPrefix prefijo de las tablas de comparación persistidas.
const DiffPrefix = "merged_data"

// Options comportamiento configurable (config.IngestConfig / config.ReportConfig).
type Options struct {
	PersistDiff bool
	TopN        int
	Currency    string
}

// CompareUseCase compara snapshots guardados.
type CompareUseCase struct {
	snapshots repository.SnapshotRepository
	diffs     repository.DiffRepository // nil = no persistir nunca
	report    ReportGenerator
	opts      Options
	log       zerolog.Logger
	now       func() time.Time
}

// NewCompareUseCase construye el caso de uso.
func NewCompareUseCase(
	snapshots repository.SnapshotRepository,
	diffs repository.DiffRepository,
	report ReportGenerator,
	opts Options,
	log zerolog.Logger,
) *CompareUseCase {
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	if opts.Currency == "" {
		opts.Currency = "ZAR"
	}
	return &CompareUseCase{
		snapshots: snapshots,
		diffs:     diffs,
		report:    report,
		opts:      opts,
		log:       log,
		now:       time.Now,
	}
}

// DiffID identificador de la tabla de comparación: merged_data_<fecha del snapshot actual>.
// Si el identificador actual no termina en fecha se usa completo.
func DiffID(currentID string) string {
	suffix := currentID
	if i := strings.LastIndex(currentID, "_"); i >= 0 {
		if _, err := time.Parse("2006-01-02", currentID[i+1:]); err == nil {
			suffix = currentID[i+1:]
		}
	}
	return DiffPrefix + "_" + suffix
}

// Compare calcula el diff current vs previous y, si está configurado, lo persiste.
func (uc *CompareUseCase) Compare(ctx context.Context, currentID, previousID string) (*dto.ComparisonResponse, error) {
	d, err := uc.diff(ctx, currentID, previousID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToComparisonResponse(d)

	if uc.opts.PersistDiff && uc.diffs != nil {
		id := DiffID(currentID)
		if err := uc.diffs.SaveDiff(ctx, id, d); err != nil {
			return nil, fmt.Errorf("guardar comparación %s: %w", id, err)
		}
		resp.PersistedAs = id
	}

	uc.log.Info().
		Str("current_id", currentID).
		Str("previous_id", previousID).
		Int("lines", len(d.Lines)).
		Int("categories", len(d.Categories)).
		Str("persisted_as", resp.PersistedAs).
		Msg("comparación calculada")
	return resp, nil
}

// Rankings una vista top-N. N = 0 usa Options.TopN; el N efectivo se acota a [1, grupo].
func (uc *CompareUseCase) Rankings(ctx context.Context, req dto.RankingRequest) (*dto.RankingResponse, error) {
	if !slices.Contains(Views, req.View) {
		return nil, fmt.Errorf("vista %q desconocida (%s): %w", req.View, strings.Join(Views, ", "), domain.ErrInvalidInput)
	}
	d, err := uc.diff(ctx, req.Current, req.Previous)
	if err != nil {
		return nil, err
	}
	requested := req.N
	if requested == 0 {
		requested = uc.opts.TopN
	}

	resp := &dto.RankingResponse{CurrentID: d.CurrentID, PreviousID: d.PreviousID, View: req.View}
	if req.View == ViewLeastSoldCategories {
		resp.GroupSize = len(d.Categories)
		resp.N = ranking.ClampN(requested, resp.GroupSize)
		resp.Categories = dto.ToRankedCategories(ranking.LeastSoldCategories(d, resp.N))
		return resp, nil
	}
	resp.GroupSize = productGroupSize(d)
	resp.N = ranking.ClampN(requested, resp.GroupSize)
	resp.Lines = dto.ToRankedLines(lineView(req.View)(d, resp.N))
	return resp, nil
}

// Report genera el reporte con todas las vistas para el N dado (0 = Options.TopN).
func (uc *CompareUseCase) Report(ctx context.Context, currentID, previousID string, n int) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("reporte: generador no configurado")
	}
	d, err := uc.diff(ctx, currentID, previousID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		n = uc.opts.TopN
	}
	productN := ranking.ClampN(n, productGroupSize(d))
	categoryN := ranking.ClampN(n, len(d.Categories))

	data := &ReportData{
		Title:               "Inventory comparison",
		Currency:            uc.opts.Currency,
		GeneratedAt:         uc.now(),
		CurrentID:           d.CurrentID,
		PreviousID:          d.PreviousID,
		N:                   productN,
		Categories:          d.Categories,
		MostSold:            ranking.MostSold(d, productN),
		TopGrossProfit:      ranking.TopGrossProfit(d, productN),
		TopIncreases:        ranking.TopIncreases(d, productN),
		Stagnated:           ranking.Stagnated(d, productN),
		LeastSoldCategories: ranking.LeastSoldCategories(d, categoryN),
	}
	pdf, err := uc.report.GenerateComparisonReport(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("reporte %s vs %s: %w", currentID, previousID, err)
	}
	return pdf, nil
}

func (uc *CompareUseCase) diff(ctx context.Context, currentID, previousID string) (*entity.SnapshotDiff, error) {
	if currentID == "" || previousID == "" {
		return nil, fmt.Errorf("se requieren los snapshots actual y anterior: %w", domain.ErrInvalidInput)
	}
	current, err := uc.snapshots.Load(ctx, currentID)
	if err != nil {
		return nil, err
	}
	previous, err := uc.snapshots.Load(ctx, previousID)
	if err != nil {
		return nil, err
	}
	return snapshot.Diff(current, previous)
}

// productGroupSize los controles de productos llegan hasta MaxProductN.
func productGroupSize(d *entity.SnapshotDiff) int {
	return min(len(d.Lines), ranking.MaxProductN)
}

func lineView(v string) func(*entity.SnapshotDiff, int) []ranking.RankedLine {
	switch v {
	case ViewMostSold:
		return ranking.MostSold
	case ViewGrossProfit:
		return ranking.TopGrossProfit
	case ViewTopIncreases:
		return ranking.TopIncreases
	default:
		return ranking.Stagnated
	}
}
