package snapshot

import (
	"context"

	"github.com/daskasas/inventory-tracker/internal/application/dto"
	"github.com/daskasas/inventory-tracker/internal/domain/ranking"
	"github.com/daskasas/inventory-tracker/internal/domain/repository"
)

// QueryUseCase lecturas de snapshots guardados.
type QueryUseCase struct {
	repo repository.SnapshotRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(repo repository.SnapshotRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// List identificadores guardados, más antiguo primero.
func (uc *QueryUseCase) List(ctx context.Context) (*dto.SnapshotListResponse, error) {
	ids, err := uc.repo.ListIdentifiers(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return &dto.SnapshotListResponse{Identifiers: ids}, nil
}

// Get snapshot completo; domain.ErrNotFound si no existe.
func (uc *QueryUseCase) Get(ctx context.Context, id string) (*dto.SnapshotResponse, error) {
	s, err := uc.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToSnapshotResponse(s), nil
}

// CategoryOverview resúmenes por categoría ordenados ascendentemente por metric
// (vacío = por nombre de categoría).
func (uc *QueryUseCase) CategoryOverview(ctx context.Context, id, metric string) (*dto.CategoryOverviewResponse, error) {
	if metric == "" {
		metric = ranking.MetricCategory
	}
	s, err := uc.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	sorted, err := ranking.SortSummaries(ranking.CategorySummaries(s), metric)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryOverviewResponse{
		SnapshotID: id,
		SortBy:     metric,
		Categories: dto.ToCategorySummaries(sorted),
	}, nil
}
