package dto

import (
	"github.com/shopspring/decimal"

	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/domain/ranking"
	"github.com/daskasas/inventory-tracker/internal/domain/snapshot"
)

// ToBuildReport convierte el reporte de limpieza.
func ToBuildReport(r snapshot.BuildReport) BuildReportDTO {
	return BuildReportDTO(r)
}

// ToSnapshotResponse convierte un snapshot completo.
func ToSnapshotResponse(s *entity.Snapshot) *SnapshotResponse {
	out := &SnapshotResponse{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		RecordCount: len(s.Records),
		Records:     make([]ProductRecordDTO, 0, len(s.Records)),
	}
	for _, r := range s.Records {
		out.Records = append(out.Records, ProductRecordDTO{
			ProductCode: r.ProductCode,
			Name:        r.Name,
			Category:    r.Category,
			Quantity:    r.Quantity,
			AverageCost: r.AverageCost,
			PriceTiers:  tiers(r.PriceTiers),
		})
	}
	return out
}

// ToCategorySummaries convierte los resúmenes por categoría.
func ToCategorySummaries(in []ranking.CategorySummary) []CategorySummaryDTO {
	out := make([]CategorySummaryDTO, 0, len(in))
	for _, c := range in {
		out = append(out, CategorySummaryDTO(c))
	}
	return out
}

// ToDiffLine convierte una línea del diff.
func ToDiffLine(l entity.DiffLine) DiffLineDTO {
	return DiffLineDTO{
		ProductCode:      l.ProductCode,
		Name:             l.Name,
		Category:         l.Category,
		AverageCost:      l.AverageCost,
		PriceTiers:       tiers(l.PriceTiers),
		CurrentQuantity:  l.CurrentQuantity,
		PreviousQuantity: l.PreviousQuantity,
		QuantityChange:   l.QuantityChange,
		InPrevious:       l.InPrevious,
	}
}

// ToComparisonResponse convierte el diff completo.
func ToComparisonResponse(d *entity.SnapshotDiff) *ComparisonResponse {
	out := &ComparisonResponse{
		CurrentID:  d.CurrentID,
		PreviousID: d.PreviousID,
		Lines:      make([]DiffLineDTO, 0, len(d.Lines)),
		Categories: make([]CategoryChangeDTO, 0, len(d.Categories)),
	}
	for _, l := range d.Lines {
		out.Lines = append(out.Lines, ToDiffLine(l))
	}
	for _, c := range d.Categories {
		out.Categories = append(out.Categories, CategoryChangeDTO(c))
	}
	return out
}

// ToRankedLines convierte una vista de productos.
func ToRankedLines(in []ranking.RankedLine) []RankedLineDTO {
	out := make([]RankedLineDTO, 0, len(in))
	for _, r := range in {
		out = append(out, RankedLineDTO{DiffLineDTO: ToDiffLine(r.DiffLine), Metric: r.Metric})
	}
	return out
}

// ToRankedCategories convierte una vista de categorías.
func ToRankedCategories(in []ranking.RankedCategory) []RankedCategoryDTO {
	out := make([]RankedCategoryDTO, 0, len(in))
	for _, r := range in {
		out = append(out, RankedCategoryDTO{CategoryChangeDTO: CategoryChangeDTO(r.CategoryChange), Metric: r.Metric})
	}
	return out
}

func tiers(in [entity.PriceTierCount]decimal.Decimal) []decimal.Decimal {
	return append([]decimal.Decimal(nil), in[:]...)
}
