package comparison

import (
	"context"
	"time"

	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/domain/ranking"
)

// ReportData todo lo que necesita el reporte impreso de una comparación.
type ReportData struct {
	Title       string
	Currency    string
	GeneratedAt time.Time
	CurrentID   string
	PreviousID  string
	N           int // N efectivo de las vistas de productos (ya acotado)

	Categories          []entity.CategoryChange
	MostSold            []ranking.RankedLine
	TopGrossProfit      []ranking.RankedLine
	TopIncreases        []ranking.RankedLine
	Stagnated           []ranking.RankedLine
	LeastSoldCategories []ranking.RankedCategory
}

// ReportGenerator genera el documento (PDF) de una comparación.
type ReportGenerator interface {
	GenerateComparisonReport(ctx context.Context, data *ReportData) ([]byte, error)
}
