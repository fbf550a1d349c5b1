package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/daskasas/inventory-tracker/internal/application/comparison"
	appsnapshot "github.com/daskasas/inventory-tracker/internal/application/snapshot"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ingest  *appsnapshot.IngestUseCase
	Query   *appsnapshot.QueryUseCase
	Compare *comparison.CompareUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	snapshots := api.Group("/snapshots")
	snapshotHandler := NewSnapshotHandler(deps.Ingest, deps.Query)
	snapshots.Post("/", snapshotHandler.Ingest)
	snapshots.Get("/", snapshotHandler.List)
	snapshots.Get("/:id", snapshotHandler.GetByID)
	snapshots.Get("/:id/categories", snapshotHandler.Categories)

	comparisons := api.Group("/comparisons")
	comparisonHandler := NewComparisonHandler(deps.Compare)
	comparisons.Get("/", comparisonHandler.Compare)
	comparisons.Get("/rankings", comparisonHandler.Rankings)
	comparisons.Get("/report.pdf", comparisonHandler.Report)
}
