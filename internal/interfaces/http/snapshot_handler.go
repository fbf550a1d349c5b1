package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	appsnapshot "github.com/daskasas/inventory-tracker/internal/application/snapshot"
)

// SnapshotHandler ingesta y consulta de snapshots.
type SnapshotHandler struct {
	ingest *appsnapshot.IngestUseCase
	query  *appsnapshot.QueryUseCase
}

// NewSnapshotHandler construye el handler.
func NewSnapshotHandler(ingest *appsnapshot.IngestUseCase, query *appsnapshot.QueryUseCase) *SnapshotHandler {
	return &SnapshotHandler{ingest: ingest, query: query}
}

// Ingest godoc
// @Summary      Ingerir un snapshot desde los dos CSV exportados
// @Tags         snapshots
// @Accept       multipart/form-data
// @Produce      json
// @Param        inventory     formData  file    true   "Listado maestro de inventario (CSV)"
// @Param        stock         formData  file    true   "Niveles de stock (CSV)"
// @Param        date          formData  string  false  "Fecha del snapshot YYYY-MM-DD (por defecto hoy)"
// @Param        policy        formData  string  false  "full | dashboard"
// @Param        stock_format  formData  string  false  "auto | columns | indexed"
// @Success      201  {object}  dto.IngestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/snapshots [post]
func (h *SnapshotHandler) Ingest(c *fiber.Ctx) error {
	invHeader, err := c.FormFile("inventory")
	if err != nil {
		return badRequest(c, "archivo 'inventory' requerido")
	}
	stockHeader, err := c.FormFile("stock")
	if err != nil {
		return badRequest(c, "archivo 'stock' requerido")
	}
	inv, err := invHeader.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer inv.Close()
	stock, err := stockHeader.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer stock.Close()

	res, err := h.ingest.Ingest(c.UserContext(), appsnapshot.IngestRequest{
		InventoryName: fileName(invHeader),
		Inventory:     inv,
		StockName:     fileName(stockHeader),
		Stock:         stock,
		Date:          c.FormValue("date"),
		Policy:        c.FormValue("policy"),
		StockFormat:   c.FormValue("stock_format"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// List godoc
// @Summary      Listar snapshots guardados
// @Tags         snapshots
// @Produce      json
// @Success      200  {object}  dto.SnapshotListResponse
// @Router       /api/snapshots [get]
func (h *SnapshotHandler) List(c *fiber.Ctx) error {
	res, err := h.query.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// GetByID godoc
// @Summary      Obtener un snapshot completo
// @Tags         snapshots
// @Produce      json
// @Param        id   path      string  true  "Identificador (inventory_data_YYYY-MM-DD)"
// @Success      200  {object}  dto.SnapshotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/snapshots/{id} [get]
func (h *SnapshotHandler) GetByID(c *fiber.Ctx) error {
	res, err := h.query.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Categories godoc
// @Summary      Resumen por categoría de un snapshot
// @Tags         snapshots
// @Produce      json
// @Param        id    path   string  true   "Identificador"
// @Param        sort  query  string  false  "category | sku_count | quantity | value | unrealised | margin"
// @Success      200  {object}  dto.CategoryOverviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/snapshots/{id}/categories [get]
func (h *SnapshotHandler) Categories(c *fiber.Ctx) error {
	res, err := h.query.CategoryOverview(c.UserContext(), c.Params("id"), c.Query("sort"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

func fileName(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	return fh.Filename
}
