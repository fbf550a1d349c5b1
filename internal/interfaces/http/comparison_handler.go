package http

import (
	"mime"

	"github.com/gofiber/fiber/v2"

	"github.com/daskasas/inventory-tracker/internal/application/comparison"
	"github.com/daskasas/inventory-tracker/internal/application/dto"
)

// ComparisonHandler diff, rankings y reporte entre dos snapshots.
type ComparisonHandler struct {
	uc *comparison.CompareUseCase
}

// NewComparisonHandler construye el handler.
func NewComparisonHandler(uc *comparison.CompareUseCase) *ComparisonHandler {
	return &ComparisonHandler{uc: uc}
}

// Compare godoc
// @Summary      Comparar dos snapshots
// @Tags         comparisons
// @Produce      json
// @Param        current   query  string  true  "Snapshot actual"
// @Param        previous  query  string  true  "Snapshot anterior"
// @Success      200  {object}  dto.ComparisonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comparisons [get]
func (h *ComparisonHandler) Compare(c *fiber.Ctx) error {
	var in dto.ComparisonRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	res, err := h.uc.Compare(c.UserContext(), in.Current, in.Previous)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Rankings godoc
// @Summary      Vista top-N de una comparación
// @Tags         comparisons
// @Produce      json
// @Param        current   query  string  true   "Snapshot actual"
// @Param        previous  query  string  true   "Snapshot anterior"
// @Param        view      query  string  true   "most_sold | gross_profit | least_sold_categories | top_increases | stagnated"
// @Param        n         query  int     false  "Cantidad de filas (se acota a [1, grupo])"
// @Success      200  {object}  dto.RankingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comparisons/rankings [get]
func (h *ComparisonHandler) Rankings(c *fiber.Ctx) error {
	var in dto.RankingRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "parámetros inválidos: n debe ser entero")
	}
	res, err := h.uc.Rankings(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Report godoc
// @Summary      Reporte PDF de una comparación
// @Tags         comparisons
// @Produce      application/pdf
// @Param        current   query  string  true   "Snapshot actual"
// @Param        previous  query  string  true   "Snapshot anterior"
// @Param        n         query  int     false  "Filas por sección"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comparisons/report.pdf [get]
func (h *ComparisonHandler) Report(c *fiber.Ctx) error {
	var in dto.RankingRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "parámetros inválidos: n debe ser entero")
	}
	pdf, err := h.uc.Report(c.UserContext(), in.Current, in.Previous, in.N)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachment(comparison.DiffID(in.Current)+".pdf"))
	return c.Send(pdf)
}

// attachment arma Content-Disposition con el nombre escapado: el nombre viene de la query.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
