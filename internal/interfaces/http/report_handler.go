package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/report"
)

// ReportHandler exportaciones en hoja de cálculo.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar a xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        name  path   string  true   "movements, pallets, warehouse-scans o box-batches"
// @Param        date  query  string  false  "Día YYYY-MM-DD (por defecto hoy)"
// @Param        from  query  string  false  "Inicio del rango (inclusivo)"
// @Param        to    query  string  false  "Fin del rango (inclusivo)"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reports/{name} [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var q dto.DateQuery
	if err := c.QueryParser(&q); err != nil {
		return dto.ErrInvalidBody
	}
	name := strings.TrimSuffix(c.Params("name"), ".xlsx")
	file, err := h.uc.Export(c.UserContext(), name, q)
	if err != nil {
		return err
	}
	return sendFile(c, file)
}
