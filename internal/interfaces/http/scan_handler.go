package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/scan"
)

// ScanHandler maneja los escaneos QR y las copias de almacén.
type ScanHandler struct {
	pipeline *scan.Pipeline
}

// NewScanHandler construye el handler.
func NewScanHandler(pipeline *scan.Pipeline) *ScanHandler {
	return &ScanHandler{pipeline: pipeline}
}

// Scan godoc
// @Summary      Enviar un escaneo
// @Description  Siempre deja registro del intento. Si el código no corresponde a una tarima de hoy se abre una incidencia.
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "Código escaneado"
// @Success      200   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return dto.ErrInvalidBody
	}
	out, err := h.pipeline.Scan(c.UserContext(), GetActor(c), in.Code)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Log godoc
// @Summary      Bitácora de escaneos e incidencias del día
// @Tags         scan
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día YYYY-MM-DD (por defecto hoy)"
// @Success      200   {object}  dto.ScanLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scan/log [get]
func (h *ScanHandler) Log(c *fiber.Ctx) error {
	out, err := h.pipeline.Log(c.UserContext(), c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SaveToWarehouse godoc
// @Summary      Guardar copia de almacén
// @Description  El cuerpo trae code, shift, responsible, date opcional y el resto de los campos de la tarima, que se copian en el orden recibido. Una sola copia por (code, date).
// @Tags         warehouse-scans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.WarehouseScanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/warehouse-scans [post]
func (h *ScanHandler) SaveToWarehouse(c *fiber.Ctx) error {
	in, err := dto.ParseSaveWarehouseScanRequest(c.Body())
	if err != nil {
		return err
	}
	out, err := h.pipeline.SaveToWarehouse(c.UserContext(), GetActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Check godoc
// @Summary      Verificar si ya existe copia de almacén
// @Description  Sólo informativo: el guardado puede fallar con 409 aunque aquí diga que no existe.
// @Tags         warehouse-scans
// @Security     Bearer
// @Produce      json
// @Param        code  query  string  true   "Código de la tarima"
// @Param        date  query  string  false  "Día YYYY-MM-DD (por defecto hoy)"
// @Success      200   {object}  dto.WarehouseScanCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouse-scans/check [get]
func (h *ScanHandler) Check(c *fiber.Ctx) error {
	out, err := h.pipeline.Check(c.UserContext(), c.Query("code"), c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar copias de almacén
// @Tags         warehouse-scans
// @Security     Bearer
// @Produce      json
// @Param        date   query  string  false  "Día YYYY-MM-DD (por defecto hoy)"
// @Param        from   query  string  false  "Inicio del rango (inclusivo)"
// @Param        to     query  string  false  "Fin del rango (inclusivo)"
// @Param        shift  query  string  false  "matutino o vespertino"
// @Success      200    {object}  dto.WarehouseScanListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/warehouse-scans [get]
func (h *ScanHandler) List(c *fiber.Ctx) error {
	var q dto.DateQuery
	if err := c.QueryParser(&q); err != nil {
		return dto.ErrInvalidBody
	}
	out, err := h.pipeline.List(c.UserContext(), q, c.Query("shift"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
