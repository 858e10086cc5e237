package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/movement"
)

// MovementHandler maneja el ciclo de vida de los movimientos de camión.
type MovementHandler struct {
	engine *movement.Engine
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *movement.Engine) *MovementHandler {
	return &MovementHandler{engine: engine}
}

// Open godoc
// @Summary      Registrar llegada de camión (fase 1)
// @Description  Los campos obligatorios dependen de kind: descarga, carga o carga-mixta.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenMovementRequest  true  "Datos de llegada"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return dto.ErrInvalidBody
	}
	out, err := h.engine.Open(c.UserContext(), GetActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Complete godoc
// @Summary      Registrar salida de camión (fase 2)
// @Description  Sin verificación de estado: volver a cerrar sobrescribe los datos de salida.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del movimiento"
// @Param        body  body  dto.CloseMovementRequest  true  "Datos de salida"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/complete [patch]
func (h *MovementHandler) Complete(c *fiber.Ctx) error {
	var in dto.CloseMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return dto.ErrInvalidBody
	}
	out, err := h.engine.Close(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.engine.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos por día o rango
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día YYYY-MM-DD (por defecto hoy)"
// @Param        from  query  string  false  "Inicio del rango (inclusivo)"
// @Param        to    query  string  false  "Fin del rango (inclusivo)"
// @Param        kind  query  string  false  "descarga, carga o carga-mixta"
// @Success      200   {object}  dto.MovementListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.DateQuery
	if err := c.QueryParser(&q); err != nil {
		return dto.ErrInvalidBody
	}
	out, err := h.engine.List(c.UserContext(), q, c.Query("kind"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
