package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// BoxBatchHandler maneja los conteos de cajas.
type BoxBatchHandler struct {
	uc *usecase.BoxBatchUseCase
}

// NewBoxBatchHandler construye el handler.
func NewBoxBatchHandler(uc *usecase.BoxBatchUseCase) *BoxBatchHandler {
	return &BoxBatchHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar conteo de cajas
// @Tags         box-batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBoxBatchRequest  true  "Tipo y cantidad"
// @Success      201   {object}  dto.BoxBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/box-batches [post]
func (h *BoxBatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBoxBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return dto.ErrInvalidBody
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar conteos de cajas
// @Tags         box-batches
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día YYYY-MM-DD (por defecto hoy)"
// @Param        from  query  string  false  "Inicio del rango (inclusivo)"
// @Param        to    query  string  false  "Fin del rango (inclusivo)"
// @Param        type  query  string  false  "Tipo de caja"
// @Success      200   {object}  dto.BoxBatchListResponse
// @Router       /api/box-batches [get]
func (h *BoxBatchHandler) List(c *fiber.Ctx) error {
	var q dto.DateQuery
	if err := c.QueryParser(&q); err != nil {
		return dto.ErrInvalidBody
	}
	out, err := h.uc.List(c.UserContext(), q, c.Query("type"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir conteo de cajas
// @Tags         box-batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del conteo"
// @Param        body  body  dto.UpdateBoxBatchRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.BoxBatchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/box-batches/{id} [patch]
func (h *BoxBatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBoxBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return dto.ErrInvalidBody
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar conteo de cajas
// @Tags         box-batches
// @Security     Bearer
// @Param        id  path  string  true  "ID del conteo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/box-batches/{id} [delete]
func (h *BoxBatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
