package http

import (
	"mime"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/report"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// PalletHandler maneja el registro de tarimas.
type PalletHandler struct {
	uc      *usecase.PalletUseCase
	reports *report.UseCase
}

// NewPalletHandler construye el handler.
func NewPalletHandler(uc *usecase.PalletUseCase, reports *report.UseCase) *PalletHandler {
	return &PalletHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Registrar tarima
// @Description  Notifica pallet.created a los clientes conectados.
// @Tags         pallets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePalletRequest  true  "Datos de la tarima"
// @Success      201   {object}  dto.PalletResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pallets [post]
func (h *PalletHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePalletRequest
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
// @Summary      Listar tarimas
// @Tags         pallets
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día YYYY-MM-DD (por defecto hoy)"
// @Param        from  query  string  false  "Inicio del rango (inclusivo)"
// @Param        to    query  string  false  "Fin del rango (inclusivo)"
// @Param        type  query  string  false  "Tipo de tarima"
// @Success      200   {object}  dto.PalletListResponse
// @Router       /api/pallets [get]
func (h *PalletHandler) List(c *fiber.Ctx) error {
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

// Delete godoc
// @Summary      Eliminar tarima
// @Tags         pallets
// @Security     Bearer
// @Param        id  path  string  true  "ID de la tarima"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pallets/{id} [delete]
func (h *PalletHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteByDay godoc
// @Summary      Eliminar todas las tarimas de un día
// @Tags         pallets
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  true  "Día YYYY-MM-DD"
// @Success      200   {object}  dto.DeletedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pallets [delete]
func (h *PalletHandler) DeleteByDay(c *fiber.Ctx) error {
	out, err := h.uc.DeleteByDay(c.UserContext(), c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Label godoc
// @Summary      Etiqueta PDF con el QR de la tarima
// @Tags         pallets
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la tarima"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pallets/{id}/label [get]
func (h *PalletHandler) Label(c *fiber.Ctx) error {
	file, err := h.reports.PalletLabel(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return sendFile(c, file)
}

func sendFile(c *fiber.Ctx, f *report.File) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	// el nombre incluye el código de la tarima, que viene del cliente
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	return c.Send(f.Data)
}
