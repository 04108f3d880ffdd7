package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/sales"
)

// SaleHandler ventas de una tienda.
type SaleHandler struct {
	engine *sales.Engine
}

// NewSaleHandler construye el handler.
func NewSaleHandler(engine *sales.Engine) *SaleHandler {
	return &SaleHandler{engine: engine}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Marca las unidades como vendidas y guarda una foto de cada una. Todo o nada.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path  string                 true  "slug de la tienda"
// @Param        body  body  dto.CreateSaleRequest  true  "customer_id, unit_ids, payment_method, note"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stores/{slug}/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.engine.Create(c.UserContext(), scope, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/stores/:slug/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	out, err := h.engine.List(c.UserContext(), scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/stores/:slug/sales/:id
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	out, err := h.engine.Get(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/stores/:slug/sales/:id (solo forma de pago y observación)
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.engine.Update(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  Devuelve al stock las unidades que todavía existen.
// @Tags         sales
// @Security     BearerAuth
// @Param        slug  path  string  true  "slug de la tienda"
// @Param        id    path  string  true  "ID de la venta"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stores/{slug}/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	if err := h.engine.Delete(c.UserContext(), scope, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt godoc
// @Summary      Comprobante PDF de la venta
// @Tags         sales
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        slug  path  string  true  "slug de la tienda"
// @Param        id    path  string  true  "ID de la venta"
// @Success      200
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stores/{slug}/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	id := c.Params("id")
	pdf, err := h.engine.Receipt(c.UserContext(), scope, id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="venda-`+id+`.pdf"`)
	return c.Send(pdf)
}
