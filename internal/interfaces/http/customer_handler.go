package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes de una tienda.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path  string                     true  "slug de la tienda"
// @Param        body  body  dto.CreateCustomerRequest  true  "name, document (CPF), contact (WhatsApp)"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stores/{slug}/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), scope, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/stores/:slug/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	out, err := h.uc.List(c.UserContext(), scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/stores/:slug/customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	out, err := h.uc.Get(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/stores/:slug/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/stores/:slug/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	if err := h.uc.Delete(c.UserContext(), scope, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
