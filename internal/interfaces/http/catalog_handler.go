package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/usecase"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

// CatalogHandler modelos y unidades de una tienda.
type CatalogHandler struct {
	models *usecase.ModelUseCase
	units  *usecase.UnitUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(models *usecase.ModelUseCase, units *usecase.UnitUseCase) *CatalogHandler {
	return &CatalogHandler{models: models, units: units}
}

// ── Modelos ──────────────────────────────────────────────────────────────────

// CreateModel godoc
// @Summary      Crear modelo
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path  string                  true  "slug de la tienda"
// @Param        body  body  dto.CreateModelRequest  true  "name, brand"
// @Success      201   {object}  dto.ModelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stores/{slug}/models [post]
func (h *CatalogHandler) CreateModel(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	var in dto.CreateModelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.models.Create(c.UserContext(), scope, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListModels GET /api/stores/:slug/models
func (h *CatalogHandler) ListModels(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	out, err := h.models.List(c.UserContext(), scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetModel GET /api/stores/:slug/models/:id
func (h *CatalogHandler) GetModel(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	out, err := h.models.Get(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateModel PUT /api/stores/:slug/models/:id
func (h *CatalogHandler) UpdateModel(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	var in dto.UpdateModelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.models.Update(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteModel godoc
// @Summary      Eliminar modelo
// @Description  409 si el modelo todavía tiene unidades.
// @Tags         catalog
// @Security     BearerAuth
// @Param        slug  path  string  true  "slug de la tienda"
// @Param        id    path  string  true  "ID del modelo"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stores/{slug}/models/{id} [delete]
func (h *CatalogHandler) DeleteModel(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	if err := h.models.Delete(c.UserContext(), scope, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Unidades ─────────────────────────────────────────────────────────────────

// CreateUnit godoc
// @Summary      Crear unidad
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path  string                 true  "slug de la tienda"
// @Param        body  body  dto.CreateUnitRequest  true  "model_id, color, storage, battery, imei, price"
// @Success      201   {object}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stores/{slug}/units [post]
func (h *CatalogHandler) CreateUnit(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	var in dto.CreateUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.units.Create(c.UserContext(), scope, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUnits godoc
// @Summary      Listar unidades
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        slug      path   string  true   "slug de la tienda"
// @Param        model_id  query  string  false  "filtrar por modelo"
// @Param        sold      query  bool    false  "filtrar por vendidas / disponibles"
// @Success      200   {array}  dto.UnitResponse
// @Router       /api/stores/{slug}/units [get]
func (h *CatalogHandler) ListUnits(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	f := repository.UnitFilter{ModelID: c.Query("model_id")}
	if s := c.Query("sold"); s != "" {
		sold, err := strconv.ParseBool(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sold debe ser true o false"})
		}
		f.Sold = &sold
	}
	out, err := h.units.List(c.UserContext(), scope, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetUnit GET /api/stores/:slug/units/:id
func (h *CatalogHandler) GetUnit(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	out, err := h.units.Get(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateUnit PUT /api/stores/:slug/units/:id
func (h *CatalogHandler) UpdateUnit(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	var in dto.UpdateUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.units.Update(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteUnit DELETE /api/stores/:slug/units/:id
func (h *CatalogHandler) DeleteUnit(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	if err := h.units.Delete(c.UserContext(), scope, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
