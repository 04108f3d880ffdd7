package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CellStock-api/internal/application/analytics"
	"github.com/jhoicas/CellStock-api/internal/application/usecase"
)

// StoreHandler rutas por tienda que no pertenecen a un recurso: verificación y dashboard.
type StoreHandler struct {
	stores    *usecase.StoreUseCase
	dashboard *analytics.DashboardUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(stores *usecase.StoreUseCase, dashboard *analytics.DashboardUseCase) *StoreHandler {
	return &StoreHandler{stores: stores, dashboard: dashboard}
}

// Verify godoc
// @Summary      Verificar que una tienda existe (público)
// @Tags         stores
// @Produce      json
// @Param        slug  path  string  true  "slug de la tienda"
// @Success      200   {object}  dto.VerifyStoreResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stores/{slug}/verify [get]
func (h *StoreHandler) Verify(c *fiber.Ctx) error {
	out, err := h.stores.Verify(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Dashboard de la tienda
// @Description  Totales, stock por modelo y top 10 modelos vendidos (month=YYYY-MM o YYYY filtra el ranking).
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        slug   path   string  true   "slug de la tienda"
// @Param        month  query  string  false  "YYYY-MM o YYYY"
// @Success      200   {object}  dto.DashboardStats
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stores/{slug}/dashboard [get]
func (h *StoreHandler) Dashboard(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	out, err := h.dashboard.Dashboard(c.UserContext(), scope, c.Query("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
