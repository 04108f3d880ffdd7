package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CellStock-api/internal/application/analytics"
	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/usecase"
)

// AdminHandler rutas del operador de plataforma: tiendas, usuarios y panel global.
type AdminHandler struct {
	stores    *usecase.StoreUseCase
	users     *usecase.UserUseCase
	dashboard *analytics.DashboardUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(stores *usecase.StoreUseCase, users *usecase.UserUseCase, dashboard *analytics.DashboardUseCase) *AdminHandler {
	return &AdminHandler{stores: stores, users: users, dashboard: dashboard}
}

// CreateStore godoc
// @Summary      Crear tienda
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateStoreRequest  true  "name, slug opcional"
// @Success      201   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/stores [post]
func (h *AdminHandler) CreateStore(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.stores.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStores GET /api/admin/stores
func (h *AdminHandler) ListStores(c *fiber.Ctx) error {
	out, err := h.stores.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetStore GET /api/admin/stores/:id
func (h *AdminHandler) GetStore(c *fiber.Ctx) error {
	out, err := h.stores.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStore godoc
// @Summary      Actualizar tienda (nombre, activa, logo)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID de la tienda"
// @Param        body  body  dto.UpdateStoreRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/stores/{id} [put]
func (h *AdminHandler) UpdateStore(c *fiber.Ctx) error {
	var in dto.UpdateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.stores.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadLogo godoc
// @Summary      Subir logo de la tienda
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "ID de la tienda"
// @Param        file  formData  file    true  "imagen png, jpg, webp o svg"
// @Success      200   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/stores/{id}/logo [post]
func (h *AdminHandler) UploadLogo(c *fiber.Ctx) error {
	name, data, err := formFile(c, "file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo file requerido"})
	}
	out, err := h.stores.UploadLogo(c.UserContext(), c.Params("id"), name, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Crear cuenta de operador
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "email, password, name, role, store_id"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.users.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsers GET /api/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.users.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateUser PUT /api/admin/users/:id
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.users.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteUser DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Dashboard godoc
// @Summary      Panel de plataforma (todas las tiendas)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.PlatformDashboard
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.PlatformDashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// formFile lee por completo el archivo multipart del campo indicado.
func formFile(c *fiber.Ctx, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}
