package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
)

const localScope = "store_scope"

// StoreScope resuelve :slug y autoriza al actor del token sobre esa tienda.
// Debe usarse DESPUÉS de AuthMiddleware. Deja el tenancy.Scope en c.Locals.
//   - 404 NOT_FOUND   → tienda inexistente o inactiva.
//   - 403 FORBIDDEN   → store_admin de otra tienda.
func StoreScope(dir *tenancy.Directory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, err := dir.Access(c.UserContext(), GetActor(c), c.Params("slug"))
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(localScope, scope)
		return c.Next()
	}
}

// AdminScope autoriza a un super_admin sobre la tienda :storeId, activa o no.
func AdminScope(dir *tenancy.Directory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, err := dir.AdminAccess(c.UserContext(), GetActor(c), c.Params("storeId"))
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(localScope, scope)
		return c.Next()
	}
}

// GetScope devuelve el Scope cargado por StoreScope/AdminScope.
func GetScope(c *fiber.Ctx) (tenancy.Scope, bool) {
	s, ok := c.Locals(localScope).(tenancy.Scope)
	return s, ok
}

func noScope(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "tienda no resuelta",
	})
}
