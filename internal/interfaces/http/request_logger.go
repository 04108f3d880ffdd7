package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CellStock-api/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, status y latencia.
func RequestLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(err)
		} else if status >= fiber.StatusBadRequest {
			ev = l.Warn()
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if slug := c.Params("slug"); slug != "" {
			ev = ev.Str("store", slug)
		}
		if uid := GetUserID(c); uid != "" {
			ev = ev.Str("user_id", uid)
		}
		ev.Msg("http")
		return err
	}
}
