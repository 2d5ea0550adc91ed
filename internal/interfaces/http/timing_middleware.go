package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/finzeta/identity-api/pkg/logger"
)

// TimingMiddleware mide la duración de cada petición, la expone en la
// cabecera X-Elapsed-Ms y emite un log de acceso estructurado.
func TimingMiddleware(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		c.Set("X-Elapsed-Ms", strconv.FormatInt(elapsed.Milliseconds(), 10))

		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", elapsed).
			Msg("request")

		return err
	}
}
