package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger records method, path, status and latency for every request.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)
		status := c.Response().StatusCode()
		if err != nil {
			log.Errorw("http request",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"latency", latency,
				"error", err,
			)
			return err
		}
		log.Infow("http request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", latency,
		)
		return nil
	}
}
