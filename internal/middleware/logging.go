// Request logging middleware emitting one structured line per request.
package middleware

import (
	"time"

	"github.com/avissapr/facilitycheck/internal/security"
	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs method, path, response status, and latency for every
// request through the security logger's JSON output. Runs the handler chain
// first so the final status code is known.
func RequestLogger(logger *security.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not shaped the response yet; report the
			// status it will set.
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		logger.HTTPRequest(c.Method(), c.Path(), status, time.Since(start).Milliseconds(), c.IP(), c.Get("User-Agent"))
		return err
	}
}
