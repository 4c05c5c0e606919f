package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

const headerCorrelationID = "X-Correlation-ID"

// WithCorrelationID stamps every request with a correlation id, generating
// one when the caller didn't supply it, the way the teacher's
// common/net/http.WithCorrelationID does for its ledger API.
func WithCorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cid := c.Get(headerCorrelationID)
		if cid == "" {
			cid = uuid.NewString()
		}

		c.Set(headerCorrelationID, cid)
		c.Request().Header.Set(headerCorrelationID, cid)

		return c.Next()
	}
}

// WithHTTPLogging logs one access line per request at Info level, skipping
// the health check the way the teacher's withLogging.go does.
func WithHTTPLogging(logger mlog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/health" {
			return c.Next()
		}

		start := time.Now()
		cid := c.Get(headerCorrelationID)
		scoped := logger.WithFields("correlation_id", cid)

		err := c.Next()

		scoped.Infof("%s %s -> %d (%s)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))

		return err
	}
}
