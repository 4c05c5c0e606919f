package httpx

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("api-gateway")

// StartSpan opens a span named name over c's request context, the same
// per-handler tracing boundary the teacher's ledger handlers open before
// calling into the use-case layer.
func StartSpan(c *fiber.Ctx, name string) (context.Context, trace.Span) {
	return tracer.Start(c.UserContext(), name)
}
