package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/ticket-intake/pkg/util/errorutil"
)

// UnmatchedRoute is the metrics key for requests that matched no route.
const UnmatchedRoute = "unmatched"

// RouteKey returns the registered route pattern that served the request, such
// as /api/tickets/:id, or UnmatchedRoute. It must be called after c.Next so the
// final route is known. Raw paths are never used, keeping the key set bounded.
func RouteKey(c *fiber.Ctx) string {
	r := c.Route()
	if r == nil || len(r.Handlers) == 0 || r.Path == "" || r.Path == "/" {
		return UnmatchedRoute
	}
	return r.Path
}

// RequestLogger logs one line per request and feeds the request counters.
// It runs outside the error handler, so the response status is final unless
// an error slipped through, in which case it comes from the mapped DomainError.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			status = apperrors.ToDomainError(err).HTTPStatus
		}

		metrics.RecordRequest(RouteKey(c), c.Method(), status, duration)
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", duration),
			zap.String("ip", c.IP()),
		)
		return err
	}
}
