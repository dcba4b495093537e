package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-intake/internal/api/http/handlers"
	"github.com/spec-kit/ticket-intake/internal/config"
	"github.com/spec-kit/ticket-intake/internal/observability"
	"github.com/spec-kit/ticket-intake/internal/repository"
	"github.com/spec-kit/ticket-intake/internal/service"
)

// ServerDependencies bundles what the HTTP server needs.
type ServerDependencies struct {
	App          config.AppConfig
	StoreBackend string
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Tickets      *service.TicketService
	Store        repository.TicketRepository
}

// NewServer builds the fiber app with middlewares and routes registered.
func NewServer(deps ServerDependencies) *fiber.App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := deps.App.CORSAllowOrigins
	if origins == "" {
		origins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               deps.App.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, MiddlewareConfig{
		Logger:         logger,
		Metrics:        deps.Metrics,
		RequestTimeout: deps.App.RequestTimeout(),
		AllowOrigins:   origins,
	})
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler(deps.App.Name, deps.App.Version, deps.StoreBackend, deps.Store),
		Tickets: handlers.NewTicketsHandler(deps.Tickets),
		Metrics: handlers.NewMetricsHandler(deps.Metrics),
	})
	return app
}
