package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/soltixdb/forecastd/internal/config"
	"github.com/soltixdb/forecastd/internal/handlers"
	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/metrics"
	"github.com/soltixdb/forecastd/internal/middleware"
	"github.com/soltixdb/forecastd/internal/services"
	"github.com/soltixdb/forecastd/internal/utils"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, svc *services.ForecastService, m *metrics.Metrics, cfg config.Config) *handlers.Handler {
	h := handlers.New(logger, svc, m, cfg.MCP.Version)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger, logging.DefaultMiddlewareConfig()))

	// Unauthenticated health endpoints
	app.Get("/health", h.Health)
	app.Get("/metrics", h.Metrics())

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", middleware.APIKeyAuth(logger, cfg.Auth))
	v1.Post("/forecast", h.ForecastPost)
	v1.Get("/forecast", h.Forecast)
	v1.Get("/methods", h.Methods)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, svc *services.ForecastService, m *metrics.Metrics, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "forecastd",
		DisableStartupMessage: true,
		ReadTimeout:           utils.HTTPReadTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, svc, m, cfg)

	return app
}
