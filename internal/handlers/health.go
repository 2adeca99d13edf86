package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soltixdb/forecastd/internal/models"
)

// Health handles health check requests
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   h.version,
	})
}

// Metrics serves the Prometheus registry
func (h *Handler) Metrics() fiber.Handler {
	if h.metrics == nil {
		return func(c *fiber.Ctx) error {
			return fiber.ErrNotFound
		}
	}
	return adaptor.HTTPHandler(promhttp.HandlerFor(h.metrics.Registry(), promhttp.HandlerOpts{}))
}

// NotFound handles 404 errors
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Route not found",
			Path:    c.Path(),
		},
	})
}
