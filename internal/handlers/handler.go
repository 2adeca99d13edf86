package handlers

import (
	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/metrics"
	"github.com/soltixdb/forecastd/internal/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger          *logging.Logger
	forecastService *services.ForecastService
	metrics         *metrics.Metrics
	version         string
}

// New creates a new handler instance
func New(logger *logging.Logger, forecastService *services.ForecastService, m *metrics.Metrics, version string) *Handler {
	return &Handler{
		logger:          logger,
		forecastService: forecastService,
		metrics:         m,
		version:         version,
	}
}
