// Package metrics exposes Prometheus instrumentation for forecast operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds all Prometheus collectors for the service
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	Errors          *prometheus.CounterVec
	Duration        *prometheus.HistogramVec
	SeriesLength    prometheus.Histogram
	DivergentModels prometheus.Counter
}

// New creates a registry and registers all collectors on it
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecastd_requests_total",
				Help: "Number of forecast operations by method, transport and outcome",
			},
			[]string{"method", "transport", "outcome"},
		),
		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecastd_errors_total",
				Help: "Number of failed forecast operations by error code",
			},
			[]string{"code"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "forecastd_forecast_duration_seconds",
				Help:    "Time spent computing a forecast",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"method"},
		),
		SeriesLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "forecastd_series_length",
			Help:    "Number of observations per forecast request",
			Buckets: []float64{3, 10, 30, 100, 300, 1000, 3000, 10000},
		}),
		DivergentModels: factory.NewCounter(prometheus.CounterOpts{
			Name: "forecastd_divergent_models_total",
			Help: "Number of AR(1) fits with |phi| > 1",
		}),
	}
}

// Registry returns the registry the collectors are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveForecast records a completed forecast operation
func (m *Metrics) ObserveForecast(method, transport string, seriesLen int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, transport, OutcomeOK).Inc()
	m.Duration.WithLabelValues(method).Observe(elapsed.Seconds())
	m.SeriesLength.Observe(float64(seriesLen))
}

// ObserveError records a failed forecast operation
func (m *Metrics) ObserveError(method, transport, code string) {
	if m == nil {
		return
	}
	if method == "" {
		method = "unknown"
	}
	m.Requests.WithLabelValues(method, transport, OutcomeError).Inc()
	m.Errors.WithLabelValues(code).Inc()
}

// ObserveDivergent records an explosive AR(1) fit
func (m *Metrics) ObserveDivergent() {
	if m == nil {
		return
	}
	m.DivergentModels.Inc()
}
