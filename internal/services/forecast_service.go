package services

import (
	"context"
	"time"

	"github.com/soltixdb/forecastd/internal/analytics/forecast"
	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/metrics"
	"github.com/soltixdb/forecastd/internal/models"
)

// Transport names used for logging and metrics labels
const (
	TransportMCP  = "mcp"
	TransportHTTP = "http"
	TransportNATS = "nats"
	TransportGRPC = "grpc"
	TransportCLI  = "cli"
)

// ForecastService handles forecasting business logic
type ForecastService struct {
	logger  *logging.Logger
	config  forecast.Config
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewForecastService creates a new ForecastService. A zero timeout disables the
// deadline; a nil metrics disables instrumentation.
func NewForecastService(
	logger *logging.Logger,
	config forecast.Config,
	timeout time.Duration,
	m *metrics.Metrics,
) *ForecastService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ForecastService{
		logger:  logger,
		config:  config,
		timeout: timeout,
		metrics: m,
	}
}

// Config returns the engine configuration applied to every request
func (s *ForecastService) Config() forecast.Config {
	return s.config
}

type engineResult struct {
	resp *forecast.ForecastResponse
	err  error
}

// Forecast parses, validates and evaluates a forecast_data request
func (s *ForecastService) Forecast(ctx context.Context, req *models.ForecastRequest, transport string) (*forecast.ForecastResponse, error) {
	startExec := time.Now()

	if req == nil {
		req = &models.ForecastRequest{}
	}
	method := models.NormalizeMethod(req.Method)

	validated, err := s.parse(req, method)
	if err != nil {
		return nil, s.fail(ctx, method, transport, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	done := make(chan engineResult, 1)
	go func() {
		resp, err := forecast.Evaluate(validated, s.config)
		done <- engineResult{resp: resp, err: err}
	}()

	var result engineResult
	select {
	case result = <-done:
	case <-ctx.Done():
		return nil, s.fail(ctx, method, transport, ctx.Err())
	}
	if result.err != nil {
		return nil, s.fail(ctx, method, transport, result.err)
	}

	elapsed := time.Since(startExec)
	s.metrics.ObserveForecast(method, transport, validated.Len(), elapsed)

	fields := []interface{}{
		"method", method,
		"transport", transport,
		"points", validated.Len(),
		"periods", validated.Horizon(),
		"duration", elapsed.String(),
	}
	if phi, ok := result.resp.Parameters.Get(forecast.ParamPhi); ok && forecast.Divergent(phi) {
		s.metrics.ObserveDivergent()
		s.logger.WithContext(ctx).Warn("AR(1) fit is explosive", append(fields, "phi", phi)...)
	} else {
		s.logger.WithContext(ctx).Info("Forecast completed", fields...)
	}

	return result.resp, nil
}

// ForecastText runs Forecast and renders either the report or the user-facing error message
func (s *ForecastService) ForecastText(ctx context.Context, req *models.ForecastRequest, transport string) (string, error) {
	resp, err := s.Forecast(ctx, req, transport)
	if err != nil {
		return UserMessage(err), err
	}
	return RenderReport(resp), nil
}

// ExplainMethods returns the methods guide
func (s *ForecastService) ExplainMethods() *models.MethodsResponse {
	return &models.MethodsResponse{
		Methods: MethodInfos(),
		Aliases: models.MethodAliases(),
		Guide:   RenderMethodsGuide(),
	}
}

func (s *ForecastService) parse(req *models.ForecastRequest, method string) (*forecast.Request, error) {
	values, err := models.ParseSeries(req.Data)
	if err != nil {
		return nil, err
	}
	periods, err := models.ParseHorizon(req.Periods)
	if err != nil {
		return nil, err
	}
	return forecast.Validate(values, periods, method)
}

func (s *ForecastService) fail(ctx context.Context, method, transport string, err error) error {
	svcErr := FromError(err)
	if _, perr := forecast.ParseMethod(method); perr != nil {
		method = ""
	}
	s.metrics.ObserveError(method, transport, svcErr.Code)
	s.logger.WithContext(ctx).Warn("Forecast failed",
		"method", method,
		"transport", transport,
		"code", svcErr.Code,
		"error", err,
	)
	return svcErr
}
