package subscriber

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/soltixdb/forecastd/internal/config"
	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/models"
	"github.com/soltixdb/forecastd/internal/queue"
	"github.com/soltixdb/forecastd/internal/services"
)

// Responder binds the forecast service to the operation subjects
type Responder struct {
	queue   queue.Responder
	service *services.ForecastService
	cfg     config.QueueConfig
	logger  *logging.Logger
}

// NewResponder creates a responder; call Start to begin serving
func NewResponder(q queue.Responder, service *services.ForecastService, cfg config.QueueConfig, logger *logging.Logger) *Responder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Responder{
		queue:   q,
		service: service,
		cfg:     cfg,
		logger:  logger.With("component", "subscriber"),
	}
}

// Start subscribes to both operation subjects
func (r *Responder) Start() error {
	forecastSubject := r.cfg.ForecastSubject()
	explainSubject := r.cfg.ExplainSubject()

	if err := r.queue.Respond(forecastSubject, r.cfg.QueueGroup, r.handleForecast); err != nil {
		return fmt.Errorf("failed to serve %s: %w", forecastSubject, err)
	}
	if err := r.queue.Respond(explainSubject, r.cfg.QueueGroup, r.handleExplain); err != nil {
		_ = r.queue.Unsubscribe(forecastSubject)
		return fmt.Errorf("failed to serve %s: %w", explainSubject, err)
	}

	r.logger.Info("Serving forecast operations",
		"forecast_subject", forecastSubject,
		"explain_subject", explainSubject,
		"queue_group", r.cfg.QueueGroup,
	)
	return nil
}

// Stop unsubscribes from both operation subjects
func (r *Responder) Stop() error {
	var firstErr error
	for _, subject := range []string{r.cfg.ForecastSubject(), r.cfg.ExplainSubject()} {
		if err := r.queue.Unsubscribe(subject); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Responder) handleForecast(ctx context.Context, subject string, data []byte) []byte {
	requestID := uuid.New().String()
	ctx = logging.WithRequestID(ctx, requestID)
	ctx = logging.WithTransport(ctx, services.TransportNATS)

	var req models.ForecastRequest
	if err := json.Unmarshal(data, &req); err != nil {
		r.logger.WithContext(ctx).Warn("Malformed forecast request", "subject", subject, "error", err)
		return encode(&Reply{
			RequestID: requestID,
			Text:      "Input error: request body is not valid JSON",
			Error: &models.ErrorDetail{
				Code:    services.CodeInvalidInput,
				Message: "Input error: request body is not valid JSON",
				Path:    subject,
			},
		})
	}

	resp, err := r.service.Forecast(ctx, &req, services.TransportNATS)
	if err != nil {
		svcErr := services.FromError(err)
		return encode(&Reply{
			RequestID: requestID,
			Text:      svcErr.Message,
			Error: &models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Path:    subject,
				Details: svcErr.Details,
			},
		})
	}

	report := services.RenderReport(resp)
	out := models.NewForecastResponse(resp, report)
	out.RequestID = requestID
	return encode(&Reply{
		RequestID: requestID,
		OK:        true,
		Text:      report,
		Forecast:  out,
	})
}

func (r *Responder) handleExplain(_ context.Context, _ string, _ []byte) []byte {
	methods := r.service.ExplainMethods()
	return encode(&Reply{
		RequestID: uuid.New().String(),
		OK:        true,
		Text:      methods.Guide,
		Methods:   methods,
	})
}

func encode(reply *Reply) []byte {
	data, err := json.Marshal(reply)
	if err != nil {
		// Non-finite metrics cannot be encoded as JSON.
		return []byte(`{"ok":false,"text":"Forecasting error: could not encode reply"}`)
	}
	return data
}
