package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/models"
	"github.com/soltixdb/forecastd/internal/services"
)

// ForecastBody is the POST /v1/forecast payload. data and periods may be sent either
// as JSON values or as the free-form strings the tool interface accepts.
type ForecastBody struct {
	Data    json.RawMessage `json:"data"`
	Periods json.RawMessage `json:"periods"`
	Method  string          `json:"method"`
}

// toRequest flattens the body into the text form the service parses
func (b *ForecastBody) toRequest() *models.ForecastRequest {
	return &models.ForecastRequest{
		Data:    rawText(b.Data),
		Periods: rawText(b.Periods),
		Method:  b.Method,
	}
}

func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}

// ForecastPost handles POST forecast requests
// POST /v1/forecast
func (h *Handler) ForecastPost(c *fiber.Ctx) error {
	var body ForecastBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    services.CodeInvalidInput,
				Message: "Invalid request body",
				Path:    c.Path(),
			},
		})
	}

	return h.forecast(c, body.toRequest())
}

// Forecast handles GET forecast requests
// GET /v1/forecast?data=...&periods=...&method=...
func (h *Handler) Forecast(c *fiber.Ctx) error {
	return h.forecast(c, &models.ForecastRequest{
		Data:    c.Query("data"),
		Periods: c.Query("periods"),
		Method:  c.Query("method"),
	})
}

func (h *Handler) forecast(c *fiber.Ctx, req *models.ForecastRequest) error {
	ctx := c.UserContext()

	resp, err := h.forecastService.Forecast(ctx, req, services.TransportHTTP)
	if err != nil {
		return err
	}

	out := models.NewForecastResponse(resp, services.RenderReport(resp))
	out.RequestID = logging.RequestID(ctx)
	return c.JSON(out)
}

// Methods handles explain_methods requests
// GET /v1/methods
func (h *Handler) Methods(c *fiber.Ctx) error {
	return c.JSON(h.forecastService.ExplainMethods())
}
