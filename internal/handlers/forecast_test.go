package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/middleware"
	"github.com/soltixdb/forecastd/internal/models"
	"github.com/soltixdb/forecastd/internal/services"
)

func newForecastApp(t *testing.T) *fiber.App {
	t.Helper()
	handler := newTestHandler(nil)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logging.NewNop())})
	app.Use(logging.FiberMiddleware(logging.NewNop(), logging.DefaultMiddlewareConfig()))
	app.Post("/v1/forecast", handler.ForecastPost)
	app.Get("/v1/forecast", handler.Forecast)
	app.Get("/v1/methods", handler.Methods)
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/v1/forecast", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestForecastPost_StringFields(t *testing.T) {
	app := newForecastApp(t)

	resp := postJSON(t, app, `{"data": "[100, 200, 300]", "periods": "5", "method": "linear"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(logging.RequestIDHeader))

	out := decode[models.ForecastResponse](t, resp)
	assert.Equal(t, "linear", out.Method)
	assert.Equal(t, "Linear Regression", out.MethodTitle)
	assert.Equal(t, 5, out.Periods)
	require.Len(t, out.Forecast, 5)
	assert.InDelta(t, 800.0, out.Forecast[4], 1e-9)
	require.NotNil(t, out.FitQuality)
	assert.InDelta(t, 1.0, *out.FitQuality, 1e-12)
	assert.NotEmpty(t, out.RequestID)
	assert.Contains(t, out.Report, "**Forecasted Values:** 400.00")
}

func TestForecastPost_JSONValues(t *testing.T) {
	app := newForecastApp(t)

	resp := postJSON(t, app, `{"data": [1, 4, 9], "periods": 2, "method": "poly"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[models.ForecastResponse](t, resp)
	assert.Equal(t, "polynomial", out.Method)
	require.Len(t, out.Forecast, 2)
	assert.InDelta(t, 16.0, out.Forecast[0], 1e-6)
	assert.InDelta(t, 25.0, out.Forecast[1], 1e-6)
}

func TestForecastPost_Errors(t *testing.T) {
	app := newForecastApp(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"short series", `{"data": [1, 2], "periods": 1, "method": "linear"}`, fiber.StatusBadRequest, services.CodeInvalidInput},
		{"horizon too large", `{"data": [1, 2, 3], "periods": 101, "method": "linear"}`, fiber.StatusBadRequest, services.CodeInvalidInput},
		{"unknown method", `{"data": [1, 2, 3], "periods": 1, "method": "prophet"}`, fiber.StatusBadRequest, services.CodeInvalidInput},
		{"constant AR", `{"data": [7, 7, 7, 7], "periods": 1, "method": "simple_arima"}`, fiber.StatusUnprocessableEntity, services.CodeNumericalError},
		{"malformed body", `{"data": [1, 2, 3`, fiber.StatusBadRequest, services.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			out := decode[models.ErrorResponse](t, resp)
			assert.Equal(t, tt.wantCode, out.Error.Code)
			assert.NotEmpty(t, out.Error.Message)
		})
	}
}

func TestForecastPost_NullInData(t *testing.T) {
	app := newForecastApp(t)

	resp := postJSON(t, app, `{"data": [1, null, 3], "periods": "2", "method": "linear"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	out := decode[models.ErrorResponse](t, resp)
	assert.Equal(t, services.CodeInvalidInput, out.Error.Code)
	assert.Equal(t, "Input error: value at position 2 is not a number", out.Error.Message)
}

func TestForecastGet(t *testing.T) {
	app := newForecastApp(t)

	q := url.Values{}
	q.Set("data", "5 5 5 5 5")
	q.Set("periods", "3")
	q.Set("method", "moving average")

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/forecast?"+q.Encode(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[models.ForecastResponse](t, resp)
	assert.Equal(t, "moving_average", out.Method)
	assert.Equal(t, []float64{5, 5, 5}, out.Forecast)
}

func TestMethods(t *testing.T) {
	app := newForecastApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/methods", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[models.MethodsResponse](t, resp)
	require.Len(t, out.Methods, 5)
	assert.Equal(t, "linear", out.Methods[0].Name)
	assert.Contains(t, out.Guide, "Forecasting Methods Guide")
}

func TestRawText(t *testing.T) {
	assert.Equal(t, "1 2 3", rawText(json.RawMessage(`"1 2 3"`)))
	assert.Equal(t, "[1,2,3]", rawText(json.RawMessage(`[1,2,3]`)))
	assert.Equal(t, "5", rawText(json.RawMessage(`5`)))
	assert.Equal(t, "", rawText(json.RawMessage(`null`)))
	assert.Equal(t, "", rawText(nil))
}
