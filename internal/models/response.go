package models

import (
	"github.com/soltixdb/forecastd/internal/analytics/forecast"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ForecastResponse is the JSON view of a completed forecast
type ForecastResponse struct {
	RequestID   string               `json:"request_id,omitempty"`
	Method      string               `json:"method"`
	MethodTitle string               `json:"method_title"`
	Series      []float64            `json:"series"`
	Periods     int                  `json:"periods"`
	Forecast    []float64            `json:"forecast"`
	Equation    string               `json:"equation"`
	Explanation string               `json:"explanation"`
	Parameters  []forecast.Parameter `json:"parameters"`
	FitQuality  *float64             `json:"fit_quality,omitempty"`
	Metrics     *forecast.Metrics    `json:"metrics,omitempty"`
	Report      string               `json:"report"`
}

// MethodInfo describes one forecasting method
type MethodInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	BestFor     string `json:"best_for"`
	HowItWorks  string `json:"how_it_works"`
	UseWhen     string `json:"use_when"`
	Example     string `json:"example"`
	NeedsPoints int    `json:"min_points"`
}

// MethodsResponse is the JSON view of explain_methods
type MethodsResponse struct {
	Methods []MethodInfo `json:"methods"`
	Aliases []string     `json:"aliases"`
	Guide   string       `json:"guide"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewForecastResponse converts an engine response into its JSON view
func NewForecastResponse(resp *forecast.ForecastResponse, report string) *ForecastResponse {
	return &ForecastResponse{
		Method:      resp.Method.String(),
		MethodTitle: resp.Method.Title(),
		Series:      resp.Series,
		Periods:     resp.Horizon,
		Forecast:    resp.Forecast,
		Equation:    resp.Equation,
		Explanation: resp.Explanation,
		Parameters:  resp.Parameters,
		FitQuality:  resp.FitQuality,
		Metrics:     resp.Metrics,
		Report:      report,
	}
}
