package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/soltixdb/forecastd/internal/analytics/forecast"
)

// ForecastRequest represents the forecast_data operation. All fields are free-form
// text as typed by the caller.
type ForecastRequest struct {
	Data    string `json:"data" jsonschema:"Series of numbers, e.g. '[100, 200, 300]', '100, 200, 300' or '100 200 300'"`
	Periods string `json:"periods" jsonschema:"Number of periods to forecast (1-100), e.g. '5'"`
	Method  string `json:"method" jsonschema:"Forecasting method: linear, moving_average, exponential_smoothing, polynomial, simple_arima"`
}

// ExplainMethodsRequest represents the explain_methods operation, which takes no arguments
type ExplainMethodsRequest struct{}

// methodAliases maps accepted spellings onto canonical method identifiers
var methodAliases = map[string]string{
	"linear":                "linear",
	"moving average":        "moving_average",
	"moving_average":        "moving_average",
	"exponential":           "exponential_smoothing",
	"exponential smoothing": "exponential_smoothing",
	"exponential_smoothing": "exponential_smoothing",
	"polynomial":            "polynomial",
	"poly":                  "polynomial",
	"arima":                 "simple_arima",
	"simple arima":          "simple_arima",
	"simple_arima":          "simple_arima",
	"ar":                    "simple_arima",
}

// ParseSeries converts bracketed JSON, comma-separated or whitespace-separated text
// into numbers. Bounds are not checked here.
func ParseSeries(text string) ([]float64, error) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		var raw []json.RawMessage
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, &forecast.ValidationError{Field: "data", Reason: fmt.Sprintf("could not parse data: %v", err)}
		}
		values := make([]float64, len(raw))
		for i, r := range raw {
			// Only JSON number tokens are accepted; null, strings and nested values are not.
			v, err := strconv.ParseFloat(string(r), 64)
			if err != nil {
				return nil, &forecast.ValidationError{Field: "data", Reason: fmt.Sprintf("value at position %d is not a number", i+1)}
			}
			values[i] = v
		}
		return values, nil
	}

	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &forecast.ValidationError{Field: "data", Reason: fmt.Sprintf("could not parse data: %q is not a number", f)}
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseHorizon converts the periods text into an integer. Range checks happen in the engine.
func ParseHorizon(text string) (int, error) {
	text = strings.TrimSpace(text)
	periods, err := strconv.Atoi(text)
	if err != nil {
		return 0, &forecast.ValidationError{Field: "horizon", Reason: fmt.Sprintf("periods must be an integer, got %q", text)}
	}
	return periods, nil
}

// NormalizeMethod maps an alias onto its canonical identifier. Unknown names are
// returned lower-cased so the engine can reject them.
func NormalizeMethod(text string) string {
	key := strings.ToLower(strings.TrimSpace(text))
	if canonical, ok := methodAliases[key]; ok {
		return canonical
	}
	return key
}

// MethodAliases returns the accepted method spellings in sorted order
func MethodAliases() []string {
	aliases := make([]string, 0, len(methodAliases))
	for alias := range methodAliases {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)
	return aliases
}
