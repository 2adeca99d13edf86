package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soltixdb/forecastd/internal/analytics/forecast"
	"github.com/soltixdb/forecastd/internal/utils"
)

// RenderReport formats a forecast response as the text returned to tool callers.
// The output depends only on resp, so identical requests render identical text.
func RenderReport(resp *forecast.ForecastResponse) string {
	if resp == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("**Forecasting Results**\n\n")
	fmt.Fprintf(&b, "**Method:** %s\n", resp.Method.Title())
	fmt.Fprintf(&b, "**Input Data:** %s\n", utils.FormatFloats(resp.Series))
	fmt.Fprintf(&b, "**Forecast Periods:** %d\n\n", resp.Horizon)
	fmt.Fprintf(&b, "**Forecasted Values:** %s\n\n", joinFloats(resp.Forecast, formatForecast))
	fmt.Fprintf(&b, "**Mathematical Details:**\n%s\n\n", resp.Equation)
	fmt.Fprintf(&b, "**Explanation:** %s\n\n", resp.Explanation)
	b.WriteString("**Additional Metrics:**")

	if resp.FitQuality != nil {
		fmt.Fprintf(&b, "\n- R-squared: %.4f", *resp.FitQuality)
	}
	if window, ok := resp.Parameters.Get(forecast.ParamWindow); ok {
		fmt.Fprintf(&b, "\n- Window Size: %d", int(window))
	}
	if alpha, ok := resp.Parameters.Get(forecast.ParamAlpha); ok {
		fmt.Fprintf(&b, "\n- Smoothing Parameter (α): %s", strconv.FormatFloat(alpha, 'g', -1, 64))
	}
	if phi, ok := resp.Parameters.Get(forecast.ParamPhi); ok {
		fmt.Fprintf(&b, "\n- AR Coefficient: %.4f", phi)
	}
	if resp.Metrics != nil {
		fmt.Fprintf(&b, "\n- In-sample MAE: %.4f", resp.Metrics.MAE)
		fmt.Fprintf(&b, "\n- In-sample RMSE: %.4f", resp.Metrics.RMSE)
	}

	return b.String()
}

func formatForecast(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

func joinFloats(values []float64, format func(float64) string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = format(v)
	}
	return strings.Join(parts, ", ")
}
