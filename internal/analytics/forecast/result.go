package forecast

// Assemble packages an estimation into the response returned to callers. Every slice
// in the response is a fresh copy.
func Assemble(req *Request, result *EstimationResult, d Diagnostics) *ForecastResponse {
	resp := &ForecastResponse{
		Method:      req.method,
		Series:      req.series.Values(),
		Horizon:     req.horizon,
		Forecast:    append([]float64(nil), result.Forecast...),
		Explanation: Explain(req.method, result.Parameters, d),
		Equation:    Equation(req.method, result.Parameters),
		Parameters:  append(Parameters(nil), result.Parameters...),
		FitQuality:  d.FitQuality,
		Metrics:     d.Metrics,
	}
	return resp
}
