package forecast

// ExponentialSmoothingForecaster implements simple exponential smoothing with a
// geometrically damped trend
type ExponentialSmoothingForecaster struct{}

// NewExponentialSmoothingForecaster creates a new exponential smoothing forecaster
func NewExponentialSmoothingForecaster() *ExponentialSmoothingForecaster {
	return &ExponentialSmoothingForecaster{}
}

// Method returns MethodExponentialSmoothing
func (f *ExponentialSmoothingForecaster) Method() Method {
	return MethodExponentialSmoothing
}

// Forecast smooths the level with S_t = alpha*x_t + (1-alpha)*S_{t-1} and projects
// S_n + trend * (decay + decay^2 + ... + decay^h) for step h.
func (f *ExponentialSmoothingForecaster) Forecast(series Series, horizon int, config Config) (*EstimationResult, error) {
	if err := requireLength(MethodExponentialSmoothing, series, 2); err != nil {
		return nil, err
	}

	config = config.withDefaults()
	alpha := config.Alpha
	decay := config.Decay

	n := series.Len()
	level := series[0]

	// One-step-ahead fitted values: the level before observing x_t predicts x_t
	fitted := make([]float64, 0, n-1)
	for t := 1; t < n; t++ {
		fitted = append(fitted, level)
		level = alpha*series[t] + (1-alpha)*level
	}

	trend := (series.Last() - series.First()) / float64(n-1)

	predictions := make([]float64, horizon)
	damping := 0.0
	power := 1.0
	for h := 0; h < horizon; h++ {
		power *= decay
		damping += power
		predictions[h] = level + trend*damping
	}

	return &EstimationResult{
		Forecast: predictions,
		Parameters: Parameters{
			{Name: ParamAlpha, Value: alpha},
			{Name: ParamTrend, Value: trend},
			{Name: ParamDecay, Value: decay},
			{Name: ParamLevel, Value: level},
		},
		Fitted: fitted,
	}, nil
}
