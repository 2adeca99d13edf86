package forecast

import (
	"gonum.org/v1/gonum/floats"
)

// MovingAverageForecaster implements a rolling simple moving average
type MovingAverageForecaster struct{}

// NewMovingAverageForecaster creates a new moving average forecaster
func NewMovingAverageForecaster() *MovingAverageForecaster {
	return &MovingAverageForecaster{}
}

// Method returns MethodMovingAverage
func (f *MovingAverageForecaster) Method() Method {
	return MethodMovingAverage
}

// Forecast averages the last w values, then keeps rolling the window over the
// forecasts produced so far. The output flattens once w forecasts have accumulated.
func (f *MovingAverageForecaster) Forecast(series Series, horizon int, config Config) (*EstimationResult, error) {
	if err := requireLength(MethodMovingAverage, series, 1); err != nil {
		return nil, err
	}

	n := series.Len()
	window := config.withDefaults().WindowSize
	if window > n {
		window = n
	}

	// Working buffer: series followed by forecasts
	extended := make([]float64, n, n+horizon)
	copy(extended, series)

	predictions := make([]float64, horizon)
	for h := 0; h < horizon; h++ {
		tail := extended[len(extended)-window:]
		next := floats.Sum(tail) / float64(window)
		predictions[h] = next
		extended = append(extended, next)
	}

	// In-sample one-step predictions for t = window+1..n
	var fitted []float64
	if n > window {
		fitted = make([]float64, 0, n-window)
		for t := window; t < n; t++ {
			fitted = append(fitted, floats.Sum(series[t-window:t])/float64(window))
		}
	}

	return &EstimationResult{
		Forecast: predictions,
		Parameters: Parameters{
			{Name: ParamWindow, Value: float64(window)},
			{Name: ParamRecentAverage, Value: predictions[0]},
		},
		Fitted: fitted,
	}, nil
}
