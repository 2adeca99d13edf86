package forecast

import (
	"gonum.org/v1/gonum/stat"
)

// LinearForecaster implements ordinary least squares trend projection
type LinearForecaster struct{}

// NewLinearForecaster creates a new linear regression forecaster
func NewLinearForecaster() *LinearForecaster {
	return &LinearForecaster{}
}

// Method returns MethodLinear
func (f *LinearForecaster) Method() Method {
	return MethodLinear
}

// Forecast fits y = m*x + b over x = 1..n and extrapolates to x = n+1..n+horizon
func (f *LinearForecaster) Forecast(series Series, horizon int, _ Config) (*EstimationResult, error) {
	if err := requireLength(MethodLinear, series, 2); err != nil {
		return nil, err
	}

	x := series.Indices()
	intercept, slope := stat.LinearRegression(x, series, nil, false)
	if !isFinite(slope) || !isFinite(intercept) {
		return nil, &NumericalError{Method: MethodLinear, Reason: "regression coefficients are not finite"}
	}

	fitted := make([]float64, series.Len())
	for i, xi := range x {
		fitted[i] = slope*xi + intercept
	}

	n := series.Len()
	predictions := make([]float64, horizon)
	for h := 0; h < horizon; h++ {
		predictions[h] = slope*float64(n+h+1) + intercept
	}

	return &EstimationResult{
		Forecast: predictions,
		Parameters: Parameters{
			{Name: ParamSlope, Value: slope},
			{Name: ParamIntercept, Value: intercept},
		},
		FitQuality: FitQuality(series, fitted),
		Fitted:     fitted,
	}, nil
}
