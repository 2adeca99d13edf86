package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Lag variance at or below this fraction of the squared lag mean is treated as zero
const zeroVarianceTolerance = 1e-20

// AutoregressiveForecaster implements the simple_arima method as an AR(1) model
// x_t = c + phi*x_{t-1}
type AutoregressiveForecaster struct{}

// NewAutoregressiveForecaster creates a new AR(1) forecaster
func NewAutoregressiveForecaster() *AutoregressiveForecaster {
	return &AutoregressiveForecaster{}
}

// Method returns MethodSimpleARIMA
func (f *AutoregressiveForecaster) Method() Method {
	return MethodSimpleARIMA
}

// Forecast fits c and phi by least squares over the n-1 consecutive pairs and applies
// the recursion from the last observation. A lag with zero variance has no defined
// slope and yields a NumericalError. |phi| > 1 is returned unchanged.
func (f *AutoregressiveForecaster) Forecast(series Series, horizon int, _ Config) (*EstimationResult, error) {
	if err := requireLength(MethodSimpleARIMA, series, 3); err != nil {
		return nil, err
	}

	n := series.Len()
	lag := series[:n-1]
	current := series[1:]

	lagMean, lagVariance := stat.MeanVariance(lag, nil)
	if lagVariance == 0 || lagVariance <= zeroVarianceTolerance*lagMean*lagMean {
		return nil, &NumericalError{
			Method: MethodSimpleARIMA,
			Reason: "lagged values have zero variance, the AR coefficient is undefined",
		}
	}

	constant, phi := stat.LinearRegression(lag, current, nil, false)
	if !isFinite(phi) || !isFinite(constant) {
		return nil, &NumericalError{Method: MethodSimpleARIMA, Reason: "AR coefficients are not finite"}
	}

	fitted := make([]float64, n-1)
	for i, prev := range lag {
		fitted[i] = constant + phi*prev
	}

	predictions := make([]float64, horizon)
	last := series.Last()
	for h := 0; h < horizon; h++ {
		last = constant + phi*last
		predictions[h] = last
	}

	meanDiff, stdDiff := differenceStats(series)

	return &EstimationResult{
		Forecast: predictions,
		Parameters: Parameters{
			{Name: ParamPhi, Value: phi},
			{Name: ParamConstant, Value: constant},
			{Name: ParamMeanDifference, Value: meanDiff},
			{Name: ParamStdDifference, Value: stdDiff},
		},
		Fitted: fitted,
	}, nil
}

// differenceStats returns the mean and population standard deviation of the first differences
func differenceStats(series Series) (mean, std float64) {
	diffs := series.Diff()
	if len(diffs) == 0 {
		return 0, 0
	}
	if len(diffs) == 1 {
		return diffs[0], 0
	}
	mean, variance := stat.MeanVariance(diffs, nil)
	m := float64(len(diffs))
	return mean, math.Sqrt(variance * (m - 1) / m)
}

// Divergent reports whether the AR coefficient makes the recursion explosive
func Divergent(phi float64) bool {
	return math.Abs(phi) > 1
}
