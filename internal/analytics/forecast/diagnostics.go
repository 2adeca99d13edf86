package forecast

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Residual sums at or below this fraction of the total sum of squares count as zero
const residualTolerance = 1e-12

// Diagnostics holds fit-quality figures derived from an estimation
type Diagnostics struct {
	FitQuality *float64
	Metrics    *Metrics
}

// ComputeDiagnostics derives the fit quality and in-sample error metrics of result.
// Fitted values are aligned with the tail of series.
func ComputeDiagnostics(series Series, result *EstimationResult) Diagnostics {
	var d Diagnostics
	if result == nil {
		return d
	}
	if result.FitQuality != nil {
		q := *result.FitQuality
		d.FitQuality = &q
	}

	if len(result.Fitted) == 0 || len(result.Fitted) > series.Len() {
		return d
	}
	actual := series[series.Len()-len(result.Fitted):]
	m := Metrics{
		MAE:  CalculateMAE(actual, result.Fitted),
		RMSE: CalculateRMSE(actual, result.Fitted),
		MAPE: CalculateMAPE(actual, result.Fitted),
	}
	// Metrics that overflow are omitted rather than reported as Inf.
	if isFinite(m.MAE) && isFinite(m.RMSE) && isFinite(m.MAPE) {
		d.Metrics = &m
	}
	return d
}

// FitQuality returns the coefficient of determination 1 - SSres/SStot of fitted
// against series. When SStot is zero it returns 1 for a zero residual and nil otherwise.
// The result is clamped to [0, 1].
func FitQuality(series Series, fitted []float64) *float64 {
	if series.Len() == 0 || len(fitted) != series.Len() {
		return nil
	}

	mean := stat.Mean(series, nil)
	ssTot := 0.0
	ssRes := 0.0
	for i, y := range series {
		ssTot += (y - mean) * (y - mean)
		r := y - fitted[i]
		ssRes += r * r
	}

	scale := math.Max(1, floats.Dot(series, series))
	if ssTot <= residualTolerance*residualTolerance*scale {
		if ssRes <= residualTolerance*scale {
			one := 1.0
			return &one
		}
		return nil
	}

	r2 := 1 - ssRes/ssTot
	if ssRes <= residualTolerance*ssTot {
		r2 = 1
	}
	if math.IsNaN(r2) {
		return nil
	}
	r2 = math.Max(0, math.Min(1, r2))
	return &r2
}

// CalculateMAPE calculates Mean Absolute Percentage Error, skipping zero actuals
func CalculateMAPE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	count := 0
	for i := range actual {
		if actual[i] != 0 {
			sum += math.Abs((actual[i] - predicted[i]) / actual[i])
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return (sum / float64(count)) * 100
}

// CalculateMAE calculates Mean Absolute Error
func CalculateMAE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// CalculateRMSE calculates Root Mean Squared Error
func CalculateRMSE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}
	return floats.Distance(actual, predicted, 2) / math.Sqrt(float64(len(actual)))
}
