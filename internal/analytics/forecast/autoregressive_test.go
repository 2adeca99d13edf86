package forecast

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestAutoregressiveForecaster_UnitRootTrend(t *testing.T) {
	series := Series{1, 2, 3, 4, 5}

	result, err := NewAutoregressiveForecaster().Forecast(series, 3, DefaultConfig())
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	assertClose(t, "phi", 1, mustParam(t, result.Parameters, ParamPhi))
	assertClose(t, "constant", 1, mustParam(t, result.Parameters, ParamConstant))
	assertSliceClose(t, "forecast", []float64{6, 7, 8}, result.Forecast)
	assertClose(t, "mean_difference", 1, mustParam(t, result.Parameters, ParamMeanDifference))
	assertClose(t, "std_difference", 0, mustParam(t, result.Parameters, ParamStdDifference))

	if result.FitQuality != nil {
		t.Error("AR(1) should not report fit quality")
	}
	if len(result.Fitted) != 4 {
		t.Errorf("Expected 4 fitted values, got %d", len(result.Fitted))
	}
}

func TestAutoregressiveForecaster_ConstantSeries(t *testing.T) {
	_, err := NewAutoregressiveForecaster().Forecast(Series{5, 5, 5, 5, 5}, 3, DefaultConfig())
	if !errors.Is(err, ErrNumerical) {
		t.Fatalf("Expected ErrNumerical for a constant series, got %v", err)
	}

	var numErr *NumericalError
	if !errors.As(err, &numErr) || numErr.Method != MethodSimpleARIMA {
		t.Errorf("Expected *NumericalError for simple_arima, got %#v", err)
	}
}

func TestAutoregressiveForecaster_ConstantLagOnly(t *testing.T) {
	// Lagged values 5, 5, 5 have zero variance even though the series changes
	_, err := NewAutoregressiveForecaster().Forecast(Series{5, 5, 5, 6}, 1, DefaultConfig())
	if !errors.Is(err, ErrNumerical) {
		t.Errorf("Expected ErrNumerical, got %v", err)
	}
}

func TestAutoregressiveForecaster_Divergent(t *testing.T) {
	series := Series{1, 2, 4, 8, 16}

	result, err := NewAutoregressiveForecaster().Forecast(series, 2, DefaultConfig())
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	phi := mustParam(t, result.Parameters, ParamPhi)
	assertClose(t, "phi", 2, phi)
	assertSliceClose(t, "forecast", []float64{32, 64}, result.Forecast)
	if !Divergent(phi) {
		t.Error("Expected phi = 2 to be divergent")
	}

	assertClose(t, "mean_difference", 3.75, mustParam(t, result.Parameters, ParamMeanDifference))
	assertClose(t, "std_difference", math.Sqrt(7.1875), mustParam(t, result.Parameters, ParamStdDifference))

	text := Explain(MethodSimpleARIMA, result.Parameters, Diagnostics{})
	if !strings.Contains(text, "divergent") {
		t.Errorf("Explanation should flag divergence, got %q", text)
	}
}

func TestAutoregressiveForecaster_MeanReverting(t *testing.T) {
	result, err := NewAutoregressiveForecaster().Forecast(Series{1, 3, 2, 4, 3, 5}, 5, DefaultConfig())
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	phi := mustParam(t, result.Parameters, ParamPhi)
	if math.Abs(phi) >= 1 {
		t.Fatalf("Expected |phi| < 1, got %v", phi)
	}

	text := Explain(MethodSimpleARIMA, result.Parameters, Diagnostics{})
	if !strings.Contains(text, "Mean-reverting") {
		t.Errorf("Expected mean-reverting explanation, got %q", text)
	}
}

func TestAutoregressiveForecaster_InsufficientData(t *testing.T) {
	_, err := NewAutoregressiveForecaster().Forecast(Series{1, 2}, 1, DefaultConfig())

	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected *InsufficientDataError, got %v", err)
	}
	if insufficient.Need != 3 || insufficient.Have != 2 {
		t.Errorf("Expected need 3 have 2, got need %d have %d", insufficient.Need, insufficient.Have)
	}
}

func TestAutoregressiveForecaster_ScaleInvariant(t *testing.T) {
	base := Series{1, 3, 2, 5, 4}
	small := make(Series, len(base))
	for i, v := range base {
		small[i] = v * 1e-11
	}

	baseResult, err := NewAutoregressiveForecaster().Forecast(base, 2, DefaultConfig())
	if err != nil {
		t.Fatalf("Forecast failed on unit-scale series: %v", err)
	}
	smallResult, err := NewAutoregressiveForecaster().Forecast(small, 2, DefaultConfig())
	if err != nil {
		t.Fatalf("Forecast failed on small-magnitude series: %v", err)
	}

	assertClose(t, "phi", mustParam(t, baseResult.Parameters, ParamPhi), mustParam(t, smallResult.Parameters, ParamPhi))
	for h := range baseResult.Forecast {
		if got, want := smallResult.Forecast[h], baseResult.Forecast[h]*1e-11; math.Abs(got-want) > 1e-9*math.Abs(want) {
			t.Errorf("step %d: expected %v, got %v", h+1, want, got)
		}
	}
}
