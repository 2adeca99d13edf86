package forecast

import (
	"errors"
	"math"
	"testing"
)

func TestPolynomialForecaster_ExactInterpolation(t *testing.T) {
	series := Series{1, 4, 9}

	result, err := NewPolynomialForecaster().Forecast(series, 2, DefaultConfig())
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	assertSliceClose(t, "forecast", []float64{16, 25}, result.Forecast)
	assertClose(t, "degree", 2, mustParam(t, result.Parameters, ParamDegree))
	assertClose(t, "c0", 0, mustParam(t, result.Parameters, "c0"))
	assertClose(t, "c1", 0, mustParam(t, result.Parameters, "c1"))
	assertClose(t, "c2", 1, mustParam(t, result.Parameters, "c2"))

	if result.FitQuality == nil {
		t.Fatal("Expected fit quality")
	}
	assertClose(t, "fit quality", 1, *result.FitQuality)
}

func TestPolynomialForecaster_DegreeReduction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Degree = 4

	result, err := NewPolynomialForecaster().Forecast(Series{2, 7, 3}, 1, cfg)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	assertClose(t, "degree", 2, mustParam(t, result.Parameters, ParamDegree))
	if _, ok := result.Parameters.Get("c3"); ok {
		t.Error("Reduced fit should not report a cubic coefficient")
	}
	assertClose(t, "fit quality", 1, *result.FitQuality)
}

func TestPolynomialForecaster_RecoversCoefficients(t *testing.T) {
	series := generateQuadraticSeries(200, 2, -3, 5)

	result, err := NewPolynomialForecaster().Forecast(series, 1, DefaultConfig())
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	c0 := mustParam(t, result.Parameters, "c0")
	c1 := mustParam(t, result.Parameters, "c1")
	c2 := mustParam(t, result.Parameters, "c2")
	if math.Abs(c0-5) > 1e-5 || math.Abs(c1+3) > 1e-6 || math.Abs(c2-2) > 1e-8 {
		t.Errorf("Expected coefficients (5, -3, 2), got (%v, %v, %v)", c0, c1, c2)
	}

	want := 2.0*201*201 - 3*201 + 5
	if math.Abs(result.Forecast[0]-want) > 1e-6*want {
		t.Errorf("Expected forecast %v, got %v", want, result.Forecast[0])
	}
}

func TestPolynomialForecaster_DegreeOneMatchesLinear(t *testing.T) {
	series := generateNoisySeries(30)
	cfg := DefaultConfig()
	cfg.Degree = 1

	poly, err := NewPolynomialForecaster().Forecast(series, 5, cfg)
	if err != nil {
		t.Fatalf("polynomial Forecast failed: %v", err)
	}
	lin, err := NewLinearForecaster().Forecast(series, 5, cfg)
	if err != nil {
		t.Fatalf("linear Forecast failed: %v", err)
	}

	for i := range lin.Forecast {
		if math.Abs(lin.Forecast[i]-poly.Forecast[i]) > 1e-8 {
			t.Errorf("forecast[%d]: linear %v, polynomial %v", i, lin.Forecast[i], poly.Forecast[i])
		}
	}
	assertClose(t, "c1", mustParam(t, lin.Parameters, ParamSlope), mustParam(t, poly.Parameters, "c1"))
}

func TestPolynomialForecaster_LongSeries(t *testing.T) {
	series := generateNoisySeries(MaxSeriesLength)

	result, err := NewPolynomialForecaster().Forecast(series, MaxHorizon, DefaultConfig())
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if len(result.Forecast) != MaxHorizon {
		t.Errorf("Expected %d forecasts, got %d", MaxHorizon, len(result.Forecast))
	}
	for i, v := range result.Forecast {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("forecast[%d] is not finite", i)
		}
	}
}

func TestSolveNormalEquations_Singular(t *testing.T) {
	collapse := func(float64) float64 { return 0 }

	_, err := solveNormalEquations(Series{1, 2, 3, 4}, 2, collapse)
	if !errors.Is(err, ErrNumerical) {
		t.Errorf("Expected ErrNumerical for a singular system, got %v", err)
	}
}

func TestUnscaleCoefficients(t *testing.T) {
	// (x-2)^2 written in u = (x-2)/1 is u^2
	got := unscaleCoefficients([]float64{0, 0, 1}, 2, 1)
	assertSliceClose(t, "coefficients", []float64{4, -4, 1}, got)

	// 3u with u = (x-1)/2 is 1.5x - 1.5
	got = unscaleCoefficients([]float64{0, 3}, 1, 2)
	assertSliceClose(t, "coefficients", []float64{-1.5, 1.5}, got)
}

func TestEvalPolynomial(t *testing.T) {
	// 1 + 2x + 3x^2 at x = 2
	assertClose(t, "value", 17, evalPolynomial([]float64{1, 2, 3}, 2))
}
