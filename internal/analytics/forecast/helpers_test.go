package forecast

import (
	"math"
	"testing"
)

// Common test data and helpers for all forecast tests

const testTolerance = 1e-9

// generateLinearSeries creates a series y = slope*x + intercept over x = 1..n
func generateLinearSeries(n int, slope, intercept float64) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = slope*float64(i+1) + intercept
	}
	return s
}

// generateQuadraticSeries creates a series y = a*x^2 + b*x + c over x = 1..n
func generateQuadraticSeries(n int, a, b, c float64) Series {
	s := make(Series, n)
	for i := range s {
		x := float64(i + 1)
		s[i] = a*x*x + b*x + c
	}
	return s
}

// generateNoisySeries creates a deterministic trend with a sinusoidal wobble
func generateNoisySeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		x := float64(i + 1)
		s[i] = 50 + 0.5*x + 3*math.Sin(x*1.7)
	}
	return s
}

func assertClose(t *testing.T, name string, want, got float64) {
	t.Helper()
	if math.Abs(want-got) > testTolerance*math.Max(1, math.Abs(want)) {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func assertSliceClose(t *testing.T, name string, want, got []float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: expected %d values, got %d", name, len(want), len(got))
	}
	for i := range want {
		if math.Abs(want[i]-got[i]) > testTolerance*math.Max(1, math.Abs(want[i])) {
			t.Errorf("%s[%d]: expected %v, got %v", name, i, want[i], got[i])
		}
	}
}

func mustParam(t *testing.T, params Parameters, name string) float64 {
	t.Helper()
	v, ok := params.Get(name)
	if !ok {
		t.Fatalf("parameter %q missing from %v", name, params)
	}
	return v
}
