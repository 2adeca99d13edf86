// Package analytics provides common types and utilities for time-series analytics
// including forecasting.
package analytics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series is an ordered sequence of observations. The observation at index i
// corresponds to time step x = i+1, so a series of length n spans x = 1..n.
type Series []float64

// NewSeries copies values into a new Series so later changes to values are not visible.
func NewSeries(values []float64) Series {
	s := make(Series, len(values))
	copy(s, values)
	return s
}

// Values returns a copy of the observations
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	copy(values, s)
	return values
}

// Len returns the number of observations
func (s Series) Len() int {
	return len(s)
}

// Index returns the 1-based time index of the observation at position i
func (s Series) Index(i int) float64 {
	return float64(i + 1)
}

// Indices returns the time indices 1..n
func (s Series) Indices() []float64 {
	x := make([]float64, len(s))
	for i := range s {
		x[i] = s.Index(i)
	}
	return x
}

// First returns the first observation, or 0 for an empty series
func (s Series) First() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

// Last returns the last observation, or 0 for an empty series
func (s Series) Last() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Sum returns the sum of all observations
func (s Series) Sum() float64 {
	return floats.Sum(s)
}

// Mean calculates the mean of all values
func (s Series) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	return stat.Mean(s, nil)
}

// StdDev calculates the sample standard deviation of all values
func (s Series) StdDev() float64 {
	if len(s) < 2 {
		return 0
	}
	return stat.StdDev(s, nil)
}

// Diff returns the first differences x[t] - x[t-1]
func (s Series) Diff() []float64 {
	if len(s) < 2 {
		return []float64{}
	}
	diffs := make([]float64, len(s)-1)
	for i := 1; i < len(s); i++ {
		diffs[i-1] = s[i] - s[i-1]
	}
	return diffs
}
