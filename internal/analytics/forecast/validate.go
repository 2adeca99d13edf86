package forecast

import (
	"fmt"
	"math"

	"github.com/soltixdb/forecastd/internal/analytics"
)

// Validate checks raw inputs against the engine bounds and returns a request holding
// a private copy of the series. It never returns a partial request.
func Validate(values []float64, horizon int, method string) (*Request, error) {
	if len(values) < MinSeriesLength {
		return nil, &ValidationError{
			Field:  "series",
			Reason: fmt.Sprintf("need at least %d data points, got %d", MinSeriesLength, len(values)),
		}
	}
	if len(values) > MaxSeriesLength {
		return nil, &ValidationError{
			Field:  "series",
			Reason: fmt.Sprintf("series too large: %d points (max %d)", len(values), MaxSeriesLength),
		}
	}
	for i, v := range values {
		if !isFinite(v) {
			return nil, &ValidationError{
				Field:  "series",
				Reason: fmt.Sprintf("value at position %d is not finite", i+1),
			}
		}
	}

	if horizon < MinHorizon || horizon > MaxHorizon {
		return nil, &ValidationError{
			Field:  "horizon",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinHorizon, MaxHorizon, horizon),
		}
	}

	m, err := ParseMethod(method)
	if err != nil {
		return nil, err
	}

	return &Request{
		series:  analytics.NewSeries(values),
		horizon: horizon,
		method:  m,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
