package forecast

import (
	"errors"
	"fmt"
)

// Sentinel kinds matched with errors.Is
var (
	ErrValidation       = errors.New("validation error")
	ErrInsufficientData = errors.New("insufficient data")
	ErrNumerical        = errors.New("numerical error")
)

// ValidationError reports a request that violates input bounds
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InsufficientDataError reports a series too short for a method
type InsufficientDataError struct {
	Method Method
	Need   int
	Have   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data points for %s: need %d, have %d", e.Method, e.Need, e.Have)
}

// Is reports whether target is ErrInsufficientData
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// NumericalError reports a fit that cannot be computed reliably
type NumericalError struct {
	Method Method
	Reason string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Method, e.Reason)
}

// Is reports whether target is ErrNumerical
func (e *NumericalError) Is(target error) bool {
	return target == ErrNumerical
}

func requireLength(m Method, series Series, need int) error {
	if series.Len() < need {
		return &InsufficientDataError{Method: m, Need: need, Have: series.Len()}
	}
	return nil
}
