// Package services provides the business logic layer between transports and the
// forecasting engine. Services parse caller text, apply configuration, enforce
// deadlines and turn engine errors into caller-visible messages.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/soltixdb/forecastd/internal/analytics/forecast"
)

// Error codes
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeNumericalError   = "NUMERICAL_ERROR"
	CodeTimeout          = "TIMEOUT"
	CodeForecastFailed   = "FORECAST_FAILED"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	cause   error
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Unwrap returns the engine error behind e, if any
func (e *ServiceError) Unwrap() error {
	return e.cause
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// FromError classifies err into a ServiceError whose message is safe to show callers
func FromError(err error) *ServiceError {
	if err == nil {
		return nil
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	var (
		validation   *forecast.ValidationError
		insufficient *forecast.InsufficientDataError
		numerical    *forecast.NumericalError
	)

	switch {
	case errors.As(err, &validation):
		prefix := "Input error: "
		if validation.Field == "series" {
			prefix = "Data validation error: "
		}
		return &ServiceError{
			Code:    CodeInvalidInput,
			Message: prefix + validation.Reason,
			Details: map[string]interface{}{"field": validation.Field},
			cause:   err,
		}
	case errors.As(err, &insufficient):
		return &ServiceError{
			Code: CodeInsufficientData,
			Message: fmt.Sprintf("Data validation error: the %s method needs at least %d data points",
				insufficient.Method, insufficient.Need),
			Details: map[string]interface{}{"method": insufficient.Method.String(), "min_points": insufficient.Need},
			cause:   err,
		}
	case errors.As(err, &numerical):
		return &ServiceError{
			Code: CodeNumericalError,
			Message: fmt.Sprintf("Forecasting error: the %s model cannot be fitted to this data (%s)",
				numerical.Method, numerical.Reason),
			Details: map[string]interface{}{"method": numerical.Method.String()},
			cause:   err,
		}
	case errors.Is(err, context.DeadlineExceeded):
		return &ServiceError{
			Code:    CodeTimeout,
			Message: "Forecasting error: the computation did not finish in time",
			cause:   err,
		}
	case errors.Is(err, context.Canceled):
		return &ServiceError{
			Code:    CodeTimeout,
			Message: "Forecasting error: the request was cancelled",
			cause:   err,
		}
	default:
		return &ServiceError{
			Code:    CodeForecastFailed,
			Message: "Forecasting error: the forecast could not be computed",
			cause:   err,
		}
	}
}

// UserMessage returns the caller-visible text for err
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return FromError(err).Message
}
