package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/models"
	"github.com/soltixdb/forecastd/internal/services"
)

// StatusForCode maps a service error code onto an HTTP status
func StatusForCode(code string) int {
	switch code {
	case services.CodeInvalidInput:
		return fiber.StatusBadRequest
	case services.CodeInsufficientData, services.CodeNumericalError:
		return fiber.StatusUnprocessableEntity
	case services.CodeTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler returns a custom error handler middleware. Service errors keep their
// code and caller-safe message; anything else is reported generically.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		detail := models.ErrorDetail{
			Code:    "ERROR",
			Message: "Internal Server Error",
			Path:    c.Path(),
		}

		var fe *fiber.Error
		var se *services.ServiceError
		switch {
		case errors.As(err, &se):
			status = StatusForCode(se.Code)
			detail.Code = se.Code
			detail.Message = se.Message
			detail.Details = se.Details
		case errors.As(err, &fe):
			status = fe.Code
			detail.Message = fe.Message
		}

		log := logger.WithContext(c.UserContext())
		fields := []interface{}{
			"path", c.Path(),
			"method", c.Method(),
			"status", status,
			"error", err,
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("Request error", fields...)
		} else {
			log.Warn("Request rejected", fields...)
		}

		return c.Status(status).JSON(models.ErrorResponse{Error: detail})
	}
}
