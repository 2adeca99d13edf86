// Package subscriber serves the forecast operations over the message queue and
// provides the matching client.
package subscriber

import (
	"github.com/soltixdb/forecastd/internal/models"
)

// Reply is the payload returned on both operation subjects
type Reply struct {
	RequestID string                   `json:"request_id"`
	OK        bool                     `json:"ok"`
	Text      string                   `json:"text"`
	Forecast  *models.ForecastResponse `json:"forecast,omitempty"`
	Methods   *models.MethodsResponse  `json:"methods,omitempty"`
	Error     *models.ErrorDetail      `json:"error,omitempty"`
}
