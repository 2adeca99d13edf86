package queue

import (
	"fmt"

	"github.com/soltixdb/forecastd/internal/config"
	"github.com/soltixdb/forecastd/internal/utils"
)

// NewQueue creates a new Queue instance based on configuration. The URL scheme
// selects the backend; anything other than memory:// is treated as a NATS URL.
func NewQueue(cfg config.QueueConfig) (Queue, error) {
	switch utils.QueueTypeFromURL(cfg.URL) {
	case utils.QueueTypeMemory:
		return NewMemoryQueue(), nil
	case utils.QueueTypeNATS:
		return newNATSQueue(cfg.URL, cfg.QueueGroup)
	default:
		return nil, fmt.Errorf("unsupported queue url: %s", cfg.URL)
	}
}

// NewRequester creates a Requester instance based on configuration
func NewRequester(cfg config.QueueConfig) (Requester, error) {
	return NewQueue(cfg)
}

// NewResponder creates a Responder instance based on configuration
func NewResponder(cfg config.QueueConfig) (Responder, error) {
	return NewQueue(cfg)
}
