// Package queue provides request/reply messaging for the forecast operations.
package queue

import (
	"context"
	"errors"
)

// ErrNoResponders is returned when nothing is serving the requested subject
var ErrNoResponders = errors.New("no responders available for request")

// Requester sends a request and waits for its reply
type Requester interface {
	// Request publishes data on subject and blocks until a reply arrives or ctx ends
	Request(ctx context.Context, subject string, data []byte) ([]byte, error)

	// Close closes the connection
	Close() error
}

// Responder serves requests arriving on a subject
type Responder interface {
	// Respond registers handler for subject. Responders sharing a non-empty group
	// split the load; each request is served once per group.
	Respond(subject, group string, handler RequestHandler) error

	// Unsubscribe stops serving a subject
	Unsubscribe(subject string) error

	// Close closes the connection
	Close() error
}

// RequestHandler computes the reply for one request. The returned bytes are sent
// back verbatim; handlers encode failures in the reply payload.
type RequestHandler func(ctx context.Context, subject string, data []byte) []byte

// Queue combines Requester and Responder interfaces
type Queue interface {
	Requester
	Responder
}
