package utils

import "time"

// =============================================================================
// Timeout Constants
// =============================================================================

// Transport Timeouts
const (
	// DefaultRequestTimeout bounds a queue request/reply round trip
	DefaultRequestTimeout = 10 * time.Second

	// ShutdownTimeout bounds graceful shutdown of all listeners
	ShutdownTimeout = 10 * time.Second

	// HTTPReadTimeout bounds reading an HTTP request
	HTTPReadTimeout = 5 * time.Second
)

// gRPC Timeouts
const (
	// GRPCRequestTimeout is the default timeout for gRPC requests
	GRPCRequestTimeout = 5 * time.Second
)

// =============================================================================
// Queue Type Constants
// =============================================================================

// QueueType represents the type of message queue
type QueueType string

const (
	// QueueTypeNATS represents core NATS request/reply (default)
	QueueTypeNATS QueueType = "nats"

	// QueueTypeMemory represents an in-process queue for tests and single-binary use
	QueueTypeMemory QueueType = "memory"
)

// QueueTypeFromURL derives the queue type from the URL scheme
func QueueTypeFromURL(url string) QueueType {
	if len(url) >= len("memory://") && url[:len("memory://")] == "memory://" {
		return QueueTypeMemory
	}
	return QueueTypeNATS
}
