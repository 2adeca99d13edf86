package queue

import (
	"context"
	"fmt"
	"sync"
)

// MemoryQueue implements Queue in-process. Requests are dispatched directly to the
// registered handler on a separate goroutine, so callers see the same timeout
// behaviour as over the network.
type MemoryQueue struct {
	handlers map[string]RequestHandler
	mu       sync.RWMutex
	closed   bool
}

// NewMemoryQueue creates a new in-memory queue instance
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		handlers: make(map[string]RequestHandler),
	}
}

// Request dispatches data to the handler registered for subject
func (q *MemoryQueue) Request(ctx context.Context, subject string, data []byte) ([]byte, error) {
	q.mu.RLock()
	handler, ok := q.handlers[subject]
	closed := q.closed
	q.mu.RUnlock()

	if closed {
		return nil, fmt.Errorf("queue is closed")
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoResponders, subject)
	}

	// Copy data so the handler cannot observe later mutations by the caller.
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	done := make(chan []byte, 1)
	go func() {
		done <- handler(ctx, subject, dataCopy)
	}()

	select {
	case reply := <-done:
		return reply, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("request on subject %s failed: %w", subject, ctx.Err())
	}
}

// Respond registers handler for subject. Groups are irrelevant in-process.
func (q *MemoryQueue) Respond(subject, _ string, handler RequestHandler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return fmt.Errorf("queue is closed")
	}
	if _, exists := q.handlers[subject]; exists {
		return fmt.Errorf("already subscribed to subject: %s", subject)
	}
	q.handlers[subject] = handler
	return nil
}

// Unsubscribe removes the handler for subject
func (q *MemoryQueue) Unsubscribe(subject string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.handlers[subject]; !exists {
		return fmt.Errorf("not subscribed to subject: %s", subject)
	}
	delete(q.handlers, subject)
	return nil
}

// Close removes all handlers; later calls fail
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers = make(map[string]RequestHandler)
	q.closed = true
	return nil
}
