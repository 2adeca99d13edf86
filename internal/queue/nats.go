package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
)

// NATSQueue implements Queue using core NATS request/reply with queue groups
type NATSQueue struct {
	conn          *nats.Conn
	subscriptions map[string]*nats.Subscription
	mu            sync.RWMutex
	ownsConn      bool
}

// newNATSQueue connects to url and creates a queue instance
func newNATSQueue(url, name string) (*NATSQueue, error) {
	conn, err := nats.Connect(url, nats.Name(name))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	q := NewNATSQueueWithConn(conn)
	q.ownsConn = true
	return q, nil
}

// NewNATSQueueWithConn wraps an existing connection, which the caller keeps ownership of
func NewNATSQueueWithConn(conn *nats.Conn) *NATSQueue {
	return &NATSQueue{
		conn:          conn,
		subscriptions: make(map[string]*nats.Subscription),
	}
}

// Request publishes data and waits for a reply
func (q *NATSQueue) Request(ctx context.Context, subject string, data []byte) ([]byte, error) {
	msg, err := q.conn.RequestWithContext(ctx, subject, data)
	if err != nil {
		if errors.Is(err, nats.ErrNoResponders) {
			return nil, fmt.Errorf("%w: %s", ErrNoResponders, subject)
		}
		return nil, fmt.Errorf("request on subject %s failed: %w", subject, err)
	}
	return msg.Data, nil
}

// Respond subscribes to subject within group and replies with the handler's output
func (q *NATSQueue) Respond(subject, group string, handler RequestHandler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.subscriptions[subject]; exists {
		return fmt.Errorf("already subscribed to subject: %s", subject)
	}

	cb := func(msg *nats.Msg) {
		reply := handler(context.Background(), msg.Subject, msg.Data)
		if msg.Reply == "" {
			return
		}
		_ = msg.Respond(reply)
	}

	var (
		sub *nats.Subscription
		err error
	)
	if group != "" {
		sub, err = q.conn.QueueSubscribe(subject, group, cb)
	} else {
		sub, err = q.conn.Subscribe(subject, cb)
	}
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	// Make sure the server has registered interest before callers send requests.
	if err := q.conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return fmt.Errorf("failed to flush subscription for %s: %w", subject, err)
	}

	q.subscriptions[subject] = sub
	return nil
}

// Unsubscribe unsubscribes from a subject
func (q *NATSQueue) Unsubscribe(subject string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	sub, exists := q.subscriptions[subject]
	if !exists {
		return fmt.Errorf("not subscribed to subject: %s", subject)
	}

	if err := sub.Unsubscribe(); err != nil {
		return fmt.Errorf("failed to unsubscribe from subject %s: %w", subject, err)
	}

	delete(q.subscriptions, subject)
	return nil
}

// Close drains all subscriptions and closes the connection if the queue opened it
func (q *NATSQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for subject, sub := range q.subscriptions {
		_ = sub.Drain()
		delete(q.subscriptions, subject)
	}

	if q.ownsConn {
		q.conn.Close()
	}
	return nil
}

// GetNATSConn returns the underlying NATS connection (for advanced usage)
func (q *NATSQueue) GetNATSConn() *nats.Conn {
	return q.conn
}
