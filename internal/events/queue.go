package events

import (
	"context"
	"errors"
	"sync"
	"time"

	applog "familyspend/internal/log"
)

const deliverTimeout = 15 * time.Second

var (
	ErrQueueFull   = errors.New("event queue full")
	ErrQueueClosed = errors.New("event queue closed")
)

// Queue hands events to a Publisher from a single goroutine, so callers never
// wait on the broker. Events are delivered in the order they were queued.
// A full queue drops the new event.
type Queue struct {
	next    Publisher
	logger  *applog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	ch     chan Event
	done   chan struct{}
}

// NewQueue starts the delivery goroutine. size bounds the events waiting for
// delivery.
func NewQueue(next Publisher, size int, logger *applog.Logger) *Queue {
	q := &Queue{
		next:    next,
		logger:  logger.WithComponent(applog.ComponentAMQP),
		timeout: deliverTimeout,
		ch:      make(chan Event, size),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// Publish queues e without blocking. ctx is not used for delivery: the event
// outlives the request that caused it.
func (q *Queue) Publish(_ context.Context, e Event) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events and waits until the queued ones were handed
// to the publisher. It does not close the publisher.
func (q *Queue) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
	q.mu.Unlock()
	<-q.done
	return nil
}

func (q *Queue) run() {
	defer close(q.done)
	for e := range q.ch {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		if err := q.next.Publish(ctx, e); err != nil {
			q.logger.Warn("Event publish failed",
				"kind", e.Kind,
				"entity_id", e.EntityID,
				applog.FieldOperation, applog.OpPublish,
				applog.FieldError, err)
		}
		cancel()
	}
}
