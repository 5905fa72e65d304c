package session

import (
	"context"
	"sync"
	"time"

	"github.com/CasinoHe/quanttrader-sub001/pkg/errors"
)

var (
	// ErrQueueFull is returned by Push when the queue is at capacity.
	ErrQueueFull = errors.New(errors.ErrCodeDispatchRejected, "queue full")
	// ErrQueueClosed is returned by Push after Close.
	ErrQueueClosed = errors.New(errors.ErrCodeQueueClosed, "queue closed")
)

// Queue is a bounded in-memory queue shared between one producer side and one
// consumer loop. Push never blocks; Pop blocks with a bounded timeout so
// consumers re-check their cancellation context at least once per timeout
// period.
type Queue[T any] struct {
	ch     chan T
	mu     sync.RWMutex
	closed bool
}

// NewQueue allocates a queue with the given capacity.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		capacity = 1
	}

	return &Queue[T]{ch: make(chan T, capacity)}
}

// Push enqueues an item without blocking.
func (q *Queue[T]) Push(item T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.ch <- item:
		return nil
	default:
		return ErrQueueFull
	}
}

// Pop dequeues one item. It returns (zero, false) when the timeout elapses,
// the context is cancelled, or the queue is closed and drained.
func (q *Queue[T]) Pop(ctx context.Context, timeout time.Duration) (T, bool) {
	var zero T

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case item, ok := <-q.ch:
		if !ok {
			return zero, false
		}

		return item, true
	case <-ctx.Done():
		return zero, false
	case <-timer.C:
		return zero, false
	}
}

// Close stops the queue from accepting new items. Items already enqueued can
// still be drained by Pop.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}

// Len returns the number of items currently enqueued.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}
