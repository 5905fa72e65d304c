package session

import (
	"sync"
	"sync/atomic"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
)

// ResponseCallback handles the response(s) correlated with one outbound
// request. A streaming request (historical bars, realtime ticks) invokes its
// callback once per message until the request is cancelled.
type ResponseCallback func(response gateway.Response)

// CorrelationRegistry maps an outbound request id to its completion callback.
// It is a pure data structure with no I/O; it is mutated by the dispatcher
// (caller goroutines) and read by the router goroutine, so every map access
// holds the mutex. Lock hold time is one map operation; callbacks are invoked
// outside the lock.
type CorrelationRegistry struct {
	mu        sync.Mutex
	callbacks map[int64]ResponseCallback
	nextID    atomic.Int64
}

// NewCorrelationRegistry creates an empty registry. Request ids start at 1
// and are never reused for the lifetime of the process.
func NewCorrelationRegistry() *CorrelationRegistry {
	return &CorrelationRegistry{
		callbacks: make(map[int64]ResponseCallback),
	}
}

// NextRequestID returns a process-wide unique, monotonically increasing
// request identifier.
func (r *CorrelationRegistry) NextRequestID() int64 {
	return r.nextID.Add(1)
}

// Put records the callback for a request id, replacing any existing entry.
func (r *CorrelationRegistry) Put(requestID int64, callback ResponseCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.callbacks[requestID] = callback
}

// Get returns the callback registered for a request id. The entry stays
// registered; streaming requests receive many responses for one id.
func (r *CorrelationRegistry) Get(requestID int64) (ResponseCallback, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	callback, ok := r.callbacks[requestID]

	return callback, ok
}

// Remove deletes a pending callback. Removing an id with no entry returns
// false, not an error; a cancel can race with the final response.
func (r *CorrelationRegistry) Remove(requestID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.callbacks[requestID]; !ok {
		return false
	}

	delete(r.callbacks, requestID)

	return true
}

// Clear drops every pending entry and returns how many were dropped. The
// supervisor calls it between connection generations so correlations for
// subscriptions that died with the old connection cannot leak into the new
// one. Request ids keep increasing across a Clear.
func (r *CorrelationRegistry) Clear() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := len(r.callbacks)
	r.callbacks = make(map[int64]ResponseCallback)

	return dropped
}

// Len returns the number of pending correlation entries.
func (r *CorrelationRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.callbacks)
}
