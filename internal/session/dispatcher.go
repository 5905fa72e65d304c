package session

import (
	"sync/atomic"
	"time"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
	"github.com/CasinoHe/quanttrader-sub001/internal/logger"
)

// DispatchFailed is the sentinel returned by Dispatch when the outbound queue
// refuses the request (full, or destroyed during shutdown). It is reported to
// the caller, never thrown.
const DispatchFailed int64 = -1

// Dispatcher accepts outbound commands, assigns each a unique request id,
// records the completion callback (if any) in the correlation registry, and
// enqueues the request for the transmit loop.
type Dispatcher struct {
	registry *CorrelationRegistry
	outbound *Queue[gateway.Request]
	log      *logger.Logger

	// lastActivity is the unix-nano time of the last successful dispatch.
	// The monitor reads it to decide whether a keepalive is due.
	lastActivity atomic.Int64
}

// NewDispatcher creates a dispatcher over the given registry and outbound
// queue.
func NewDispatcher(registry *CorrelationRegistry, outbound *Queue[gateway.Request], log *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		outbound: outbound,
		log:      log,
	}
	d.lastActivity.Store(time.Now().UnixNano())

	return d
}

// Dispatch assigns the request its id, registers the callback when one is
// provided, and enqueues the request for transmission. It returns the
// assigned request id, or DispatchFailed when the outbound queue rejects the
// enqueue. Requests are immutable after this call returns.
func (d *Dispatcher) Dispatch(request gateway.Request, callback optional.Option[ResponseCallback]) int64 {
	requestID := d.registry.NextRequestID()

	setter, ok := request.(interface{ SetRequestID(int64) })
	if !ok {
		// Every request type embeds RequestBase; this is unreachable for
		// the sealed request set.
		d.log.Error("request does not accept an id", zap.String("kind", string(request.Kind())))

		return DispatchFailed
	}

	setter.SetRequestID(requestID)

	if callback.IsSome() {
		d.registry.Put(requestID, callback.Unwrap())
	}

	if err := d.outbound.Push(request); err != nil {
		// Undo the correlation entry so a never-transmitted request
		// cannot strand a callback.
		d.registry.Remove(requestID)
		d.log.Error("cannot push request to the outbound queue",
			zap.String("kind", string(request.Kind())),
			zap.Int64("request_id", requestID),
			zap.Error(err),
		)

		return DispatchFailed
	}

	d.lastActivity.Store(time.Now().UnixNano())

	d.log.Debug("dispatched request",
		zap.String("kind", string(request.Kind())),
		zap.Int64("request_id", requestID),
	)

	return requestID
}

// CancelCorrelation removes a pending callback, used when an upstream cancel
// makes the pending reply meaningless. Idempotent: removing an unknown id
// returns false.
func (d *Dispatcher) CancelCorrelation(requestID int64) bool {
	return d.registry.Remove(requestID)
}

// LastActivity returns the time of the last successful dispatch.
func (d *Dispatcher) LastActivity() time.Time {
	return time.Unix(0, d.lastActivity.Load())
}
