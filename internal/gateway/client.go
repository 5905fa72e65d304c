// Package gateway defines the boundary to the external order-and-market-data
// gateway. The session layer owns connect/reconnect policy and worker
// lifecycles; the client owns the wire protocol, including decoding raw
// messages into Response values.
package gateway

import (
	"context"
)

// ResponseQueue is where a client delivers decoded inbound messages. The
// session installs its inbound queue here before starting the message pump.
type ResponseQueue interface {
	// Push enqueues a decoded response. It returns an error when the queue
	// is closed; the client should stop pumping on that error.
	Push(response Response) error
}

// Client is the external gateway connection. Implementations must decode raw
// wire messages into Response values and push them to the installed response
// queue from within ProcessMessages.
//
// All methods that perform network I/O are invoked from the session's worker
// goroutines; implementations must not block indefinitely.
type Client interface {
	// Connect establishes the connection. It returns an error on failure;
	// the session retries indefinitely.
	Connect(ctx context.Context) error
	// Disconnect tears the connection down. Safe to call when not connected.
	Disconnect()
	// IsConnected reports the connection state as last observed.
	IsConnected() bool

	// SetResponseQueue installs the queue ProcessMessages delivers into.
	// Must be called before ProcessMessages.
	SetResponseQueue(queue ResponseQueue)
	// ProcessMessages pumps inbound messages until ctx is cancelled, the
	// connection drops, or the response queue closes. It is the receive
	// loop's body; it returns nil on clean shutdown.
	ProcessMessages(ctx context.Context) error

	// RequestCurrentTime asks for the gateway clock (keepalive heartbeat).
	RequestCurrentTime(requestID int64) error
	// RequestHistoricalData starts a historical bar series.
	RequestHistoricalData(req *HistoricalDataRequest) error
	// RequestRealtimeData opens a streaming market data subscription.
	RequestRealtimeData(req *RealtimeDataRequest) error
	// CancelHistoricalData cancels a pending historical series.
	CancelHistoricalData(requestID int64) error
	// CancelRealtimeData closes a streaming subscription.
	CancelRealtimeData(requestID int64) error

	// PlaceOrder forwards an order to the venue. Fills come back as
	// ExecutionResponse messages through the response queue.
	PlaceOrder(req *PlaceOrderRequest) error
	// CancelOrder asks the venue to cancel a working order. The ledger
	// waits for the authoritative OrderStatusResponse before mutating
	// order state.
	CancelOrder(orderID int64) error
}
