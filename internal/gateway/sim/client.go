// Package sim provides an in-process gateway client for paper trading and
// tests. It fills market orders immediately at the configured last price and
// echoes cancels back as authoritative order status messages, with no network
// in the path.
package sim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
	"github.com/CasinoHe/quanttrader-sub001/internal/logger"
	"github.com/CasinoHe/quanttrader-sub001/pkg/errors"
)

var _ gateway.Client = (*Client)(nil)

// Client is a simulated gateway. It is safe for use by the session's worker
// goroutines concurrently.
type Client struct {
	log *logger.Logger

	mu        sync.Mutex
	queue     gateway.ResponseQueue
	prices    map[string]float64
	connected atomic.Bool

	// failConnects makes the next N Connect calls fail, for exercising
	// the session's retry loop.
	failConnects atomic.Int32

	connectCalls    atomic.Int64
	disconnectCalls atomic.Int64
	placedOrders    atomic.Int64
	cancelledOrders atomic.Int64

	pumpWake chan struct{}
}

// NewClient creates a simulated gateway client.
func NewClient(log *logger.Logger) *Client {
	return &Client{
		log:      log,
		prices:   make(map[string]float64),
		pumpWake: make(chan struct{}, 1),
	}
}

// FailNextConnects makes the next n Connect calls return an error.
func (c *Client) FailNextConnects(n int32) {
	c.failConnects.Store(n)
}

// SetPrice sets the simulated last trade price for a symbol. Market orders
// on the symbol fill at this price.
func (c *Client) SetPrice(symbol string, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prices[symbol] = price
}

// ConnectCalls returns how many times Connect ran, including failures.
func (c *Client) ConnectCalls() int64 { return c.connectCalls.Load() }

// PlacedOrders returns how many orders reached the simulated venue.
func (c *Client) PlacedOrders() int64 { return c.placedOrders.Load() }

// CancelledOrders returns how many cancels reached the simulated venue.
func (c *Client) CancelledOrders() int64 { return c.cancelledOrders.Load() }

// Connect establishes the simulated connection, honouring any scripted
// failures first.
func (c *Client) Connect(_ context.Context) error {
	c.connectCalls.Add(1)

	if c.failConnects.Load() > 0 {
		c.failConnects.Add(-1)

		return errors.New(errors.ErrCodeConnectFailed, "simulated connect failure")
	}

	c.connected.Store(true)

	return nil
}

// Disconnect tears the simulated connection down.
func (c *Client) Disconnect() {
	c.disconnectCalls.Add(1)
	c.connected.Store(false)
}

// DropConnection simulates an abrupt connection loss without a Disconnect
// call from the session.
func (c *Client) DropConnection() {
	c.connected.Store(false)
}

// IsConnected reports the simulated connection state.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// SetResponseQueue installs the response queue.
func (c *Client) SetResponseQueue(queue gateway.ResponseQueue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue = queue
}

// ProcessMessages blocks until the connection drops or ctx is cancelled.
// Responses are pushed from the request methods directly, so there is no
// wire to pump; this loop only models the pump's lifetime.
func (c *Client) ProcessMessages(ctx context.Context) error {
	for {
		if !c.connected.Load() {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-c.pumpWake:
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func (c *Client) push(response gateway.Response) {
	c.mu.Lock()
	queue := c.queue
	c.mu.Unlock()

	if queue == nil {
		return
	}

	if err := queue.Push(response); err != nil {
		c.log.Warn("sim gateway dropped response", zap.Error(err))
	}

	select {
	case c.pumpWake <- struct{}{}:
	default:
	}
}

// RequestCurrentTime replies with the wall clock.
func (c *Client) RequestCurrentTime(requestID int64) error {
	if !c.connected.Load() {
		return errors.New(errors.ErrCodeNotConnected, "sim gateway not connected")
	}

	c.push(&gateway.CurrentTimeResponse{
		ResponseBase: gateway.ResponseBase{ID: requestID},
		Time:         time.Now(),
	})

	return nil
}

// RequestHistoricalData replies with a short synthetic bar series ending in
// a terminal bar.
func (c *Client) RequestHistoricalData(req *gateway.HistoricalDataRequest) error {
	if !c.connected.Load() {
		return errors.New(errors.ErrCodeNotConnected, "sim gateway not connected")
	}

	c.mu.Lock()
	price, ok := c.prices[req.Symbol]
	c.mu.Unlock()

	if !ok {
		price = 100
	}

	now := time.Now()
	for i := 3; i > 0; i-- {
		c.push(&gateway.HistoricalBarResponse{
			ResponseBase: gateway.ResponseBase{ID: req.RequestID()},
			BarTime:      now.Add(-time.Duration(i) * time.Minute),
			Open:         price,
			High:         price,
			Low:          price,
			Close:        price,
			Volume:       1,
			WAP:          price,
			Count:        1,
		})
	}

	c.push(&gateway.HistoricalBarResponse{
		ResponseBase: gateway.ResponseBase{ID: req.RequestID()},
		IsLast:       true,
	})

	return nil
}

// RequestRealtimeData replies with a single tick at the configured price.
// Further ticks arrive when SetPrice is followed by PublishTick.
func (c *Client) RequestRealtimeData(req *gateway.RealtimeDataRequest) error {
	if !c.connected.Load() {
		return errors.New(errors.ErrCodeNotConnected, "sim gateway not connected")
	}

	c.mu.Lock()
	price := c.prices[req.Symbol]
	c.mu.Unlock()

	c.push(&gateway.RealtimeTickResponse{
		ResponseBase: gateway.ResponseBase{ID: req.RequestID()},
		Symbol:       req.Symbol,
		Price:        price,
		Size:         1,
		Time:         time.Now(),
	})

	return nil
}

// PublishTick emits a tick for an open realtime subscription.
func (c *Client) PublishTick(requestID int64, symbol string, price, size float64) {
	c.SetPrice(symbol, price)
	c.push(&gateway.RealtimeTickResponse{
		ResponseBase: gateway.ResponseBase{ID: requestID},
		Symbol:       symbol,
		Price:        price,
		Size:         size,
		Time:         time.Now(),
	})
}

// CancelHistoricalData is a no-op: the sim series already terminated.
func (c *Client) CancelHistoricalData(_ int64) error { return nil }

// CancelRealtimeData stops the simulated subscription.
func (c *Client) CancelRealtimeData(_ int64) error { return nil }

// PlaceOrder fills market orders immediately at the configured price, in
// full. Limit and stop orders rest until FillOrder is called.
func (c *Client) PlaceOrder(req *gateway.PlaceOrderRequest) error {
	if !c.connected.Load() {
		return errors.New(errors.ErrCodeNotConnected, "sim gateway not connected")
	}

	c.placedOrders.Add(1)

	if req.OrderType != "MARKET" {
		return nil
	}

	c.mu.Lock()
	price, ok := c.prices[req.Symbol]
	c.mu.Unlock()

	if !ok {
		price = req.Price
	}

	c.push(&gateway.ExecutionResponse{
		OrderID:      req.OrderID,
		FillQuantity: req.Quantity,
		FillPrice:    price,
		Time:         time.Now(),
	})

	return nil
}

// FillOrder emits an execution for a resting order.
func (c *Client) FillOrder(orderID int64, quantity, price float64) {
	c.push(&gateway.ExecutionResponse{
		OrderID:      orderID,
		FillQuantity: quantity,
		FillPrice:    price,
		Time:         time.Now(),
	})
}

// CancelOrder confirms the cancel immediately with an authoritative order
// status message.
func (c *Client) CancelOrder(orderID int64) error {
	if !c.connected.Load() {
		return errors.New(errors.ErrCodeNotConnected, "sim gateway not connected")
	}

	c.cancelledOrders.Add(1)

	c.push(&gateway.OrderStatusResponse{
		OrderID: orderID,
		Status:  "CANCELLED",
		Reason:  "cancelled by request",
	})

	return nil
}

// RejectOrder emits an authoritative rejection for a working order.
func (c *Client) RejectOrder(orderID int64, reason string) {
	c.push(&gateway.OrderStatusResponse{
		OrderID: orderID,
		Status:  "REJECTED",
		Reason:  reason,
	})
}
