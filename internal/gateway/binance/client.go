// Package binancegw adapts the Binance REST and websocket APIs to the
// gateway client interface. Order ids map through the client order id field,
// so venue events come back tagged with the ledger's own order numbers.
package binancegw

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adshao/go-binance/v2"
	"go.uber.org/zap"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
	"github.com/CasinoHe/quanttrader-sub001/internal/logger"
	"github.com/CasinoHe/quanttrader-sub001/pkg/errors"
)

// clientOrderPrefix tags orders placed by this process so user-stream events
// for foreign orders are ignored.
const clientOrderPrefix = "qt-"

// Service interfaces for mocking the Binance API

// PingService interface for connectivity checks.
type PingService interface {
	Do(ctx context.Context) error
}

// ServerTimeService interface for the venue clock.
type ServerTimeService interface {
	Do(ctx context.Context) (int64, error)
}

// KlinesService interface for historical candles.
type KlinesService interface {
	Symbol(symbol string) KlinesService
	Interval(interval string) KlinesService
	Limit(limit int) KlinesService
	Do(ctx context.Context) ([]*binance.Kline, error)
}

// CreateOrderService interface for creating orders.
type CreateOrderService interface {
	Symbol(symbol string) CreateOrderService
	Side(side binance.SideType) CreateOrderService
	Type(orderType binance.OrderType) CreateOrderService
	Quantity(quantity string) CreateOrderService
	Price(price string) CreateOrderService
	TimeInForce(tif binance.TimeInForceType) CreateOrderService
	NewClientOrderID(id string) CreateOrderService
	Do(ctx context.Context) (*binance.CreateOrderResponse, error)
}

// CancelOrderService interface for canceling orders.
type CancelOrderService interface {
	Symbol(symbol string) CancelOrderService
	OrigClientOrderID(id string) CancelOrderService
	Do(ctx context.Context) (*binance.CancelOrderResponse, error)
}

// StartUserStreamService interface for opening the user data stream.
type StartUserStreamService interface {
	Do(ctx context.Context) (string, error)
}

// BinanceAPI abstracts the Binance client for testing.
type BinanceAPI interface {
	NewPingService() PingService
	NewServerTimeService() ServerTimeService
	NewKlinesService() KlinesService
	NewCreateOrderService() CreateOrderService
	NewCancelOrderService() CancelOrderService
	NewStartUserStreamService() StartUserStreamService
}

// streamFunc opens a websocket stream and returns its done and stop channels.
type (
	aggTradeServeFunc func(symbol string, handler binance.WsAggTradeHandler, errHandler binance.ErrHandler) (chan struct{}, chan struct{}, error)
	userDataServeFunc func(listenKey string, handler binance.WsUserDataHandler, errHandler binance.ErrHandler) (chan struct{}, chan struct{}, error)
)

var _ gateway.Client = (*Client)(nil)

// Client is the Binance-backed gateway client.
type Client struct {
	api BinanceAPI
	log *logger.Logger

	aggTradeServe aggTradeServeFunc
	userDataServe userDataServeFunc

	connected atomic.Bool

	mu           sync.Mutex
	queue        gateway.ResponseQueue
	orderSymbols map[int64]string
	streams      map[int64]chan struct{}
	userStop     chan struct{}
	userDone     chan struct{}
}

// NewClient creates a Binance gateway client. Testnet selection follows the
// package-level binance.UseTestnet flag, as the upstream SDK does.
func NewClient(apiKey, secretKey string, log *logger.Logger) *Client {
	return newClientWithAPI(&realBinanceAPI{client: binance.NewClient(apiKey, secretKey)}, log)
}

func newClientWithAPI(api BinanceAPI, log *logger.Logger) *Client {
	return &Client{
		api:           api,
		log:           log,
		aggTradeServe: binance.WsAggTradeServe,
		userDataServe: binance.WsUserDataServe,
		orderSymbols:  make(map[int64]string),
		streams:       make(map[int64]chan struct{}),
	}
}

// SetResponseQueue installs the queue decoded events are delivered into.
func (c *Client) SetResponseQueue(queue gateway.ResponseQueue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue = queue
}

// Connect pings the venue and opens the user data stream that carries order
// executions and status changes.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.api.NewPingService().Do(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeConnectFailed, "binance ping failed", err)
	}

	listenKey, err := c.api.NewStartUserStreamService().Do(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConnectFailed, "cannot open user data stream", err)
	}

	doneC, stopC, err := c.userDataServe(listenKey, c.handleUserData, func(err error) {
		c.log.Error("user data stream error", zap.Error(err))
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeConnectFailed, "cannot serve user data stream", err)
	}

	c.mu.Lock()
	c.userDone = doneC
	c.userStop = stopC
	c.mu.Unlock()

	c.connected.Store(true)
	c.log.Info("connected to binance")

	return nil
}

// Disconnect closes the user data stream and every open market data stream.
func (c *Client) Disconnect() {
	c.connected.Store(false)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.userStop != nil {
		close(c.userStop)
		c.userStop = nil
		c.userDone = nil
	}

	for id, stop := range c.streams {
		close(stop)
		delete(c.streams, id)
	}
}

// IsConnected reports the connection state.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// ProcessMessages blocks while the user data stream is live. The websocket
// handlers push decoded events to the response queue directly, so this loop
// only watches the stream's lifetime.
func (c *Client) ProcessMessages(ctx context.Context) error {
	c.mu.Lock()
	done := c.userDone
	c.mu.Unlock()

	if done == nil {
		return errors.New(errors.ErrCodeNotConnected, "binance user data stream not open")
	}

	select {
	case <-ctx.Done():
		return nil
	case <-done:
		c.connected.Store(false)

		return errors.New(errors.ErrCodeTransportFailed, "binance user data stream closed")
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
		c.log.Warn("binance gateway dropped response", zap.Error(err))
	}
}

// handleUserData translates execution reports into ledger events. Events for
// orders this process did not place are dropped.
func (c *Client) handleUserData(event *binance.WsUserDataEvent) {
	if event.Event != binance.UserDataEventTypeExecutionReport {
		return
	}

	update := event.OrderUpdate

	orderID, ok := parseClientOrderID(update.ClientOrderId)
	if !ok {
		return
	}

	eventTime := time.UnixMilli(update.TransactionTime)

	switch update.Status {
	case string(binance.OrderStatusTypePartiallyFilled), string(binance.OrderStatusTypeFilled):
		quantity, qErr := strconv.ParseFloat(update.LatestVolume, 64)
		price, pErr := strconv.ParseFloat(update.LatestPrice, 64)

		if qErr != nil || pErr != nil {
			c.log.Error("unparseable execution report",
				zap.Int64("order_id", orderID),
				zap.String("quantity", update.LatestVolume),
				zap.String("price", update.LatestPrice),
			)

			return
		}

		c.push(&gateway.ExecutionResponse{
			OrderID:      orderID,
			FillQuantity: quantity,
			FillPrice:    price,
			Time:         eventTime,
		})
	case string(binance.OrderStatusTypeCanceled):
		c.push(&gateway.OrderStatusResponse{
			OrderID: orderID,
			Status:  "CANCELLED",
		})
	case string(binance.OrderStatusTypeRejected), string(binance.OrderStatusTypeExpired):
		c.push(&gateway.OrderStatusResponse{
			OrderID: orderID,
			Status:  "REJECTED",
			Reason:  update.Status,
		})
	}
}

// RequestCurrentTime asks for the venue clock.
func (c *Client) RequestCurrentTime(requestID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	millis, err := c.api.NewServerTimeService().Do(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransportFailed, "server time request failed", err)
	}

	c.push(&gateway.CurrentTimeResponse{
		ResponseBase: gateway.ResponseBase{ID: requestID},
		Time:         time.UnixMilli(millis),
	})

	return nil
}

// RequestHistoricalData fetches candles and replays them as a bar series
// ending with a terminal marker. BarSize maps directly onto Binance kline
// intervals (1m, 5m, 1h, 1d, ...).
func (c *Client) RequestHistoricalData(req *gateway.HistoricalDataRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	klines, err := c.api.NewKlinesService().
		Symbol(req.Symbol).
		Interval(req.BarSize).
		Limit(500).
		Do(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransportFailed, "klines request failed", err)
	}

	for _, kline := range klines {
		bar, err := klineToBar(req.RequestID(), kline)
		if err != nil {
			c.log.Error("unparseable kline", zap.String("symbol", req.Symbol), zap.Error(err))

			continue
		}

		c.push(bar)
	}

	c.push(&gateway.HistoricalBarResponse{
		ResponseBase: gateway.ResponseBase{ID: req.RequestID()},
		IsLast:       true,
	})

	return nil
}

// RequestRealtimeData opens an aggregate trade stream for the symbol.
func (c *Client) RequestRealtimeData(req *gateway.RealtimeDataRequest) error {
	requestID := req.RequestID()
	symbol := req.Symbol

	_, stopC, err := c.aggTradeServe(symbol, func(event *binance.WsAggTradeEvent) {
		price, pErr := strconv.ParseFloat(event.Price, 64)
		quantity, qErr := strconv.ParseFloat(event.Quantity, 64)

		if pErr != nil || qErr != nil {
			return
		}

		c.push(&gateway.RealtimeTickResponse{
			ResponseBase: gateway.ResponseBase{ID: requestID},
			Symbol:       symbol,
			Price:        price,
			Size:         quantity,
			Time:         time.UnixMilli(event.TradeTime),
		})
	}, func(err error) {
		c.log.Error("agg trade stream error", zap.String("symbol", symbol), zap.Error(err))
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransportFailed, "cannot open agg trade stream", err)
	}

	c.mu.Lock()
	c.streams[requestID] = stopC
	c.mu.Unlock()

	return nil
}

// CancelHistoricalData is a no-op: historical series complete synchronously.
func (c *Client) CancelHistoricalData(_ int64) error { return nil }

// CancelRealtimeData closes the stream opened under the request id.
func (c *Client) CancelRealtimeData(requestID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stop, ok := c.streams[requestID]
	if !ok {
		return nil
	}

	close(stop)
	delete(c.streams, requestID)

	return nil
}

// PlaceOrder forwards the order, tagged with the ledger order id.
func (c *Client) PlaceOrder(req *gateway.PlaceOrderRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	service := c.api.NewCreateOrderService().
		Symbol(req.Symbol).
		Side(binance.SideType(req.Side)).
		Quantity(strconv.FormatFloat(req.Quantity, 'f', -1, 64)).
		NewClientOrderID(formatClientOrderID(req.OrderID))

	switch req.OrderType {
	case "LIMIT":
		service = service.
			Type(binance.OrderTypeLimit).
			Price(strconv.FormatFloat(req.Price, 'f', -1, 64)).
			TimeInForce(binance.TimeInForceTypeGTC)
	default:
		service = service.Type(binance.OrderTypeMarket)
	}

	if _, err := service.Do(ctx); err != nil {
		return errors.Wrapf(errors.ErrCodeTransportFailed, err, "order %d not accepted", req.OrderID)
	}

	c.mu.Lock()
	c.orderSymbols[req.OrderID] = req.Symbol
	c.mu.Unlock()

	return nil
}

// CancelOrder cancels by the tagged client order id. Binance requires the
// symbol, remembered from the original placement.
func (c *Client) CancelOrder(orderID int64) error {
	c.mu.Lock()
	symbol, ok := c.orderSymbols[orderID]
	c.mu.Unlock()

	if !ok {
		return errors.Newf(errors.ErrCodeOrderNotFound, "order %d was not placed through this session", orderID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := c.api.NewCancelOrderService().
		Symbol(symbol).
		OrigClientOrderID(formatClientOrderID(orderID)).
		Do(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeTransportFailed, err, "cancel for order %d failed", orderID)
	}

	return nil
}

func formatClientOrderID(orderID int64) string {
	return fmt.Sprintf("%s%d", clientOrderPrefix, orderID)
}

func parseClientOrderID(clientOrderID string) (int64, bool) {
	if len(clientOrderID) <= len(clientOrderPrefix) || clientOrderID[:len(clientOrderPrefix)] != clientOrderPrefix {
		return 0, false
	}

	orderID, err := strconv.ParseInt(clientOrderID[len(clientOrderPrefix):], 10, 64)
	if err != nil {
		return 0, false
	}

	return orderID, true
}

func klineToBar(requestID int64, kline *binance.Kline) (*gateway.HistoricalBarResponse, error) {
	open, err := strconv.ParseFloat(kline.Open, 64)
	if err != nil {
		return nil, err
	}

	high, err := strconv.ParseFloat(kline.High, 64)
	if err != nil {
		return nil, err
	}

	low, err := strconv.ParseFloat(kline.Low, 64)
	if err != nil {
		return nil, err
	}

	closePrice, err := strconv.ParseFloat(kline.Close, 64)
	if err != nil {
		return nil, err
	}

	volume, err := strconv.ParseFloat(kline.Volume, 64)
	if err != nil {
		return nil, err
	}

	return &gateway.HistoricalBarResponse{
		ResponseBase: gateway.ResponseBase{ID: requestID},
		BarTime:      time.UnixMilli(kline.OpenTime),
		Open:         open,
		High:         high,
		Low:          low,
		Close:        closePrice,
		Volume:       volume,
		Count:        int(kline.TradeNum),
	}, nil
}
