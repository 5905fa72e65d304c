// Package broker implements the local order, position, and account ledger.
// It mirrors the venue's view of the account: orders move through a forward
// state machine driven by authoritative gateway events, fills drive the
// accountant, and every fill lands in the trade log.
package broker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/CasinoHe/quanttrader-sub001/internal/broker/history"
	"github.com/CasinoHe/quanttrader-sub001/internal/logger"
	"github.com/CasinoHe/quanttrader-sub001/internal/types"
	"github.com/CasinoHe/quanttrader-sub001/pkg/errors"
)

// OrderTransport forwards accepted orders to the venue. A nil transport puts
// the broker in simulation mode: market orders fill immediately at the last
// known price and cancels confirm locally.
type OrderTransport interface {
	SubmitOrder(order types.Order) error
	SubmitCancel(orderID int64) error
}

// Callbacks a caller can register on the broker. Each invocation happens
// outside the broker's lock; last registration wins.
type (
	OrderCallback    func(order types.Order)
	TradeCallback    func(trade types.Trade)
	PositionCallback func(position types.Position)
	AccountCallback  func(account types.AccountInfo)
)

// Broker is the ledger. All state mutations run under one mutex; no network
// or disk I/O happens while it is held.
type Broker struct {
	log       *logger.Logger
	transport OrderTransport
	tradeLog  history.TradeLog

	mu         sync.Mutex
	accountant *Accountant
	orders     map[int64]*types.Order

	nextOrderID atomic.Int64

	callbackMu       sync.RWMutex
	orderCallback    OrderCallback
	tradeCallback    TradeCallback
	positionCallback PositionCallback
	accountCallback  AccountCallback
}

// NewBroker creates a ledger funded with startingCash. Pass a nil transport
// for simulation mode.
func NewBroker(startingCash float64, transport OrderTransport, tradeLog history.TradeLog, log *logger.Logger) *Broker {
	if tradeLog == nil {
		tradeLog = history.NewMemoryTradeLog()
	}

	return &Broker{
		log:        log,
		transport:  transport,
		tradeLog:   tradeLog,
		accountant: NewAccountant(startingCash),
		orders:     make(map[int64]*types.Order),
	}
}

// SetOrderCallback registers the order status change callback.
func (b *Broker) SetOrderCallback(callback OrderCallback) {
	b.callbackMu.Lock()
	defer b.callbackMu.Unlock()

	b.orderCallback = callback
}

// SetTradeCallback registers the fill callback.
func (b *Broker) SetTradeCallback(callback TradeCallback) {
	b.callbackMu.Lock()
	defer b.callbackMu.Unlock()

	b.tradeCallback = callback
}

// SetPositionCallback registers the position update callback.
func (b *Broker) SetPositionCallback(callback PositionCallback) {
	b.callbackMu.Lock()
	defer b.callbackMu.Unlock()

	b.positionCallback = callback
}

// SetAccountCallback registers the account update callback.
func (b *Broker) SetAccountCallback(callback AccountCallback) {
	b.callbackMu.Lock()
	defer b.callbackMu.Unlock()

	b.accountCallback = callback
}

// PlaceOrder validates and records an order, then forwards it to the venue
// (or fills it locally in simulation mode). The order id is returned even
// when the order is rejected for insufficient cash: the rejection is a
// recorded, queryable outcome, not a refusal to book the order.
func (b *Broker) PlaceOrder(order types.Order) (int64, error) {
	if err := b.validateOrder(&order); err != nil {
		return 0, err
	}

	orderID := b.nextOrderID.Add(1)

	order.OrderID = orderID
	order.Status = types.OrderStatusPending
	order.FilledQuantity = 0
	order.RemainingQuantity = order.Quantity

	if order.Timestamp.IsZero() {
		order.Timestamp = time.Now()
	}

	b.mu.Lock()

	refPrice, priceKnown := b.referencePriceLocked(&order)

	var priceErr error

	switch {
	case !priceKnown && b.transport == nil && order.Type == types.OrderTypeMarket:
		// Only the simulated fill needs a price; with a live transport the
		// venue prices the order itself.
		priceErr = errors.Newf(errors.ErrCodeNoPriceForSymbol, "no price recorded for %s", order.Symbol)
	case order.Side == types.OrderSideBuy:
		if cost := order.Quantity * refPrice; cost > b.accountant.Cash() {
			priceErr = errors.Newf(errors.ErrCodeInsufficientCash,
				"order cost %.2f exceeds cash %.2f", cost, b.accountant.Cash())
		}
	}

	if priceErr != nil {
		order.Status = types.OrderStatusRejected
		order.ErrorMessage = priceErr.Error()
		order.RemainingQuantity = 0
		stored := order
		b.orders[orderID] = &stored
		b.mu.Unlock()

		b.log.Warn("order rejected",
			zap.Int64("order_id", orderID),
			zap.String("symbol", order.Symbol),
			zap.Error(priceErr),
		)
		b.notifyOrder(order)

		return orderID, priceErr
	}

	stored := order
	b.orders[orderID] = &stored
	b.mu.Unlock()

	b.log.Info("order placed",
		zap.Int64("order_id", orderID),
		zap.String("symbol", order.Symbol),
		zap.String("side", string(order.Side)),
		zap.String("type", string(order.Type)),
		zap.Float64("quantity", order.Quantity),
	)
	b.notifyOrder(order)

	if b.transport != nil {
		if err := b.transport.SubmitOrder(order); err != nil {
			// The venue never saw the order; reject it locally.
			rejectErr := b.ProcessOrderReject(orderID, err.Error())
			if rejectErr != nil {
				b.log.Error("cannot reject unsubmitted order", zap.Int64("order_id", orderID), zap.Error(rejectErr))
			}

			return orderID, errors.Wrap(errors.ErrCodeGatewayError, "order submission failed", err)
		}

		return orderID, nil
	}

	// Simulation: market orders fill in full at the reference price.
	if order.Type == types.OrderTypeMarket {
		if err := b.ProcessOrderFill(orderID, order.Quantity, refPrice, time.Now()); err != nil {
			return orderID, err
		}
	}

	return orderID, nil
}

// CancelOrder requests cancellation of a working order. With a live
// transport the order stays open until the venue confirms; in simulation the
// cancel confirms immediately.
func (b *Broker) CancelOrder(orderID int64) error {
	b.mu.Lock()

	order, ok := b.orders[orderID]
	if !ok {
		b.mu.Unlock()

		return errors.Newf(errors.ErrCodeOrderNotFound, "order %d not found", orderID)
	}

	if !order.Status.IsOpen() {
		status := order.Status
		b.mu.Unlock()

		return errors.Newf(errors.ErrCodeOrderNotOpen, "order %d is %s, not open", orderID, status)
	}

	b.mu.Unlock()

	if b.transport != nil {
		if err := b.transport.SubmitCancel(orderID); err != nil {
			return errors.Wrap(errors.ErrCodeGatewayError, "cancel submission failed", err)
		}

		return nil
	}

	return b.ProcessOrderCancel(orderID)
}

// ModifyOrder updates quantity and prices of a working order in place. The
// order keeps its id and its fills.
func (b *Broker) ModifyOrder(orderID int64, quantity, price, stopPrice float64) error {
	b.mu.Lock()

	order, ok := b.orders[orderID]
	if !ok {
		b.mu.Unlock()

		return errors.Newf(errors.ErrCodeOrderNotFound, "order %d not found", orderID)
	}

	if !order.Status.IsOpen() {
		status := order.Status
		b.mu.Unlock()

		return errors.Newf(errors.ErrCodeOrderNotOpen, "order %d is %s, not open", orderID, status)
	}

	if quantity <= order.FilledQuantity {
		filled := order.FilledQuantity
		b.mu.Unlock()

		return errors.Newf(errors.ErrCodeInvalidQuantity,
			"new quantity %.4f does not exceed filled quantity %.4f", quantity, filled)
	}

	order.Quantity = quantity
	order.RemainingQuantity = quantity - order.FilledQuantity
	order.Price = price
	order.StopPrice = stopPrice

	updated := *order
	b.mu.Unlock()

	b.log.Info("order modified",
		zap.Int64("order_id", orderID),
		zap.Float64("quantity", quantity),
		zap.Float64("price", price),
	)
	b.notifyOrder(updated)

	return nil
}

// GetOrder returns the order with the given id.
func (b *Broker) GetOrder(orderID int64) optional.Option[types.Order] {
	b.mu.Lock()
	defer b.mu.Unlock()

	order, ok := b.orders[orderID]
	if !ok {
		return optional.None[types.Order]()
	}

	return optional.Some(*order)
}

// GetOrders returns every order the ledger has seen, terminal ones included.
func (b *Broker) GetOrders() []types.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]types.Order, 0, len(b.orders))
	for _, order := range b.orders {
		out = append(out, *order)
	}

	return out
}

// GetOpenOrders returns orders that can still fill or be cancelled.
func (b *Broker) GetOpenOrders() []types.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]types.Order, 0)

	for _, order := range b.orders {
		if order.Status.IsOpen() {
			out = append(out, *order)
		}
	}

	return out
}

// ProcessOrderFill applies one authoritative fill event to the ledger. A
// fill larger than the order's remaining quantity is refused; the ledger
// never books more than was ordered.
func (b *Broker) ProcessOrderFill(orderID int64, quantity, price float64, at time.Time) error {
	if quantity <= 0 {
		return errors.Newf(errors.ErrCodeInvalidQuantity, "fill quantity %.4f must be positive", quantity)
	}

	b.mu.Lock()

	order, ok := b.orders[orderID]
	if !ok {
		b.mu.Unlock()

		return errors.Newf(errors.ErrCodeOrderNotFound, "fill for unknown order %d", orderID)
	}

	if !order.Status.IsOpen() {
		status := order.Status
		b.mu.Unlock()

		return errors.Newf(errors.ErrCodeOrderNotOpen, "fill for %s order %d", status, orderID)
	}

	const epsilon = 1e-9
	if quantity > order.RemainingQuantity+epsilon {
		remaining := order.RemainingQuantity
		b.mu.Unlock()

		return errors.Newf(errors.ErrCodeOverfill,
			"fill quantity %.4f exceeds remaining %.4f on order %d", quantity, remaining, orderID)
	}

	order.FilledQuantity += quantity
	order.RemainingQuantity -= quantity

	if order.RemainingQuantity <= epsilon {
		order.RemainingQuantity = 0
		order.Status = types.OrderStatusFilled
	} else {
		order.Status = types.OrderStatusPartiallyFilled
	}

	b.accountant.ApplyFill(order.Symbol, order.Side, quantity, price)

	trade := types.Trade{
		ExecID:    uuid.New().String(),
		OrderID:   orderID,
		Symbol:    order.Symbol,
		Side:      order.Side,
		Quantity:  quantity,
		Price:     price,
		Timestamp: at,
	}

	updated := *order
	position, _ := b.accountant.Position(order.Symbol)
	account := b.accountant.AccountInfo()

	b.mu.Unlock()

	if err := b.tradeLog.Append(trade); err != nil {
		b.log.Error("cannot append trade to history",
			zap.String("exec_id", trade.ExecID),
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
	}

	b.log.Info("order filled",
		zap.Int64("order_id", orderID),
		zap.String("symbol", trade.Symbol),
		zap.Float64("quantity", quantity),
		zap.Float64("price", price),
		zap.String("status", string(updated.Status)),
	)

	b.notifyOrder(updated)
	b.notifyTrade(trade)
	b.notifyPosition(position)
	b.notifyAccount(account)

	return nil
}

// ProcessOrderCancel applies an authoritative cancel confirmation.
func (b *Broker) ProcessOrderCancel(orderID int64) error {
	return b.terminate(orderID, types.OrderStatusCancelled, "")
}

// ProcessOrderReject applies an authoritative rejection with its reason.
func (b *Broker) ProcessOrderReject(orderID int64, reason string) error {
	return b.terminate(orderID, types.OrderStatusRejected, reason)
}

func (b *Broker) terminate(orderID int64, status types.OrderStatus, reason string) error {
	b.mu.Lock()

	order, ok := b.orders[orderID]
	if !ok {
		b.mu.Unlock()

		return errors.Newf(errors.ErrCodeOrderNotFound, "order %d not found", orderID)
	}

	if !order.Status.CanTransitionTo(status) {
		current := order.Status
		b.mu.Unlock()

		return errors.Newf(errors.ErrCodeInvalidState,
			"order %d cannot move from %s to %s", orderID, current, status)
	}

	order.Status = status
	order.RemainingQuantity = 0

	if reason != "" {
		order.ErrorMessage = reason
	}

	updated := *order
	b.mu.Unlock()

	b.log.Info("order closed",
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)),
		zap.String("reason", reason),
	)
	b.notifyOrder(updated)

	return nil
}

// GetPosition returns the position for a symbol. A symbol the account never
// traded reports a flat position.
func (b *Broker) GetPosition(symbol string) types.Position {
	b.mu.Lock()
	defer b.mu.Unlock()

	position, ok := b.accountant.Position(symbol)
	if !ok {
		return types.Position{Symbol: symbol}
	}

	return position
}

// GetAllPositions returns every non-flat position.
func (b *Broker) GetAllPositions() []types.Position {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.accountant.Positions()
}

// ClosePosition places a market order that flattens the symbol's position.
func (b *Broker) ClosePosition(symbol string) (int64, error) {
	b.mu.Lock()
	position, ok := b.accountant.Position(symbol)
	b.mu.Unlock()

	if !ok || position.Quantity == 0 {
		return 0, errors.Newf(errors.ErrCodeNoPositionToClose, "no open position in %s", symbol)
	}

	side := types.OrderSideSell
	quantity := position.Quantity

	if position.Quantity < 0 {
		side = types.OrderSideBuy
		quantity = -position.Quantity
	}

	return b.PlaceOrder(types.Order{
		Symbol:   symbol,
		Side:     side,
		Type:     types.OrderTypeMarket,
		Quantity: quantity,
	})
}

// GetTrades returns the full trade history in execution order.
func (b *Broker) GetTrades() ([]types.Trade, error) {
	return b.tradeLog.Query(types.TradeFilter{})
}

// GetTradesByDate returns trades executed within [start, end].
func (b *Broker) GetTradesByDate(start, end time.Time) ([]types.Trade, error) {
	return b.tradeLog.Query(types.TradeFilter{StartTime: start, EndTime: end})
}

// QueryTrades returns trades matching the filter.
func (b *Broker) QueryTrades(filter types.TradeFilter) ([]types.Trade, error) {
	return b.tradeLog.Query(filter)
}

// UpdateMarketPrices records the latest market prices and republishes the
// affected positions and the account snapshot.
func (b *Broker) UpdateMarketPrices(prices map[string]float64) {
	if len(prices) == 0 {
		return
	}

	b.mu.Lock()

	positions := make([]types.Position, 0, len(prices))

	for symbol, price := range prices {
		b.accountant.SetLastPrice(symbol, price)

		if position, ok := b.accountant.Position(symbol); ok && position.Quantity != 0 {
			positions = append(positions, position)
		}
	}

	account := b.accountant.AccountInfo()
	b.mu.Unlock()

	for _, position := range positions {
		b.notifyPosition(position)
	}

	b.notifyAccount(account)
}

// GetLastPrice returns the last recorded market price for a symbol.
func (b *Broker) GetLastPrice(symbol string) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	price, ok := b.accountant.LastPrice(symbol)
	if !ok {
		return 0, errors.Newf(errors.ErrCodeNoPriceForSymbol, "no price recorded for %s", symbol)
	}

	return price, nil
}

// GetAccountInfo returns the derived account snapshot.
func (b *Broker) GetAccountInfo() types.AccountInfo {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.accountant.AccountInfo()
}

// ResetAccount wipes orders, positions, and trade history, and refunds the
// account with startingCash. Open orders are discarded, not cancelled at the
// venue; reset is a simulation and maintenance operation.
func (b *Broker) ResetAccount(startingCash float64) error {
	b.mu.Lock()
	b.orders = make(map[int64]*types.Order)
	b.accountant.Reset(startingCash)
	account := b.accountant.AccountInfo()
	b.mu.Unlock()

	if err := b.tradeLog.Reset(); err != nil {
		return errors.Wrap(errors.ErrCodeHistoryStoreFailed, "cannot reset trade history", err)
	}

	b.log.Info("account reset", zap.Float64("starting_cash", startingCash))
	b.notifyAccount(account)

	return nil
}

// validateOrder enforces the per-type price requirements on top of struct
// validation.
func (b *Broker) validateOrder(order *types.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	switch order.Type {
	case types.OrderTypeLimit:
		if order.Price <= 0 {
			return errors.New(errors.ErrCodeInvalidPrice, "limit order requires a positive price")
		}
	case types.OrderTypeStop:
		if order.StopPrice <= 0 {
			return errors.New(errors.ErrCodeInvalidPrice, "stop order requires a positive stop price")
		}
	case types.OrderTypeStopLimit:
		if order.Price <= 0 || order.StopPrice <= 0 {
			return errors.New(errors.ErrCodeInvalidPrice, "stop-limit order requires positive prices")
		}
	}

	return nil
}

// referencePriceLocked returns the price used for cash checks and simulated
// fills: the order's own price when it carries one, else the last known
// market price. The second return reports whether any price was found;
// without one the reference price is zero.
func (b *Broker) referencePriceLocked(order *types.Order) (float64, bool) {
	if order.Price > 0 {
		return order.Price, true
	}

	return b.accountant.LastPrice(order.Symbol)
}

func (b *Broker) notifyOrder(order types.Order) {
	b.callbackMu.RLock()
	callback := b.orderCallback
	b.callbackMu.RUnlock()

	if callback != nil {
		callback(order)
	}
}

func (b *Broker) notifyTrade(trade types.Trade) {
	b.callbackMu.RLock()
	callback := b.tradeCallback
	b.callbackMu.RUnlock()

	if callback != nil {
		callback(trade)
	}
}

func (b *Broker) notifyPosition(position types.Position) {
	b.callbackMu.RLock()
	callback := b.positionCallback
	b.callbackMu.RUnlock()

	if callback != nil {
		callback(position)
	}
}

func (b *Broker) notifyAccount(account types.AccountInfo) {
	b.callbackMu.RLock()
	callback := b.accountCallback
	b.callbackMu.RUnlock()

	if callback != nil {
		callback(account)
	}
}
