package broker

import (
	"github.com/moznion/go-optional"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
	"github.com/CasinoHe/quanttrader-sub001/internal/session"
	"github.com/CasinoHe/quanttrader-sub001/internal/types"
	"github.com/CasinoHe/quanttrader-sub001/pkg/errors"
)

var _ OrderTransport = (*SessionTransport)(nil)

// SessionTransport forwards orders through a live gateway session. Fills and
// cancel confirmations return asynchronously through the session's broadcast
// handlers, which the composition root wires back into the broker.
type SessionTransport struct {
	disp *session.Dispatcher

	// SecurityType, Exchange, and Currency default every order routed
	// through this transport. Stocks on SMART routing in USD unless told
	// otherwise.
	SecurityType string
	Exchange     string
	Currency     string
}

// NewSessionTransport creates a transport over the session's dispatcher.
func NewSessionTransport(disp *session.Dispatcher) *SessionTransport {
	return &SessionTransport{
		disp:         disp,
		SecurityType: "STK",
		Exchange:     "SMART",
		Currency:     "USD",
	}
}

// SubmitOrder dispatches the order to the gateway.
func (t *SessionTransport) SubmitOrder(order types.Order) error {
	requestID := t.disp.Dispatch(&gateway.PlaceOrderRequest{
		OrderID:      order.OrderID,
		Symbol:       order.Symbol,
		SecurityType: t.SecurityType,
		Exchange:     t.Exchange,
		Currency:     t.Currency,
		Side:         string(order.Side),
		OrderType:    string(order.Type),
		Quantity:     order.Quantity,
		Price:        order.Price,
		StopPrice:    order.StopPrice,
	}, optional.None[session.ResponseCallback]())
	if requestID == session.DispatchFailed {
		return errors.Newf(errors.ErrCodeDispatchRejected, "order %d not dispatched", order.OrderID)
	}

	return nil
}

// SubmitCancel dispatches a cancel for a working order.
func (t *SessionTransport) SubmitCancel(orderID int64) error {
	requestID := t.disp.Dispatch(&gateway.CancelOrderRequest{
		OrderID: orderID,
	}, optional.None[session.ResponseCallback]())
	if requestID == session.DispatchFailed {
		return errors.Newf(errors.ErrCodeDispatchRejected, "cancel for order %d not dispatched", orderID)
	}

	return nil
}
