package types

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/CasinoHe/quanttrader-sub001/pkg/errors"
)

type OrderSide string

type OrderType string

type OrderStatus string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

const (
	OrderTypeMarket    OrderType = "MARKET"
	OrderTypeLimit     OrderType = "LIMIT"
	OrderTypeStop      OrderType = "STOP"
	OrderTypeStopLimit OrderType = "STOP_LIMIT"
)

const (
	OrderStatusPending         OrderStatus = "PENDING"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusRejected        OrderStatus = "REJECTED"
)

// IsOpen reports whether an order in this status can still receive fills,
// be cancelled, or be modified.
func (s OrderStatus) IsOpen() bool {
	return s == OrderStatusPending || s == OrderStatusPartiallyFilled
}

// IsTerminal reports whether the status is final. Terminal orders never
// change status again.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFilled || s == OrderStatusCancelled || s == OrderStatusRejected
}

// CanTransitionTo reports whether the order status state machine allows
// moving from s to next. Statuses only move forward:
//
//	PENDING -> PARTIALLY_FILLED -> FILLED
//	PENDING -> FILLED | CANCELLED | REJECTED
//	PARTIALLY_FILLED -> FILLED | CANCELLED
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPartiallyFilled || next == OrderStatusFilled ||
			next == OrderStatusCancelled || next == OrderStatusRejected
	case OrderStatusPartiallyFilled:
		return next == OrderStatusPartiallyFilled || next == OrderStatusFilled ||
			next == OrderStatusCancelled
	default:
		return false
	}
}

// Order is a single order record owned by the ledger. Orders are created by
// PlaceOrder and mutated only by fill, cancel, and reject events. They are
// never deleted; terminal orders are kept for audit and history queries.
type Order struct {
	OrderID  int64     `yaml:"order_id" json:"order_id"`
	Symbol   string    `yaml:"symbol" json:"symbol" validate:"required"`
	Side     OrderSide `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	Type     OrderType `yaml:"type" json:"type" validate:"required,oneof=MARKET LIMIT STOP STOP_LIMIT"`
	Quantity float64   `yaml:"quantity" json:"quantity" validate:"required,gt=0"`
	// Price is the limit price. Zero means unpriced (market orders).
	Price float64 `yaml:"price" json:"price" validate:"gte=0"`
	// StopPrice is the trigger price for STOP and STOP_LIMIT orders.
	StopPrice         float64     `yaml:"stop_price" json:"stop_price" validate:"gte=0"`
	FilledQuantity    float64     `yaml:"filled_quantity" json:"filled_quantity"`
	RemainingQuantity float64     `yaml:"remaining_quantity" json:"remaining_quantity"`
	Status            OrderStatus `yaml:"status" json:"status"`
	// ErrorMessage carries the rejection reason for REJECTED orders.
	ErrorMessage string    `yaml:"error_message" json:"error_message"`
	Timestamp    time.Time `yaml:"timestamp" json:"timestamp"`
}

// Validate validates the Order struct.
func (o *Order) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid order", err)
	}

	return nil
}
