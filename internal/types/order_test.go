package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/CasinoHe/quanttrader-sub001/pkg/errors"
)

type OrderTestSuite struct {
	suite.Suite
}

func TestOrderSuite(t *testing.T) {
	suite.Run(t, new(OrderTestSuite))
}

func (suite *OrderTestSuite) TestValidateValidOrder() {
	order := Order{
		OrderID:           1,
		Symbol:            "AAPL",
		Side:              OrderSideBuy,
		Type:              OrderTypeLimit,
		Quantity:          100,
		Price:             150.5,
		RemainingQuantity: 100,
		Status:            OrderStatusPending,
		Timestamp:         time.Now(),
	}

	suite.NoError(order.Validate())
}

func (suite *OrderTestSuite) TestValidateMissingSymbol() {
	order := Order{
		OrderID:  1,
		Side:     OrderSideBuy,
		Type:     OrderTypeMarket,
		Quantity: 100,
	}

	err := order.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidOrder))
}

func (suite *OrderTestSuite) TestValidateBadSide() {
	order := Order{
		OrderID:  1,
		Symbol:   "AAPL",
		Side:     OrderSide("HOLD"),
		Type:     OrderTypeMarket,
		Quantity: 100,
	}

	suite.Error(order.Validate())
}

func (suite *OrderTestSuite) TestStatusTransitionsForward() {
	suite.True(OrderStatusPending.CanTransitionTo(OrderStatusPartiallyFilled))
	suite.True(OrderStatusPending.CanTransitionTo(OrderStatusFilled))
	suite.True(OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	suite.True(OrderStatusPending.CanTransitionTo(OrderStatusRejected))
	suite.True(OrderStatusPartiallyFilled.CanTransitionTo(OrderStatusFilled))
	suite.True(OrderStatusPartiallyFilled.CanTransitionTo(OrderStatusPartiallyFilled))
	suite.True(OrderStatusPartiallyFilled.CanTransitionTo(OrderStatusCancelled))
}

func (suite *OrderTestSuite) TestStatusTransitionsNeverBackward() {
	terminal := []OrderStatus{OrderStatusFilled, OrderStatusCancelled, OrderStatusRejected}
	all := []OrderStatus{
		OrderStatusPending, OrderStatusPartiallyFilled, OrderStatusFilled,
		OrderStatusCancelled, OrderStatusRejected,
	}

	for _, from := range terminal {
		for _, to := range all {
			suite.False(from.CanTransitionTo(to), "terminal status %s must not transition to %s", from, to)
		}
	}

	suite.False(OrderStatusPartiallyFilled.CanTransitionTo(OrderStatusPending))
	suite.False(OrderStatusPartiallyFilled.CanTransitionTo(OrderStatusRejected))
}

func (suite *OrderTestSuite) TestIsOpen() {
	suite.True(OrderStatusPending.IsOpen())
	suite.True(OrderStatusPartiallyFilled.IsOpen())
	suite.False(OrderStatusFilled.IsOpen())
	suite.False(OrderStatusCancelled.IsOpen())
	suite.False(OrderStatusRejected.IsOpen())
}

func (suite *OrderTestSuite) TestTradeFilterMatches() {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	trade := Trade{Symbol: "AAPL", Timestamp: base}

	filter := TradeFilter{}
	suite.True(filter.Matches(trade))

	filter = TradeFilter{Symbol: "MSFT"}
	suite.False(filter.Matches(trade))

	filter = TradeFilter{StartTime: base.Add(time.Minute)}
	suite.False(filter.Matches(trade))

	filter = TradeFilter{EndTime: base.Add(-time.Minute)}
	suite.False(filter.Matches(trade))

	filter = TradeFilter{
		Symbol:    "AAPL",
		StartTime: base.Add(-time.Hour),
		EndTime:   base.Add(time.Hour),
	}
	suite.True(filter.Matches(trade))
}
