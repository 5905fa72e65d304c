package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
	"github.com/CasinoHe/quanttrader-sub001/internal/gateway/sim"
	"github.com/CasinoHe/quanttrader-sub001/internal/logger"
)

type RouterTestSuite struct {
	suite.Suite
	sup *Supervisor
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	client := sim.NewClient(logger.NewNopLogger())
	s.sup = NewSupervisor(client, testSettings(), nil, logger.NewNopLogger())
}

func (s *RouterTestSuite) TestUnmatchedResponseDropped() {
	s.NotPanics(func() {
		s.sup.route(&gateway.HistoricalBarResponse{
			ResponseBase: gateway.ResponseBase{ID: 999},
		})
	})
}

func (s *RouterTestSuite) TestErrorAlwaysBroadcast() {
	// Register a correlation the error's id points at; it must not fire.
	var correlated, broadcast bool

	id := s.sup.registry.NextRequestID()
	s.sup.registry.Put(id, func(gateway.Response) { correlated = true })
	s.sup.SetErrorHandler(func(*gateway.ErrorResponse) { broadcast = true })

	s.sup.route(&gateway.ErrorResponse{
		ResponseBase: gateway.ResponseBase{ID: id},
		Code:         1100,
		Message:      "connectivity lost",
	})

	s.True(broadcast)
	s.False(correlated)
}

func (s *RouterTestSuite) TestErrorWithoutHandlerIsLogged() {
	s.NotPanics(func() {
		s.sup.route(&gateway.ErrorResponse{Code: 502, Message: "no handler"})
	})
}

func (s *RouterTestSuite) TestCurrentTimeConsumedSilently() {
	now := time.Now()
	s.sup.route(&gateway.CurrentTimeResponse{Time: now})

	s.Equal(now.UnixNano(), s.sup.LastServerTime().UnixNano())
	s.Equal(0, s.sup.registry.Len())
}

func (s *RouterTestSuite) TestCorrelatedResponseDelivered() {
	var got gateway.Response

	id := s.sup.registry.NextRequestID()
	s.sup.registry.Put(id, func(response gateway.Response) { got = response })

	tick := &gateway.RealtimeTickResponse{
		ResponseBase: gateway.ResponseBase{ID: id},
		Symbol:       "AAPL",
		Price:        187.5,
	}
	s.sup.route(tick)

	s.Equal(tick, got)

	// Entry survives delivery for the next tick.
	_, ok := s.sup.registry.Get(id)
	s.True(ok)
}

func (s *RouterTestSuite) TestLastRegisteredHandlerWins() {
	var first, second bool

	s.sup.SetExecutionHandler(func(*gateway.ExecutionResponse) { first = true })
	s.sup.SetExecutionHandler(func(*gateway.ExecutionResponse) { second = true })

	s.sup.route(&gateway.ExecutionResponse{OrderID: 1, FillQuantity: 5, FillPrice: 10})

	s.False(first)
	s.True(second)
}
