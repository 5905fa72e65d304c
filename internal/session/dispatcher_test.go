package session

import (
	"context"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
	"github.com/CasinoHe/quanttrader-sub001/internal/logger"
)

type DispatcherTestSuite struct {
	suite.Suite
	registry *CorrelationRegistry
	outbound *Queue[gateway.Request]
	disp     *Dispatcher
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) SetupTest() {
	s.registry = NewCorrelationRegistry()
	s.outbound = NewQueue[gateway.Request](4)
	s.disp = NewDispatcher(s.registry, s.outbound, logger.NewNopLogger())
}

func (s *DispatcherTestSuite) TestDispatchAssignsIDAndEnqueues() {
	req := &gateway.CurrentTimeRequest{}

	id := s.disp.Dispatch(req, optional.None[ResponseCallback]())
	s.NotEqual(DispatchFailed, id)
	s.Equal(id, req.RequestID())

	queued, ok := s.outbound.Pop(context.Background(), time.Second)
	s.True(ok)
	s.Equal(id, queued.RequestID())
}

func (s *DispatcherTestSuite) TestDispatchRegistersCallback() {
	called := false
	id := s.disp.Dispatch(&gateway.RealtimeDataRequest{Symbol: "AAPL"},
		optional.Some[ResponseCallback](func(gateway.Response) { called = true }))
	s.NotEqual(DispatchFailed, id)

	callback, ok := s.registry.Get(id)
	s.Require().True(ok)
	callback(&gateway.RealtimeTickResponse{})
	s.True(called)
}

func (s *DispatcherTestSuite) TestDispatchWithoutCallbackRegistersNothing() {
	id := s.disp.Dispatch(&gateway.CurrentTimeRequest{}, optional.None[ResponseCallback]())
	s.NotEqual(DispatchFailed, id)
	s.Equal(0, s.registry.Len())
}

func (s *DispatcherTestSuite) TestDispatchFailureRemovesCallback() {
	s.outbound.Close()

	id := s.disp.Dispatch(&gateway.RealtimeDataRequest{Symbol: "AAPL"},
		optional.Some[ResponseCallback](func(gateway.Response) {}))
	s.Equal(DispatchFailed, id)
	s.Equal(0, s.registry.Len())
}

func (s *DispatcherTestSuite) TestDispatchUpdatesLastActivity() {
	before := s.disp.LastActivity()
	time.Sleep(5 * time.Millisecond)

	s.disp.Dispatch(&gateway.CurrentTimeRequest{}, optional.None[ResponseCallback]())
	s.True(s.disp.LastActivity().After(before))
}
