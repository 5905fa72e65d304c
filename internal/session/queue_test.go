package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/CasinoHe/quanttrader-sub001/pkg/errors"
)

type QueueTestSuite struct {
	suite.Suite
	queue *Queue[int]
}

func TestQueueSuite(t *testing.T) {
	suite.Run(t, new(QueueTestSuite))
}

func (s *QueueTestSuite) SetupTest() {
	s.queue = NewQueue[int](2)
}

func (s *QueueTestSuite) TestPushPop() {
	s.Require().NoError(s.queue.Push(1))
	s.Require().NoError(s.queue.Push(2))
	s.Equal(2, s.queue.Len())

	item, ok := s.queue.Pop(context.Background(), time.Second)
	s.True(ok)
	s.Equal(1, item)

	item, ok = s.queue.Pop(context.Background(), time.Second)
	s.True(ok)
	s.Equal(2, item)
}

func (s *QueueTestSuite) TestPushNeverBlocks() {
	s.Require().NoError(s.queue.Push(1))
	s.Require().NoError(s.queue.Push(2))

	err := s.queue.Push(3)
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeDispatchRejected))
}

func (s *QueueTestSuite) TestPopTimesOut() {
	start := time.Now()
	_, ok := s.queue.Pop(context.Background(), 20*time.Millisecond)
	s.False(ok)
	s.GreaterOrEqual(time.Since(start), 20*time.Millisecond)
}

func (s *QueueTestSuite) TestPopHonoursContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := s.queue.Pop(ctx, time.Minute)
	s.False(ok)
}

func (s *QueueTestSuite) TestPushAfterClose() {
	s.Require().NoError(s.queue.Push(1))
	s.queue.Close()

	err := s.queue.Push(2)
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeQueueClosed))

	// Already-enqueued items stay drainable.
	item, ok := s.queue.Pop(context.Background(), time.Second)
	s.True(ok)
	s.Equal(1, item)
}

func (s *QueueTestSuite) TestCloseIsIdempotent() {
	s.queue.Close()
	s.NotPanics(func() { s.queue.Close() })
}
