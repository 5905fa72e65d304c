package session

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
)

type RegistryTestSuite struct {
	suite.Suite
	registry *CorrelationRegistry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.registry = NewCorrelationRegistry()
}

func (s *RegistryTestSuite) TestRequestIDsIncrease() {
	first := s.registry.NextRequestID()
	second := s.registry.NextRequestID()
	s.Greater(second, first)
}

func (s *RegistryTestSuite) TestRequestIDsSurviveClear() {
	before := s.registry.NextRequestID()
	s.registry.Clear()
	after := s.registry.NextRequestID()
	s.Greater(after, before)
}

func (s *RegistryTestSuite) TestGetKeepsEntry() {
	id := s.registry.NextRequestID()
	s.registry.Put(id, func(gateway.Response) {})

	_, ok := s.registry.Get(id)
	s.True(ok)

	// Streaming requests look the callback up once per message.
	_, ok = s.registry.Get(id)
	s.True(ok)
	s.Equal(1, s.registry.Len())
}

func (s *RegistryTestSuite) TestRemoveIsIdempotent() {
	id := s.registry.NextRequestID()
	s.registry.Put(id, func(gateway.Response) {})

	s.True(s.registry.Remove(id))
	s.False(s.registry.Remove(id))

	_, ok := s.registry.Get(id)
	s.False(ok)
}

func (s *RegistryTestSuite) TestClearReportsDropped() {
	for i := 0; i < 3; i++ {
		s.registry.Put(s.registry.NextRequestID(), func(gateway.Response) {})
	}

	s.Equal(3, s.registry.Clear())
	s.Equal(0, s.registry.Len())
	s.Equal(0, s.registry.Clear())
}
