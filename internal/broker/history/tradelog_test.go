package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/CasinoHe/quanttrader-sub001/internal/types"
)

type MemoryTradeLogTestSuite struct {
	suite.Suite
	log *MemoryTradeLog
}

func TestMemoryTradeLogSuite(t *testing.T) {
	suite.Run(t, new(MemoryTradeLogTestSuite))
}

func (s *MemoryTradeLogTestSuite) SetupTest() {
	s.log = NewMemoryTradeLog()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	symbols := []string{"AAPL", "TSLA", "AAPL", "MSFT", "AAPL"}

	for i, symbol := range symbols {
		s.Require().NoError(s.log.Append(types.Trade{
			ExecID:    fmt.Sprintf("exec-%d", i),
			OrderID:   int64(i + 1),
			Symbol:    symbol,
			Side:      types.OrderSideBuy,
			Quantity:  10,
			Price:     100,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}
}

func (s *MemoryTradeLogTestSuite) TestQueryAll() {
	trades, err := s.log.Query(types.TradeFilter{})
	s.Require().NoError(err)
	s.Len(trades, 5)
}

func (s *MemoryTradeLogTestSuite) TestQueryBySymbol() {
	trades, err := s.log.Query(types.TradeFilter{Symbol: "AAPL"})
	s.Require().NoError(err)
	s.Len(trades, 3)
}

func (s *MemoryTradeLogTestSuite) TestQueryByTimeRange() {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	trades, err := s.log.Query(types.TradeFilter{
		StartTime: base.Add(time.Hour),
		EndTime:   base.Add(3 * time.Hour),
	})
	s.Require().NoError(err)
	s.Len(trades, 3)
}

func (s *MemoryTradeLogTestSuite) TestQueryLimit() {
	trades, err := s.log.Query(types.TradeFilter{Limit: 2})
	s.Require().NoError(err)
	s.Len(trades, 2)
	s.Equal("exec-0", trades[0].ExecID)
}

func (s *MemoryTradeLogTestSuite) TestReset() {
	s.Require().NoError(s.log.Reset())

	trades, err := s.log.Query(types.TradeFilter{})
	s.Require().NoError(err)
	s.Empty(trades)
}
