package broker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/CasinoHe/quanttrader-sub001/internal/types"
)

type AccountantTestSuite struct {
	suite.Suite
	acct *Accountant
}

func TestAccountantSuite(t *testing.T) {
	suite.Run(t, new(AccountantTestSuite))
}

func (s *AccountantTestSuite) SetupTest() {
	s.acct = NewAccountant(100000)
}

func (s *AccountantTestSuite) TestOpenLong() {
	s.acct.ApplyFill("AAPL", types.OrderSideBuy, 100, 10)

	pos, ok := s.acct.Position("AAPL")
	s.Require().True(ok)
	s.InDelta(100, pos.Quantity, 1e-9)
	s.InDelta(10, pos.AvgPrice, 1e-9)
	s.InDelta(0, pos.RealizedPnL, 1e-9)
	s.InDelta(99000, s.acct.Cash(), 1e-9)
}

func (s *AccountantTestSuite) TestReduceLongRealizesProfit() {
	s.acct.ApplyFill("AAPL", types.OrderSideBuy, 100, 10)
	s.acct.ApplyFill("AAPL", types.OrderSideSell, 40, 12)

	pos, ok := s.acct.Position("AAPL")
	s.Require().True(ok)
	s.InDelta(60, pos.Quantity, 1e-9)
	s.InDelta(10, pos.AvgPrice, 1e-9)
	s.InDelta(80, pos.RealizedPnL, 1e-9)
	s.InDelta(99480, s.acct.Cash(), 1e-9)
}

func (s *AccountantTestSuite) TestExtendUsesWeightedAverage() {
	s.acct.ApplyFill("AAPL", types.OrderSideBuy, 10, 10)
	s.acct.ApplyFill("AAPL", types.OrderSideBuy, 10, 20)

	pos, ok := s.acct.Position("AAPL")
	s.Require().True(ok)
	s.InDelta(20, pos.Quantity, 1e-9)
	s.InDelta(15, pos.AvgPrice, 1e-9)
	s.InDelta(0, pos.RealizedPnL, 1e-9)
}

func (s *AccountantTestSuite) TestCloseToFlatResetsBasis() {
	s.acct.ApplyFill("AAPL", types.OrderSideBuy, 10, 10)
	s.acct.ApplyFill("AAPL", types.OrderSideSell, 10, 11)

	pos, ok := s.acct.Position("AAPL")
	s.Require().True(ok)
	s.True(pos.IsFlat())
	s.InDelta(0, pos.AvgPrice, 1e-9)
	s.InDelta(10, pos.RealizedPnL, 1e-9)
	s.InDelta(100010, s.acct.Cash(), 1e-9)
}

func (s *AccountantTestSuite) TestFlipThroughZero() {
	s.acct.ApplyFill("AAPL", types.OrderSideBuy, 50, 10)
	s.acct.ApplyFill("AAPL", types.OrderSideSell, 80, 9)

	pos, ok := s.acct.Position("AAPL")
	s.Require().True(ok)
	s.InDelta(-30, pos.Quantity, 1e-9)
	s.InDelta(9, pos.AvgPrice, 1e-9)
	// The whole long realizes at 9 against a 10 basis before the short opens.
	s.InDelta(-50, pos.RealizedPnL, 1e-9)
	s.True(pos.IsShort())
}

func (s *AccountantTestSuite) TestShortCoverRealizesProfit() {
	s.acct.ApplyFill("TSLA", types.OrderSideSell, 10, 10)
	s.acct.ApplyFill("TSLA", types.OrderSideBuy, 10, 8)

	pos, ok := s.acct.Position("TSLA")
	s.Require().True(ok)
	s.True(pos.IsFlat())
	s.InDelta(20, pos.RealizedPnL, 1e-9)
	s.InDelta(100020, s.acct.Cash(), 1e-9)
}

func (s *AccountantTestSuite) TestUnrealizedFollowsLastPrice() {
	s.acct.ApplyFill("AAPL", types.OrderSideBuy, 100, 10)
	s.acct.SetLastPrice("AAPL", 12)

	pos, ok := s.acct.Position("AAPL")
	s.Require().True(ok)
	s.InDelta(200, pos.UnrealizedPnL, 1e-9)

	account := s.acct.AccountInfo()
	s.InDelta(99000+1200, account.Equity, 1e-9)
	s.InDelta(200, account.UnrealizedPnL, 1e-9)
	s.InDelta(account.Cash, account.BuyingPower, 1e-9)
}

func (s *AccountantTestSuite) TestEquityMarksAtCostWithoutMarketData() {
	s.acct.ApplyFill("AAPL", types.OrderSideBuy, 100, 10)
	// The fill itself sets the last price; equity is flat to cash spent.
	account := s.acct.AccountInfo()
	s.InDelta(100000, account.Equity, 1e-9)
}

func (s *AccountantTestSuite) TestResetKeepsPrices() {
	s.acct.ApplyFill("AAPL", types.OrderSideBuy, 100, 10)
	s.acct.SetLastPrice("AAPL", 12)

	s.acct.Reset(50000)

	s.InDelta(50000, s.acct.Cash(), 1e-9)
	s.Empty(s.acct.Positions())

	price, ok := s.acct.LastPrice("AAPL")
	s.True(ok)
	s.InDelta(12, price, 1e-9)
}

// TestCashConservation drives thousands of random fills and checks the
// accounting identity that must hold after every one of them:
//
//	cash + sum(quantity * avg_price) - realized == starting cash
func (s *AccountantTestSuite) TestCashConservation() {
	rng := rand.New(rand.NewSource(1))
	symbols := []string{"AAPL", "TSLA", "MSFT", "NVDA"}

	for i := 0; i < 10000; i++ {
		symbol := symbols[rng.Intn(len(symbols))]

		side := types.OrderSideBuy
		if rng.Intn(2) == 1 {
			side = types.OrderSideSell
		}

		quantity := float64(rng.Intn(100) + 1)
		price := float64(rng.Intn(10000)+1) / 100

		s.acct.ApplyFill(symbol, side, quantity, price)
	}

	holdings := 0.0
	realized := 0.0

	for _, symbol := range symbols {
		pos, ok := s.acct.Position(symbol)
		if !ok {
			continue
		}

		holdings += pos.Quantity * pos.AvgPrice
		realized += pos.RealizedPnL
	}

	s.InDelta(100000, s.acct.Cash()+holdings-realized, 1e-2)
}
