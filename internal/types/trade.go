package types

import (
	"time"
)

// Trade is one fill event. Trades are immutable and append-only; a partially
// filled order produces one Trade per fill.
type Trade struct {
	// ExecID uniquely identifies the execution (uuid).
	ExecID    string    `yaml:"exec_id" json:"exec_id"`
	OrderID   int64     `yaml:"order_id" json:"order_id"`
	Symbol    string    `yaml:"symbol" json:"symbol"`
	Side      OrderSide `yaml:"side" json:"side"`
	Quantity  float64   `yaml:"quantity" json:"quantity"`
	Price     float64   `yaml:"price" json:"price"`
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
}

// Position represents the current holdings of one symbol. Quantity is signed:
// positive for long, negative for short. A quantity of zero resets AvgPrice
// and UnrealizedPnL to zero but the entry may be retained for reporting.
type Position struct {
	Symbol   string  `yaml:"symbol" json:"symbol"`
	Quantity float64 `yaml:"quantity" json:"quantity"`
	// AvgPrice is the running cost basis per share for the open position.
	AvgPrice      float64 `yaml:"avg_price" json:"avg_price"`
	RealizedPnL   float64 `yaml:"realized_pnl" json:"realized_pnl"`
	UnrealizedPnL float64 `yaml:"unrealized_pnl" json:"unrealized_pnl"`
}

// IsLong reports whether the position is net long.
func (p *Position) IsLong() bool { return p.Quantity > 0 }

// IsShort reports whether the position is net short.
func (p *Position) IsShort() bool { return p.Quantity < 0 }

// IsFlat reports whether the position is closed.
func (p *Position) IsFlat() bool { return p.Quantity == 0 }

// TradeFilter is used to filter trades when querying trade history.
type TradeFilter struct {
	// Symbol filters trades by symbol (empty string means no filter)
	Symbol string `json:"symbol" yaml:"symbol"`
	// StartTime filters trades executed at or after this time (zero time means no filter)
	StartTime time.Time `json:"start_time" yaml:"start_time"`
	// EndTime filters trades executed at or before this time (zero time means no filter)
	EndTime time.Time `json:"end_time" yaml:"end_time"`
	// Limit limits the number of trades returned (0 means no limit)
	Limit int `json:"limit" yaml:"limit"`
}

// Matches reports whether the trade passes the filter.
func (f *TradeFilter) Matches(trade Trade) bool {
	if f.Symbol != "" && trade.Symbol != f.Symbol {
		return false
	}

	if !f.StartTime.IsZero() && trade.Timestamp.Before(f.StartTime) {
		return false
	}

	if !f.EndTime.IsZero() && trade.Timestamp.After(f.EndTime) {
		return false
	}

	return true
}
