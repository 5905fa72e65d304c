// Package history stores the append-only trade record. The broker appends
// one Trade per fill; queries feed trade and by-date reporting.
package history

import (
	"sync"

	"github.com/CasinoHe/quanttrader-sub001/internal/types"
)

// TradeLog is the persistence boundary for executed trades.
type TradeLog interface {
	// Append records one fill. Trades are immutable once appended.
	Append(trade types.Trade) error
	// Query returns trades matching the filter in execution order.
	Query(filter types.TradeFilter) ([]types.Trade, error)
	// Reset drops every recorded trade.
	Reset() error
	// Close releases underlying resources.
	Close() error
}

var _ TradeLog = (*MemoryTradeLog)(nil)

// MemoryTradeLog keeps trades in process memory. It backs tests and
// short-lived paper sessions where persistence across restarts is not needed.
type MemoryTradeLog struct {
	mu     sync.RWMutex
	trades []types.Trade
}

// NewMemoryTradeLog returns an empty in-memory trade log.
func NewMemoryTradeLog() *MemoryTradeLog {
	return &MemoryTradeLog{}
}

// Append records one trade.
func (m *MemoryTradeLog) Append(trade types.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.trades = append(m.trades, trade)

	return nil
}

// Query returns matching trades in append order.
func (m *MemoryTradeLog) Query(filter types.TradeFilter) ([]types.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Trade, 0)

	for _, trade := range m.trades {
		if !filter.Matches(trade) {
			continue
		}

		out = append(out, trade)

		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}

	return out, nil
}

// Reset drops every recorded trade.
func (m *MemoryTradeLog) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.trades = nil

	return nil
}

// Close is a no-op for the in-memory log.
func (m *MemoryTradeLog) Close() error { return nil }
