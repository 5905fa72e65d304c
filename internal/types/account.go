package types

// AccountInfo represents the current account state including cash, equity, and
// P&L information. It is derived state: everything here is recomputed
// deterministically from the positions and last-known prices, and is never a
// source of truth on its own.
type AccountInfo struct {
	// Cash is the current cash balance (excluding unrealized P&L)
	Cash float64 `json:"cash" yaml:"cash"`
	// Equity is the total account value (cash + market value of positions)
	Equity float64 `json:"equity" yaml:"equity"`
	// BuyingPower is the available amount for new purchases.
	// Currently defined as equal to Cash; no margin model.
	BuyingPower float64 `json:"buying_power" yaml:"buying_power"`
	// RealizedPnL is the total realized profit/loss from closed positions
	RealizedPnL float64 `json:"realized_pnl" yaml:"realized_pnl"`
	// UnrealizedPnL is the total unrealized profit/loss from open positions
	UnrealizedPnL float64 `json:"unrealized_pnl" yaml:"unrealized_pnl"`
}

// NewAccountInfo returns a fresh account funded with startingCash.
func NewAccountInfo(startingCash float64) AccountInfo {
	return AccountInfo{
		Cash:          startingCash,
		Equity:        startingCash,
		BuyingPower:   startingCash,
		RealizedPnL:   0,
		UnrealizedPnL: 0,
	}
}
