package broker

import (
	"github.com/shopspring/decimal"

	"github.com/CasinoHe/quanttrader-sub001/internal/types"
)

// positionState is the accountant's internal record for one symbol. The
// quantity is signed: positive long, negative short.
type positionState struct {
	quantity decimal.Decimal
	avgPrice decimal.Decimal
	realized decimal.Decimal
}

// Accountant owns cash, positions, and P&L. All arithmetic runs on
// decimals so repeated partial fills cannot drift the cash balance; values
// convert to float64 only at the query boundary.
//
// The accountant is not safe for concurrent use. The broker serializes
// access under its own lock.
type Accountant struct {
	startingCash decimal.Decimal
	cash         decimal.Decimal
	positions    map[string]*positionState
	lastPrices   map[string]decimal.Decimal
}

// NewAccountant returns an accountant funded with startingCash.
func NewAccountant(startingCash float64) *Accountant {
	start := decimal.NewFromFloat(startingCash)

	return &Accountant{
		startingCash: start,
		cash:         start,
		positions:    make(map[string]*positionState),
		lastPrices:   make(map[string]decimal.Decimal),
	}
}

// Reset returns the account to a fresh state funded with startingCash.
// Last-known prices survive a reset; they are market data, not account state.
func (a *Accountant) Reset(startingCash float64) {
	a.startingCash = decimal.NewFromFloat(startingCash)
	a.cash = a.startingCash
	a.positions = make(map[string]*positionState)
}

// ApplyFill applies one fill to cash and the symbol's position. Cash moves by
// quantity times price on every fill, buys down and sells up, regardless of
// whether the fill opens, extends, reduces, or flips the position.
func (a *Accountant) ApplyFill(symbol string, side types.OrderSide, quantity, price float64) {
	qty := decimal.NewFromFloat(quantity)
	px := decimal.NewFromFloat(price)

	signed := qty
	if side == types.OrderSideSell {
		signed = qty.Neg()
	}

	if side == types.OrderSideBuy {
		a.cash = a.cash.Sub(qty.Mul(px))
	} else {
		a.cash = a.cash.Add(qty.Mul(px))
	}

	pos, ok := a.positions[symbol]
	if !ok {
		pos = &positionState{}
		a.positions[symbol] = pos
	}

	a.lastPrices[symbol] = px

	oldQty := pos.quantity
	newQty := oldQty.Add(signed)

	switch {
	case oldQty.IsZero():
		// Opening from flat.
		pos.quantity = newQty
		pos.avgPrice = px

	case oldQty.Sign() == signed.Sign():
		// Extending: weighted-average cost basis.
		oldAbs := oldQty.Abs()
		addAbs := signed.Abs()
		pos.avgPrice = oldAbs.Mul(pos.avgPrice).Add(addAbs.Mul(px)).Div(oldAbs.Add(addAbs))
		pos.quantity = newQty

	case newQty.IsZero() || newQty.Sign() == oldQty.Sign():
		// Reducing or fully closing. P&L realizes on the closed quantity:
		// longs gain when price rose above basis, shorts when it fell.
		closed := signed.Abs()

		pnl := px.Sub(pos.avgPrice).Mul(closed)
		if oldQty.Sign() < 0 {
			pnl = pnl.Neg()
		}

		pos.realized = pos.realized.Add(pnl)
		pos.quantity = newQty

		if newQty.IsZero() {
			pos.avgPrice = decimal.Zero
		}

	default:
		// Flip through zero: close the whole old position, then open the
		// remainder on the other side at the fill price.
		closed := oldQty.Abs()

		pnl := px.Sub(pos.avgPrice).Mul(closed)
		if oldQty.Sign() < 0 {
			pnl = pnl.Neg()
		}

		pos.realized = pos.realized.Add(pnl)
		pos.quantity = newQty
		pos.avgPrice = px
	}
}

// SetLastPrice records the last market price for a symbol. Unrealized P&L
// and equity are derived from it on query.
func (a *Accountant) SetLastPrice(symbol string, price float64) {
	a.lastPrices[symbol] = decimal.NewFromFloat(price)
}

// LastPrice returns the last market price recorded for a symbol.
func (a *Accountant) LastPrice(symbol string) (float64, bool) {
	px, ok := a.lastPrices[symbol]
	if !ok {
		return 0, false
	}

	price, _ := px.Float64()

	return price, true
}

// Cash returns the current cash balance.
func (a *Accountant) Cash() float64 {
	cash, _ := a.cash.Float64()

	return cash
}

// Position returns the symbol's position, or false for a symbol the account
// never traded.
func (a *Accountant) Position(symbol string) (types.Position, bool) {
	pos, ok := a.positions[symbol]
	if !ok {
		return types.Position{}, false
	}

	return a.snapshot(symbol, pos), true
}

// Positions returns every non-flat position.
func (a *Accountant) Positions() []types.Position {
	out := make([]types.Position, 0, len(a.positions))

	for symbol, pos := range a.positions {
		if pos.quantity.IsZero() {
			continue
		}

		out = append(out, a.snapshot(symbol, pos))
	}

	return out
}

// AccountInfo returns the derived account state: equity is cash plus the
// marked value of every open position, and buying power equals cash because
// there is no margin model.
func (a *Accountant) AccountInfo() types.AccountInfo {
	equity := a.cash
	realized := decimal.Zero
	unrealized := decimal.Zero

	for symbol, pos := range a.positions {
		realized = realized.Add(pos.realized)

		if pos.quantity.IsZero() {
			continue
		}

		last, ok := a.lastPrices[symbol]
		if !ok {
			// No market data yet; mark at cost so equity stays defined.
			last = pos.avgPrice
		}

		equity = equity.Add(pos.quantity.Mul(last))
		unrealized = unrealized.Add(last.Sub(pos.avgPrice).Mul(pos.quantity))
	}

	cash, _ := a.cash.Float64()
	eq, _ := equity.Float64()
	rpnl, _ := realized.Float64()
	upnl, _ := unrealized.Float64()

	return types.AccountInfo{
		Cash:          cash,
		Equity:        eq,
		BuyingPower:   cash,
		RealizedPnL:   rpnl,
		UnrealizedPnL: upnl,
	}
}

func (a *Accountant) snapshot(symbol string, pos *positionState) types.Position {
	qty, _ := pos.quantity.Float64()
	avg, _ := pos.avgPrice.Float64()
	realized, _ := pos.realized.Float64()

	unrealized := 0.0

	if !pos.quantity.IsZero() {
		if last, ok := a.lastPrices[symbol]; ok {
			u, _ := last.Sub(pos.avgPrice).Mul(pos.quantity).Float64()
			unrealized = u
		}
	}

	return types.Position{
		Symbol:        symbol,
		Quantity:      qty,
		AvgPrice:      avg,
		RealizedPnL:   realized,
		UnrealizedPnL: unrealized,
	}
}
