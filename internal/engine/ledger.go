package engine

import (
	"errors"
	"time"

	"backsim/types"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientCash = errors.New("insufficient cash when applying buy fill")
	ErrOversell         = errors.New("sell fill exceeds current holding")
)

// Ledger owns the single-instrument cash/shares/average-cost state. It is
// the only writer of that state; everything else reads snapshots. Long only:
// shares never go negative.
type Ledger struct {
	cfg     PositionConfig
	cash    decimal.Decimal
	shares  decimal.Decimal
	avgCost decimal.Decimal
	history []PositionSnapshot
}

// PositionSnapshot records the holding after one applied fill.
type PositionSnapshot struct {
	Time      time.Time
	Direction types.Direction
	Shares    decimal.Decimal
	Cash      decimal.Decimal
	AvgCost   decimal.Decimal
}

func NewLedger(cfg PositionConfig) *Ledger {
	return &Ledger{
		cfg:  cfg,
		cash: decimal.NewFromFloat(cfg.InitialCapital),
	}
}

func (l *Ledger) Cash() decimal.Decimal    { return l.cash }
func (l *Ledger) Shares() decimal.Decimal  { return l.shares }
func (l *Ledger) AvgCost() decimal.Decimal { return l.avgCost }

func (l *Ledger) History() []PositionSnapshot { return l.history }

// SizeOrder turns a signal into a share count. Buys size by fixed share
// count or by floor(cash × fraction / price); sells always liquidate the
// entire holding. A zero result means no order.
func (l *Ledger) SizeOrder(price decimal.Decimal, dir types.Direction) decimal.Decimal {
	if dir == types.Sell {
		return l.shares
	}
	if l.cfg.Mode == PositionFixedShares {
		return decimal.NewFromInt(l.cfg.FixedShares)
	}
	if price.IsZero() {
		return decimal.Zero
	}
	budget := l.cash.Mul(decimal.NewFromFloat(l.cfg.CapitalPct))
	return budget.Div(price).Floor()
}

// ApplyFill mutates cash, shares and the volume-weighted average cost for
// one fill. Commission is the only cost component deducted here; slippage is
// already inside the execution price.
func (l *Ledger) ApplyFill(fill *types.Fill, commission decimal.Decimal) error {
	notional := fill.ExecutionPrice.Mul(fill.FilledShares)

	switch fill.Direction {
	case types.Buy:
		total := notional.Add(commission)
		if total.GreaterThan(l.cash) {
			return ErrInsufficientCash
		}
		l.cash = l.cash.Sub(total)
		l.avgCost = weightedAvgCost(l.avgCost, l.shares, fill.ExecutionPrice, fill.FilledShares)
		l.shares = l.shares.Add(fill.FilledShares)

	case types.Sell:
		if fill.FilledShares.GreaterThan(l.shares) {
			return ErrOversell
		}
		l.cash = l.cash.Add(notional).Sub(commission)
		l.shares = l.shares.Sub(fill.FilledShares)
		if l.shares.IsZero() {
			l.avgCost = decimal.Zero
		}
	}

	l.history = append(l.history, PositionSnapshot{
		Time:      fill.ExecutionTime,
		Direction: fill.Direction,
		Shares:    l.shares,
		Cash:      l.cash,
		AvgCost:   l.avgCost,
	})
	return nil
}

// Equity values the portfolio at the given price: cash + shares × price.
func (l *Ledger) Equity(price decimal.Decimal) decimal.Decimal {
	return l.cash.Add(l.shares.Mul(price))
}

// UnrealizedPnL is the open position's mark against its average cost.
func (l *Ledger) UnrealizedPnL(price decimal.Decimal) decimal.Decimal {
	if l.shares.IsZero() {
		return decimal.Zero
	}
	return price.Sub(l.avgCost).Mul(l.shares)
}

func weightedAvgCost(avgCost, oldShares, price, newShares decimal.Decimal) decimal.Decimal {
	total := oldShares.Add(newShares)
	if total.IsZero() {
		return decimal.Zero
	}
	return avgCost.Mul(oldShares).Add(price.Mul(newShares)).Div(total)
}
