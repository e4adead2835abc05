package engine

import (
	"errors"
	"testing"
	"time"

	"backsim/types"

	"github.com/shopspring/decimal"
)

func fixedCapitalConfig() PositionConfig {
	return PositionConfig{
		Mode:           PositionFixedCapital,
		CapitalPct:     0.95,
		InitialCapital: 100000,
	}
}

func ledgerFill(dir types.Direction, price, shares string) *types.Fill {
	p := decimal.RequireFromString(price)
	s := decimal.RequireFromString(shares)
	return &types.Fill{
		ExecutionTime:  time.Date(2026, 1, 5, 9, 31, 0, 0, time.UTC),
		Direction:      dir,
		ExecutionPrice: p,
		FilledShares:   s,
		Notional:       p.Mul(s),
	}
}

func TestSizeOrder(t *testing.T) {
	tests := []struct {
		name  string
		cfg   PositionConfig
		price string
		dir   types.Direction
		want  string
	}{
		{"fixed capital floors shares", fixedCapitalConfig(), "100", types.Buy, "950"},
		{"fixed capital odd price", fixedCapitalConfig(), "333", types.Buy, "285"},
		{"fixed shares", PositionConfig{Mode: PositionFixedShares, FixedShares: 100, InitialCapital: 100000}, "100", types.Buy, "100"},
		{"zero price", fixedCapitalConfig(), "0", types.Buy, "0"},
		{"sell from flat", fixedCapitalConfig(), "100", types.Sell, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(tt.cfg)
			got := l.SizeOrder(decimal.RequireFromString(tt.price), tt.dir)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("SizeOrder() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSizeOrderSellLiquidates(t *testing.T) {
	l := NewLedger(fixedCapitalConfig())
	if err := l.ApplyFill(ledgerFill(types.Buy, "100", "42"), decimal.Zero); err != nil {
		t.Fatalf("ApplyFill() error = %v", err)
	}
	got := l.SizeOrder(decimal.RequireFromString("120"), types.Sell)
	if !got.Equal(decimal.RequireFromString("42")) {
		t.Errorf("SizeOrder(sell) = %v, want the whole holding 42", got)
	}
}

func TestApplyFillRoundTrip(t *testing.T) {
	l := NewLedger(fixedCapitalConfig())

	if err := l.ApplyFill(ledgerFill(types.Buy, "100", "10"), decimal.RequireFromString("1")); err != nil {
		t.Fatalf("ApplyFill(buy) error = %v", err)
	}
	if !l.Cash().Equal(decimal.RequireFromString("98999")) {
		t.Errorf("Cash() after buy = %v, want 98999", l.Cash())
	}
	if !l.AvgCost().Equal(decimal.RequireFromString("100")) {
		t.Errorf("AvgCost() after buy = %v, want 100", l.AvgCost())
	}

	// A second buy at a higher price moves the weighted average cost.
	if err := l.ApplyFill(ledgerFill(types.Buy, "110", "10"), decimal.Zero); err != nil {
		t.Fatalf("ApplyFill(buy) error = %v", err)
	}
	if !l.AvgCost().Equal(decimal.RequireFromString("105")) {
		t.Errorf("AvgCost() after second buy = %v, want 105", l.AvgCost())
	}
	if !l.Shares().Equal(decimal.RequireFromString("20")) {
		t.Errorf("Shares() = %v, want 20", l.Shares())
	}

	if err := l.ApplyFill(ledgerFill(types.Sell, "120", "20"), decimal.RequireFromString("2")); err != nil {
		t.Fatalf("ApplyFill(sell) error = %v", err)
	}
	if !l.Cash().Equal(decimal.RequireFromString("100297")) {
		t.Errorf("Cash() after sell = %v, want 100297", l.Cash())
	}
	if !l.Shares().IsZero() {
		t.Errorf("Shares() after sell = %v, want 0", l.Shares())
	}
	// Average cost resets once the position is flat.
	if !l.AvgCost().IsZero() {
		t.Errorf("AvgCost() after flat = %v, want 0", l.AvgCost())
	}
	if got := len(l.History()); got != 3 {
		t.Errorf("History() = %d snapshots, want 3", got)
	}
}

func TestApplyFillErrors(t *testing.T) {
	l := NewLedger(PositionConfig{Mode: PositionFixedShares, FixedShares: 10, InitialCapital: 1000})

	if err := l.ApplyFill(ledgerFill(types.Buy, "200", "10"), decimal.Zero); !errors.Is(err, ErrInsufficientCash) {
		t.Errorf("ApplyFill() error = %v, want ErrInsufficientCash", err)
	}
	if err := l.ApplyFill(ledgerFill(types.Sell, "100", "5"), decimal.Zero); !errors.Is(err, ErrOversell) {
		t.Errorf("ApplyFill() error = %v, want ErrOversell", err)
	}
	// Failed fills leave no snapshot behind.
	if got := len(l.History()); got != 0 {
		t.Errorf("History() after failed fills = %d, want 0", got)
	}
	if !l.Cash().Equal(decimal.RequireFromString("1000")) {
		t.Errorf("Cash() after failed fills = %v, want 1000", l.Cash())
	}
}

func TestEquityAndUnrealized(t *testing.T) {
	l := NewLedger(fixedCapitalConfig())
	price := decimal.RequireFromString("100")

	if !l.Equity(price).Equal(decimal.RequireFromString("100000")) {
		t.Errorf("Equity() flat = %v, want initial capital", l.Equity(price))
	}
	if !l.UnrealizedPnL(price).IsZero() {
		t.Errorf("UnrealizedPnL() flat = %v, want 0", l.UnrealizedPnL(price))
	}

	if err := l.ApplyFill(ledgerFill(types.Buy, "100", "10"), decimal.Zero); err != nil {
		t.Fatalf("ApplyFill() error = %v", err)
	}
	mark := decimal.RequireFromString("110")
	if !l.Equity(mark).Equal(decimal.RequireFromString("100100")) {
		t.Errorf("Equity() = %v, want 100100", l.Equity(mark))
	}
	if !l.UnrealizedPnL(mark).Equal(decimal.RequireFromString("100")) {
		t.Errorf("UnrealizedPnL() = %v, want 100", l.UnrealizedPnL(mark))
	}
}
