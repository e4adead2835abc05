package engine

import (
	"testing"

	"backsim/types"

	"github.com/shopspring/decimal"
)

func TestPnLTrackerRecord(t *testing.T) {
	tr := NewPnLTracker()
	costs := types.CostBreakdown{
		Commission:   decimal.RequireFromString("1"),
		SlippageCost: decimal.RequireFromString("2"),
		TotalCost:    decimal.RequireFromString("3"),
	}

	tr.Record(ledgerFill(types.Buy, "100", "10"), costs, decimal.Zero)
	tr.Record(ledgerFill(types.Sell, "120", "10"), costs, decimal.RequireFromString("100"))

	trades := tr.Trades()
	if len(trades) != 2 {
		t.Fatalf("Trades() = %d, want 2", len(trades))
	}
	if trades[0].ID != 0 || trades[1].ID != 1 {
		t.Errorf("Trades() ids = %d, %d, want sequential 0, 1", trades[0].ID, trades[1].ID)
	}
	if trades[0].Realized {
		t.Errorf("Trades() buy leg marked realized")
	}

	sell := trades[1]
	if !sell.Realized {
		t.Fatalf("Trades() sell leg not realized")
	}
	if !sell.GrossPnL.Equal(decimal.RequireFromString("200")) {
		t.Errorf("Trades() gross pnl = %v, want 200", sell.GrossPnL)
	}
	if !sell.NetPnL.Equal(decimal.RequireFromString("197")) {
		t.Errorf("Trades() net pnl = %v, want 197", sell.NetPnL)
	}
	if !tr.RealizedPnL().Equal(decimal.RequireFromString("197")) {
		t.Errorf("RealizedPnL() = %v, want 197", tr.RealizedPnL())
	}
}

func TestPnLTrackerSellWithoutEntry(t *testing.T) {
	tr := NewPnLTracker()
	tr.Record(ledgerFill(types.Sell, "120", "10"), types.CostBreakdown{}, decimal.Zero)

	if tr.Trades()[0].Realized {
		t.Errorf("Record() sell with no entry price marked realized")
	}
	if !tr.RealizedPnL().IsZero() {
		t.Errorf("RealizedPnL() = %v, want 0", tr.RealizedPnL())
	}
}
