package engine

import (
	"backsim/types"

	"github.com/shopspring/decimal"
)

// PnLTracker owns the growing trade log. It appends one immutable record per
// fill; records are never mutated afterwards.
type PnLTracker struct {
	trades      []types.TradeRecord
	realizedPnL decimal.Decimal
}

func NewPnLTracker() *PnLTracker {
	return &PnLTracker{}
}

// Record appends the trade for one fill. For sell legs entryPrice must be
// the ledger's average cost sampled before the fill was applied; gross and
// net PnL realize on that leg only.
func (t *PnLTracker) Record(fill *types.Fill, costs types.CostBreakdown, entryPrice decimal.Decimal) {
	rec := types.TradeRecord{
		ID:             len(t.trades),
		SignalTime:     fill.SignalTime,
		ExecutionTime:  fill.ExecutionTime,
		Direction:      fill.Direction,
		ExecutionPrice: fill.ExecutionPrice,
		FilledShares:   fill.FilledShares,
		Notional:       fill.Notional,
		Commission:     costs.Commission,
		SlippageCost:   costs.SlippageCost,
		SpreadCost:     costs.SpreadCost,
		TotalCost:      costs.TotalCost,
	}
	if fill.Direction == types.Sell && !entryPrice.IsZero() {
		gross := fill.ExecutionPrice.Sub(entryPrice).Mul(fill.FilledShares)
		rec.Realized = true
		rec.EntryPrice = entryPrice
		rec.GrossPnL = gross
		rec.NetPnL = gross.Sub(costs.TotalCost)
		t.realizedPnL = t.realizedPnL.Add(rec.NetPnL)
	}
	t.trades = append(t.trades, rec)
}

func (t *PnLTracker) Trades() []types.TradeRecord { return t.trades }

func (t *PnLTracker) RealizedPnL() decimal.Decimal { return t.realizedPnL }
