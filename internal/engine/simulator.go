package engine

import (
	"math/rand"
	"sort"

	"backsim/types"

	"github.com/shopspring/decimal"
)

// OrderSimulator resolves order requests against the execution-granularity
// bar series. The random source drives partial-fill sampling only and is
// injected so runs are reproducible under a fixed seed.
type OrderSimulator struct {
	bars []types.Bar
	cfg  OrderConfig
	rng  *rand.Rand
}

func NewOrderSimulator(bars []types.Bar, cfg OrderConfig, rng *rand.Rand) *OrderSimulator {
	return &OrderSimulator{bars: bars, cfg: cfg, rng: rng}
}

// Simulate fills the request at the first bar strictly after the signal time.
// A nil result means the order was dropped: either no future bar exists
// (end of data) or a partial fill rounded down to zero shares. Neither is an
// error.
func (s *OrderSimulator) Simulate(req types.OrderRequest) *types.Fill {
	next := nextBar(s.bars, req)
	if next == nil {
		return nil
	}

	base := next.Ask
	if req.Direction == types.Sell {
		base = next.Bid
	}

	// Slippage always worsens the trader's price: paid on top of the ask for
	// buys, shaved off the bid for sells.
	slippage := base.Mul(decimal.NewFromFloat(s.cfg.SlippagePct))
	execPrice := base.Add(slippage)
	if req.Direction == types.Sell {
		slippage = slippage.Neg()
		execPrice = base.Add(slippage)
	}

	filled := req.Shares
	if s.cfg.PartialFillProb > 0 && s.rng.Float64() < s.cfg.PartialFillProb {
		fraction := 0.5 + s.rng.Float64()*0.4
		filled = req.Shares.Mul(decimal.NewFromFloat(fraction)).Floor()
		if filled.IsZero() {
			return nil
		}
	}

	return &types.Fill{
		SignalTime:       req.SignalTime,
		ExecutionTime:    next.Timestamp,
		Direction:        req.Direction,
		BasePrice:        base,
		ExecutionPrice:   execPrice,
		SlippagePerShare: slippage,
		RequestedShares:  req.Shares,
		FilledShares:     filled,
		Notional:         execPrice.Mul(filled),
	}
}

// nextBar returns the first bar with a timestamp strictly after the signal
// time, or nil when the decision falls at the end of data. The series is
// sorted, so the position is found by binary search.
func nextBar(bars []types.Bar, req types.OrderRequest) *types.Bar {
	i := sort.Search(len(bars), func(i int) bool {
		return bars[i].Timestamp.After(req.SignalTime)
	})
	if i == len(bars) {
		return nil
	}
	return &bars[i]
}
