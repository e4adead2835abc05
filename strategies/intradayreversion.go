package strategies

import (
	"errors"

	"backsim/types"
)

// intradayReversion fades moves outside a Bollinger-style band when the RSI
// confirms the extreme, provided the overshoot is not excessive. Positions
// close on stop loss, profit target, the price crossing back through the
// rolling mean, or the forced session close.
type intradayReversion struct {
	period          int
	rsiPeriod       int
	stdMultiplier   float64
	rsiOversold     float64
	rsiOverbought   float64
	profitTargetPct float64
	stopLossPct     float64
	maxEntries      int
	excludeOpen     int
	excludeClose    int
}

// Entries are rejected when the close has overshot the band by more than
// this fraction.
const overshootGuard = 0.005

func newIntradayReversion(cfg Config) (*intradayReversion, error) {
	r := &intradayReversion{
		period:          cfg.Period,
		rsiPeriod:       cfg.RSIPeriod,
		stdMultiplier:   cfg.StdMultiplier,
		rsiOversold:     cfg.RSIOversold,
		rsiOverbought:   cfg.RSIOverbought,
		profitTargetPct: cfg.ProfitTargetPct,
		stopLossPct:     cfg.StopLossPct,
		maxEntries:      cfg.MaxEntriesPerSession,
		excludeOpen:     cfg.ExcludeOpenMinutes,
		excludeClose:    cfg.ExcludeCloseMinutes,
	}
	if r.period == 0 {
		r.period = 14
	}
	if r.rsiPeriod == 0 {
		r.rsiPeriod = 14
	}
	if r.stdMultiplier == 0 {
		r.stdMultiplier = 1.5
	}
	if r.rsiOversold == 0 {
		r.rsiOversold = 30
	}
	if r.rsiOverbought == 0 {
		r.rsiOverbought = 70
	}
	if r.profitTargetPct == 0 {
		r.profitTargetPct = 0.008
	}
	if r.stopLossPct == 0 {
		r.stopLossPct = 0.004
	}
	if r.maxEntries == 0 {
		r.maxEntries = 3
	}
	if r.excludeOpen == 0 {
		r.excludeOpen = 30
	}
	if r.excludeClose == 0 {
		r.excludeClose = 30
	}
	if r.period <= 1 || r.rsiPeriod <= 0 {
		return nil, errors.New("intraday_reversion: lookback windows must be positive")
	}
	if r.stdMultiplier <= 0 {
		return nil, errors.New("intraday_reversion: std multiplier must be positive")
	}
	if r.rsiOversold >= r.rsiOverbought {
		return nil, errors.New("intraday_reversion: oversold level must be below overbought level")
	}
	if r.profitTargetPct <= 0 || r.stopLossPct <= 0 {
		return nil, errors.New("intraday_reversion: profit target and stop loss must be positive")
	}
	return r, nil
}

func (r *intradayReversion) Name() string { return "intraday_reversion" }

func (r *intradayReversion) Generate(bars []types.Bar) ([]types.Signal, error) {
	signals := holdSignals(bars)
	var state positionState

	warmup := r.period
	if r.rsiPeriod > warmup {
		warmup = r.rsiPeriod
	}

	base := 0
	for _, sess := range types.SplitSessions(bars) {
		state.resetSession()
		n := len(sess.Bars)
		if n < warmup {
			base += n
			continue
		}

		prices := closePrices(sess.Bars)
		mid := sma(prices, r.period)
		sd := rollingStd(prices, r.period)
		rsiVals := rsi(prices, r.rsiPeriod)

		for i := 0; i < n; i++ {
			bar := sess.Bars[i]
			lastBar := i == n-1

			if state.inPosition() {
				reversal := false
				if defined(mid[i]) {
					// A reverted price has crossed back through the mean.
					if state.direction == types.Buy {
						reversal = prices[i] >= mid[i]
					} else {
						reversal = prices[i] <= mid[i]
					}
				}
				if dir, ok := state.exitDirection(bar, r.stopLossPct, r.profitTargetPct, reversal); ok {
					signals[base+i].Direction = dir
					state.exit()
				} else if lastBar {
					signals[base+i].Direction = state.direction.Opposite()
					state.exit()
				}
				continue
			}

			if lastBar || state.entriesExhausted(r.maxEntries) {
				continue
			}
			if i < r.excludeOpen || i >= n-r.excludeClose {
				continue
			}
			if !defined(mid[i], sd[i], rsiVals[i]) {
				continue
			}

			upper := mid[i] + r.stdMultiplier*sd[i]
			lower := mid[i] - r.stdMultiplier*sd[i]
			switch {
			case prices[i] <= lower && rsiVals[i] <= r.rsiOversold && prices[i] > lower*(1-overshootGuard):
				signals[base+i].Direction = types.Buy
				state.enter(types.Buy, prices[i])
			case prices[i] >= upper && rsiVals[i] >= r.rsiOverbought && prices[i] < upper*(1+overshootGuard):
				signals[base+i].Direction = types.Sell
				state.enter(types.Sell, prices[i])
			}
		}
		base += n
	}
	return signals, nil
}
