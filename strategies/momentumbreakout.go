package strategies

import (
	"errors"

	"backsim/types"
)

// momentumBreakout enters in the direction of strong momentum confirmed by a
// volume surge and exits on stop loss, profit target, the momentum flipping
// through the opposite threshold, or the forced session close. All lookbacks
// are computed within the session.
type momentumBreakout struct {
	lookback          int
	momentumThreshold float64
	volumeMultiplier  float64
	profitTargetPct   float64
	stopLossPct       float64
	maxEntries        int
	excludeOpen       int
	excludeClose      int
}

func newMomentumBreakout(cfg Config) (*momentumBreakout, error) {
	m := &momentumBreakout{
		lookback:          cfg.LookbackPeriod,
		momentumThreshold: cfg.MomentumThreshold,
		volumeMultiplier:  cfg.VolumeMultiplier,
		profitTargetPct:   cfg.ProfitTargetPct,
		stopLossPct:       cfg.StopLossPct,
		maxEntries:        cfg.MaxEntriesPerSession,
		excludeOpen:       cfg.ExcludeOpenMinutes,
		excludeClose:      cfg.ExcludeCloseMinutes,
	}
	if m.lookback == 0 {
		m.lookback = 10
	}
	if m.momentumThreshold == 0 {
		m.momentumThreshold = 0.003
	}
	if m.volumeMultiplier == 0 {
		m.volumeMultiplier = 1.5
	}
	if m.profitTargetPct == 0 {
		m.profitTargetPct = 0.008
	}
	if m.stopLossPct == 0 {
		m.stopLossPct = 0.004
	}
	if m.excludeOpen == 0 {
		m.excludeOpen = 15
	}
	if m.excludeClose == 0 {
		m.excludeClose = 15
	}
	if m.lookback <= 0 {
		return nil, errors.New("momentum_breakout: lookback must be positive")
	}
	if m.momentumThreshold <= 0 {
		return nil, errors.New("momentum_breakout: momentum threshold must be positive")
	}
	if m.profitTargetPct <= 0 || m.stopLossPct <= 0 {
		return nil, errors.New("momentum_breakout: profit target and stop loss must be positive")
	}
	return m, nil
}

func (m *momentumBreakout) Name() string { return "momentum_breakout" }

func (m *momentumBreakout) Generate(bars []types.Bar) ([]types.Signal, error) {
	signals := holdSignals(bars)
	var state positionState

	base := 0
	for _, sess := range types.SplitSessions(bars) {
		state.resetSession()
		n := len(sess.Bars)
		if n < m.lookback+5 {
			base += n
			continue
		}

		prices := closePrices(sess.Bars)
		mom := momentum(prices, m.lookback)
		vols := volumes(sess.Bars)
		avgVol := rollingMean(vols, avgVolumeWindow)

		for i := 0; i < n; i++ {
			bar := sess.Bars[i]
			lastBar := i == n-1

			if state.inPosition() {
				reversal := false
				if defined(mom[i]) {
					if state.direction == types.Buy {
						reversal = mom[i] < -m.momentumThreshold
					} else {
						reversal = mom[i] > m.momentumThreshold
					}
				}
				if dir, ok := state.exitDirection(bar, m.stopLossPct, m.profitTargetPct, reversal); ok {
					signals[base+i].Direction = dir
					state.exit()
				} else if lastBar {
					signals[base+i].Direction = state.direction.Opposite()
					state.exit()
				}
				continue
			}

			if lastBar || state.entriesExhausted(m.maxEntries) {
				continue
			}
			if i < m.excludeOpen || i >= n-m.excludeClose {
				continue
			}
			if !defined(mom[i]) {
				continue
			}

			surge := vols[i] > avgVol[i]*m.volumeMultiplier
			switch {
			case mom[i] > m.momentumThreshold && surge:
				signals[base+i].Direction = types.Buy
				state.enter(types.Buy, prices[i])
			case mom[i] < -m.momentumThreshold && surge:
				signals[base+i].Direction = types.Sell
				state.enter(types.Sell, prices[i])
			}
		}
		base += n
	}
	return signals, nil
}
