package strategies

import (
	"errors"

	"backsim/types"
)

// openingRange trades breakouts of the session's opening range. The first
// rangeBars bars of each session define the range high/low; a close above the
// range high by more than breakoutThreshold with a volume surge opens a long,
// closed again on stop loss, profit target, a break below the range low, or
// the forced session close.
type openingRange struct {
	rangeBars         int
	volumeThreshold   float64
	breakoutThreshold float64
	profitTargetPct   float64
	stopLossPct       float64
	maxEntries        int
}

const avgVolumeWindow = 20

func newOpeningRange(cfg Config) (*openingRange, error) {
	o := &openingRange{
		rangeBars:         cfg.OpeningRangeMinutes,
		volumeThreshold:   cfg.VolumeThreshold,
		breakoutThreshold: cfg.BreakoutThreshold,
		profitTargetPct:   cfg.ProfitTargetPct,
		stopLossPct:       cfg.StopLossPct,
		maxEntries:        cfg.MaxEntriesPerSession,
	}
	if o.rangeBars == 0 {
		o.rangeBars = 30
	}
	if o.volumeThreshold == 0 {
		o.volumeThreshold = 1.5
	}
	if o.breakoutThreshold == 0 {
		o.breakoutThreshold = 0.002
	}
	if o.profitTargetPct == 0 {
		o.profitTargetPct = 0.01
	}
	if o.stopLossPct == 0 {
		o.stopLossPct = 0.005
	}
	if o.rangeBars <= 0 {
		return nil, errors.New("opening_range: opening range must span at least one bar")
	}
	if o.profitTargetPct <= 0 || o.stopLossPct <= 0 {
		return nil, errors.New("opening_range: profit target and stop loss must be positive")
	}
	return o, nil
}

func (o *openingRange) Name() string { return "opening_range" }

func (o *openingRange) Generate(bars []types.Bar) ([]types.Signal, error) {
	signals := holdSignals(bars)
	var state positionState

	base := 0
	for _, sess := range types.SplitSessions(bars) {
		state.resetSession()
		n := len(sess.Bars)
		if n < o.rangeBars {
			base += n
			continue
		}

		rangeHigh, rangeLow := sessionRange(sess.Bars[:o.rangeBars])
		vols := volumes(sess.Bars)
		avgVol := rollingMean(vols, avgVolumeWindow)

		for i := o.rangeBars; i < n; i++ {
			bar := sess.Bars[i]
			lastBar := i == n-1

			if state.inPosition() {
				rangeBreak := bar.Low.InexactFloat64() < rangeLow
				if dir, ok := state.exitDirection(bar, o.stopLossPct, o.profitTargetPct, rangeBreak); ok {
					signals[base+i].Direction = dir
					state.exit()
				} else if lastBar {
					signals[base+i].Direction = state.direction.Opposite()
					state.exit()
				}
				continue
			}

			// Entries never open on the session's final bar.
			if lastBar || state.entriesExhausted(o.maxEntries) {
				continue
			}
			closePrice := bar.Close.InexactFloat64()
			surge := vols[i] > avgVol[i]*o.volumeThreshold
			breakout := closePrice > rangeHigh*(1+o.breakoutThreshold)
			if surge && breakout {
				signals[base+i].Direction = types.Buy
				state.enter(types.Buy, closePrice)
			}
		}
		base += n
	}
	return signals, nil
}

func sessionRange(bars []types.Bar) (high, low float64) {
	high = bars[0].High.InexactFloat64()
	low = bars[0].Low.InexactFloat64()
	for _, b := range bars[1:] {
		if h := b.High.InexactFloat64(); h > high {
			high = h
		}
		if l := b.Low.InexactFloat64(); l < low {
			low = l
		}
	}
	return high, low
}
