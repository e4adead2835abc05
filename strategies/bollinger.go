package strategies

import (
	"errors"

	"backsim/types"
)

// bollinger flags closes touching the lower band as buys and closes touching
// the upper band as sells. Bands are a simple moving average plus/minus a
// multiple of the rolling standard deviation.
type bollinger struct {
	period     int
	multiplier float64
}

func newBollinger(cfg Config) (*bollinger, error) {
	b := &bollinger{period: cfg.Period, multiplier: cfg.StdMultiplier}
	if b.period == 0 {
		b.period = 20
	}
	if b.multiplier == 0 {
		b.multiplier = 2
	}
	if b.period <= 1 {
		return nil, errors.New("bollinger: period must exceed 1")
	}
	if b.multiplier <= 0 {
		return nil, errors.New("bollinger: multiplier must be positive")
	}
	return b, nil
}

func (b *bollinger) Name() string { return "bollinger" }

func (b *bollinger) Generate(bars []types.Bar) ([]types.Signal, error) {
	signals := holdSignals(bars)
	prices := closePrices(bars)
	mid := sma(prices, b.period)
	sd := rollingStd(prices, b.period)
	for i := range bars {
		if !defined(mid[i], sd[i]) {
			continue
		}
		upper := mid[i] + b.multiplier*sd[i]
		lower := mid[i] - b.multiplier*sd[i]
		switch {
		case prices[i] <= lower:
			signals[i].Direction = types.Buy
		case prices[i] >= upper:
			signals[i].Direction = types.Sell
		}
	}
	return signals, nil
}
