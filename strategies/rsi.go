package strategies

import (
	"errors"

	"backsim/types"
)

// rsiReversal buys when the RSI crosses down through the oversold level and
// sells when it crosses up through the overbought level.
type rsiReversal struct {
	period     int
	oversold   float64
	overbought float64
}

func newRSIReversal(cfg Config) (*rsiReversal, error) {
	r := &rsiReversal{
		period:     cfg.RSIPeriod,
		oversold:   cfg.RSIOversold,
		overbought: cfg.RSIOverbought,
	}
	if r.period == 0 {
		r.period = 14
	}
	if r.oversold == 0 {
		r.oversold = 30
	}
	if r.overbought == 0 {
		r.overbought = 70
	}
	if r.period <= 0 {
		return nil, errors.New("rsi: period must be positive")
	}
	if r.oversold >= r.overbought {
		return nil, errors.New("rsi: oversold level must be below overbought level")
	}
	return r, nil
}

func (r *rsiReversal) Name() string { return "rsi" }

func (r *rsiReversal) Generate(bars []types.Bar) ([]types.Signal, error) {
	signals := holdSignals(bars)
	values := rsi(closePrices(bars), r.period)
	for i := 1; i < len(bars); i++ {
		if !defined(values[i], values[i-1]) {
			continue
		}
		switch {
		case values[i] < r.oversold && values[i-1] >= r.oversold:
			signals[i].Direction = types.Buy
		case values[i] > r.overbought && values[i-1] <= r.overbought:
			signals[i].Direction = types.Sell
		}
	}
	return signals, nil
}
