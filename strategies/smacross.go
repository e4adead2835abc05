package strategies

import (
	"errors"

	"backsim/types"
)

// smaCross emits a buy when the short moving average crosses above the long
// one and a sell on the opposite cross. Only the crossing bar is flagged.
type smaCross struct {
	short int
	long  int
}

func newSMACross(cfg Config) (*smaCross, error) {
	s := &smaCross{short: cfg.SMAShort, long: cfg.SMALong}
	if s.short == 0 {
		s.short = 5
	}
	if s.long == 0 {
		s.long = 20
	}
	if s.short <= 0 || s.long <= 0 {
		return nil, errors.New("sma_cross: windows must be positive")
	}
	if s.short >= s.long {
		return nil, errors.New("sma_cross: short window must be below long window")
	}
	return s, nil
}

func (s *smaCross) Name() string { return "sma_cross" }

func (s *smaCross) Generate(bars []types.Bar) ([]types.Signal, error) {
	signals := holdSignals(bars)
	prices := closePrices(bars)
	shortMA := sma(prices, s.short)
	longMA := sma(prices, s.long)
	for i := 1; i < len(bars); i++ {
		if !defined(shortMA[i], longMA[i], shortMA[i-1], longMA[i-1]) {
			continue
		}
		switch {
		case shortMA[i] > longMA[i] && shortMA[i-1] <= longMA[i-1]:
			signals[i].Direction = types.Buy
		case shortMA[i] < longMA[i] && shortMA[i-1] >= longMA[i-1]:
			signals[i].Direction = types.Sell
		}
	}
	return signals, nil
}
