package strategies

import (
	"errors"

	"backsim/types"
)

// thresholdCross flags bars whose close moved through a multiplicative
// threshold against the previous close: a drop below prev*buyThreshold is a
// buy, a rise above prev*sellThreshold is a sell.
type thresholdCross struct {
	buyThreshold  float64
	sellThreshold float64
}

func newThreshold(cfg Config) (*thresholdCross, error) {
	t := &thresholdCross{
		buyThreshold:  cfg.BuyThreshold,
		sellThreshold: cfg.SellThreshold,
	}
	if t.buyThreshold == 0 {
		t.buyThreshold = 0.95
	}
	if t.sellThreshold == 0 {
		t.sellThreshold = 1.05
	}
	if t.buyThreshold <= 0 || t.sellThreshold <= 0 {
		return nil, errors.New("threshold: thresholds must be positive")
	}
	if t.buyThreshold >= t.sellThreshold {
		return nil, errors.New("threshold: buy threshold must be below sell threshold")
	}
	return t, nil
}

func (t *thresholdCross) Name() string { return "threshold" }

func (t *thresholdCross) Generate(bars []types.Bar) ([]types.Signal, error) {
	signals := holdSignals(bars)
	prices := closePrices(bars)
	for i := 1; i < len(bars); i++ {
		prev := prices[i-1]
		switch {
		case prices[i] < prev*t.buyThreshold:
			signals[i].Direction = types.Buy
		case prices[i] > prev*t.sellThreshold:
			signals[i].Direction = types.Sell
		}
	}
	return signals, nil
}
