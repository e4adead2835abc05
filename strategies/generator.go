package strategies

import (
	"errors"
	"fmt"

	"backsim/types"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Generator turns a bar series into a signal sequence, one value per bar.
// Implementations are deterministic given their configuration and never look
// ahead of the bar they are deciding for.
type Generator interface {
	Name() string
	Generate(bars []types.Bar) ([]types.Signal, error)
}

// New builds the generator selected by cfg.Name. Configuration errors are
// rejected here, before any bar is processed.
func New(cfg Config) (Generator, error) {
	switch cfg.Name {
	case "threshold":
		return newThreshold(cfg)
	case "sma_cross":
		return newSMACross(cfg)
	case "rsi":
		return newRSIReversal(cfg)
	case "bollinger":
		return newBollinger(cfg)
	case "opening_range":
		return newOpeningRange(cfg)
	case "intraday_reversion":
		return newIntradayReversion(cfg)
	case "momentum_breakout":
		return newMomentumBreakout(cfg)
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Name, ErrUnknownStrategy)
	}
}

// holdSignals returns a signal sequence parallel to bars, all Hold.
func holdSignals(bars []types.Bar) []types.Signal {
	out := make([]types.Signal, len(bars))
	for i, b := range bars {
		out[i] = types.Signal{Timestamp: b.Timestamp}
	}
	return out
}
