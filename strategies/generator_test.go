package strategies

import (
	"errors"
	"testing"
	"time"

	"backsim/types"

	"github.com/shopspring/decimal"
)

var sessionOpen = time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)

// genBar builds a bar whose quote sits on the close, which keeps the series
// valid without caring about spreads.
func genBar(ts time.Time, open, high, low, close, volume float64) types.Bar {
	return types.Bar{
		Timestamp: ts,
		Open:      decimal.NewFromFloat(open),
		High:      decimal.NewFromFloat(high),
		Low:       decimal.NewFromFloat(low),
		Close:     decimal.NewFromFloat(close),
		Volume:    decimal.NewFromFloat(volume),
		Bid:       decimal.NewFromFloat(close),
		Ask:       decimal.NewFromFloat(close),
	}
}

func flatBar(ts time.Time, close float64) types.Bar {
	return genBar(ts, close, close, close, close, 100)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr error
	}{
		{"threshold", Config{Name: "threshold"}, "threshold", nil},
		{"sma cross", Config{Name: "sma_cross"}, "sma_cross", nil},
		{"rsi", Config{Name: "rsi"}, "rsi", nil},
		{"bollinger", Config{Name: "bollinger"}, "bollinger", nil},
		{"opening range", Config{Name: "opening_range"}, "opening_range", nil},
		{"intraday reversion", Config{Name: "intraday_reversion"}, "intraday_reversion", nil},
		{"momentum breakout", Config{Name: "momentum_breakout"}, "momentum_breakout", nil},
		{"unknown name", Config{Name: "martingale"}, "", ErrUnknownStrategy},
		{"empty name", Config{}, "", ErrUnknownStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Name() != tt.want {
				t.Errorf("New().Name() = %v, want %v", got.Name(), tt.want)
			}
		})
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"threshold buy above sell", Config{Name: "threshold", BuyThreshold: 1.1, SellThreshold: 1.05}},
		{"threshold negative", Config{Name: "threshold", BuyThreshold: -0.5, SellThreshold: 1.05}},
		{"sma short above long", Config{Name: "sma_cross", SMAShort: 30, SMALong: 20}},
		{"rsi bands crossed", Config{Name: "rsi", RSIOversold: 80, RSIOverbought: 70}},
		{"bollinger negative multiplier", Config{Name: "bollinger", StdMultiplier: -1}},
		{"opening range negative stop", Config{Name: "opening_range", StopLossPct: -0.01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Errorf("New() error = nil, want config error")
			}
		})
	}
}

func TestGenerateSignalPerBar(t *testing.T) {
	bars := []types.Bar{
		flatBar(sessionOpen, 100),
		flatBar(sessionOpen.Add(time.Minute), 100),
		flatBar(sessionOpen.Add(2*time.Minute), 100),
	}
	for _, name := range []string{"threshold", "sma_cross", "rsi", "bollinger", "opening_range", "intraday_reversion", "momentum_breakout"} {
		t.Run(name, func(t *testing.T) {
			gen, err := New(Config{Name: name})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			signals, err := gen.Generate(bars)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(signals) != len(bars) {
				t.Fatalf("Generate() signals = %d, want %d", len(signals), len(bars))
			}
			for i, sig := range signals {
				if !sig.Timestamp.Equal(bars[i].Timestamp) {
					t.Errorf("Generate() signal %d timestamp = %v, want %v", i, sig.Timestamp, bars[i].Timestamp)
				}
				if sig.Direction != types.Hold {
					t.Errorf("Generate() signal %d on flat prices = %v, want HOLD", i, sig.Direction)
				}
			}
		})
	}
}
