package strategies

import (
	"testing"
	"time"

	"backsim/types"
)

func reversionConfig() Config {
	return Config{
		Name:                "intraday_reversion",
		Period:              3,
		RSIPeriod:           2,
		StdMultiplier:       1,
		ExcludeOpenMinutes:  3,
		ExcludeCloseMinutes: 2,
	}
}

func reversionBar(minute int, close float64) types.Bar {
	ts := sessionOpen.Add(time.Duration(minute) * time.Minute)
	return genBar(ts, close, close+0.02, close-0.02, close, 100)
}

func TestIntradayReversionGenerate(t *testing.T) {
	gen, err := New(reversionConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// A dip below the lower band with a depressed RSI buys at index 3; the
	// bounce back through the rolling mean closes it at index 4.
	closes := []float64{100, 100, 100, 99.9, 100, 100, 100, 100}
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = reversionBar(i, c)
	}

	signals, err := gen.Generate(bars)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []types.Direction{
		types.Hold, types.Hold, types.Hold, types.Buy, types.Sell,
		types.Hold, types.Hold, types.Hold,
	}
	for i, w := range want {
		if signals[i].Direction != w {
			t.Errorf("Generate() signal %d = %v, want %v", i, signals[i].Direction, w)
		}
	}
}

func TestIntradayReversionEdgeExclusion(t *testing.T) {
	cfg := reversionConfig()
	cfg.ExcludeOpenMinutes = 5
	gen, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// The same dip now falls inside the excluded opening window.
	closes := []float64{100, 100, 100, 99.9, 100, 100, 100, 100}
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = reversionBar(i, c)
	}

	signals, err := gen.Generate(bars)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i, sig := range signals {
		if sig.Direction != types.Hold {
			t.Errorf("Generate() signal %d = %v, want HOLD inside excluded window", i, sig.Direction)
		}
	}
}

func TestIntradayReversionShortSession(t *testing.T) {
	gen, err := New(Config{Name: "intraday_reversion"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Fewer bars than the indicator warmup: the session is skipped.
	bars := []types.Bar{reversionBar(0, 100), reversionBar(1, 90)}
	signals, err := gen.Generate(bars)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i, sig := range signals {
		if sig.Direction != types.Hold {
			t.Errorf("Generate() signal %d = %v, want HOLD for short session", i, sig.Direction)
		}
	}
}
