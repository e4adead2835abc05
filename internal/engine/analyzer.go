package engine

import (
	"math"
	"time"

	"backsim/types"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

const tradingDaysPerYear = 252

// Metrics is the end-of-run performance summary. Every ratio whose
// denominator is zero or undefined comes out as zero, never NaN.
type Metrics struct {
	InitialCapital decimal.Decimal
	FinalEquity    decimal.Decimal
	TotalReturn    decimal.Decimal
	AnnualReturn   decimal.Decimal
	MaxDrawdown    decimal.Decimal
	SharpeRatio    decimal.Decimal
	SortinoRatio   decimal.Decimal
	WinRate        decimal.Decimal
	ProfitFactor   decimal.Decimal
	TotalTrades    int
	ClosedTrades   int
	Days           int
}

// PerformanceAnalyzer owns the equity-curve buffer it is fed incrementally
// and consumes it once, at the end of the run.
type PerformanceAnalyzer struct {
	initialCapital decimal.Decimal
	curve          []types.EquityPoint
}

func NewPerformanceAnalyzer(initialCapital decimal.Decimal) *PerformanceAnalyzer {
	return &PerformanceAnalyzer{initialCapital: initialCapital}
}

// Sample appends one equity point. Called once per processed bar, not only
// on trade bars.
func (a *PerformanceAnalyzer) Sample(ts time.Time, equity decimal.Decimal) {
	a.curve = append(a.curve, types.EquityPoint{Timestamp: ts, Equity: equity})
}

func (a *PerformanceAnalyzer) Curve() []types.EquityPoint { return a.curve }

// Metrics computes the summary statistics over the full equity curve and
// trade history.
func (a *PerformanceAnalyzer) Metrics(trades []types.TradeRecord) Metrics {
	m := Metrics{
		InitialCapital: a.initialCapital,
		TotalTrades:    len(trades),
	}
	if len(a.curve) == 0 {
		return m
	}

	final := a.curve[len(a.curve)-1].Equity
	m.FinalEquity = final
	initial := a.initialCapital.InexactFloat64()
	if initial > 0 {
		m.TotalReturn = final.Div(a.initialCapital).Sub(decimal.NewFromInt(1))
	}

	m.Days = calendarDays(a.curve[0].Timestamp, a.curve[len(a.curve)-1].Timestamp)
	if initial > 0 {
		ratio := final.InexactFloat64() / initial
		switch {
		case m.Days > 0 && ratio > 0:
			annual := math.Pow(ratio, tradingDaysPerYear/float64(m.Days)) - 1
			m.AnnualReturn = decimal.NewFromFloat(annual)
		case m.Days == 0:
			// A run inside a single calendar day annualizes to its total
			// return.
			m.AnnualReturn = m.TotalReturn
		}
	}

	m.MaxDrawdown = decimal.NewFromFloat(maxDrawdown(a.curve))

	returns := a.periodReturns()
	m.SharpeRatio = decimal.NewFromFloat(sharpe(returns))
	m.SortinoRatio = decimal.NewFromFloat(sortino(returns))

	winRate, profitFactor, closed := tradeStats(trades)
	m.WinRate = decimal.NewFromFloat(winRate)
	m.ProfitFactor = decimal.NewFromFloat(profitFactor)
	m.ClosedTrades = closed
	return m
}

// periodReturns is the period-over-period change of the cumulative return
// series. Samples with a zero or non-finite base are skipped so degenerate
// values never reach the ratio math.
func (a *PerformanceAnalyzer) periodReturns() []float64 {
	initial := a.initialCapital.InexactFloat64()
	if initial <= 0 || len(a.curve) < 2 {
		return nil
	}
	cumulative := make([]float64, len(a.curve))
	for i, p := range a.curve {
		cumulative[i] = p.Equity.InexactFloat64()/initial - 1
	}
	var out []float64
	for i := 1; i < len(cumulative); i++ {
		prev := cumulative[i-1]
		if prev == 0 {
			continue
		}
		r := (cumulative[i] - prev) / prev
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func maxDrawdown(curve []types.EquityPoint) float64 {
	var peak, maxDD float64
	for i, p := range curve {
		equity := p.Equity.InexactFloat64()
		if i == 0 || equity > peak {
			peak = equity
		}
		if peak > 0 {
			if dd := (equity - peak) / peak; dd < maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

func sharpe(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	sd := stat.StdDev(returns, nil)
	if sd == 0 {
		return 0
	}
	return stat.Mean(returns, nil) / sd * math.Sqrt(tradingDaysPerYear)
}

func sortino(returns []float64) float64 {
	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	if len(returns) == 0 || len(downside) < 2 {
		return 0
	}
	sd := stat.StdDev(downside, nil)
	if sd == 0 {
		return 0
	}
	return stat.Mean(returns, nil) / sd * math.Sqrt(tradingDaysPerYear)
}

func tradeStats(trades []types.TradeRecord) (winRate, profitFactor float64, closed int) {
	var wins, losses int
	var winSum, lossSum float64
	for _, tr := range trades {
		if !tr.Realized {
			continue
		}
		closed++
		pnl := tr.NetPnL.InexactFloat64()
		switch {
		case pnl > 0:
			wins++
			winSum += pnl
		case pnl < 0:
			losses++
			lossSum += -pnl
		}
	}
	if closed == 0 {
		return 0, 0, 0
	}
	winRate = float64(wins) / float64(closed)
	if wins > 0 && losses > 0 {
		avgWin := winSum / float64(wins)
		avgLoss := lossSum / float64(losses)
		profitFactor = avgWin / avgLoss
	}
	return winRate, profitFactor, closed
}

// calendarDays measures the calendar-date span of the run, not the bar
// count.
func calendarDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
