package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"backsim/strategies"
	"backsim/types"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

var ErrSignalCountMismatch = errors.New("signal sequence length does not match bar series")

// Runner replays the decision-timeframe bar series through one signal
// generator and simulates the resulting orders against the execution-
// timeframe series. Every run owns its own ledger, tracker and analyzer;
// nothing is shared across runs.
type Runner struct {
	decisionBars []types.Bar
	generator    strategies.Generator
	simulator    *OrderSimulator
	costs        *CostCalculator
	ledger       *Ledger
	tracker      *PnLTracker
	analyzer     *PerformanceAnalyzer

	printTrades  bool
	showProgress bool
}

// Result is the full output of one backtest run: the trade log, the equity
// curve (one point per decision bar) and the summary statistics.
type Result struct {
	Trades      []types.TradeRecord
	Equity      []types.EquityPoint
	Metrics     Metrics
	RealizedPnL decimal.Decimal
}

// NewRunner validates the bar series and configuration up front; a runner is
// never constructed over malformed input.
func NewRunner(decisionBars, executionBars []types.Bar, gen strategies.Generator, cfg *Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidateSeries(decisionBars); err != nil {
		return nil, fmt.Errorf("decision series: %w", err)
	}
	if err := types.ValidateSeries(executionBars); err != nil {
		return nil, fmt.Errorf("execution series: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Order.Seed))
	initial := decimal.NewFromFloat(cfg.Position.InitialCapital)
	return &Runner{
		decisionBars: decisionBars,
		generator:    gen,
		simulator:    NewOrderSimulator(executionBars, cfg.Order, rng),
		costs:        NewCostCalculator(cfg.Cost),
		ledger:       NewLedger(cfg.Position),
		tracker:      NewPnLTracker(),
		analyzer:     NewPerformanceAnalyzer(initial),
		printTrades:  cfg.Reporting.PrintTrades,
	}, nil
}

// ShowProgress enables the progress bar over decision bars.
func (r *Runner) ShowProgress() {
	r.showProgress = true
}

// Run replays the whole decision series. The loop is sequential and single
// threaded; order resolution only ever touches execution bars strictly after
// the decision bar.
func (r *Runner) Run() (*Result, error) {
	signals, err := r.generator.Generate(r.decisionBars)
	if err != nil {
		return nil, err
	}
	if len(signals) != len(r.decisionBars) {
		return nil, ErrSignalCountMismatch
	}

	var bar *progressbar.ProgressBar
	if r.showProgress {
		bar = initProgressBar(len(r.decisionBars))
	}

	for i, decisionBar := range r.decisionBars {
		if sig := signals[i]; sig.Direction != types.Hold {
			if err := r.processSignal(decisionBar, sig); err != nil {
				return nil, err
			}
		}
		// Equity is sampled after every decision bar, not only trade bars.
		r.analyzer.Sample(decisionBar.Timestamp, r.ledger.Equity(decisionBar.Close))
		if bar != nil {
			bar.Add(1)
		}
	}

	return &Result{
		Trades:      r.tracker.Trades(),
		Equity:      r.analyzer.Curve(),
		Metrics:     r.analyzer.Metrics(r.tracker.Trades()),
		RealizedPnL: r.tracker.RealizedPnL(),
	}, nil
}

func (r *Runner) processSignal(decisionBar types.Bar, sig types.Signal) error {
	shares := r.ledger.SizeOrder(decisionBar.Close, sig.Direction)
	if !shares.IsPositive() {
		// Zero-share requests are dropped before they reach the simulator.
		return nil
	}

	fill := r.simulator.Simulate(types.OrderRequest{
		SignalTime: sig.Timestamp,
		Direction:  sig.Direction,
		Shares:     shares,
	})
	if fill == nil {
		// End of data: no future execution bar, the order is dropped.
		return nil
	}

	// Buys are sized against the decision close but fill at a later ask, so
	// the price can gap above what cash covers. Clip to the affordable share
	// count; a fill of zero shares is dropped like any other.
	if fill.Direction == types.Buy {
		affordable := r.costs.MaxAffordableShares(r.ledger.Cash(), fill.ExecutionPrice)
		if affordable.LessThan(fill.FilledShares) {
			if !affordable.IsPositive() {
				return nil
			}
			fill.FilledShares = affordable
			fill.Notional = fill.ExecutionPrice.Mul(affordable)
		}
	}

	costs, err := r.costs.TotalCost(fill, decisionBar.Bid, decisionBar.Ask)
	if err != nil {
		return err
	}

	// The entry price for a closing record is the average cost just before
	// the ledger mutates it.
	entryPrice := decimal.Zero
	if fill.Direction == types.Sell {
		entryPrice = r.ledger.AvgCost()
	}
	if err := r.ledger.ApplyFill(fill, costs.Commission); err != nil {
		return err
	}
	r.tracker.Record(fill, costs, entryPrice)

	if r.printTrades {
		fmt.Printf("%s executed: %s shares @ %s (cost: %s)\n",
			fill.Direction, fill.FilledShares, fill.ExecutionPrice.StringFixed(2), costs.TotalCost.StringFixed(2))
	}
	return nil
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Backtesting in progress..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
