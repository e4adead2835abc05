package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PrintReport writes the performance summary in a human-readable form.
func PrintReport(res *Result) {
	m := res.Metrics

	fmt.Println("===== Backtest Report =====")
	fmt.Printf("Initial Capital:       %s\n", m.InitialCapital.StringFixed(2))
	fmt.Printf("Final Equity:          %s\n", m.FinalEquity.StringFixed(2))
	fmt.Printf("Days:                  %d\n", m.Days)

	fmt.Println("\n-- Returns --")
	fmt.Printf("Total Return:          %s%%\n", m.TotalReturn.Mul(hundred).StringFixed(2))
	fmt.Printf("Annualized Return:     %s%%\n", m.AnnualReturn.Mul(hundred).StringFixed(2))
	fmt.Printf("Max Drawdown:          %s%%\n", m.MaxDrawdown.Mul(hundred).StringFixed(2))

	fmt.Println("\n-- Risk-Adjusted Metrics --")
	fmt.Printf("Sharpe Ratio:          %s\n", m.SharpeRatio.StringFixed(2))
	fmt.Printf("Sortino Ratio:         %s\n", m.SortinoRatio.StringFixed(2))

	fmt.Println("\n-- Trades --")
	fmt.Printf("Total Trades:          %d\n", m.TotalTrades)
	fmt.Printf("Closed Trades:         %d\n", m.ClosedTrades)
	fmt.Printf("Win Rate:              %s%%\n", m.WinRate.Mul(hundred).StringFixed(2))
	fmt.Printf("Profit Factor:         %s\n", m.ProfitFactor.StringFixed(2))
	fmt.Printf("Realized PnL:          %s\n", res.RealizedPnL.StringFixed(2))

	fmt.Println("===========================")
}
