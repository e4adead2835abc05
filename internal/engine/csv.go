package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"backsim/types"
)

// WriteTradesCSVFile writes the trade log to a CSV file at the given path.
func WriteTradesCSVFile(path string, trades []types.TradeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trades file: %w", err)
	}
	defer f.Close()

	return writeTradesCSV(f, trades)
}

// writeTradesCSV writes trades to any io.Writer as CSV. Pass os.Stdout for
// debugging, or a file.
func writeTradesCSV(w io.Writer, trades []types.TradeRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"trade_id",
		"signal_time",
		"execution_time",
		"side",
		"execution_price",
		"filled_shares",
		"notional",
		"commission",
		"slippage_cost",
		"spread_cost",
		"total_cost",
		"entry_price",
		"gross_pnl",
		"net_pnl",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, tr := range trades {
		record := []string{
			strconv.Itoa(tr.ID),
			tr.SignalTime.Format(time.RFC3339),
			tr.ExecutionTime.Format(time.RFC3339),
			tr.Direction.String(),
			tr.ExecutionPrice.String(),
			tr.FilledShares.String(),
			tr.Notional.String(),
			tr.Commission.String(),
			tr.SlippageCost.String(),
			tr.SpreadCost.String(),
			tr.TotalCost.String(),
			"", "", "",
		}
		if tr.Realized {
			record[11] = tr.EntryPrice.String()
			record[12] = tr.GrossPnL.String()
			record[13] = tr.NetPnL.String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteEquityCSVFile writes the equity curve to a CSV file at the given path.
func WriteEquityCSVFile(path string, curve []types.EquityPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create equity file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write([]string{"timestamp", "equity"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range curve {
		record := []string{
			p.Timestamp.Format(time.RFC3339),
			p.Equity.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
