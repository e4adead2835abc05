package engine

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"backsim/types"

	"github.com/shopspring/decimal"
)

func TestWriteTradesCSV(t *testing.T) {
	signal := time.Date(2026, 1, 5, 9, 45, 0, 0, time.UTC)
	exec := signal.Add(time.Minute)
	trades := []types.TradeRecord{
		{
			ID:             0,
			SignalTime:     signal,
			ExecutionTime:  exec,
			Direction:      types.Buy,
			ExecutionPrice: decimal.RequireFromString("110"),
			FilledShares:   decimal.RequireFromString("10"),
			Notional:       decimal.RequireFromString("1100"),
			Commission:     decimal.RequireFromString("1.1"),
			TotalCost:      decimal.RequireFromString("1.1"),
		},
		{
			ID:             1,
			SignalTime:     signal.Add(time.Hour),
			ExecutionTime:  exec.Add(time.Hour),
			Direction:      types.Sell,
			ExecutionPrice: decimal.RequireFromString("120"),
			FilledShares:   decimal.RequireFromString("10"),
			Notional:       decimal.RequireFromString("1200"),
			Realized:       true,
			EntryPrice:     decimal.RequireFromString("110"),
			GrossPnL:       decimal.RequireFromString("100"),
			NetPnL:         decimal.RequireFromString("98.9"),
		},
	}

	var sb strings.Builder
	if err := writeTradesCSV(&sb, trades); err != nil {
		t.Fatalf("writeTradesCSV() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("writeTradesCSV() rows = %d, want header plus 2", len(records))
	}
	if records[0][0] != "trade_id" || records[0][13] != "net_pnl" {
		t.Errorf("writeTradesCSV() header = %v", records[0])
	}

	buy := records[1]
	if buy[3] != "BUY" {
		t.Errorf("writeTradesCSV() side = %q, want BUY", buy[3])
	}
	// Open legs leave the pnl columns blank.
	if buy[11] != "" || buy[12] != "" || buy[13] != "" {
		t.Errorf("writeTradesCSV() open leg pnl columns = %q %q %q, want blank", buy[11], buy[12], buy[13])
	}

	sell := records[2]
	if sell[11] != "110" || sell[12] != "100" || sell[13] != "98.9" {
		t.Errorf("writeTradesCSV() realized columns = %q %q %q", sell[11], sell[12], sell[13])
	}
	if sell[1] != signal.Add(time.Hour).Format(time.RFC3339) {
		t.Errorf("writeTradesCSV() signal time = %q", sell[1])
	}
}

func TestWriteEquityCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity.csv")
	curve := []types.EquityPoint{
		{Timestamp: time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC), Equity: decimal.RequireFromString("100000")},
		{Timestamp: time.Date(2026, 1, 5, 9, 45, 0, 0, time.UTC), Equity: decimal.RequireFromString("100100")},
	}
	if err := WriteEquityCSVFile(path, curve); err != nil {
		t.Fatalf("WriteEquityCSVFile() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back file: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("WriteEquityCSVFile() rows = %d, want 3", len(records))
	}
	if records[2][1] != "100100" {
		t.Errorf("WriteEquityCSVFile() equity = %q, want 100100", records[2][1])
	}
}
