package marketdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"backsim/types"

	"github.com/shopspring/decimal"
)

var ErrNoRows = errors.New("no data rows in csv file")

// DefaultSpreadPct is the synthetic half-spread applied around the close when
// the source data carries no quotes.
const DefaultSpreadPct = 0.0001

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
}

// LoadCSV reads a one-minute bar file with Datetime, Close, High, Low, Open,
// Volume columns. Leading metadata rows (ticker and column-label lines) are
// skipped. Bid and ask are synthesized around the close at spreadPct; pass 0
// for the default spread.
func LoadCSV(path string, spreadPct float64) ([]types.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if spreadPct == 0 {
		spreadPct = DefaultSpreadPct
	}
	spread := decimal.NewFromFloat(spreadPct)
	one := decimal.NewFromInt(1)

	var bars []types.Bar
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		ts, ok := parseTime(row[0])
		if !ok {
			// Metadata/header row.
			continue
		}
		closePrice, err := decimal.NewFromString(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %s: parse close: %w", row[0], err)
		}
		high, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %s: parse high: %w", row[0], err)
		}
		low, err := decimal.NewFromString(row[3])
		if err != nil {
			return nil, fmt.Errorf("row %s: parse low: %w", row[0], err)
		}
		open, err := decimal.NewFromString(row[4])
		if err != nil {
			return nil, fmt.Errorf("row %s: parse open: %w", row[0], err)
		}
		volume, err := decimal.NewFromString(row[5])
		if err != nil {
			return nil, fmt.Errorf("row %s: parse volume: %w", row[0], err)
		}

		bars = append(bars, types.Bar{
			Timestamp: ts,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePrice,
			Volume:    volume,
			Bid:       closePrice.Mul(one.Sub(spread)),
			Ask:       closePrice.Mul(one.Add(spread)),
		})
	}
	if len(bars) == 0 {
		return nil, ErrNoRows
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp.Before(bars[j].Timestamp) })
	if err := types.ValidateSeries(bars); err != nil {
		return nil, err
	}
	return bars, nil
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ExtractMetadata pulls the ticker and interval out of a file name shaped
// like AAPL_1m_20251107.csv.
func ExtractMetadata(path string) (ticker, interval string) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(stem, "_")
	ticker = parts[0]
	interval = "1m"
	if len(parts) > 1 {
		interval = parts[1]
	}
	return ticker, interval
}
