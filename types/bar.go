package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptySeries     = errors.New("bar series is empty")
	ErrTimestampOrder  = errors.New("bar timestamps are not strictly increasing")
	ErrCrossedQuote    = errors.New("bar has bid greater than ask")
	ErrCloseOutOfQuote = errors.New("bar close is outside the bid/ask quote")
)

// Bar is one sampling interval of market data. The Timestamp marks the start
// of the interval; Bid and Ask are the prevailing quote for the interval.
type Bar struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
	Bid       decimal.Decimal `json:"bid"`
	Ask       decimal.Decimal `json:"ask"`
}

// ValidateSeries fails fast on malformed input before any simulation starts:
// empty series, non-monotonic timestamps, or crossed/inconsistent quotes.
func ValidateSeries(bars []Bar) error {
	if len(bars) == 0 {
		return ErrEmptySeries
	}
	for i, b := range bars {
		if i > 0 && !b.Timestamp.After(bars[i-1].Timestamp) {
			return fmt.Errorf("bar %d at %s: %w", i, b.Timestamp, ErrTimestampOrder)
		}
		if b.Bid.GreaterThan(b.Ask) {
			return fmt.Errorf("bar %d at %s: %w", i, b.Timestamp, ErrCrossedQuote)
		}
		if b.Close.LessThan(b.Bid) || b.Close.GreaterThan(b.Ask) {
			return fmt.Errorf("bar %d at %s: %w", i, b.Timestamp, ErrCloseOutOfQuote)
		}
	}
	return nil
}
