package marketdata

import (
	"errors"
	"fmt"
	"time"

	"backsim/types"

	"github.com/shopspring/decimal"
)

var ErrIntervalNotSupported = errors.New("timeframe not supported for resampling")

// Resample aggregates one-minute bars into the target timeframe. Buckets are
// stamped at their start; volume is summed, the quote is rebuilt around the
// bucket close from the bucket's average relative spread so that the
// bid ≤ close ≤ ask invariant survives aggregation.
func Resample(bars []types.Bar, interval types.Interval) ([]types.Bar, error) {
	d, ok := types.IntervalToTime[interval]
	if !ok {
		return nil, fmt.Errorf("%q: %w", interval, ErrIntervalNotSupported)
	}
	if err := types.ValidateSeries(bars); err != nil {
		return nil, err
	}
	if d == time.Minute {
		return bars, nil
	}

	var out []types.Bar
	var bucket []types.Bar
	var bucketStart time.Time

	flush := func() {
		if len(bucket) > 0 {
			out = append(out, aggregate(bucketStart, bucket))
			bucket = bucket[:0]
		}
	}

	for _, b := range bars {
		start := bucketOf(b.Timestamp, d)
		if len(bucket) == 0 || !start.Equal(bucketStart) {
			flush()
			bucketStart = start
		}
		bucket = append(bucket, b)
	}
	flush()
	return out, nil
}

func bucketOf(ts time.Time, d time.Duration) time.Time {
	if d >= 24*time.Hour {
		y, m, day := ts.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, ts.Location())
	}
	return ts.Truncate(d)
}

func aggregate(start time.Time, bucket []types.Bar) types.Bar {
	agg := types.Bar{
		Timestamp: start,
		Open:      bucket[0].Open,
		High:      bucket[0].High,
		Low:       bucket[0].Low,
		Close:     bucket[len(bucket)-1].Close,
	}
	halfSpreadSum := decimal.Zero
	two := decimal.NewFromInt(2)
	for _, b := range bucket {
		if b.High.GreaterThan(agg.High) {
			agg.High = b.High
		}
		if b.Low.LessThan(agg.Low) {
			agg.Low = b.Low
		}
		agg.Volume = agg.Volume.Add(b.Volume)

		mid := b.Bid.Add(b.Ask).Div(two)
		if mid.IsPositive() {
			halfSpreadSum = halfSpreadSum.Add(b.Ask.Sub(b.Bid).Div(two).Div(mid))
		}
	}
	halfSpread := halfSpreadSum.Div(decimal.NewFromInt(int64(len(bucket))))
	one := decimal.NewFromInt(1)
	agg.Bid = agg.Close.Mul(one.Sub(halfSpread))
	agg.Ask = agg.Close.Mul(one.Add(halfSpread))
	return agg
}
