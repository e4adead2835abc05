package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRequest is a sized trading intent derived from a signal. Requests for
// zero shares are dropped by the caller and never reach the simulator.
type OrderRequest struct {
	SignalTime time.Time
	Direction  Direction
	Shares     decimal.Decimal
}

// Fill is the simulated outcome of an order request, resolved against the
// first finer-granularity bar strictly after the signal time.
type Fill struct {
	SignalTime       time.Time
	ExecutionTime    time.Time
	Direction        Direction
	BasePrice        decimal.Decimal
	ExecutionPrice   decimal.Decimal
	SlippagePerShare decimal.Decimal
	RequestedShares  decimal.Decimal
	FilledShares     decimal.Decimal
	Notional         decimal.Decimal
}
