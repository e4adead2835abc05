package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostBreakdown attributes the transaction cost of one fill. SpreadCost is
// informational only and is not deducted from cash.
type CostBreakdown struct {
	Commission   decimal.Decimal
	SlippageCost decimal.Decimal
	SpreadCost   decimal.Decimal
	TotalCost    decimal.Decimal
}

// TradeRecord is an immutable historical entry, one per fill. Closing legs
// carry the entry price and realized PnL; Realized is false on buys.
type TradeRecord struct {
	ID             int
	SignalTime     time.Time
	ExecutionTime  time.Time
	Direction      Direction
	ExecutionPrice decimal.Decimal
	FilledShares   decimal.Decimal
	Notional       decimal.Decimal
	Commission     decimal.Decimal
	SlippageCost   decimal.Decimal
	SpreadCost     decimal.Decimal
	TotalCost      decimal.Decimal

	Realized   bool
	EntryPrice decimal.Decimal
	GrossPnL   decimal.Decimal
	NetPnL     decimal.Decimal
}

// EquityPoint is a timestamped portfolio valuation, one per processed bar.
type EquityPoint struct {
	Timestamp time.Time
	Equity    decimal.Decimal
}
