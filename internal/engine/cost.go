package engine

import (
	"errors"

	"backsim/types"

	"github.com/shopspring/decimal"
)

var ErrMalformedFill = errors.New("malformed fill for cost calculation")

// CostCalculator prices a fill. It carries no state; the cost of a fill
// depends only on the configuration and the quote it traded against.
type CostCalculator struct {
	cfg CostConfig
}

func NewCostCalculator(cfg CostConfig) *CostCalculator {
	return &CostCalculator{cfg: cfg}
}

// Commission is either a fixed amount per order or a fraction of notional,
// selected by configuration.
func (c *CostCalculator) Commission(notional decimal.Decimal) decimal.Decimal {
	if c.cfg.CommissionType == CommissionFixed {
		return decimal.NewFromFloat(c.cfg.CommissionFixed)
	}
	return notional.Mul(decimal.NewFromFloat(c.cfg.CommissionPct))
}

// MaxAffordableShares is the largest whole share count whose notional plus
// commission fits within cash at the given price.
func (c *CostCalculator) MaxAffordableShares(cash, price decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	if c.cfg.CommissionType == CommissionFixed {
		available := cash.Sub(decimal.NewFromFloat(c.cfg.CommissionFixed))
		if available.IsNegative() {
			return decimal.Zero
		}
		return wholeSharesWithin(available, price)
	}
	perShare := price.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(c.cfg.CommissionPct)))
	return wholeSharesWithin(cash, perShare)
}

// wholeSharesWithin floors budget/price to whole shares, stepping down one
// share when division rounding lands the floored quotient above the budget.
func wholeSharesWithin(budget, price decimal.Decimal) decimal.Decimal {
	shares := budget.Div(price).Floor()
	if shares.Mul(price).GreaterThan(budget) {
		shares = shares.Sub(decimal.NewFromInt(1))
	}
	if shares.IsNegative() {
		return decimal.Zero
	}
	return shares
}

// TotalCost breaks down the cost of one fill against the decision bar's
// quote. Spread cost is informational; the total actually deducted from cash
// is commission plus slippage.
func (c *CostCalculator) TotalCost(fill *types.Fill, bid, ask decimal.Decimal) (types.CostBreakdown, error) {
	if fill.FilledShares.IsNegative() || fill.ExecutionPrice.IsNegative() || bid.IsNegative() || ask.IsNegative() {
		return types.CostBreakdown{}, ErrMalformedFill
	}
	commission := c.Commission(fill.Notional)
	slippageCost := fill.SlippagePerShare.Abs().Mul(fill.FilledShares)
	spreadCost := ask.Sub(bid).Mul(fill.FilledShares)
	return types.CostBreakdown{
		Commission:   commission,
		SlippageCost: slippageCost,
		SpreadCost:   spreadCost,
		TotalCost:    commission.Add(slippageCost),
	}, nil
}
