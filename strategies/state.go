package strategies

import "backsim/types"

// positionState is the per-run state machine of the intraday strategies:
// Flat (direction Hold) or InPosition(direction, entry price). Each Generate
// call owns a fresh value, so concurrent runs never share state.
type positionState struct {
	direction  types.Direction
	entryPrice float64
	entries    int
}

func (s *positionState) inPosition() bool { return s.direction != types.Hold }

func (s *positionState) enter(dir types.Direction, price float64) {
	s.direction = dir
	s.entryPrice = price
	s.entries++
}

func (s *positionState) exit() {
	s.direction = types.Hold
	s.entryPrice = 0
}

// resetSession clears all session state, including the entry counter.
// Nothing carries across a session boundary.
func (s *positionState) resetSession() {
	*s = positionState{}
}

func (s *positionState) entriesExhausted(max int) bool {
	return max > 0 && s.entries >= max
}

// exitDirection evaluates the exit conditions for the current bar in priority
// order: stop loss, profit target, then the strategy-specific reversal. Only
// the first match fires. Percentage thresholds are multiplicative against the
// entry price. Returns the closing direction and whether an exit triggered.
func (s *positionState) exitDirection(bar types.Bar, stopLossPct, profitTargetPct float64, reversal bool) (types.Direction, bool) {
	low := bar.Low.InexactFloat64()
	high := bar.High.InexactFloat64()
	switch s.direction {
	case types.Buy:
		switch {
		case low <= s.entryPrice*(1-stopLossPct):
			return types.Sell, true
		case high >= s.entryPrice*(1+profitTargetPct):
			return types.Sell, true
		case reversal:
			return types.Sell, true
		}
	case types.Sell:
		switch {
		case high >= s.entryPrice*(1+stopLossPct):
			return types.Buy, true
		case low <= s.entryPrice*(1-profitTargetPct):
			return types.Buy, true
		case reversal:
			return types.Buy, true
		}
	}
	return types.Hold, false
}
