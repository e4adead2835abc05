package types

import "time"

// Direction is a per-bar trading decision. Hold is the zero value so an
// unset signal is a no-op.
type Direction int

const (
	Hold Direction = 0
	Buy  Direction = 1
	Sell Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Opposite returns the closing direction for an open position.
func (d Direction) Opposite() Direction {
	return -d
}

// Signal is one decision point, emitted at most once per bar.
type Signal struct {
	Timestamp time.Time
	Direction Direction
}
