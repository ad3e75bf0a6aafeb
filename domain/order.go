package domain

// Side represents the order side (Buy or Sell)
type Side int8

const (
	SideBuy Side = iota
	SideSell
)

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

func (s Side) String() string {
	if s == SideBuy {
		return "BUY"
	}
	return "SELL"
}

// Order is a limit order, either in flight through the matching loop or
// resting in a price level's FIFO queue.
//
// IDs are caller-assigned and must be unique among active orders. Remaining
// only ever decreases; the order leaves the book when it reaches zero or is
// cancelled. Seq is the arrival sequence number stamped by the book on
// acceptance and is the time-priority tiebreak.
type Order struct {
	ID        int64
	Side      Side
	Price     float64
	Remaining int32
	Seq       uint64
}
