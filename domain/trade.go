package domain

// Trade records one match between an incoming order and a resting order.
// Execution always happens at the resting order's price: price improvement
// favours the passive side, never the aggressor's limit or the midpoint.
type Trade struct {
	AggressorID int64
	RestingID   int64
	Price       float64
	Quantity    int32
	Seq         uint64
}

// RejectReason classifies why a submission was refused.
type RejectReason int8

const (
	RejectNone RejectReason = iota
	RejectInvalidQuantity
	RejectInvalidPrice
	RejectDuplicateID
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return ""
	case RejectInvalidQuantity:
		return "invalid quantity"
	case RejectInvalidPrice:
		return "invalid price"
	case RejectDuplicateID:
		return "duplicate order id"
	}
	return "unknown"
}

// SubmitResult acknowledges or rejects one submission. A rejected submission
// leaves the book untouched: Trades is empty and Resting is zero. For an
// accepted submission Resting is the quantity left on the book after
// matching; zero means the order was fully filled on entry and has no
// resting footprint.
type SubmitResult struct {
	OrderID  int64
	Accepted bool
	Reason   RejectReason
	Trades   []Trade
	Resting  int32
}

// CancelResult reports the outcome of a cancellation. A repeated or unknown
// id is expected in the surrounding system and comes back with Cancelled
// false rather than an error. Remaining is the quantity that was pulled off
// the book; already-executed quantity left as trades long ago.
type CancelResult struct {
	OrderID   int64
	Cancelled bool
	Remaining int32
}
