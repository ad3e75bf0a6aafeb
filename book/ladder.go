package book

import (
	"container/list"

	"limitbook/domain"
)

// Ladder is one side of the book: price levels ordered best-first, each
// holding a FIFO queue of resting orders. Implementations must never retain
// an empty level — any best-level scan assumes the first level is non-empty.
type Ladder interface {
	// Push appends the order to the back of its price level's queue,
	// creating the level if this is the first order at that price.
	Push(o *domain.Order)

	// Remove takes the order out of its level's queue and drops the level
	// if the queue empties. Unknown orders are ignored.
	Remove(o *domain.Order)

	// Best returns the best price level, or nil when the side is empty.
	Best() *Level

	// BestPrice returns the best price, with ok false on an empty side.
	BestPrice() (price float64, ok bool)

	// Depth returns up to max levels best-first; max <= 0 means all.
	Depth(max int) []LevelSnapshot

	// Levels returns the number of price levels.
	Levels() int

	// Empty reports whether the side holds no orders.
	Empty() bool
}

// Level holds all resting orders at one price on one side, in strict
// arrival order.
type Level struct {
	Price  float64
	Orders *list.List // of *domain.Order, front is oldest
}

func newLevel(price float64) *Level {
	return &Level{Price: price, Orders: list.New()}
}

// Front returns the oldest resting order at this level. A level with an
// empty queue must not exist; finding one means the ladder diverged from its
// contract, which would produce wrong trades, so it is fatal.
func (l *Level) Front() *domain.Order {
	front := l.Orders.Front()
	if front == nil {
		panic("book: empty price level survived a structural change")
	}
	return front.Value.(*domain.Order)
}

// TotalQuantity sums the remaining quantity across the level's queue.
func (l *Level) TotalQuantity() int64 {
	var total int64
	for e := l.Orders.Front(); e != nil; e = e.Next() {
		total += int64(e.Value.(*domain.Order).Remaining)
	}
	return total
}

// remove scans the queue for the order with the given id and unlinks it.
// IDs are unique so the removal is unambiguous. Returns false if absent.
func (l *Level) remove(orderID int64) bool {
	for e := l.Orders.Front(); e != nil; e = e.Next() {
		if e.Value.(*domain.Order).ID == orderID {
			l.Orders.Remove(e)
			return true
		}
	}
	return false
}

// LevelSnapshot is one row of a depth snapshot: a price, the aggregate
// remaining quantity at that price and the number of queued orders.
type LevelSnapshot struct {
	Price    float64
	Quantity int64
	Orders   int
}

func snapshotLevel(l *Level) LevelSnapshot {
	return LevelSnapshot{Price: l.Price, Quantity: l.TotalQuantity(), Orders: l.Orders.Len()}
}

// LadderKind selects a ladder implementation.
type LadderKind int

const (
	// TreeLadderKind orders levels with a red-black tree. Default.
	TreeLadderKind LadderKind = iota
	// BTreeLadderKind orders levels with a B-tree.
	BTreeLadderKind
)

// NewLadder builds a ladder of the given kind for one side.
func NewLadder(kind LadderKind, side domain.Side) Ladder {
	switch kind {
	case BTreeLadderKind:
		return NewBTreeLadder(side)
	default:
		return NewTreeLadder(side)
	}
}
