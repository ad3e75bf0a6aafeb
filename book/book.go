// Package book implements a single-instrument limit order book with an
// embedded price-time-priority matching engine.
//
// The book is single-threaded and reentrant-unsafe: Submit and Cancel must
// not run concurrently against the same instance. Embedding in a concurrent
// system is a composition concern; see the engine package for the
// single-writer wrapper. Multiple instruments are multiple independent
// instances.
package book

import (
	"math"

	"limitbook/domain"
)

// NoBid is the best-bid sentinel for an empty bid side.
const NoBid = 0.0

// NoAsk is the best-ask sentinel for an empty ask side.
var NoAsk = math.Inf(1)

// Book is one instrument's limit order book: a ladder per side, a flat
// index from order id to the resting order, and a best-price cache that is
// recomputed after every structural change.
type Book struct {
	bids   Ladder
	asks   Ladder
	orders map[int64]*domain.Order

	bestBid float64
	bestAsk float64

	seq uint64
}

// New creates an empty book with the default ladder implementation.
func New() *Book {
	return NewWithLadder(TreeLadderKind)
}

// NewWithLadder creates an empty book using the given ladder kind.
func NewWithLadder(kind LadderKind) *Book {
	return &Book{
		bids:    NewLadder(kind, domain.SideBuy),
		asks:    NewLadder(kind, domain.SideSell),
		orders:  make(map[int64]*domain.Order),
		bestBid: NoBid,
		bestAsk: NoAsk,
	}
}

// Submit validates an incoming limit order, matches it against the opposite
// ladder and rests any remainder at its limit price. All validation happens
// before any mutation, so a rejected submission leaves no trace.
func (b *Book) Submit(side domain.Side, price float64, quantity int32, orderID int64) domain.SubmitResult {
	res := domain.SubmitResult{OrderID: orderID}
	switch {
	case quantity <= 0:
		res.Reason = domain.RejectInvalidQuantity
		return res
	case price <= 0 || math.IsInf(price, 0) || math.IsNaN(price):
		res.Reason = domain.RejectInvalidPrice
		return res
	}
	if _, active := b.orders[orderID]; active {
		res.Reason = domain.RejectDuplicateID
		return res
	}
	res.Accepted = true

	b.seq++
	incoming := &domain.Order{
		ID:        orderID,
		Side:      side,
		Price:     price,
		Remaining: quantity,
		Seq:       b.seq,
	}

	res.Trades = b.match(incoming)

	if incoming.Remaining > 0 {
		b.side(side).Push(incoming)
		b.orders[orderID] = incoming
		res.Resting = incoming.Remaining
	}
	b.refreshBest()
	return res
}

// match walks the opposite ladder from the best level outward while the
// incoming limit still crosses, consuming resting quantity oldest-first.
// Equal prices cross: the boundary is inclusive.
func (b *Book) match(incoming *domain.Order) []domain.Trade {
	var trades []domain.Trade
	opposite := b.side(incoming.Side.Opposite())

	for incoming.Remaining > 0 {
		level := opposite.Best()
		if level == nil || !crosses(incoming.Side, incoming.Price, level.Price) {
			break
		}

		resting := level.Front()
		qty := min(incoming.Remaining, resting.Remaining)
		incoming.Remaining -= qty
		resting.Remaining -= qty

		b.seq++
		trades = append(trades, domain.Trade{
			AggressorID: incoming.ID,
			RestingID:   resting.ID,
			Price:       resting.Price,
			Quantity:    qty,
			Seq:         b.seq,
		})

		if resting.Remaining == 0 {
			delete(b.orders, resting.ID)
			opposite.Remove(resting)
		}
	}
	return trades
}

func crosses(side domain.Side, limit, levelPrice float64) bool {
	if side == domain.SideBuy {
		return levelPrice <= limit
	}
	return levelPrice >= limit
}

// Cancel removes a resting order by id. An id not in the index is an
// expected outcome (already filled, already cancelled, or never accepted)
// and reports Cancelled false. Only the remaining quantity is pulled;
// executed quantity already left the book as trades.
func (b *Book) Cancel(orderID int64) domain.CancelResult {
	o, ok := b.orders[orderID]
	if !ok {
		return domain.CancelResult{OrderID: orderID}
	}
	b.side(o.Side).Remove(o)
	delete(b.orders, orderID)
	b.refreshBest()
	return domain.CancelResult{OrderID: orderID, Cancelled: true, Remaining: o.Remaining}
}

// BestBid returns the cached best bid, or NoBid on an empty bid side. O(1).
func (b *Book) BestBid() float64 {
	return b.bestBid
}

// BestAsk returns the cached best ask, or NoAsk on an empty ask side. O(1).
func (b *Book) BestAsk() float64 {
	return b.bestAsk
}

// Depth returns up to max levels per side, best-first, as
// (price, aggregate quantity, order count) rows. max <= 0 returns all
// levels. Read-only; used for monitoring and debugging.
func (b *Book) Depth(max int) (bids, asks []LevelSnapshot) {
	return b.bids.Depth(max), b.asks.Depth(max)
}

// OpenOrders returns the number of resting orders across both sides.
func (b *Book) OpenOrders() int {
	return len(b.orders)
}

func (b *Book) side(s domain.Side) Ladder {
	if s == domain.SideBuy {
		return b.bids
	}
	return b.asks
}

// refreshBest recomputes the cache from both ladders. Called
// unconditionally after every submit and cancel: cheap relative to the
// matching scan and keeps the cache trivially in step with the ladders.
func (b *Book) refreshBest() {
	if p, ok := b.bids.BestPrice(); ok {
		b.bestBid = p
	} else {
		b.bestBid = NoBid
	}
	if p, ok := b.asks.BestPrice(); ok {
		b.bestAsk = p
	} else {
		b.bestAsk = NoAsk
	}
}
