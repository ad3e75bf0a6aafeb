// Package engine wraps a book in the single-writer discipline: one
// dedicated goroutine owns the book and drains an inbound request queue, so
// submissions and cancellations for the instrument are linearized and the
// queue's arrival order defines time priority.
package engine

import (
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"limitbook/book"
	"limitbook/domain"
)

// TradeEvent is a book trade record decorated with an exchange-assigned
// trade id, as published to consumers.
type TradeEvent struct {
	TradeID string
	domain.Trade
}

// Quote is a top-of-book snapshot. An empty side carries the book's
// sentinel (book.NoBid / book.NoAsk).
type Quote struct {
	Bid float64
	Ask float64
}

// Depth is a per-side depth snapshot, best levels first.
type Depth struct {
	Bids []book.LevelSnapshot
	Asks []book.LevelSnapshot
}

type reqKind int8

const (
	reqSubmit reqKind = iota
	reqCancel
	reqQuote
	reqDepth
)

type request struct {
	kind     reqKind
	side     domain.Side
	price    float64
	quantity int32
	orderID  int64
	depthMax int

	submit chan domain.SubmitResult
	cancel chan domain.CancelResult
	quote  chan Quote
	depth  chan Depth
}

// Engine owns one instrument's book. All operations are synchronous
// request/reply through the writer goroutine; trade notifications stream out
// on a buffered channel. A slow trade consumer backpressures the writer
// rather than dropping trades.
type Engine struct {
	book     *book.Book
	requests chan request
	trades   chan TradeEvent
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	log      *zap.Logger
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	ladder      book.LadderKind
	queueDepth  int
	tradeBuffer int
	log         *zap.Logger
}

// WithLadder selects the book's ladder implementation.
func WithLadder(kind book.LadderKind) Option {
	return func(c *config) { c.ladder = kind }
}

// WithQueueDepth sets the inbound request queue capacity.
func WithQueueDepth(n int) Option {
	return func(c *config) { c.queueDepth = n }
}

// WithTradeBuffer sets the trade notification channel capacity.
func WithTradeBuffer(n int) Option {
	return func(c *config) { c.tradeBuffer = n }
}

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}

// New creates an engine for one instrument.
func New(opts ...Option) *Engine {
	cfg := config{
		ladder:      book.TreeLadderKind,
		queueDepth:  1024,
		tradeBuffer: 1024,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{
		book:     book.NewWithLadder(cfg.ladder),
		requests: make(chan request, cfg.queueDepth),
		trades:   make(chan TradeEvent, cfg.tradeBuffer),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		log:      cfg.log,
	}
}

// Start launches the writer goroutine. Operations submitted before Start
// sit in the queue until it runs.
func (e *Engine) Start() {
	go func() {
		// Pin the writer to an OS thread to keep the book's working set
		// on one cache domain.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		e.run()
	}()
}

// Stop drains no further requests and closes the trade stream. Operations
// must not be invoked after Stop returns.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
	<-e.done
}

// Trades exposes the trade notification stream. Closed on Stop.
func (e *Engine) Trades() <-chan TradeEvent {
	return e.trades
}

// Submit places a limit order and blocks until the writer has matched it.
func (e *Engine) Submit(side domain.Side, price float64, quantity int32, orderID int64) domain.SubmitResult {
	resp := make(chan domain.SubmitResult, 1)
	e.requests <- request{kind: reqSubmit, side: side, price: price, quantity: quantity, orderID: orderID, submit: resp}
	return <-resp
}

// Cancel removes a resting order by id.
func (e *Engine) Cancel(orderID int64) domain.CancelResult {
	resp := make(chan domain.CancelResult, 1)
	e.requests <- request{kind: reqCancel, orderID: orderID, cancel: resp}
	return <-resp
}

// Quote returns the current best bid and ask, serialized through the writer
// so it reflects every prior operation.
func (e *Engine) Quote() Quote {
	resp := make(chan Quote, 1)
	e.requests <- request{kind: reqQuote, quote: resp}
	return <-resp
}

// Depth returns up to max levels per side; max <= 0 returns all.
func (e *Engine) Depth(max int) Depth {
	resp := make(chan Depth, 1)
	e.requests <- request{kind: reqDepth, depthMax: max, depth: resp}
	return <-resp
}

func (e *Engine) run() {
	defer close(e.done)
	defer close(e.trades)
	for {
		select {
		case <-e.stop:
			// Serve anything already queued so no caller is left
			// blocked on a reply.
			for {
				select {
				case req := <-e.requests:
					e.handle(req)
				default:
					return
				}
			}
		case req := <-e.requests:
			e.handle(req)
		}
	}
}

func (e *Engine) handle(req request) {
	switch req.kind {
	case reqSubmit:
		res := e.book.Submit(req.side, req.price, req.quantity, req.orderID)
		if !res.Accepted {
			e.log.Warn("order rejected",
				zap.Int64("order_id", req.orderID),
				zap.String("side", req.side.String()),
				zap.Float64("price", req.price),
				zap.Int32("quantity", req.quantity),
				zap.String("reason", res.Reason.String()),
			)
		}
		req.submit <- res
		for _, t := range res.Trades {
			ev := TradeEvent{TradeID: uuid.NewString(), Trade: t}
			e.trades <- ev
			e.log.Debug("trade executed",
				zap.String("trade_id", ev.TradeID),
				zap.Int64("aggressor", t.AggressorID),
				zap.Int64("resting", t.RestingID),
				zap.Float64("price", t.Price),
				zap.Int32("quantity", t.Quantity),
				zap.Uint64("seq", t.Seq),
			)
		}
	case reqCancel:
		res := e.book.Cancel(req.orderID)
		if !res.Cancelled {
			e.log.Debug("cancel missed", zap.Int64("order_id", req.orderID))
		}
		req.cancel <- res
	case reqQuote:
		req.quote <- Quote{Bid: e.book.BestBid(), Ask: e.book.BestAsk()}
	case reqDepth:
		bids, asks := e.book.Depth(req.depthMax)
		req.depth <- Depth{Bids: bids, Asks: asks}
	}
}
