package main

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"limitbook/book"
	"limitbook/domain"
	"limitbook/engine"
	"limitbook/marketdata"
)

// Console demo: runs a small session against one instrument's engine and
// prints the book after each step. The book itself owns no output surface;
// everything here is collaborator plumbing.
func main() {
	log, _ := zap.NewDevelopment()
	defer log.Sync()

	eng := engine.New(engine.WithLogger(log))
	eng.Start()

	rec, err := marketdata.NewRecorder(100, log)
	if err != nil {
		log.Fatal("recorder", zap.Error(err))
	}
	recorded := make(chan struct{})
	go func() {
		defer close(recorded)
		for ev := range eng.Trades() {
			fmt.Printf("trade: aggressor=%d resting=%d price=%.2f qty=%d\n",
				ev.AggressorID, ev.RestingID, ev.Price, ev.Quantity)
			rec.Record(ev.Trade)
		}
	}()

	type step struct {
		desc     string
		side     domain.Side
		price    float64
		quantity int32
		orderID  int64
	}
	steps := []step{
		{"BUY 10 @ 100.0", domain.SideBuy, 100.0, 10, 1},
		{"SELL 5 @ 101.0", domain.SideSell, 101.0, 5, 2},
		{"SELL 8 @ 99.0 (crosses bid 100.0)", domain.SideSell, 99.0, 8, 3},
		{"BUY 5 @ 98.0", domain.SideBuy, 98.0, 5, 4},
		{"BUY 3 @ 98.0 (queues behind id 4)", domain.SideBuy, 98.0, 3, 5},
		{"SELL 7 @ 102.0", domain.SideSell, 102.0, 7, 6},
	}
	for _, s := range steps {
		fmt.Printf("\n>> %s\n", s.desc)
		res := eng.Submit(s.side, s.price, s.quantity, s.orderID)
		if !res.Accepted {
			fmt.Printf("rejected: %s\n", res.Reason)
			continue
		}
		printBook(eng)
	}

	fmt.Printf("\n>> cancel order 5\n")
	if res := eng.Cancel(5); !res.Cancelled {
		fmt.Println("cancel: order 5 not found")
	}
	printBook(eng)

	fmt.Printf("\n>> SELL 10 @ 97.0 (sweeps the bid ladder)\n")
	eng.Submit(domain.SideSell, 97.0, 10, 7)
	printBook(eng)

	eng.Stop()
	<-recorded

	fmt.Printf("\nsession VWAP: %.4f over %d trades\n", rec.VWAP(), rec.TradeCount())
}

func printBook(eng *engine.Engine) {
	depth := eng.Depth(0)
	quote := eng.Quote()

	fmt.Println("=== ORDER BOOK ===")
	fmt.Println("ASKS:")
	for i := len(depth.Asks) - 1; i >= 0; i-- {
		lvl := depth.Asks[i]
		fmt.Printf("  $%.2f | %d\n", lvl.Price, lvl.Quantity)
	}
	fmt.Println("---")
	if math.IsInf(quote.Ask, 1) {
		fmt.Println("Best Ask: none")
	} else {
		fmt.Printf("Best Ask: $%.2f\n", quote.Ask)
	}
	if quote.Bid == book.NoBid {
		fmt.Println("Best Bid: none")
	} else {
		fmt.Printf("Best Bid: $%.2f\n", quote.Bid)
	}
	fmt.Println("---")
	fmt.Println("BIDS:")
	for _, lvl := range depth.Bids {
		fmt.Printf("  $%.2f | %d\n", lvl.Price, lvl.Quantity)
	}
	fmt.Println("==================")
}
