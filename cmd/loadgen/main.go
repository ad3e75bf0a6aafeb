package main

import (
	"flag"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"limitbook/domain"
	"limitbook/engine"
	"limitbook/marketdata"
)

// Throughput driver: concurrent producers push randomly crossing limit
// orders through one engine while a consumer drains the trade stream into a
// recorder. The producers overlap prices around a midpoint so roughly half
// the flow is marketable.
func main() {
	duration := flag.Duration("duration", 5*time.Second, "test duration")
	workers := flag.Int("workers", max(runtime.NumCPU()-2, 1), "producer goroutines")
	flag.Parse()

	log, _ := zap.NewProduction()
	defer log.Sync()

	eng := engine.New(
		engine.WithLogger(log),
		engine.WithQueueDepth(65536),
		engine.WithTradeBuffer(65536),
	)
	eng.Start()

	rec, err := marketdata.NewRecorder(1024, log)
	if err != nil {
		log.Fatal("recorder", zap.Error(err))
	}

	var (
		orderCount atomic.Int64
		tradeCount atomic.Int64
	)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for ev := range eng.Trades() {
			rec.Record(ev.Trade)
			tradeCount.Add(1)
		}
	}()

	fmt.Printf("loadgen: %d producers for %v\n", *workers, *duration)

	var nextID atomic.Int64
	stop := make(chan struct{})
	var wg sync.WaitGroup
	start := time.Now()

	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
				}
				// Overlapping bands around 100.00 so flow crosses.
				side := domain.SideBuy
				price := 99.00 + float64(rng.Intn(200))/100
				if rng.Intn(2) == 1 {
					side = domain.SideSell
				}
				qty := int32(rng.Intn(100) + 1)
				eng.Submit(side, price, qty, nextID.Add(1))
				orderCount.Add(1)
			}
		}(int64(w) + 1)
	}

	time.Sleep(*duration)
	close(stop)
	wg.Wait()
	eng.Stop()
	<-drained

	elapsed := time.Since(start)
	orders := orderCount.Load()
	trades := tradeCount.Load()
	fmt.Printf("orders:  %d (%.0f/s)\n", orders, float64(orders)/elapsed.Seconds())
	fmt.Printf("trades:  %d (%.0f/s)\n", trades, float64(trades)/elapsed.Seconds())
	fmt.Printf("vwap:    %.4f\n", rec.VWAP())
}
