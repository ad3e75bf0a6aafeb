package marketdata

import (
	"time"

	"go.uber.org/zap"

	"limitbook/domain"
)

// Recorder feeds executed trades into a VWAP accumulator and a rolling
// statistics window, logging executions that look anomalous against the
// recent series. One Recorder serves one instrument and expects to be driven
// from a single goroutine draining the trade stream in order.
type Recorder struct {
	vwap  *VWAP
	stats *Stats
	log   *zap.Logger
	now   func() time.Time
}

// NewRecorder wires a recorder with the given VWAP window.
func NewRecorder(vwapWindow int, log *zap.Logger) (*Recorder, error) {
	vwap, err := NewVWAP(vwapWindow)
	if err != nil {
		return nil, err
	}
	stats, err := NewStats(DefaultStatsWindow)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{vwap: vwap, stats: stats, log: log, now: time.Now}, nil
}

// Record observes one trade. The anomaly test runs against the window as it
// stood before this trade joined it.
func (r *Recorder) Record(t domain.Trade) {
	if r.stats.IsAnomaly(t.Price) {
		r.log.Warn("anomalous execution price",
			zap.Float64("price", t.Price),
			zap.Float64("mean", r.stats.Mean()),
			zap.Float64("stddev", r.stats.StdDev()),
			zap.Uint64("seq", t.Seq),
		)
	}
	if err := r.vwap.Observe(t.Price, t.Quantity); err != nil {
		// Trades from the book always carry positive quantity.
		r.log.Error("dropping trade observation", zap.Error(err))
		return
	}
	r.stats.Observe(r.now(), t.Price)
}

// VWAP returns the current volume-weighted average price.
func (r *Recorder) VWAP() float64 {
	return r.vwap.Value()
}

// MovingAverage returns the rolling mean execution price.
func (r *Recorder) MovingAverage() float64 {
	return r.stats.Mean()
}

// TradeCount returns the number of trades in the VWAP window.
func (r *Recorder) TradeCount() int {
	return r.vwap.Count()
}
