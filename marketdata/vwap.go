// Package marketdata holds trade-stream consumers: a windowed VWAP
// accumulator and a rolling price statistics / anomaly detector. Both are
// collaborators of the matching core, fed from its trade notifications; they
// never touch the book.
package marketdata

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidWindow rejects a non-positive window at construction.
	ErrInvalidWindow = errors.New("marketdata: window must be positive")
	// ErrInvalidVolume rejects a non-positive observed volume.
	ErrInvalidVolume = errors.New("marketdata: volume must be positive")
)

type vwapTick struct {
	priceVolume decimal.Decimal
	volume      int64
}

// VWAP maintains the volume-weighted average price over the last N trades.
// The price*volume running sum is kept in decimal so long runs do not drift
// the way a float accumulator would.
type VWAP struct {
	window      int
	ticks       []vwapTick
	priceVolume decimal.Decimal
	volume      int64
}

// NewVWAP creates an accumulator over the last window trades.
func NewVWAP(window int) (*VWAP, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	return &VWAP{window: window, priceVolume: decimal.Zero}, nil
}

// Observe adds one execution, evicting the oldest once the window is full.
func (v *VWAP) Observe(price float64, volume int32) error {
	if volume <= 0 {
		return ErrInvalidVolume
	}
	if len(v.ticks) >= v.window {
		victim := v.ticks[0]
		v.ticks = v.ticks[1:]
		v.priceVolume = v.priceVolume.Sub(victim.priceVolume)
		v.volume -= victim.volume
	}
	pv := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(volume)))
	v.ticks = append(v.ticks, vwapTick{priceVolume: pv, volume: int64(volume)})
	v.priceVolume = v.priceVolume.Add(pv)
	v.volume += int64(volume)
	return nil
}

// Value returns the current VWAP, or zero before any volume is seen.
func (v *VWAP) Value() float64 {
	if v.volume == 0 {
		return 0
	}
	return v.priceVolume.Div(decimal.NewFromInt(v.volume)).InexactFloat64()
}

// Count returns the number of trades currently in the window.
func (v *VWAP) Count() int {
	return len(v.ticks)
}

// TotalVolume returns the summed volume currently in the window.
func (v *VWAP) TotalVolume() int64 {
	return v.volume
}

// Reset empties the window.
func (v *VWAP) Reset() {
	v.ticks = v.ticks[:0]
	v.priceVolume = decimal.Zero
	v.volume = 0
}
