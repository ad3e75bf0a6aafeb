package marketdata

import (
	"math"
	"time"
)

const (
	// DefaultStatsWindow is the rolling time window for price statistics.
	DefaultStatsWindow = 60 * time.Second
	// MinSamplesForStdDev gates the anomaly test; below this the standard
	// deviation is too noisy to act on.
	MinSamplesForStdDev = 20
)

type statSample struct {
	at    time.Time
	price float64
}

// Stats keeps a time-windowed price series for one instrument and derives a
// moving average, a population standard deviation and a three-sigma anomaly
// test from it.
type Stats struct {
	window  time.Duration
	samples []statSample
}

// NewStats creates a rolling window over the given duration.
func NewStats(window time.Duration) (*Stats, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	return &Stats{window: window}, nil
}

// Observe appends a price observation and evicts samples older than the
// window relative to the newest timestamp. Timestamps are expected to be
// non-decreasing; the observation loop that feeds this runs in arrival
// order.
func (s *Stats) Observe(at time.Time, price float64) {
	s.samples = append(s.samples, statSample{at: at, price: price})
	cutoff := at.Add(-s.window)
	i := 0
	for i < len(s.samples) && s.samples[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.samples = append(s.samples[:0], s.samples[i:]...)
	}
}

// Count returns the number of samples in the window.
func (s *Stats) Count() int {
	return len(s.samples)
}

// Mean returns the moving average over the window, or zero when empty.
func (s *Stats) Mean() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, smp := range s.samples {
		sum += smp.price
	}
	return sum / float64(len(s.samples))
}

// StdDev returns the population standard deviation over the window, or zero
// when empty.
func (s *Stats) StdDev() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	mean := s.Mean()
	variance := 0.0
	for _, smp := range s.samples {
		diff := smp.price - mean
		variance += diff * diff
	}
	variance /= float64(len(s.samples))
	return math.Sqrt(variance)
}

// IsAnomaly reports whether price exceeds mean + 3 standard deviations.
// Always false below MinSamplesForStdDev samples.
func (s *Stats) IsAnomaly(price float64) bool {
	if len(s.samples) < MinSamplesForStdDev {
		return false
	}
	return price > s.Mean()+3*s.StdDev()
}
