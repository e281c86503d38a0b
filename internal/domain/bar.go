package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidInput indicates a malformed bar series (non-monotonic timestamps,
// OHLC ordering violations, non-finite values). Series construction rejects
// such data instead of reordering or repairing it.
var ErrInvalidInput = errors.New("invalid bar series")

// Bar represents a single OHLCV observation for a fixed time interval.
type Bar struct {
	Timestamp time.Time // Start time of the interval
	Open      float64   // Opening price
	High      float64   // Highest price
	Low       float64   // Lowest price
	Close     float64   // Closing price
	Volume    float64   // Traded volume
}

// Series is an ordered sequence of bars with strictly increasing timestamps.
// A Series is only obtainable through NewSeries, so holders can rely on the
// invariants having been checked once at construction.
type Series struct {
	symbol string
	bars   []Bar
}

// NewSeries validates and wraps a bar slice. The slice is copied so later
// mutation by the caller cannot break the invariants. An empty series is
// valid; a short history is a data-sufficiency condition, not an error.
func NewSeries(symbol string, bars []Bar) (*Series, error) {
	for i, b := range bars {
		if !finite(b.Open) || !finite(b.High) || !finite(b.Low) || !finite(b.Close) || !finite(b.Volume) {
			return nil, fmt.Errorf("%w: bar %d has a non-finite or negative field", ErrInvalidInput, i)
		}
		if b.Low > b.High {
			return nil, fmt.Errorf("%w: bar %d has low %.4f > high %.4f", ErrInvalidInput, i, b.Low, b.High)
		}
		if b.Open < b.Low || b.Open > b.High || b.Close < b.Low || b.Close > b.High {
			return nil, fmt.Errorf("%w: bar %d has open/close outside [low, high]", ErrInvalidInput, i)
		}
		if i > 0 && !bars[i-1].Timestamp.Before(b.Timestamp) {
			return nil, fmt.Errorf("%w: timestamps not strictly increasing at index %d", ErrInvalidInput, i)
		}
	}
	copied := make([]Bar, len(bars))
	copy(copied, bars)
	return &Series{symbol: symbol, bars: copied}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Symbol returns the instrument symbol the series was built for.
func (s *Series) Symbol() string { return s.symbol }

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.bars) }

// At returns the bar at index i.
func (s *Series) At(i int) Bar { return s.bars[i] }

// Bars returns a copy of the underlying bars.
func (s *Series) Bars() []Bar {
	out := make([]Bar, len(s.bars))
	copy(out, s.bars)
	return out
}

// Closes returns the close prices, index-aligned with the bars.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Close
	}
	return out
}

// Last returns the most recent bar. Ok is false for an empty series.
func (s *Series) Last() (Bar, bool) {
	if len(s.bars) == 0 {
		return Bar{}, false
	}
	return s.bars[len(s.bars)-1], true
}
