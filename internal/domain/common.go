package domain

import (
	"fmt"
	"time"
)

// Range identifies a requested history window, mirroring the period selector
// offered to the user ("1mo" .. "max").
type Range string

const (
	RangeOneMonth    Range = "1mo"
	RangeThreeMonths Range = "3mo"
	RangeSixMonths   Range = "6mo"
	RangeOneYear     Range = "1y"
	RangeTwoYears    Range = "2y"
	RangeFiveYears   Range = "5y"
	RangeMax         Range = "max"
)

// ParseRange validates a range string from config or CLI input.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case RangeOneMonth, RangeThreeMonths, RangeSixMonths, RangeOneYear, RangeTwoYears, RangeFiveYears, RangeMax:
		return Range(s), nil
	default:
		return "", fmt.Errorf("unknown range %q (want 1mo, 3mo, 6mo, 1y, 2y, 5y or max)", s)
	}
}

// Window translates the range into a concrete [start, end] interval ending at
// now. RangeMax returns a zero start, which providers treat as "everything".
func (r Range) Window(now time.Time) (start, end time.Time) {
	end = now
	switch r {
	case RangeOneMonth:
		start = now.AddDate(0, -1, 0)
	case RangeThreeMonths:
		start = now.AddDate(0, -3, 0)
	case RangeSixMonths:
		start = now.AddDate(0, -6, 0)
	case RangeOneYear:
		start = now.AddDate(-1, 0, 0)
	case RangeTwoYears:
		start = now.AddDate(-2, 0, 0)
	case RangeFiveYears:
		start = now.AddDate(-5, 0, 0)
	case RangeMax:
		// zero start means unbounded history
	}
	return start, end
}

// Quote holds the point-in-time market snapshot and instrument metadata shown
// in the report header. Fields a provider does not supply stay zero;
// formatting renders those as N/A.
type Quote struct {
	Symbol           string
	Name             string
	Exchange         string
	Price            float64
	PreviousClose    float64
	MarketCap        float64
	Volume           float64
	PERatio          float64
	EPS              float64
	DividendYield    float64 // fraction, e.g. 0.0065
	FiftyTwoWeekHigh float64
	FiftyTwoWeekLow  float64
}

// Change returns the absolute price change versus the previous close.
func (q *Quote) Change() float64 {
	return q.Price - q.PreviousClose
}

// ChangePercent returns the price change as a percentage of the previous
// close, or 0 when no previous close is known.
func (q *Quote) ChangePercent() float64 {
	if q.PreviousClose == 0 {
		return 0
	}
	return q.Change() / q.PreviousClose * 100
}
