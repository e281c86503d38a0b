// Package indicators implements the technical indicator computation engine:
// deterministic, side-effect-free transformations from a closed bar series to
// aligned output series (moving averages, RSI, MACD, Bollinger Bands).
//
// Every output series has exactly the length of its input, with an explicit
// undefined marker for warm-up and insufficient-data regions, so callers can
// zip results against timestamps positionally. A series shorter than a
// requested window is a normal condition reported via Status, never an error.
package indicators

import "errors"

// ErrInvalidConfiguration indicates indicator parameters that are invalid
// regardless of data, e.g. a non-positive period or fast >= slow for MACD.
var ErrInvalidConfiguration = errors.New("invalid indicator configuration")

// Value is a single point of an indicator output series. The zero value is
// undefined; warm-up regions are a type-level concept here, not a NaN
// convention.
type Value struct {
	V       float64
	Defined bool
}

// Defined wraps a computed value.
func Defined(v float64) Value { return Value{V: v, Defined: true} }

// Series is an indicator output aligned index-for-index with its input.
type Series []Value

// HasDefined reports whether at least one point is defined.
func (s Series) HasDefined() bool {
	for _, v := range s {
		if v.Defined {
			return true
		}
	}
	return false
}

// FirstDefined returns the index of the first defined point, or -1.
func (s Series) FirstDefined() int {
	for i, v := range s {
		if v.Defined {
			return i
		}
	}
	return -1
}

// Last returns the most recent defined value.
func (s Series) Last() (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Defined {
			return s[i].V, true
		}
	}
	return 0, false
}

// Status reports the per-indicator outcome of a pipeline run.
type Status string

const (
	// StatusReady means a fully computed region exists.
	StatusReady Status = "Ready"
	// StatusInsufficientData means every requested window exceeds the series
	// length; the result is entirely undefined but this is not an error.
	StatusInsufficientData Status = "InsufficientData"
	// StatusInvalidConfiguration means the indicator's parameters violate a
	// structural constraint; no computation was performed.
	StatusInvalidConfiguration Status = "InvalidConfiguration"
)

// Component is one named output series of an indicator (e.g. MACD produces
// "macd", "signal" and "histogram").
type Component struct {
	Name   string
	Values Series
}

// Result is the outcome of running one indicator over one series. Components
// are always aligned with the input bars, even when entirely undefined.
type Result struct {
	Indicator  string
	Status     Status
	Err        error // set only when Status is StatusInvalidConfiguration
	Components []Component
}

// Component returns the named component, or nil.
func (r Result) Component(name string) Series {
	for _, c := range r.Components {
		if c.Name == name {
			return c.Values
		}
	}
	return nil
}

// Indicator names used as keys in pipeline results.
const (
	NameMovingAverages = "moving_averages"
	NameRSI            = "rsi"
	NameMACD           = "macd"
	NameBollinger      = "bollinger"
)
