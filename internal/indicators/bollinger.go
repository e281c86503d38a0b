package indicators

import "fmt"

// Bollinger computes the volatility envelope: middle is the rolling mean of
// the closes, upper/lower are middle +/- mult times the rolling sample
// standard deviation over the same window. Wherever all three are defined,
// lower <= middle <= upper, with equality only for a constant-price window.
func Bollinger(closes []float64, period int, mult float64) (middle, upper, lower Series, err error) {
	if period <= 0 {
		return nil, nil, nil, fmt.Errorf("%w: Bollinger period must be positive, got %d", ErrInvalidConfiguration, period)
	}
	if mult <= 0 {
		return nil, nil, nil, fmt.Errorf("%w: Bollinger multiplier must be positive, got %g", ErrInvalidConfiguration, mult)
	}

	middle, err = RollingMean(closes, period)
	if err != nil {
		return nil, nil, nil, err
	}
	stddev, err := RollingStdDev(closes, period)
	if err != nil {
		return nil, nil, nil, err
	}

	upper = make(Series, len(closes))
	lower = make(Series, len(closes))
	for i := range middle {
		if middle[i].Defined && stddev[i].Defined {
			upper[i] = Defined(middle[i].V + mult*stddev[i].V)
			lower[i] = Defined(middle[i].V - mult*stddev[i].V)
		}
	}
	return middle, upper, lower, nil
}
