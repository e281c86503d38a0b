package indicators

import "fmt"

// MACD computes the convergence/divergence oscillator: the difference of a
// fast and a slow EMA of the closes, an EMA of that difference as the signal
// line, and their difference as the histogram.
//
// Warm-ups compose: the macd line is defined from index slow-1 onward and the
// signal smoother runs over the macd line's defined region only, so the
// signal (and histogram) first appear at index slow+signal-2.
func MACD(closes []float64, fast, slow, signal int) (macdLine, signalLine, histogram Series, err error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, nil, nil, fmt.Errorf("%w: MACD periods must be positive, got fast=%d slow=%d signal=%d",
			ErrInvalidConfiguration, fast, slow, signal)
	}
	if fast >= slow {
		return nil, nil, nil, fmt.Errorf("%w: MACD fast period %d must be shorter than slow period %d",
			ErrInvalidConfiguration, fast, slow)
	}

	emaFast, err := EMA(closes, fast)
	if err != nil {
		return nil, nil, nil, err
	}
	emaSlow, err := EMA(closes, slow)
	if err != nil {
		return nil, nil, nil, err
	}

	n := len(closes)
	macdLine = make(Series, n)
	for i := 0; i < n; i++ {
		if emaFast[i].Defined && emaSlow[i].Defined {
			macdLine[i] = Defined(emaFast[i].V - emaSlow[i].V)
		}
	}

	signalLine = make(Series, n)
	if first := macdLine.FirstDefined(); first >= 0 {
		defined := make([]float64, 0, n-first)
		for i := first; i < n; i++ {
			defined = append(defined, macdLine[i].V)
		}
		smoothed, serr := EMA(defined, signal)
		if serr != nil {
			return nil, nil, nil, serr
		}
		for j, v := range smoothed {
			if v.Defined {
				signalLine[first+j] = v
			}
		}
	}

	histogram = make(Series, n)
	for i := 0; i < n; i++ {
		if macdLine[i].Defined && signalLine[i].Defined {
			histogram[i] = Defined(macdLine[i].V - signalLine[i].V)
		}
	}
	return macdLine, signalLine, histogram, nil
}
