package indicators

import "fmt"

// RSI computes the Relative Strength Index over the closes using Wilder's
// smoothing (alpha = 1/period) of the per-step gains and losses, seeded with
// the simple mean of the first period values of each. The output is undefined
// for the first period indices; every defined value lies in [0, 100].
//
// Edge conventions: avg loss 0 with positive avg gain saturates to 100
// instead of dividing by zero; a flat price (both averages 0) reads as the
// neutral 50. The neutral reading is a convention, not a law, and is pinned
// by tests.
func RSI(closes []float64, period int) (Series, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: RSI period must be positive, got %d", ErrInvalidConfiguration, period)
	}
	out := make(Series, len(closes))
	if len(closes) < period+1 {
		return out, nil
	}

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	avgGain, err := Wilder(gains, period)
	if err != nil {
		return nil, err
	}
	avgLoss, err := Wilder(losses, period)
	if err != nil {
		return nil, err
	}

	// Change i belongs to close i+1, so the first defined RSI lands at close
	// index period.
	for i := period - 1; i < len(gains); i++ {
		g, l := avgGain[i].V, avgLoss[i].V
		var rsi float64
		switch {
		case l == 0 && g == 0:
			rsi = 50
		case l == 0:
			rsi = 100
		default:
			rs := g / l
			rsi = 100 - 100/(1+rs)
		}
		out[i+1] = Defined(rsi)
	}
	return out, nil
}
