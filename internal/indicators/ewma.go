package indicators

import "fmt"

// Smooth applies an exponentially weighted recurrence with smoothing constant
// alpha in (0, 1]. The recurrence is seeded with the simple mean of the first
// period inputs, so the first defined output sits at index period-1; each
// later output is alpha*input[i] + (1-alpha)*prev. The SMA seed is fixed
// here; seeding with the raw first value instead shifts every early-window
// result and is deliberately not supported.
func Smooth(values []float64, period int, alpha float64) (Series, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: smoothing period must be positive, got %d", ErrInvalidConfiguration, period)
	}
	if alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: smoothing constant must be in (0, 1], got %g", ErrInvalidConfiguration, alpha)
	}
	out := make(Series, len(values))
	if period > len(values) {
		return out, nil
	}

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	prev := seed / float64(period)
	out[period-1] = Defined(prev)

	for i := period; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out[i] = Defined(prev)
	}
	return out, nil
}

// EMA is the conventional exponential moving average, alpha = 2/(period+1).
func EMA(values []float64, period int) (Series, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: EMA period must be positive, got %d", ErrInvalidConfiguration, period)
	}
	return Smooth(values, period, 2.0/float64(period+1))
}

// Wilder is the smoothing variant used for RSI, alpha = 1/period.
func Wilder(values []float64, period int) (Series, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: Wilder period must be positive, got %d", ErrInvalidConfiguration, period)
	}
	return Smooth(values, period, 1.0/float64(period))
}
