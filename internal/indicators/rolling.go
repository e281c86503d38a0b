package indicators

import (
	"fmt"
	"math"
)

// resyncEvery bounds floating-point drift of the incremental window sums:
// after this many outputs the sums are recomputed from the window directly.
const resyncEvery = 256

// RollingMean computes the arithmetic mean over a closed sliding window of
// size window. Output index i is undefined for i < window-1. A window larger
// than the input yields an all-undefined series.
func RollingMean(values []float64, window int) (Series, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: rolling window must be positive, got %d", ErrInvalidConfiguration, window)
	}
	out := make(Series, len(values))
	if window > len(values) {
		return out, nil
	}

	sum := 0.0
	sinceSync := 0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i < window-1 {
			continue
		}
		sinceSync++
		if sinceSync >= resyncEvery {
			sum = 0
			for j := i - window + 1; j <= i; j++ {
				sum += values[j]
			}
			sinceSync = 0
		}
		out[i] = Defined(sum / float64(window))
	}
	return out, nil
}

// RollingStdDev computes the sample standard deviation (Bessel's correction)
// over a closed sliding window, the flavor conventionally used for Bollinger
// Bands. A window of 1 yields 0 by convention. Undefined and short-history
// behavior match RollingMean.
func RollingStdDev(values []float64, window int) (Series, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: rolling window must be positive, got %d", ErrInvalidConfiguration, window)
	}
	out := make(Series, len(values))
	if window > len(values) {
		return out, nil
	}

	sum, sumSq := 0.0, 0.0
	sinceSync := 0
	for i, v := range values {
		sum += v
		sumSq += v * v
		if i >= window {
			old := values[i-window]
			sum -= old
			sumSq -= old * old
		}
		if i < window-1 {
			continue
		}
		sinceSync++
		if sinceSync >= resyncEvery {
			sum, sumSq = 0, 0
			for j := i - window + 1; j <= i; j++ {
				sum += values[j]
				sumSq += values[j] * values[j]
			}
			sinceSync = 0
		}
		out[i] = Defined(sampleStdDev(sum, sumSq, window))
	}
	return out, nil
}

func sampleStdDev(sum, sumSq float64, window int) float64 {
	if window < 2 {
		return 0
	}
	w := float64(window)
	variance := (sumSq - sum*sum/w) / (w - 1)
	// Cancellation can push a near-zero variance slightly negative.
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
