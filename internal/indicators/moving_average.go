package indicators

import "fmt"

// MovingAverages computes a simple moving average of the closes for each
// configured period. Periods are independent: one longer than the series
// yields an all-undefined component for that period only.
func MovingAverages(closes []float64, periods []int) ([]Component, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("%w: at least one moving average period is required", ErrInvalidConfiguration)
	}
	comps := make([]Component, 0, len(periods))
	for _, p := range periods {
		values, err := RollingMean(closes, p)
		if err != nil {
			return nil, err
		}
		comps = append(comps, Component{Name: fmt.Sprintf("sma_%d", p), Values: values})
	}
	return comps, nil
}
