package indicators

import (
	"errors"
	"testing"
)

// A linear ramp makes both EMAs linear with a constant gap, so the macd line
// is constant once defined and the signal converges to the same constant.
func TestMACD_LinearRamp(t *testing.T) {
	closes := make([]float64, 12)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	const fast, slow, signal = 2, 4, 3

	macd, sig, hist, err := MACD(closes, fast, slow, signal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// EMA_2 tracks at i+0.5 from index 1, EMA_4 at i-0.5 from index 3, so the
	// macd line is exactly 1.0 from index slow-1 onward.
	if first := macd.FirstDefined(); first != slow-1 {
		t.Fatalf("macd first defined = %d, want %d", first, slow-1)
	}
	for i := slow - 1; i < len(macd); i++ {
		if !almostEqual(macd[i].V, 1.0) {
			t.Errorf("macd[%d] = %f, want 1.0", i, macd[i].V)
		}
	}

	// Warm-ups compose: signal starts signal-1 steps after the macd line.
	if first := sig.FirstDefined(); first != slow+signal-2 {
		t.Fatalf("signal first defined = %d, want %d", first, slow+signal-2)
	}
	for i := slow + signal - 2; i < len(sig); i++ {
		if !almostEqual(sig[i].V, 1.0) {
			t.Errorf("signal[%d] = %f, want 1.0", i, sig[i].V)
		}
		if !hist[i].Defined || !almostEqual(hist[i].V, 0) {
			t.Errorf("histogram[%d] = %v, want defined 0", i, hist[i])
		}
	}
}

func TestMACD_HistogramIdentity(t *testing.T) {
	closes := []float64{10, 12, 11, 14, 13, 16, 15, 18, 17, 20, 19, 22, 21, 24}
	macd, sig, hist, err := MACD(closes, 3, 6, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range hist {
		if !hist[i].Defined {
			continue
		}
		if !macd[i].Defined || !sig[i].Defined {
			t.Fatalf("histogram defined at %d without both inputs", i)
		}
		if hist[i].V != macd[i].V-sig[i].V {
			t.Errorf("histogram[%d] = %v, want exact macd-signal %v", i, hist[i].V, macd[i].V-sig[i].V)
		}
	}
}

func TestMACD_Validation(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	tests := []struct {
		name             string
		fast, slow, sign int
	}{
		{"fast equals slow", 12, 12, 9},
		{"fast greater than slow", 26, 12, 9},
		{"non-positive fast", 0, 26, 9},
		{"non-positive signal", 12, 26, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := MACD(closes, tt.fast, tt.slow, tt.sign)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestMACD_ShortSeries(t *testing.T) {
	macd, sig, hist, err := MACD([]float64{1, 2, 3}, 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range []Series{macd, sig, hist} {
		if len(s) != 3 || s.HasDefined() {
			t.Fatalf("expected aligned all-undefined series, got %v", s)
		}
	}
}
