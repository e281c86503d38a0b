package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func validBar(ts time.Time, close float64) Bar {
	return Bar{Timestamp: ts, Open: close, High: close + 1, Low: close - 1, Close: close, Volume: 100}
}

func TestNewSeries(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		bars    []Bar
		wantErr bool
	}{
		{
			name: "valid series",
			bars: []Bar{validBar(base, 100), validBar(base.AddDate(0, 0, 1), 101)},
		},
		{
			name: "empty series is valid",
			bars: nil,
		},
		{
			name: "duplicate timestamp",
			bars: []Bar{validBar(base, 100), validBar(base, 101)},

			wantErr: true,
		},
		{
			name:    "decreasing timestamps",
			bars:    []Bar{validBar(base.AddDate(0, 0, 1), 100), validBar(base, 101)},
			wantErr: true,
		},
		{
			name:    "low above high",
			bars:    []Bar{{Timestamp: base, Open: 100, High: 99, Low: 101, Close: 100, Volume: 1}},
			wantErr: true,
		},
		{
			name:    "close outside low-high range",
			bars:    []Bar{{Timestamp: base, Open: 100, High: 101, Low: 99, Close: 102, Volume: 1}},
			wantErr: true,
		},
		{
			name:    "NaN close",
			bars:    []Bar{{Timestamp: base, Open: 100, High: 101, Low: 99, Close: math.NaN(), Volume: 1}},
			wantErr: true,
		},
		{
			name:    "negative volume",
			bars:    []Bar{{Timestamp: base, Open: 100, High: 101, Low: 99, Close: 100, Volume: -5}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSeries("AAPL", tt.bars)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Len() != len(tt.bars) {
				t.Errorf("Len() = %d, want %d", s.Len(), len(tt.bars))
			}
			if s.Symbol() != "AAPL" {
				t.Errorf("Symbol() = %q, want AAPL", s.Symbol())
			}
		})
	}
}

func TestSeries_ClosesAlignment(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := []Bar{validBar(base, 10), validBar(base.AddDate(0, 0, 1), 20), validBar(base.AddDate(0, 0, 2), 30)}

	s, err := NewSeries("X", bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	closes := s.Closes()
	for i, want := range []float64{10, 20, 30} {
		if closes[i] != want {
			t.Errorf("closes[%d] = %f, want %f", i, closes[i], want)
		}
	}
	last, ok := s.Last()
	if !ok || last.Close != 30 {
		t.Errorf("Last() = %v/%v, want close 30", last, ok)
	}
}

func TestSeries_ConstructionCopiesInput(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := []Bar{validBar(base, 10)}
	s, err := NewSeries("X", bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bars[0].Close = 999
	if s.At(0).Close != 10 {
		t.Errorf("series mutated through caller slice: close = %f", s.At(0).Close)
	}
}

func TestParseRange(t *testing.T) {
	for _, valid := range []string{"1mo", "3mo", "6mo", "1y", "2y", "5y", "max"} {
		if _, err := ParseRange(valid); err != nil {
			t.Errorf("ParseRange(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseRange("7d"); err == nil {
		t.Error("ParseRange(7d) expected error")
	}
}

func TestQuote_Change(t *testing.T) {
	q := &Quote{Price: 105, PreviousClose: 100}
	if q.Change() != 5 {
		t.Errorf("Change() = %f, want 5", q.Change())
	}
	if q.ChangePercent() != 5 {
		t.Errorf("ChangePercent() = %f, want 5", q.ChangePercent())
	}
	empty := &Quote{Price: 105}
	if empty.ChangePercent() != 0 {
		t.Errorf("ChangePercent() with no previous close = %f, want 0", empty.ChangePercent())
	}
}
