package utils

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5.5, "$5.50"},
		{1234.567, "$1,234.57"},
		{1234567.89, "$1,234,567.89"},
		{-9876.5, "-$9,876.50"},
		{math.NaN(), "N/A"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{999, "999.00"},
		{1500, "1.50K"},
		{2500000, "2.50M"},
		{3210000000, "3.21B"},
		{math.NaN(), "N/A"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(2.345); got != "2.35%" {
		t.Errorf("FormatPercent(2.345) = %q, want 2.35%%", got)
	}
	if got := FormatPercent(math.Inf(1)); got != "N/A" {
		t.Errorf("FormatPercent(+Inf) = %q, want N/A", got)
	}
}

func TestFormatOptional(t *testing.T) {
	if got := FormatOptional(0, FormatCurrency); got != "N/A" {
		t.Errorf("FormatOptional(0) = %q, want N/A", got)
	}
	if got := FormatOptional(12.5, FormatCurrency); got != "$12.50" {
		t.Errorf("FormatOptional(12.5) = %q, want $12.50", got)
	}
}
