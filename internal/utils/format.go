package utils

import (
	"fmt"
	"math"
	"strings"
)

// notAvailable is rendered for values a provider did not supply.
const notAvailable = "N/A"

// FormatCurrency renders a price as $1,234.56. Zero is a legitimate price and
// still formats; NaN renders as N/A.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	if v < 0 {
		return "-$" + groupThousands(fmt.Sprintf("%.2f", -v))
	}
	return "$" + groupThousands(fmt.Sprintf("%.2f", v))
}

// FormatNumber compacts large magnitudes to B/M/K suffixes, matching the
// customary market-cap / volume display.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatOptional renders v via format, or N/A when v is zero. Used for quote
// fields (P/E, EPS, dividend yield) where zero means "not supplied".
func FormatOptional(v float64, format func(float64) string) string {
	if v == 0 {
		return notAvailable
	}
	return format(v)
}

// groupThousands inserts comma separators into the integer part of a fixed
// decimal string, preserving a leading minus sign.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sign + sb.String() + frac
}
