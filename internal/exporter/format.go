package exporter

import (
	"fmt"
	"strconv"
)

// formatFloat formats a float64 for CSV output with fixed precision.
func formatFloat(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// formatInt formats an int for CSV output.
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// FormatCurrency renders a monetary amount compactly: $1.2M, $45.3K, $980.
func FormatCurrency(v float64) string {
	return "$" + FormatNumber(v)
}

// FormatNumber renders a number compactly: 1.2M, 45.3K, 980.
func FormatNumber(v float64) string {
	neg := ""
	if v < 0 {
		neg = "-"
		v = -v
	}

	switch {
	case v >= 1_000_000:
		return neg + trimTrailingZero(v/1_000_000) + "M"
	case v >= 1_000:
		return neg + trimTrailingZero(v/1_000) + "K"
	default:
		return neg + trimTrailingZero(v)
	}
}

// trimTrailingZero formats with one decimal and drops a trailing ".0".
func trimTrailingZero(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}

// GrowthIndicator renders a period-over-period change for the text report.
// A zero previous value has no meaningful growth and renders as "N/A".
func GrowthIndicator(growth float64, previous float64) string {
	if previous == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%+.1f%%", growth)
}
