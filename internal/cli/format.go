// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatGBP formats a sterling amount, dropping precision as the value
// grows. e.g., 4.5 -> "£4.50", 845.6 -> "£846", 12345.6 -> "£12,346"
func FormatGBP(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v < 0:
		return "-" + FormatGBP(-v)
	case v >= 1000:
		return "£" + FormatNumber(int64(math.Round(v)))
	case v >= 100:
		return fmt.Sprintf("£%.0f", v)
	default:
		return fmt.Sprintf("£%.2f", v)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatMultiple formats a growth multiple. Projections with no net
// contribution have no meaningful multiple; those render as the
// literal "inf" or "NaN".
func FormatMultiple(m float64) string {
	switch {
	case math.IsNaN(m):
		return "NaN"
	case math.IsInf(m, 1):
		return "inf"
	case math.IsInf(m, -1):
		return "-inf"
	default:
		return fmt.Sprintf("%.2fx", m)
	}
}

// FormatTaxYear renders a tax year in the conventional split form.
// e.g., 2025 -> "2025/26"
func FormatTaxYear(year int) string {
	return fmt.Sprintf("%d/%02d", year, (year+1)%100)
}

// FormatDelta formats a sterling difference against a baseline with an
// explicit sign.
func FormatDelta(current, baseline float64) string {
	delta := current - baseline
	if delta >= 0 {
		return "+" + FormatGBP(delta)
	}
	return "-" + FormatGBP(-delta)
}
