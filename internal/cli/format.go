// Package cli provides formatting utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

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
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPrice renders a price with thousands separators, keeping two
// decimals only when the value has a fractional part.
// e.g., 12500 -> "12,500", 99.5 -> "99.50"
func FormatPrice(v float64) string {
	whole := math.Trunc(v)
	if v == whole {
		return FormatNumber(int64(whole))
	}
	frac := math.Abs(v - whole)
	return fmt.Sprintf("%s.%02d", FormatNumber(int64(whole)), int(math.Round(frac*100)))
}
