package pricing

import (
	"fmt"
	"strings"
)

// FormatBR formats a number in Brazilian convention with exactly two
// decimal places: dot as thousands separator, comma as decimal
// separator (1234567.8 -> "1.234.567,80").
func FormatBR(v float64) string {
	negative := false
	if v < 0 {
		negative = true
		v = -v
	}

	raw := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(raw, ".", 2)
	intPart := groupThousands(parts[0])

	result := intPart + "," + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts dots every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "." + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "." + result
}
