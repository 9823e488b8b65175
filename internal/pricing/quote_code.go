package pricing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const quoteCodePrefix = "COT"

// NextQuoteCode returns the next quote code for the current year.
// Format: COT<4-digit year><4-digit sequence>, e.g. COT20260007.
// The sequence is 1 + the highest existing sequence for the year, so
// gaps left by deleted quotes are never refilled.
func NextQuoteCode(existing []string, now time.Time) string {
	prefix := fmt.Sprintf("%s%d", quoteCodePrefix, now.Year())

	max := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(code, prefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s%04d", prefix, max+1)
}
