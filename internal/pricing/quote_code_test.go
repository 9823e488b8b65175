package pricing

import (
	"testing"
	"time"
)

func TestNextQuoteCode(t *testing.T) {
	in2024 := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		existing []string
		now      time.Time
		want     string
	}{
		{"first of the year", nil, in2024, "COT20240001"},
		{"sequential", []string{"COT20240001", "COT20240002"}, in2024, "COT20240003"},
		{"other years ignored", []string{"COT20230009"}, in2024, "COT20240001"},
		{"gaps never refilled", []string{"COT20240001", "COT20240005"}, in2024, "COT20240006"},
		{"unordered input", []string{"COT20240007", "COT20240002"}, in2024, "COT20240008"},
		{"garbage codes skipped", []string{"COT2024abcd", "COT20240003"}, in2024, "COT20240004"},
		{"rolls past four digits", []string{"COT20249999"}, in2024, "COT202410000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextQuoteCode(tt.existing, tt.now)
			if got != tt.want {
				t.Errorf("NextQuoteCode(%v) = %q, want %q", tt.existing, got, tt.want)
			}
		})
	}
}
