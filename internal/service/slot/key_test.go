package slot

import (
	"testing"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		local    domain.LocalTime
		expected string
	}{
		{
			name:     "zero padded",
			local:    domain.LocalTime{Year: 2024, Month: 3, Day: 9, Hour: 8, Minute: 5},
			expected: "2024-03-09T08:05",
		},
		{
			name:     "end of year",
			local:    domain.LocalTime{Year: 2024, Month: 12, Day: 31, Hour: 23, Minute: 59},
			expected: "2024-12-31T23:59",
		},
		{
			name:     "midnight",
			local:    domain.LocalTime{Year: 2025, Month: 1, Day: 1, Hour: 0, Minute: 0},
			expected: "2025-01-01T00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.local); got != tt.expected {
				t.Errorf("Key() = %q, want %q", got, tt.expected)
			}
		})
	}
}
