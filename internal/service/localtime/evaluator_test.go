package localtime

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

func TestEvaluator_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		timeZone string
		expected domain.LocalTime
	}{
		{
			name:     "utc passthrough",
			now:      time.Date(2024, 5, 1, 8, 4, 59, 0, time.UTC),
			timeZone: "UTC",
			expected: domain.LocalTime{Year: 2024, Month: 5, Day: 1, Hour: 8, Minute: 4, Weekday: "Wed", TimeZone: "UTC"},
		},
		{
			name:     "new york before spring forward",
			now:      time.Date(2024, 3, 10, 6, 59, 0, 0, time.UTC),
			timeZone: "America/New_York",
			expected: domain.LocalTime{Year: 2024, Month: 3, Day: 10, Hour: 1, Minute: 59, Weekday: "Sun", TimeZone: "America/New_York"},
		},
		{
			name:     "new york after spring forward",
			now:      time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC),
			timeZone: "America/New_York",
			expected: domain.LocalTime{Year: 2024, Month: 3, Day: 10, Hour: 3, Minute: 0, Weekday: "Sun", TimeZone: "America/New_York"},
		},
		{
			name:     "tokyo rolls into next day",
			now:      time.Date(2024, 1, 7, 15, 30, 0, 0, time.UTC),
			timeZone: "Asia/Tokyo",
			expected: domain.LocalTime{Year: 2024, Month: 1, Day: 8, Hour: 0, Minute: 30, Weekday: "Mon", TimeZone: "Asia/Tokyo"},
		},
		{
			name:     "empty zone falls back to utc",
			now:      time.Date(2024, 1, 7, 15, 30, 0, 0, time.UTC),
			timeZone: "",
			expected: domain.LocalTime{Year: 2024, Month: 1, Day: 7, Hour: 15, Minute: 30, Weekday: "Sun", TimeZone: "UTC"},
		},
		{
			name:     "unknown zone falls back to utc",
			now:      time.Date(2024, 1, 7, 15, 30, 0, 0, time.UTC),
			timeZone: "Mars/Olympus_Mons",
			expected: domain.LocalTime{Year: 2024, Month: 1, Day: 7, Hour: 15, Minute: 30, Weekday: "Sun", TimeZone: "UTC"},
		},
		{
			name:     "local zone is not host dependent",
			now:      time.Date(2024, 1, 7, 15, 30, 0, 0, time.UTC),
			timeZone: "Local",
			expected: domain.LocalTime{Year: 2024, Month: 1, Day: 7, Hour: 15, Minute: 30, Weekday: "Sun", TimeZone: "UTC"},
		},
		{
			name:     "input instant in another zone",
			now:      time.Date(2024, 7, 4, 23, 10, 0, 0, time.FixedZone("UTC-5", -5*3600)),
			timeZone: "Europe/London",
			expected: domain.LocalTime{Year: 2024, Month: 7, Day: 5, Hour: 5, Minute: 10, Weekday: "Fri", TimeZone: "Europe/London"},
		},
	}

	evaluator := NewEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluator.Evaluate(tt.now, tt.timeZone)
			if got != tt.expected {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestEvaluator_Location_Cached(t *testing.T) {
	evaluator := NewEvaluator()

	first := evaluator.Location("Asia/Tokyo")
	second := evaluator.Location("Asia/Tokyo")

	if first != second {
		t.Error("Location() returned different pointers for the same zone")
	}

	if got := evaluator.Location("Not/AZone"); got != time.UTC {
		t.Errorf("Location() = %v, want UTC", got)
	}
}
