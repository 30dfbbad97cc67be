package slot

import (
	"fmt"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

// Key identifies one local calendar minute, e.g. "2024-05-07T08:00".
func Key(local domain.LocalTime) string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d",
		local.Year, local.Month, local.Day, local.Hour, local.Minute)
}
