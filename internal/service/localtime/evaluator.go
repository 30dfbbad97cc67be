package localtime

import (
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

// Evaluator renders instants in a user's zone. Zone ids that cannot be
// resolved fall back to UTC; the fallback is cached like any other lookup.
type Evaluator struct {
	locations sync.Map
}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Location resolves an IANA zone id. Empty, unknown, and "Local" ids yield UTC
// so the result never depends on the host's zone.
func (e *Evaluator) Location(timeZone string) *time.Location {
	if timeZone == "" || timeZone == "Local" {
		return time.UTC
	}

	if cached, ok := e.locations.Load(timeZone); ok {
		return cached.(*time.Location)
	}

	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		loc = time.UTC
	}

	actual, _ := e.locations.LoadOrStore(timeZone, loc)
	return actual.(*time.Location)
}

func (e *Evaluator) Evaluate(now time.Time, timeZone string) domain.LocalTime {
	loc := e.Location(timeZone)
	local := now.In(loc)

	return domain.LocalTime{
		Year:     local.Year(),
		Month:    int(local.Month()),
		Day:      local.Day(),
		Hour:     local.Hour(),
		Minute:   local.Minute(),
		Weekday:  local.Weekday().String()[:3],
		TimeZone: loc.String(),
	}
}
