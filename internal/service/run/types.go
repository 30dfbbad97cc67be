package run

import "github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"

type Outcome string

const (
	OutcomeDispatched Outcome = "dispatched"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
	OutcomeAbandoned  Outcome = "abandoned"
)

func (o Outcome) String() string {
	return string(o)
}

// UserResult is what one unit of work reports back to the aggregator.
type UserResult struct {
	UserID         string
	Outcome        Outcome
	SkipReason     domain.SkipReason
	SlotKey        string
	DueCount       int
	SentCount      int
	FailureCount   int
	DevicesRemoved int
	Err            error
}

func skipped(userID string, reason domain.SkipReason) UserResult {
	return UserResult{
		UserID:     userID,
		Outcome:    OutcomeSkipped,
		SkipReason: reason,
	}
}
