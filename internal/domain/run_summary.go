package domain

import "time"

type SkipReason string

const (
	SkipNoProfile        SkipReason = "no_profile"
	SkipNoneDue          SkipReason = "none_due"
	SkipAlreadySent      SkipReason = "already_sent"
	SkipNoDevices        SkipReason = "no_devices"
	SkipClaimedElsewhere SkipReason = "claimed_elsewhere"
)

type UserFailure struct {
	UserID       string `json:"uid"`
	FailureCount int    `json:"failureCount"`
}

type RunSummary struct {
	RunID           string             `json:"runId"`
	StartedAt       time.Time          `json:"startedAt"`
	FinishedAt      time.Time          `json:"finishedAt"`
	UsersScanned    int                `json:"usersScanned"`
	UsersDispatched int                `json:"usersDispatched"`
	RemindersSent   int                `json:"remindersSent"`
	FailureUsers    int                `json:"failureUsers"`
	Failures        []UserFailure      `json:"failures"`
	DevicesRemoved  int                `json:"devicesRemoved"`
	UserErrors      int                `json:"userErrors"`
	UsersAbandoned  int                `json:"usersAbandoned"`
	Skipped         map[SkipReason]int `json:"skipped"`
}

func NewRunSummary(runID string, startedAt time.Time) *RunSummary {
	return &RunSummary{
		RunID:     runID,
		StartedAt: startedAt,
		Failures:  make([]UserFailure, 0),
		Skipped:   make(map[SkipReason]int),
	}
}

func (s *RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
