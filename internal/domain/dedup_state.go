package domain

import "time"

// DedupState is the per-user record of the last slot a batch was sent for.
// Stores merge it into the existing record so unrelated fields persist.
type DedupState struct {
	LastSlotKey string
	DueCount    int
	SentCount   int
	TimeZone    string
	UpdatedAt   time.Time
}

// SlotClaim reserves a slot for one run before dispatch. A claim expires after
// Lease so a run that died mid-flight does not hold the slot forever.
type SlotClaim struct {
	UserID    string
	SlotKey   string
	RunID     string
	ClaimedAt time.Time
	Lease     time.Duration
}

func (c SlotClaim) ExpiresAt() time.Time {
	return c.ClaimedAt.Add(c.Lease)
}
