package domain

import "context"

//go:generate mockgen -source=dedup_repository.go -destination=dedup_repository_mock.go -package=domain

type DedupStateRepository interface {
	// GetLastSlotKey returns "" when the user has no state yet.
	GetLastSlotKey(ctx context.Context, userID string) (string, error)
	// ClaimSlot atomically reserves claim.SlotKey. It returns false when the
	// slot was already sent or is held by another unexpired claim.
	ClaimSlot(ctx context.Context, claim SlotClaim) (bool, error)
	CommitSlot(ctx context.Context, userID string, state *DedupState) error
}
