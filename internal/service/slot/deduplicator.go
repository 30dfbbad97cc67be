package slot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

// Deduplicator guarantees at most one batch per user per slot. The read check
// is a cheap early exit; the claim is the atomic guard between overlapping
// runs.
type Deduplicator struct {
	repo  domain.DedupStateRepository
	lease time.Duration
}

func NewDeduplicator(repo domain.DedupStateRepository, lease time.Duration) *Deduplicator {
	return &Deduplicator{
		repo:  repo,
		lease: lease,
	}
}

func (d *Deduplicator) AlreadySent(ctx context.Context, userID, slotKey string) (bool, error) {
	lastSlotKey, err := d.repo.GetLastSlotKey(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to read dedup state: %w", err)
	}

	return lastSlotKey == slotKey, nil
}

// Claim reserves slotKey for runID. False means another run already sent or
// holds the slot.
func (d *Deduplicator) Claim(ctx context.Context, userID, slotKey, runID string, now time.Time) (bool, error) {
	claimed, err := d.repo.ClaimSlot(ctx, domain.SlotClaim{
		UserID:    userID,
		SlotKey:   slotKey,
		RunID:     runID,
		ClaimedAt: now,
		Lease:     d.lease,
	})
	if err != nil {
		return false, fmt.Errorf("failed to claim slot: %w", err)
	}

	if !claimed {
		slog.DebugContext(ctx, "slot claimed by another run",
			slog.String("uid", userID),
			slog.String("slot_key", slotKey),
		)
	}

	return claimed, nil
}

// Commit advances lastSlotKey after a send attempt and releases the claim.
func (d *Deduplicator) Commit(ctx context.Context, userID string, state *domain.DedupState) error {
	if err := d.repo.CommitSlot(ctx, userID, state); err != nil {
		return fmt.Errorf("failed to commit dedup state: %w", err)
	}
	return nil
}
