package docstore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/tracing"
)

type dedupRepository struct {
	client *firestore.Client
}

func NewDedupRepository(client *firestore.Client) domain.DedupStateRepository {
	return &dedupRepository{
		client: client,
	}
}

func (r *dedupRepository) stateDoc(userID string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(userID).
		Collection(notificationsCollection).Doc(reminderStateDocID)
}

func (r *dedupRepository) GetLastSlotKey(ctx context.Context, userID string) (string, error) {
	ref := r.stateDoc(userID)

	ctx, span := tracing.StartFirestoreOperationSpan(ctx, "get_state", ref.Path)
	defer span.End()

	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", nil
		}
		tracing.RecordError(span, err)
		return "", err
	}

	return stringField(snap.Data(), stateFieldLastSlotKey), nil
}

func (r *dedupRepository) ClaimSlot(ctx context.Context, claim domain.SlotClaim) (bool, error) {
	ref := r.stateDoc(claim.UserID)

	ctx, span := tracing.StartFirestoreOperationSpan(ctx, "claim_slot", ref.Path)
	defer span.End()

	var claimed bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		claimed = false

		snap, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if snap != nil && snap.Exists() && !claimable(snap.Data(), claim) {
			return nil
		}

		claimed = true
		return tx.Set(ref, map[string]interface{}{
			stateFieldClaimSlotKey:   claim.SlotKey,
			stateFieldClaimRunID:     claim.RunID,
			stateFieldClaimExpiresAt: claim.ExpiresAt(),
		}, firestore.MergeAll)
	})
	if err != nil {
		tracing.RecordError(span, err)
		return false, err
	}

	return claimed, nil
}

// claimable reports whether claim may take the slot given the stored state.
// An unexpired claim on the same slot blocks every claimant, including one
// presenting the same run id.
func claimable(data map[string]interface{}, claim domain.SlotClaim) bool {
	if stringField(data, stateFieldLastSlotKey) == claim.SlotKey {
		return false
	}

	if stringField(data, stateFieldClaimSlotKey) != claim.SlotKey {
		return true
	}

	expiresAt, ok := data[stateFieldClaimExpiresAt].(time.Time)
	return !ok || !expiresAt.After(claim.ClaimedAt)
}

// CommitSlot merges the new state and clears the claim. Other fields in the
// document are preserved.
func (r *dedupRepository) CommitSlot(ctx context.Context, userID string, state *domain.DedupState) error {
	if state == nil || state.LastSlotKey == "" {
		return ErrInvalidDedupState
	}

	ref := r.stateDoc(userID)

	ctx, span := tracing.StartFirestoreOperationSpan(ctx, "commit_state", ref.Path)
	defer span.End()

	_, err := ref.Set(ctx, map[string]interface{}{
		stateFieldLastSlotKey:    state.LastSlotKey,
		stateFieldDueCount:       state.DueCount,
		stateFieldSentCount:      state.SentCount,
		stateFieldTimeZone:       state.TimeZone,
		stateFieldUpdatedAt:      firestore.ServerTimestamp,
		stateFieldClaimSlotKey:   firestore.Delete,
		stateFieldClaimRunID:     firestore.Delete,
		stateFieldClaimExpiresAt: firestore.Delete,
	}, firestore.MergeAll)
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}

	return nil
}
