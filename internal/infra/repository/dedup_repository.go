package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

const (
	stateKeyPrefix = "reminder:state:"

	// Slots are per-minute and the read gate only compares against the last
	// one, so state older than two days carries no information.
	stateTTL = 48 * time.Hour

	fieldLastSlotKey    = "lastSlotKey"
	fieldDueCount       = "dueCount"
	fieldSentCount      = "sentCount"
	fieldTimeZone       = "timeZone"
	fieldUpdatedAt      = "updatedAt"
	fieldClaimSlotKey   = "claimSlotKey"
	fieldClaimRunID     = "claimRunId"
	fieldClaimExpiresAt = "claimExpiresAt"
)

// claimScript reserves ARGV[1] for run ARGV[2] unless the slot was already
// sent or any run holds an unexpired claim on it. Times are unix millis.
var claimScript = redis.NewScript(`
local last = redis.call('HGET', KEYS[1], 'lastSlotKey')
if last == ARGV[1] then
  return 0
end
local claimSlot = redis.call('HGET', KEYS[1], 'claimSlotKey')
if claimSlot == ARGV[1] then
  local expiresAt = tonumber(redis.call('HGET', KEYS[1], 'claimExpiresAt') or '0')
  if expiresAt > tonumber(ARGV[3]) then
    return 0
  end
end
redis.call('HSET', KEYS[1], 'claimSlotKey', ARGV[1], 'claimRunId', ARGV[2], 'claimExpiresAt', ARGV[4])
redis.call('EXPIRE', KEYS[1], ARGV[5])
return 1
`)

type dedupRepository struct {
	client *redis.Client
}

func NewDedupRepository(client *redis.Client) domain.DedupStateRepository {
	return &dedupRepository{
		client: client,
	}
}

func stateKey(userID string) string {
	return stateKeyPrefix + userID
}

func (r *dedupRepository) GetLastSlotKey(ctx context.Context, userID string) (string, error) {
	val, err := r.client.HGet(ctx, stateKey(userID), fieldLastSlotKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}

	return val, nil
}

func (r *dedupRepository) ClaimSlot(ctx context.Context, claim domain.SlotClaim) (bool, error) {
	if claim.UserID == "" || claim.SlotKey == "" {
		return false, ErrInvalidClaim
	}

	claimed, err := claimScript.Run(ctx, r.client,
		[]string{stateKey(claim.UserID)},
		claim.SlotKey,
		claim.RunID,
		claim.ClaimedAt.UnixMilli(),
		claim.ExpiresAt().UnixMilli(),
		int64(stateTTL.Seconds()),
	).Int()
	if err != nil {
		return false, err
	}

	return claimed == 1, nil
}

func (r *dedupRepository) CommitSlot(ctx context.Context, userID string, state *domain.DedupState) error {
	if state == nil || state.LastSlotKey == "" {
		return ErrInvalidDedupState
	}

	key := stateKey(userID)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		fieldLastSlotKey: state.LastSlotKey,
		fieldDueCount:    state.DueCount,
		fieldSentCount:   state.SentCount,
		fieldTimeZone:    state.TimeZone,
		fieldUpdatedAt:   state.UpdatedAt.UTC().Format(time.RFC3339),
	})
	pipe.HDel(ctx, key, fieldClaimSlotKey, fieldClaimRunID, fieldClaimExpiresAt)
	pipe.Expire(ctx, key, stateTTL)

	_, err := pipe.Exec(ctx)
	return err
}
