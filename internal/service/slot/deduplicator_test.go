package slot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestDeduplicator_AlreadySent(t *testing.T) {
	tests := []struct {
		name        string
		lastSlotKey string
		slotKey     string
		expected    bool
	}{
		{name: "same slot", lastSlotKey: "2024-05-07T08:00", slotKey: "2024-05-07T08:00", expected: true},
		{name: "different slot", lastSlotKey: "2024-05-06T08:00", slotKey: "2024-05-07T08:00", expected: false},
		{name: "no state yet", lastSlotKey: "", slotKey: "2024-05-07T08:00", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := domain.NewMockDedupStateRepository(ctrl)
			repo.EXPECT().GetLastSlotKey(gomock.Any(), "user-1").Return(tt.lastSlotKey, nil)

			d := NewDeduplicator(repo, 2*time.Minute)
			got, err := d.AlreadySent(context.Background(), "user-1", tt.slotKey)
			if err != nil {
				t.Fatalf("AlreadySent() unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("AlreadySent() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDeduplicator_AlreadySent_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storeErr := errors.New("unavailable")
	repo := domain.NewMockDedupStateRepository(ctrl)
	repo.EXPECT().GetLastSlotKey(gomock.Any(), "user-1").Return("", storeErr)

	d := NewDeduplicator(repo, 2*time.Minute)
	_, err := d.AlreadySent(context.Background(), "user-1", "2024-05-07T08:00")
	if !errors.Is(err, storeErr) {
		t.Errorf("AlreadySent() error = %v, want wrapped %v", err, storeErr)
	}
}

func TestDeduplicator_Claim(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC)
	repo := domain.NewMockDedupStateRepository(ctrl)
	repo.EXPECT().
		ClaimSlot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, claim domain.SlotClaim) (bool, error) {
			if claim.UserID != "user-1" || claim.SlotKey != "2024-05-07T08:00" || claim.RunID != "run-1" {
				t.Errorf("unexpected claim: %+v", claim)
			}
			if !claim.ExpiresAt().Equal(now.Add(2 * time.Minute)) {
				t.Errorf("claim expires at %v, want %v", claim.ExpiresAt(), now.Add(2*time.Minute))
			}
			return true, nil
		})

	d := NewDeduplicator(repo, 2*time.Minute)
	claimed, err := d.Claim(context.Background(), "user-1", "2024-05-07T08:00", "run-1", now)
	if err != nil {
		t.Fatalf("Claim() unexpected error: %v", err)
	}
	if !claimed {
		t.Error("Claim() = false, want true")
	}
}

func TestDeduplicator_Claim_HeldElsewhere(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := domain.NewMockDedupStateRepository(ctrl)
	repo.EXPECT().ClaimSlot(gomock.Any(), gomock.Any()).Return(false, nil)

	d := NewDeduplicator(repo, 2*time.Minute)
	claimed, err := d.Claim(context.Background(), "user-1", "2024-05-07T08:00", "run-2", time.Now())
	if err != nil {
		t.Fatalf("Claim() unexpected error: %v", err)
	}
	if claimed {
		t.Error("Claim() = true, want false")
	}
}

func TestDeduplicator_Commit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	state := &domain.DedupState{
		LastSlotKey: "2024-05-07T08:00",
		DueCount:    2,
		SentCount:   1,
		TimeZone:    "UTC",
	}

	repo := domain.NewMockDedupStateRepository(ctrl)
	repo.EXPECT().CommitSlot(gomock.Any(), "user-1", state).Return(nil)

	d := NewDeduplicator(repo, 2*time.Minute)
	if err := d.Commit(context.Background(), "user-1", state); err != nil {
		t.Errorf("Commit() unexpected error: %v", err)
	}
}
