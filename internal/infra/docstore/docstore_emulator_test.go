package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/testutil"
)

func TestUserRepository_Emulator(t *testing.T) {
	ctx := context.Background()
	client := testutil.SetupFirestoreEmulator(ctx, t)
	repo := NewUserRepository(client)

	userID := "user-" + uuid.NewString()
	userDoc := client.Collection("users").Doc(userID)

	_, err := userDoc.Collection("profile").Doc("main").Set(ctx, map[string]interface{}{
		"timeZone": "America/New_York",
		"quests": []interface{}{
			map[string]interface{}{"title": "Slay 10 goblins", "reminderOn": true, "reminderTime": "14:00", "reminderDays": ""},
		},
	})
	if err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	devices := map[string]map[string]interface{}{
		"phone":    {"token": "token-phone", "platform": "android", "pushEnabled": true},
		"disabled": {"token": "token-off", "platform": "web", "pushEnabled": false},
		"blank":    {"token": "", "platform": "web", "pushEnabled": true},
	}
	for id, data := range devices {
		if _, err := userDoc.Collection("devices").Doc(id).Set(ctx, data); err != nil {
			t.Fatalf("failed to seed device %s: %v", id, err)
		}
	}

	t.Run("user without a top-level document is enumerated", func(t *testing.T) {
		ids, err := repo.ListUserIDs(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found := false
		for _, id := range ids {
			if id == userID {
				found = true
			}
		}
		if !found {
			t.Errorf("user %s not enumerated", userID)
		}
	})

	t.Run("profile decodes", func(t *testing.T) {
		profile, err := repo.GetProfile(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.TimeZone != "America/New_York" || len(profile.Reminders) != 1 {
			t.Errorf("unexpected profile: %+v", profile)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := repo.GetProfile(ctx, "missing-"+uuid.NewString())
		if !errors.Is(err, domain.ErrProfileNotFound) {
			t.Errorf("expected ErrProfileNotFound, got %v", err)
		}
	})

	t.Run("only enabled devices with tokens are listed", func(t *testing.T) {
		got, err := repo.ListPushDevices(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID != "phone" {
			t.Errorf("unexpected devices: %+v", got)
		}
	})

	t.Run("devices deleted atomically", func(t *testing.T) {
		if err := repo.DeleteDevices(ctx, userID, []string{"phone", "disabled", "never-existed"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		docs, err := userDoc.Collection("devices").Documents(ctx).GetAll()
		if err != nil {
			t.Fatalf("failed to list devices: %v", err)
		}
		if len(docs) != 1 || docs[0].Ref.ID != "blank" {
			t.Errorf("unexpected remaining devices: %d", len(docs))
		}
	})
}

func TestDedupRepository_Emulator(t *testing.T) {
	ctx := context.Background()
	client := testutil.SetupFirestoreEmulator(ctx, t)
	repo := NewDedupRepository(client)

	userID := "user-" + uuid.NewString()
	now := time.Now().UTC().Truncate(time.Millisecond)
	stateRef := client.Collection("users").Doc(userID).Collection("notifications").Doc("reminderState")

	if _, err := stateRef.Set(ctx, map[string]interface{}{"custom": "kept"}); err != nil {
		t.Fatalf("failed to seed state: %v", err)
	}

	last, err := repo.GetLastSlotKey(ctx, userID)
	if err != nil || last != "" {
		t.Fatalf("GetLastSlotKey() = %q, %v", last, err)
	}

	claim := domain.SlotClaim{UserID: userID, SlotKey: "2024-05-07T14:02", RunID: "run-a", ClaimedAt: now, Lease: 2 * time.Minute}
	ok, err := repo.ClaimSlot(ctx, claim)
	if err != nil || !ok {
		t.Fatalf("first ClaimSlot() = %v, %v", ok, err)
	}

	other := claim
	other.RunID = "run-b"
	ok, err = repo.ClaimSlot(ctx, other)
	if err != nil || ok {
		t.Fatalf("overlapping ClaimSlot() = %v, %v", ok, err)
	}

	err = repo.CommitSlot(ctx, userID, &domain.DedupState{
		LastSlotKey: "2024-05-07T14:02",
		DueCount:    1,
		SentCount:   1,
		TimeZone:    "America/New_York",
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CommitSlot() unexpected error: %v", err)
	}

	snap, err := stateRef.Get(ctx)
	if err != nil {
		t.Fatalf("failed to read state: %v", err)
	}
	data := snap.Data()
	if data["lastSlotKey"] != "2024-05-07T14:02" || data["custom"] != "kept" {
		t.Errorf("unexpected state after commit: %v", data)
	}
	if _, ok := data["claimRunId"]; ok {
		t.Error("claim fields should be cleared")
	}

	ok, err = repo.ClaimSlot(ctx, other)
	if err != nil || ok {
		t.Errorf("ClaimSlot() after commit = %v, %v", ok, err)
	}
}
