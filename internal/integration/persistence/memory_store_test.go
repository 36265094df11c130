package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/domain/entity"
)

func TestMemoryPreferenceStore(t *testing.T) {
	store := NewMemoryPreferenceStore()
	ctx := context.Background()
	ownerID := uuid.New()

	if _, found, _ := store.Get(ctx, ownerID, "k"); found {
		t.Fatal("expected key to be absent")
	}
	_ = store.Set(ctx, ownerID, "k", "v1")
	_ = store.Set(ctx, ownerID, "k", "v2")

	value, found, err := store.Get(ctx, ownerID, "k")
	if err != nil || !found || value != "v2" {
		t.Errorf("expected v2, got %q found=%v err=%v", value, found, err)
	}
}

func TestMemoryStagedEditStore_Expiry(t *testing.T) {
	now := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStagedEditStore(10*time.Minute, func() time.Time { return now })
	ctx := context.Background()
	ownerID := uuid.New()

	if err := store.Save(ctx, ownerID, &entity.StagedDateEdit{TempPreset: entity.DatePresetThisWeek}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now = now.Add(9 * time.Minute)
	got, _ := store.Get(ctx, ownerID)
	if got == nil || got.TempPreset != entity.DatePresetThisWeek {
		t.Fatalf("expected staged edit before expiry, got %+v", got)
	}

	now = now.Add(time.Minute)
	if got, _ := store.Get(ctx, ownerID); got != nil {
		t.Errorf("expected staged edit to expire, got %+v", got)
	}
}

func TestMemoryStagedEditStore_UpdateAndTake(t *testing.T) {
	now := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStagedEditStore(10*time.Minute, func() time.Time { return now })
	ctx := context.Background()
	ownerID := uuid.New()

	if updated, _ := store.Update(ctx, ownerID, &entity.StagedDateEdit{TempPreset: entity.DatePresetToday}); updated {
		t.Fatal("expected update of a closed picker to be refused")
	}

	_ = store.Save(ctx, ownerID, &entity.StagedDateEdit{TempPreset: entity.DatePresetThisWeek})
	if updated, _ := store.Update(ctx, ownerID, &entity.StagedDateEdit{TempPreset: entity.DatePresetToday}); !updated {
		t.Fatal("expected update of an open picker to succeed")
	}

	taken, _ := store.Take(ctx, ownerID)
	if taken == nil || taken.TempPreset != entity.DatePresetToday {
		t.Fatalf("expected to take today, got %+v", taken)
	}
	if taken, _ := store.Take(ctx, ownerID); taken != nil {
		t.Errorf("expected nothing left to take, got %+v", taken)
	}
	if updated, _ := store.Update(ctx, ownerID, &entity.StagedDateEdit{TempPreset: entity.DatePresetThisYear}); updated {
		t.Error("expected update after take to be refused")
	}

	_ = store.Save(ctx, ownerID, &entity.StagedDateEdit{TempPreset: entity.DatePresetThisWeek})
	now = now.Add(10 * time.Minute)
	if taken, _ := store.Take(ctx, ownerID); taken != nil {
		t.Errorf("expected expired edit not to be taken, got %+v", taken)
	}
}
