package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/config"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/domain/entity"
	"github.com/automation-insights/backend/internal/infra/db"
	"github.com/automation-insights/backend/internal/integration/adapters"
	"github.com/automation-insights/backend/internal/integration/persistence"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestPresetsCmd(t *testing.T) {
	out, err := run(t, "presets", "--today", "2025-01-15", "--tz", "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, expected := range []string{
		"2025-01-15..2025-01-15",
		"2025-01-09..2025-01-15",
		"2024-12-15..2025-01-15",
		"2024-01-15..2025-01-15",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected output to contain %s, got:\n%s", expected, out)
		}
	}
}

func TestDetectCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "this month", args: []string{"--from", "2024-12-15", "--to", "2025-01-15"}, expected: "thisMonth"},
		{name: "custom", args: []string{"--from", "2024-12-16", "--to", "2025-01-15"}, expected: "personalized"},
		{name: "open ended", args: []string{"--from", "2024-12-15"}, expected: "personalized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"detect", "--today", "2025-01-15", "--tz", "UTC"}, tt.args...)
			out, err := run(t, args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.TrimSpace(out) != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, out)
			}
		})
	}

	t.Run("bad date", func(t *testing.T) {
		if _, err := run(t, "detect", "--from", "15/01/2025"); err == nil {
			t.Error("expected error for malformed date")
		}
	})
}

func TestResetCmd(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	out, err := run(t, "reset", "--user", uuid.NewString(), "--today", "2025-01-15", "--tz", "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var snapshot entity.FilterSnapshot
	if err := json.Unmarshal([]byte(out), &snapshot); err != nil {
		t.Fatalf("expected JSON snapshot, got %s", out)
	}
	if snapshot.StartDate != "2024-12-15" || snapshot.EndDate != "2025-01-15" {
		t.Errorf("expected this month's dates, got %s..%s", snapshot.StartDate, snapshot.EndDate)
	}
	if snapshot.DatePreset != entity.DatePresetThisMonth {
		t.Errorf("expected thisMonth, got %s", snapshot.DatePreset)
	}
}

func TestShowCmd_RequiresValidUser(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	if _, err := run(t, "show", "--user", "not-a-uuid"); err == nil {
		t.Error("expected error for invalid user id")
	}
}

func TestShowCmd_LeavesStorageUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	t.Setenv("STORAGE_DRIVER", config.StorageSQLite)
	t.Setenv("SQLITE_PATH", path)
	userID := uuid.New()

	out, err := run(t, "show", "--user", userID.String(), "--today", "2025-01-15", "--tz", "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var output filters.FiltersOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("expected JSON filters, got %s", out)
	}
	if output.Snapshot.DatePreset != entity.DatePresetThisMonth || output.Snapshot.StartDate != "2024-12-15" {
		t.Errorf("expected default thisMonth filters, got %+v", output.Snapshot)
	}

	database, err := db.NewSQLiteConnection(&config.SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = database.Close() }()

	if _, found, err := persistence.NewSQLPreferenceStore(database.DB()).Get(context.Background(), userID, entity.FiltersStorageKey); err != nil || found {
		t.Errorf("expected show not to store filters, found=%v err=%v", found, err)
	}
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	userID := uuid.New()

	out, err := run(t, "token", "--user", userID.String(), "--email", "ops@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := config.Load()
	claims, err := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry).
		ValidateAccessToken(context.Background(), strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("expected a valid token, got %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected %s, got %s", userID, claims.UserID)
	}
}
