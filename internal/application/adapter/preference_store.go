package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/domain/entity"
)

// PreferenceStore is the key-value store holding serialized dashboard
// preferences, scoped per owner.
type PreferenceStore interface {
	// Get returns the stored value for key. found is false when the key is absent.
	Get(ctx context.Context, ownerID uuid.UUID, key string) (value string, found bool, err error)

	// Set replaces the stored value for key.
	Set(ctx context.Context, ownerID uuid.UUID, key, value string) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// StagedEditStore holds the staged state of an open date picker per owner.
type StagedEditStore interface {
	// Get returns the staged edit, or nil when the picker is closed.
	Get(ctx context.Context, ownerID uuid.UUID) (*entity.StagedDateEdit, error)

	// Save stores the staged edit, refreshing its lifetime.
	Save(ctx context.Context, ownerID uuid.UUID, edit *entity.StagedDateEdit) error

	// Update replaces a staged edit only while one exists. It reports false
	// when the picker was closed or expired in the meantime.
	Update(ctx context.Context, ownerID uuid.UUID, edit *entity.StagedDateEdit) (bool, error)

	// Take removes and returns the staged edit in one step, or nil when the
	// picker is closed. Of two concurrent calls at most one gets the edit.
	Take(ctx context.Context, ownerID uuid.UUID) (*entity.StagedDateEdit, error)
}
