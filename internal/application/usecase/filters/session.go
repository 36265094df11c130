package filters

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// Sessions opens filter stores bound to an owner's persisted preferences.
// Access to one owner's store is serialized; storage failures are logged
// and never returned.
type Sessions struct {
	prefs     adapter.PreferenceStore
	resolver  *daterange.Resolver
	snapshots *ownerLocks
	pickers   *ownerLocks
}

// NewSessions creates a new Sessions instance.
func NewSessions(prefs adapter.PreferenceStore, resolver *daterange.Resolver) *Sessions {
	return &Sessions{
		prefs:     prefs,
		resolver:  resolver,
		snapshots: newOwnerLocks(),
		pickers:   newOwnerLocks(),
	}
}

// Resolver returns the resolver shared by every store.
func (s *Sessions) Resolver() *daterange.Resolver {
	return s.resolver
}

// With loads the owner's store and runs fn while holding the owner's lock.
// Changes dispatched inside fn are written back through the store's change hook.
func (s *Sessions) With(ctx context.Context, ownerID uuid.UUID, fn func(*Store) error) error {
	unlock := s.snapshots.lock(ownerID)
	defer unlock()

	store := NewStore(s.resolver, func(ctx context.Context, snapshot entity.FilterSnapshot) {
		s.persist(ctx, ownerID, snapshot)
	})

	raw, found, err := s.prefs.Get(ctx, ownerID, entity.FiltersStorageKey)
	if err != nil {
		slog.Warn("Failed to read dashboard filters, using defaults",
			"code", domainerror.ErrCodeStorageUnavailable,
			"userID", ownerID,
			"error", err,
		)
		found = false
	}

	if err := store.Load(raw, found); err != nil {
		slog.Warn("Stored dashboard filters are corrupt, using defaults",
			"code", codeOf(err),
			"userID", ownerID,
			"error", err,
		)
	}

	return fn(store)
}

func (s *Sessions) persist(ctx context.Context, ownerID uuid.UUID, snapshot entity.FilterSnapshot) {
	encoded, err := EncodeSnapshot(snapshot)
	if err != nil {
		slog.Error("Failed to encode dashboard filters", "userID", ownerID, "error", err)
		return
	}

	if err := s.prefs.Set(ctx, ownerID, entity.FiltersStorageKey, encoded); err != nil {
		slog.Warn("Failed to persist dashboard filters",
			"code", domainerror.ErrCodeStorageUnavailable,
			"userID", ownerID,
			"error", err,
		)
	}
}

// LockPicker serializes date picker steps for one owner and returns the
// release func. It may be held while calling With, never the other way round.
func (s *Sessions) LockPicker(ownerID uuid.UUID) func() {
	return s.pickers.lock(ownerID)
}

func codeOf(err error) domainerror.FilterErrorCode {
	var filterErr *domainerror.FilterError
	if errors.As(err, &filterErr) {
		return filterErr.Code
	}
	return domainerror.ErrCodeFilterInternalError
}
