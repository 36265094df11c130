package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/domain/entity"
)

type preferenceID struct {
	ownerID uuid.UUID
	key     string
}

// memoryPreferenceStore implements the adapter.PreferenceStore interface in
// process memory. Values are lost on restart.
type memoryPreferenceStore struct {
	mu     sync.RWMutex
	values map[preferenceID]string
}

// NewMemoryPreferenceStore creates a new in-memory preference store instance.
func NewMemoryPreferenceStore() adapter.PreferenceStore {
	return &memoryPreferenceStore{
		values: make(map[preferenceID]string),
	}
}

// Get retrieves a preference by owner and key.
func (s *memoryPreferenceStore) Get(_ context.Context, ownerID uuid.UUID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[preferenceID{ownerID, key}]
	return value, ok, nil
}

// Set replaces a preference.
func (s *memoryPreferenceStore) Set(_ context.Context, ownerID uuid.UUID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[preferenceID{ownerID, key}] = value
	return nil
}

// Ping always succeeds.
func (s *memoryPreferenceStore) Ping(context.Context) error {
	return nil
}

type stagedEntry struct {
	edit      entity.StagedDateEdit
	expiresAt time.Time
}

// memoryStagedEditStore implements the adapter.StagedEditStore interface in
// process memory with the same expiry rule as the Redis store.
type memoryStagedEditStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]stagedEntry
}

// NewMemoryStagedEditStore creates a new in-memory staged edit store instance.
// A nil clock uses time.Now.
func NewMemoryStagedEditStore(ttl time.Duration, now func() time.Time) adapter.StagedEditStore {
	if now == nil {
		now = time.Now
	}
	return &memoryStagedEditStore{
		ttl:     ttl,
		now:     now,
		entries: make(map[uuid.UUID]stagedEntry),
	}
}

// Get retrieves the staged edit of an owner, dropping it when expired.
func (s *memoryStagedEditStore) Get(_ context.Context, ownerID uuid.UUID) (*entity.StagedDateEdit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(ownerID)
	if !ok {
		return nil, nil
	}
	edit := entry.edit
	return &edit, nil
}

// Save stores the staged edit of an owner and refreshes its expiry.
func (s *memoryStagedEditStore) Save(_ context.Context, ownerID uuid.UUID, edit *entity.StagedDateEdit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[ownerID] = stagedEntry{edit: *edit, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Update overwrites a live staged edit and refreshes its expiry.
func (s *memoryStagedEditStore) Update(_ context.Context, ownerID uuid.UUID, edit *entity.StagedDateEdit) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live(ownerID); !ok {
		return false, nil
	}
	s.entries[ownerID] = stagedEntry{edit: *edit, expiresAt: s.now().Add(s.ttl)}
	return true, nil
}

// Take removes and returns the staged edit of an owner.
func (s *memoryStagedEditStore) Take(_ context.Context, ownerID uuid.UUID) (*entity.StagedDateEdit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(ownerID)
	if !ok {
		return nil, nil
	}
	delete(s.entries, ownerID)
	edit := entry.edit
	return &edit, nil
}

// live returns the owner's unexpired entry. Callers hold s.mu.
func (s *memoryStagedEditStore) live(ownerID uuid.UUID) (stagedEntry, bool) {
	entry, ok := s.entries[ownerID]
	if !ok {
		return stagedEntry{}, false
	}
	if s.ttl > 0 && !s.now().Before(entry.expiresAt) {
		delete(s.entries, ownerID)
		return stagedEntry{}, false
	}
	return entry, true
}
