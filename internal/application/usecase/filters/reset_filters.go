package filters

import (
	"context"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/domain/entity"
)

// ResetFiltersUseCase overwrites an owner's filters with the defaults.
type ResetFiltersUseCase struct {
	sessions *Sessions
}

// NewResetFiltersUseCase creates a new ResetFiltersUseCase instance.
func NewResetFiltersUseCase(sessions *Sessions) *ResetFiltersUseCase {
	return &ResetFiltersUseCase{sessions: sessions}
}

// Execute writes the default snapshot and returns it.
func (uc *ResetFiltersUseCase) Execute(ctx context.Context, userID uuid.UUID) (entity.FilterSnapshot, error) {
	var snapshot entity.FilterSnapshot
	err := uc.sessions.With(ctx, userID, func(store *Store) error {
		if err := store.Load("", false); err != nil {
			return err
		}
		store.Flush(ctx)
		snapshot = store.State()
		return nil
	})
	return snapshot, err
}
