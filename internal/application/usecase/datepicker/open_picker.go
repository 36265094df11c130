package datepicker

import (
	"context"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/domain/entity"
)

// OpenPickerUseCase opens an owner's date picker on the committed range.
type OpenPickerUseCase struct {
	staged   adapter.StagedEditStore
	sessions *filters.Sessions
}

// NewOpenPickerUseCase creates a new OpenPickerUseCase instance.
func NewOpenPickerUseCase(staged adapter.StagedEditStore, sessions *filters.Sessions) *OpenPickerUseCase {
	return &OpenPickerUseCase{staged: staged, sessions: sessions}
}

// Execute stages the owner's committed range. Opening an open picker fails
// with ErrCodeDatePickerAlreadyOpen.
func (uc *OpenPickerUseCase) Execute(ctx context.Context, userID uuid.UUID) (*PickerOutput, error) {
	defer uc.sessions.LockPicker(userID)()

	popover, err := resume(ctx, uc.staged, uc.sessions.Resolver(), userID)
	if err != nil {
		return nil, err
	}

	var committed entity.DateInterval
	if err := uc.sessions.With(ctx, userID, func(store *filters.Store) error {
		committed = store.Interval()
		return nil
	}); err != nil {
		return nil, err
	}

	if err := popover.Open(committed); err != nil {
		return nil, err
	}
	if err := save(ctx, uc.staged, userID, popover); err != nil {
		return nil, err
	}
	return outputOf(popover), nil
}
