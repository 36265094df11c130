package datepicker

import (
	"context"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/domain/entity"
)

// SelectPresetInput represents the input for staging a preset.
type SelectPresetInput struct {
	UserID uuid.UUID
	Preset entity.DatePreset
}

// SelectPresetUseCase stages a preset in an open picker.
type SelectPresetUseCase struct {
	staged   adapter.StagedEditStore
	sessions *filters.Sessions
}

// NewSelectPresetUseCase creates a new SelectPresetUseCase instance.
func NewSelectPresetUseCase(staged adapter.StagedEditStore, sessions *filters.Sessions) *SelectPresetUseCase {
	return &SelectPresetUseCase{staged: staged, sessions: sessions}
}

// Execute stages the preset without touching the committed filters.
func (uc *SelectPresetUseCase) Execute(ctx context.Context, input SelectPresetInput) (*PickerOutput, error) {
	defer uc.sessions.LockPicker(input.UserID)()

	popover, err := resume(ctx, uc.staged, uc.sessions.Resolver(), input.UserID)
	if err != nil {
		return nil, err
	}
	if err := popover.SelectPreset(input.Preset); err != nil {
		return nil, err
	}
	if err := update(ctx, uc.staged, input.UserID, popover); err != nil {
		return nil, err
	}
	return outputOf(popover), nil
}
