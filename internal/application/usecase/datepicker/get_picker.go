package datepicker

import (
	"context"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
)

// GetPickerUseCase returns an owner's picker state.
type GetPickerUseCase struct {
	staged   adapter.StagedEditStore
	sessions *filters.Sessions
}

// NewGetPickerUseCase creates a new GetPickerUseCase instance.
func NewGetPickerUseCase(staged adapter.StagedEditStore, sessions *filters.Sessions) *GetPickerUseCase {
	return &GetPickerUseCase{staged: staged, sessions: sessions}
}

// Execute returns the staged edit, or a closed state.
func (uc *GetPickerUseCase) Execute(ctx context.Context, userID uuid.UUID) (*PickerOutput, error) {
	popover, err := resume(ctx, uc.staged, uc.sessions.Resolver(), userID)
	if err != nil {
		return nil, err
	}
	return outputOf(popover), nil
}
