package datepicker

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
)

// ClosePickerOutput is the committed range and the resulting filters.
type ClosePickerOutput struct {
	Commit  Commit
	Filters *filters.FiltersOutput
}

// ClosePickerUseCase closes an owner's picker and commits the staged range.
type ClosePickerUseCase struct {
	staged   adapter.StagedEditStore
	sessions *filters.Sessions
	dispatch *filters.DispatchEventUseCase
}

// NewClosePickerUseCase creates a new ClosePickerUseCase instance.
func NewClosePickerUseCase(staged adapter.StagedEditStore, sessions *filters.Sessions) *ClosePickerUseCase {
	return &ClosePickerUseCase{
		staged:   staged,
		sessions: sessions,
		dispatch: filters.NewDispatchEventUseCase(sessions),
	}
}

// Execute reconciles the staged edit and dispatches exactly one
// commitDateRange event. Closing a closed picker fails with
// ErrCodeDatePickerNotOpen.
func (uc *ClosePickerUseCase) Execute(ctx context.Context, userID uuid.UUID) (*ClosePickerOutput, error) {
	defer uc.sessions.LockPicker(userID)()

	staged, err := uc.staged.Take(ctx, userID)
	if err != nil {
		return nil, unavailable(err)
	}
	if staged == nil {
		return nil, notOpen()
	}

	commit, err := Resume(uc.sessions.Resolver(), *staged).Close()
	if err != nil {
		return nil, err
	}

	output, err := uc.dispatch.Execute(ctx, filters.DispatchEventInput{
		UserID: userID,
		Event:  filters.CommitDateRange{Interval: commit.Interval, Preset: commit.Preset},
	})
	if err != nil {
		if restoreErr := uc.staged.Save(ctx, userID, staged); restoreErr != nil {
			slog.Warn("Failed to restore staged date range",
				"code", unavailableCode,
				"userID", userID,
				"error", restoreErr,
			)
		}
		return nil, err
	}

	if commit.Fallback {
		slog.Debug("Incomplete or inverted date range replaced by default",
			"userID", userID,
			"preset", commit.Preset,
		)
	}

	return &ClosePickerOutput{Commit: commit, Filters: output}, nil
}
