package datepicker

import (
	"context"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// PickerOutput is the picker state returned to clients.
type PickerOutput struct {
	State  State
	Staged *entity.StagedDateEdit
}

func outputOf(p *Popover) *PickerOutput {
	staged, open := p.Staged()
	if !open {
		return &PickerOutput{State: StateClosed}
	}
	return &PickerOutput{State: StateOpen, Staged: &staged}
}

// resume rebuilds the owner's picker from the staged edit store.
func resume(ctx context.Context, store adapter.StagedEditStore, r *daterange.Resolver, userID uuid.UUID) (*Popover, error) {
	staged, err := store.Get(ctx, userID)
	if err != nil {
		return nil, unavailable(err)
	}
	if staged == nil {
		return NewPopover(r), nil
	}
	return Resume(r, *staged), nil
}

func save(ctx context.Context, store adapter.StagedEditStore, userID uuid.UUID, p *Popover) error {
	staged, _ := p.Staged()
	if err := store.Save(ctx, userID, &staged); err != nil {
		return unavailable(err)
	}
	return nil
}

// update writes an edit of an open picker. A picker closed since it was
// read stays closed and the edit fails with ErrCodeDatePickerNotOpen.
func update(ctx context.Context, store adapter.StagedEditStore, userID uuid.UUID, p *Popover) error {
	staged, _ := p.Staged()
	updated, err := store.Update(ctx, userID, &staged)
	if err != nil {
		return unavailable(err)
	}
	if !updated {
		return notOpen()
	}
	return nil
}

const unavailableCode = domainerror.ErrCodeStorageUnavailable

func unavailable(err error) error {
	return domainerror.NewFilterError(unavailableCode, "date picker state unavailable", err)
}
