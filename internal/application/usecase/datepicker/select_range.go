package datepicker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// SelectRangeInput represents a manual calendar pick. Both dates empty
// clears the pick; an empty To is an in-progress pick.
type SelectRangeInput struct {
	UserID uuid.UUID
	From   string
	To     string
}

// SelectRangeUseCase stages a manual range in an open picker.
type SelectRangeUseCase struct {
	staged   adapter.StagedEditStore
	sessions *filters.Sessions
}

// NewSelectRangeUseCase creates a new SelectRangeUseCase instance.
func NewSelectRangeUseCase(staged adapter.StagedEditStore, sessions *filters.Sessions) *SelectRangeUseCase {
	return &SelectRangeUseCase{staged: staged, sessions: sessions}
}

// Execute stages the picked range without touching the committed filters.
func (uc *SelectRangeUseCase) Execute(ctx context.Context, input SelectRangeInput) (*PickerOutput, error) {
	picked, err := uc.parseRange(input)
	if err != nil {
		return nil, err
	}

	defer uc.sessions.LockPicker(input.UserID)()

	popover, err := resume(ctx, uc.staged, uc.sessions.Resolver(), input.UserID)
	if err != nil {
		return nil, err
	}
	if err := popover.SelectRange(picked); err != nil {
		return nil, err
	}
	if err := update(ctx, uc.staged, input.UserID, popover); err != nil {
		return nil, err
	}
	return outputOf(popover), nil
}

func (uc *SelectRangeUseCase) parseRange(input SelectRangeInput) (entity.DateInterval, error) {
	if input.From == "" && input.To != "" {
		return entity.DateInterval{}, invalidDate(nil)
	}

	var picked entity.DateInterval
	for _, field := range []struct {
		value  string
		target **time.Time
	}{
		{input.From, &picked.From},
		{input.To, &picked.To},
	} {
		if field.value == "" {
			continue
		}
		day, err := entity.ParseDay(field.value, uc.sessions.Resolver().Location())
		if err != nil {
			return entity.DateInterval{}, invalidDate(err)
		}
		*field.target = &day
	}
	return picked, nil
}

func invalidDate(err error) error {
	if err == nil {
		err = domainerror.ErrInvalidFilterDate
	}
	return domainerror.NewFilterError(domainerror.ErrCodeInvalidFilterDate, domainerror.ErrInvalidFilterDate.Error(), err)
}
