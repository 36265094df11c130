package filters

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// DispatchEventInput represents the input for dispatching a filter event.
type DispatchEventInput struct {
	UserID uuid.UUID
	Event  Event
}

// DispatchEventUseCase applies one event to an owner's filters and persists
// the result.
type DispatchEventUseCase struct {
	sessions *Sessions
}

// NewDispatchEventUseCase creates a new DispatchEventUseCase instance.
func NewDispatchEventUseCase(sessions *Sessions) *DispatchEventUseCase {
	return &DispatchEventUseCase{sessions: sessions}
}

// Execute dispatches the event and returns the new filter state. Invalid
// events leave the stored snapshot untouched.
func (uc *DispatchEventUseCase) Execute(ctx context.Context, input DispatchEventInput) (*FiltersOutput, error) {
	var output *FiltersOutput
	err := uc.sessions.With(ctx, input.UserID, func(store *Store) error {
		if _, err := store.Dispatch(ctx, input.Event); err != nil {
			return err
		}
		output = newFiltersOutput(store)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Dashboard filter event applied",
		"userID", input.UserID,
		"event", input.Event.Type(),
		"page", output.Snapshot.CurrentPage,
	)
	return output, nil
}
