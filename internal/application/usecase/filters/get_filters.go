package filters

import (
	"context"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/domain/entity"
)

// FiltersOutput is the effective filter state and what it derives.
type FiltersOutput struct {
	Snapshot       entity.FilterSnapshot `json:"filters"`
	RequestParams  entity.RequestParams  `json:"request_params"`
	DetectedPreset entity.DatePreset     `json:"detected_preset"`
}

func newFiltersOutput(store *Store) *FiltersOutput {
	return &FiltersOutput{
		Snapshot:       store.State(),
		RequestParams:  store.RequestParams(),
		DetectedPreset: store.resolver.Detect(store.Interval()),
	}
}

// GetFiltersUseCase loads an owner's filters the way a dashboard does on
// mount: the reconciled snapshot is written back when it differs from storage.
type GetFiltersUseCase struct {
	sessions *Sessions
}

// NewGetFiltersUseCase creates a new GetFiltersUseCase instance.
func NewGetFiltersUseCase(sessions *Sessions) *GetFiltersUseCase {
	return &GetFiltersUseCase{sessions: sessions}
}

// Execute returns the owner's effective filters.
func (uc *GetFiltersUseCase) Execute(ctx context.Context, userID uuid.UUID) (*FiltersOutput, error) {
	var output *FiltersOutput
	err := uc.sessions.With(ctx, userID, func(store *Store) error {
		store.Flush(ctx)
		output = newFiltersOutput(store)
		return nil
	})
	return output, err
}

// InspectFiltersUseCase reports an owner's effective filters without
// writing the reconciled snapshot back.
type InspectFiltersUseCase struct {
	sessions *Sessions
}

// NewInspectFiltersUseCase creates a new InspectFiltersUseCase instance.
func NewInspectFiltersUseCase(sessions *Sessions) *InspectFiltersUseCase {
	return &InspectFiltersUseCase{sessions: sessions}
}

// Execute returns the owner's effective filters. Storage is left untouched.
func (uc *InspectFiltersUseCase) Execute(ctx context.Context, userID uuid.UUID) (*FiltersOutput, error) {
	var output *FiltersOutput
	err := uc.sessions.With(ctx, userID, func(store *Store) error {
		output = newFiltersOutput(store)
		return nil
	})
	return output, err
}
