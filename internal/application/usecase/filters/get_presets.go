package filters

import (
	"context"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/domain/entity"
)

// PresetsOutput lists today's preset ranges and the preset matching the
// owner's committed dates.
type PresetsOutput struct {
	Today    string                  `json:"today"`
	Presets  []daterange.PresetRange `json:"presets"`
	Detected entity.DatePreset       `json:"detected_preset"`
}

// GetPresetsUseCase resolves every formula preset for today.
type GetPresetsUseCase struct {
	sessions *Sessions
}

// NewGetPresetsUseCase creates a new GetPresetsUseCase instance.
func NewGetPresetsUseCase(sessions *Sessions) *GetPresetsUseCase {
	return &GetPresetsUseCase{sessions: sessions}
}

// Execute returns the resolved presets without writing to storage.
func (uc *GetPresetsUseCase) Execute(ctx context.Context, userID uuid.UUID) (*PresetsOutput, error) {
	r := uc.sessions.Resolver()
	output := &PresetsOutput{
		Today:   entity.FormatDay(r.Today()),
		Presets: r.FormulaRanges(),
	}

	err := uc.sessions.With(ctx, userID, func(store *Store) error {
		output.Detected = r.Detect(store.Interval())
		return nil
	})
	return output, err
}
