package filters

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// DecodeChartSettings reads stored chart settings with the same tolerance as
// the filter snapshot: missing or unknown fields fall back to defaults.
func DecodeChartSettings(raw string, found bool) (entity.ChartSettings, error) {
	settings := entity.DefaultChartSettings()
	if !found || raw == "" {
		return settings, nil
	}

	var stored struct {
		ViewMode       *string `json:"viewMode"`
		SelectedParent *string `json:"selectedParent"`
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return settings, domainerror.NewFilterError(domainerror.ErrCodeStorageCorrupt, domainerror.ErrStorageCorrupt.Error(), err)
	}

	if stored.ViewMode != nil && entity.TableView(*stored.ViewMode).IsValid() {
		settings.ViewMode = entity.TableView(*stored.ViewMode)
	}
	if stored.SelectedParent != nil && *stored.SelectedParent != "" {
		settings.SelectedParent = *stored.SelectedParent
	}
	return settings, nil
}

// GetChartSettingsUseCase loads the breakdown chart settings of an owner.
type GetChartSettingsUseCase struct {
	prefs adapter.PreferenceStore
}

// NewGetChartSettingsUseCase creates a new GetChartSettingsUseCase instance.
func NewGetChartSettingsUseCase(prefs adapter.PreferenceStore) *GetChartSettingsUseCase {
	return &GetChartSettingsUseCase{prefs: prefs}
}

// Execute returns the stored settings, or the defaults when they are
// missing or unreadable.
func (uc *GetChartSettingsUseCase) Execute(ctx context.Context, userID uuid.UUID) entity.ChartSettings {
	raw, found, err := uc.prefs.Get(ctx, userID, entity.ChartSettingsStorageKey)
	if err != nil {
		slog.Warn("Failed to read chart settings, using defaults",
			"code", domainerror.ErrCodeStorageUnavailable,
			"userID", userID,
			"error", err,
		)
		return entity.DefaultChartSettings()
	}

	settings, err := DecodeChartSettings(raw, found)
	if err != nil {
		slog.Warn("Stored chart settings are corrupt, using defaults",
			"code", domainerror.ErrCodeStorageCorrupt,
			"userID", userID,
			"error", err,
		)
	}
	return settings
}

// SaveChartSettingsInput represents the input for saving chart settings.
type SaveChartSettingsInput struct {
	UserID         uuid.UUID
	ViewMode       entity.TableView
	SelectedParent string
}

// SaveChartSettingsUseCase persists the breakdown chart settings of an owner.
type SaveChartSettingsUseCase struct {
	prefs adapter.PreferenceStore
}

// NewSaveChartSettingsUseCase creates a new SaveChartSettingsUseCase instance.
func NewSaveChartSettingsUseCase(prefs adapter.PreferenceStore) *SaveChartSettingsUseCase {
	return &SaveChartSettingsUseCase{prefs: prefs}
}

// Execute validates and stores the settings. A storage failure is logged and
// the settings are still returned, matching the filter snapshot policy.
func (uc *SaveChartSettingsUseCase) Execute(ctx context.Context, input SaveChartSettingsInput) (entity.ChartSettings, error) {
	if !input.ViewMode.IsValid() {
		return entity.ChartSettings{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidChartSettings,
			domainerror.ErrInvalidView.Error(),
			domainerror.ErrInvalidView,
		)
	}

	settings := entity.ChartSettings{
		ViewMode:       input.ViewMode,
		SelectedParent: input.SelectedParent,
	}
	if settings.SelectedParent == "" {
		settings.SelectedParent = entity.AllParents
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return entity.ChartSettings{}, err
	}

	if err := uc.prefs.Set(ctx, input.UserID, entity.ChartSettingsStorageKey, string(data)); err != nil {
		slog.Warn("Failed to persist chart settings",
			"code", domainerror.ErrCodeStorageUnavailable,
			"userID", input.UserID,
			"error", err,
		)
	}
	return settings, nil
}
