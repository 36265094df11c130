package dto

import (
	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/domain/entity"
)

// FilterEventRequest represents a filter event. Only the fields of the named
// type are read.
type FilterEventRequest struct {
	Type         string  `json:"type" binding:"required"`
	Page         *int    `json:"page,omitempty"`
	PageSize     *int    `json:"page_size,omitempty"`
	Category     *string `json:"category,omitempty"`
	VolumeFilter *string `json:"volume_filter,omitempty"`
	Date         *string `json:"date,omitempty"`
	Preset       *string `json:"preset,omitempty"`
	Period       *string `json:"period,omitempty"`
	View         *string `json:"view,omitempty"`
}

// ToEventInput converts the request to the use case input.
func (r FilterEventRequest) ToEventInput() filters.EventInput {
	return filters.EventInput{
		Type:         r.Type,
		Page:         r.Page,
		PageSize:     r.PageSize,
		Category:     r.Category,
		VolumeFilter: r.VolumeFilter,
		Date:         r.Date,
		Preset:       r.Preset,
		Period:       r.Period,
		View:         r.View,
	}
}

// FiltersResponse represents the response of the filter endpoints.
type FiltersResponse struct {
	Data FiltersData `json:"data"`
}

// FiltersData is the effective filter snapshot and what it derives.
type FiltersData struct {
	Filters        entity.FilterSnapshot `json:"filters"`
	RequestParams  entity.RequestParams  `json:"request_params"`
	DetectedPreset string                `json:"detected_preset"`
}

// ToFiltersData converts a FiltersOutput to its DTO.
func ToFiltersData(output *filters.FiltersOutput) FiltersData {
	return FiltersData{
		Filters:        output.Snapshot,
		RequestParams:  output.RequestParams,
		DetectedPreset: string(output.DetectedPreset),
	}
}

// ToFiltersResponse converts a FiltersOutput to FiltersResponse DTO.
func ToFiltersResponse(output *filters.FiltersOutput) FiltersResponse {
	return FiltersResponse{Data: ToFiltersData(output)}
}

// RequestParamsResponse represents the response of GET /filters/params.
type RequestParamsResponse struct {
	Data entity.RequestParams `json:"data"`
}

// SnapshotResponse represents a bare filter snapshot.
type SnapshotResponse struct {
	Data entity.FilterSnapshot `json:"data"`
}

// PresetsResponse represents the response of GET /presets.
type PresetsResponse struct {
	Data PresetsData `json:"data"`
}

// PresetsData lists today's preset ranges.
type PresetsData struct {
	Today          string                `json:"today"`
	Presets        []PresetRangeResponse `json:"presets"`
	DetectedPreset string                `json:"detected_preset"`
}

// PresetRangeResponse is one resolved preset.
type PresetRangeResponse struct {
	Preset    string `json:"preset"`
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ToPresetRangeResponse converts a resolved preset to its DTO.
func ToPresetRangeResponse(r daterange.PresetRange) PresetRangeResponse {
	return PresetRangeResponse{
		Preset:    string(r.Preset),
		Label:     r.Label,
		StartDate: entity.FormatOptionalDay(r.Interval.From),
		EndDate:   entity.FormatOptionalDay(r.Interval.To),
	}
}

// ToPresetsResponse converts a PresetsOutput to PresetsResponse DTO.
func ToPresetsResponse(output *filters.PresetsOutput) PresetsResponse {
	presets := make([]PresetRangeResponse, len(output.Presets))
	for i, p := range output.Presets {
		presets[i] = ToPresetRangeResponse(p)
	}

	return PresetsResponse{
		Data: PresetsData{
			Today:          output.Today,
			Presets:        presets,
			DetectedPreset: string(output.Detected),
		},
	}
}

// ChartSettingsRequest represents the body of PUT /chart-settings.
type ChartSettingsRequest struct {
	ViewMode       string `json:"viewMode" binding:"required"`
	SelectedParent string `json:"selectedParent"`
}

// ChartSettingsResponse represents the breakdown chart settings.
type ChartSettingsResponse struct {
	Data entity.ChartSettings `json:"data"`
}
