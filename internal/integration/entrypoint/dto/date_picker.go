package dto

import (
	"github.com/automation-insights/backend/internal/application/usecase/datepicker"
	"github.com/automation-insights/backend/internal/domain/entity"
)

// DatePickerPresetRequest represents the body of POST /date-picker/preset.
type DatePickerPresetRequest struct {
	Preset string `json:"preset" binding:"required"`
}

// DatePickerRangeRequest represents the body of POST /date-picker/range.
type DatePickerRangeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DatePickerResponse represents the picker state.
type DatePickerResponse struct {
	Data DatePickerData `json:"data"`
}

// DatePickerData is the picker state and its staged edit while open.
type DatePickerData struct {
	State  string              `json:"state"`
	Staged *StagedEditResponse `json:"staged,omitempty"`
}

// StagedEditResponse is the uncommitted selection of an open picker.
type StagedEditResponse struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Preset        string `json:"preset"`
	CalendarMonth string `json:"calendar_month,omitempty"`
}

// ToDatePickerResponse converts a PickerOutput to DatePickerResponse DTO.
func ToDatePickerResponse(output *datepicker.PickerOutput) DatePickerResponse {
	data := DatePickerData{State: output.State.String()}
	if output.Staged != nil {
		data.Staged = &StagedEditResponse{
			From:          entity.FormatOptionalDay(output.Staged.TempDate.From),
			To:            entity.FormatOptionalDay(output.Staged.TempDate.To),
			Preset:        string(output.Staged.TempPreset),
			CalendarMonth: entity.FormatOptionalDay(output.Staged.CalendarMonth),
		}
	}
	return DatePickerResponse{Data: data}
}

// ClosePickerResponse represents the response of POST /date-picker/close.
type ClosePickerResponse struct {
	Data ClosePickerData `json:"data"`
}

// ClosePickerData is the committed range and the resulting filters.
type ClosePickerData struct {
	State     string      `json:"state"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Preset    string      `json:"preset"`
	Fallback  bool        `json:"fallback"`
	Filters   FiltersData `json:"filters"`
}

// ToClosePickerResponse converts a ClosePickerOutput to ClosePickerResponse DTO.
func ToClosePickerResponse(output *datepicker.ClosePickerOutput) ClosePickerResponse {
	return ClosePickerResponse{
		Data: ClosePickerData{
			State:     datepicker.StateClosed.String(),
			StartDate: entity.FormatOptionalDay(output.Commit.Interval.From),
			EndDate:   entity.FormatOptionalDay(output.Commit.Interval.To),
			Preset:    string(output.Commit.Preset),
			Fallback:  output.Commit.Fallback,
			Filters:   ToFiltersData(output.Filters),
		},
	}
}
