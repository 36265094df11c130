package model

import (
	"time"

	"github.com/automation-insights/backend/internal/domain/entity"
)

// StagedEditModel is the serialized form of a staged date picker edit.
// Dates are calendar days; empty means unset.
type StagedEditModel struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Preset        string `json:"preset"`
	CalendarMonth string `json:"calendar_month"`
}

// ToEntity converts a StagedEditModel to a domain StagedDateEdit, reading
// dates as midnight in loc.
func (m *StagedEditModel) ToEntity(loc *time.Location) *entity.StagedDateEdit {
	return &entity.StagedDateEdit{
		TempDate: entity.DateInterval{
			From: entity.ParseOptionalDay(m.From, loc),
			To:   entity.ParseOptionalDay(m.To, loc),
		},
		TempPreset:    entity.DatePreset(m.Preset),
		CalendarMonth: entity.ParseOptionalDay(m.CalendarMonth, loc),
	}
}

// StagedEditFromEntity creates a StagedEditModel from a domain StagedDateEdit.
func StagedEditFromEntity(edit *entity.StagedDateEdit) *StagedEditModel {
	return &StagedEditModel{
		From:          entity.FormatOptionalDay(edit.TempDate.From),
		To:            entity.FormatOptionalDay(edit.TempDate.To),
		Preset:        string(edit.TempPreset),
		CalendarMonth: entity.FormatOptionalDay(edit.CalendarMonth),
	}
}
