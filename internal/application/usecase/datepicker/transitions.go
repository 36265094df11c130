// Package datepicker implements the staged-edit date picker: browsing presets
// and ranges edits a private copy that is committed to the filters only when
// the picker closes.
package datepicker

import (
	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// Commit is the single write produced by closing the picker.
type Commit struct {
	Interval entity.DateInterval
	Preset   entity.DatePreset
	// Fallback is set when the staged range was incomplete or inverted and
	// the default preset was committed instead.
	Fallback bool
}

// Open stages a copy of the committed interval.
func Open(r *daterange.Resolver, committed entity.DateInterval) entity.StagedDateEdit {
	preset := entity.DefaultDatePreset
	if !committed.IsEmpty() {
		preset = r.Detect(committed)
	}
	return entity.StagedDateEdit{
		TempDate:      committed,
		TempPreset:    preset,
		CalendarMonth: committed.From,
	}
}

// ApplyPreset stages a preset. Formula presets replace the staged range and
// move the calendar to its start; personalized only retags the range.
func ApplyPreset(r *daterange.Resolver, staged entity.StagedDateEdit, preset entity.DatePreset) (entity.StagedDateEdit, error) {
	if !preset.IsValid() {
		return staged, domainerror.NewFilterError(domainerror.ErrCodeInvalidPreset, "unknown preset "+string(preset), domainerror.ErrInvalidPreset)
	}

	staged.TempPreset = preset
	if preset.IsFormula() {
		interval, err := r.Resolve(preset)
		if err != nil {
			return staged, err
		}
		staged.TempDate = interval
		staged.CalendarMonth = interval.From
	}
	return staged, nil
}

// ApplyRange stages a manual calendar pick. Any pick marks the range
// personalized, even one that matches a preset. Picking nothing clears the
// staged range and restores the default preset.
func ApplyRange(staged entity.StagedDateEdit, picked entity.DateInterval) entity.StagedDateEdit {
	if picked.IsEmpty() {
		staged.TempDate = entity.DateInterval{}
		staged.TempPreset = entity.DefaultDatePreset
		return staged
	}
	staged.TempDate = picked
	staged.TempPreset = entity.DatePresetPersonalized
	return staged
}

// Close reconciles the staged edit into the value to commit. A complete,
// ordered range is committed as staged; anything else commits the default
// preset resolved for today.
func Close(r *daterange.Resolver, staged entity.StagedDateEdit) Commit {
	if staged.TempDate.IsOrdered() {
		return Commit{Interval: staged.TempDate, Preset: staged.TempPreset}
	}
	interval, preset := r.ResolveOrDefault(entity.DefaultDatePreset)
	return Commit{Interval: interval, Preset: preset, Fallback: true}
}
