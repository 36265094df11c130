// Package filters contains the dashboard filter store and its use cases.
package filters

import (
	"time"

	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// EventType names a filter mutation.
type EventType string

const (
	EventSetPage         EventType = "setPage"
	EventSetPageSize     EventType = "setPageSize"
	EventSetCategory     EventType = "setCategory"
	EventSetVolumeFilter EventType = "setVolumeFilter"
	EventSetStartDate    EventType = "setStartDate"
	EventSetEndDate      EventType = "setEndDate"
	EventSetDatePreset   EventType = "setDatePreset"
	EventSetPeriod       EventType = "setPeriod"
	EventSetView         EventType = "setView"
	EventClearDateRange  EventType = "clearDateRange"
	EventCommitDateRange EventType = "commitDateRange"
)

// Event is a single mutation of the filter snapshot. Every event except
// SetPage moves the snapshot back to the first page.
type Event interface {
	Type() EventType
	apply(s entity.FilterSnapshot, r *daterange.Resolver) (entity.FilterSnapshot, error)
}

// SetPage navigates the breakdown table.
type SetPage struct {
	Page int
}

func (SetPage) Type() EventType { return EventSetPage }

func (e SetPage) apply(s entity.FilterSnapshot, _ *daterange.Resolver) (entity.FilterSnapshot, error) {
	if e.Page < 1 {
		return s, domainerror.NewFilterError(domainerror.ErrCodeInvalidPage, domainerror.ErrInvalidPage.Error(), domainerror.ErrInvalidPage)
	}
	s.CurrentPage = e.Page
	return s, nil
}

// SetPageSize changes the number of breakdown rows per page.
type SetPageSize struct {
	PageSize int
}

func (SetPageSize) Type() EventType { return EventSetPageSize }

func (e SetPageSize) apply(s entity.FilterSnapshot, _ *daterange.Resolver) (entity.FilterSnapshot, error) {
	if !entity.IsValidPageSize(e.PageSize) {
		return s, domainerror.NewFilterError(domainerror.ErrCodeInvalidPageSize, domainerror.ErrInvalidPageSize.Error(), domainerror.ErrInvalidPageSize)
	}
	s.PageSize = e.PageSize
	s.CurrentPage = 1
	return s, nil
}

// SetCategory selects a category id, or entity.AllCategories.
type SetCategory struct {
	Category string
}

func (SetCategory) Type() EventType { return EventSetCategory }

func (e SetCategory) apply(s entity.FilterSnapshot, _ *daterange.Resolver) (entity.FilterSnapshot, error) {
	if e.Category == "" {
		return s, domainerror.NewFilterError(domainerror.ErrCodeEmptyCategory, domainerror.ErrEmptyCategory.Error(), domainerror.ErrEmptyCategory)
	}
	s.SelectedCategory = e.Category
	s.CurrentPage = 1
	return s, nil
}

// SetVolumeFilter selects a ticket volume bucket.
type SetVolumeFilter struct {
	Filter entity.VolumeFilter
}

func (SetVolumeFilter) Type() EventType { return EventSetVolumeFilter }

func (e SetVolumeFilter) apply(s entity.FilterSnapshot, _ *daterange.Resolver) (entity.FilterSnapshot, error) {
	if !e.Filter.IsValid() {
		return s, domainerror.NewFilterError(domainerror.ErrCodeInvalidVolumeFilter, domainerror.ErrInvalidVolumeFilter.Error(), domainerror.ErrInvalidVolumeFilter)
	}
	s.VolumeFilter = e.Filter
	s.CurrentPage = 1
	return s, nil
}

// SetStartDate edits the start of the range directly. A nil date clears it.
// Manual edits always mark the range personalized.
type SetStartDate struct {
	Date *time.Time
}

func (SetStartDate) Type() EventType { return EventSetStartDate }

func (e SetStartDate) apply(s entity.FilterSnapshot, _ *daterange.Resolver) (entity.FilterSnapshot, error) {
	s.StartDate = entity.FormatOptionalDay(e.Date)
	s.DatePreset = entity.DatePresetPersonalized
	s.CurrentPage = 1
	return s, nil
}

// SetEndDate edits the end of the range directly. A nil date clears it.
type SetEndDate struct {
	Date *time.Time
}

func (SetEndDate) Type() EventType { return EventSetEndDate }

func (e SetEndDate) apply(s entity.FilterSnapshot, _ *daterange.Resolver) (entity.FilterSnapshot, error) {
	s.EndDate = entity.FormatOptionalDay(e.Date)
	s.DatePreset = entity.DatePresetPersonalized
	s.CurrentPage = 1
	return s, nil
}

// SetDatePreset tags the range with a preset. Formula presets recompute both
// dates; personalized keeps the current dates.
type SetDatePreset struct {
	Preset entity.DatePreset
}

func (SetDatePreset) Type() EventType { return EventSetDatePreset }

func (e SetDatePreset) apply(s entity.FilterSnapshot, r *daterange.Resolver) (entity.FilterSnapshot, error) {
	if !e.Preset.IsValid() {
		return s, domainerror.NewFilterError(domainerror.ErrCodeInvalidPreset, "unknown preset "+string(e.Preset), domainerror.ErrInvalidPreset)
	}
	if e.Preset.IsFormula() {
		interval, err := r.Resolve(e.Preset)
		if err != nil {
			return s, err
		}
		s = withInterval(s, interval)
	}
	s.DatePreset = e.Preset
	s.CurrentPage = 1
	return s, nil
}

// SetPeriod changes the trend chart aggregation period.
type SetPeriod struct {
	Period entity.Period
}

func (SetPeriod) Type() EventType { return EventSetPeriod }

func (e SetPeriod) apply(s entity.FilterSnapshot, _ *daterange.Resolver) (entity.FilterSnapshot, error) {
	if !e.Period.IsValid() {
		return s, domainerror.NewFilterError(domainerror.ErrCodeInvalidPeriod, domainerror.ErrInvalidPeriod.Error(), domainerror.ErrInvalidPeriod)
	}
	s.SelectedPeriod = e.Period
	s.CurrentPage = 1
	return s, nil
}

// SetView switches the breakdown grouping.
type SetView struct {
	View entity.TableView
}

func (SetView) Type() EventType { return EventSetView }

func (e SetView) apply(s entity.FilterSnapshot, _ *daterange.Resolver) (entity.FilterSnapshot, error) {
	if !e.View.IsValid() {
		return s, domainerror.NewFilterError(domainerror.ErrCodeInvalidView, domainerror.ErrInvalidView.Error(), domainerror.ErrInvalidView)
	}
	s.View = e.View
	s.CurrentPage = 1
	return s, nil
}

// ClearDateRange restores the default preset and its dates.
type ClearDateRange struct{}

func (ClearDateRange) Type() EventType { return EventClearDateRange }

func (ClearDateRange) apply(s entity.FilterSnapshot, r *daterange.Resolver) (entity.FilterSnapshot, error) {
	interval, preset := r.ResolveOrDefault(entity.DefaultDatePreset)
	s = withInterval(s, interval)
	s.DatePreset = preset
	s.CurrentPage = 1
	return s, nil
}

// CommitDateRange writes the outcome of closing the date picker. An
// incomplete or inverted interval commits the default preset instead.
type CommitDateRange struct {
	Interval entity.DateInterval
	Preset   entity.DatePreset
}

func (CommitDateRange) Type() EventType { return EventCommitDateRange }

func (e CommitDateRange) apply(s entity.FilterSnapshot, r *daterange.Resolver) (entity.FilterSnapshot, error) {
	interval, preset := e.Interval, e.Preset
	if !interval.IsOrdered() {
		interval, preset = r.ResolveOrDefault(entity.DefaultDatePreset)
	}
	if !preset.IsValid() {
		preset = entity.DatePresetPersonalized
	}
	s = withInterval(s, interval)
	s.DatePreset = preset
	s.CurrentPage = 1
	return s, nil
}

func withInterval(s entity.FilterSnapshot, interval entity.DateInterval) entity.FilterSnapshot {
	s.StartDate = entity.FormatOptionalDay(interval.From)
	s.EndDate = entity.FormatOptionalDay(interval.To)
	return s
}
