// Package daterange resolves named date presets to calendar-day intervals and
// detects which preset, if any, an interval corresponds to.
package daterange

import (
	"time"

	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// Clock returns the current instant.
type Clock func() time.Time

// PresetRange is a formula preset resolved against the current day.
type PresetRange struct {
	Preset   entity.DatePreset
	Label    string
	Interval entity.DateInterval
}

// Resolver maps presets to intervals relative to "today" in a fixed location.
// It holds no state besides its clock, so a single instance is shared.
type Resolver struct {
	now Clock
	loc *time.Location
}

// NewResolver creates a resolver. A nil clock uses time.Now and a nil
// location uses UTC.
func NewResolver(now Clock, loc *time.Location) *Resolver {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{now: now, loc: loc}
}

// Location returns the location calendar days are computed in.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Now returns the current instant in the resolver's location.
func (r *Resolver) Now() time.Time {
	return r.now().In(r.loc)
}

// Today returns midnight of the current day.
func (r *Resolver) Today() time.Time {
	return entity.StartOfDay(r.now(), r.loc)
}

// Resolve returns the interval of a formula preset, ending today.
// Resolving personalized or an unknown preset is a caller bug and returns
// an ErrCodeInvalidPreset error.
func (r *Resolver) Resolve(preset entity.DatePreset) (entity.DateInterval, error) {
	to := r.Today()

	var from time.Time
	switch preset {
	case entity.DatePresetToday:
		from = to
	case entity.DatePresetThisWeek:
		from = to.AddDate(0, 0, -6)
	case entity.DatePresetThisMonth:
		from = shiftMonths(to, -1)
	case entity.DatePresetThisYear:
		from = shiftMonths(to, -12)
	default:
		return entity.DateInterval{}, domainerror.NewFilterError(
			domainerror.ErrCodeInvalidPreset,
			"cannot resolve preset "+string(preset),
			domainerror.ErrInvalidPreset,
		)
	}

	return entity.NewDateInterval(from, to), nil
}

// ResolveOrDefault resolves preset, substituting the default preset when
// preset is not a formula. It returns the preset actually resolved.
func (r *Resolver) ResolveOrDefault(preset entity.DatePreset) (entity.DateInterval, entity.DatePreset) {
	if !preset.IsFormula() {
		preset = entity.DefaultDatePreset
	}
	interval, _ := r.Resolve(preset)
	return interval, preset
}

// Detect returns the first formula preset whose interval covers the same
// calendar days as interval, or personalized when none does or when
// interval is incomplete.
func (r *Resolver) Detect(interval entity.DateInterval) entity.DatePreset {
	if !interval.IsComplete() {
		return entity.DatePresetPersonalized
	}

	for _, preset := range entity.FormulaPresets {
		candidate, err := r.Resolve(preset)
		if err != nil {
			continue
		}
		if candidate.SameDays(interval) {
			return preset
		}
	}
	return entity.DatePresetPersonalized
}

// FormulaRanges resolves every formula preset in detection order.
func (r *Resolver) FormulaRanges() []PresetRange {
	ranges := make([]PresetRange, 0, len(entity.FormulaPresets))
	for _, preset := range entity.FormulaPresets {
		interval, _ := r.Resolve(preset)
		ranges = append(ranges, PresetRange{
			Preset:   preset,
			Label:    preset.Label(),
			Interval: interval,
		})
	}
	return ranges
}

// shiftMonths moves t by the given number of months, clamping the day to the
// last day of the target month.
func shiftMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	loc := t.Location()

	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, loc)
	if last := daysIn(first.Year(), first.Month(), loc); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, loc)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
