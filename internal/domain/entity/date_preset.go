// Package entity defines the core business entities for the domain layer.
package entity

// DatePreset names a date range selection on the dashboard.
type DatePreset string

const (
	DatePresetToday        DatePreset = "today"
	DatePresetThisWeek     DatePreset = "thisWeek"
	DatePresetThisMonth    DatePreset = "thisMonth"
	DatePresetThisYear     DatePreset = "thisYear"
	DatePresetPersonalized DatePreset = "personalized"
)

// DefaultDatePreset is the preset applied on first load and whenever a date
// range selection is abandoned or invalid.
const DefaultDatePreset = DatePresetThisMonth

// FormulaPresets lists the presets that can be regenerated from "now",
// in the order they are matched by preset detection.
var FormulaPresets = []DatePreset{
	DatePresetToday,
	DatePresetThisWeek,
	DatePresetThisMonth,
	DatePresetThisYear,
}

// presetLabels holds the display label of every preset.
var presetLabels = map[DatePreset]string{
	DatePresetToday:        "Today",
	DatePresetThisWeek:     "This Week",
	DatePresetThisMonth:    "This Month",
	DatePresetThisYear:     "This Year",
	DatePresetPersonalized: "Personalized",
}

// IsValid reports whether p is one of the known presets.
func (p DatePreset) IsValid() bool {
	_, ok := presetLabels[p]
	return ok
}

// IsFormula reports whether p is regenerable from the current date.
func (p DatePreset) IsFormula() bool {
	return p.IsValid() && p != DatePresetPersonalized
}

// Label returns the display label for the preset.
func (p DatePreset) Label() string {
	if label, ok := presetLabels[p]; ok {
		return label
	}
	return string(p)
}

// AllDatePresets returns every preset in display order.
func AllDatePresets() []DatePreset {
	presets := make([]DatePreset, 0, len(FormulaPresets)+1)
	presets = append(presets, FormulaPresets...)
	return append(presets, DatePresetPersonalized)
}
