package entity

// FiltersStorageKey is the preference key holding the dashboard filter snapshot.
const FiltersStorageKey = "dashboard-filters"

// AllCategories is the category selection that disables category filtering.
const AllCategories = "all"

// Period is the aggregation period of the trend chart.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// IsValid reports whether p is a supported aggregation period.
func (p Period) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// TableView is the grouping mode of the breakdown table.
type TableView string

const (
	TableViewLevel2 TableView = "level2"
	TableViewParent TableView = "parent"
)

// IsValid reports whether v is a supported table grouping.
func (v TableView) IsValid() bool {
	return v == TableViewLevel2 || v == TableViewParent
}

// VolumeFilter is the ticket volume bucket applied to the breakdown.
type VolumeFilter string

const (
	VolumeFilterAll    VolumeFilter = "all"
	VolumeFilterLow    VolumeFilter = "low-volume"
	VolumeFilterNormal VolumeFilter = "normal-volume"
	VolumeFilterHigh   VolumeFilter = "high-volume"
)

// Volume bucket thresholds, in tickets.
const (
	LowVolumeThreshold  = 50
	HighVolumeThreshold = 5000
)

// IsValid reports whether f is a known volume bucket.
func (f VolumeFilter) IsValid() bool {
	switch f {
	case VolumeFilterAll, VolumeFilterLow, VolumeFilterNormal, VolumeFilterHigh:
		return true
	}
	return false
}

// PageSizes lists the allowed breakdown page sizes.
var PageSizes = []int{5, 10, 20, 50}

// DefaultPageSize is the page size used on first load.
const DefaultPageSize = 10

// IsValidPageSize reports whether size is one of PageSizes.
func IsValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// FilterSnapshot is the persisted unit of dashboard filter state. The JSON
// field names are the storage schema and must not change.
type FilterSnapshot struct {
	CurrentPage      int          `json:"currentPage"`
	PageSize         int          `json:"pageSize"`
	SelectedCategory string       `json:"selectedCategory"`
	VolumeFilter     VolumeFilter `json:"volumeFilter"`
	StartDate        string       `json:"startDate"`
	EndDate          string       `json:"endDate"`
	SelectedPeriod   Period       `json:"selectedPeriod"`
	View             TableView    `json:"view"`
	DatePreset       DatePreset   `json:"datePreset"`
}

// DefaultFilterSnapshot returns the defaults merged under any stored snapshot.
// Dates are left empty; callers fill them from the default preset.
func DefaultFilterSnapshot() FilterSnapshot {
	return FilterSnapshot{
		CurrentPage:      1,
		PageSize:         DefaultPageSize,
		SelectedCategory: AllCategories,
		VolumeFilter:     VolumeFilterAll,
		SelectedPeriod:   PeriodMonthly,
		View:             TableViewLevel2,
		DatePreset:       DefaultDatePreset,
	}
}
