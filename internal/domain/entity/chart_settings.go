package entity

// ChartSettingsStorageKey is the preference key of the breakdown chart settings.
const ChartSettingsStorageKey = "dashboard-category-breakdown-settings"

// AllParents disables the parent-category filter of the breakdown chart.
const AllParents = "all"

// ChartSettings holds the persisted options of the category breakdown chart.
type ChartSettings struct {
	ViewMode       TableView `json:"viewMode"`
	SelectedParent string    `json:"selectedParent"`
}

// DefaultChartSettings returns the chart settings used when none are stored.
func DefaultChartSettings() ChartSettings {
	return ChartSettings{
		ViewMode:       TableViewLevel2,
		SelectedParent: AllParents,
	}
}
