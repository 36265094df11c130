package entity

// ChartPeriod is the aggregation period sent to the upstream trend endpoint.
type ChartPeriod string

const (
	ChartPeriodDay   ChartPeriod = "day"
	ChartPeriodWeek  ChartPeriod = "week"
	ChartPeriodMonth ChartPeriod = "month"
)

// DefaultLookbackDays is the day window used when no start date is selected.
const DefaultLookbackDays = 30

// StatsParams is the request shape of the stats endpoint.
type StatsParams struct {
	Days int `json:"days"`
}

// ChartParams is the request shape of the trend endpoint.
type ChartParams struct {
	Period ChartPeriod `json:"period"`
}

// VolumeParams bounds the ticket volume of breakdown rows. A nil bound is omitted.
type VolumeParams struct {
	MinVolume *int `json:"min_volume,omitempty"`
	MaxVolume *int `json:"max_volume,omitempty"`
}

// BreakdownParams is the request shape of the level-2 breakdown endpoint.
// Either both dates or Days is set, never both.
type BreakdownParams struct {
	StartDate  *string   `json:"start_date,omitempty"`
	EndDate    *string   `json:"end_date,omitempty"`
	Days       *int      `json:"days,omitempty"`
	GroupBy    TableView `json:"group_by"`
	CategoryID *string   `json:"category_id,omitempty"`
	MinVolume  *int      `json:"min_volume,omitempty"`
	MaxVolume  *int      `json:"max_volume,omitempty"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// RequestParams groups the parameters derived from a filter snapshot for
// every upstream collaborator.
type RequestParams struct {
	Stats     StatsParams     `json:"stats"`
	Chart     ChartParams     `json:"chart"`
	Breakdown BreakdownParams `json:"breakdown"`
}
