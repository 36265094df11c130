package dashboard

import "github.com/automation-insights/backend/internal/domain/entity"

// TrendPoint is one labelled bucket of the ticket volume chart.
type TrendPoint struct {
	Date   string `json:"date"`
	Volume int    `json:"volume"`
	Label  string `json:"label"`
}

// BuildTrend labels the upstream trend for the requested period.
func BuildTrend(data *entity.ChartData, period entity.ChartPeriod) []TrendPoint {
	if data == nil {
		return []TrendPoint{}
	}

	points := make([]TrendPoint, 0, len(data.Trend))
	for _, p := range data.Trend {
		points = append(points, TrendPoint{
			Date:   p.Date,
			Volume: p.Total,
			Label:  LabelForTrendDate(p.Date, period),
		})
	}
	return points
}
