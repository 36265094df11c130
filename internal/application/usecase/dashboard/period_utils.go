// Package dashboard contains dashboard overview use cases and data shaping.
package dashboard

import (
	"fmt"
	"time"

	"github.com/automation-insights/backend/internal/domain/entity"
)

var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// trendDateLayouts are the date formats the trend endpoint is known to return.
var trendDateLayouts = []string{
	entity.DayLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// GeneratePeriodLabel generates a human-readable label for a trend bucket.
// Formats:
// - Daily: "{month_abbr} {day}" (e.g., "Mar 07")
// - Weekly: "W{week} {year}" (e.g., "W12 2025")
// - Monthly: "{month_abbr} {year}" (e.g., "Mar 2025")
func GeneratePeriodLabel(date time.Time, period entity.ChartPeriod) string {
	switch period {
	case entity.ChartPeriodWeek:
		year, week := date.ISOWeek()
		return fmt.Sprintf("W%02d %d", week, year)
	case entity.ChartPeriodMonth:
		return fmt.Sprintf("%s %d", monthAbbreviations[date.Month()], date.Year())
	default:
		return fmt.Sprintf("%s %02d", monthAbbreviations[date.Month()], date.Day())
	}
}

// LabelForTrendDate labels a raw trend date. Unparsable dates are returned
// unchanged.
func LabelForTrendDate(raw string, period entity.ChartPeriod) string {
	for _, layout := range trendDateLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			return GeneratePeriodLabel(date, period)
		}
	}
	return raw
}
