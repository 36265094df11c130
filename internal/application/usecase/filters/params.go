package filters

import (
	"math"
	"time"

	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/domain/entity"
)

const (
	dayStartSuffix = "T00:00:00Z"
	dayEndSuffix   = "T23:59:59Z"
)

// BuildRequestParams derives the upstream request parameters of a snapshot.
func BuildRequestParams(s entity.FilterSnapshot, r *daterange.Resolver) entity.RequestParams {
	return entity.RequestParams{
		Stats:     entity.StatsParams{Days: StatsLookbackDays(s, r)},
		Chart:     entity.ChartParams{Period: ChartPeriod(s.SelectedPeriod)},
		Breakdown: BreakdownParams(s),
	}
}

// StatsLookbackDays returns the number of whole or partial days between now
// and the start date, or the default window when no start date is set.
func StatsLookbackDays(s entity.FilterSnapshot, r *daterange.Resolver) int {
	start := entity.ParseOptionalDay(s.StartDate, r.Location())
	if start == nil {
		return entity.DefaultLookbackDays
	}

	elapsed := r.Now().Sub(*start)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return int(math.Ceil(elapsed.Hours() / 24))
}

// ChartPeriod maps an aggregation period to its upstream name.
func ChartPeriod(p entity.Period) entity.ChartPeriod {
	switch p {
	case entity.PeriodDaily:
		return entity.ChartPeriodDay
	case entity.PeriodWeekly:
		return entity.ChartPeriodWeek
	case entity.PeriodMonthly:
		return entity.ChartPeriodMonth
	default:
		return entity.ChartPeriodWeek
	}
}

// VolumeFilterParams returns the volume bounds of a bucket. Unset bounds are nil.
func VolumeFilterParams(f entity.VolumeFilter) entity.VolumeParams {
	switch f {
	case entity.VolumeFilterLow:
		return entity.VolumeParams{MaxVolume: intPtr(entity.LowVolumeThreshold)}
	case entity.VolumeFilterNormal:
		return entity.VolumeParams{
			MinVolume: intPtr(entity.LowVolumeThreshold + 1),
			MaxVolume: intPtr(entity.HighVolumeThreshold - 1),
		}
	case entity.VolumeFilterHigh:
		return entity.VolumeParams{MinVolume: intPtr(entity.HighVolumeThreshold)}
	default:
		return entity.VolumeParams{}
	}
}

// BreakdownParams derives the breakdown request. Explicit dates are sent only
// when both ends are set; otherwise the default day window is used.
func BreakdownParams(s entity.FilterSnapshot) entity.BreakdownParams {
	volume := VolumeFilterParams(s.VolumeFilter)
	params := entity.BreakdownParams{
		GroupBy:   s.View,
		MinVolume: volume.MinVolume,
		MaxVolume: volume.MaxVolume,
		Page:      s.CurrentPage,
		PageSize:  s.PageSize,
	}

	if s.StartDate != "" && s.EndDate != "" {
		params.StartDate = strPtr(s.StartDate + dayStartSuffix)
		params.EndDate = strPtr(s.EndDate + dayEndSuffix)
	} else {
		params.Days = intPtr(entity.DefaultLookbackDays)
	}

	if s.SelectedCategory != "" && s.SelectedCategory != entity.AllCategories {
		params.CategoryID = strPtr(s.SelectedCategory)
	}

	return params
}

// DateBounds returns the committed dates of a snapshot as an interval.
// Missing or malformed dates are nil.
func DateBounds(s entity.FilterSnapshot, loc *time.Location) entity.DateInterval {
	return entity.DateInterval{
		From: entity.ParseOptionalDay(s.StartDate, loc),
		To:   entity.ParseOptionalDay(s.EndDate, loc),
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
