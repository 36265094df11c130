package dashboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// Notification is a non-fatal error shown above the dashboard.
type Notification struct {
	Code    domainerror.DashboardErrorCode `json:"code"`
	Message string                         `json:"message"`
}

// GetOverviewOutput is everything the dashboard page renders.
type GetOverviewOutput struct {
	Filters        entity.FilterSnapshot `json:"filters"`
	RequestParams  entity.RequestParams  `json:"request_params"`
	DetectedPreset entity.DatePreset     `json:"detected_preset"`
	Summary        []SummaryMetric       `json:"summary,omitempty"`
	Trend          []TrendPoint          `json:"trend"`
	Table          []TableRow            `json:"table"`
	Pagination     Pagination            `json:"pagination"`
	ChartSettings  entity.ChartSettings  `json:"chart_settings"`
	BreakdownChart BreakdownChart        `json:"breakdown_chart"`
	Notification   *Notification         `json:"notification,omitempty"`
}

// GetOverviewUseCase loads an owner's filters and fetches the dashboard data
// they select.
type GetOverviewUseCase struct {
	client        adapter.AnalyticsClient
	getFilters    *filters.GetFiltersUseCase
	chartSettings *filters.GetChartSettingsUseCase
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(
	client adapter.AnalyticsClient,
	sessions *filters.Sessions,
	prefs adapter.PreferenceStore,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		client:        client,
		getFilters:    filters.NewGetFiltersUseCase(sessions),
		chartSettings: filters.NewGetChartSettingsUseCase(prefs),
	}
}

// Execute fetches stats, breakdown and chart data concurrently. Upstream
// failures never fail the overview: the sections they feed are left empty
// and the first failure, by priority breakdown, stats, chart, becomes the
// notification.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, userID uuid.UUID) (*GetOverviewOutput, error) {
	current, err := uc.getFilters.Execute(ctx, userID)
	if err != nil {
		return nil, err
	}
	params := current.RequestParams

	var (
		stats                            *entity.DashboardStats
		breakdown                        *entity.BreakdownPage
		chart                            *entity.ChartData
		statsErr, breakdownErr, chartErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		stats, statsErr = uc.client.Stats(ctx, params.Stats)
		return nil
	})
	g.Go(func() error {
		breakdown, breakdownErr = uc.client.Breakdown(ctx, params.Breakdown)
		return nil
	})
	g.Go(func() error {
		chart, chartErr = uc.client.Chart(ctx, params.Chart)
		return nil
	})
	_ = g.Wait()

	settings := uc.chartSettings.Execute(ctx, userID)
	snapshot := current.Snapshot

	output := &GetOverviewOutput{
		Filters:        snapshot,
		RequestParams:  params,
		DetectedPreset: current.DetectedPreset,
		Trend:          []TrendPoint{},
		Table:          []TableRow{},
		Pagination:     BuildPagination(nil, snapshot.CurrentPage, snapshot.PageSize),
		ChartSettings:  settings,
		BreakdownChart: BuildBreakdownChart(nil, settings),
	}

	if statsErr == nil && stats != nil {
		output.Summary = BuildSummary(stats.Overall)
	}
	if breakdownErr == nil && breakdown != nil {
		output.Table = BuildTableRows(breakdown.Results, snapshot.StartDate, snapshot.EndDate)
		output.Pagination = BuildPagination(breakdown, snapshot.CurrentPage, snapshot.PageSize)
		output.BreakdownChart = BuildBreakdownChart(breakdown.Results, settings)
	}
	if chartErr == nil {
		output.Trend = BuildTrend(chart, params.Chart.Period)
	}

	output.Notification = firstNotification([]upstreamFailure{
		{breakdownErr, domainerror.ErrCodeBreakdownUnavailable, domainerror.ErrBreakdownUnavailable},
		{statsErr, domainerror.ErrCodeStatsUnavailable, domainerror.ErrStatsUnavailable},
		{chartErr, domainerror.ErrCodeChartUnavailable, domainerror.ErrChartUnavailable},
	}, "userID", userID)

	return output, nil
}

type upstreamFailure struct {
	err      error
	code     domainerror.DashboardErrorCode
	sentinel error
}

// firstNotification logs every failure and returns the first one in order.
func firstNotification(failures []upstreamFailure, logArgs ...any) *Notification {
	var first *Notification
	for _, f := range failures {
		if f.err == nil {
			continue
		}

		args := append([]any{"code", f.code, "error", f.err}, logArgs...)
		slog.Warn("Upstream analytics request failed", args...)
		if first == nil {
			first = &Notification{Code: f.code, Message: notificationMessage(f.err, f.sentinel)}
		}
	}
	return first
}

// notificationMessage prefers the upstream's own message when it sent one.
func notificationMessage(err, sentinel error) string {
	var upstream interface{ UserMessage() string }
	if errors.As(err, &upstream) && upstream.UserMessage() != "" {
		return upstream.UserMessage()
	}
	return sentinel.Error()
}
