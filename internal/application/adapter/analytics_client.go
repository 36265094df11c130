package adapter

import (
	"context"

	"github.com/automation-insights/backend/internal/domain/entity"
)

// AnalyticsClient fetches ticket and automation data from the upstream
// analytics API.
type AnalyticsClient interface {
	// Stats returns company-wide automation figures for the last params.Days days.
	Stats(ctx context.Context, params entity.StatsParams) (*entity.DashboardStats, error)

	// Breakdown returns one page of the category breakdown.
	Breakdown(ctx context.Context, params entity.BreakdownParams) (*entity.BreakdownPage, error)

	// Chart returns the ticket volume trend.
	Chart(ctx context.Context, params entity.ChartParams) (*entity.ChartData, error)

	// Taxonomies returns every known ticket category.
	Taxonomies(ctx context.Context) ([]entity.Taxonomy, error)
}
