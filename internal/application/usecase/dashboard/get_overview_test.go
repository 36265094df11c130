package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
	"github.com/automation-insights/backend/internal/integration/persistence"
)

type fakeAnalytics struct {
	mu sync.Mutex

	stats      *entity.DashboardStats
	breakdown  *entity.BreakdownPage
	chart      *entity.ChartData
	taxonomies []entity.Taxonomy

	statsErr      error
	breakdownErr  error
	chartErr      error
	taxonomiesErr error

	lastBreakdown entity.BreakdownParams
	lastStats     entity.StatsParams
}

func (f *fakeAnalytics) Stats(_ context.Context, params entity.StatsParams) (*entity.DashboardStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastStats = params
	return f.stats, f.statsErr
}

func (f *fakeAnalytics) Breakdown(_ context.Context, params entity.BreakdownParams) (*entity.BreakdownPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastBreakdown = params
	return f.breakdown, f.breakdownErr
}

func (f *fakeAnalytics) Chart(_ context.Context, _ entity.ChartParams) (*entity.ChartData, error) {
	return f.chart, f.chartErr
}

func (f *fakeAnalytics) Taxonomies(context.Context) ([]entity.Taxonomy, error) {
	return f.taxonomies, f.taxonomiesErr
}

func newTestSessions() *filters.Sessions {
	now := func() time.Time { return time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC) }
	return filters.NewSessions(persistence.NewMemoryPreferenceStore(), daterange.NewResolver(now, time.UTC))
}

func healthyAnalytics() *fakeAnalytics {
	return &fakeAnalytics{
		stats: &entity.DashboardStats{Overall: &entity.DashboardStatsOverall{TotalTickets: 1000}},
		breakdown: &entity.BreakdownPage{
			Count:    1,
			NumPages: 1,
			Results: []entity.BreakdownItem{
				{ParentCategory: "Billing", ParentCategoryID: "p1", Level2Category: "Refunds", Level2CategoryID: "l2", TicketVolume: 10},
			},
		},
		chart: &entity.ChartData{Trend: []entity.TrendPoint{{Date: "2025-01-01", Total: 4}}},
	}
}

func TestGetOverviewUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("assembles every section", func(t *testing.T) {
		client := healthyAnalytics()
		sessions := newTestSessions()
		uc := NewGetOverviewUseCase(client, sessions, persistence.NewMemoryPreferenceStore())

		output, err := uc.Execute(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Notification != nil {
			t.Errorf("expected no notification, got %+v", output.Notification)
		}
		if len(output.Summary) != 6 {
			t.Errorf("expected 6 summary metrics, got %d", len(output.Summary))
		}
		if len(output.Table) != 1 || output.Table[0].DetailURL != "/home/l2?category_type=level2&startDate=2024-12-15&endDate=2025-01-15" {
			t.Errorf("unexpected table %+v", output.Table)
		}
		if len(output.Trend) != 1 || output.Trend[0].Label != "Jan 2025" {
			t.Errorf("unexpected trend %+v", output.Trend)
		}
		if output.Filters.DatePreset != entity.DatePresetThisMonth {
			t.Errorf("expected thisMonth, got %s", output.Filters.DatePreset)
		}
		if client.lastStats.Days != 32 {
			t.Errorf("expected 32 lookback days, got %d", client.lastStats.Days)
		}
		if client.lastBreakdown.StartDate == nil || *client.lastBreakdown.StartDate != "2024-12-15T00:00:00Z" {
			t.Errorf("unexpected breakdown start date %v", client.lastBreakdown.StartDate)
		}
	})

	t.Run("breakdown failure wins over stats and chart", func(t *testing.T) {
		client := healthyAnalytics()
		client.statsErr = errors.New("stats down")
		client.breakdownErr = errors.New("breakdown down")
		client.chartErr = errors.New("chart down")

		uc := NewGetOverviewUseCase(client, newTestSessions(), persistence.NewMemoryPreferenceStore())
		output, err := uc.Execute(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Notification == nil || output.Notification.Code != domainerror.ErrCodeBreakdownUnavailable {
			t.Fatalf("expected breakdown notification, got %+v", output.Notification)
		}
		if output.Notification.Message != "failed to load automation opportunities" {
			t.Errorf("unexpected message %s", output.Notification.Message)
		}
		if output.Summary != nil || len(output.Table) != 0 || len(output.Trend) != 0 {
			t.Errorf("expected empty sections, got %+v", output)
		}
		if output.Pagination.TotalPages != 1 {
			t.Errorf("expected a single page, got %d", output.Pagination.TotalPages)
		}
	})

	t.Run("stats failure wins over chart", func(t *testing.T) {
		client := healthyAnalytics()
		client.statsErr = errors.New("stats down")
		client.chartErr = errors.New("chart down")

		uc := NewGetOverviewUseCase(client, newTestSessions(), persistence.NewMemoryPreferenceStore())
		output, _ := uc.Execute(ctx, userID)

		if output.Notification == nil || output.Notification.Code != domainerror.ErrCodeStatsUnavailable {
			t.Fatalf("expected stats notification, got %+v", output.Notification)
		}
		if len(output.Table) != 1 {
			t.Errorf("expected breakdown rows to survive, got %d", len(output.Table))
		}
	})

	t.Run("chart failure alone", func(t *testing.T) {
		client := healthyAnalytics()
		client.chartErr = errors.New("chart down")

		uc := NewGetOverviewUseCase(client, newTestSessions(), persistence.NewMemoryPreferenceStore())
		output, _ := uc.Execute(ctx, userID)

		if output.Notification == nil || output.Notification.Code != domainerror.ErrCodeChartUnavailable {
			t.Fatalf("expected chart notification, got %+v", output.Notification)
		}
	})

	t.Run("upstream message is preferred", func(t *testing.T) {
		client := healthyAnalytics()
		client.breakdownErr = upstreamMessageError{"Date range too large"}

		uc := NewGetOverviewUseCase(client, newTestSessions(), persistence.NewMemoryPreferenceStore())
		output, _ := uc.Execute(ctx, userID)

		if output.Notification == nil || output.Notification.Message != "Date range too large" {
			t.Errorf("expected upstream message, got %+v", output.Notification)
		}
	})
}

type upstreamMessageError struct{ message string }

func (e upstreamMessageError) Error() string       { return "upstream: " + e.message }
func (e upstreamMessageError) UserMessage() string { return e.message }

func TestGetFilterOptionsUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("lists top-level taxonomies after all", func(t *testing.T) {
		client := &fakeAnalytics{taxonomies: []entity.Taxonomy{
			{ID: "1", Name: "Billing", Level: 1},
			{ID: "2", Name: "Refunds", Level: 2, ParentID: "1"},
			{ID: "3", Name: "Access", Level: 1},
		}}

		output := NewGetFilterOptionsUseCase(client).Execute(ctx)

		expected := []Option{{Value: "all", Label: "All Categories"}, {Value: "1", Label: "Billing"}, {Value: "3", Label: "Access"}}
		if len(output.Categories) != len(expected) {
			t.Fatalf("expected %d categories, got %d", len(expected), len(output.Categories))
		}
		for i := range expected {
			if output.Categories[i] != expected[i] {
				t.Errorf("expected %v, got %v", expected[i], output.Categories[i])
			}
		}
		if len(output.PageSizes) != 4 || output.PageSizes[0].Label != "5 per page" {
			t.Errorf("unexpected page sizes %v", output.PageSizes)
		}
		if len(output.Presets) != 5 {
			t.Errorf("expected 5 presets, got %d", len(output.Presets))
		}
	})

	t.Run("taxonomy failure keeps all and notifies", func(t *testing.T) {
		client := &fakeAnalytics{taxonomiesErr: errors.New("down")}

		output := NewGetFilterOptionsUseCase(client).Execute(ctx)

		if len(output.Categories) != 1 {
			t.Errorf("expected only the all option, got %v", output.Categories)
		}
		if output.Notification == nil || output.Notification.Code != domainerror.ErrCodeTaxonomiesUnavailable {
			t.Errorf("expected taxonomies notification, got %+v", output.Notification)
		}
	})
}

func TestGetDetailURLUseCase(t *testing.T) {
	ctx := context.Background()
	uc := NewGetDetailURLUseCase(newTestSessions())
	userID := uuid.New()

	t.Run("uses committed dates", func(t *testing.T) {
		got, err := uc.Execute(ctx, GetDetailURLInput{UserID: userID, ID: "7", CategoryType: "parent", Status: "automated"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := "/home/7?category_type=parent&status=automated&startDate=2024-12-15&endDate=2025-01-15"
		if got != expected {
			t.Errorf("expected %s, got %s", expected, got)
		}
	})

	tests := []struct {
		name     string
		input    GetDetailURLInput
		expected domainerror.DashboardErrorCode
	}{
		{name: "missing id", input: GetDetailURLInput{UserID: userID}, expected: domainerror.ErrCodeMissingDetailID},
		{name: "bad category type", input: GetDetailURLInput{UserID: userID, ID: "7", CategoryType: "level3"}, expected: domainerror.ErrCodeInvalidCategoryType},
		{name: "bad status", input: GetDetailURLInput{UserID: userID, ID: "7", Status: "pending"}, expected: domainerror.ErrCodeInvalidDetailStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)

			var dashErr *domainerror.DashboardError
			if !errors.As(err, &dashErr) {
				t.Fatalf("expected DashboardError, got %v", err)
			}
			if dashErr.Code != tt.expected {
				t.Errorf("expected code %s, got %s", tt.expected, dashErr.Code)
			}
		})
	}
}
