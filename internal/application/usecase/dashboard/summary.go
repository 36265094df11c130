package dashboard

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/automation-insights/backend/internal/domain/entity"
)

// SummaryMetric is one headline figure of the company summary.
type SummaryMetric struct {
	Key   string          `json:"key"`
	Title string          `json:"title"`
	Value string          `json:"value"`
	Raw   decimal.Decimal `json:"raw"`
}

// BuildSummary returns the six company-wide metrics, or nil without stats.
func BuildSummary(overall *entity.DashboardStatsOverall) []SummaryMetric {
	if overall == nil {
		return nil
	}

	return []SummaryMetric{
		countMetric("total_tickets", "Total Tickets", overall.TotalTickets),
		countMetric("automated_tickets", "Automated Tickets", overall.AutomatedTicketsCount),
		percentMetric("automated_percentage", "Percentage Automated", overall.AutomatedPercentage),
		countMetric("total_automations", "Total Automations", overall.AutomationRuns),
		percentMetric("success_rate", "Success Rate", overall.SuccessRate),
		percentMetric("failure_rate", "Failure Rate", overall.FailureRate),
	}
}

func countMetric(key, title string, value int) SummaryMetric {
	return SummaryMetric{
		Key:   key,
		Title: title,
		Value: humanize.Comma(int64(value)),
		Raw:   decimal.NewFromInt(int64(value)),
	}
}

func percentMetric(key, title string, value decimal.Decimal) SummaryMetric {
	return SummaryMetric{
		Key:   key,
		Title: title,
		Value: value.StringFixed(1) + "%",
		Raw:   value,
	}
}
