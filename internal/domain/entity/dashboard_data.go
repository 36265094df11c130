package entity

import "github.com/shopspring/decimal"

// DashboardStats is the response of the upstream stats endpoint.
type DashboardStats struct {
	Overall *DashboardStatsOverall `json:"overall"`
}

// DashboardStatsOverall holds company-wide automation figures.
type DashboardStatsOverall struct {
	TotalTickets          int             `json:"total_tickets"`
	AutomatedTicketsCount int             `json:"automated_tickets_count"`
	AutomatedPercentage   decimal.Decimal `json:"automated_percentage"`
	AutomationRuns        int             `json:"automation_runs"`
	SuccessRate           decimal.Decimal `json:"success_rate"`
	FailureRate           decimal.Decimal `json:"failure_rate"`
}

// BreakdownPage is one page of the upstream level-2 breakdown.
type BreakdownPage struct {
	Count    int             `json:"count"`
	NumPages int             `json:"num_pages"`
	Results  []BreakdownItem `json:"results"`
}

// BreakdownItem is a single category row of the breakdown.
type BreakdownItem struct {
	ParentCategory            string                 `json:"parent_category"`
	ParentCategoryID          string                 `json:"parent_category_id"`
	Level2Category            string                 `json:"level_2_category"`
	Level2CategoryID          string                 `json:"level_2_category_id"`
	TicketVolume              int                    `json:"ticket_volume"`
	TotalTicketsPercentage    decimal.Decimal        `json:"total_tickets_percentage"`
	TicketAutomatedPercentage *decimal.Decimal       `json:"ticket_automated_percentage"`
	TicketsAutomatedNumber    *int                   `json:"tickets_automated_number"`
	SuccessRate               *decimal.Decimal       `json:"success_rate"`
	FailureRate               *decimal.Decimal       `json:"failure_rate"`
	NumberOfAutomations       *int                   `json:"number_of_automations"`
	Subcategories             []BreakdownSubcategory `json:"subcategories,omitempty"`
}

// BreakdownSubcategory is a level-2 child listed under a parent row.
type BreakdownSubcategory struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TicketVolume int    `json:"ticket_volume"`
}

// ChartData is the response of the upstream trend endpoint.
type ChartData struct {
	Trend []TrendPoint `json:"trend"`
}

// TrendPoint is one bucket of the ticket volume trend.
type TrendPoint struct {
	Date       string          `json:"date"`
	Total      int             `json:"total"`
	Automated  int             `json:"automated"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Taxonomy is a ticket category known to the upstream API.
type Taxonomy struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	ParentID string `json:"parent_id,omitempty"`
}
