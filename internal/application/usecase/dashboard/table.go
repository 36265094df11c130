package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/automation-insights/backend/internal/domain/entity"
)

// TableRow is one row of the automation opportunities table.
type TableRow struct {
	ParentCategory        string                        `json:"parent_category"`
	ParentCategoryID      string                        `json:"parent_category_id"`
	Level2Name            string                        `json:"level2_taxonomy_name"`
	Level2CategoryID      string                        `json:"level_2_category_id"`
	TicketVolume          int                           `json:"ticket_volume"`
	TotalPercentage       decimal.Decimal               `json:"total_percentage"`
	AutomationRate        *decimal.Decimal              `json:"automation_rate"`
	AutomatedCount        *int                          `json:"automated_count"`
	AutomationSuccessRate *decimal.Decimal              `json:"automation_success_rate"`
	AutomationFailureRate *decimal.Decimal              `json:"automation_failure_rate"`
	AutomationCount       *int                          `json:"automation_count"`
	SubcategoryCount      int                           `json:"subcategory_count"`
	Subcategories         []entity.BreakdownSubcategory `json:"subcategories,omitempty"`
	DetailURL             string                        `json:"detail_url,omitempty"`
	AutomatedDetailURL    string                        `json:"automated_detail_url,omitempty"`
	SuccessDetailURL      string                        `json:"success_detail_url,omitempty"`
	FailedDetailURL       string                        `json:"failed_detail_url,omitempty"`
}

// Pagination describes the current breakdown page.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
	ShowingFrom int `json:"showing_from"`
	ShowingTo   int `json:"showing_to"`
}

// BuildTableRows maps breakdown items to table rows. Detail links carry the
// committed dates; rows without any category id get no links.
func BuildTableRows(items []entity.BreakdownItem, startDate, endDate string) []TableRow {
	rows := make([]TableRow, 0, len(items))
	for _, item := range items {
		row := TableRow{
			ParentCategory:        item.ParentCategory,
			ParentCategoryID:      item.ParentCategoryID,
			Level2Name:            item.Level2Category,
			Level2CategoryID:      item.Level2CategoryID,
			TicketVolume:          item.TicketVolume,
			TotalPercentage:       item.TotalTicketsPercentage,
			AutomationRate:        item.TicketAutomatedPercentage,
			AutomatedCount:        item.TicketsAutomatedNumber,
			AutomationSuccessRate: item.SuccessRate,
			AutomationFailureRate: item.FailureRate,
			AutomationCount:       item.NumberOfAutomations,
			SubcategoryCount:      len(item.Subcategories),
			Subcategories:         item.Subcategories,
		}

		if id, categoryType, ok := DetailTarget(item); ok {
			row.DetailURL = BuildDetailURL(id, categoryType, "", startDate, endDate)
			row.AutomatedDetailURL = BuildDetailURL(id, categoryType, DetailStatusAutomated, startDate, endDate)
			row.SuccessDetailURL = BuildDetailURL(id, categoryType, DetailStatusSuccess, startDate, endDate)
			row.FailedDetailURL = BuildDetailURL(id, categoryType, DetailStatusFailed, startDate, endDate)
		}
		rows = append(rows, row)
	}
	return rows
}

// BuildPagination describes page of a breakdown with count items. A missing
// page count means a single page. A page past the last item shows 0..0.
func BuildPagination(page *entity.BreakdownPage, currentPage, pageSize int) Pagination {
	p := Pagination{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  1,
	}
	if page == nil {
		return p
	}

	if page.NumPages > 0 {
		p.TotalPages = page.NumPages
	}
	p.TotalItems = page.Count
	if p.TotalItems == 0 {
		return p
	}

	// A stale page beyond the data shows nothing.
	from := (currentPage-1)*pageSize + 1
	if from > p.TotalItems {
		return p
	}
	p.ShowingFrom = from
	p.ShowingTo = min(currentPage*pageSize, p.TotalItems)
	return p
}
