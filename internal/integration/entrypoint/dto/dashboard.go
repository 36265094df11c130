package dto

import (
	"github.com/automation-insights/backend/internal/application/usecase/dashboard"
)

// OverviewResponse represents the response of GET /overview.
type OverviewResponse struct {
	Data *dashboard.GetOverviewOutput `json:"data"`
}

// FilterOptionsResponse represents the response of GET /filter-options.
type FilterOptionsResponse struct {
	Data *dashboard.FilterOptionsOutput `json:"data"`
}

// DetailURLResponse represents the response of GET /detail-url.
type DetailURLResponse struct {
	Data DetailURLData `json:"data"`
}

// DetailURLData holds a detail link.
type DetailURLData struct {
	URL string `json:"url"`
}
