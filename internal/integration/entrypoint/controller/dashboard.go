package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/automation-insights/backend/internal/application/usecase/dashboard"
	"github.com/automation-insights/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard data endpoints.
type DashboardController struct {
	getOverviewUseCase      *dashboard.GetOverviewUseCase
	getFilterOptionsUseCase *dashboard.GetFilterOptionsUseCase
	getDetailURLUseCase     *dashboard.GetDetailURLUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getOverviewUseCase *dashboard.GetOverviewUseCase,
	getFilterOptionsUseCase *dashboard.GetFilterOptionsUseCase,
	getDetailURLUseCase *dashboard.GetDetailURLUseCase,
) *DashboardController {
	return &DashboardController{
		getOverviewUseCase:      getOverviewUseCase,
		getFilterOptionsUseCase: getFilterOptionsUseCase,
		getDetailURLUseCase:     getDetailURLUseCase,
	}
}

// GetOverview handles GET /dashboard/overview requests.
// Upstream failures are reported in the notification field, never as errors.
func (c *DashboardController) GetOverview(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.getOverviewUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OverviewResponse{Data: output})
}

// GetFilterOptions handles GET /dashboard/filter-options requests.
func (c *DashboardController) GetFilterOptions(ctx *gin.Context) {
	if _, ok := currentUser(ctx); !ok {
		return
	}

	output := c.getFilterOptionsUseCase.Execute(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.FilterOptionsResponse{Data: output})
}

// GetDetailURL handles GET /dashboard/detail-url requests.
func (c *DashboardController) GetDetailURL(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	url, err := c.getDetailURLUseCase.Execute(ctx.Request.Context(), dashboard.GetDetailURLInput{
		UserID:       userID,
		ID:           ctx.Query("id"),
		CategoryType: ctx.Query("category_type"),
		Status:       ctx.Query("status"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DetailURLResponse{Data: dto.DetailURLData{URL: url}})
}
