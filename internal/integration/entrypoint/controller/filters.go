package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/domain/entity"
	"github.com/automation-insights/backend/internal/integration/entrypoint/dto"
)

// FiltersController handles dashboard filter endpoints.
type FiltersController struct {
	resolver                 *daterange.Resolver
	getFiltersUseCase        *filters.GetFiltersUseCase
	dispatchEventUseCase     *filters.DispatchEventUseCase
	getRequestParamsUseCase  *filters.GetRequestParamsUseCase
	resetFiltersUseCase      *filters.ResetFiltersUseCase
	getPresetsUseCase        *filters.GetPresetsUseCase
	getChartSettingsUseCase  *filters.GetChartSettingsUseCase
	saveChartSettingsUseCase *filters.SaveChartSettingsUseCase
}

// NewFiltersController creates a new filters controller instance.
func NewFiltersController(
	resolver *daterange.Resolver,
	getFiltersUseCase *filters.GetFiltersUseCase,
	dispatchEventUseCase *filters.DispatchEventUseCase,
	getRequestParamsUseCase *filters.GetRequestParamsUseCase,
	resetFiltersUseCase *filters.ResetFiltersUseCase,
	getPresetsUseCase *filters.GetPresetsUseCase,
	getChartSettingsUseCase *filters.GetChartSettingsUseCase,
	saveChartSettingsUseCase *filters.SaveChartSettingsUseCase,
) *FiltersController {
	return &FiltersController{
		resolver:                 resolver,
		getFiltersUseCase:        getFiltersUseCase,
		dispatchEventUseCase:     dispatchEventUseCase,
		getRequestParamsUseCase:  getRequestParamsUseCase,
		resetFiltersUseCase:      resetFiltersUseCase,
		getPresetsUseCase:        getPresetsUseCase,
		getChartSettingsUseCase:  getChartSettingsUseCase,
		saveChartSettingsUseCase: saveChartSettingsUseCase,
	}
}

// GetFilters handles GET /dashboard/filters requests.
func (c *FiltersController) GetFilters(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.getFiltersUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFiltersResponse(output))
}

// DispatchEvent handles POST /dashboard/filters/events requests.
func (c *FiltersController) DispatchEvent(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.FilterEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	event, err := filters.ParseEvent(req.ToEventInput(), c.resolver.Location())
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.dispatchEventUseCase.Execute(ctx.Request.Context(), filters.DispatchEventInput{
		UserID: userID,
		Event:  event,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFiltersResponse(output))
}

// GetRequestParams handles GET /dashboard/filters/params requests.
func (c *FiltersController) GetRequestParams(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	_, params, err := c.getRequestParamsUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RequestParamsResponse{Data: params})
}

// ResetFilters handles DELETE /dashboard/filters requests.
func (c *FiltersController) ResetFilters(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	snapshot, err := c.resetFiltersUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SnapshotResponse{Data: snapshot})
}

// GetPresets handles GET /dashboard/presets requests.
func (c *FiltersController) GetPresets(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.getPresetsUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPresetsResponse(output))
}

// GetChartSettings handles GET /dashboard/chart-settings requests.
func (c *FiltersController) GetChartSettings(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	settings := c.getChartSettingsUseCase.Execute(ctx.Request.Context(), userID)
	ctx.JSON(http.StatusOK, dto.ChartSettingsResponse{Data: settings})
}

// SaveChartSettings handles PUT /dashboard/chart-settings requests.
func (c *FiltersController) SaveChartSettings(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.ChartSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	settings, err := c.saveChartSettingsUseCase.Execute(ctx.Request.Context(), filters.SaveChartSettingsInput{
		UserID:         userID,
		ViewMode:       entity.TableView(req.ViewMode),
		SelectedParent: req.SelectedParent,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ChartSettingsResponse{Data: settings})
}
