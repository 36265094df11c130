package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/automation-insights/backend/internal/application/usecase/datepicker"
	"github.com/automation-insights/backend/internal/domain/entity"
	"github.com/automation-insights/backend/internal/integration/entrypoint/dto"
)

// DatePickerController handles the staged date range popover endpoints.
type DatePickerController struct {
	openPickerUseCase   *datepicker.OpenPickerUseCase
	selectPresetUseCase *datepicker.SelectPresetUseCase
	selectRangeUseCase  *datepicker.SelectRangeUseCase
	closePickerUseCase  *datepicker.ClosePickerUseCase
	getPickerUseCase    *datepicker.GetPickerUseCase
}

// NewDatePickerController creates a new date picker controller instance.
func NewDatePickerController(
	openPickerUseCase *datepicker.OpenPickerUseCase,
	selectPresetUseCase *datepicker.SelectPresetUseCase,
	selectRangeUseCase *datepicker.SelectRangeUseCase,
	closePickerUseCase *datepicker.ClosePickerUseCase,
	getPickerUseCase *datepicker.GetPickerUseCase,
) *DatePickerController {
	return &DatePickerController{
		openPickerUseCase:   openPickerUseCase,
		selectPresetUseCase: selectPresetUseCase,
		selectRangeUseCase:  selectRangeUseCase,
		closePickerUseCase:  closePickerUseCase,
		getPickerUseCase:    getPickerUseCase,
	}
}

// Get handles GET /dashboard/date-picker requests.
func (c *DatePickerController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.getPickerUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDatePickerResponse(output))
}

// Open handles POST /dashboard/date-picker/open requests.
func (c *DatePickerController) Open(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.openPickerUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDatePickerResponse(output))
}

// SelectPreset handles POST /dashboard/date-picker/preset requests.
func (c *DatePickerController) SelectPreset(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.DatePickerPresetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	output, err := c.selectPresetUseCase.Execute(ctx.Request.Context(), datepicker.SelectPresetInput{
		UserID: userID,
		Preset: entity.DatePreset(req.Preset),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDatePickerResponse(output))
}

// SelectRange handles POST /dashboard/date-picker/range requests.
func (c *DatePickerController) SelectRange(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.DatePickerRangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	output, err := c.selectRangeUseCase.Execute(ctx.Request.Context(), datepicker.SelectRangeInput{
		UserID: userID,
		From:   req.From,
		To:     req.To,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDatePickerResponse(output))
}

// Close handles POST /dashboard/date-picker/close requests.
func (c *DatePickerController) Close(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.closePickerUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClosePickerResponse(output))
}
