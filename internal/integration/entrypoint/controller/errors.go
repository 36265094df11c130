package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/automation-insights/backend/internal/domain/error"
	"github.com/automation-insights/backend/internal/integration/entrypoint/dto"
	"github.com/automation-insights/backend/internal/integration/entrypoint/middleware"
)

// currentUser returns the authenticated owner, writing a 401 when missing.
func currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.OwnerIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// invalidBody writes a 400 for a request body that failed to bind.
func invalidBody(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(domainerror.ErrCodeInvalidRequestBody),
		Details: err.Error(),
	})
}

// handleError maps filter and dashboard errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var filterErr *domainerror.FilterError
	if errors.As(err, &filterErr) {
		ctx.JSON(getStatusCodeForFilterError(filterErr.Code), dto.ErrorResponse{
			Error: filterErr.Message,
			Code:  string(filterErr.Code),
		})
		return
	}

	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(getStatusCodeForDashboardError(dashErr.Code), dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	slog.Error("Unhandled error", "path", ctx.FullPath(), "error", err)

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForFilterError maps filter error codes to HTTP status codes.
func getStatusCodeForFilterError(code domainerror.FilterErrorCode) int {
	switch {
	case code == domainerror.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case strings.HasPrefix(string(code), "FLT-01"):
		return http.StatusBadRequest
	case strings.HasPrefix(string(code), "FLT-02"):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingDetailID,
		domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeInvalidChartSettings,
		domainerror.ErrCodeInvalidDetailStatus:
		return http.StatusBadRequest
	case domainerror.ErrCodeStatsUnavailable,
		domainerror.ErrCodeBreakdownUnavailable,
		domainerror.ErrCodeChartUnavailable,
		domainerror.ErrCodeTaxonomiesUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
