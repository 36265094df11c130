package error

import "errors"

// Dashboard domain errors.
var (
	// ErrStatsUnavailable is returned when the upstream stats request fails.
	ErrStatsUnavailable = errors.New("failed to load dashboard stats")

	// ErrBreakdownUnavailable is returned when the upstream breakdown request fails.
	ErrBreakdownUnavailable = errors.New("failed to load automation opportunities")

	// ErrChartUnavailable is returned when the upstream chart request fails.
	ErrChartUnavailable = errors.New("failed to load chart data")

	// ErrTaxonomiesUnavailable is returned when the upstream taxonomy request fails.
	ErrTaxonomiesUnavailable = errors.New("failed to load categories")

	// ErrMissingDetailID is returned when a detail link is requested without an id.
	ErrMissingDetailID = errors.New("id is required")

	// ErrInvalidCategoryType is returned when a detail link has an unknown category type.
	ErrInvalidCategoryType = errors.New("category_type must be: level2 or parent")

	// ErrInvalidDetailStatus is returned when a detail link has an unknown status.
	ErrInvalidDetailStatus = errors.New("status must be: automated, success or failed")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingDetailID      DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidCategoryType  DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidChartSettings DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidDetailStatus  DashboardErrorCode = "DSH-010004"

	// Upstream errors (02XXXX)
	ErrCodeStatsUnavailable      DashboardErrorCode = "DSH-020001"
	ErrCodeBreakdownUnavailable  DashboardErrorCode = "DSH-020002"
	ErrCodeChartUnavailable      DashboardErrorCode = "DSH-020003"
	ErrCodeTaxonomiesUnavailable DashboardErrorCode = "DSH-020004"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
