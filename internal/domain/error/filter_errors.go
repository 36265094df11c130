// Package error defines domain-specific errors for the dashboard service.
package error

import "errors"

// Filter domain errors.
var (
	// ErrInvalidPreset is returned when a preset cannot be resolved to dates.
	ErrInvalidPreset = errors.New("preset cannot be resolved to a date range")

	// ErrInvalidPageSize is returned when the page size is not an allowed value.
	ErrInvalidPageSize = errors.New("page size must be one of 5, 10, 20 or 50")

	// ErrInvalidPage is returned when the page number is below 1.
	ErrInvalidPage = errors.New("page must be greater than or equal to 1")

	// ErrInvalidVolumeFilter is returned when the volume filter is unknown.
	ErrInvalidVolumeFilter = errors.New("volume filter must be: all, low-volume, normal-volume or high-volume")

	// ErrInvalidPeriod is returned when the aggregation period is unknown.
	ErrInvalidPeriod = errors.New("period must be: daily, weekly or monthly")

	// ErrInvalidView is returned when the table view is unknown.
	ErrInvalidView = errors.New("view must be: level2 or parent")

	// ErrInvalidFilterDate is returned when a date is not formatted as YYYY-MM-DD.
	ErrInvalidFilterDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrUnknownEvent is returned when an event type is not recognised.
	ErrUnknownEvent = errors.New("unknown filter event")

	// ErrEmptyCategory is returned when a category selection is empty.
	ErrEmptyCategory = errors.New("category is required")

	// ErrInvalidRequestBody is returned when a request body cannot be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrDatePickerNotOpen is returned when editing or closing a closed date picker.
	ErrDatePickerNotOpen = errors.New("date picker is not open")

	// ErrDatePickerAlreadyOpen is returned when opening an open date picker.
	ErrDatePickerAlreadyOpen = errors.New("date picker is already open")

	// ErrStorageUnavailable is returned when the preference store cannot be reached.
	ErrStorageUnavailable = errors.New("preference storage unavailable")

	// ErrStorageCorrupt is returned when a stored preference cannot be decoded.
	ErrStorageCorrupt = errors.New("stored preference is corrupt")
)

// FilterErrorCode defines error codes for filter errors.
// Format: FLT-XXYYYY where XX is category and YYYY is specific error.
type FilterErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPreset       FilterErrorCode = "FLT-010001"
	ErrCodeInvalidPageSize     FilterErrorCode = "FLT-010002"
	ErrCodeInvalidPage         FilterErrorCode = "FLT-010003"
	ErrCodeInvalidVolumeFilter FilterErrorCode = "FLT-010004"
	ErrCodeInvalidPeriod       FilterErrorCode = "FLT-010005"
	ErrCodeInvalidView         FilterErrorCode = "FLT-010006"
	ErrCodeInvalidFilterDate   FilterErrorCode = "FLT-010007"
	ErrCodeUnknownEvent        FilterErrorCode = "FLT-010008"
	ErrCodeEmptyCategory       FilterErrorCode = "FLT-010009"
	ErrCodeInvalidRequestBody  FilterErrorCode = "FLT-010010"

	// State errors (02XXXX)
	ErrCodeDatePickerNotOpen     FilterErrorCode = "FLT-020001"
	ErrCodeDatePickerAlreadyOpen FilterErrorCode = "FLT-020002"

	// Storage errors (03XXXX)
	ErrCodeStorageUnavailable FilterErrorCode = "FLT-030001"
	ErrCodeStorageCorrupt     FilterErrorCode = "FLT-030002"

	// Internal errors (99XXXX)
	ErrCodeFilterInternalError FilterErrorCode = "FLT-990001"
)

// FilterError represents a filter error with code and message.
type FilterError struct {
	Code    FilterErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FilterError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FilterError) Unwrap() error {
	return e.Err
}

// NewFilterError creates a new FilterError with the given code and message.
func NewFilterError(code FilterErrorCode, message string, err error) *FilterError {
	return &FilterError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
