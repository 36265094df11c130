package filters

import (
	"time"

	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// EventInput is the transport-neutral form of an event. Only the fields of
// the named type are read.
type EventInput struct {
	Type         string
	Page         *int
	PageSize     *int
	Category     *string
	VolumeFilter *string
	Date         *string
	Preset       *string
	Period       *string
	View         *string
}

// ParseEvent validates input and builds the matching event. Dates are read
// as calendar days in loc; an empty date clears the field.
func ParseEvent(input EventInput, loc *time.Location) (Event, error) {
	switch EventType(input.Type) {
	case EventSetPage:
		if input.Page == nil {
			return nil, invalid(domainerror.ErrCodeInvalidPage, domainerror.ErrInvalidPage)
		}
		return SetPage{Page: *input.Page}, nil

	case EventSetPageSize:
		if input.PageSize == nil {
			return nil, invalid(domainerror.ErrCodeInvalidPageSize, domainerror.ErrInvalidPageSize)
		}
		return SetPageSize{PageSize: *input.PageSize}, nil

	case EventSetCategory:
		return SetCategory{Category: deref(input.Category)}, nil

	case EventSetVolumeFilter:
		return SetVolumeFilter{Filter: entity.VolumeFilter(deref(input.VolumeFilter))}, nil

	case EventSetStartDate, EventSetEndDate:
		date, err := parseOptionalDate(deref(input.Date), loc)
		if err != nil {
			return nil, err
		}
		if EventType(input.Type) == EventSetStartDate {
			return SetStartDate{Date: date}, nil
		}
		return SetEndDate{Date: date}, nil

	case EventSetDatePreset:
		return SetDatePreset{Preset: entity.DatePreset(deref(input.Preset))}, nil

	case EventSetPeriod:
		return SetPeriod{Period: entity.Period(deref(input.Period))}, nil

	case EventSetView:
		return SetView{View: entity.TableView(deref(input.View))}, nil

	case EventClearDateRange:
		return ClearDateRange{}, nil

	default:
		// commitDateRange is produced only by closing the date picker.
		return nil, domainerror.NewFilterError(
			domainerror.ErrCodeUnknownEvent,
			"unknown filter event "+input.Type,
			domainerror.ErrUnknownEvent,
		)
	}
}

func parseOptionalDate(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := entity.ParseDay(value, loc)
	if err != nil {
		return nil, domainerror.NewFilterError(domainerror.ErrCodeInvalidFilterDate, domainerror.ErrInvalidFilterDate.Error(), err)
	}
	return &date, nil
}

func invalid(code domainerror.FilterErrorCode, err error) error {
	return domainerror.NewFilterError(code, err.Error(), err)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
