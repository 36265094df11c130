package entity

import "time"

// StagedDateEdit is the uncommitted state of an open date picker. It exists
// only while the picker is open and never touches the live filters.
type StagedDateEdit struct {
	TempDate      DateInterval
	TempPreset    DatePreset
	CalendarMonth *time.Time
}
