package entity

import (
	"cmp"
	"fmt"
	"time"
)

// DayLayout is the calendar-day format used in stored snapshots and requests.
const DayLayout = "2006-01-02"

// DateInterval is a possibly incomplete date range. An interval with only
// From set is an in-progress selection; one with neither set is empty.
type DateInterval struct {
	From *time.Time
	To   *time.Time
}

// NewDateInterval builds a complete interval from two dates.
func NewDateInterval(from, to time.Time) DateInterval {
	return DateInterval{From: &from, To: &to}
}

// IsEmpty reports whether neither end is set.
func (d DateInterval) IsEmpty() bool {
	return d.From == nil && d.To == nil
}

// IsComplete reports whether both ends are set.
func (d DateInterval) IsComplete() bool {
	return d.From != nil && d.To != nil
}

// IsOrdered reports whether a complete interval has From on or before To,
// comparing calendar days.
func (d DateInterval) IsOrdered() bool {
	if !d.IsComplete() {
		return false
	}
	return CompareDays(*d.From, *d.To) <= 0
}

// SameDays reports whether both intervals cover identical calendar days.
func (d DateInterval) SameDays(other DateInterval) bool {
	return sameOptionalDay(d.From, other.From) && sameOptionalDay(d.To, other.To)
}

// String formats the interval for logs and CLI output.
func (d DateInterval) String() string {
	return fmt.Sprintf("%s..%s", FormatOptionalDay(d.From), FormatOptionalDay(d.To))
}

// SameDay reports whether a and b fall on the same calendar day, each read in
// its own location.
func SameDay(a, b time.Time) bool {
	return CompareDays(a, b) == 0
}

// CompareDays compares the calendar days of a and b, ignoring time of day.
func CompareDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	switch {
	case ay != by:
		return cmp.Compare(ay, by)
	case am != bm:
		return cmp.Compare(am, bm)
	default:
		return cmp.Compare(ad, bd)
	}
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// FormatDay formats t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// FormatOptionalDay formats t, or returns an empty string when t is nil.
func FormatOptionalDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDay(*t)
}

// ParseDay parses a YYYY-MM-DD string as midnight in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, value, loc)
}

// ParseOptionalDay parses value, returning nil for an empty or malformed string.
func ParseOptionalDay(value string, loc *time.Location) *time.Time {
	if value == "" {
		return nil
	}
	t, err := ParseDay(value, loc)
	if err != nil {
		return nil
	}
	return &t
}

func sameOptionalDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return SameDay(*a, *b)
}
