package daterange

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

func frozen(year int, month time.Month, day, hour int) Clock {
	return func() time.Time {
		return time.Date(year, month, day, hour, 30, 0, 0, time.UTC)
	}
}

func days(interval entity.DateInterval) [2]string {
	return [2]string{entity.FormatOptionalDay(interval.From), entity.FormatOptionalDay(interval.To)}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(frozen(2025, time.January, 15, 17), time.UTC)

	tests := []struct {
		preset entity.DatePreset
		want   [2]string
	}{
		{entity.DatePresetToday, [2]string{"2025-01-15", "2025-01-15"}},
		{entity.DatePresetThisWeek, [2]string{"2025-01-09", "2025-01-15"}},
		{entity.DatePresetThisMonth, [2]string{"2024-12-15", "2025-01-15"}},
		{entity.DatePresetThisYear, [2]string{"2024-01-15", "2025-01-15"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			got, err := r.Resolve(tt.preset)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, days(got)); diff != "" {
				t.Errorf("interval mismatch (-want +got):\n%s", diff)
			}
			if got.From.Hour() != 0 || got.To.Hour() != 0 {
				t.Errorf("expected midnight boundaries, got %s and %s", got.From, got.To)
			}
		})
	}
}

func TestResolver_ResolvePersonalized(t *testing.T) {
	r := NewResolver(frozen(2025, time.January, 15, 0), time.UTC)

	for _, preset := range []entity.DatePreset{entity.DatePresetPersonalized, "yesterday"} {
		_, err := r.Resolve(preset)
		if !errors.Is(err, domainerror.ErrInvalidPreset) {
			t.Fatalf("expected ErrInvalidPreset for %q, got %v", preset, err)
		}

		var filterErr *domainerror.FilterError
		if !errors.As(err, &filterErr) || filterErr.Code != domainerror.ErrCodeInvalidPreset {
			t.Errorf("expected code %s, got %v", domainerror.ErrCodeInvalidPreset, err)
		}
	}
}

func TestResolver_MonthClamping(t *testing.T) {
	tests := []struct {
		name   string
		clock  Clock
		preset entity.DatePreset
		want   string
	}{
		{"march 31 to february", frozen(2025, time.March, 31, 9), entity.DatePresetThisMonth, "2025-02-28"},
		{"march 31 to leap february", frozen(2024, time.March, 31, 9), entity.DatePresetThisMonth, "2024-02-29"},
		{"may 31 to april", frozen(2025, time.May, 31, 9), entity.DatePresetThisMonth, "2025-04-30"},
		{"january to december", frozen(2025, time.January, 31, 9), entity.DatePresetThisMonth, "2024-12-31"},
		{"leap day to previous year", frozen(2024, time.February, 29, 9), entity.DatePresetThisYear, "2023-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.clock, time.UTC)
			got, err := r.Resolve(tt.preset)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if from := entity.FormatDay(*got.From); from != tt.want {
				t.Errorf("expected from %s, got %s", tt.want, from)
			}
		})
	}
}

func TestResolver_ThisWeekSpansSevenDays(t *testing.T) {
	start := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i += 13 {
		now := start.AddDate(0, 0, i)
		r := NewResolver(func() time.Time { return now }, time.UTC)

		got, _ := r.Resolve(entity.DatePresetThisWeek)
		span := int(got.To.Sub(*got.From).Hours()/24) + 1
		if span != 7 {
			t.Errorf("expected 7 day span ending %s, got %d", entity.FormatDay(now), span)
		}
		if !entity.SameDay(*got.To, now) {
			t.Errorf("expected window to end today %s, got %s", entity.FormatDay(now), entity.FormatDay(*got.To))
		}
	}
}

func TestResolver_DetectRoundTrip(t *testing.T) {
	clocks := []Clock{
		frozen(2025, time.January, 15, 12),
		frozen(2025, time.March, 31, 23),
		frozen(2024, time.February, 29, 0),
		frozen(2025, time.December, 1, 6),
	}

	for _, clock := range clocks {
		r := NewResolver(clock, time.UTC)
		for _, preset := range entity.FormulaPresets {
			interval, err := r.Resolve(preset)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := r.Detect(interval); got != preset {
				t.Errorf("on %s expected %s, got %s", entity.FormatDay(clock()), preset, got)
			}
		}
	}
}

func TestResolver_Detect(t *testing.T) {
	r := NewResolver(frozen(2025, time.January, 15, 8), time.UTC)
	day := func(value string) *time.Time {
		d, err := entity.ParseDay(value, time.UTC)
		if err != nil {
			t.Fatalf("bad fixture %s: %v", value, err)
		}
		return &d
	}

	t.Run("ignores time of day", func(t *testing.T) {
		from := time.Date(2025, time.January, 9, 18, 45, 0, 0, time.UTC)
		to := time.Date(2025, time.January, 15, 23, 59, 59, 0, time.UTC)
		if got := r.Detect(entity.NewDateInterval(from, to)); got != entity.DatePresetThisWeek {
			t.Errorf("expected %s, got %s", entity.DatePresetThisWeek, got)
		}
	})

	t.Run("missing end is personalized", func(t *testing.T) {
		interval := entity.DateInterval{From: day("2025-01-15")}
		if got := r.Detect(interval); got != entity.DatePresetPersonalized {
			t.Errorf("expected personalized, got %s", got)
		}
	})

	t.Run("empty interval is personalized", func(t *testing.T) {
		if got := r.Detect(entity.DateInterval{}); got != entity.DatePresetPersonalized {
			t.Errorf("expected personalized, got %s", got)
		}
	})

	t.Run("non matching range is personalized", func(t *testing.T) {
		interval := entity.DateInterval{From: day("2025-01-05"), To: day("2025-01-10")}
		if got := r.Detect(interval); got != entity.DatePresetPersonalized {
			t.Errorf("expected personalized, got %s", got)
		}
	})

	t.Run("stale month range is personalized", func(t *testing.T) {
		interval := entity.DateInterval{From: day("2024-12-01"), To: day("2025-01-01")}
		if got := r.Detect(interval); got != entity.DatePresetPersonalized {
			t.Errorf("expected personalized, got %s", got)
		}
	})
}

func TestResolver_LocationDecidesToday(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	clock := func() time.Time { return time.Date(2025, time.January, 15, 20, 0, 0, 0, time.UTC) }

	r := NewResolver(clock, tokyo)
	if got := entity.FormatDay(r.Today()); got != "2025-01-16" {
		t.Errorf("expected 2025-01-16, got %s", got)
	}
}

func TestResolver_FormulaRanges(t *testing.T) {
	r := NewResolver(frozen(2025, time.January, 15, 8), time.UTC)

	ranges := r.FormulaRanges()
	if len(ranges) != len(entity.FormulaPresets) {
		t.Fatalf("expected %d ranges, got %d", len(entity.FormulaPresets), len(ranges))
	}
	for i, pr := range ranges {
		if pr.Preset != entity.FormulaPresets[i] {
			t.Errorf("expected preset %s at %d, got %s", entity.FormulaPresets[i], i, pr.Preset)
		}
		if pr.Label == "" {
			t.Errorf("expected label for %s", pr.Preset)
		}
	}
}
