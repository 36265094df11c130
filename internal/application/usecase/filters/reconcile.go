package filters

import (
	"bytes"
	"encoding/json"

	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// storedSnapshot mirrors entity.FilterSnapshot with optional fields so older
// schema versions can be told apart from explicit values.
type storedSnapshot struct {
	CurrentPage      *int    `json:"currentPage"`
	PageSize         *int    `json:"pageSize"`
	SelectedCategory *string `json:"selectedCategory"`
	VolumeFilter     *string `json:"volumeFilter"`
	StartDate        *string `json:"startDate"`
	EndDate          *string `json:"endDate"`
	SelectedPeriod   *string `json:"selectedPeriod"`
	View             *string `json:"view"`
	DatePreset       *string `json:"datePreset"`
}

// EncodeSnapshot serializes a snapshot in its storage form. Equal snapshots
// always encode to identical bytes.
func EncodeSnapshot(s entity.FilterSnapshot) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Reconcile turns the stored value into the effective snapshot: stored fields
// are merged over defaults, stale values are migrated and preset dates are
// recomputed for today. A value that is not a JSON object yields the defaults
// together with an ErrCodeStorageCorrupt error.
func Reconcile(raw string, found bool, r *daterange.Resolver) (entity.FilterSnapshot, error) {
	data := bytes.TrimSpace([]byte(raw))
	if !found || len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return freshSnapshot(r), nil
	}

	stored, err := decodeStored(data)
	if err != nil {
		return freshSnapshot(r), domainerror.NewFilterError(
			domainerror.ErrCodeStorageCorrupt,
			domainerror.ErrStorageCorrupt.Error(),
			err,
		)
	}

	return merge(stored, r), nil
}

// decodeStored decodes the stored object field by field. Only a value that
// is not a JSON object is an error; a field of the wrong type is left unset
// and falls back to its default like any other invalid value.
func decodeStored(data []byte) (storedSnapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return storedSnapshot{}, err
	}

	var stored storedSnapshot
	for name, target := range map[string]any{
		"currentPage":      &stored.CurrentPage,
		"pageSize":         &stored.PageSize,
		"selectedCategory": &stored.SelectedCategory,
		"volumeFilter":     &stored.VolumeFilter,
		"startDate":        &stored.StartDate,
		"endDate":          &stored.EndDate,
		"selectedPeriod":   &stored.SelectedPeriod,
		"view":             &stored.View,
		"datePreset":       &stored.DatePreset,
	} {
		value, ok := fields[name]
		if !ok {
			continue
		}
		_ = json.Unmarshal(value, target)
	}
	return stored, nil
}

func freshSnapshot(r *daterange.Resolver) entity.FilterSnapshot {
	s := entity.DefaultFilterSnapshot()
	interval, preset := r.ResolveOrDefault(s.DatePreset)
	s.DatePreset = preset
	return withInterval(s, interval)
}

func merge(stored storedSnapshot, r *daterange.Resolver) entity.FilterSnapshot {
	s := entity.DefaultFilterSnapshot()

	if stored.CurrentPage != nil && *stored.CurrentPage >= 1 {
		s.CurrentPage = *stored.CurrentPage
	}
	if stored.PageSize != nil && entity.IsValidPageSize(*stored.PageSize) {
		s.PageSize = *stored.PageSize
	}
	if stored.SelectedCategory != nil && *stored.SelectedCategory != "" {
		s.SelectedCategory = *stored.SelectedCategory
	}
	if stored.VolumeFilter != nil && entity.VolumeFilter(*stored.VolumeFilter).IsValid() {
		s.VolumeFilter = entity.VolumeFilter(*stored.VolumeFilter)
	}
	// Legacy periods such as "yearly" or "ytd" fall back to the default.
	if stored.SelectedPeriod != nil && entity.Period(*stored.SelectedPeriod).IsValid() {
		s.SelectedPeriod = entity.Period(*stored.SelectedPeriod)
	}
	if stored.View != nil && entity.TableView(*stored.View).IsValid() {
		s.View = entity.TableView(*stored.View)
	}

	preset := entity.DatePresetPersonalized
	if stored.DatePreset != nil && *stored.DatePreset != "" {
		preset = entity.DatePreset(*stored.DatePreset)
	}

	switch {
	case preset == entity.DatePresetPersonalized:
		s.DatePreset = preset
		s.StartDate = storedDay(stored.StartDate, r)
		s.EndDate = storedDay(stored.EndDate, r)
	default:
		interval, resolved := r.ResolveOrDefault(preset)
		s.DatePreset = resolved
		s = withInterval(s, interval)
	}

	return s
}

// storedDay keeps a stored literal date when it is a valid calendar day.
func storedDay(value *string, r *daterange.Resolver) string {
	if value == nil {
		return ""
	}
	return entity.FormatOptionalDay(entity.ParseOptionalDay(*value, r.Location()))
}
