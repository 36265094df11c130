package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// Option is a value and its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptionsOutput lists the choices of every dashboard filter.
type FilterOptionsOutput struct {
	Categories   []Option      `json:"categories"`
	Volumes      []Option      `json:"volumes"`
	PageSizes    []Option      `json:"page_sizes"`
	Periods      []Option      `json:"periods"`
	Presets      []Option      `json:"presets"`
	Notification *Notification `json:"notification,omitempty"`
}

var volumeOptions = []Option{
	{Value: string(entity.VolumeFilterAll), Label: "All Volumes"},
	{Value: string(entity.VolumeFilterLow), Label: fmt.Sprintf("Low Volume (≤%d)", entity.LowVolumeThreshold)},
	{Value: string(entity.VolumeFilterNormal), Label: fmt.Sprintf("Normal Volume (%d-%d)", entity.LowVolumeThreshold+1, entity.HighVolumeThreshold-1)},
	{Value: string(entity.VolumeFilterHigh), Label: fmt.Sprintf("High Volume (≥%d)", entity.HighVolumeThreshold)},
}

var periodOptions = []Option{
	{Value: string(entity.PeriodDaily), Label: "Daily"},
	{Value: string(entity.PeriodWeekly), Label: "Weekly"},
	{Value: string(entity.PeriodMonthly), Label: "Monthly"},
}

// GetFilterOptionsUseCase lists the dashboard filter choices.
type GetFilterOptionsUseCase struct {
	client adapter.AnalyticsClient
}

// NewGetFilterOptionsUseCase creates a new GetFilterOptionsUseCase instance.
func NewGetFilterOptionsUseCase(client adapter.AnalyticsClient) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{client: client}
}

// Execute returns every option list. Categories are "All Categories" followed
// by the top-level taxonomies; a taxonomy failure leaves only the first and
// sets the notification.
func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context) *FilterOptionsOutput {
	output := &FilterOptionsOutput{
		Categories: []Option{{Value: entity.AllCategories, Label: "All Categories"}},
		Volumes:    volumeOptions,
		PageSizes:  pageSizeOptions(),
		Periods:    periodOptions,
		Presets:    presetOptions(),
	}

	taxonomies, err := uc.client.Taxonomies(ctx)
	if err != nil {
		output.Notification = firstNotification([]upstreamFailure{
			{err, domainerror.ErrCodeTaxonomiesUnavailable, domainerror.ErrTaxonomiesUnavailable},
		})
		return output
	}

	for _, t := range taxonomies {
		if t.Level != 1 {
			continue
		}
		output.Categories = append(output.Categories, Option{Value: t.ID, Label: t.Name})
	}

	slog.Debug("Loaded category options", "count", len(output.Categories)-1)
	return output
}

func pageSizeOptions() []Option {
	options := make([]Option, 0, len(entity.PageSizes))
	for _, size := range entity.PageSizes {
		options = append(options, Option{Value: fmt.Sprint(size), Label: fmt.Sprintf("%d per page", size)})
	}
	return options
}

func presetOptions() []Option {
	presets := entity.AllDatePresets()
	options := make([]Option, 0, len(presets))
	for _, p := range presets {
		options = append(options, Option{Value: string(p), Label: p.Label()})
	}
	return options
}
