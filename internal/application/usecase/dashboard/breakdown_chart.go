package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/automation-insights/backend/internal/domain/entity"
)

// UnknownCategory names breakdown rows without a category name.
const UnknownCategory = "Unknown"

// Level2ChartLimit caps the number of bars in the level-2 view.
const Level2ChartLimit = 10

// BreakdownChartItem is one bar of the category breakdown chart.
type BreakdownChartItem struct {
	Name       string          `json:"name"`
	Parent     string          `json:"parent,omitempty"`
	Volume     int             `json:"volume"`
	Percentage decimal.Decimal `json:"percentage"`
}

// BreakdownChart is the category breakdown chart for the persisted settings.
type BreakdownChart struct {
	ViewMode       entity.TableView     `json:"view_mode"`
	SelectedParent string               `json:"selected_parent"`
	Parents        []string             `json:"parents"`
	Items          []BreakdownChartItem `json:"items"`
}

// BuildBreakdownChart aggregates breakdown rows by parent or by level-2
// category. Percentages are shares of the total volume of the rows shown.
func BuildBreakdownChart(items []entity.BreakdownItem, settings entity.ChartSettings) BreakdownChart {
	chart := BreakdownChart{
		ViewMode:       settings.ViewMode,
		SelectedParent: settings.SelectedParent,
		Parents:        parentNames(items),
	}

	filtered := items
	if settings.SelectedParent != "" && settings.SelectedParent != entity.AllParents {
		filtered = make([]entity.BreakdownItem, 0, len(items))
		for _, item := range items {
			if nameOrUnknown(item.ParentCategory) == settings.SelectedParent {
				filtered = append(filtered, item)
			}
		}
	}

	if settings.ViewMode == entity.TableViewParent {
		chart.Items = aggregateByParent(filtered)
	} else {
		chart.Items = aggregateByLevel2(filtered)
	}
	return chart
}

func aggregateByParent(items []entity.BreakdownItem) []BreakdownChartItem {
	volumes := make(map[string]int)
	order := make([]string, 0)
	for _, item := range items {
		name := nameOrUnknown(item.ParentCategory)
		if _, ok := volumes[name]; !ok {
			order = append(order, name)
		}
		volumes[name] += item.TicketVolume
	}

	result := make([]BreakdownChartItem, 0, len(order))
	for _, name := range order {
		result = append(result, BreakdownChartItem{Name: name, Volume: volumes[name]})
	}
	return withPercentages(sortByVolume(result))
}

func aggregateByLevel2(items []entity.BreakdownItem) []BreakdownChartItem {
	type key struct{ parent, name string }

	volumes := make(map[key]int)
	order := make([]key, 0)
	for _, item := range items {
		k := key{parent: nameOrUnknown(item.ParentCategory), name: nameOrUnknown(item.Level2Category)}
		if _, ok := volumes[k]; !ok {
			order = append(order, k)
		}
		volumes[k] += item.TicketVolume
	}

	result := make([]BreakdownChartItem, 0, len(order))
	for _, k := range order {
		result = append(result, BreakdownChartItem{Name: k.name, Parent: k.parent, Volume: volumes[k]})
	}

	result = withPercentages(sortByVolume(result))
	if len(result) > Level2ChartLimit {
		result = result[:Level2ChartLimit]
	}
	return result
}

func withPercentages(items []BreakdownChartItem) []BreakdownChartItem {
	total := 0
	for _, item := range items {
		total += item.Volume
	}

	for i := range items {
		if total == 0 {
			items[i].Percentage = decimal.Zero
			continue
		}
		items[i].Percentage = decimal.NewFromInt(int64(items[i].Volume)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total))).
			Round(1)
	}
	return items
}

func sortByVolume(items []BreakdownChartItem) []BreakdownChartItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Volume > items[j].Volume
	})
	return items
}

// parentNames lists the distinct parent names in first-seen order.
func parentNames(items []entity.BreakdownItem) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, item := range items {
		name := nameOrUnknown(item.ParentCategory)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func nameOrUnknown(name string) string {
	if name == "" {
		return UnknownCategory
	}
	return name
}
