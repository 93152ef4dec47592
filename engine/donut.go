package engine

import (
	"sort"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/spektr-org/chartkit/schema"
)

// DefaultMaxSlices is how many donut slices are kept before the rest are
// folded into OthersLabel.
const DefaultMaxSlices = 10

// OthersLabel names the slice that sums everything past the cap.
const OthersLabel = "Others"

// DonutSlices sums the first measure column by the first dimension column,
// largest first. Slices past maxSlices are folded into one OthersLabel slice,
// which is omitted when it sums to zero. Ties keep first-seen label order.
// A maxSlices below 1 means DefaultMaxSlices.
func DonutSlices(columns []schema.Column, rows []schema.Row, maxSlices int) ([]Slice, error) {
	if maxSlices < 1 {
		maxSlices = DefaultMaxSlices
	}
	measure, ok := lo.Find(columns, func(c schema.Column) bool { return c.IsMeasure() })
	if !ok {
		return nil, ErrMissingMeasureColumn
	}
	label, ok := lo.Find(columns, func(c schema.Column) bool { return c.IsDimension() })
	if !ok {
		return nil, ErrMissingDimensionColumn
	}

	var order []string
	sums := make(map[string]float64)
	for _, r := range rows {
		key := schema.Key(r[label.Name])
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += schema.Float(r[measure.Name])
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]] > sums[order[j]]
	})

	n := min(maxSlices, len(order))
	slices := make([]Slice, 0, n+1)
	for _, key := range order[:n] {
		slices = append(slices, Slice{Label: key, Value: sums[key]})
	}

	var others float64
	for _, key := range order[n:] {
		others += sums[key]
	}
	if others != 0 {
		slices = append(slices, Slice{Label: OthersLabel, Value: others})
	}
	return slices, nil
}

// BuildDonutChart renders a single donut from the result's first dimension
// and first measure column.
func BuildDonutChart(res *schema.Result, opts ...Option) (*ChartSpec, error) {
	c := applyOptions(opts)

	slices, err := DonutSlices(res.Columns, res.Rows, c.MaxSlices)
	if err != nil {
		return nil, newChartError(ChartDonut, "data", err)
	}

	c.Logger.WithFields(logrus.Fields{
		"chart":  ChartDonut,
		"slices": len(slices),
		"rows":   len(res.Rows),
	}).Debug("built donut chart")

	return &ChartSpec{
		Type:              ChartDonut,
		Animation:         true,
		AnimationDuration: animationDuration,
		Color:             c.Palette,
		Dataset:           &Dataset{Source: slices},
		Series: []SeriesSpec{{
			Type:      "pie",
			Center:    []string{"50%", "45%"},
			Radius:    []string{"40%", "70%"},
			LabelLine: &Toggle{Show: false},
			Label:     &SeriesLabel{Show: false},
			Emphasis:  &Emphasis{ScaleSize: 5},
		}},
		Tooltip: newTooltip("item", newTooltipFormatter(false, "", c.printer())),
		Legend:  newLegend(true),
	}, nil
}
