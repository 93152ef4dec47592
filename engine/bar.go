package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/spektr-org/chartkit/schema"
)

// stackGroup is the stack name shared by every bar series when stacking.
const stackGroup = "total"

// BuildBarChart renders one bar series per numeric column. With
// normalize set, each bar is its share of the x value's total across all
// numeric columns.
//
// cfg.YAxis.Series must not be empty; see AxisChartConfig.Validate.
func BuildBarChart(cfg AxisChartConfig, res *schema.Result, opts ...Option) *ChartSpec {
	c := applyOptions(opts)

	measures := MeasureColumns(res.Columns)
	showLegend := len(measures) > 1
	x := cfg.XAxis.ColumnName
	normalize := cfg.YAxis.Normalize

	var totals map[string]float64
	if normalize {
		totals = TotalsByX(res.Rows, x, measures)
	}

	stack := ""
	if cfg.YAxis.Stack {
		stack = stackGroup
	}

	colors := assignColors(c.Palette, len(measures))
	series := make([]SeriesSpec, 0, len(measures))
	for i, m := range measures {
		entry := ResolveSeries(cfg, m.Name)
		showLabels := boolOr(entry.ShowDataLabels, cfg.YAxis.ShowDataLabels)

		data := SeriesData(res.Rows, x, m.Name)
		if normalize {
			data = NormalizedSeriesData(res.Rows, x, m.Name, totals)
		}

		series = append(series, SeriesSpec{
			Type:        string(ChartBar),
			Name:        m.Name,
			Data:        data,
			Stack:       stack,
			YAxisIndex:  axisIndex(entry),
			BarMaxWidth: barMaxWidth,
			Label:       dataLabel(showLabels, i, len(measures)),
			LabelLayout: &LabelLayout{HideOverlap: true},
			Emphasis:    &Emphasis{Focus: "series"},
			ItemStyle:   &ItemStyle{Color: colors[i]},
		})
	}

	c.Logger.WithFields(logrus.Fields{
		"chart":     ChartBar,
		"series":    len(series),
		"rows":      len(res.Rows),
		"normalize": normalize,
	}).Debug("built bar chart")

	xIsDate := cfg.XAxis.DataType.IsDate()
	return &ChartSpec{
		Type:              ChartBar,
		Animation:         true,
		AnimationDuration: animationDuration,
		Color:             c.Palette,
		Grid:              newGrid(showLegend),
		XAxis:             BuildXAxis(cfg.XAxis.DataType),
		YAxis:             BuildYAxes(cfg.YAxis, normalize),
		Series:            series,
		Tooltip:           newTooltip("axis", newTooltipFormatter(xIsDate, xGranularity(c, cfg), c.printer())),
		Legend:            newLegend(showLegend),
	}
}
