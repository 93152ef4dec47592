package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/spektr-org/chartkit/schema"
)

// BuildLineChart renders one line series per numeric column. Rows are
// ordered by the x column when it holds dates; res is not modified.
//
// cfg.YAxis.Series must not be empty; see AxisChartConfig.Validate.
func BuildLineChart(cfg AxisChartConfig, res *schema.Result, opts ...Option) *ChartSpec {
	c := applyOptions(opts)

	measures := MeasureColumns(res.Columns)
	showLegend := len(measures) > 1
	x := cfg.XAxis.ColumnName
	xIsDate := cfg.XAxis.DataType.IsDate()

	rows := res.Rows
	if xIsDate {
		rows = SortRowsByDate(res.Rows, x)
	}

	colors := assignColors(c.Palette, len(measures))
	series := make([]SeriesSpec, 0, len(measures))
	for i, m := range measures {
		entry := ResolveSeries(cfg, m.Name)
		smooth := boolOr(entry.Smooth, cfg.YAxis.Smooth)
		showPoints := boolOr(entry.ShowDataPoints, cfg.YAxis.ShowDataPoints)
		showArea := boolOr(entry.ShowArea, cfg.YAxis.ShowArea)
		showLabels := boolOr(entry.ShowDataLabels, cfg.YAxis.ShowDataLabels)

		s := SeriesSpec{
			Type:           string(ChartLine),
			Name:           m.Name,
			Data:           SeriesData(rows, x, m.Name),
			YAxisIndex:     axisIndex(entry),
			SmoothMonotone: "x",
			ShowSymbol:     ptr(showPoints || showLabels),
			Label:          dataLabel(showLabels, i, len(measures)),
			LabelLayout:    &LabelLayout{HideOverlap: true},
			Emphasis:       &Emphasis{Focus: "series"},
			ItemStyle:      &ItemStyle{Color: colors[i]},
		}
		if smooth {
			s.Smooth = lineSmoothness
		}
		if showArea {
			s.AreaStyle = areaStyle(colors[i])
		}
		series = append(series, s)
	}

	c.Logger.WithFields(logrus.Fields{
		"chart":  ChartLine,
		"series": len(series),
		"rows":   len(rows),
	}).Debug("built line chart")

	return &ChartSpec{
		Type:              ChartLine,
		Animation:         true,
		AnimationDuration: animationDuration,
		Color:             c.Palette,
		Grid:              newGrid(showLegend),
		XAxis:             BuildXAxis(cfg.XAxis.DataType),
		YAxis:             BuildYAxes(cfg.YAxis, false),
		Series:            series,
		Tooltip:           newTooltip("axis", newTooltipFormatter(xIsDate, xGranularity(c, cfg), c.printer())),
		Legend:            newLegend(showLegend),
	}
}
