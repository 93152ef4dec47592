package engine

import (
	"github.com/spektr-org/chartkit/query"
	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// CHART SPEC ASSEMBLY — Config + result → rendering spec
// ============================================================================

// DefaultPalette is the series color cycle used when no palette is given.
var DefaultPalette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildChart renders cfg against res. An unset chart type is inferred from
// the result's columns. Number and table charts are drawn without a spec
// and return ErrUnsupportedChartType.
func BuildChart(cfg ChartConfig, res *schema.Result, opts ...Option) (*ChartSpec, error) {
	chartType := cfg.ChartType
	if chartType == "" {
		guessed, ok := GuessChart(res.Columns, res.Rows)
		if !ok {
			return nil, newChartError("", "guess", ErrNoRecommendation)
		}
		chartType = guessed
	}

	switch chartType {
	case ChartLine, ChartBar:
		if err := cfg.Validate(); err != nil {
			return nil, newChartError(chartType, "config", err)
		}
		if chartType == ChartLine {
			return BuildLineChart(cfg.AxisChartConfig, res, opts...), nil
		}
		return BuildBarChart(cfg.AxisChartConfig, res, opts...), nil
	case ChartDonut:
		return BuildDonutChart(res, opts...)
	default:
		return nil, newChartError(chartType, "config", ErrUnsupportedChartType)
	}
}

// assignColors picks count colors from palette, cycling as needed.
func assignColors(palette []string, count int) []string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}

func xGranularity(c *config, cfg AxisChartConfig) query.Granularity {
	if !cfg.XAxis.DataType.IsDate() {
		return ""
	}
	return c.granularityFor(cfg.XAxis.ColumnName)
}
