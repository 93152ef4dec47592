package engine

import (
	"fmt"

	"github.com/spektr-org/chartkit/query"
	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// CHART CONFIG — User-authored chart configuration
// ============================================================================
// Line and bar charts share AxisChartConfig. Per-series overrides are
// pointers so "unset" falls back to the chart-wide y-axis default.
// ============================================================================

// ChartType names a chart family.
type ChartType string

const (
	ChartNumber ChartType = "number"
	ChartBar    ChartType = "bar"
	ChartLine   ChartType = "line"
	ChartTable  ChartType = "table"
	ChartDonut  ChartType = "donut"
)

// Align places a series on the left or right y-axis.
type Align string

const (
	AlignLeft  Align = "Left"
	AlignRight Align = "Right"
)

// Dimension binds a result column and its declared type.
type Dimension struct {
	ColumnName string                `json:"column_name" yaml:"column_name"`
	DataType   schema.ColumnDataType `json:"data_type" yaml:"data_type"`
}

// Series binds a measure to optional per-series overrides.
type Series struct {
	Measure        query.Measure `json:"measure" yaml:"measure"`
	Align          Align         `json:"align,omitempty" yaml:"align,omitempty"`
	Smooth         *bool         `json:"smooth,omitempty" yaml:"smooth,omitempty"`
	ShowDataPoints *bool         `json:"show_data_points,omitempty" yaml:"show_data_points,omitempty"`
	ShowArea       *bool         `json:"show_area,omitempty" yaml:"show_area,omitempty"`
	ShowDataLabels *bool         `json:"show_data_labels,omitempty" yaml:"show_data_labels,omitempty"`
}

// YAxisConfig holds the series list and chart-wide defaults.
type YAxisConfig struct {
	Series         []Series `json:"series" yaml:"series"`
	Smooth         bool     `json:"smooth,omitempty" yaml:"smooth,omitempty"`
	ShowDataPoints bool     `json:"show_data_points,omitempty" yaml:"show_data_points,omitempty"`
	ShowArea       bool     `json:"show_area,omitempty" yaml:"show_area,omitempty"`
	ShowDataLabels bool     `json:"show_data_labels,omitempty" yaml:"show_data_labels,omitempty"`
	Stack          bool     `json:"stack,omitempty" yaml:"stack,omitempty"`
	Normalize      bool     `json:"normalize,omitempty" yaml:"normalize,omitempty"`
}

// AxisChartConfig configures line and bar charts.
type AxisChartConfig struct {
	XAxis   Dimension   `json:"x_axis" yaml:"x_axis"`
	YAxis   YAxisConfig `json:"y_axis" yaml:"y_axis"`
	SplitBy *Dimension  `json:"split_by,omitempty" yaml:"split_by,omitempty"`
}

// ChartConfig is a stored chart: an optional pinned type plus axis config.
// Donut charts ignore the axis fields.
type ChartConfig struct {
	ChartType       ChartType `json:"chart_type,omitempty" yaml:"chart_type,omitempty"`
	AxisChartConfig `yaml:",inline"`
}

// HasSplitBy reports whether series are fanned out by a split column.
func (c AxisChartConfig) HasSplitBy() bool {
	return c.SplitBy != nil && c.SplitBy.ColumnName != ""
}

// Validate checks the preconditions the line and bar builders rely on.
// The builders themselves do not check; an empty series list panics there.
func (c AxisChartConfig) Validate() error {
	if c.XAxis.ColumnName == "" {
		return fmt.Errorf("x_axis: %w", ErrMissingXAxis)
	}
	if len(c.YAxis.Series) == 0 {
		return fmt.Errorf("y_axis: %w", ErrEmptySeries)
	}
	return nil
}

func boolOr(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

func ptr[T any](v T) *T { return &v }
