package engine

import (
	"errors"
	"fmt"
)

// ErrMissingMeasureColumn indicates no MEASURE column exists for a donut chart.
var ErrMissingMeasureColumn = errors.New("no measure column found")

// ErrMissingDimensionColumn indicates no DIMENSION column exists for a donut chart.
var ErrMissingDimensionColumn = errors.New("no label column found")

// ErrUnsupportedChartType indicates a chart type with no rendering spec
// (number and table are drawn without one).
var ErrUnsupportedChartType = errors.New("unsupported chart type")

// ErrNoRecommendation indicates no chart type was pinned and none could be inferred.
var ErrNoRecommendation = errors.New("no chart type recommendation")

// ErrEmptySeries indicates an axis chart config with no y-axis series.
var ErrEmptySeries = errors.New("y-axis has no series")

// ErrMissingXAxis indicates an axis chart config with no x-axis column.
var ErrMissingXAxis = errors.New("x-axis column not set")

// ErrRowOutOfRange indicates a drill-down row index outside the result.
var ErrRowOutOfRange = errors.New("row index out of range")

// ChartError wraps a failure while building one chart.
type ChartError struct {
	ChartType ChartType
	Stage     string // "guess", "data", "config"
	Err       error
}

func (e *ChartError) Error() string {
	return fmt.Sprintf("%s chart (%s): %v", e.ChartType, e.Stage, e.Err)
}

func (e *ChartError) Unwrap() error {
	return e.Err
}

func newChartError(chartType ChartType, stage string, err error) *ChartError {
	return &ChartError{
		ChartType: chartType,
		Stage:     stage,
		Err:       err,
	}
}
