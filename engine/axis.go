package engine

import (
	"github.com/samber/lo"

	"github.com/spektr-org/chartkit/schema"
)

// BuildXAxis returns a time axis for date columns and a category axis
// otherwise.
func BuildXAxis(t schema.ColumnDataType) *Axis {
	axisType := AxisCategory
	if t.IsDate() {
		axisType = AxisTime
	}
	return &Axis{
		Type:        axisType,
		Show:        true,
		Z:           2,
		Scale:       true,
		BoundaryGap: []string{"1%", "2%"},
		SplitLine:   Toggle{Show: false},
		AxisLine:    AxisLine{Show: true},
		AxisTick:    Toggle{Show: false},
	}
}

// BuildYAxis returns a value axis with compact tick labels. A normalized
// axis is pinned to [0, 100].
func BuildYAxis(normalized bool) Axis {
	axis := Axis{
		Type:        AxisValue,
		Show:        true,
		Z:           2,
		Scale:       false,
		AlignTicks:  true,
		BoundaryGap: []string{"0%", "1%"},
		SplitLine:   Toggle{Show: true},
		AxisLine:    AxisLine{Show: false, OnZero: ptr(false)},
		AxisTick:    Toggle{Show: false},
		AxisLabel: &AxisLabel{
			Show:        true,
			HideOverlap: true,
			Margin:      4,
			Formatter:   CompactFormatter(labelPrecision),
		},
	}
	if normalized {
		axis.Min = ptr(0.0)
		axis.Max = ptr(100.0)
	}
	return axis
}

// HasRightAxis reports whether any series is aligned to the right axis.
func HasRightAxis(y YAxisConfig) bool {
	return lo.SomeBy(y.Series, func(s Series) bool {
		return s.Align == AlignRight
	})
}

// BuildYAxes returns one left axis, plus a right one when a series asks for it.
func BuildYAxes(y YAxisConfig, normalized bool) []Axis {
	if !HasRightAxis(y) {
		return []Axis{BuildYAxis(normalized)}
	}
	return []Axis{BuildYAxis(normalized), BuildYAxis(normalized)}
}
