package engine

import (
	"github.com/samber/lo"

	"github.com/spektr-org/chartkit/schema"
)

// GuessChart recommends a chart type for a result's columns. Rows are
// accepted for symmetry with the builders but do not affect the choice.
//
// First match wins:
//   - one measure, no dimensions: number
//   - a discrete dimension and a measure: bar
//   - exactly one continuous dimension and a measure: line
//   - several discrete dimensions and a measure: table
//
// The second return is false when nothing matches.
func GuessChart(columns []schema.Column, _ []schema.Row) (ChartType, bool) {
	measures := lo.Filter(columns, func(c schema.Column, _ int) bool {
		return c.IsMeasure()
	})
	dimensions := lo.Filter(columns, func(c schema.Column, _ int) bool {
		return c.IsDimension()
	})
	discrete := lo.Filter(dimensions, func(c schema.Column, _ int) bool {
		return c.Roles().Has(schema.RoleDiscrete)
	})
	continuous := lo.Filter(dimensions, func(c schema.Column, _ int) bool {
		return c.Roles().Has(schema.RoleContinuous)
	})

	hasMeasure := len(measures) > 0
	switch {
	case len(measures) == 1 && len(dimensions) == 0:
		return ChartNumber, true
	case len(discrete) >= 1 && hasMeasure:
		return ChartBar, true
	case len(continuous) == 1 && hasMeasure:
		return ChartLine, true
	case len(discrete) > 1 && hasMeasure:
		// Unreachable while the bar rule accepts any discrete dimension.
		return ChartTable, true
	default:
		return "", false
	}
}
