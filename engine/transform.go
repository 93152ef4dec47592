package engine

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// SERIES DATA — Row to [x, y] point transforms
// ============================================================================

// MeasureColumns returns the numeric columns; each becomes one series.
func MeasureColumns(columns []schema.Column) []schema.Column {
	return lo.Filter(columns, func(c schema.Column, _ int) bool {
		return c.IsNumber()
	})
}

// SortRowsByDate returns a copy of rows ordered by the date in column.
// Equal dates keep their input order; unparseable values sort as the zero time.
func SortRowsByDate(rows []schema.Row, column string) []schema.Row {
	keys := make([]time.Time, len(rows))
	for i, r := range rows {
		keys[i], _ = schema.ToTime(r[column])
	}
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return keys[idx[a]].Before(keys[idx[b]])
	})

	sorted := make([]schema.Row, len(rows))
	for i, j := range idx {
		sorted[i] = rows[j]
	}
	return sorted
}

// SeriesData pairs each row's x value with its value in column.
func SeriesData(rows []schema.Row, x, column string) []Point {
	points := make([]Point, len(rows))
	for i, r := range rows {
		points[i] = Point{r[x], r[column]}
	}
	return points
}

// TotalsByX sums every measure column per distinct x value.
func TotalsByX(rows []schema.Row, x string, measures []schema.Column) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range rows {
		key := schema.Key(r[x])
		for _, m := range measures {
			totals[key] += schema.Float(r[m.Name])
		}
	}
	return totals
}

// NormalizedSeriesData is SeriesData with each y expressed as a percentage
// of its x value's total. A zero total yields 0.
func NormalizedSeriesData(rows []schema.Row, x, column string, totals map[string]float64) []Point {
	points := make([]Point, len(rows))
	for i, r := range rows {
		var pct float64
		if total := totals[schema.Key(r[x])]; total != 0 {
			pct = schema.Float(r[column]) / total * 100
		}
		points[i] = Point{r[x], pct}
	}
	return points
}
