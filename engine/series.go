package engine

import (
	"strings"

	"github.com/samber/lo"
)

// ResolveSeries finds the configured series entry that styles a result
// column. Without a split column the entry whose measure name equals the
// column wins. With one, split columns are named after the measure and the
// split value, so a lone named measure claims every column and otherwise the
// first measure name contained in the column wins. No match falls back to
// the first entry.
//
// cfg.YAxis.Series must not be empty.
func ResolveSeries(cfg AxisChartConfig, column string) Series {
	series := cfg.YAxis.Series

	var found Series
	var ok bool
	if !cfg.HasSplitBy() {
		found, ok = lo.Find(series, func(s Series) bool {
			return s.Measure.MeasureName == column
		})
	} else {
		named := lo.CountBy(series, func(s Series) bool {
			return s.Measure.MeasureName != ""
		})
		if named == 1 {
			found, ok = series[0], true
		} else {
			found, ok = lo.Find(series, func(s Series) bool {
				return strings.Contains(column, s.Measure.MeasureName)
			})
		}
	}
	if !ok {
		return series[0]
	}
	return found
}
