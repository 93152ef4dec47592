package query

import (
	"fmt"
	"strings"

	"github.com/spektr-org/chartkit/schema"
)

// Granularity is a time-bucketing unit.
type Granularity string

const (
	GranularitySecond  Granularity = "second"
	GranularityMinute  Granularity = "minute"
	GranularityHour    Granularity = "hour"
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

var dateLayouts = map[Granularity]string{
	GranularitySecond: "January 2, 2006 3:04:05 PM",
	GranularityMinute: "January 2, 2006 3:04 PM",
	GranularityHour:   "January 2, 2006 3:00 PM",
	GranularityDay:    "January 2, 2006",
	GranularityWeek:   "Jan 2, 2006",
	GranularityMonth:  "January, 2006",
	GranularityYear:   "2006",
}

// FormatDate renders a date-like value for display at granularity g.
// Values that are not dates come back as their plain text.
func FormatDate(value any, g Granularity) string {
	t, ok := schema.ToTime(value)
	if !ok {
		return schema.Key(value)
	}
	g = Granularity(strings.ToLower(string(g)))
	if g == GranularityQuarter {
		return fmt.Sprintf("Q%d, %d", (int(t.Month())-1)/3+1, t.Year())
	}
	layout, ok := dateLayouts[g]
	if !ok {
		layout = dateLayouts[GranularityDay]
	}
	return t.Format(layout)
}
