package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spektr-org/chartkit/query"
	"github.com/spektr-org/chartkit/schema"
)

func TestShortNumber(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{0, "0"},
		{12, "12"},
		{12.345, "12.3"},
		{1234, "1.2K"},
		{-1234, "-1.2K"},
		{2500000, "2.5M"},
		{999999, "1M"},
		{999.96, "1K"},
		{-999.96, "-1K"},
		{999.94, "999.9"},
		{3e9, "3B"},
		{"1500", "1.5K"},
		{"north", "north"},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortNumber(tt.in, 1), "ShortNumber(%v)", tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	en := message.NewPrinter(language.English)
	de := message.NewPrinter(language.German)

	assert.Equal(t, "1,234.5", FormatNumber(en, 1234.5, 0))
	assert.Equal(t, "1,234.57", FormatNumber(en, 1234.567, 0))
	assert.Equal(t, "1,000", FormatNumber(en, 1000, 0))
	assert.Equal(t, "1.234,5", FormatNumber(de, 1234.5, 0))

	f := NumberFormatter(en)
	assert.Equal(t, "42", f(42))
	assert.Equal(t, "n/a", f("n/a"))
}

func TestTooltipFormatItem(t *testing.T) {
	f := newTooltipFormatter(false, "", nil)

	out := f.FormatItem(TooltipParam{Name: "<B>", Value: Point{"B", 2000.0}})

	assert.Contains(t, out, "<div>&lt;B&gt;</div>")
	assert.Contains(t, out, `<div class="font-bold">2,000</div>`)
}

func TestTooltipFormatAxis(t *testing.T) {
	f := newTooltipFormatter(true, query.GranularityMonth, message.NewPrinter(language.English))
	params := []TooltipParam{
		{SeriesName: "revenue", Marker: "<span>●</span>", Value: Point{"2026-01-01", 1500.25}},
		{SeriesName: "cost", Marker: "<span>●</span>", Value: Point{"2026-01-01", 20}},
	}

	out := f.FormatAxis(params)

	assert.Equal(t, 1, strings.Count(out, "January, 2026"), "x label is printed once")
	assert.Contains(t, out, "<span>●</span><div>revenue</div>")
	assert.Contains(t, out, "1,500.25")
	assert.Contains(t, out, `<div class="font-bold">20</div>`)

	plain := newTooltipFormatter(false, query.GranularityMonth, nil)
	assert.Contains(t, plain.FormatAxis(params[:1]), "<div>2026-01-01</div>")
}

func TestTooltipFormatByTrigger(t *testing.T) {
	res := &schema.Result{
		Columns: []schema.Column{col("region", schema.TypeString), col("sales", schema.TypeDecimal)},
		Rows:    []schema.Row{{"region": "EU", "sales": 1200.0}},
	}
	params := []TooltipParam{
		{Name: "EU", SeriesName: "sales", Value: Point{"EU", 1200.0}},
		{Name: "EU", SeriesName: "cost", Value: Point{"EU", 300.0}},
	}

	donut, err := BuildDonutChart(res)
	require.NoError(t, err)
	item := donut.Tooltip.Formatter
	assert.Equal(t, "item", item.Trigger)
	assert.Equal(t, item.FormatItem(params[0]), item.Format(params))
	assert.Empty(t, item.Format(nil))

	cfg := AxisChartConfig{
		XAxis: Dimension{ColumnName: "region", DataType: schema.TypeString},
		YAxis: YAxisConfig{Series: []Series{measure("sales")}},
	}
	axis := BuildBarChart(cfg, res).Tooltip.Formatter
	assert.Equal(t, "axis", axis.Trigger)
	out := axis.Format(params)
	assert.Equal(t, axis.FormatAxis(params), out)
	assert.Contains(t, out, "<div>cost</div>")
}
