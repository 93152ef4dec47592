package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spektr-org/chartkit/schema"
)

func TestResolveSeries(t *testing.T) {
	revenue := measure("revenue")
	revenue.Align = AlignRight
	cost := measure("cost")

	plain := AxisChartConfig{YAxis: YAxisConfig{Series: []Series{revenue, cost}}}
	split := plain
	split.SplitBy = &Dimension{ColumnName: "region", DataType: schema.TypeString}

	tests := []struct {
		name   string
		cfg    AxisChartConfig
		column string
		want   Series
	}{
		{"exact match", plain, "cost", cost},
		{"no match falls back to first", plain, "profit", revenue},
		{"split substring", split, "cost_EU", cost},
		{"split no match falls back", split, "EU", revenue},
		{
			name:   "split with one named measure",
			cfg:    AxisChartConfig{SplitBy: split.SplitBy, YAxis: YAxisConfig{Series: []Series{measure(""), cost}}},
			column: "revenue_EU",
			want:   measure(""),
		},
		{
			name:   "empty split column is no split",
			cfg:    AxisChartConfig{SplitBy: &Dimension{}, YAxis: plain.YAxis},
			column: "cost_EU",
			want:   revenue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSeries(tt.cfg, tt.column))
		})
	}
}

func TestResolveSeriesEmptyPanics(t *testing.T) {
	assert.Panics(t, func() {
		ResolveSeries(AxisChartConfig{}, "x")
	})
}

func TestBuildAxes(t *testing.T) {
	x := BuildXAxis(schema.TypeDatetime)
	assert.Equal(t, AxisTime, x.Type)
	assert.True(t, x.Scale)
	assert.Equal(t, []string{"1%", "2%"}, x.BoundaryGap)

	assert.Equal(t, AxisCategory, BuildXAxis(schema.TypeInteger).Type)

	y := BuildYAxis(false)
	assert.Equal(t, AxisValue, y.Type)
	assert.Nil(t, y.Min)
	assert.Equal(t, "1.2K", y.AxisLabel.Formatter(1234))
	assert.False(t, *y.AxisLine.OnZero)

	n := BuildYAxis(true)
	assert.Equal(t, 0.0, *n.Min)
	assert.Equal(t, 100.0, *n.Max)

	right := measure("b")
	right.Align = AlignRight
	assert.Len(t, BuildYAxes(YAxisConfig{Series: []Series{measure("a")}}, false), 1)
	assert.Len(t, BuildYAxes(YAxisConfig{Series: []Series{measure("a"), right}}, false), 2)
}
