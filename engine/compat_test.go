package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/spektr-org/chartkit/query"
)

func TestAdaptYAxisLegacyProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfN(rapid.StringMatching(`[a-z_]{0,8}`), 0, 10).Draw(t, "names")
		legacy := make(LegacySeriesList, len(names))
		for i, n := range names {
			legacy[i] = query.Measure{MeasureName: n, Aggregation: "sum"}
		}

		got := AdaptYAxis(legacy)

		if len(got.Series) != len(legacy) {
			t.Fatalf("%d series for %d measures", len(got.Series), len(legacy))
		}
		for i, s := range got.Series {
			if s != (Series{Measure: legacy[i]}) {
				t.Fatalf("series %d carries overrides: %+v", i, s)
			}
		}
	})
}

func TestAdaptYAxisCurrentUnchanged(t *testing.T) {
	current := YAxisConfig{
		Series:    []Series{{Measure: query.Measure{MeasureName: "sales"}, Smooth: ptr(true)}},
		Stack:     true,
		Normalize: true,
	}

	assert.Equal(t, current, AdaptYAxis(current))
}

func TestDecodeYAxisJSON(t *testing.T) {
	var legacy ChartConfig
	require.NoError(t, json.Unmarshal([]byte(`{
		"chart_type": "bar",
		"x_axis": {"column_name": "region", "data_type": "String"},
		"y_axis": [{"measure_name": "sales"}, {"measure_name": "cost"}]
	}`), &legacy))

	assert.Equal(t, ChartBar, legacy.ChartType)
	require.Len(t, legacy.YAxis.Series, 2)
	assert.Equal(t, "cost", legacy.YAxis.Series[1].Measure.MeasureName)
	assert.Nil(t, legacy.YAxis.Series[1].Smooth)

	var current ChartConfig
	require.NoError(t, json.Unmarshal([]byte(`{
		"x_axis": {"column_name": "day", "data_type": "Date"},
		"y_axis": {"series": [{"measure": {"measure_name": "sales"}, "align": "Right"}], "stack": true}
	}`), &current))

	assert.True(t, current.YAxis.Stack)
	assert.Equal(t, AlignRight, current.YAxis.Series[0].Align)
}

func TestDecodeYAxisYAML(t *testing.T) {
	var legacy ChartConfig
	require.NoError(t, yaml.Unmarshal([]byte(`
chart_type: line
x_axis:
  column_name: day
  data_type: Date
y_axis:
  - measure_name: sales
`), &legacy))

	assert.Equal(t, ChartLine, legacy.ChartType)
	assert.Equal(t, "day", legacy.XAxis.ColumnName)
	require.Len(t, legacy.YAxis.Series, 1)
	assert.Equal(t, "sales", legacy.YAxis.Series[0].Measure.MeasureName)

	var current ChartConfig
	require.NoError(t, yaml.Unmarshal([]byte(`
x_axis:
  column_name: day
y_axis:
  normalize: true
  series:
    - measure:
        measure_name: sales
      show_area: true
`), &current))

	assert.True(t, current.YAxis.Normalize)
	assert.True(t, *current.YAxis.Series[0].ShowArea)
}

func TestDecodeYAxisJSONInvalid(t *testing.T) {
	_, err := DecodeYAxisJSON([]byte(`[1, 2]`))
	assert.Error(t, err)
}
