package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/query"
	"github.com/spektr-org/chartkit/schema"
)

var sales = &schema.Result{
	Columns: []schema.Column{
		{Name: "region", Type: schema.TypeString},
		{Name: "revenue", Type: schema.TypeDecimal},
		{Name: "cost", Type: schema.TypeDecimal},
	},
	Rows: []schema.Row{
		{"region": "EU", "revenue": 120.0, "cost": 80.0},
		{"region": "US", "revenue": 90.0, "cost": 30.0},
	},
}

func salesConfig(t engine.ChartType) engine.ChartConfig {
	return engine.ChartConfig{
		ChartType: t,
		AxisChartConfig: engine.AxisChartConfig{
			XAxis: engine.Dimension{ColumnName: "region", DataType: schema.TypeString},
			YAxis: engine.YAxisConfig{Series: []engine.Series{
				{Measure: query.Measure{MeasureName: "revenue"}},
				{Measure: query.Measure{MeasureName: "cost"}, Align: engine.AlignRight},
			}},
		},
	}
}

func TestRender(t *testing.T) {
	for _, ct := range []engine.ChartType{engine.ChartLine, engine.ChartBar, engine.ChartDonut} {
		t.Run(string(ct), func(t *testing.T) {
			spec, err := engine.BuildChart(salesConfig(ct), sales)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Render(&buf, spec, Options{Title: "Sales"}))

			html := buf.String()
			assert.Contains(t, html, "<title>Sales</title>")
			assert.Contains(t, html, "echarts")
			assert.Contains(t, html, "EU")
		})
	}
}

func TestCategories(t *testing.T) {
	spec, err := engine.BuildChart(salesConfig(engine.ChartBar), sales)
	require.NoError(t, err)

	assert.Equal(t, []string{"EU", "US"}, categories(spec))
}

func TestRenderUnsupported(t *testing.T) {
	err := Render(&bytes.Buffer{}, &engine.ChartSpec{Type: engine.ChartTable}, Options{})
	assert.ErrorIs(t, err, engine.ErrUnsupportedChartType)
}
