package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// HTML PREVIEW — ChartSpec → standalone go-echarts page
// ============================================================================
// The preview is for eyeballing a spec from the CLI. It carries the data,
// colors, axes and series flags; formatter callbacks stay on the Go side.
// ============================================================================

// Options controls the preview page.
type Options struct {
	Title  string
	Width  string
	Height string
}

func (o Options) withDefaults() Options {
	if o.Width == "" {
		o.Width = "100%"
	}
	if o.Height == "" {
		o.Height = "500px"
	}
	if o.Title == "" {
		o.Title = "chartkit preview"
	}
	return o
}

// Renderer is implemented by every go-echarts chart.
type Renderer interface {
	Render(w io.Writer) error
}

// Chart converts spec into a go-echarts chart.
func Chart(spec *engine.ChartSpec, o Options) (Renderer, error) {
	o = o.withDefaults()
	switch spec.Type {
	case engine.ChartLine:
		return lineChart(spec, o), nil
	case engine.ChartBar:
		return barChart(spec, o), nil
	case engine.ChartDonut:
		return pieChart(spec, o), nil
	default:
		return nil, fmt.Errorf("preview %q: %w", spec.Type, engine.ErrUnsupportedChartType)
	}
}

// Render writes spec as an HTML page.
func Render(w io.Writer, spec *engine.ChartSpec, o Options) error {
	chart, err := Chart(spec, o)
	if err != nil {
		return err
	}
	return chart.Render(w)
}

// ============================================================================
// GLOBAL OPTIONS
// ============================================================================

func globalOpts(spec *engine.ChartSpec, o Options) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     o.Width,
			Height:    o.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithColorsOpts(opts.Colors(spec.Color)),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: spec.Tooltip.Trigger,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(spec.Legend.Show),
			Type:   spec.Legend.Type,
			Orient: spec.Legend.Orient,
			Bottom: spec.Legend.Bottom,
		}),
	}
}

func axisOpts(spec *engine.ChartSpec) []charts.GlobalOpts {
	var out []charts.GlobalOpts
	if spec.XAxis != nil {
		out = append(out, charts.WithXAxisOpts(opts.XAxis{
			Type: spec.XAxis.Type,
			Show: opts.Bool(spec.XAxis.Show),
		}))
	}
	if len(spec.YAxis) > 0 {
		out = append(out, charts.WithYAxisOpts(yAxis(spec.YAxis[0])))
	}
	return out
}

func yAxis(a engine.Axis) opts.YAxis {
	y := opts.YAxis{
		Type: a.Type,
		Show: opts.Bool(a.Show),
	}
	if a.Min != nil {
		y.Min = *a.Min
	}
	if a.Max != nil {
		y.Max = *a.Max
	}
	return y
}

// categories returns the distinct x values of the first series, in order.
func categories(spec *engine.ChartSpec) []string {
	if spec.XAxis == nil || spec.XAxis.Type != engine.AxisCategory || len(spec.Series) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, p := range spec.Series[0].Data {
		k := schema.Key(p.X())
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func pair(p engine.Point) []any {
	return []any{schema.Scalar(p.X()), schema.Scalar(p.Y())}
}

func seriesStyle(s engine.SeriesSpec) []charts.SeriesOpts {
	var out []charts.SeriesOpts
	if s.ItemStyle != nil {
		out = append(out, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.ItemStyle.Color}))
	}
	if s.Label != nil && s.Label.Show {
		out = append(out, charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: s.Label.Position,
		}))
	}
	return out
}

// ============================================================================
// CHART TYPES
// ============================================================================

func lineChart(spec *engine.ChartSpec, o Options) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(globalOpts(spec, o), axisOpts(spec)...)...)
	if len(spec.YAxis) > 1 {
		line.ExtendYAxis(yAxis(spec.YAxis[1]))
	}
	if cats := categories(spec); cats != nil {
		line.SetXAxis(cats)
	}

	for _, s := range spec.Series {
		data := make([]opts.LineData, len(s.Data))
		for i, p := range s.Data {
			data[i] = opts.LineData{Value: pair(p)}
		}

		seriesOpts := append(seriesStyle(s), charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(s.Smooth > 0),
			ShowSymbol: opts.Bool(s.ShowSymbol != nil && *s.ShowSymbol),
			YAxisIndex: s.YAxisIndex,
		}))
		if s.AreaStyle != nil {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{
				Opacity: opts.Float(float32(s.AreaStyle.Opacity)),
			}))
		}
		line.AddSeries(s.Name, data, seriesOpts...)
	}
	return line
}

func barChart(spec *engine.ChartSpec, o Options) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOpts(spec, o), axisOpts(spec)...)...)
	if len(spec.YAxis) > 1 {
		bar.ExtendYAxis(yAxis(spec.YAxis[1]))
	}
	if cats := categories(spec); cats != nil {
		bar.SetXAxis(cats)
	}

	for _, s := range spec.Series {
		data := make([]opts.BarData, len(s.Data))
		for i, p := range s.Data {
			data[i] = opts.BarData{Value: pair(p)}
		}

		seriesOpts := append(seriesStyle(s), charts.WithBarChartOpts(opts.BarChart{
			Stack:      s.Stack,
			YAxisIndex: s.YAxisIndex,
		}))
		bar.AddSeries(s.Name, data, seriesOpts...)
	}
	return bar
}

func pieChart(spec *engine.ChartSpec, o Options) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(globalOpts(spec, o)...)

	var data []opts.PieData
	if spec.Dataset != nil {
		data = make([]opts.PieData, len(spec.Dataset.Source))
		for i, sl := range spec.Dataset.Source {
			data[i] = opts.PieData{Name: sl.Label, Value: sl.Value}
		}
	}

	var radius, center []string
	if len(spec.Series) > 0 {
		radius, center = spec.Series[0].Radius, spec.Series[0].Center
	}
	pie.AddSeries("", data, charts.WithPieChartOpts(opts.PieChart{
		Radius: radius,
		Center: center,
	}))
	return pie
}
