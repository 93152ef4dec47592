package engine

import (
	"encoding/json"
)

// ============================================================================
// RENDERING SPEC — Declarative output handed to the chart renderer
// ============================================================================
// JSON field names follow the renderer's option names. Formatter callbacks
// are Go closures built fresh per chart and are not serialized.
// ============================================================================

// Axis types.
const (
	AxisTime     = "time"
	AxisCategory = "category"
	AxisValue    = "value"
)

// ChartSpec is a fully resolved chart.
type ChartSpec struct {
	Type              ChartType    `json:"-"`
	Animation         bool         `json:"animation"`
	AnimationDuration int          `json:"animationDuration"`
	Color             []string     `json:"color"`
	Grid              *Grid        `json:"grid,omitempty"`
	XAxis             *Axis        `json:"xAxis,omitempty"`
	YAxis             []Axis       `json:"yAxis,omitempty"`
	Dataset           *Dataset     `json:"dataset,omitempty"`
	Series            []SeriesSpec `json:"series"`
	Tooltip           Tooltip      `json:"tooltip"`
	Legend            Legend       `json:"legend"`
}

// Toggle is a {show} sub-option.
type Toggle struct {
	Show bool `json:"show"`
}

// AxisLine controls the axis line.
type AxisLine struct {
	Show   bool  `json:"show"`
	OnZero *bool `json:"onZero,omitempty"`
}

// AxisLabel controls tick labels.
type AxisLabel struct {
	Show        bool           `json:"show"`
	HideOverlap bool           `json:"hideOverlap"`
	Margin      int            `json:"margin"`
	Formatter   ValueFormatter `json:"-"`
}

// Axis is an x or y axis.
type Axis struct {
	Type        string     `json:"type"`
	Show        bool       `json:"show"`
	Z           int        `json:"z"`
	Scale       bool       `json:"scale"`
	AlignTicks  bool       `json:"alignTicks,omitempty"`
	BoundaryGap []string   `json:"boundaryGap"`
	SplitLine   Toggle     `json:"splitLine"`
	AxisLine    AxisLine   `json:"axisLine"`
	AxisTick    Toggle     `json:"axisTick"`
	AxisLabel   *AxisLabel `json:"axisLabel,omitempty"`
	Min         *float64   `json:"min,omitempty"`
	Max         *float64   `json:"max,omitempty"`
}

// Point is an [x, y] pair.
type Point [2]any

// X returns the x value.
func (p Point) X() any { return p[0] }

// Y returns the y value.
func (p Point) Y() any { return p[1] }

// Slice is one donut slice, serialized as [label, value].
type Slice struct {
	Label string
	Value float64
}

func (s Slice) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{s.Label, s.Value})
}

// Dataset carries donut slices.
type Dataset struct {
	Source []Slice `json:"source"`
}

// SeriesLabel controls data labels on points.
type SeriesLabel struct {
	Show      bool           `json:"show"`
	Position  string         `json:"position,omitempty"`
	FontSize  int            `json:"fontSize,omitempty"`
	Formatter ValueFormatter `json:"-"`
}

// LabelLayout controls label collision handling.
type LabelLayout struct {
	HideOverlap bool `json:"hideOverlap"`
}

// Emphasis controls hover highlighting.
type Emphasis struct {
	Focus     string `json:"focus,omitempty"`
	ScaleSize int    `json:"scaleSize,omitempty"`
}

// ItemStyle sets a flat color.
type ItemStyle struct {
	Color string `json:"color"`
}

// ColorStop is one stop of a gradient.
type ColorStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// LinearGradient is a gradient fill from (X,Y) to (X2,Y2).
type LinearGradient struct {
	Type       string      `json:"type"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	X2         float64     `json:"x2"`
	Y2         float64     `json:"y2"`
	ColorStops []ColorStop `json:"colorStops"`
}

// AreaStyle fills the area under a line.
type AreaStyle struct {
	Color   LinearGradient `json:"color"`
	Opacity float64        `json:"opacity"`
}

// SeriesSpec is one rendered series.
type SeriesSpec struct {
	Type           string       `json:"type"`
	Name           string       `json:"name,omitempty"`
	Data           []Point      `json:"data,omitempty"`
	YAxisIndex     int          `json:"yAxisIndex"`
	Stack          string       `json:"stack,omitempty"`
	Smooth         float64      `json:"smooth,omitempty"`
	SmoothMonotone string       `json:"smoothMonotone,omitempty"`
	ShowSymbol     *bool        `json:"showSymbol,omitempty"`
	BarMaxWidth    int          `json:"barMaxWidth,omitempty"`
	Label          *SeriesLabel `json:"label,omitempty"`
	LabelLayout    *LabelLayout `json:"labelLayout,omitempty"`
	LabelLine      *Toggle      `json:"labelLine,omitempty"`
	Emphasis       *Emphasis    `json:"emphasis,omitempty"`
	ItemStyle      *ItemStyle   `json:"itemStyle,omitempty"`
	AreaStyle      *AreaStyle   `json:"areaStyle,omitempty"`
	Center         []string     `json:"center,omitempty"`
	Radius         []string     `json:"radius,omitempty"`
}

// Grid positions the plot area.
type Grid struct {
	Top          int  `json:"top"`
	Left         int  `json:"left"`
	Right        int  `json:"right"`
	Bottom       int  `json:"bottom"`
	ContainLabel bool `json:"containLabel"`
}

// Legend is the paged, scrollable series legend.
type Legend struct {
	Show                  bool      `json:"show"`
	Icon                  string    `json:"icon"`
	Type                  string    `json:"type"`
	Orient                string    `json:"orient"`
	Bottom                string    `json:"bottom"`
	ItemGap               int       `json:"itemGap"`
	Padding               [2]int    `json:"padding"`
	TextStyle             TextStyle `json:"textStyle"`
	PageIconSize          int       `json:"pageIconSize"`
	PageIconColor         string    `json:"pageIconColor"`
	PageIconInactiveColor string    `json:"pageIconInactiveColor"`
	PageFormatter         string    `json:"pageFormatter"`
	PageButtonItemGap     int       `json:"pageButtonItemGap"`
}

// TextStyle pads legend text.
type TextStyle struct {
	Padding [4]int `json:"padding"`
}

// Tooltip is the hover tooltip.
type Tooltip struct {
	Trigger      string           `json:"trigger"`
	Confine      bool             `json:"confine"`
	AppendToBody bool             `json:"appendToBody"`
	Formatter    TooltipFormatter `json:"-"`
}
