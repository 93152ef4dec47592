package engine

// ============================================================================
// SHARED STYLE — Grid, legend, tooltip and series decorations
// ============================================================================

const (
	animationDuration = 700
	labelFontSize     = 11
	barMaxWidth       = 60
	lineSmoothness    = 0.4
	areaOpacity       = 0.2
	labelPrecision    = 1
)

func newGrid(showLegend bool) *Grid {
	bottom := 22
	if showLegend {
		bottom = 36
	}
	return &Grid{
		Top:          18,
		Left:         30,
		Right:        30,
		Bottom:       bottom,
		ContainLabel: true,
	}
}

func newLegend(show bool) Legend {
	return Legend{
		Show:                  show,
		Icon:                  "circle",
		Type:                  "scroll",
		Orient:                "horizontal",
		Bottom:                "bottom",
		ItemGap:               16,
		Padding:               [2]int{10, 30},
		TextStyle:             TextStyle{Padding: [4]int{0, 0, 0, -4}},
		PageIconSize:          10,
		PageIconColor:         "#64748B",
		PageIconInactiveColor: "#C0CCDA",
		PageFormatter:         "{current}",
		PageButtonItemGap:     2,
	}
}

func newTooltip(trigger string, f TooltipFormatter) Tooltip {
	f.Trigger = trigger
	return Tooltip{
		Trigger:      trigger,
		Confine:      true,
		AppendToBody: false,
		Formatter:    f,
	}
}

// dataLabel places labels on top of the last series and inside the rest.
func dataLabel(show bool, idx, count int) *SeriesLabel {
	position := "inside"
	if idx == count-1 {
		position = "top"
	}
	return &SeriesLabel{
		Show:      show,
		Position:  position,
		FontSize:  labelFontSize,
		Formatter: CompactFormatter(labelPrecision),
	}
}

func areaStyle(color string) *AreaStyle {
	return &AreaStyle{
		Color: LinearGradient{
			Type: "linear",
			Y2:   1,
			ColorStops: []ColorStop{
				{Offset: 0, Color: color},
				{Offset: 1, Color: "#fff"},
			},
		},
		Opacity: areaOpacity,
	}
}

func axisIndex(s Series) int {
	if s.Align == AlignRight {
		return 1
	}
	return 0
}
