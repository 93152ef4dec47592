package engine

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/message"

	"github.com/spektr-org/chartkit/query"
	"github.com/spektr-org/chartkit/schema"
)

// TooltipParam is one hovered data point as the renderer reports it.
type TooltipParam struct {
	Name       string `json:"name"`
	SeriesName string `json:"seriesName"`
	Marker     string `json:"marker"`
	Value      Point  `json:"value"`
}

// TooltipFormatter turns hovered points into tooltip HTML. Format picks the
// item form (one donut slice) or the axis form (every series at one x) from
// Trigger.
type TooltipFormatter struct {
	Trigger     string
	XAxisIsDate bool
	Granularity query.Granularity
	Printer     *message.Printer
}

func newTooltipFormatter(xAxisIsDate bool, g query.Granularity, p *message.Printer) TooltipFormatter {
	return TooltipFormatter{XAxisIsDate: xAxisIsDate, Granularity: g, Printer: p}
}

// Format renders the hovered points for the formatter's trigger. An
// item-triggered tooltip shows only the first point.
func (f TooltipFormatter) Format(params []TooltipParam) string {
	if f.Trigger == "item" {
		if len(params) == 0 {
			return ""
		}
		return f.FormatItem(params[0])
	}
	return f.FormatAxis(params)
}

// FormatItem renders an item-triggered tooltip (donut slice).
func (f TooltipFormatter) FormatItem(p TooltipParam) string {
	return fmt.Sprintf(
		`<div class="flex items-center justify-between gap-5"><div>%s</div><div class="font-bold">%s</div></div>`,
		html.EscapeString(p.Name), html.EscapeString(f.formatY(p.Value.Y())),
	)
}

// FormatAxis renders an axis-triggered tooltip. The x label is printed once,
// above the first series row.
func (f TooltipFormatter) FormatAxis(params []TooltipParam) string {
	var b strings.Builder
	for i, p := range params {
		b.WriteString(`<div class="flex flex-col">`)
		if i == 0 {
			fmt.Fprintf(&b, `<div>%s</div>`, html.EscapeString(f.formatX(p.Value.X())))
		}
		fmt.Fprintf(&b,
			`<div class="flex items-center justify-between gap-5"><div class="flex gap-1 items-center">%s<div>%s</div></div><div class="font-bold">%s</div></div>`,
			p.Marker, html.EscapeString(p.SeriesName), html.EscapeString(f.formatY(p.Value.Y())),
		)
		b.WriteString(`</div>`)
	}
	return b.String()
}

func (f TooltipFormatter) formatX(v any) string {
	if f.XAxisIsDate && f.Granularity != "" {
		return query.FormatDate(v, f.Granularity)
	}
	return schema.Key(v)
}

func (f TooltipFormatter) formatY(v any) string {
	p := f.Printer
	if p == nil {
		p = message.NewPrinter(defaultLocale)
	}
	return NumberFormatter(p)(v)
}
