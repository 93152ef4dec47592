package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// VALUE FORMATTERS — Axis ticks, data labels, tooltip values
// ============================================================================
// Axis ticks and data labels use the compact form ("1.2K"); tooltips use
// the locale's full form ("1,234.5"). Anything that is not a number is
// returned as its plain text.
// ============================================================================

// ValueFormatter renders one axis, label or tooltip value.
type ValueFormatter func(v any) string

// compactSuffix maps SI prefixes onto short-scale suffixes.
var compactSuffix = map[string]string{
	"k": "K",
	"M": "M",
	"G": "B",
	"T": "T",
}

var siScale = map[string]float64{
	"k": 1e3,
	"M": 1e6,
	"G": 1e9,
	"T": 1e12,
	"P": 1e15,
	"E": 1e18,
}

// ShortNumber renders v in compact notation with at most precision
// fraction digits: 1234 → "1.2K", 2500000 → "2.5M", 3e9 → "3B".
func ShortNumber(v any, precision int) string {
	f, ok := schema.ToFloat(v)
	if !ok {
		return schema.Key(v)
	}
	f = roundTo(f, precision)
	if math.Abs(f) < 1000 {
		return trimFloat(f)
	}

	value, prefix := humanize.ComputeSI(f)
	value = roundTo(value, precision)
	if math.Abs(value) >= 1000 {
		value, prefix = humanize.ComputeSI(value * siScale[prefix])
		value = roundTo(value, precision)
	}

	suffix, ok := compactSuffix[prefix]
	if !ok {
		suffix = prefix
	}
	return trimFloat(value) + suffix
}

// CompactFormatter returns a ShortNumber formatter with fixed precision.
func CompactFormatter(precision int) ValueFormatter {
	return func(v any) string {
		return ShortNumber(v, precision)
	}
}

// FormatNumber renders f with the printer's locale grouping. A precision of
// zero or less is guessed from the value (at most two fraction digits).
func FormatNumber(p *message.Printer, f float64, precision int) string {
	if precision <= 0 {
		precision = guessPrecision(f)
	}
	return p.Sprint(number.Decimal(f, number.MaxFractionDigits(precision)))
}

// NumberFormatter returns a locale formatter; non-numeric values pass through.
func NumberFormatter(p *message.Printer) ValueFormatter {
	return func(v any) string {
		f, ok := schema.ToFloat(v)
		if !ok {
			return schema.Key(v)
		}
		return FormatNumber(p, f, 0)
	}
}

func guessPrecision(f float64) int {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return min(len(s)-i-1, 2)
}

func roundTo(f float64, precision int) float64 {
	if precision < 0 {
		precision = 0
	}
	scale := math.Pow(10, float64(precision))
	return math.Round(f*scale) / scale
}

func trimFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
