package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// VALUE COERCION — Reading scalars out of heterogeneous rows
// ============================================================================
// Drivers and loaders hand back int64, float64, []byte, decimal strings,
// time.Time or plain strings. Chart code needs a number, a date, or a stable
// grouping key; these helpers give one of each without mutating the row.
// ============================================================================

// dateFormats are tried in order when a string must be read as a date.
var dateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"01/02/2006",
	"02/01/2006",
	"Jan-2006",
	"January 2006",
	"January, 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2006",
	"15:04:05",
}

// ToFloat reads v as a number. Strings and byte slices are parsed as decimals
// so "1,234.50" and driver-returned NUMERIC bytes both work.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case decimal.Decimal:
		return n.InexactFloat64(), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case []byte:
		return parseDecimal(string(n))
	case string:
		return parseDecimal(n)
	default:
		return 0, false
	}
}

// Float is ToFloat with non-numeric values read as zero.
func Float(v any) float64 {
	f, _ := ToFloat(v)
	return f
}

func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// ToTime reads v as a point in time.
func ToTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case []byte:
		return parseTime(string(t))
	case string:
		return parseTime(t)
	default:
		return time.Time{}, false
	}
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Key renders v as a grouping key. Equal values always yield equal keys.
func Key(v any) string {
	switch k := v.(type) {
	case nil:
		return ""
	case string:
		return k
	case []byte:
		return string(k)
	case time.Time:
		return k.Format(time.RFC3339Nano)
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(k), 'f', -1, 32)
	case decimal.Decimal:
		return k.String()
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(k)
	}
}

// Scalar normalizes a value for output: byte slices become strings and
// times are rendered RFC 3339. Everything else passes through.
func Scalar(v any) any {
	switch k := v.(type) {
	case []byte:
		return string(k)
	case time.Time:
		return k.Format(time.RFC3339)
	case decimal.Decimal:
		return k.InexactFloat64()
	default:
		return v
	}
}
