package schema

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================================
// AUTO-DISCOVERY — Raw text cells → typed Result
// ============================================================================
// CSV and XLSX exports carry no declared types. Each column is sampled and
// assigned a ColumnDataType, then every cell is parsed into a Go scalar.
//
// Detection per column:
//   1. Drop null tokens ("", "null", "N/A", ...)
//   2. ≥80% parse as dates → Date / Datetime / Time
//   3. ≥80% parse as numbers → Integer (no fractional part) / Decimal
//   4. Otherwise String, or Text when values are long-form
// ============================================================================

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	SampleSize int // Max rows to inspect for typing (0 = all). Default: 1000
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		SampleSize: 1000,
	}
}

// textThreshold is the value length past which a string column is Text.
const textThreshold = 255

// DiscoverFromCSV reads CSV bytes (header row first) into a typed Result.
func DiscoverFromCSV(data []byte, opts ...DiscoverOptions) (*Result, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("CSV has no columns")
	}

	var records [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		records = append(records, row)
	}

	return DiscoverFromRecords(headers, records, opts...)
}

// DiscoverFromRecords types raw text cells and converts them into rows.
func DiscoverFromRecords(headers []string, records [][]string, opts ...DiscoverOptions) (*Result, error) {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("no columns")
	}

	sample := records
	if opt.SampleSize > 0 && len(sample) > opt.SampleSize {
		sample = sample[:opt.SampleSize]
	}

	result := &Result{Columns: make([]Column, len(headers))}
	for i, h := range headers {
		result.Columns[i] = Column{
			Name: strings.TrimSpace(h),
			Type: DetectType(columnValues(sample, i)),
		}
	}

	result.Rows = make([]Row, 0, len(records))
	for _, rec := range records {
		row := make(Row, len(result.Columns))
		for i, col := range result.Columns {
			var raw string
			if i < len(rec) {
				raw = rec[i]
			}
			row[col.Name] = ParseValue(raw, col.Type)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// columnValues collects the non-null values of column index.
func columnValues(records [][]string, index int) []string {
	values := make([]string, 0, len(records))
	for _, rec := range records {
		if index >= len(rec) {
			continue
		}
		if v := strings.TrimSpace(rec[index]); !isNull(v) {
			values = append(values, v)
		}
	}
	return values
}

// DetectType inspects values to determine a column type.
// Requires 80%+ of non-null values to match for date/number.
func DetectType(values []string) ColumnDataType {
	if len(values) == 0 {
		return TypeString
	}

	numCount, dateCount := 0, 0
	hasFraction, hasClock, clockOnly := false, false, true
	longest := 0

	for _, v := range values {
		if len(v) > longest {
			longest = len(v)
		}
		if isNumeric(v) {
			numCount++
			if strings.ContainsAny(v, ".eE") {
				hasFraction = true
			}
			continue
		}
		if isDate(v) {
			dateCount++
			if strings.Contains(v, ":") {
				hasClock = true
			}
			if strings.ContainsAny(v, "-/ ") || len(v) == 4 {
				clockOnly = false
			}
		}
	}

	threshold := int(float64(len(values)) * 0.8)
	if threshold == 0 {
		threshold = 1
	}

	switch {
	case dateCount >= threshold:
		if clockOnly {
			return TypeTime
		}
		if hasClock {
			return TypeDatetime
		}
		return TypeDate
	case numCount >= threshold:
		if hasFraction {
			return TypeDecimal
		}
		return TypeInteger
	case longest > textThreshold:
		return TypeText
	default:
		return TypeString
	}
}

// ParseValue converts a raw cell into the scalar matching t.
// Null tokens become nil; unparseable numbers keep their text.
func ParseValue(raw string, t ColumnDataType) any {
	v := strings.TrimSpace(raw)
	if isNull(v) {
		return nil
	}
	switch t {
	case TypeInteger:
		if n, err := strconv.ParseInt(cleanNumeric(v), 10, 64); err == nil {
			return n
		}
		if f, ok := ToFloat(cleanNumeric(v)); ok {
			return f
		}
	case TypeDecimal:
		if f, ok := ToFloat(cleanNumeric(v)); ok {
			return f
		}
	}
	return v
}

func isNull(v string) bool {
	switch v {
	case "", "null", "NULL", "N/A", "n/a":
		return true
	}
	return false
}

// cleanNumeric strips grouping commas and common currency prefixes.
func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "") // handle "1,234.56"
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimPrefix(s, "£")
	if neg {
		return "-" + s
	}
	return s
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(cleanNumeric(s), 64)
	return err == nil
}

func isDate(s string) bool {
	_, ok := parseTime(s)
	return ok
}
