package helpers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// CSV HELPER — Parses CSV data into a schema.Result
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, S3, Sheets).
// This helper converts the raw bytes into typed columns and rows.
// ============================================================================

// CSVOptions controls CSV parsing.
type CSVOptions struct {
	SnakeCaseHeaders bool // "Order Date" → "order_date"
	SampleSize       int  // rows inspected for type detection (0 = default)
}

// ParseCSV parses CSV bytes, detecting each column's type from its values.
func ParseCSV(data []byte, opts CSVOptions) (*schema.Result, error) {
	headers, records, err := readCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if opts.SnakeCaseHeaders {
		for i, h := range headers {
			headers[i] = toSnakeCase(strings.TrimSpace(h))
		}
	}

	discover := schema.DefaultDiscoverOptions()
	if opts.SampleSize > 0 {
		discover.SampleSize = opts.SampleSize
	}
	return schema.DiscoverFromRecords(headers, records, discover)
}

// ParseCSVTyped parses CSV bytes against declared columns. Headers are
// matched to columns by name (or snake_case name); unmatched headers are
// skipped and declared columns missing from the file read as nil.
func ParseCSVTyped(data []byte, columns []schema.Column) (*schema.Result, error) {
	headers, records, err := readCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	declared := make(map[string]schema.Column, len(columns))
	for _, c := range columns {
		declared[c.Name] = c
	}
	mapping := make([]*schema.Column, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if c, ok := declared[h]; ok {
			mapping[i] = &c
		} else if c, ok := declared[toSnakeCase(h)]; ok {
			mapping[i] = &c
		}
	}

	result := &schema.Result{
		Columns: append([]schema.Column(nil), columns...),
		Rows:    make([]schema.Row, 0, len(records)),
	}
	for _, rec := range records {
		row := make(schema.Row, len(columns))
		for _, c := range columns {
			row[c.Name] = nil
		}
		for i, val := range rec {
			if i >= len(mapping) || mapping[i] == nil {
				continue
			}
			row[mapping[i].Name] = schema.ParseValue(val, mapping[i].Type)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func readCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV headers: %w", err)
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
	return headers, records, nil
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
