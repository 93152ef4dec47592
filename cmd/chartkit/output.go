package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// OUTPUT
// ============================================================================

// output opens the --out file, or stdout when unset.
func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// emit writes v in the selected --format. csv is only meaningful for specs;
// anything else falls back to JSON.
func emit(v any) error {
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if spec, ok := v.(*engine.ChartSpec); ok && format == "csv" {
		err = writeSpecCSV(w, spec)
	} else {
		err = writeJSON(w, v, format)
	}
	if cerr := closeFn(); err == nil {
		err = cerr
	}
	return err
}

func writeJSON(w io.Writer, v any, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// ============================================================================
// CSV OUTPUT — Spec → Sheets-ready CSV
// ============================================================================

// writeSpecCSV flattens a spec: donuts become label/value pairs, axis charts
// one x column plus one column per series.
func writeSpecCSV(w io.Writer, spec *engine.ChartSpec) error {
	cw := csv.NewWriter(w)

	if spec.Dataset != nil {
		cw.Write([]string{"Label", "Value"})
		for _, s := range spec.Dataset.Source {
			cw.Write([]string{s.Label, fmtNum(s.Value)})
		}
		cw.Flush()
		return cw.Error()
	}

	headers := []string{"Label"}
	for _, s := range spec.Series {
		headers = append(headers, s.Name)
	}
	cw.Write(headers)

	// Series may have different x coverage; rows follow first appearance.
	var order []string
	cells := map[string][]string{}
	for i, s := range spec.Series {
		for _, p := range s.Data {
			key := schema.Key(p.X())
			row, ok := cells[key]
			if !ok {
				row = make([]string, len(spec.Series))
				cells[key] = row
				order = append(order, key)
			}
			row[i] = fmtNum(schema.Float(p.Y()))
		}
	}
	for _, key := range order {
		cw.Write(append([]string{key}, cells[key]...))
	}

	cw.Flush()
	return cw.Error()
}

// ============================================================================
// HELPERS
// ============================================================================

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
