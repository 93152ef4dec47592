package schema

import (
	"fmt"
	"strings"
)

// ============================================================================
// SCHEMA — Typed columns and rows of an executed query result
// ============================================================================
// Supplied by the query engine (or a loader in helpers/). Columns carry a
// declared ColumnDataType; rows map column name → scalar value.
// Neither is mutated by the engine.
// ============================================================================

// ColumnDataType is the declared data type of a result column.
type ColumnDataType string

const (
	TypeString   ColumnDataType = "String"
	TypeText     ColumnDataType = "Text"
	TypeInteger  ColumnDataType = "Integer"
	TypeDecimal  ColumnDataType = "Decimal"
	TypeDate     ColumnDataType = "Date"
	TypeDatetime ColumnDataType = "Datetime"
	TypeTime     ColumnDataType = "Time"
	TypeJSON     ColumnDataType = "JSON"
	TypeAuto     ColumnDataType = "Auto"
)

// AllTypes lists every declared data type in a stable order.
var AllTypes = []ColumnDataType{
	TypeString, TypeText, TypeInteger, TypeDecimal,
	TypeDate, TypeDatetime, TypeTime, TypeJSON, TypeAuto,
}

// ParseColumnDataType matches s case-insensitively against the known types.
// Unknown names are returned verbatim so they classify to the empty role set.
func ParseColumnDataType(s string) ColumnDataType {
	s = strings.TrimSpace(s)
	for _, t := range AllTypes {
		if strings.EqualFold(string(t), s) {
			return t
		}
	}
	return ColumnDataType(s)
}

// UnmarshalText accepts "decimal", "DECIMAL" and "Decimal" alike.
func (t *ColumnDataType) UnmarshalText(b []byte) error {
	*t = ParseColumnDataType(string(b))
	return nil
}

// FromDatabaseType maps a driver type name (sql.ColumnType.DatabaseTypeName)
// onto a ColumnDataType.
func FromDatabaseType(name string) ColumnDataType {
	n := strings.ToUpper(strings.TrimSpace(name))
	if i := strings.IndexByte(n, '('); i >= 0 {
		n = n[:i]
	}
	switch n {
	case "INT", "INTEGER", "INT2", "INT4", "INT8", "SMALLINT", "BIGINT", "TINYINT", "MEDIUMINT", "SERIAL", "BIGSERIAL":
		return TypeInteger
	case "DECIMAL", "NUMERIC", "REAL", "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE", "DOUBLE PRECISION", "MONEY":
		return TypeDecimal
	case "DATE":
		return TypeDate
	case "DATETIME", "TIMESTAMP", "TIMESTAMPTZ", "TIMESTAMP WITH TIME ZONE", "TIMESTAMP WITHOUT TIME ZONE":
		return TypeDatetime
	case "TIME", "TIMETZ":
		return TypeTime
	case "TEXT", "MEDIUMTEXT", "LONGTEXT", "CLOB":
		return TypeText
	case "JSON", "JSONB":
		return TypeJSON
	case "":
		return TypeAuto
	default:
		return TypeString
	}
}

// Column is a named, typed result column.
type Column struct {
	Name string         `json:"name" yaml:"name"`
	Type ColumnDataType `json:"type" yaml:"type"`
}

// Row maps column name to a scalar value (string, number, or date-like).
type Row map[string]any

// Result is an executed query result.
type Result struct {
	Columns []Column `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
}

// Column looks up a column by name.
func (r Result) Column(name string) (Column, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnsWith returns the columns whose classification includes every role in want.
func (r Result) ColumnsWith(want Roles) []Column {
	var out []Column
	for _, c := range r.Columns {
		if Classify(c.Type).Has(want) {
			out = append(out, c)
		}
	}
	return out
}

// ColumnNames returns the column names in declared order.
func (r Result) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate reports rows that reference columns missing from Columns.
func (r Result) Validate() error {
	known := make(map[string]bool, len(r.Columns))
	for _, c := range r.Columns {
		known[c.Name] = true
	}
	for i, row := range r.Rows {
		for k := range row {
			if !known[k] {
				return fmt.Errorf("row %d: unknown column %q", i, k)
			}
		}
	}
	return nil
}
