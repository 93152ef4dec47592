package query

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"
)

// ============================================================================
// QUERY — Operation sequence handed to the query engine
// ============================================================================
// A Query is an ordered list of operations (source → filters → summarize →
// order/limit). chartkit never runs one; it only clones, truncates and
// extends them (drill-down) and reads granularity off the summarize step.
// ============================================================================

// OperationType names a step in the operation sequence.
type OperationType string

const (
	OpSource      OperationType = "source"
	OpSelect      OperationType = "select"
	OpFilterGroup OperationType = "filter_group"
	OpSummarize   OperationType = "summarize"
	OpOrderBy     OperationType = "order_by"
	OpLimit       OperationType = "limit"
)

// Operation is one step. Only the field matching Type is populated.
type Operation struct {
	Type OperationType `json:"type" yaml:"type"`

	Table       string       `json:"table,omitempty" yaml:"table,omitempty"`
	Columns     []string     `json:"columns,omitempty" yaml:"columns,omitempty"`
	FilterGroup *FilterGroup `json:"filter_group,omitempty" yaml:"filter_group,omitempty"`
	Summarize   *Summarize   `json:"summarize,omitempty" yaml:"summarize,omitempty"`
	OrderBy     *OrderBy     `json:"order_by,omitempty" yaml:"order_by,omitempty"`
	Limit       int          `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Summarize groups rows by dimensions and aggregates measures.
type Summarize struct {
	Measures   []Measure   `json:"measures" yaml:"measures"`
	Dimensions []Dimension `json:"dimensions" yaml:"dimensions"`
}

// Measure is an aggregated column.
type Measure struct {
	MeasureName string `json:"measure_name" yaml:"measure_name"`
	ColumnName  string `json:"column_name,omitempty" yaml:"column_name,omitempty"`
	Aggregation string `json:"aggregation,omitempty" yaml:"aggregation,omitempty"`
}

// Dimension is a grouping column, optionally bucketed by Granularity.
type Dimension struct {
	ColumnName  string      `json:"column_name" yaml:"column_name"`
	DataType    string      `json:"data_type,omitempty" yaml:"data_type,omitempty"`
	Granularity Granularity `json:"granularity,omitempty" yaml:"granularity,omitempty"`
}

// OrderBy sorts the result.
type OrderBy struct {
	Column    string `json:"column" yaml:"column"`
	Direction string `json:"direction" yaml:"direction"`
}

// Query is a named operation sequence.
type Query struct {
	Name        string      `json:"name" yaml:"name"`
	Operations  []Operation `json:"operations" yaml:"operations"`
	AutoExecute bool        `json:"auto_execute" yaml:"auto_execute"`
}

// New creates an auto-executing query with a unique name.
func New(ops ...Operation) *Query {
	return &Query{
		Name:        UniqueName(),
		Operations:  ops,
		AutoExecute: true,
	}
}

// UniqueName returns a fresh query name.
func UniqueName() string {
	return "query_" + uuid.NewString()
}

// CloneOperations deep-copies an operation sequence.
func CloneOperations(ops []Operation) ([]Operation, error) {
	if ops == nil {
		return []Operation{}, nil
	}
	var out []Operation
	if err := deepcopy.Copy(&out, ops); err != nil {
		return nil, fmt.Errorf("clone operations: %w", err)
	}
	return out, nil
}

// SetOperations replaces the sequence with a deep copy of ops.
func (q *Query) SetOperations(ops []Operation) error {
	cloned, err := CloneOperations(ops)
	if err != nil {
		return err
	}
	q.Operations = cloned
	return nil
}

// IndexOf returns the position of the first operation of type t, or -1.
func (q *Query) IndexOf(t OperationType) int {
	for i, op := range q.Operations {
		if op.Type == t {
			return i
		}
	}
	return -1
}

// TruncateAt drops the first operation of type t and everything after it.
// A sequence without t is left unchanged.
func (q *Query) TruncateAt(t OperationType) {
	if i := q.IndexOf(t); i >= 0 {
		q.Operations = q.Operations[:i]
	}
}

// AddFilterGroup appends a filter_group operation.
func (q *Query) AddFilterGroup(g FilterGroup) {
	q.Operations = append(q.Operations, Operation{
		Type:        OpFilterGroup,
		FilterGroup: &g,
	})
}

// Granularity reports the bucketing unit the summarize step applies to column.
func (q *Query) Granularity(column string) (Granularity, bool) {
	i := q.IndexOf(OpSummarize)
	if i < 0 || q.Operations[i].Summarize == nil {
		return "", false
	}
	for _, d := range q.Operations[i].Summarize.Dimensions {
		if d.ColumnName == column && d.Granularity != "" {
			return d.Granularity, true
		}
	}
	return "", false
}
