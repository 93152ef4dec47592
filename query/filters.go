package query

import (
	"fmt"
	"strings"

	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// FILTERS — Filter rules, filter groups, in-memory evaluation
// ============================================================================
// The query engine evaluates filters against the source table. Matches/Apply
// evaluate the same predicates against already-materialized rows so a caller
// can check which rows a drill-down selects without a round trip.
// ============================================================================

// FilterOperator is a comparison in a filter rule.
type FilterOperator string

const (
	OpEquals         FilterOperator = "="
	OpNotEquals      FilterOperator = "!="
	OpGreater        FilterOperator = ">"
	OpGreaterOrEqual FilterOperator = ">="
	OpLess           FilterOperator = "<"
	OpLessOrEqual    FilterOperator = "<="
	OpIn             FilterOperator = "in"
	OpNotIn          FilterOperator = "not_in"
	OpContains       FilterOperator = "contains"
	OpIsSet          FilterOperator = "is_set"
	OpIsNotSet       FilterOperator = "is_not_set"
)

// LogicalOperator joins the rules of a filter group.
type LogicalOperator string

const (
	And LogicalOperator = "And"
	Or  LogicalOperator = "Or"
)

// ColumnRef points at a source column.
type ColumnRef struct {
	Type       string `json:"type" yaml:"type"`
	ColumnName string `json:"column_name" yaml:"column_name"`
}

// Col builds a reference to column name.
func Col(name string) ColumnRef {
	return ColumnRef{Type: "column", ColumnName: name}
}

// FilterRule compares one column against a value.
type FilterRule struct {
	Column   ColumnRef      `json:"column" yaml:"column"`
	Operator FilterOperator `json:"operator" yaml:"operator"`
	Value    any            `json:"value,omitempty" yaml:"value,omitempty"`
}

// FilterGroup combines rules with one logical operator.
type FilterGroup struct {
	LogicalOperator LogicalOperator `json:"logical_operator" yaml:"logical_operator"`
	Filters         []FilterRule    `json:"filters" yaml:"filters"`
}

func (f FilterRule) String() string {
	return fmt.Sprintf("%s %s %v", f.Column.ColumnName, f.Operator, f.Value)
}

// Matches evaluates the rule against a row.
func (f FilterRule) Matches(row schema.Row) bool {
	v, present := row[f.Column.ColumnName]
	switch f.Operator {
	case OpIsSet:
		return present && v != nil && schema.Key(v) != ""
	case OpIsNotSet:
		return !present || v == nil || schema.Key(v) == ""
	case OpIn, OpNotIn:
		in := false
		for _, candidate := range toList(f.Value) {
			if compare(v, candidate) == 0 {
				in = true
				break
			}
		}
		return in == (f.Operator == OpIn)
	case OpContains:
		return strings.Contains(strings.ToLower(schema.Key(v)), strings.ToLower(schema.Key(f.Value)))
	}

	if v == nil {
		return false
	}
	c := compare(v, f.Value)
	switch f.Operator {
	case OpEquals:
		return c == 0
	case OpNotEquals:
		return c != 0
	case OpGreater:
		return c > 0
	case OpGreaterOrEqual:
		return c >= 0
	case OpLess:
		return c < 0
	case OpLessOrEqual:
		return c <= 0
	default:
		return false
	}
}

// Matches evaluates the group. An empty group matches every row.
func (g FilterGroup) Matches(row schema.Row) bool {
	if len(g.Filters) == 0 {
		return true
	}
	if g.LogicalOperator == Or {
		for _, f := range g.Filters {
			if f.Matches(row) {
				return true
			}
		}
		return false
	}
	for _, f := range g.Filters {
		if !f.Matches(row) {
			return false
		}
	}
	return true
}

// Apply returns the rows matching the group in their input order.
func (g FilterGroup) Apply(rows []schema.Row) []schema.Row {
	out := make([]schema.Row, 0, len(rows))
	for _, r := range rows {
		if g.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// compare orders a and b numerically, chronologically, or as text,
// in that order of preference.
func compare(a, b any) int {
	if x, ok := schema.ToFloat(a); ok {
		if y, ok := schema.ToFloat(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	if x, ok := schema.ToTime(a); ok {
		if y, ok := schema.ToTime(b); ok {
			return x.Compare(y)
		}
	}
	return strings.Compare(schema.Key(a), schema.Key(b))
}

func toList(v any) []any {
	switch l := v.(type) {
	case []any:
		return l
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}
