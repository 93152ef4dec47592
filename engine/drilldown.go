package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/spektr-org/chartkit/query"
	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// DRILL-DOWN — Clicked aggregate → query for its underlying rows
// ============================================================================
// A clicked point is an aggregate. Its rows are recovered by replaying the
// source operations up to the summarize step and filtering on the clicked
// row's text values and date bucket. A date bucket is [row[i], row[i+1]);
// the last row gets an open upper bound.
// ============================================================================

// RowIndex returns the position of the first row in rows whose values equal
// row's for every column, or -1.
func RowIndex(columns []schema.Column, rows []schema.Row, row schema.Row) int {
	for i, r := range rows {
		if sameRow(columns, r, row) {
			return i
		}
	}
	return -1
}

func sameRow(columns []schema.Column, a, b schema.Row) bool {
	for _, c := range columns {
		if schema.Key(a[c.Name]) != schema.Key(b[c.Name]) {
			return false
		}
	}
	return true
}

// BuildDrillDown returns a query selecting the rows behind a clicked value.
// It returns nil when col is not numeric. res is the source query's result
// and row is the clicked row; a row not found in res is treated as the last.
func BuildDrillDown(src *query.Query, res *schema.Result, row schema.Row, col schema.Column, opts ...Option) (*query.Query, error) {
	if !col.IsNumber() {
		return nil, nil
	}
	i := RowIndex(res.Columns, res.Rows, row)
	if i < 0 {
		return drillDown(src, res.Columns, row, nil, opts)
	}
	return BuildDrillDownAt(src, res, i, col, opts...)
}

// BuildDrillDownAt is BuildDrillDown for the row at index i of res.
func BuildDrillDownAt(src *query.Query, res *schema.Result, i int, col schema.Column, opts ...Option) (*query.Query, error) {
	if !col.IsNumber() {
		return nil, nil
	}
	if i < 0 || i >= len(res.Rows) {
		return nil, fmt.Errorf("drill-down row %d of %d: %w", i, len(res.Rows), ErrRowOutOfRange)
	}
	var next schema.Row
	if i+1 < len(res.Rows) {
		next = res.Rows[i+1]
	}
	return drillDown(src, res.Columns, res.Rows[i], next, opts)
}

func drillDown(src *query.Query, columns []schema.Column, curr, next schema.Row, opts []Option) (*query.Query, error) {
	c := applyOptions(opts)

	filters := DrillDownFilters(columns, curr, next)

	var ops []query.Operation
	if src != nil {
		ops = src.Operations
	}
	q := query.New()
	q.AutoExecute = false
	if err := q.SetOperations(ops); err != nil {
		return nil, err
	}
	q.TruncateAt(query.OpSummarize)
	q.AddFilterGroup(query.FilterGroup{
		LogicalOperator: query.And,
		Filters:         filters,
	})

	c.Logger.WithFields(logrus.Fields{
		"query":      q.Name,
		"filters":    len(filters),
		"operations": len(q.Operations),
	}).Debug("built drill-down query")

	return q, nil
}

// DrillDownFilters builds the filters that select curr's bucket: equality on
// every text column, and a [curr, next) range on every date column. A nil
// next, or a next with no value for the column, leaves the range open.
func DrillDownFilters(columns []schema.Column, curr, next schema.Row) []query.FilterRule {
	var filters []query.FilterRule
	for _, c := range columns {
		if c.IsText() {
			filters = append(filters, query.FilterRule{
				Column:   query.Col(c.Name),
				Operator: query.OpEquals,
				Value:    schema.Scalar(curr[c.Name]),
			})
		}
	}
	for _, c := range columns {
		if !c.IsDate() {
			continue
		}
		filters = append(filters, query.FilterRule{
			Column:   query.Col(c.Name),
			Operator: query.OpGreaterOrEqual,
			Value:    schema.Scalar(curr[c.Name]),
		})
		if next == nil || next[c.Name] == nil {
			continue
		}
		filters = append(filters, query.FilterRule{
			Column:   query.Col(c.Name),
			Operator: query.OpLess,
			Value:    schema.Scalar(next[c.Name]),
		})
	}
	return filters
}
