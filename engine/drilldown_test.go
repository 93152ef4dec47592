package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/spektr-org/chartkit/query"
	"github.com/spektr-org/chartkit/schema"
)

func sourceQuery() *query.Query {
	return query.New(
		query.Operation{Type: query.OpSource, Table: "orders"},
		query.Operation{Type: query.OpFilterGroup, FilterGroup: &query.FilterGroup{
			LogicalOperator: query.And,
			Filters:         []query.FilterRule{{Column: query.Col("status"), Operator: query.OpEquals, Value: "paid"}},
		}},
		query.Operation{Type: query.OpSummarize, Summarize: &query.Summarize{
			Measures:   []query.Measure{{MeasureName: "sales", ColumnName: "amount", Aggregation: "sum"}},
			Dimensions: []query.Dimension{{ColumnName: "region"}, {ColumnName: "month", Granularity: query.GranularityMonth}},
		}},
		query.Operation{Type: query.OpOrderBy, OrderBy: &query.OrderBy{Column: "month", Direction: "asc"}},
	)
}

var byRegionMonth = &schema.Result{
	Columns: []schema.Column{
		col("region", schema.TypeString),
		col("month", schema.TypeDate),
		col("sales", schema.TypeDecimal),
	},
	Rows: []schema.Row{
		{"region": "EU", "month": "2026-01-01", "sales": 10.0},
		{"region": "EU", "month": "2026-02-01", "sales": 12.0},
		{"region": "US", "month": "2026-03-01", "sales": 7.0},
	},
}

func TestBuildDrillDown(t *testing.T) {
	src := sourceQuery()

	q, err := BuildDrillDown(src, byRegionMonth, byRegionMonth.Rows[0], byRegionMonth.Columns[2])

	require.NoError(t, err)
	require.NotNil(t, q)
	assert.False(t, q.AutoExecute)
	assert.NotEqual(t, src.Name, q.Name)

	require.Len(t, q.Operations, 3, "source, existing filter, drill-down filter")
	assert.Equal(t, query.OpSource, q.Operations[0].Type)
	assert.Equal(t, query.OpFilterGroup, q.Operations[1].Type)

	group := q.Operations[2].FilterGroup
	require.NotNil(t, group)
	assert.Equal(t, query.And, group.LogicalOperator)
	assert.Equal(t, []query.FilterRule{
		{Column: query.Col("region"), Operator: query.OpEquals, Value: "EU"},
		{Column: query.Col("month"), Operator: query.OpGreaterOrEqual, Value: "2026-01-01"},
		{Column: query.Col("month"), Operator: query.OpLess, Value: "2026-02-01"},
	}, group.Filters)

	assert.Len(t, src.Operations, 4, "source query is untouched")
	q.Operations[1].FilterGroup.Filters[0].Value = "refunded"
	assert.Equal(t, "paid", src.Operations[1].FilterGroup.Filters[0].Value)
}

func TestBuildDrillDownLastRowIsOpenEnded(t *testing.T) {
	q, err := BuildDrillDownAt(sourceQuery(), byRegionMonth, 2, byRegionMonth.Columns[2])

	require.NoError(t, err)
	filters := q.Operations[len(q.Operations)-1].FilterGroup.Filters
	assert.Equal(t, []query.FilterRule{
		{Column: query.Col("region"), Operator: query.OpEquals, Value: "US"},
		{Column: query.Col("month"), Operator: query.OpGreaterOrEqual, Value: "2026-03-01"},
	}, filters)
}

func TestBuildDrillDownNonNumeric(t *testing.T) {
	q, err := BuildDrillDown(sourceQuery(), byRegionMonth, byRegionMonth.Rows[0], byRegionMonth.Columns[0])
	assert.NoError(t, err)
	assert.Nil(t, q)

	q, err = BuildDrillDownAt(sourceQuery(), byRegionMonth, 0, byRegionMonth.Columns[1])
	assert.NoError(t, err)
	assert.Nil(t, q)
}

func TestBuildDrillDownUnknownRow(t *testing.T) {
	row := schema.Row{"region": "APAC", "month": "2026-05-01", "sales": 1.0}

	q, err := BuildDrillDown(nil, byRegionMonth, row, byRegionMonth.Columns[2])

	require.NoError(t, err)
	require.Len(t, q.Operations, 1)
	assert.Len(t, q.Operations[0].FilterGroup.Filters, 2)
}

func TestBuildDrillDownAtOutOfRange(t *testing.T) {
	_, err := BuildDrillDownAt(sourceQuery(), byRegionMonth, 3, byRegionMonth.Columns[2])
	assert.ErrorIs(t, err, ErrRowOutOfRange)
}

func TestDrillDownSelectsBucketRows(t *testing.T) {
	raw := []schema.Row{
		{"region": "EU", "month": "2026-01-03"},
		{"region": "EU", "month": "2026-01-31"},
		{"region": "EU", "month": "2026-02-01"},
		{"region": "US", "month": "2026-01-10"},
	}
	filters := DrillDownFilters(byRegionMonth.Columns, byRegionMonth.Rows[0], byRegionMonth.Rows[1])

	got := query.FilterGroup{LogicalOperator: query.And, Filters: filters}.Apply(raw)

	assert.Equal(t, raw[:2], got)
}

func TestDrillDownRangeProperty(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	columns := []schema.Column{col("day", schema.TypeDate), col("v", schema.TypeInteger)}

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "rows")
		rows := make([]schema.Row, n)
		for i := range rows {
			rows[i] = schema.Row{"day": base.AddDate(0, i, 0).Format("2006-01-02"), "v": i}
		}
		i := rapid.IntRange(0, n-1).Draw(t, "clicked")

		q, err := BuildDrillDownAt(nil, &schema.Result{Columns: columns, Rows: rows}, i, columns[1])
		if err != nil {
			t.Fatal(err)
		}

		filters := q.Operations[len(q.Operations)-1].FilterGroup.Filters
		want := []query.FilterRule{{Column: query.Col("day"), Operator: query.OpGreaterOrEqual, Value: rows[i]["day"]}}
		if i < n-1 {
			want = append(want, query.FilterRule{Column: query.Col("day"), Operator: query.OpLess, Value: rows[i+1]["day"]})
		}
		if len(filters) != len(want) {
			t.Fatalf("got %d filters, want %d", len(filters), len(want))
		}
		for k := range want {
			if filters[k] != want[k] {
				t.Fatalf("filter %d: got %v, want %v", k, filters[k], want[k])
			}
		}
	})
}
