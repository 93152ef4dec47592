package helpers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// SQL HELPER — Runs a query and returns its result with declared types
// ============================================================================
// Column types come from the driver (sql.ColumnType.DatabaseTypeName).
// Drivers are registered by the caller with a blank import:
//   sqlite   → modernc.org/sqlite
//   mysql    → github.com/go-sql-driver/mysql
//   postgres → github.com/lib/pq
// ============================================================================

// LoadSQL runs query on db and materializes every row.
func LoadSQL(ctx context.Context, db *sql.DB, query string, args ...any) (*schema.Result, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	result := &schema.Result{Columns: make([]schema.Column, len(types))}
	for i, ct := range types {
		result.Columns[i] = schema.Column{
			Name: ct.Name(),
			Type: schema.FromDatabaseType(ct.DatabaseTypeName()),
		}
	}

	values := make([]any, len(types))
	dest := make([]any, len(types))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(schema.Row, len(types))
		for i, c := range result.Columns {
			row[c.Name] = sqlValue(values[i], c.Type)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return result, nil
}

// OpenDB opens a database and checks the connection.
func OpenDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}

// sqlValue converts driver bytes into numbers or strings. Drivers return
// NUMERIC and DECIMAL as text to avoid losing precision.
func sqlValue(v any, t schema.ColumnDataType) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	if schema.Classify(t).Has(schema.RoleNumber) {
		if f, ok := schema.ToFloat(b); ok {
			return f
		}
	}
	return string(b)
}
