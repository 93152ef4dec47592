package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/helpers"
	"github.com/spektr-org/chartkit/query"
	"github.com/spektr-org/chartkit/schema"
)

// inputFlags select where the query result comes from: a file, or a live
// SQL query through one of the registered drivers (sqlite, mysql, postgres).
type inputFlags struct {
	data      string
	sheet     string
	snakeCase bool

	driver string
	dsn    string
	sql    string

	queryFile string
	palette   []string
	locale    string
	maxSlices int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVarP(&f.data, "data", "d", "", "Result file (.csv, .xlsx, .json, .yaml)")
	fs.StringVar(&f.sheet, "sheet", "", "Worksheet for .xlsx input (default: first sheet)")
	fs.BoolVar(&f.snakeCase, "snake-case", false, "Convert CSV headers to snake_case")
	fs.StringVar(&f.driver, "driver", "", "SQL driver: sqlite, mysql, postgres")
	fs.StringVar(&f.dsn, "dsn", "", "SQL data source name")
	fs.StringVar(&f.sql, "sql", "", "SQL query producing the result")
	fs.StringVarP(&f.queryFile, "query", "q", "", "Query definition (.json, .yaml)")
	fs.StringSliceVar(&f.palette, "colors", nil, "Series palette, comma separated")
	fs.StringVar(&f.locale, "locale", "en", "Locale for number formatting")
	fs.IntVar(&f.maxSlices, "max-slices", engine.DefaultMaxSlices, "Donut slices before grouping into Others")
}

// result loads the query result from the configured source.
func (f *inputFlags) result(ctx context.Context) (*schema.Result, error) {
	switch {
	case f.sql != "":
		return f.loadSQL(ctx)
	case f.data == "":
		return nil, errors.New("no input: pass --data or --driver/--dsn/--sql")
	}

	ext := strings.ToLower(filepath.Ext(f.data))
	switch {
	case ext == ".csv" && f.snakeCase:
		data, err := os.ReadFile(f.data)
		if err != nil {
			return nil, err
		}
		return helpers.ParseCSV(data, helpers.CSVOptions{SnakeCaseHeaders: true})
	case (ext == ".xlsx" || ext == ".xlsm") && f.sheet != "":
		return helpers.LoadXLSX(f.data, f.sheet)
	default:
		return helpers.LoadResult(f.data)
	}
}

func (f *inputFlags) loadSQL(ctx context.Context) (*schema.Result, error) {
	if f.driver == "" || f.dsn == "" {
		return nil, errors.New("--sql requires --driver and --dsn")
	}
	db, err := helpers.OpenDB(ctx, sqlDriver(f.driver), f.dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	logger().WithField("driver", f.driver).Debug("running sql query")
	return helpers.LoadSQL(ctx, db, f.sql)
}

// sqlDriver maps user-facing driver names to registered database/sql names.
func sqlDriver(name string) string {
	switch strings.ToLower(name) {
	case "postgres", "postgresql", "pg":
		return "postgres"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return name
	}
}

// query loads the source query, or returns nil when none was given.
func (f *inputFlags) query() (*query.Query, error) {
	if f.queryFile == "" {
		return nil, nil
	}
	return helpers.LoadQuery(f.queryFile)
}

// engineOptions builds the engine options shared by every command.
func (f *inputFlags) engineOptions(q *query.Query) ([]engine.Option, error) {
	tag, err := language.Parse(f.locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", f.locale, err)
	}
	opts := []engine.Option{
		engine.WithLogger(logger()),
		engine.WithLocale(tag),
		engine.WithMaxSlices(f.maxSlices),
	}
	if q != nil {
		opts = append(opts, engine.WithGranularity(q))
	}
	if len(f.palette) > 0 {
		opts = append(opts, engine.WithPalette(f.palette))
	}
	return opts, nil
}
