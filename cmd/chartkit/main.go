package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

// ============================================================================
// CHARTKIT CLI — Chart specs from query results
// ============================================================================

const version = "0.3.0"

var (
	logLevel string
	format   string
	outFile  string

	input inputFlags
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chartkit",
		Short: "Infer, assemble and drill into charts over query results",
		Long: `chartkit turns a query result (CSV, XLSX, JSON/YAML, or a live SQL query)
plus a chart config into a declarative chart spec, and builds drill-down
queries for clicked values.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&format, "format", "json", "Output format: json, pretty, csv")
	pf.StringVarP(&outFile, "out", "o", "", "Write output to file instead of stdout")
	input.register(rootCmd)

	rootCmd.AddCommand(
		discoverCmd(),
		guessCmd(),
		specCmd(),
		drillDownCmd(),
		previewCmd(),
		serveCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)
	return nil
}

func logger() *logrus.Entry {
	return logrus.WithField("app", "chartkit")
}
