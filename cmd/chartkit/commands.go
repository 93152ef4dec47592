package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/helpers"
	"github.com/spektr-org/chartkit/render"
	"github.com/spektr-org/chartkit/server"
)

func discoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Print the typed columns and rows of a result",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := input.result(cmd.Context())
			if err != nil {
				return err
			}
			return emit(res)
		},
	}
}

func guessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess",
		Short: "Recommend a chart type for a result",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := input.result(cmd.Context())
			if err != nil {
				return err
			}
			chartType, ok := engine.GuessChart(res.Columns, res.Rows)
			if !ok {
				return engine.ErrNoRecommendation
			}
			fmt.Fprintln(cmd.OutOrStdout(), chartType)
			return nil
		},
	}
}

func specCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Assemble a chart spec from a result and chart config",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := buildSpec(cmd, configFile)
			if err != nil {
				return err
			}
			return emit(spec)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Chart config (.json, .yaml); inferred when omitted")
	return cmd
}

func previewCmd() *cobra.Command {
	var configFile, title string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a chart spec to a standalone HTML page",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := buildSpec(cmd, configFile)
			if err != nil {
				return err
			}
			w, closeFn, err := output()
			if err != nil {
				return err
			}
			err = render.Render(w, spec, render.Options{Title: title})
			if cerr := closeFn(); err == nil {
				err = cerr
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Chart config (.json, .yaml); inferred when omitted")
	cmd.Flags().StringVar(&title, "title", "", "Page title")
	return cmd
}

func drillDownCmd() *cobra.Command {
	var (
		row    int
		column string
	)
	cmd := &cobra.Command{
		Use:   "drilldown",
		Short: "Build the drill-down query for a clicked cell",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := input.result(cmd.Context())
			if err != nil {
				return err
			}
			col, ok := res.Column(column)
			if !ok {
				return fmt.Errorf("unknown column %q", column)
			}
			src, err := input.query()
			if err != nil {
				return err
			}
			opts, err := input.engineOptions(src)
			if err != nil {
				return err
			}
			q, err := engine.BuildDrillDownAt(src, res, row, col, opts...)
			if err != nil {
				return err
			}
			if q == nil {
				return fmt.Errorf("column %q is not a measure", column)
			}
			return emit(q)
		},
	}
	cmd.Flags().IntVar(&row, "row", 0, "Index of the clicked row")
	cmd.Flags().StringVar(&column, "column", "", "Clicked column")
	cmd.MarkFlagRequired("column")
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		addr    string
		origins []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8002"
				}
				addr = ":" + port
			}
			opts, err := input.engineOptions(nil)
			if err != nil {
				return err
			}
			h := server.NewHandler(logger(), opts...)
			r := server.NewRouter(h, origins)

			logger().WithField("addr", addr).Info("server listening")
			return server.Serve(cmd.Context(), addr, r)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :$PORT or :8002)")
	cmd.Flags().StringSliceVar(&origins, "origins", splitOrigins(os.Getenv("CORS_ORIGINS")), "Allowed CORS origins")
	return cmd
}

func buildSpec(cmd *cobra.Command, configFile string) (*engine.ChartSpec, error) {
	res, err := input.result(cmd.Context())
	if err != nil {
		return nil, err
	}
	var cfg engine.ChartConfig
	if configFile != "" {
		if cfg, err = helpers.LoadChartConfig(configFile); err != nil {
			return nil, err
		}
	}
	src, err := input.query()
	if err != nil {
		return nil, err
	}
	opts, err := input.engineOptions(src)
	if err != nil {
		return nil, err
	}

	spec, err := engine.BuildChart(cfg, res, opts...)
	var ce *engine.ChartError
	if errors.As(err, &ce) {
		logger().WithField("stage", ce.Stage).WithField("chart_type", ce.ChartType).Debug("chart build failed")
	}
	return spec, err
}

func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
