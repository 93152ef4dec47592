// Package chartkit turns query results into declarative chart specs.
//
// Usage:
//
//	import "github.com/spektr-org/chartkit/engine"
//
//	spec, err := engine.BuildChart(cfg, result,
//	    engine.WithGranularity(q),
//	    engine.WithPalette(colors),
//	)
//
// The engine classifies result columns into dimensions and measures, picks a
// chart type when none is pinned, and assembles line, bar or donut specs for
// an ECharts-style renderer. engine.BuildDrillDown derives the query behind a
// clicked value.
//
// Results are loaded by the helpers package (CSV, XLSX, SQL, JSON/YAML).
// The server package exposes the same operations over HTTP, and render
// draws a spec as a standalone HTML page.
package chartkit
