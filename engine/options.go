package engine

import (
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spektr-org/chartkit/query"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for the chart builders
// ============================================================================

// Option configures builder behavior via functional options pattern.
type Option func(*config)

// GranularityResolver reports the date-bucketing unit applied to a column.
// *query.Query satisfies it by reading its summarize step.
type GranularityResolver interface {
	Granularity(column string) (query.Granularity, bool)
}

// GranularityFunc adapts a plain function to GranularityResolver.
type GranularityFunc func(column string) (query.Granularity, bool)

func (f GranularityFunc) Granularity(column string) (query.Granularity, bool) {
	return f(column)
}

var defaultLocale = language.English

type config struct {
	Palette     []string
	Granularity GranularityResolver
	Logger      *logrus.Entry
	MaxSlices   int
	Locale      language.Tag
}

// WithPalette sets the series colors. Series i gets palette[i % len(palette)].
func WithPalette(colors []string) Option {
	return func(c *config) {
		if len(colors) > 0 {
			c.Palette = append([]string(nil), colors...)
		}
	}
}

// WithGranularity sets where date-axis granularity is looked up.
func WithGranularity(r GranularityResolver) Option {
	return func(c *config) {
		c.Granularity = r
	}
}

// WithLogger routes debug output to l.
func WithLogger(l *logrus.Entry) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithMaxSlices sets how many donut slices are kept before "Others".
func WithMaxSlices(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.MaxSlices = n
		}
	}
}

// WithLocale sets the locale for tooltip number formatting.
func WithLocale(tag language.Tag) Option {
	return func(c *config) {
		c.Locale = tag
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Palette:   DefaultPalette,
		Logger:    discardLogger(),
		MaxSlices: DefaultMaxSlices,
		Locale:    defaultLocale,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) granularityFor(column string) query.Granularity {
	if c.Granularity == nil {
		return ""
	}
	g, _ := c.Granularity.Granularity(column)
	return g
}

func (c *config) printer() *message.Printer {
	return message.NewPrinter(c.Locale)
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
