// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP server.
//
// A run has two stages:
//
//  1. DOT: emit the graph through [dot.Render] with the requested options
//  2. Layout: for svg and png, run Graphviz on the DOT text
//
// The layout stage is cached. Keys are derived from the hash of the DOT text,
// the output format and the layout engine, so any change to the graph or to
// an option that affects the DOT output yields a new key.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, logger)
//	res, err := runner.Execute(ctx, g, pipeline.Options{Format: "svg"})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Artifact)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dotwalk/pkg/cache"
	"github.com/matzehuels/dotwalk/pkg/dot"
	errs "github.com/matzehuels/dotwalk/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultFormat is the output format when none is given.
	DefaultFormat = FormatDOT

	// DefaultEngine is the Graphviz layout engine when none is given.
	DefaultEngine = "dot"
)

// Format constants for output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	Format string `json:"format,omitempty"`
	Engine string `json:"engine,omitempty"`

	// DOT options, in the order [Options.DOTOptions] emits them.
	Fontname     string `json:"fontname,omitempty"`
	Dark         bool   `json:"dark,omitempty"`
	NoNodeLabels bool   `json:"no_node_labels,omitempty"`
	NoEdgeLabels bool   `json:"no_edge_labels,omitempty"`
	NoNodeStyles bool   `json:"no_node_styles,omitempty"`
	NoEdgeStyles bool   `json:"no_edge_styles,omitempty"`
	NoNodeColors bool   `json:"no_node_colors,omitempty"`
	NoEdgeColors bool   `json:"no_edge_colors,omitempty"`
	NoArrows     bool   `json:"no_arrows,omitempty"`

	// Refresh skips cache reads; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	TTL    time.Duration `json:"-"`
	Logger *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DOT is the emitted DOT text.
	DOT []byte

	// DOTHash is the content hash of DOT.
	DOTHash string

	// Format is the format of Artifact.
	Format string

	// Artifact is the requested output. It is DOT itself for the dot format.
	Artifact []byte

	// CacheHit reports whether Artifact came from the cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	SourceCount int // nodes without incoming edges
	SinkCount   int // nodes without outgoing edges
	DOTTime     time.Duration
	LayoutTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := errs.ValidateOutputFormat(o.Format); err != nil {
		return err
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if err := errs.ValidateEngine(o.Engine); err != nil {
		return err
	}
	if o.Fontname != "" {
		if err := errs.ValidateFontname(o.Fontname); err != nil {
			return err
		}
	}
	if o.TTL <= 0 {
		o.TTL = cache.DefaultTTL
	}
	o.validated = true
	return nil
}

// NeedsLayout reports whether the format requires a Graphviz run.
func (o *Options) NeedsLayout() bool {
	return o.Format == FormatSVG || o.Format == FormatPNG
}

// DOTOptions returns the render options for [dot.Render]. A fontname, when
// set, comes first so it takes precedence over any fontname appended later.
func (o *Options) DOTOptions() []dot.Option {
	var opts []dot.Option
	if o.Fontname != "" {
		opts = append(opts, dot.Fontname(o.Fontname))
	}
	flags := []struct {
		on  bool
		opt dot.Option
	}{
		{o.Dark, dot.DarkTheme},
		{o.NoNodeLabels, dot.NoNodeLabels},
		{o.NoEdgeLabels, dot.NoEdgeLabels},
		{o.NoNodeStyles, dot.NoNodeStyles},
		{o.NoEdgeStyles, dot.NoEdgeStyles},
		{o.NoNodeColors, dot.NoNodeColors},
		{o.NoEdgeColors, dot.NoEdgeColors},
		{o.NoArrows, dot.NoArrows},
	}
	for _, f := range flags {
		if f.on {
			opts = append(opts, f.opt)
		}
	}
	return opts
}
