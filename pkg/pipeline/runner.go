package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dotwalk/pkg/cache"
	errs "github.com/matzehuels/dotwalk/pkg/errors"
	"github.com/matzehuels/dotwalk/pkg/graph"
	"github.com/matzehuels/dotwalk/pkg/layout"
	"github.com/matzehuels/dotwalk/pkg/observability"
)

// keyTypeArtifact names artifact lookups in cache hooks.
const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger

	// layout runs Graphviz. Tests replace it.
	layout func(ctx context.Context, src []byte, opts layout.Options) ([]byte, error)
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
		layout: layout.Render,
	}
}

// Execute runs the complete DOT → layout pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if g == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no graph to render")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Format: opts.Format,
		Stats: Stats{
			NodeCount:   g.NodeCount(),
			EdgeCount:   g.EdgeCount(),
			SourceCount: len(g.Sources()),
			SinkCount:   len(g.Sinks()),
		},
	}

	// Stage 1: DOT
	start := time.Now()
	src, err := r.DOT(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.DOT = src
	result.DOTHash = cache.Hash(src)
	result.Stats.DOTTime = time.Since(start)

	opts.Logger.Debug("emitted DOT",
		"graph", g.ID(),
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"bytes", len(src))

	if !opts.NeedsLayout() {
		result.Artifact = src
		return result, nil
	}

	// Stage 2: Layout
	start = time.Now()
	out, hit, err := r.LayoutWithCacheInfo(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = out
	result.CacheHit = hit
	result.Stats.LayoutTime = time.Since(start)

	opts.Logger.Debug("computed layout",
		"engine", opts.Engine,
		"format", opts.Format,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// DOT emits g as DOT text with the render options of opts.
// Graphs mutated after construction are re-validated first.
func (r *Runner) DOT(ctx context.Context, g *graph.Graph, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "graph %s", g.ID())
	}
	hooks := observability.Pipeline()
	hooks.OnDOTStart(ctx, g.NodeCount(), g.EdgeCount())

	start := time.Now()
	var buf bytes.Buffer
	err := g.WriteDOT(&buf, opts.DOTOptions()...)
	hooks.OnDOTComplete(ctx, buf.Len(), time.Since(start), err)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeIO, err, "write DOT")
	}
	return buf.Bytes(), nil
}

// LayoutWithCacheInfo runs Graphviz on src with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, src []byte, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if !opts.NeedsLayout() {
		return nil, false, errs.New(errs.ErrCodeUnsupported, "format %q needs no layout", opts.Format)
	}

	cacheKey := cache.ArtifactKey(cache.Hash(src), opts.Format, opts.Engine)
	cacheHooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		switch {
		case err != nil:
			opts.Logger.Warn("cache read failed", "err", err)
		case hit:
			cacheHooks.OnCacheHit(ctx, keyTypeArtifact)
			return data, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, keyTypeArtifact)
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Engine, opts.Format)
	start := time.Now()
	out, err := r.layout(ctx, src, layout.Options{Format: opts.Format, Engine: opts.Engine})
	hooks.OnLayoutComplete(ctx, opts.Engine, opts.Format, len(out), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if err := r.Cache.Set(ctx, cacheKey, out, opts.TTL); err != nil {
		opts.Logger.Warn("cache write failed", "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, keyTypeArtifact, len(out))
	}

	return out, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, src []byte, opts Options) ([]byte, error) {
	out, _, err := r.LayoutWithCacheInfo(ctx, src, opts)
	return out, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if none was given.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
