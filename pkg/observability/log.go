package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event as a debug line. It implements all three
// hook interfaces, so one value can be registered for each.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks logging to l, or to the default logger when l
// is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

// Register installs h as the pipeline, cache and HTTP hooks.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnDOTStart(_ context.Context, nodeCount, edgeCount int) {
	h.Logger.Debug("emitting DOT", "nodes", nodeCount, "edges", edgeCount)
}

func (h *LogHooks) OnDOTComplete(_ context.Context, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("DOT emission failed", "duration", d, "err", err)
		return
	}
	h.Logger.Debug("emitted DOT", "bytes", size, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, engine, format string) {
	h.Logger.Debug("running graphviz", "engine", engine, "format", format)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, engine, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("graphviz failed", "engine", engine, "format", format, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("graphviz done", "engine", engine, "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
