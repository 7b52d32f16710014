package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dotwalk/pkg/cache"
	"github.com/matzehuels/dotwalk/pkg/dot"
	errs "github.com/matzehuels/dotwalk/pkg/errors"
	"github.com/matzehuels/dotwalk/pkg/graph"
	"github.com/matzehuels/dotwalk/pkg/layout"
	"github.com/matzehuels/dotwalk/pkg/observability"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New("deps")
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"app", "lib", "util"} {
		if err := g.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range [][2]string{{"app", "lib"}, {"lib", "util"}} {
		if err := g.AddEdge(graph.Edge{From: e[0], To: e[1], Label: dot.Plain("uses")}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

// fakeLayout records calls and returns a drawing derived from its input.
type fakeLayout struct {
	mu    sync.Mutex
	calls []layout.Options
	err   error
}

func (f *fakeLayout) render(_ context.Context, src []byte, opts layout.Options) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("<" + opts.Format + "/" + opts.Engine + ">" + cache.Hash(src)[:8]), nil
}

func newTestRunner(t *testing.T, c cache.Cache) (*Runner, *fakeLayout) {
	t.Helper()
	if c == nil {
		fc, err := cache.NewFileCache(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		c = fc
	}
	fake := &fakeLayout{}
	r := NewRunner(c, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	r.layout = fake.render
	return r, fake
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Format != FormatDOT || o.Engine != DefaultEngine || o.TTL != cache.DefaultTTL {
		t.Errorf("defaults not applied: %+v", o)
	}
	if o.NeedsLayout() {
		t.Error("dot format should not need layout")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"format", Options{Format: "pdf"}, errs.ErrCodeInvalidFormat},
		{"format case", Options{Format: "SVG"}, errs.ErrCodeInvalidFormat},
		{"engine", Options{Engine: "graphviz"}, errs.ErrCodeInvalidOption},
		{"fontname quote", Options{Fontname: `Sans" bgcolor="red`}, errs.ErrCodeInvalidOption},
		{"fontname newline", Options{Fontname: "Sans\n"}, errs.ErrCodeInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errs.Is(err, tt.code) {
				t.Errorf("got %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDOTOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []dot.Option
	}{
		{"none", Options{}, nil},
		{"fontname first", Options{Fontname: "Mono", Dark: true, NoArrows: true},
			[]dot.Option{dot.Fontname("Mono"), dot.DarkTheme, dot.NoArrows}},
		{"all flags", Options{
			NoNodeLabels: true, NoEdgeLabels: true, NoNodeStyles: true, NoEdgeStyles: true,
			NoNodeColors: true, NoEdgeColors: true,
		}, []dot.Option{
			dot.NoNodeLabels, dot.NoEdgeLabels, dot.NoNodeStyles, dot.NoEdgeStyles,
			dot.NoNodeColors, dot.NoEdgeColors,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.DOTOptions()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("option %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExecuteDOT(t *testing.T) {
	r, fake := newTestRunner(t, nil)
	g := testGraph(t)

	res, err := r.Execute(context.Background(), g, Options{NoEdgeLabels: true})
	if err != nil {
		t.Fatal(err)
	}

	var want bytes.Buffer
	if err := g.WriteDOT(&want, dot.NoEdgeLabels); err != nil {
		t.Fatal(err)
	}
	if string(res.DOT) != want.String() {
		t.Errorf("DOT mismatch:\ngot:\n%s\nwant:\n%s", res.DOT, want.String())
	}
	if !bytes.Equal(res.Artifact, res.DOT) {
		t.Error("dot artifact should be the DOT text")
	}
	if res.DOTHash != cache.Hash(res.DOT) {
		t.Error("DOTHash should hash the DOT text")
	}
	if st := res.Stats; st.NodeCount != 3 || st.EdgeCount != 2 || st.SourceCount != 1 || st.SinkCount != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if len(fake.calls) != 0 {
		t.Errorf("dot format ran graphviz %d times", len(fake.calls))
	}
	if strings.Contains(string(res.DOT), "uses") {
		t.Error("NoEdgeLabels should drop edge labels")
	}
}

func TestExecuteLayoutIsCached(t *testing.T) {
	r, fake := newTestRunner(t, nil)
	g := testGraph(t)
	ctx := context.Background()
	opts := Options{Format: FormatSVG, Engine: "neato"}

	first, err := r.Execute(ctx, g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(ctx, g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if !bytes.Equal(first.Artifact, second.Artifact) {
		t.Error("cached artifact differs from rendered artifact")
	}
	if len(fake.calls) != 1 {
		t.Fatalf("graphviz ran %d times, want 1", len(fake.calls))
	}
	if fake.calls[0] != (layout.Options{Format: "svg", Engine: "neato"}) {
		t.Errorf("layout options = %+v", fake.calls[0])
	}
}

func TestExecuteCacheKeyFollowsOptions(t *testing.T) {
	r, fake := newTestRunner(t, nil)
	g := testGraph(t)
	ctx := context.Background()

	for _, opts := range []Options{
		{Format: FormatSVG},
		{Format: FormatPNG},
		{Format: FormatSVG, Engine: "circo"},
		{Format: FormatSVG, Dark: true},
	} {
		res, err := r.Execute(ctx, g, opts)
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheHit {
			t.Errorf("%+v should not share a cache entry with earlier runs", opts)
		}
	}
	if len(fake.calls) != 4 {
		t.Errorf("graphviz ran %d times, want 4", len(fake.calls))
	}
}

func TestExecuteRefresh(t *testing.T) {
	r, fake := newTestRunner(t, nil)
	g := testGraph(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, g, Options{Format: FormatPNG}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, g, Options{Format: FormatPNG, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("refresh should bypass the cache")
	}
	if len(fake.calls) != 2 {
		t.Errorf("graphviz ran %d times, want 2", len(fake.calls))
	}
}

func TestExecuteLayoutError(t *testing.T) {
	r, fake := newTestRunner(t, nil)
	fake.err = errs.New(errs.ErrCodeLayoutFailed, "syntax error")

	_, err := r.Execute(context.Background(), testGraph(t), Options{Format: FormatSVG})
	if !errs.Is(err, errs.ErrCodeLayoutFailed) {
		t.Fatalf("got %v, want LAYOUT_FAILED", err)
	}

	// Failures are not cached.
	fake.err = nil
	res, err := r.Execute(context.Background(), testGraph(t), Options{Format: FormatSVG})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("a failed layout must not leave a cache entry")
	}
}

func TestExecuteRejectsMutatedGraph(t *testing.T) {
	r, fake := newTestRunner(t, nil)
	g := testGraph(t)
	g.Edges()[0].To = "gone"

	_, err := r.Execute(context.Background(), g, Options{Format: FormatSVG})
	if !errs.Is(err, errs.ErrCodeInvalidGraph) {
		t.Fatalf("got %v, want INVALID_GRAPH", err)
	}
	if !errors.Is(err, graph.ErrInvalidEdgeEndpoint) {
		t.Errorf("error %v should wrap ErrInvalidEdgeEndpoint", err)
	}
	if len(fake.calls) != 0 {
		t.Error("an invalid graph must not reach graphviz")
	}
}

func TestExecuteNilGraph(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	_, err := r.Execute(context.Background(), nil, Options{})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestLayoutRejectsDOTFormat(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	_, err := r.Layout(context.Background(), []byte("digraph {}"), Options{Format: FormatDOT})
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("got %v, want UNSUPPORTED", err)
	}
}

// brokenCache fails every operation.
type brokenCache struct{}

var errBackend = errors.New("backend down")

func (brokenCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, errBackend }
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error { return errBackend }
func (brokenCache) Delete(context.Context, string) error                     { return errBackend }
func (brokenCache) Clear(context.Context) error                              { return errBackend }
func (brokenCache) Close() error                                             { return nil }

func TestExecuteSurvivesCacheFailure(t *testing.T) {
	var logs bytes.Buffer
	r, fake := newTestRunner(t, brokenCache{})
	r.Logger = log.NewWithOptions(&logs, log.Options{})

	res, err := r.Execute(context.Background(), testGraph(t), Options{Format: FormatSVG})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit || len(fake.calls) != 1 {
		t.Errorf("cache failure should fall back to graphviz: hit=%v calls=%d", res.CacheHit, len(fake.calls))
	}
	for _, want := range []string{"cache read failed", "cache write failed", "backend down"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log missing %q:\n%s", want, logs.String())
		}
	}
}

// recordingHooks collects event names.
type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnDOTStart(context.Context, int, int)                     { h.add("dot-start") }
func (h *recordingHooks) OnDOTComplete(context.Context, int, time.Duration, error) { h.add("dot-done") }
func (h *recordingHooks) OnLayoutStart(context.Context, string, string)            { h.add("layout-start") }
func (h *recordingHooks) OnLayoutComplete(context.Context, string, string, int, time.Duration, error) {
	h.add("layout-done")
}
func (h *recordingHooks) OnCacheHit(context.Context, string)      { h.add("hit") }
func (h *recordingHooks) OnCacheMiss(context.Context, string)     { h.add("miss") }
func (h *recordingHooks) OnCacheSet(context.Context, string, int) { h.add("set") }

func TestExecuteEmitsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)

	r, _ := newTestRunner(t, nil)
	g := testGraph(t)
	for range 2 {
		if _, err := r.Execute(context.Background(), g, Options{Format: FormatSVG}); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		"dot-start", "dot-done", "miss", "layout-start", "layout-done", "set",
		"dot-start", "dot-done", "hit",
	}
	if strings.Join(h.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v\nwant     %v", h.events, want)
	}
}
