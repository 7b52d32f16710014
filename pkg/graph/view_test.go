package graph

import (
	"bytes"
	"testing"

	"github.com/kylelemons/godebug/diff"

	"github.com/matzehuels/dotwalk/pkg/dot"
)

func TestWriteDOT(t *testing.T) {
	g, err := New("deps")
	if err != nil {
		t.Fatal(err)
	}
	g.RankDir = dot.LeftRight
	g.Attrs = dot.Attrs{{Name: "splines", Value: "ortho"}}

	for _, n := range []Node{
		{ID: "app", Shape: dot.Plain("box")},
		{ID: "lib", Label: dot.Esc(`lib\l`), Style: dot.StyleFilled, Color: dot.Plain("grey")},
		{ID: "core", Attrs: dot.Attrs{{Name: "width", Value: "2"}}},
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []Edge{
		{From: "app", To: "lib", Label: dot.Plain("uses"), Head: dot.NewArrow(dot.VertexVee(dot.Both))},
		{From: "lib", To: "core", FromCompass: dot.South, ToPort: "top", Tail: dot.NewArrow(dot.VertexDot(dot.Open))},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddSubgraph(Subgraph{ID: "cluster_inner", Label: dot.Plain("inner"), Nodes: []string{"lib", "core"}}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := g.WriteDOT(&buf); err != nil {
		t.Fatal(err)
	}

	want := `digraph deps {
    rankdir="LR";
    splines=ortho
subgraph cluster_inner {
    label="inner";
    lib;
    core;
}
    app[label="app"][shape="box"];
    lib[label="lib\l"][style="filled"][color="grey"];
    core[label="core"][width=2];
    app -> lib[label="uses"][arrowhead="vee"];
    lib:s -> core:top[label=""][dir="both" arrowtail="odot"];
}
`
	if got := buf.String(); got != want {
		t.Errorf("WriteDOT() mismatch (-want +got):\n%s", diff.Diff(want, got))
	}
}

func TestViewUndirected(t *testing.T) {
	g := mustNew(t, "a", "b")
	g.Kind = dot.Undirected
	g.RankDir = dot.TopBottom
	if err := g.AddEdge(Edge{From: "b", To: "a"}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := g.WriteDOT(&buf, dot.NoNodeLabels, dot.NoEdgeLabels); err != nil {
		t.Fatal(err)
	}
	want := "graph g {\n    a;\n    b;\n    b -- a;\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteDOT() mismatch (-want +got):\n%s", diff.Diff(want, got))
	}
}

func TestViewReflectsLaterChanges(t *testing.T) {
	g := mustNew(t, "a")
	v := g.View()
	if err := g.AddNode(Node{ID: "b"}); err != nil {
		t.Fatal(err)
	}
	if got := len(v.Nodes()); got != 2 {
		t.Errorf("view has %d nodes, want 2", got)
	}
}
