package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dotwalk/pkg/dot"
	errs "github.com/matzehuels/dotwalk/pkg/errors"
	"github.com/matzehuels/dotwalk/pkg/graph"
)

const jsonDoc = `{
  "id": "deps",
  "rankdir": "LR",
  "attrs": [{"name": "splines", "value": "ortho"}],
  "nodes": [
    {"id": "app", "shape": "box"},
    {"id": "lib", "label": "lib\\l", "label_kind": "esc", "style": "filled", "color": "grey"},
    {"id": "core", "label": ""}
  ],
  "edges": [
    {"from": "app", "to": "lib", "label": "uses", "head": ["lcrow", "tee"]},
    {"from": "lib", "to": "core", "from_compass": "s", "to_port": "top", "tail": ["odot"],
     "attrs": [{"name": "weight", "value": "2"}]}
  ],
  "subgraphs": [{"id": "cluster_inner", "label": "inner", "nodes": ["lib", "core"]}]
}`

const tomlDoc = `
id = "deps"
rankdir = "LR"

[[attrs]]
name = "splines"
value = "ortho"

[[nodes]]
id = "app"
shape = "box"

[[nodes]]
id = "lib"
label = 'lib\l'
label_kind = "esc"
style = "filled"
color = "grey"

[[nodes]]
id = "core"
label = ""

[[edges]]
from = "app"
to = "lib"
label = "uses"
head = ["lcrow", "tee"]

[[edges]]
from = "lib"
to = "core"
from_compass = "s"
to_port = "top"
tail = ["odot"]

[[edges.attrs]]
name = "weight"
value = "2"

[[subgraphs]]
id = "cluster_inner"
label = "inner"
nodes = ["lib", "core"]
`

const yamlDoc = `
id: deps
rankdir: LR
attrs:
  - {name: splines, value: ortho}
nodes:
  - {id: app, shape: box}
  - id: lib
    label: 'lib\l'
    label_kind: esc
    style: filled
    color: grey
  - {id: core, label: ""}
edges:
  - {from: app, to: lib, label: uses, head: [lcrow, tee]}
  - from: lib
    to: core
    from_compass: s
    to_port: top
    tail: [odot]
    attrs:
      - {name: weight, value: "2"}
subgraphs:
  - id: cluster_inner
    label: inner
    nodes: [lib, core]
`

const wantDOT = `digraph deps {
    rankdir="LR";
    splines=ortho
subgraph cluster_inner {
    label="inner";
    lib;
    core;
}
    app[label="app"][shape="box"];
    lib[label="lib\l"][style="filled"][color="grey"];
    core[label=""];
    app -> lib[label="uses"][arrowhead="lcrowtee"];
    lib:s -> core:top[label=""][dir="both" arrowtail="odot"]weight=2;
}
`

func renderDOT(t *testing.T, g *graph.Graph) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, g.WriteDOT(&buf))
	return buf.String()
}

func TestRead(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, jsonDoc},
		{"toml", FormatTOML, tomlDoc},
		{"yaml", FormatYAML, yamlDoc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Read(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, 3, g.NodeCount())
			assert.Equal(t, 2, g.EdgeCount())
			assert.Equal(t, wantDOT, renderDOT(t, g))
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errs.Code
	}{
		{"malformed", `{"id": `, errs.ErrCodeInvalidFormat},
		{"empty", ``, errs.ErrCodeInvalidFormat},
		{"unknown key", `{"id": "g", "nodes": [], "colour": "red"}`, errs.ErrCodeInvalidFormat},
		{"bad graph id", `{"id": "my graph", "nodes": []}`, errs.ErrCodeInvalidID},
		{"bad node id", `{"id": "g", "nodes": [{"id": "a-b"}]}`, errs.ErrCodeInvalidID},
		{"bad port", `{"id": "g", "nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "a", "to_port": "1"}]}`, errs.ErrCodeInvalidID},
		{"duplicate node", `{"id": "g", "nodes": [{"id": "a"}, {"id": "a"}]}`, errs.ErrCodeInvalidGraph},
		{"unknown target", `{"id": "g", "nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`, errs.ErrCodeInvalidGraph},
		{"unknown member", `{"id": "g", "nodes": [], "subgraphs": [{"nodes": ["x"]}]}`, errs.ErrCodeInvalidGraph},
		{"bad style", `{"id": "g", "nodes": [{"id": "a", "style": "wavy"}]}`, errs.ErrCodeInvalidOption},
		{"bad arrow", `{"id": "g", "nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "a", "head": ["ldot"]}]}`, errs.ErrCodeInvalidOption},
		{"bad kind", `{"id": "g", "kind": "tree", "nodes": []}`, errs.ErrCodeInvalidOption},
		{"bad label kind", `{"id": "g", "nodes": [{"id": "a", "label_kind": "md"}]}`, errs.ErrCodeInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), FormatJSON)
			require.Error(t, err)
			assert.Equal(t, tt.code, errs.GetCode(err), "error: %v", err)
		})
	}
}

func TestReadTOMLUnknownKey(t *testing.T) {
	_, err := Read(strings.NewReader("id = \"g\"\nnodes = []\ncolour = \"red\"\n"), FormatTOML)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidFormat))
}

func TestReadUnsupportedFormat(t *testing.T) {
	_, err := Read(strings.NewReader("{}"), Format("xml"))
	assert.True(t, errs.Is(err, errs.ErrCodeUnsupported))
}

func TestWriteRoundTrip(t *testing.T) {
	orig, err := Read(strings.NewReader(jsonDoc), FormatJSON)
	require.NoError(t, err)
	orig.Kind = dot.Undirected

	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, orig, f))

			back, err := Read(&buf, f)
			require.NoError(t, err, "document:\n%s", buf.String())
			assert.Equal(t, renderDOT(t, orig), renderDOT(t, back))
		})
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "deps.yml")
	require.NoError(t, os.WriteFile(src, []byte(yamlDoc), 0o644))

	g, err := Import(src)
	require.NoError(t, err)
	assert.Equal(t, wantDOT, renderDOT(t, g))

	dst := filepath.Join(dir, "out.toml")
	require.NoError(t, Export(g, dst))
	back, err := Import(dst)
	require.NoError(t, err)
	assert.Equal(t, wantDOT, renderDOT(t, back))
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Import(filepath.Join(dir, "missing.json"))
	assert.True(t, errs.Is(err, errs.ErrCodeFileNotFound), "error: %v", err)

	_, err = Import(filepath.Join(dir, "graph"))
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidFormat), "error: %v", err)

	_, err = Import(filepath.Join(dir, "graph.dot"))
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidFormat), "error: %v", err)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":     FormatJSON,
		"dir/b.TOML": FormatTOML,
		"c.yaml":     FormatYAML,
		"d.yml":      FormatYAML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
}
