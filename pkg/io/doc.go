// Package io reads and writes graph documents in JSON, TOML and YAML.
//
// # Overview
//
// A document describes one [graph.Graph]: its name, kind, rank direction
// and attributes, its nodes, edges and subgraphs. The DOT core never
// parses anything; this package is where user-supplied text becomes a
// graph that renders, and where unknown tokens are rejected with a coded
// error from pkg/errors.
//
// # Document Format
//
// The same schema is used by every format. In TOML:
//
//	id = "deps"
//	kind = "digraph"
//	rankdir = "LR"
//
//	[[attrs]]
//	name = "splines"
//	value = "ortho"
//
//	[[nodes]]
//	id = "app"
//	shape = "box"
//
//	[[nodes]]
//	id = "lib"
//	label = 'lib\l'
//	label_kind = "esc"
//	style = "filled"
//
//	[[edges]]
//	from = "app"
//	to = "lib"
//	head = ["lcrow", "tee"]
//	from_compass = "s"
//
//	[[subgraphs]]
//	id = "cluster_core"
//	nodes = ["lib"]
//
// # Node Fields
//
// Required:
//   - id: a DOT identifier, [A-Za-z_][A-Za-z0-9_]*
//
// Optional:
//   - label: display text; the id is shown when absent
//   - label_kind: "plain" (default), "esc" or "html"
//   - style: one of the Graphviz styles, e.g. "dashed"
//   - color, shape: written as plain quoted strings
//   - attrs: extra name/value pairs, written verbatim
//
// Edges take the same label, style, color and attrs fields, plus head and
// tail arrows (lists of up to four vertex tokens such as "olbox" or
// "none"), from_port/to_port and from_compass/to_compass.
//
// # Import
//
// Use [Import] to read a graph from a file path, or [Read] to read from
// any io.Reader:
//
//	g, err := io.Import("deps.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// Use [Export] to write a graph to a file, or [Write] to write to any
// io.Writer. Re-reading the output yields an equal graph.
//
// # Tokens
//
// [ParseStyle], [ParseArrow], [ParseCompassPoint], [ParseRankDir],
// [ParseKind] and [ParseLabelKind] are exported for other surfaces, such
// as CLI flags and query parameters, that accept the same tokens.
package io
