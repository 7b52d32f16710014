package dot

import (
	"bytes"
	"io"
	"strings"
)

// Render writes g to w in DOT syntax.
//
// Output is produced in a fixed order: header, rank direction, graph
// attributes, the global style block derived from opts, subgraphs, nodes,
// edges and the closing brace. Each statement is written with a single
// call to w.Write. The first write error stops rendering and is returned
// unchanged; w then holds a truncated document.
func Render[N, E, S any](w io.Writer, g Graph[N, E, S], opts ...Option) error {
	p := printer{w: w}
	set := resolve(opts)

	kind := g.Kind()
	p.put(kind.Keyword(), " ", g.GraphID().String(), " {\n")
	if err := p.flush(); err != nil {
		return err
	}

	if kind == Directed {
		if dir := g.RankDir().String(); dir != "" {
			p.put(`    rankdir="`, dir, "\";\n")
			if err := p.flush(); err != nil {
				return err
			}
		}
	}

	for _, a := range g.GraphAttrs() {
		p.put("    ", a.Name, "=", a.Value, "\n")
		if err := p.flush(); err != nil {
			return err
		}
	}

	if err := p.styleBlock(set); err != nil {
		return err
	}
	if err := renderSubgraphs(&p, g, g.Subgraphs(), set); err != nil {
		return err
	}
	if err := renderNodes(&p, g, g.Nodes(), set); err != nil {
		return err
	}
	if err := renderEdges(&p, g, g.Edges(), set); err != nil {
		return err
	}

	p.put("}\n")
	return p.flush()
}

// RenderSubgraphs writes subgraph blocks for the given subgraphs only.
func RenderSubgraphs[N, E, S any](w io.Writer, g Graph[N, E, S], subgraphs []S, opts ...Option) error {
	p := printer{w: w}
	return renderSubgraphs(&p, g, subgraphs, resolve(opts))
}

// RenderNodes writes node statements for the given nodes only.
func RenderNodes[N, E, S any](w io.Writer, g Graph[N, E, S], nodes []N, opts ...Option) error {
	p := printer{w: w}
	return renderNodes(&p, g, nodes, resolve(opts))
}

// RenderEdges writes edge statements for the given edges only.
func RenderEdges[N, E, S any](w io.Writer, g Graph[N, E, S], edges []E, opts ...Option) error {
	p := printer{w: w}
	return renderEdges(&p, g, edges, resolve(opts))
}

func renderSubgraphs[N, E, S any](p *printer, g Graph[N, E, S], subgraphs []S, set settings) error {
	for _, s := range subgraphs {
		p.put("subgraph")
		if id := g.SubgraphID(s); !id.IsZero() {
			p.put(" ", id.String())
		}
		p.put(" {\n")

		if !set.has(optNoNodeLabels) {
			p.put("    label=", g.SubgraphLabel(s).Escaped(), ";\n")
		}
		if style := g.SubgraphStyle(s).String(); style != "" && !set.has(optNoNodeStyles) {
			p.put(`    style="`, style, "\";\n")
		}
		if !set.has(optNoNodeColors) {
			if color := g.SubgraphColor(s); !color.IsZero() {
				p.put("    color=", color.Escaped(), ";\n")
			}
		}
		if shape := g.SubgraphShape(s); !shape.IsZero() {
			p.put("    shape=", shape.Escaped(), ";\n")
		}
		for _, a := range g.SubgraphAttrs(s) {
			p.put("    ", a.Name, "=", a.Value, ";\n")
		}
		for _, n := range g.SubgraphNodes(s) {
			p.put("    ", g.NodeID(n).String(), ";\n")
		}

		p.put("}\n")
		if err := p.flush(); err != nil {
			return err
		}
	}
	return nil
}

func renderNodes[N, E, S any](p *printer, g Graph[N, E, S], nodes []N, set settings) error {
	for _, n := range nodes {
		id := g.NodeID(n)
		p.put("    ", id.String())

		if !set.has(optNoNodeLabels) {
			label := g.NodeLabel(n)
			if label.IsZero() {
				label = Plain(id.String())
			}
			p.put("[label=", label.Escaped(), "]")
		}
		if style := g.NodeStyle(n).String(); style != "" && !set.has(optNoNodeStyles) {
			p.put(`[style="`, style, `"]`)
		}
		if !set.has(optNoNodeColors) {
			if color := g.NodeColor(n); !color.IsZero() {
				p.put("[color=", color.Escaped(), "]")
			}
		}
		if shape := g.NodeShape(n); !shape.IsZero() {
			p.put("[shape=", shape.Escaped(), "]")
		}
		for _, a := range g.NodeAttrs(n) {
			p.put("[", a.Name, "=", a.Value, "]")
		}

		p.put(";\n")
		if err := p.flush(); err != nil {
			return err
		}
	}
	return nil
}

func renderEdges[N, E, S any](p *printer, g Graph[N, E, S], edges []E, set settings) error {
	op := g.Kind().EdgeOp()
	for _, e := range edges {
		p.put("    ", g.NodeID(g.Source(e)).String())
		p.endpoint(g.EdgeStartPort(e), g.EdgeStartPoint(e))
		p.put(" ", op, " ", g.NodeID(g.Target(e)).String())
		p.endpoint(g.EdgeEndPort(e), g.EdgeEndPoint(e))

		if !set.has(optNoEdgeLabels) {
			p.put("[label=", g.EdgeLabel(e).Escaped(), "]")
		}
		if style := g.EdgeStyle(e).String(); style != "" && !set.has(optNoEdgeStyles) {
			p.put(`[style="`, style, `"]`)
		}
		if !set.has(optNoEdgeColors) {
			if color := g.EdgeColor(e); !color.IsZero() {
				p.put("[color=", color.Escaped(), "]")
			}
		}

		start, end := g.EdgeStartArrow(e), g.EdgeEndArrow(e)
		if !set.has(optNoArrows) && (!start.IsDefault() || !end.IsDefault()) {
			p.put("[")
			if !end.IsDefault() {
				p.put(`arrowhead="`, end.String(), `"`)
			}
			if !start.IsDefault() {
				if !end.IsDefault() {
					p.put(" ")
				}
				p.put(`dir="both" arrowtail="`, start.String(), `"`)
			}
			p.put("]")
		}

		// Edge attributes are not bracketed, unlike node attributes.
		for _, a := range g.EdgeAttrs(e) {
			p.put(a.Name, "=", a.Value)
		}

		p.put(";\n")
		if err := p.flush(); err != nil {
			return err
		}
	}
	return nil
}

// printer buffers one statement at a time.
type printer struct {
	w   io.Writer
	buf bytes.Buffer
}

func (p *printer) put(parts ...string) {
	for _, s := range parts {
		p.buf.WriteString(s)
	}
}

func (p *printer) endpoint(port ID, point CompassPoint) {
	if !port.IsZero() {
		p.put(":", port.String())
	}
	p.put(point.suffix())
}

func (p *printer) styleBlock(set settings) error {
	graphAttrs, contentAttrs := set.styleBlock()
	if len(graphAttrs) == 0 && len(contentAttrs) == 0 {
		return nil
	}
	content := strings.Join(contentAttrs, " ")
	p.put("    graph[", strings.Join(graphAttrs, " "), "];\n")
	p.put("    node[", content, "];\n")
	p.put("    edge[", content, "];\n")
	return p.flush()
}

func (p *printer) flush() error {
	if p.buf.Len() == 0 {
		return nil
	}
	_, err := p.w.Write(p.buf.Bytes())
	p.buf.Reset()
	return err
}
