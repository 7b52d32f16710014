package io

import (
	"errors"
	"fmt"

	"github.com/matzehuels/dotwalk/pkg/dot"
	errs "github.com/matzehuels/dotwalk/pkg/errors"
	"github.com/matzehuels/dotwalk/pkg/graph"
)

// document is the serialized form shared by every format.
type document struct {
	ID        string     `json:"id" toml:"id" yaml:"id"`
	Kind      string     `json:"kind,omitempty" toml:"kind,omitempty" yaml:"kind,omitempty"`
	RankDir   string     `json:"rankdir,omitempty" toml:"rankdir,omitempty" yaml:"rankdir,omitempty"`
	Attrs     []attr     `json:"attrs,omitempty" toml:"attrs,omitempty" yaml:"attrs,omitempty"`
	Nodes     []node     `json:"nodes" toml:"nodes" yaml:"nodes"`
	Edges     []edge     `json:"edges,omitempty" toml:"edges,omitempty" yaml:"edges,omitempty"`
	Subgraphs []subgraph `json:"subgraphs,omitempty" toml:"subgraphs,omitempty" yaml:"subgraphs,omitempty"`
}

type attr struct {
	Name  string `json:"name" toml:"name" yaml:"name"`
	Value string `json:"value" toml:"value" yaml:"value"`
}

// Label is a pointer so that an absent label (render the id) differs from
// an empty one.
type node struct {
	ID        string  `json:"id" toml:"id" yaml:"id"`
	Label     *string `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	LabelKind string  `json:"label_kind,omitempty" toml:"label_kind,omitempty" yaml:"label_kind,omitempty"`
	Style     string  `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty"`
	Color     string  `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Shape     string  `json:"shape,omitempty" toml:"shape,omitempty" yaml:"shape,omitempty"`
	Attrs     []attr  `json:"attrs,omitempty" toml:"attrs,omitempty" yaml:"attrs,omitempty"`
}

type edge struct {
	From        string   `json:"from" toml:"from" yaml:"from"`
	To          string   `json:"to" toml:"to" yaml:"to"`
	Label       *string  `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	LabelKind   string   `json:"label_kind,omitempty" toml:"label_kind,omitempty" yaml:"label_kind,omitempty"`
	Style       string   `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty"`
	Color       string   `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Head        []string `json:"head,omitempty" toml:"head,omitempty" yaml:"head,omitempty"`
	Tail        []string `json:"tail,omitempty" toml:"tail,omitempty" yaml:"tail,omitempty"`
	FromPort    string   `json:"from_port,omitempty" toml:"from_port,omitempty" yaml:"from_port,omitempty"`
	ToPort      string   `json:"to_port,omitempty" toml:"to_port,omitempty" yaml:"to_port,omitempty"`
	FromCompass string   `json:"from_compass,omitempty" toml:"from_compass,omitempty" yaml:"from_compass,omitempty"`
	ToCompass   string   `json:"to_compass,omitempty" toml:"to_compass,omitempty" yaml:"to_compass,omitempty"`
	Attrs       []attr   `json:"attrs,omitempty" toml:"attrs,omitempty" yaml:"attrs,omitempty"`
}

type subgraph struct {
	ID        string   `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Label     *string  `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	LabelKind string   `json:"label_kind,omitempty" toml:"label_kind,omitempty" yaml:"label_kind,omitempty"`
	Style     string   `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty"`
	Color     string   `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Shape     string   `json:"shape,omitempty" toml:"shape,omitempty" yaml:"shape,omitempty"`
	Attrs     []attr   `json:"attrs,omitempty" toml:"attrs,omitempty" yaml:"attrs,omitempty"`
	Nodes     []string `json:"nodes" toml:"nodes" yaml:"nodes"`
}

// toGraph validates d and builds the graph it describes. Errors carry a
// code from pkg/errors: INVALID_ID for identifier errors, INVALID_OPTION
// for unknown tokens and INVALID_GRAPH for structural problems.
func (d *document) toGraph() (*graph.Graph, error) {
	g, err := graph.New(d.ID)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidID, err, "graph id")
	}
	if g.Kind, err = ParseKind(d.Kind); err != nil {
		return nil, err
	}
	if g.RankDir, err = ParseRankDir(d.RankDir); err != nil {
		return nil, err
	}
	g.Attrs = toAttrs(d.Attrs)

	for _, n := range d.Nodes {
		gn, err := n.toNode()
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		if err := g.AddNode(gn); err != nil {
			return nil, addError(err, "node %s", n.ID)
		}
	}
	for _, e := range d.Edges {
		ge, err := e.toEdge()
		if err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
		if err := g.AddEdge(ge); err != nil {
			return nil, addError(err, "edge %s->%s", e.From, e.To)
		}
	}
	for i, s := range d.Subgraphs {
		gs, err := s.toSubgraph()
		if err != nil {
			return nil, fmt.Errorf("subgraph %d: %w", i, err)
		}
		if err := g.AddSubgraph(gs); err != nil {
			return nil, addError(err, "subgraph %d", i)
		}
	}
	return g, nil
}

func (n node) toNode() (graph.Node, error) {
	label, err := optionalLabel(n.LabelKind, n.Label)
	if err != nil {
		return graph.Node{}, err
	}
	style, err := ParseStyle(n.Style)
	if err != nil {
		return graph.Node{}, err
	}
	return graph.Node{
		ID:    n.ID,
		Label: label,
		Style: style,
		Color: plain(n.Color),
		Shape: plain(n.Shape),
		Attrs: toAttrs(n.Attrs),
	}, nil
}

func (e edge) toEdge() (graph.Edge, error) {
	label, err := optionalLabel(e.LabelKind, e.Label)
	if err != nil {
		return graph.Edge{}, err
	}
	out := graph.Edge{
		From:     e.From,
		To:       e.To,
		Label:    label,
		Color:    plain(e.Color),
		FromPort: e.FromPort,
		ToPort:   e.ToPort,
		Attrs:    toAttrs(e.Attrs),
	}
	if out.Style, err = ParseStyle(e.Style); err != nil {
		return graph.Edge{}, err
	}
	if out.Head, err = ParseArrow(e.Head); err != nil {
		return graph.Edge{}, fmt.Errorf("head: %w", err)
	}
	if out.Tail, err = ParseArrow(e.Tail); err != nil {
		return graph.Edge{}, fmt.Errorf("tail: %w", err)
	}
	if out.FromCompass, err = ParseCompassPoint(e.FromCompass); err != nil {
		return graph.Edge{}, err
	}
	if out.ToCompass, err = ParseCompassPoint(e.ToCompass); err != nil {
		return graph.Edge{}, err
	}
	return out, nil
}

func (s subgraph) toSubgraph() (graph.Subgraph, error) {
	label, err := optionalLabel(s.LabelKind, s.Label)
	if err != nil {
		return graph.Subgraph{}, err
	}
	style, err := ParseStyle(s.Style)
	if err != nil {
		return graph.Subgraph{}, err
	}
	return graph.Subgraph{
		ID:    s.ID,
		Label: label,
		Style: style,
		Color: plain(s.Color),
		Shape: plain(s.Shape),
		Attrs: toAttrs(s.Attrs),
		Nodes: s.Nodes,
	}, nil
}

// fromGraph is the inverse of toGraph. Colors and shapes are written as
// their raw text.
func fromGraph(g *graph.Graph) document {
	d := document{
		ID:      g.ID().String(),
		Kind:    g.Kind.Keyword(),
		RankDir: g.RankDir.String(),
		Attrs:   fromAttrs(g.Attrs),
		Nodes:   make([]node, 0, g.NodeCount()),
	}
	for _, n := range g.Nodes() {
		text, kind := labelFields(n.Label)
		d.Nodes = append(d.Nodes, node{
			ID:        n.ID,
			Label:     text,
			LabelKind: kind,
			Style:     n.Style.String(),
			Color:     n.Color.Text(),
			Shape:     n.Shape.Text(),
			Attrs:     fromAttrs(n.Attrs),
		})
	}
	for _, e := range g.Edges() {
		text, kind := labelFields(e.Label)
		d.Edges = append(d.Edges, edge{
			From:        e.From,
			To:          e.To,
			Label:       text,
			LabelKind:   kind,
			Style:       e.Style.String(),
			Color:       e.Color.Text(),
			Head:        arrowTokens(e.Head),
			Tail:        arrowTokens(e.Tail),
			FromPort:    e.FromPort,
			ToPort:      e.ToPort,
			FromCompass: e.FromCompass.String(),
			ToCompass:   e.ToCompass.String(),
			Attrs:       fromAttrs(e.Attrs),
		})
	}
	for _, s := range g.Subgraphs() {
		text, kind := labelFields(s.Label)
		d.Subgraphs = append(d.Subgraphs, subgraph{
			ID:        s.ID,
			Label:     text,
			LabelKind: kind,
			Style:     s.Style.String(),
			Color:     s.Color.Text(),
			Shape:     s.Shape.Text(),
			Attrs:     fromAttrs(s.Attrs),
			Nodes:     s.Nodes,
		})
	}
	return d
}

// addError codes an error returned by the graph store.
func addError(err error, format string, args ...any) error {
	code := errs.ErrCodeInvalidGraph
	if errors.Is(err, dot.ErrInvalidID) {
		code = errs.ErrCodeInvalidID
	}
	return errs.Wrap(code, err, format, args...)
}

func optionalLabel(kind string, text *string) (dot.Label, error) {
	if text == nil {
		if _, err := ParseLabelKind(kind); err != nil {
			return dot.Label{}, err
		}
		return dot.Label{}, nil
	}
	return ParseLabel(kind, *text)
}

func labelFields(l dot.Label) (*string, string) {
	if l.IsZero() {
		return nil, ""
	}
	text := l.Text()
	if l.Kind() == dot.PlainLabel {
		return &text, ""
	}
	return &text, l.Kind().String()
}

func plain(s string) dot.Label {
	if s == "" {
		return dot.Label{}
	}
	return dot.Plain(s)
}

func toAttrs(in []attr) dot.Attrs {
	if len(in) == 0 {
		return nil
	}
	out := make(dot.Attrs, len(in))
	for i, a := range in {
		out[i] = dot.Attr{Name: a.Name, Value: a.Value}
	}
	return out
}

func fromAttrs(in dot.Attrs) []attr {
	if len(in) == 0 {
		return nil
	}
	out := make([]attr, len(in))
	for i, a := range in {
		out[i] = attr{Name: a.Name, Value: a.Value}
	}
	return out
}
