package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/dotwalk/pkg/dot"
)

var (
	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrUnknownMember is returned by [Graph.AddSubgraph] when a member
	// node does not exist in the graph.
	ErrUnknownMember = errors.New("unknown subgraph member")

	// ErrDuplicateSubgraphID is returned by [Graph.AddSubgraph] when a named
	// subgraph with the same ID already exists. Anonymous subgraphs never
	// collide.
	ErrDuplicateSubgraphID = errors.New("duplicate subgraph ID")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge or
	// a subgraph references a node that doesn't exist. This indicates the
	// graph was modified through a returned pointer.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
)

// Node is a vertex with its presentation attributes. A zero Label renders
// as the node ID; a zero Style, Color or Shape is omitted.
type Node struct {
	ID    string
	Label dot.Label
	Style dot.Style
	Color dot.Label
	Shape dot.Label
	Attrs dot.Attrs
}

// Edge connects two nodes. In an undirected graph From and To only fix the
// order in which the endpoints are written.
type Edge struct {
	From  string
	To    string
	Label dot.Label
	Style dot.Style
	Color dot.Label

	Head dot.Arrow // arrow drawn at To
	Tail dot.Arrow // arrow drawn at From

	// Ports are optional record or HTML-table field names.
	FromPort    string
	ToPort      string
	FromCompass dot.CompassPoint
	ToCompass   dot.CompassPoint

	Attrs dot.Attrs
}

// Subgraph groups existing nodes. An empty ID makes it anonymous; an ID
// starting with "cluster_" makes Graphviz draw it as a box.
type Subgraph struct {
	ID    string
	Label dot.Label
	Style dot.Style
	Color dot.Label
	Shape dot.Label
	Attrs dot.Attrs
	Nodes []string
}

// Graph is an in-memory graph whose nodes, edges and subgraphs keep their
// insertion order, so rendering it is deterministic.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	Kind    dot.GraphKind
	RankDir dot.RankDir
	Attrs   dot.Attrs

	id        dot.ID
	nodes     []*Node
	index     map[string]*Node
	edges     []*Edge
	subgraphs []*Subgraph
}

// New creates an empty directed graph named id. The name must be a valid
// [dot.ID].
func New(id string) (*Graph, error) {
	gid, err := dot.NewID(id)
	if err != nil {
		return nil, fmt.Errorf("graph %q: %w", id, err)
	}
	return &Graph{
		id:    gid,
		index: make(map[string]*Node),
	}, nil
}

// ID returns the graph name.
func (g *Graph) ID() dot.ID { return g.id }

// AddNode adds a node to the graph. The node ID is validated with
// [dot.NewID], so identifier errors surface here rather than at render
// time; the returned error then wraps a [*dot.IDError]. Returns
// ErrDuplicateNodeID if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if _, err := dot.NewID(n.ID); err != nil {
		return fmt.Errorf("node %q: %w", n.ID, err)
	}
	if _, exists := g.index[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	n.Attrs = slices.Clone(n.Attrs)
	node := &n
	g.nodes = append(g.nodes, node)
	g.index[node.ID] = node
	return nil
}

// AddEdge adds an edge between two existing nodes.
// Returns ErrUnknownSourceNode if the From node doesn't exist,
// ErrUnknownTargetNode if the To node doesn't exist, or an error wrapping
// a [*dot.IDError] if a port name is not a valid identifier. Self loops and
// parallel edges are allowed.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.index[e.From]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSourceNode, e.From)
	}
	if _, ok := g.index[e.To]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTargetNode, e.To)
	}
	for _, port := range []string{e.FromPort, e.ToPort} {
		if port == "" {
			continue
		}
		if _, err := dot.NewID(port); err != nil {
			return fmt.Errorf("edge %s -> %s: port %q: %w", e.From, e.To, port, err)
		}
	}
	e.Attrs = slices.Clone(e.Attrs)
	g.edges = append(g.edges, &e)
	return nil
}

// AddSubgraph adds a subgraph over existing nodes. A non-empty ID must be a
// valid [dot.ID] and unique among subgraphs. Returns ErrUnknownMember if a
// member is not a node of the graph. A node may belong to several
// subgraphs.
func (g *Graph) AddSubgraph(s Subgraph) error {
	if s.ID != "" {
		if _, err := dot.NewID(s.ID); err != nil {
			return fmt.Errorf("subgraph %q: %w", s.ID, err)
		}
		for _, other := range g.subgraphs {
			if other.ID == s.ID {
				return fmt.Errorf("%w: %s", ErrDuplicateSubgraphID, s.ID)
			}
		}
	}
	for _, id := range s.Nodes {
		if _, ok := g.index[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMember, id)
		}
	}
	s.Nodes = slices.Clone(s.Nodes)
	s.Attrs = slices.Clone(s.Attrs)
	g.subgraphs = append(g.subgraphs, &s)
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not found.
// The returned node pointer refers to the actual node in the graph, so
// modifications affect the graph. Its ID must not be changed.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// nodes in the graph.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// Subgraphs returns all subgraphs in insertion order.
func (g *Graph) Subgraphs() []*Subgraph { return slices.Clone(g.subgraphs) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Sources returns the nodes no edge points to, in insertion order.
// A node with a self loop is not a source.
func (g *Graph) Sources() []*Node {
	targets := make(map[string]bool, len(g.edges))
	for _, e := range g.edges {
		targets[e.To] = true
	}
	return g.nodesWithout(targets)
}

// Sinks returns the nodes no edge leaves, in insertion order.
func (g *Graph) Sinks() []*Node {
	origins := make(map[string]bool, len(g.edges))
	for _, e := range g.edges {
		origins[e.From] = true
	}
	return g.nodesWithout(origins)
}

func (g *Graph) nodesWithout(ids map[string]bool) []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if !ids[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

// Validate re-checks what the Add methods checked on insertion: every ID
// and port is a valid [dot.ID] and every edge endpoint and subgraph member
// exists. It only fails after a returned pointer was modified.
func (g *Graph) Validate() error {
	for _, n := range g.nodes {
		if _, err := dot.NewID(n.ID); err != nil {
			return fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range g.edges {
		_, okS := g.index[e.From]
		_, okD := g.index[e.To]
		if !okS || !okD {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidEdgeEndpoint, e.From, e.To)
		}
		for _, port := range []string{e.FromPort, e.ToPort} {
			if port == "" {
				continue
			}
			if _, err := dot.NewID(port); err != nil {
				return fmt.Errorf("edge %s -> %s: port %q: %w", e.From, e.To, port, err)
			}
		}
	}
	for _, s := range g.subgraphs {
		for _, id := range s.Nodes {
			if _, ok := g.index[id]; !ok {
				return fmt.Errorf("%w: %s", ErrInvalidEdgeEndpoint, id)
			}
		}
	}
	return nil
}
