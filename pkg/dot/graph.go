package dot

// Walker exposes the structure of a graph. N, E and S are the caller's
// node, edge and subgraph handles; the renderer never looks inside them and
// only passes them back to the same graph. Handles are copied freely, so
// they should be cheap to copy (indices, pointers, small structs).
//
// Every method is called afresh for each render phase. A Walker must
// return a consistent view for the duration of one [Render] call. Returned
// slices are only read, and are not retained after Render returns.
type Walker[N, E, S any] interface {
	// Nodes returns all nodes, in output order.
	Nodes() []N
	// Edges returns all edges, in output order.
	Edges() []E
	// Source returns the node an edge starts at.
	Source(e E) N
	// Target returns the node an edge ends at.
	Target(e E) N
	// Subgraphs returns all subgraphs, in output order.
	Subgraphs() []S
	// SubgraphNodes returns the members of a subgraph.
	SubgraphNodes(s S) []N
}

// Labeller supplies identifiers, labels and attributes.
//
// Most methods have a natural default that [Defaults] provides; in each
// case the zero value of the result type means "use the default".
// Implementations must return valid identifiers: the renderer writes IDs
// as they are and never validates them again.
type Labeller[N, E, S any] interface {
	// GraphID names the graph.
	GraphID() ID
	// Kind selects digraph or graph. Defaults to Directed.
	Kind() GraphKind
	// RankDir is only written for directed graphs.
	RankDir() RankDir
	// GraphAttrs are written one per line after the header.
	GraphAttrs() Attrs

	// NodeID must be unique within the graph.
	NodeID(n N) ID
	// NodeLabel defaults to the node id when zero.
	NodeLabel(n N) Label
	NodeStyle(n N) Style
	// NodeColor is one of the Graphviz color names or values; zero omits it.
	NodeColor(n N) Label
	// NodeShape is one of the Graphviz shape names; zero omits it.
	NodeShape(n N) Label
	NodeAttrs(n N) Attrs

	// EdgeLabel defaults to the empty string, which is still written.
	EdgeLabel(e E) Label
	EdgeStyle(e E) Style
	EdgeColor(e E) Label
	// EdgeStartArrow is drawn at the source. The zero Arrow writes nothing.
	EdgeStartArrow(e E) Arrow
	// EdgeEndArrow is drawn at the target. The zero Arrow writes nothing.
	EdgeEndArrow(e E) Arrow
	EdgeStartPort(e E) ID
	EdgeEndPort(e E) ID
	EdgeStartPoint(e E) CompassPoint
	EdgeEndPoint(e E) CompassPoint
	EdgeAttrs(e E) Attrs

	// SubgraphID may be zero for an anonymous subgraph. Prefix it with
	// "cluster_" to have Graphviz draw the subgraph in its own rectangle.
	SubgraphID(s S) ID
	// SubgraphLabel defaults to the empty string, which is still written.
	SubgraphLabel(s S) Label
	SubgraphStyle(s S) Style
	SubgraphColor(s S) Label
	SubgraphShape(s S) Label
	SubgraphAttrs(s S) Attrs
}

// Graph is what [Render] needs: both capabilities over the same handles.
type Graph[N, E, S any] interface {
	Walker[N, E, S]
	Labeller[N, E, S]
}

// Defaults implements every optional method of [Walker] and [Labeller]
// with its default. Embed it and override what you need:
//
//	type myGraph struct {
//		dot.Defaults[int, [2]int, struct{}]
//		edges [][2]int
//	}
//
// The embedding type still has to provide Nodes, Edges, Source, Target,
// GraphID and NodeID.
type Defaults[N, E, S any] struct{}

func (Defaults[N, E, S]) Subgraphs() []S { return nil }
func (Defaults[N, E, S]) SubgraphNodes(S) []N { return nil }
func (Defaults[N, E, S]) Kind() GraphKind { return Directed }
func (Defaults[N, E, S]) RankDir() RankDir { return RankDirDefault }
func (Defaults[N, E, S]) GraphAttrs() Attrs { return nil }
func (Defaults[N, E, S]) NodeLabel(N) Label { return Label{} }
func (Defaults[N, E, S]) NodeStyle(N) Style { return StyleNone }
func (Defaults[N, E, S]) NodeColor(N) Label { return Label{} }
func (Defaults[N, E, S]) NodeShape(N) Label { return Label{} }
func (Defaults[N, E, S]) NodeAttrs(N) Attrs { return nil }
func (Defaults[N, E, S]) EdgeLabel(E) Label { return Label{} }
func (Defaults[N, E, S]) EdgeStyle(E) Style { return StyleNone }
func (Defaults[N, E, S]) EdgeColor(E) Label { return Label{} }
func (Defaults[N, E, S]) EdgeStartArrow(E) Arrow { return Arrow{} }
func (Defaults[N, E, S]) EdgeEndArrow(E) Arrow { return Arrow{} }
func (Defaults[N, E, S]) EdgeStartPort(E) ID { return ID{} }
func (Defaults[N, E, S]) EdgeEndPort(E) ID { return ID{} }
func (Defaults[N, E, S]) EdgeStartPoint(E) CompassPoint { return CompassNone }
func (Defaults[N, E, S]) EdgeEndPoint(E) CompassPoint { return CompassNone }
func (Defaults[N, E, S]) EdgeAttrs(E) Attrs { return nil }
func (Defaults[N, E, S]) SubgraphID(S) ID { return ID{} }
func (Defaults[N, E, S]) SubgraphLabel(S) Label { return Label{} }
func (Defaults[N, E, S]) SubgraphStyle(S) Style { return StyleNone }
func (Defaults[N, E, S]) SubgraphColor(S) Label { return Label{} }
func (Defaults[N, E, S]) SubgraphShape(S) Label { return Label{} }
func (Defaults[N, E, S]) SubgraphAttrs(S) Attrs { return nil }
