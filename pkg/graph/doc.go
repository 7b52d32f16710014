// Package graph provides an in-memory graph store that renders to DOT.
//
// The [dot] package owns no graph storage: callers describe their own
// types through its capability interfaces. This package is the store used
// by the dotwalk CLI, the HTTP server and the document decoders in
// [github.com/matzehuels/dotwalk/pkg/io]. It keeps nodes, edges and
// subgraphs in insertion order and validates identifiers when they are
// added, so a graph that was built without error always renders.
//
// # Building a Graph
//
//	g, _ := graph.New("deps")
//	_ = g.AddNode(graph.Node{ID: "app"})
//	_ = g.AddNode(graph.Node{ID: "lib", Style: dot.StyleBold})
//	_ = g.AddEdge(graph.Edge{From: "app", To: "lib", Label: dot.Plain("uses")})
//
// # Rendering
//
// [Graph.View] adapts the store to [dot.Graph]; [Graph.WriteDOT] is the
// shortcut for rendering the view:
//
//	err := g.WriteDOT(os.Stdout, dot.Fontname("Helvetica"))
//
// # Errors
//
// Node, port and subgraph names that are not valid DOT identifiers are
// rejected with an error that wraps a [*dot.IDError]. Structural problems
// are reported with the sentinel errors of this package, such as
// [ErrUnknownSourceNode], and can be matched with [errors.Is].
package graph
