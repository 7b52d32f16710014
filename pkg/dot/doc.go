// Package dot writes graphs in the Graphviz DOT language.
//
// The package owns no graph storage. Callers describe their own graph
// through two small interfaces and hand it to [Render], which walks it and
// writes a human-readable .dot document with a very regular structure,
// suitable for Graphviz and for easy post-processing.
//
// # Capability Interfaces
//
//   - [Walker]: enumerates nodes, edges and subgraphs, and resolves the
//     endpoints of an edge
//   - [Labeller]: supplies identifiers, labels, styles, colors, shapes,
//     arrows, ports and free-form attributes
//
// Both are generic over the caller's node, edge and subgraph handles.
// Embed [Defaults] to get the default for every optional method:
//
//	type edges [][2]int
//
//	type numbered struct {
//		dot.Defaults[int, [2]int, struct{}]
//		edges edges
//	}
//
//	func (g numbered) Nodes() []int             { return []int{0, 1, 2} }
//	func (g numbered) Edges() [][2]int          { return g.edges }
//	func (g numbered) Source(e [2]int) int      { return e[0] }
//	func (g numbered) Target(e [2]int) int      { return e[1] }
//	func (g numbered) GraphID() dot.ID          { return dot.MustID("numbered") }
//	func (g numbered) NodeID(n int) dot.ID      { return dot.MustID(fmt.Sprintf("N%d", n)) }
//
//	err := dot.Render(os.Stdout, numbered{edges: edges{{0, 1}, {1, 2}}})
//
// # Identifiers and Labels
//
// [ID] values are bare words matching [A-Za-z_][A-Za-z0-9_]*; [NewID]
// rejects anything else with an [*IDError]. The renderer trusts the IDs it
// is given and never validates them again.
//
// [Label] has three variants:
//
//	dot.Plain(`C:\tmp`)      // "C:\\tmp"        backslash shown as is
//	dot.Esc(`left\l`)        // "left\l"         escString, \l left-justifies
//	dot.HTML(`<b>bold</b>`)  // <<b>bold</b>>    written verbatim
//
// [EscapeHTML] prepares untrusted text for an HTML label.
//
// # Attributes
//
// [Style], [Arrow], [ArrowVertex], [CompassPoint], [RankDir] and
// [GraphKind] are closed enumerations with fixed DOT tokens. Encoding them
// never fails. An [Arrow] is a sequence of up to four vertices rendered
// as the concatenation of their tokens:
//
//	dot.NewArrow(dot.VertexCrow(dot.Left), dot.VertexTee(dot.Both)).String() // "lcrowtee"
//
// # Options
//
// [Option] values suppress parts of the output ([NoNodeLabels],
// [NoArrows], ...) or add a global style block ([Fontname], [DarkTheme]).
//
// # Errors
//
// Render returns only errors from the io.Writer, unchanged. Identifier
// errors happen earlier, when the caller builds its IDs.
//
// # Concurrency
//
// The package holds no mutable state. Independent Render calls may run in
// parallel as long as the graphs they walk are not modified meanwhile.
package dot
