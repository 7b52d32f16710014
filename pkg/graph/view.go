package graph

import (
	"io"

	"github.com/matzehuels/dotwalk/pkg/dot"
)

// View returns g as a [dot.Graph]. The view reads g on every call, so it
// reflects later changes.
func (g *Graph) View() dot.Graph[*Node, *Edge, *Subgraph] { return view{g} }

// WriteDOT renders g to w.
func (g *Graph) WriteDOT(w io.Writer, opts ...dot.Option) error {
	return dot.Render(w, g.View(), opts...)
}

type view struct{ g *Graph }

// toID converts a name validated on insertion. An empty name is the zero ID.
func toID(name string) dot.ID {
	v, _ := dot.NewID(name)
	return v
}

func (v view) Nodes() []*Node { return v.g.nodes }
func (v view) Edges() []*Edge { return v.g.edges }
func (v view) Source(e *Edge) *Node { return v.g.index[e.From] }
func (v view) Target(e *Edge) *Node { return v.g.index[e.To] }
func (v view) Subgraphs() []*Subgraph { return v.g.subgraphs }
func (v view) GraphID() dot.ID { return v.g.id }
func (v view) Kind() dot.GraphKind { return v.g.Kind }
func (v view) RankDir() dot.RankDir { return v.g.RankDir }
func (v view) GraphAttrs() dot.Attrs { return v.g.Attrs }
func (v view) NodeID(n *Node) dot.ID { return toID(n.ID) }
func (v view) NodeLabel(n *Node) dot.Label { return n.Label }
func (v view) NodeStyle(n *Node) dot.Style { return n.Style }
func (v view) NodeColor(n *Node) dot.Label { return n.Color }
func (v view) NodeShape(n *Node) dot.Label { return n.Shape }
func (v view) NodeAttrs(n *Node) dot.Attrs { return n.Attrs }
func (v view) EdgeLabel(e *Edge) dot.Label { return e.Label }
func (v view) EdgeStyle(e *Edge) dot.Style { return e.Style }
func (v view) EdgeColor(e *Edge) dot.Label { return e.Color }
func (v view) EdgeStartArrow(e *Edge) dot.Arrow { return e.Tail }
func (v view) EdgeEndArrow(e *Edge) dot.Arrow { return e.Head }
func (v view) EdgeStartPort(e *Edge) dot.ID { return toID(e.FromPort) }
func (v view) EdgeEndPort(e *Edge) dot.ID { return toID(e.ToPort) }
func (v view) EdgeStartPoint(e *Edge) dot.CompassPoint { return e.FromCompass }
func (v view) EdgeEndPoint(e *Edge) dot.CompassPoint { return e.ToCompass }
func (v view) EdgeAttrs(e *Edge) dot.Attrs { return e.Attrs }
func (v view) SubgraphID(s *Subgraph) dot.ID { return toID(s.ID) }
func (v view) SubgraphLabel(s *Subgraph) dot.Label { return s.Label }
func (v view) SubgraphStyle(s *Subgraph) dot.Style { return s.Style }
func (v view) SubgraphColor(s *Subgraph) dot.Label { return s.Color }
func (v view) SubgraphShape(s *Subgraph) dot.Label { return s.Shape }
func (v view) SubgraphAttrs(s *Subgraph) dot.Attrs { return s.Attrs }

func (v view) SubgraphNodes(s *Subgraph) []*Node {
	nodes := make([]*Node, 0, len(s.Nodes))
	for _, name := range s.Nodes {
		if n, ok := v.g.index[name]; ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
