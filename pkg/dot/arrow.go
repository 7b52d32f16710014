package dot

import (
	"fmt"
	"strings"
)

// ShapeFill tells whether an arrow shape is drawn filled or as an outline.
type ShapeFill int

const (
	Filled ShapeFill = iota
	Open
)

// String returns the fill modifier: "o" for [Open], "" for [Filled].
func (f ShapeFill) String() string {
	if f == Open {
		return "o"
	}
	return ""
}

// Side clips an arrow shape to one half. [Left] keeps only the part left
// of the edge.
type Side int

const (
	Both Side = iota
	Left
	Right
)

// String returns the side modifier: "l", "r", or "" for [Both].
func (s Side) String() string {
	switch s {
	case Left:
		return "l"
	case Right:
		return "r"
	default:
		return ""
	}
}

// ArrowShape is one of the primitive Graphviz arrow shapes.
// See https://graphviz.org/doc/info/arrows.html.
type ArrowShape int

const (
	ShapeNone ArrowShape = iota
	ShapeNormal
	ShapeBox
	ShapeCrow
	ShapeCurve
	ShapeICurve
	ShapeDiamond
	ShapeDot
	ShapeInv
	ShapeTee
	ShapeVee
)

var arrowShapeNames = [...]string{
	ShapeNone:    "none",
	ShapeNormal:  "normal",
	ShapeBox:     "box",
	ShapeCrow:    "crow",
	ShapeCurve:   "curve",
	ShapeICurve:  "icurve",
	ShapeDiamond: "diamond",
	ShapeDot:     "dot",
	ShapeInv:     "inv",
	ShapeTee:     "tee",
	ShapeVee:     "vee",
}

// String returns the shape keyword.
func (s ArrowShape) String() string {
	if s < 0 || int(s) >= len(arrowShapeNames) {
		return fmt.Sprintf("ArrowShape(%d)", int(s))
	}
	return arrowShapeNames[s]
}

// HasFill reports whether the shape takes a [ShapeFill] modifier.
func (s ArrowShape) HasFill() bool {
	switch s {
	case ShapeNormal, ShapeBox, ShapeICurve, ShapeDiamond, ShapeInv, ShapeDot:
		return true
	}
	return false
}

// HasSide reports whether the shape takes a [Side] modifier.
func (s ArrowShape) HasSide() bool {
	switch s {
	case ShapeNormal, ShapeBox, ShapeICurve, ShapeDiamond, ShapeInv,
		ShapeCrow, ShapeCurve, ShapeTee, ShapeVee:
		return true
	}
	return false
}

// ArrowShapes returns every arrow shape in declaration order.
func ArrowShapes() []ArrowShape {
	shapes := make([]ArrowShape, len(arrowShapeNames))
	for i := range shapes {
		shapes[i] = ArrowShape(i)
	}
	return shapes
}

// ArrowVertex is one primitive of a possibly composite arrow glyph.
// Fill is ignored for shapes without a fill modifier and Side for shapes
// without a side modifier. The zero value is the "none" shape.
type ArrowVertex struct {
	Shape ArrowShape
	Fill  ShapeFill
	Side  Side
}

func VertexNone() ArrowVertex { return ArrowVertex{Shape: ShapeNone} }

// VertexNormal is the usual triangle. Graphviz accepts both modifiers on
// it even though its documentation only lists them for some shapes.
func VertexNormal(fill ShapeFill, side Side) ArrowVertex {
	return ArrowVertex{Shape: ShapeNormal, Fill: fill, Side: side}
}

func VertexBox(fill ShapeFill, side Side) ArrowVertex {
	return ArrowVertex{Shape: ShapeBox, Fill: fill, Side: side}
}

// VertexCrow is the three-pronged crow's foot.
func VertexCrow(side Side) ArrowVertex { return ArrowVertex{Shape: ShapeCrow, Side: side} }

func VertexCurve(side Side) ArrowVertex { return ArrowVertex{Shape: ShapeCurve, Side: side} }

func VertexICurve(fill ShapeFill, side Side) ArrowVertex {
	return ArrowVertex{Shape: ShapeICurve, Fill: fill, Side: side}
}

func VertexDiamond(fill ShapeFill, side Side) ArrowVertex {
	return ArrowVertex{Shape: ShapeDiamond, Fill: fill, Side: side}
}

// VertexDot is a circle; it has no side modifier.
func VertexDot(fill ShapeFill) ArrowVertex { return ArrowVertex{Shape: ShapeDot, Fill: fill} }

func VertexInv(fill ShapeFill, side Side) ArrowVertex {
	return ArrowVertex{Shape: ShapeInv, Fill: fill, Side: side}
}

func VertexTee(side Side) ArrowVertex { return ArrowVertex{Shape: ShapeTee, Side: side} }

func VertexVee(side Side) ArrowVertex { return ArrowVertex{Shape: ShapeVee, Side: side} }

// String renders the vertex: fill modifier, side modifier, shape keyword,
// in that order, skipping modifiers the shape does not take.
func (v ArrowVertex) String() string {
	if v.Shape == ShapeNone {
		return "none"
	}
	var b strings.Builder
	if v.Shape.HasFill() {
		b.WriteString(v.Fill.String())
	}
	if v.Shape.HasSide() {
		b.WriteString(v.Side.String())
	}
	b.WriteString(v.Shape.String())
	return b.String()
}

// MaxArrowVertices is the most vertices Graphviz accepts in one arrow.
const MaxArrowVertices = 4

// Arrow is an arrowhead or arrowtail made of up to four vertices. The zero
// Arrow is the default arrow: no arrowhead or arrowtail attribute is ever
// written for it.
type Arrow struct {
	vertices []ArrowVertex
}

// NewArrow builds an arrow from vertices in drawing order, starting at the
// node. It panics when given more than [MaxArrowVertices] vertices.
func NewArrow(vertices ...ArrowVertex) Arrow {
	if len(vertices) > MaxArrowVertices {
		panic(fmt.Sprintf("dot: arrow has %d vertices, at most %d allowed", len(vertices), MaxArrowVertices))
	}
	if len(vertices) == 0 {
		return Arrow{}
	}
	return Arrow{vertices: append([]ArrowVertex(nil), vertices...)}
}

// NoArrow is the explicit "none" arrow. Unlike the zero Arrow it is
// written out, which removes the arrowhead Graphviz would otherwise draw.
func NoArrow() Arrow { return NewArrow(VertexNone()) }

// NormalArrow is a single filled, unclipped triangle.
func NormalArrow() Arrow { return NewArrow(VertexNormal(Filled, Both)) }

// IsDefault reports whether a has no vertices.
func (a Arrow) IsDefault() bool { return len(a.vertices) == 0 }

// Vertices returns a copy of the arrow's vertices.
func (a Arrow) Vertices() []ArrowVertex {
	return append([]ArrowVertex(nil), a.vertices...)
}

// String concatenates the vertices' tokens, so a left crow followed by a
// tee becomes "lcrowtee". The default arrow renders as "".
func (a Arrow) String() string {
	var b strings.Builder
	for _, v := range a.vertices {
		b.WriteString(v.String())
	}
	return b.String()
}
