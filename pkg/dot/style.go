package dot

// Style is the style of a node, edge or subgraph.
// See https://www.graphviz.org/docs/attr-types/style/. Some styles are
// only meaningful for nodes.
type Style int

const (
	// StyleNone emits no style attribute at all.
	StyleNone Style = iota
	StyleSolid
	StyleDashed
	StyleDotted
	StyleBold
	StyleRounded
	StyleDiagonals
	StyleFilled
	StyleStriped
	StyleWedged
)

var styleNames = [...]string{
	StyleNone:      "",
	StyleSolid:     "solid",
	StyleDashed:    "dashed",
	StyleDotted:    "dotted",
	StyleBold:      "bold",
	StyleRounded:   "rounded",
	StyleDiagonals: "diagonals",
	StyleFilled:    "filled",
	StyleStriped:   "striped",
	StyleWedged:    "wedged",
}

// String returns the DOT style token, or "" for [StyleNone] and for values
// outside the enumeration.
func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return ""
	}
	return styleNames[s]
}

// Styles returns every style except [StyleNone], in declaration order.
func Styles() []Style {
	return []Style{
		StyleSolid, StyleDashed, StyleDotted, StyleBold, StyleRounded,
		StyleDiagonals, StyleFilled, StyleStriped, StyleWedged,
	}
}
