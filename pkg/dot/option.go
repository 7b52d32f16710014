package dot

import "fmt"

type optionKind int

const (
	optNoNodeLabels optionKind = 1 << iota
	optNoEdgeLabels
	optNoNodeStyles
	optNoEdgeStyles
	optNoNodeColors
	optNoEdgeColors
	optNoArrows
	optDarkTheme
	optFontname
)

// Option changes what [Render] writes. Flag options are checked for
// presence only, so repeating one has no further effect. When several
// [Fontname] options are passed, the first one wins.
type Option struct {
	kind     optionKind
	fontname string
}

var (
	// NoNodeLabels drops node and subgraph labels.
	NoNodeLabels = Option{kind: optNoNodeLabels}
	// NoEdgeLabels drops edge labels.
	NoEdgeLabels = Option{kind: optNoEdgeLabels}
	// NoNodeStyles drops node and subgraph styles.
	NoNodeStyles = Option{kind: optNoNodeStyles}
	// NoEdgeStyles drops edge styles.
	NoEdgeStyles = Option{kind: optNoEdgeStyles}
	// NoNodeColors drops node and subgraph colors.
	NoNodeColors = Option{kind: optNoNodeColors}
	// NoEdgeColors drops edge colors.
	NoEdgeColors = Option{kind: optNoEdgeColors}
	// NoArrows drops arrowhead, arrowtail and dir attributes.
	NoArrows = Option{kind: optNoArrows}
	// DarkTheme draws white on black.
	DarkTheme = Option{kind: optDarkTheme}
)

// Fontname sets the font of the graph, its nodes and its edges. The name
// is written between quotes without escaping.
func Fontname(name string) Option {
	return Option{kind: optFontname, fontname: name}
}

func (o Option) String() string {
	switch o.kind {
	case optNoNodeLabels:
		return "NoNodeLabels"
	case optNoEdgeLabels:
		return "NoEdgeLabels"
	case optNoNodeStyles:
		return "NoNodeStyles"
	case optNoEdgeStyles:
		return "NoEdgeStyles"
	case optNoNodeColors:
		return "NoNodeColors"
	case optNoEdgeColors:
		return "NoEdgeColors"
	case optNoArrows:
		return "NoArrows"
	case optDarkTheme:
		return "DarkTheme"
	case optFontname:
		return fmt.Sprintf("Fontname(%q)", o.fontname)
	default:
		return "Option(0)"
	}
}

// settings is the resolved form of an option list.
type settings struct {
	flags    optionKind
	fontname string
	hasFont  bool
}

func resolve(opts []Option) settings {
	var s settings
	for _, o := range opts {
		if o.kind == optFontname {
			if !s.hasFont {
				s.fontname, s.hasFont = o.fontname, true
			}
			continue
		}
		s.flags |= o.kind
	}
	return s
}

func (s settings) has(k optionKind) bool { return s.flags&k != 0 }

// styleBlock returns the graph-level and the node/edge-level tokens of the
// global style block.
func (s settings) styleBlock() (graphAttrs, contentAttrs []string) {
	if s.hasFont {
		font := `fontname="` + s.fontname + `"`
		graphAttrs = append(graphAttrs, font)
		contentAttrs = append(contentAttrs, font)
	}
	if s.has(optDarkTheme) {
		graphAttrs = append(graphAttrs, `bgcolor="black"`, `fontcolor="white"`)
		contentAttrs = append(contentAttrs, `color="white"`, `fontcolor="white"`)
	}
	return graphAttrs, contentAttrs
}
