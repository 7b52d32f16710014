package io

import (
	"strings"

	"github.com/matzehuels/dotwalk/pkg/dot"
	errs "github.com/matzehuels/dotwalk/pkg/errors"
)

var styleByName = func() map[string]dot.Style {
	m := make(map[string]dot.Style)
	for _, s := range dot.Styles() {
		m[s.String()] = s
	}
	return m
}()

var shapeByName = func() map[string]dot.ArrowShape {
	m := make(map[string]dot.ArrowShape)
	for _, s := range dot.ArrowShapes() {
		m[s.String()] = s
	}
	return m
}()

var rankDirByName = map[string]dot.RankDir{
	"":   dot.RankDirDefault,
	"TB": dot.TopBottom,
	"LR": dot.LeftRight,
	"BT": dot.BottomTop,
	"RL": dot.RightLeft,
}

var compassByName = map[string]dot.CompassPoint{
	"":   dot.CompassNone,
	"n":  dot.North,
	"ne": dot.NorthEast,
	"e":  dot.East,
	"se": dot.SouthEast,
	"s":  dot.South,
	"sw": dot.SouthWest,
	"w":  dot.West,
	"nw": dot.NorthWest,
	"c":  dot.Center,
}

var kindByName = map[string]dot.GraphKind{
	"":           dot.Directed,
	"digraph":    dot.Directed,
	"directed":   dot.Directed,
	"graph":      dot.Undirected,
	"undirected": dot.Undirected,
}

var labelKindByName = map[string]dot.LabelKind{
	"":      dot.PlainLabel,
	"plain": dot.PlainLabel,
	"esc":   dot.EscLabel,
	"html":  dot.HTMLLabel,
}

// ParseStyle returns the style named s. The empty string is [dot.StyleNone].
func ParseStyle(s string) (dot.Style, error) {
	if s == "" {
		return dot.StyleNone, nil
	}
	if st, ok := styleByName[strings.ToLower(s)]; ok {
		return st, nil
	}
	return dot.StyleNone, errs.New(errs.ErrCodeInvalidOption, "unknown style %q", s)
}

// ParseRankDir accepts TB, LR, BT and RL in any case, or the empty string.
func ParseRankDir(s string) (dot.RankDir, error) {
	if r, ok := rankDirByName[strings.ToUpper(s)]; ok {
		return r, nil
	}
	return dot.RankDirDefault, errs.New(errs.ErrCodeInvalidOption, "unknown rank direction %q", s)
}

// ParseCompassPoint accepts n, ne, e, se, s, sw, w, nw and c, or the empty
// string for no compass point.
func ParseCompassPoint(s string) (dot.CompassPoint, error) {
	if c, ok := compassByName[strings.ToLower(s)]; ok {
		return c, nil
	}
	return dot.CompassNone, errs.New(errs.ErrCodeInvalidOption, "unknown compass point %q", s)
}

// ParseKind accepts "digraph" or "directed", and "graph" or "undirected".
// The empty string is a directed graph.
func ParseKind(s string) (dot.GraphKind, error) {
	if k, ok := kindByName[strings.ToLower(s)]; ok {
		return k, nil
	}
	return dot.Directed, errs.New(errs.ErrCodeInvalidOption, "unknown graph kind %q", s)
}

// ParseLabelKind accepts plain, esc and html. The empty string is plain.
func ParseLabelKind(s string) (dot.LabelKind, error) {
	if k, ok := labelKindByName[strings.ToLower(s)]; ok {
		return k, nil
	}
	return dot.PlainLabel, errs.New(errs.ErrCodeInvalidOption, "unknown label kind %q", s)
}

// ParseLabel builds a label of the named kind.
func ParseLabel(kind, text string) (dot.Label, error) {
	k, err := ParseLabelKind(kind)
	if err != nil {
		return dot.Label{}, err
	}
	switch k {
	case dot.EscLabel:
		return dot.Esc(text), nil
	case dot.HTMLLabel:
		return dot.HTML(text), nil
	default:
		return dot.Plain(text), nil
	}
}

// ParseArrowVertex parses one vertex token: "none", or an optional "o"
// fill modifier, an optional "l" or "r" side modifier and a shape name,
// e.g. "olbox". Modifiers the shape does not take are rejected.
func ParseArrowVertex(tok string) (dot.ArrowVertex, error) {
	if tok == "none" {
		return dot.VertexNone(), nil
	}

	rest := tok
	v := dot.ArrowVertex{}
	if strings.HasPrefix(rest, "o") {
		v.Fill = dot.Open
		rest = rest[1:]
	}
	switch {
	case strings.HasPrefix(rest, "l"):
		v.Side = dot.Left
		rest = rest[1:]
	case strings.HasPrefix(rest, "r"):
		v.Side = dot.Right
		rest = rest[1:]
	}

	shape, ok := shapeByName[rest]
	if !ok || shape == dot.ShapeNone {
		return dot.ArrowVertex{}, errs.New(errs.ErrCodeInvalidOption, "unknown arrow shape %q", tok)
	}
	v.Shape = shape
	if v.Fill == dot.Open && !shape.HasFill() {
		return dot.ArrowVertex{}, errs.New(errs.ErrCodeInvalidOption, "arrow shape %q cannot be open", rest)
	}
	if v.Side != dot.Both && !shape.HasSide() {
		return dot.ArrowVertex{}, errs.New(errs.ErrCodeInvalidOption, "arrow shape %q cannot be clipped", rest)
	}
	return v, nil
}

// ParseArrow parses a list of vertex tokens. No tokens is the default
// arrow; more than [dot.MaxArrowVertices] tokens is an error.
func ParseArrow(tokens []string) (dot.Arrow, error) {
	if len(tokens) > dot.MaxArrowVertices {
		return dot.Arrow{}, errs.New(errs.ErrCodeInvalidOption,
			"arrow has %d vertices, at most %d allowed", len(tokens), dot.MaxArrowVertices)
	}
	vertices := make([]dot.ArrowVertex, 0, len(tokens))
	for _, tok := range tokens {
		v, err := ParseArrowVertex(tok)
		if err != nil {
			return dot.Arrow{}, err
		}
		vertices = append(vertices, v)
	}
	return dot.NewArrow(vertices...), nil
}

// arrowTokens is the inverse of ParseArrow.
func arrowTokens(a dot.Arrow) []string {
	vertices := a.Vertices()
	if len(vertices) == 0 {
		return nil
	}
	tokens := make([]string, len(vertices))
	for i, v := range vertices {
		tokens[i] = v.String()
	}
	return tokens
}
