package dot

import (
	"fmt"
	"strings"
)

// LabelKind selects how a [Label] is escaped when written out.
type LabelKind int

const (
	labelUnset LabelKind = iota

	// PlainLabel text is quoted and fully escaped; backslashes appear as
	// backslashes in the drawing.
	PlainLabel
	// EscLabel text is quoted and escaped except for backslashes, so that
	// Graphviz escString sequences such as \l, \r and \n reach the layout
	// engine intact.
	EscLabel
	// HTMLLabel text is written verbatim between angle brackets.
	HTMLLabel
)

func (k LabelKind) String() string {
	switch k {
	case PlainLabel:
		return "plain"
	case EscLabel:
		return "esc"
	case HTMLLabel:
		return "html"
	default:
		return "unset"
	}
}

// Label is the text of a label, color or shape attribute.
//
// The zero Label means "not provided": the renderer substitutes the node's
// own identifier for a missing node label, writes an empty quoted string
// for a missing edge or subgraph label, and omits color and shape
// attributes entirely.
type Label struct {
	kind LabelKind
	text string
}

// Plain returns a label whose text is shown as is.
func Plain(s string) Label { return Label{kind: PlainLabel, text: s} }

// Esc returns a label in the Graphviz escString dialect.
// See https://www.graphviz.org/docs/attr-types/escString/.
func Esc(s string) Label { return Label{kind: EscLabel, text: s} }

// HTML returns a Graphviz HTML-like label. No escaping is performed;
// see [EscapeHTML] for building safe content.
func HTML(s string) Label { return Label{kind: HTMLLabel, text: s} }

// Kind returns the label variant.
func (l Label) Kind() LabelKind { return l.kind }

// Text returns the raw, unescaped text.
func (l Label) Text() string { return l.text }

// IsZero reports whether l is the zero Label.
func (l Label) IsZero() bool { return l.kind == labelUnset }

// Escaped renders the label as a DOT literal, delimiters included.
// A zero Label renders like Plain("").
func (l Label) Escaped() string {
	switch l.kind {
	case EscLabel:
		return `"` + escape(l.text, false) + `"`
	case HTMLLabel:
		return "<" + l.text + ">"
	default:
		return `"` + escape(l.text, true) + `"`
	}
}

// String implements [fmt.Stringer] by returning [Label.Escaped].
func (l Label) String() string { return l.Escaped() }

// escape applies the default character escaping: tab, carriage return,
// newline, quotes and backslash get a backslash escape, printable ASCII is
// kept, and every other code point becomes \u{hex}. With backslash false a
// backslash is copied through untouched.
func escape(s string, backslash bool) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for _, c := range s {
		switch c {
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			if backslash {
				b.WriteString(`\\`)
			} else {
				b.WriteByte('\\')
			}
		default:
			if c >= 0x20 && c <= 0x7e {
				b.WriteRune(c)
			} else {
				fmt.Fprintf(&b, `\u{%x}`, c)
			}
		}
	}
	return b.String()
}

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
	"\n", `<br align="left"/>`,
)

// EscapeHTML makes s safe for inclusion in an [HTML] label: it escapes
// &, ", < and >, and turns every newline into a left-aligned line break.
// It is never applied automatically.
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}
