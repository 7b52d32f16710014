package dot

import "testing"

func TestLabelEscaped(t *testing.T) {
	tests := []struct {
		name  string
		label Label
		want  string
	}{
		{"zero", Label{}, `""`},
		{"plain", Plain("hello"), `"hello"`},
		{"plain quote", Plain(`say "hi"`), `"say \"hi\""`},
		{"plain apostrophe", Plain("it's"), `"it\'s"`},
		{"plain backslash", Plain(`a\b`), `"a\\b"`},
		{"plain control", Plain("a\tb\r\nc"), `"a\tb\r\nc"`},
		{"plain unicode", Plain("café"), `"caf\u{e9}"`},
		{"plain emoji", Plain("\U0001F600"), `"\u{1f600}"`},
		{"plain nul", Plain("\x00"), `"\u{0}"`},
		{"esc keeps backslash", Esc(`line\l`), `"line\l"`},
		{"esc escapes quote", Esc(`"\N"`), `"\"\N\""`},
		{"esc newline", Esc("a\nb"), `"a\nb"`},
		{"html verbatim", HTML(`<b>"x" & \y</b>`), `<<b>"x" & \y</b>>`},
		{"html empty", HTML(""), `<>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.label.Escaped(); got != tt.want {
				t.Errorf("Escaped() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLabelAccessors(t *testing.T) {
	l := Esc(`x\l`)
	if l.Kind() != EscLabel {
		t.Errorf("Kind() = %v, want %v", l.Kind(), EscLabel)
	}
	if l.Text() != `x\l` {
		t.Errorf("Text() = %q, want %q", l.Text(), `x\l`)
	}
	if l.IsZero() {
		t.Error("IsZero() = true for a set label")
	}
	if !(Label{}).IsZero() {
		t.Error("IsZero() = false for the zero label")
	}
	if Plain("").IsZero() {
		t.Error("IsZero() = true for Plain(\"\")")
	}
}

func TestLabelKindString(t *testing.T) {
	for kind, want := range map[LabelKind]string{
		PlainLabel: "plain",
		EscLabel:   "esc",
		HTMLLabel:  "html",
	} {
		if got := kind.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{`a & b`, `a &amp; b`},
		{`<"x">`, `&lt;&quot;x&quot;&gt;`},
		{"one\ntwo", `one<br align="left"/>two`},
		{"&amp;", "&amp;amp;"},
	}
	for _, tt := range tests {
		if got := EscapeHTML(tt.in); got != tt.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
