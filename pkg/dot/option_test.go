package dot

import "testing"

func TestResolve(t *testing.T) {
	set := resolve([]Option{NoEdgeLabels, NoEdgeLabels, Fontname("A"), Fontname("B")})
	if !set.has(optNoEdgeLabels) {
		t.Error("NoEdgeLabels not set")
	}
	if set.has(optNoNodeLabels) {
		t.Error("NoNodeLabels set without being passed")
	}
	if !set.hasFont || set.fontname != "A" {
		t.Errorf("fontname = %q, want first fontname %q", set.fontname, "A")
	}
}

func TestResolveFontnameDoesNotSetFlag(t *testing.T) {
	if set := resolve([]Option{Fontname("A")}); set.flags != 0 {
		t.Errorf("flags = %b, want 0", set.flags)
	}
}

func TestOptionString(t *testing.T) {
	if got := Fontname("Helvetica").String(); got != `Fontname("Helvetica")` {
		t.Errorf("String() = %s", got)
	}
	if got := DarkTheme.String(); got != "DarkTheme" {
		t.Errorf("String() = %s", got)
	}
	if got := (Option{}).String(); got != "Option(0)" {
		t.Errorf("String() = %s", got)
	}
}
