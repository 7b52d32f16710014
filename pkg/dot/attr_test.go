package dot

import "testing"

func TestGraphKind(t *testing.T) {
	if Directed.Keyword() != "digraph" || Directed.EdgeOp() != "->" {
		t.Errorf("Directed = %q %q, want digraph ->", Directed.Keyword(), Directed.EdgeOp())
	}
	if Undirected.Keyword() != "graph" || Undirected.EdgeOp() != "--" {
		t.Errorf("Undirected = %q %q, want graph --", Undirected.Keyword(), Undirected.EdgeOp())
	}
}

func TestEnumTokens(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{RankDirDefault.String(), ""},
		{TopBottom.String(), "TB"},
		{LeftRight.String(), "LR"},
		{BottomTop.String(), "BT"},
		{RightLeft.String(), "RL"},
		{CompassNone.String(), ""},
		{North.String(), "n"},
		{NorthEast.String(), "ne"},
		{SouthWest.String(), "sw"},
		{Center.String(), "c"},
		{CompassPoint(42).String(), ""},
		{StyleNone.String(), ""},
		{StyleDashed.String(), "dashed"},
		{StyleWedged.String(), "wedged"},
		{Style(-1).String(), ""},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("token = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestCompassSuffix(t *testing.T) {
	if got := CompassNone.suffix(); got != "" {
		t.Errorf("CompassNone.suffix() = %q, want empty", got)
	}
	if got := SouthEast.suffix(); got != ":se" {
		t.Errorf("SouthEast.suffix() = %q, want %q", got, ":se")
	}
}

func TestStylesExcludesNone(t *testing.T) {
	styles := Styles()
	if len(styles) != 9 {
		t.Fatalf("len(Styles()) = %d, want 9", len(styles))
	}
	for _, s := range styles {
		if s == StyleNone {
			t.Error("Styles() contains StyleNone")
		}
	}
}

func TestAttrsGet(t *testing.T) {
	attrs := Attrs{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}, {Name: "a", Value: "3"}}
	if v, ok := attrs.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v, want first value", v, ok)
	}
	if _, ok := attrs.Get("c"); ok {
		t.Error("Get(c) found a missing attribute")
	}
}
