package dot

// GraphKind selects between a directed and an undirected graph.
type GraphKind int

const (
	Directed GraphKind = iota
	Undirected
)

// Keyword returns the keyword that introduces the graph.
func (k GraphKind) Keyword() string {
	if k == Undirected {
		return "graph"
	}
	return "digraph"
}

// EdgeOp returns the edge operator that goes with the graph keyword.
func (k GraphKind) EdgeOp() string {
	if k == Undirected {
		return "--"
	}
	return "->"
}

func (k GraphKind) String() string { return k.Keyword() }

// RankDir is the direction in which ranks of a directed graph are laid
// out. See https://graphviz.org/docs/attr-types/rankdir/. The zero value
// leaves the direction to Graphviz.
type RankDir int

const (
	RankDirDefault RankDir = iota
	TopBottom
	LeftRight
	BottomTop
	RightLeft
)

// String returns "TB", "LR", "BT" or "RL", and "" for [RankDirDefault] and
// for values outside the enumeration.
func (r RankDir) String() string {
	switch r {
	case TopBottom:
		return "TB"
	case LeftRight:
		return "LR"
	case BottomTop:
		return "BT"
	case RightLeft:
		return "RL"
	default:
		return ""
	}
}

// CompassPoint is the side of a node (or port) an edge attaches to.
// See https://graphviz.org/docs/attr-types/portPos/. The zero value means
// no compass point.
type CompassPoint int

const (
	CompassNone CompassPoint = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	Center
)

var compassNames = [...]string{
	CompassNone: "",
	North:       "n",
	NorthEast:   "ne",
	East:        "e",
	SouthEast:   "se",
	South:       "s",
	SouthWest:   "sw",
	West:        "w",
	NorthWest:   "nw",
	Center:      "c",
}

// String returns the compass token without the leading colon.
func (c CompassPoint) String() string {
	if c < 0 || int(c) >= len(compassNames) {
		return ""
	}
	return compassNames[c]
}

// suffix returns the token as it follows a node id or port, e.g. ":ne".
func (c CompassPoint) suffix() string {
	if s := c.String(); s != "" {
		return ":" + s
	}
	return ""
}

// Attr is a name=value pair written verbatim. Neither part is escaped;
// quote the value yourself when it needs quoting.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute list. Attributes are written in slice
// order.
type Attrs []Attr

// Get returns the value of the first attribute called name.
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}
