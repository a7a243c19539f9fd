package view

import (
	"cmp"
	"math"
	"slices"
)

// =============================================================================
// View - Positioned Diagram
// =============================================================================

// View is a fully positioned diagram.
type View struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Bounds            Bounds         `json:"bounds"`
	ViewNodes         []Node         `json:"viewNodes"`
	ViewRelationships []Relationship `json:"viewRelationships"`
}

// Bounds is the rectangle covered by all nodes.
type Bounds struct {
	Horizontal Range `json:"horizontal"`
	Vertical   Range `json:"vertical"`
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.Horizontal.Max - b.Horizontal.Min }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Vertical.Max - b.Vertical.Min }

// Range is a closed interval on one axis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Relationship is an edge drawn between two view nodes. Layout runs do not
// emit any yet; the field keeps the output shape stable for renderers.
type Relationship struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type,omitempty"`
}

// =============================================================================
// Node - One Rendered Occurrence
// =============================================================================

// Node is one rendered occurrence of a semantic element. A semantic element
// reachable through several parents yields several Nodes that share
// ModelNodeID but have distinct ViewNodeIDs.
type Node struct {
	ModelNodeID      string   `json:"modelNodeId"`
	ViewNodeID       string   `json:"viewNodeId"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	X                float64  `json:"x"`
	Y                float64  `json:"y"`
	Width            float64  `json:"width"`
	Height           float64  `json:"height"`
	ParentID         string   `json:"parentId,omitempty"`
	Children         []string `json:"children,omitempty"`
	NestedCount      int      `json:"nestedCount"`
	VerticalCoverage int      `json:"verticalCoverage"`
}

// IsContainer reports whether the node has children.
func (n *Node) IsContainer() bool { return len(n.Children) > 0 }

// Right returns X + Width.
func (n *Node) Right() float64 { return n.X + n.Width }

// Bottom returns Y + Height.
func (n *Node) Bottom() float64 { return n.Y + n.Height }

// =============================================================================
// Construction
// =============================================================================

// New assembles a View from positioned nodes. It fills Children from
// ParentID links, computes NestedCount and VerticalCoverage, derives Bounds and
// sorts nodes parents-first (descending NestedCount, insertion order on ties).
func New(id, name string, nodes []Node) View {
	nodes = slices.Clone(nodes)
	Annotate(nodes)

	order := make(map[string]int, len(nodes))
	for i, n := range nodes {
		order[n.ViewNodeID] = i
	}
	slices.SortStableFunc(nodes, func(a, b Node) int {
		if c := cmp.Compare(b.NestedCount, a.NestedCount); c != 0 {
			return c
		}
		return cmp.Compare(order[a.ViewNodeID], order[b.ViewNodeID])
	})

	return View{
		ID:                id,
		Name:              name,
		Bounds:            ComputeBounds(nodes),
		ViewNodes:         nodes,
		ViewRelationships: []Relationship{},
	}
}

// Annotate fills Children, NestedCount and VerticalCoverage in place from the
// ParentID links. Nodes whose parent is unknown are treated as roots.
func Annotate(nodes []Node) {
	index := make(map[string]int, len(nodes))
	for i := range nodes {
		index[nodes[i].ViewNodeID] = i
		nodes[i].Children = nil
	}
	var roots []int
	for i := range nodes {
		p, ok := index[nodes[i].ParentID]
		if nodes[i].ParentID == "" || !ok {
			roots = append(roots, i)
			continue
		}
		nodes[p].Children = append(nodes[p].Children, nodes[i].ViewNodeID)
	}

	var visit func(i int) (count, depth int)
	visit = func(i int) (int, int) {
		count, depth := 0, 0
		for _, c := range nodes[i].Children {
			cc, cd := visit(index[c])
			count += cc + 1
			depth = max(depth, cd)
		}
		nodes[i].NestedCount = count
		nodes[i].VerticalCoverage = depth + 1
		return count, depth + 1
	}
	for _, r := range roots {
		visit(r)
	}
}

// ComputeBounds returns the smallest rectangle containing every node.
// An empty slice yields zero bounds.
func ComputeBounds(nodes []Node) Bounds {
	if len(nodes) == 0 {
		return Bounds{}
	}
	b := Bounds{
		Horizontal: Range{Min: math.Inf(1), Max: math.Inf(-1)},
		Vertical:   Range{Min: math.Inf(1), Max: math.Inf(-1)},
	}
	for _, n := range nodes {
		b.Horizontal.Min = min(b.Horizontal.Min, n.X)
		b.Horizontal.Max = max(b.Horizontal.Max, n.Right())
		b.Vertical.Min = min(b.Vertical.Min, n.Y)
		b.Vertical.Max = max(b.Vertical.Max, n.Bottom())
	}
	return b
}

// Node returns the node with the given view id.
func (v *View) Node(viewNodeID string) (*Node, bool) {
	for i := range v.ViewNodes {
		if v.ViewNodes[i].ViewNodeID == viewNodeID {
			return &v.ViewNodes[i], true
		}
	}
	return nil, false
}

// Similar returns every node rendered from the given model id.
func (v *View) Similar(modelNodeID string) []Node {
	var out []Node
	for _, n := range v.ViewNodes {
		if n.ModelNodeID == modelNodeID {
			out = append(out, n)
		}
	}
	return out
}
