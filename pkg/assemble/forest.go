package assemble

import (
	"cmp"
	"slices"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/layout"
	"github.com/matzehuels/smartview/pkg/path"
	"github.com/matzehuels/smartview/pkg/semantic"
	"github.com/matzehuels/smartview/pkg/view"
)

// Node is one occurrence of a semantic element in the view forest.
type Node struct {
	ModelID     string
	ViewID      string
	Name        string
	Type        string
	Parent      *Node
	Children    []*Node
	NestedCount int
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Ref returns the layout reference rendering this node.
func (n *Node) Ref() layout.Ref {
	return layout.Ref{ModelID: n.ModelID, ViewID: n.ViewID, Name: n.Name, Type: n.Type}
}

type occurrence struct {
	elem     path.Element
	viewID   string
	parent   string
	children []string
}

// Flatten expands the semantic DAG into flat view nodes, one per occurrence.
//
// Elements are attached to their parents bottom-up, leaves first. An element
// that already has a parent is attached to the next one as a deep copy of
// its subtree, with fresh view ids and the same model ids, so every view node
// ends up with exactly one parent. Cycles make the bottom-up order impossible
// and are reported as CYCLE_DETECTED.
func Flatten(e *semantic.Engine, ids layout.IDSource) ([]view.Node, error) {
	elems := e.Elements()
	occ := make(map[string]*occurrence, len(elems))
	var order []string
	primary := make(map[string]string, len(elems))
	pending := make(map[string]int, len(elems))

	newOccurrence := func(el path.Element) *occurrence {
		o := &occurrence{elem: el, viewID: ids.Next()}
		occ[o.viewID] = o
		order = append(order, o.viewID)
		return o
	}

	var frontier []string
	for _, el := range elems {
		primary[el.Node.ID] = newOccurrence(el.Node).viewID
		pending[el.Node.ID] = len(el.Children)
		if el.IsLeaf() {
			frontier = append(frontier, el.Node.ID)
		}
	}

	var deepCopy func(viewID string) string
	deepCopy = func(viewID string) string {
		src := occ[viewID]
		dst := newOccurrence(src.elem)
		for _, c := range src.children {
			cc := deepCopy(c)
			occ[cc].parent = dst.viewID
			dst.children = append(dst.children, cc)
		}
		return dst.viewID
	}

	done := 0
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		done++
		for _, p := range e.ParentIDs(id) {
			child := primary[id]
			if occ[child].parent != "" {
				child = deepCopy(child)
			}
			parent := occ[primary[p]]
			occ[child].parent = parent.viewID
			parent.children = append(parent.children, child)
			pending[p]--
			if pending[p] == 0 {
				frontier = append(frontier, p)
			}
		}
	}
	if done != len(elems) {
		var stuck []string
		for _, el := range elems {
			if pending[el.Node.ID] > 0 {
				stuck = append(stuck, el.Node.ID)
			}
		}
		return nil, errors.New(errors.ErrCodeCycleDetected, "paths form a cycle through %v", stuck)
	}

	// restore the semantic child order lost to the bottom-up walk
	for _, o := range occ {
		rank := e.ChildIDs(o.elem.ID)
		slices.SortStableFunc(o.children, func(a, b string) int {
			return cmp.Compare(slices.Index(rank, occ[a].elem.ID), slices.Index(rank, occ[b].elem.ID))
		})
	}

	out := make([]view.Node, 0, len(occ))
	var emit func(viewID string)
	emit = func(viewID string) {
		o := occ[viewID]
		out = append(out, view.Node{
			ModelNodeID: o.elem.ID,
			ViewNodeID:  o.viewID,
			Name:        o.elem.DisplayName(),
			Type:        o.elem.Type,
			ParentID:    o.parent,
		})
		for _, c := range o.children {
			emit(c)
		}
	}
	for _, viewID := range order {
		if occ[viewID].parent == "" {
			emit(viewID)
		}
	}
	return out, nil
}

// GroupParentNodes rebuilds the rooted forest from flat (ParentID,
// ViewNodeID) pairs and computes each node's NestedCount. Nodes naming an
// unknown parent become roots. Parent links that loop are CYCLE_DETECTED.
func GroupParentNodes(flat []view.Node) ([]*Node, error) {
	byID := make(map[string]*Node, len(flat))
	nodes := make([]*Node, 0, len(flat))
	for _, f := range flat {
		if _, dup := byID[f.ViewNodeID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate view node %q", f.ViewNodeID)
		}
		n := &Node{ModelID: f.ModelNodeID, ViewID: f.ViewNodeID, Name: f.Name, Type: f.Type}
		byID[f.ViewNodeID] = n
		nodes = append(nodes, n)
	}

	var roots []*Node
	for i, f := range flat {
		n := nodes[i]
		p, ok := byID[f.ParentID]
		if f.ParentID == "" || !ok {
			roots = append(roots, n)
			continue
		}
		n.Parent = p
		p.Children = append(p.Children, n)
	}

	reached := 0
	var count func(n *Node) int
	count = func(n *Node) int {
		reached++
		total := 0
		for _, c := range n.Children {
			total += count(c) + 1
		}
		n.NestedCount = total
		return total
	}
	for _, r := range roots {
		count(r)
	}
	if reached != len(nodes) {
		return nil, errors.New(errors.ErrCodeCycleDetected,
			"%d view nodes are unreachable from any root", len(nodes)-reached)
	}
	return roots, nil
}

// byWeight returns nodes sorted by descending NestedCount, keeping the input
// order among equals.
func byWeight(nodes []*Node) []*Node {
	out := slices.Clone(nodes)
	slices.SortStableFunc(out, func(a, b *Node) int {
		return cmp.Compare(b.NestedCount, a.NestedCount)
	})
	return out
}
