package layout

import (
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/layout/box"
)

const noParent = -1

type kind uint8

const (
	kindGroup kind = iota
	kindElement
)

// container is one arena slot: a group (row or column, optionally labeled)
// or a leaf element.
type container struct {
	kind   kind
	id     string
	parent int
	ref    Ref

	// groups
	axis    box.Axis
	label   *Label
	content *box.ContentBox
	offset  Offset

	// elements
	size box.Dimension

	// relative to the parent's outer origin, then absolute
	rx, ry float64
	x, y   float64

	subtree int
}

// Tree is an arena of containers. Index 0 is the root once one exists.
type Tree struct {
	nodes   []container
	lookup  map[string]int
	spacing float64
	labels  LabelStyle
}

// NewTree creates an empty Tree whose groups separate children by spacing.
func NewTree(spacing float64, labels LabelStyle) *Tree {
	return &Tree{lookup: make(map[string]int), spacing: spacing, labels: labels}
}

// Len returns the number of containers.
func (t *Tree) Len() int { return len(t.nodes) }

// AddGroup creates a group under parent and returns its index. A parent of
// -1 creates a root. The group's initial outer size is taken from spec.
func (t *Tree) AddGroup(parent int, id string, axis box.Axis, spec Spec, label *Label, ref Ref) (int, error) {
	if err := t.checkGroup(parent, spec); err != nil {
		return noParent, err
	}
	if _, dup := t.lookup[id]; dup {
		return noParent, errors.New(errors.ErrCodeDuplicateChild, "container %q already exists", id)
	}

	offset := spec.Padding
	if label != nil {
		switch label.Position {
		case LabelLateral:
			offset.Left += t.labels.Width + t.labels.Gap
		default:
			offset.Top += t.labels.Height + t.labels.Gap
		}
	}
	var initial box.Dimension
	for _, a := range []box.Axis{box.Horizontal, box.Vertical} {
		l := spec.length(a)
		if !l.Set {
			continue
		}
		if l.Value < 0 {
			return noParent, errors.New(errors.ErrCodeInvalidDimension, "negative %s size %.2f", a, l.Value)
		}
		inner := l.Value - offsetAlong(offset, a)
		if inner < 0 {
			inner = 0
		}
		if a == box.Horizontal {
			initial.Width = inner
		} else {
			initial.Height = inner
		}
	}

	idx := len(t.nodes)
	t.nodes = append(t.nodes, container{
		kind:    kindGroup,
		id:      id,
		parent:  noParent,
		ref:     ref,
		axis:    axis,
		label:   label,
		content: box.NewContentBox(axis, spec.Align, initial, spec.FixedWidth, spec.FixedHeight, t.spacing),
		offset:  offset,
	})
	t.lookup[id] = idx
	if parent == noParent {
		return idx, nil
	}
	if err := t.Attach(parent, idx); err != nil {
		return noParent, err
	}
	return idx, nil
}

// AddElement creates a leaf of the given size under parent.
func (t *Tree) AddElement(parent int, id string, size box.Dimension, ref Ref) (int, error) {
	if size.Width < 0 || size.Height < 0 {
		return noParent, errors.New(errors.ErrCodeInvalidDimension,
			"negative element size %.2fx%.2f", size.Width, size.Height)
	}
	if _, dup := t.lookup[id]; dup {
		return noParent, errors.New(errors.ErrCodeDuplicateChild, "container %q already exists", id)
	}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, container{kind: kindElement, id: id, parent: noParent, ref: ref, size: size})
	t.lookup[id] = idx
	if parent == noParent {
		return idx, nil
	}
	if err := t.Attach(parent, idx); err != nil {
		return noParent, err
	}
	return idx, nil
}

// checkGroup enforces the EXPANDED rules against the prospective parent.
func (t *Tree) checkGroup(parent int, spec Spec) error {
	var palign box.Align
	hasParent := parent != noParent
	if hasParent {
		if err := t.checkIndex(parent); err != nil {
			return err
		}
		palign = t.nodes[parent].content.Align()
	}
	for _, a := range []box.Axis{box.Horizontal, box.Vertical} {
		own := spec.Align.Along(a)
		parentExpanded := hasParent && palign.Along(a) == box.Expanded
		if parentExpanded && own != box.Expanded {
			return errors.New(errors.ErrCodeIncompatibleAlignment,
				"%s child under %s parent on the %s axis", own, box.Expanded, a)
		}
		if own == box.Expanded && !spec.length(a).Set && !parentExpanded {
			return errors.New(errors.ErrCodeMissingSize,
				"expanded %s axis needs an explicit size", a)
		}
	}
	return nil
}

// Attach inserts child into parent's content box and propagates the growth to
// every ancestor. A child may only ever have one parent.
func (t *Tree) Attach(parent, child int) error {
	if err := t.checkIndex(parent); err != nil {
		return err
	}
	if err := t.checkIndex(child); err != nil {
		return err
	}
	p := &t.nodes[parent]
	if p.kind != kindGroup {
		return errors.New(errors.ErrCodeInvalidInput, "container %q is not a group", p.id)
	}
	c := &t.nodes[child]
	if c.parent != noParent {
		return errors.New(errors.ErrCodeDuplicateChild, "container %q already has a parent", c.id)
	}
	for a := parent; a != noParent; a = t.nodes[a].parent {
		if a == child {
			return errors.New(errors.ErrCodeCycleDetected, "container %q cannot contain itself", c.id)
		}
	}

	old := t.outer(parent)
	ch, err := p.content.Add(child, t.outer(child), c.kind == kindGroup)
	if err != nil {
		return err
	}
	t.nodes[child].parent = parent
	t.IncrementSubTreeCounting(parent)
	if ch.Any() {
		return t.propagate(parent, old)
	}
	return nil
}

// IncrementSubTreeCounting adds one to the subtree count of idx and each of
// its ancestors.
func (t *Tree) IncrementSubTreeCounting(idx int) {
	for a := idx; a != noParent; a = t.nodes[a].parent {
		t.nodes[a].subtree++
	}
}

// SubtreeCount returns the number of containers inserted below idx.
func (t *Tree) SubtreeCount(idx int) int { return t.nodes[idx].subtree }

// propagate tells the ancestors of idx that it grew from old.
func (t *Tree) propagate(idx int, old box.Dimension) error {
	for {
		parent := t.nodes[idx].parent
		if parent == noParent {
			return nil
		}
		cur := t.outer(idx)
		pold := t.outer(parent)
		ch, err := t.nodes[parent].content.Grow(old, cur)
		if err != nil {
			return err
		}
		if !ch.Any() {
			return nil
		}
		idx, old = parent, pold
	}
}

// SetWidth widens container idx to w. Shrinking is refused.
func (t *Tree) SetWidth(idx int, w float64) error {
	return t.setSize(idx, box.Horizontal, w)
}

// SetHeight heightens container idx to h. Shrinking is refused.
func (t *Tree) SetHeight(idx int, h float64) error {
	return t.setSize(idx, box.Vertical, h)
}

func (t *Tree) setSize(idx int, a box.Axis, v float64) error {
	if err := t.checkIndex(idx); err != nil {
		return err
	}
	old := t.outer(idx)
	if cur := old.Along(a); v < cur-1e-9 {
		return errors.New(errors.ErrCodeShrinkRefused,
			"%s of %q: %.2f is below current %.2f", a, t.nodes[idx].id, v, cur)
	}
	next := old
	if a == box.Horizontal {
		next.Width = v
	} else {
		next.Height = v
	}
	if err := t.resize(idx, next); err != nil {
		return err
	}
	return t.propagate(idx, old)
}

// resize sets the outer size of idx without notifying ancestors. Groups only
// ever widen; elements accept any non-negative size.
func (t *Tree) resize(idx int, d box.Dimension) error {
	n := &t.nodes[idx]
	if n.kind == kindElement {
		n.size = d
		return nil
	}
	cur := n.content.Size()
	inner := box.Dimension{
		Width:  max(cur.Width, d.Width-n.offset.Horizontal()),
		Height: max(cur.Height, d.Height-n.offset.Vertical()),
	}
	if inner == cur {
		return nil
	}
	return n.content.SetSize(inner)
}

// outer returns the total size of idx including offsets.
func (t *Tree) outer(idx int) box.Dimension {
	n := &t.nodes[idx]
	if n.kind == kindElement {
		return n.size
	}
	s := n.content.Size()
	return box.Dimension{Width: s.Width + n.offset.Horizontal(), Height: s.Height + n.offset.Vertical()}
}

// Size returns the outer size of idx.
func (t *Tree) Size(idx int) box.Dimension { return t.outer(idx) }

// Arrange distributes and aligns the children of idx inside its content box,
// then recurses. Children stretched by EXPANDED are resized in place.
func (t *Tree) Arrange(idx int) error {
	n := &t.nodes[idx]
	if n.kind != kindGroup {
		return nil
	}
	children := n.content.Children()
	items := make([]box.Item, len(children))
	for i, c := range children {
		items[i] = box.Item{Size: t.outer(c), Nested: t.nodes[c].kind == kindGroup}
	}
	rects := n.content.Arrange(items)
	left, top := n.offset.Left, n.offset.Top
	for i, c := range children {
		r := rects[i]
		t.nodes[c].rx = left + r.X
		t.nodes[c].ry = top + r.Y
		if err := t.resize(c, box.Dimension{Width: r.Width, Height: r.Height}); err != nil {
			return err
		}
		if err := t.Arrange(c); err != nil {
			return err
		}
	}
	return nil
}

// ToAbsolutePosition places idx at (x, y) and translates every descendant by
// the accumulated origin. Arrange must have run first.
func (t *Tree) ToAbsolutePosition(idx int, x, y float64) {
	n := &t.nodes[idx]
	n.x, n.y = x, y
	if n.kind != kindGroup {
		return
	}
	for _, c := range n.content.Children() {
		t.ToAbsolutePosition(c, x+t.nodes[c].rx, y+t.nodes[c].ry)
	}
}

// Lookup returns the frame of the container with the given id.
func (t *Tree) Lookup(id string) (Frame, bool) {
	idx, ok := t.lookup[id]
	if !ok {
		return Frame{}, false
	}
	return t.frame(idx), true
}

// Index returns the arena index for id.
func (t *Tree) Index(id string) (int, bool) {
	idx, ok := t.lookup[id]
	return idx, ok
}

func (t *Tree) frame(idx int) Frame {
	n := &t.nodes[idx]
	s := t.outer(idx)
	return Frame{
		ID:      n.id,
		X:       n.x,
		Y:       n.y,
		Width:   s.Width,
		Height:  s.Height,
		Visible: n.visible(),
	}
}

func (n *container) visible() bool {
	return n.kind == kindElement || n.label != nil
}

func (t *Tree) checkIndex(idx int) error {
	if idx < 0 || idx >= len(t.nodes) {
		return errors.New(errors.ErrCodeInternal, "container index %d out of range", idx)
	}
	return nil
}

func offsetAlong(o Offset, a box.Axis) float64 {
	if a == box.Horizontal {
		return o.Horizontal()
	}
	return o.Vertical()
}
