package layout

import (
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/layout/box"
	"github.com/matzehuels/smartview/pkg/view"
)

// Preset names understood by AddElement with the default presets.
const (
	PresetElement = "element"
	PresetCompact = "compact"
)

// DefaultSizeUnit is the unit the default presets derive from.
const DefaultSizeUnit = 40.0

// Presets derives the default element sizes from a size unit.
func Presets(unit float64) map[string]box.Dimension {
	return map[string]box.Dimension{
		PresetElement: {Width: 3 * unit, Height: 1.5 * unit},
		PresetCompact: {Width: 2 * unit, Height: unit},
	}
}

// Director builds a Tree through a cursor stack. Add* calls create a child of
// the group under the cursor; the group variants also step into the new child.
type Director struct {
	tree    *Tree
	cursor  []int
	ids     IDSource
	presets map[string]box.Dimension
	padding Offset
}

// Option configures a Director.
type Option func(*config)

type config struct {
	spacing float64
	ids     IDSource
	presets map[string]box.Dimension
	labels  LabelStyle
	padding Offset
}

// WithSpacing sets the distance between siblings.
func WithSpacing(v float64) Option { return func(c *config) { c.spacing = v } }

// WithIDSource sets the generator for container ids.
func WithIDSource(s IDSource) Option { return func(c *config) { c.ids = s } }

// WithPresets replaces the named element sizes.
func WithPresets(p map[string]box.Dimension) Option { return func(c *config) { c.presets = p } }

// WithLabelStyle sets the caption area of visible groups.
func WithLabelStyle(s LabelStyle) Option { return func(c *config) { c.labels = s } }

// WithPadding sets the padding applied to visible groups whose Spec has none.
func WithPadding(o Offset) Option { return func(c *config) { c.padding = o } }

// NewDirector creates a Director. Without options it uses a spacing of 10,
// a "c" id sequence and presets derived from DefaultSizeUnit.
func NewDirector(opts ...Option) *Director {
	cfg := config{
		spacing: 10,
		labels:  LabelStyle{Width: 120, Height: 20, Gap: 5},
		padding: Uniform(10),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ids == nil {
		cfg.ids = NewSequence("c")
	}
	if cfg.presets == nil {
		cfg.presets = Presets(DefaultSizeUnit)
	}
	return &Director{
		tree:    NewTree(cfg.spacing, cfg.labels),
		ids:     cfg.ids,
		presets: cfg.presets,
		padding: cfg.padding,
	}
}

// Tree exposes the underlying arena.
func (d *Director) Tree() *Tree { return d.tree }

// Init creates the root group. It may be called once, and not after a first
// AddRow or AddCol has created the root.
func (d *Director) Init(axis box.Axis, spec Spec) (string, error) {
	if len(d.cursor) > 0 {
		return "", errors.New(errors.ErrCodeAlreadyInitialized, "layout already has a root")
	}
	return d.initRoot(axis, spec, nil, Ref{})
}

func (d *Director) initRoot(axis box.Axis, spec Spec, label *Label, ref Ref) (string, error) {
	id := d.idFor(ref)
	idx, err := d.tree.AddGroup(noParent, id, axis, spec, label, ref)
	if err != nil {
		return "", err
	}
	d.cursor = append(d.cursor, idx)
	return id, nil
}

// AddRow adds a horizontal group and steps into it. On an empty Director
// the group becomes the root.
func (d *Director) AddRow(spec Spec) (string, error) {
	return d.addGroup(box.Horizontal, spec, nil, Ref{})
}

// AddCol adds a vertical group and steps into it.
func (d *Director) AddCol(spec Spec) (string, error) {
	return d.addGroup(box.Vertical, spec, nil, Ref{})
}

// AddVisibleRow adds a labeled horizontal group rendering ref and steps into it.
func (d *Director) AddVisibleRow(spec Spec, label Label, ref Ref) (string, error) {
	return d.addGroup(box.Horizontal, d.visibleSpec(spec), &label, ref)
}

// AddVisibleCol adds a labeled vertical group rendering ref and steps into it.
func (d *Director) AddVisibleCol(spec Spec, label Label, ref Ref) (string, error) {
	return d.addGroup(box.Vertical, d.visibleSpec(spec), &label, ref)
}

func (d *Director) visibleSpec(spec Spec) Spec {
	if spec.Padding == (Offset{}) {
		spec.Padding = d.padding
	}
	return spec
}

func (d *Director) addGroup(axis box.Axis, spec Spec, label *Label, ref Ref) (string, error) {
	if len(d.cursor) == 0 {
		return d.initRoot(axis, spec, label, ref)
	}
	parent, err := d.current()
	if err != nil {
		return "", err
	}
	id := d.idFor(ref)
	idx, err := d.tree.AddGroup(parent, id, axis, spec, label, ref)
	if err != nil {
		return "", err
	}
	d.cursor = append(d.cursor, idx)
	return id, nil
}

// AddElement adds a leaf sized by the named preset. The cursor stays put.
// Under an EXPANDED parent the preset is not a minimum: the parent sets the
// leaf's size along the expanded axis.
func (d *Director) AddElement(preset string, ref Ref) (string, error) {
	size, ok := d.presets[preset]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidConfig, "unknown element preset %q", preset)
	}
	return d.AddElementSize(size, ref)
}

// AddElementSize adds a leaf of an explicit size.
func (d *Director) AddElementSize(size box.Dimension, ref Ref) (string, error) {
	parent, err := d.current()
	if err != nil {
		return "", err
	}
	id := d.idFor(ref)
	if _, err := d.tree.AddElement(parent, id, size, ref); err != nil {
		return "", err
	}
	return id, nil
}

// NavigateToParent moves the cursor up n levels. The root stays on the stack.
func (d *Director) NavigateToParent(n int) {
	keep := max(1, len(d.cursor)-n)
	if keep < len(d.cursor) {
		d.cursor = d.cursor[:keep]
	}
}

// Depth returns the cursor stack height. It is 1 right after Init.
func (d *Director) Depth() int { return len(d.cursor) }

// SetWidth widens the container id.
func (d *Director) SetWidth(id string, w float64) error {
	idx, ok := d.tree.Index(id)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown container %q", id)
	}
	return d.tree.SetWidth(idx, w)
}

// SetHeight heightens the container id.
func (d *Director) SetHeight(id string, h float64) error {
	idx, ok := d.tree.Index(id)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown container %q", id)
	}
	return d.tree.SetHeight(idx, h)
}

// Layout arranges the tree and places the root at (x, y).
func (d *Director) Layout(x, y float64) error {
	if len(d.cursor) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout not initialized")
	}
	root := d.cursor[0]
	if err := d.tree.Arrange(root); err != nil {
		return err
	}
	d.tree.ToAbsolutePosition(root, x, y)
	return nil
}

// Lookup returns the frame of container id. Frames are absolute after Layout.
func (d *Director) Lookup(id string) (Frame, bool) { return d.tree.Lookup(id) }

// ConvertToView lays the tree out at the origin and emits one view node per
// visible group and element. Each node's ParentID is the nearest visible
// ancestor.
func (d *Director) ConvertToView(name, id string) (view.View, error) {
	if err := d.Layout(0, 0); err != nil {
		return view.View{}, err
	}
	var nodes []view.Node
	var walk func(idx int, parentView string)
	walk = func(idx int, parentView string) {
		n := &d.tree.nodes[idx]
		next := parentView
		if n.visible() {
			f := d.tree.frame(idx)
			title := n.ref.Name
			if title == "" && n.label != nil {
				title = n.label.Text
			}
			nodes = append(nodes, view.Node{
				ModelNodeID: n.ref.ModelID,
				ViewNodeID:  n.id,
				Name:        title,
				Type:        n.ref.Type,
				X:           f.X,
				Y:           f.Y,
				Width:       f.Width,
				Height:      f.Height,
				ParentID:    parentView,
			})
			next = n.id
		}
		if n.kind == kindGroup {
			for _, c := range n.content.Children() {
				walk(c, next)
			}
		}
	}
	walk(d.cursor[0], "")
	return view.New(id, name, nodes), nil
}

func (d *Director) current() (int, error) {
	if len(d.cursor) == 0 {
		return noParent, errors.New(errors.ErrCodeInvalidInput, "layout not initialized")
	}
	return d.cursor[len(d.cursor)-1], nil
}

func (d *Director) idFor(ref Ref) string {
	if ref.ViewID != "" {
		return ref.ViewID
	}
	return d.ids.Next()
}
