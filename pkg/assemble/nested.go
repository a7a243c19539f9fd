package assemble

import (
	"github.com/matzehuels/smartview/pkg/layout"
	"github.com/matzehuels/smartview/pkg/layout/box"
	"github.com/matzehuels/smartview/pkg/view"
)

// Nested renders every parent as a labeled row wrapping a column of child
// rows. Each child row holds at most MaxChildHorizontalCount nodes; the top
// level holds at most MaxHorizontalCount per row.
type Nested struct{}

// Name implements Strategy.
func (Nested) Name() string { return "nested" }

// Layout implements Strategy.
func (Nested) Layout(roots []*Node, opts Options) (view.View, error) {
	s := opts.Settings
	d := layout.NewDirector(append(s.DirectorOptions(), layout.WithIDSource(opts.IDs))...)
	if _, err := d.Init(box.Vertical, layout.Spec{}); err != nil {
		return view.View{}, err
	}
	if err := placeRows(d, byWeight(roots), s.MaxHorizontalCount, s.MaxChildHorizontalCount); err != nil {
		return view.View{}, err
	}
	return d.ConvertToView(opts.ViewName, opts.ViewID)
}

// placeRows lays nodes into consecutive rows of at most perRow nodes under
// the cursor, leaving the cursor where it started. Children of every placed
// node break every childPerRow nodes.
func placeRows(d *layout.Director, nodes []*Node, perRow, childPerRow int) error {
	if len(nodes) == 0 {
		return nil
	}
	if _, err := d.AddRow(layout.Spec{}); err != nil {
		return err
	}
	for i, n := range nodes {
		if err := placeNested(d, n, childPerRow); err != nil {
			return err
		}
		if (i+1)%perRow == 0 && i != len(nodes)-1 {
			d.NavigateToParent(1)
			if _, err := d.AddRow(layout.Spec{}); err != nil {
				return err
			}
		}
	}
	d.NavigateToParent(1)
	return nil
}

func placeNested(d *layout.Director, n *Node, childPerRow int) error {
	if n.IsLeaf() {
		_, err := d.AddElement(layout.PresetElement, n.Ref())
		return err
	}
	if _, err := d.AddVisibleRow(layout.Spec{}, layout.Label{Text: n.Name, Position: layout.LabelTop}, n.Ref()); err != nil {
		return err
	}
	if _, err := d.AddCol(layout.Spec{}); err != nil {
		return err
	}
	if err := placeRows(d, byWeight(n.Children), childPerRow, childPerRow); err != nil {
		return err
	}
	d.NavigateToParent(2)
	return nil
}
