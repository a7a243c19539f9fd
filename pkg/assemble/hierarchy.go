package assemble

import (
	"math"

	"github.com/matzehuels/smartview/pkg/layout/box"
	"github.com/matzehuels/smartview/pkg/settings"
	"github.com/matzehuels/smartview/pkg/view"
)

// Hierarchy packs subtrees into pages of columns. A column is one element
// wide; a parent gets as many columns as are left on its line, and a parent
// of leaves only at most MaxChildHorizontalCount.
//
// Sizes are measured bottom-up first. The second pass plots every page with
// a PlotCursor bounded by the measured height, so a page that does not hold
// what was measured for it fails with PAGE_AREA_EXCEEDED.
type Hierarchy struct{}

// Name implements Strategy.
func (Hierarchy) Name() string { return "hierarchy" }

// Layout implements Strategy.
func (Hierarchy) Layout(roots []*Node, opts Options) (view.View, error) {
	h := &hierarchy{s: opts.Settings, elem: opts.Settings.ElementSize(), pages: map[string]page{}, sizes: map[string]box.Dimension{}}
	top := h.measurePage(byWeight(roots), h.s.MaxHorizontalCount)

	var nodes []view.Node
	if err := h.plot(byWeight(roots), top, Point{}, "", &nodes); err != nil {
		return view.View{}, err
	}
	return view.New(opts.ViewID, opts.ViewName, nodes), nil
}

type page struct {
	width  float64
	extent box.Dimension
}

type hierarchy struct {
	s     settings.Settings
	elem  box.Dimension
	pages map[string]page
	sizes map[string]box.Dimension
}

func (h *hierarchy) span(cols int) float64 {
	return float64(cols)*h.elem.Width + float64(cols-1)*h.s.SpaceBetween
}

func (h *hierarchy) columnsOf(w float64) int {
	return max(1, int(math.Ceil((w+h.s.SpaceBetween)/(h.elem.Width+h.s.SpaceBetween)-1e-9)))
}

// measurePage sizes nodes on a page cols columns wide.
func (h *hierarchy) measurePage(nodes []*Node, cols int) page {
	pg := page{width: h.span(cols)}
	cur := NewPlotCursor(pg.width, 0, h.s.SpaceBetween)
	used := 0
	for _, n := range nodes {
		budget := cols - used
		if budget < 1 {
			budget, used = cols, 0
		}
		d := h.measure(n, budget)
		p, _ := cur.CalculatePosition(d)
		if p.X == 0 {
			used = 0
		}
		used += h.columnsOf(d.Width)
	}
	pg.extent = cur.Extent()
	return pg
}

func (h *hierarchy) measure(n *Node, budget int) box.Dimension {
	if n.IsLeaf() {
		h.sizes[n.ViewID] = h.elem
		return h.elem
	}
	cols := budget
	if allLeaves(n.Children) {
		cols = min(cols, h.s.MaxChildHorizontalCount)
	}
	pg := h.measurePage(byWeight(n.Children), cols)
	h.pages[n.ViewID] = pg
	d := box.Dimension{
		Width:  h.s.LeftPadding + max(pg.extent.Width, h.s.LabelWidth) + h.s.RightPadding,
		Height: h.headerHeight() + pg.extent.Height + h.s.BottomPadding,
	}
	h.sizes[n.ViewID] = d
	return d
}

func (h *hierarchy) headerHeight() float64 {
	return h.s.TopPadding + h.s.LabelHeight + h.s.SpaceToOuterLabel
}

// plot places nodes on pg with its top-left corner at origin.
func (h *hierarchy) plot(nodes []*Node, pg page, origin Point, parent string, out *[]view.Node) error {
	cur := NewPlotCursor(pg.width, pg.extent.Height, h.s.SpaceBetween)
	for _, n := range nodes {
		d := h.sizes[n.ViewID]
		p, err := cur.CalculatePosition(d)
		if err != nil {
			return err
		}
		at := Point{X: origin.X + p.X, Y: origin.Y + p.Y}
		*out = append(*out, view.Node{
			ModelNodeID: n.ModelID,
			ViewNodeID:  n.ViewID,
			Name:        n.Name,
			Type:        n.Type,
			X:           at.X,
			Y:           at.Y,
			Width:       d.Width,
			Height:      d.Height,
			ParentID:    parent,
		})
		if n.IsLeaf() {
			continue
		}
		inner := Point{X: at.X + h.s.LeftPadding, Y: at.Y + h.headerHeight()}
		if err := h.plot(byWeight(n.Children), h.pages[n.ViewID], inner, n.ViewID, out); err != nil {
			return err
		}
	}
	return nil
}

func allLeaves(nodes []*Node) bool {
	for _, n := range nodes {
		if !n.IsLeaf() {
			return false
		}
	}
	return true
}
