// Package layout builds box-model layouts out of rows, columns and leaf
// elements.
//
// # Model
//
// A [Tree] is an arena of containers. Groups lay their children out along a
// main axis (a row is horizontal, a column vertical) and may carry a [Label],
// which makes them visible: a visible group reserves a caption band on top or
// a caption column on the left, plus padding, around its content box.
// Elements are fixed-size leaves.
//
// Sizes only ever grow while the tree is built. Adding a child grows the
// parent's content box along the main axis, and along the cross axis when the
// child is larger than anything seen so far; the growth climbs to the root.
// [Tree.SetWidth] and [Tree.SetHeight] widen a container from outside and
// refuse to shrink it.
//
// Positions are computed in two explicit passes once the tree is complete:
// [Tree.Arrange] distributes and aligns each group's children top-down, and
// [Tree.ToAbsolutePosition] translates relative offsets into absolute ones.
//
// # Director
//
// [Director] drives a Tree through a cursor stack:
//
//	d := layout.NewDirector(layout.WithSpacing(5))
//	d.Init(box.Vertical, layout.Spec{})
//	d.AddVisibleRow(layout.Spec{}, layout.Label{Text: "Payments"}, ref)
//	d.AddElement(layout.PresetElement, childRef)
//	d.NavigateToParent(1)
//	v, err := d.ConvertToView("Systems", "view-1")
//
// Group additions step into the new group; NavigateToParent steps back out
// but never past the root. ConvertToView emits one view node per visible
// group and element.
//
// # Alignment rules
//
// A group that is EXPANDED on an axis must be given its size for that axis
// via [Px], unless its parent is also EXPANDED there and hands the size down.
// A group below an EXPANDED parent must itself be EXPANDED on that axis.
package layout
