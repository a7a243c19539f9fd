// Package box implements per-axis size negotiation for layout containers.
//
// A [Scalar] tracks one axis: the content interval, the length consumed by
// children and whether the axis may grow. A [Box] pairs two scalars, and a
// [ContentDimension] adds a main/cross direction so that children stack on
// the main axis and share the cross axis.
//
// Growth is reported, not pushed: [ContentDimension.AddContent] and
// [ContentDimension.GrowContent] return a [Change] telling the caller which
// content lengths moved, so the owning container can resize itself and notify
// its own parent.
//
// [ContentBox] owns the ordered child list and places children once sizes are
// settled:
//
//	cb := box.NewContentBox(box.Horizontal, box.Align{}, box.Dimension{}, false, false, 5)
//	cb.Add(1, box.Dimension{Width: 50, Height: 60}, false)
//	cb.Add(2, box.Dimension{Width: 100, Height: 60}, false)
//	rects := cb.Arrange(items) // x = 0, 55
//
// Alignment values are START, END, CENTER and EXPANDED. On the main axis
// EXPANDED hands every child the same reference length; on the cross axis it
// stretches each child to the full available length.
package box
