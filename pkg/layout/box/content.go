package box

import (
	"slices"

	"github.com/matzehuels/smartview/pkg/errors"
)

// Alignment controls how children are placed along one axis.
type Alignment int

const (
	// Start packs children from the leading edge.
	Start Alignment = iota
	// End packs children against the trailing edge.
	End
	// Center centers the used block in the available length.
	Center
	// Expanded gives every child the same share of the available length on
	// the main axis, or the full length on the cross axis.
	Expanded
)

func (a Alignment) String() string {
	switch a {
	case End:
		return "end"
	case Center:
		return "center"
	case Expanded:
		return "expanded"
	default:
		return "start"
	}
}

// ParseAlignment converts a name such as "center" into an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "", "start":
		return Start, nil
	case "end":
		return End, nil
	case "center":
		return Center, nil
	case "expanded":
		return Expanded, nil
	}
	return Start, errors.New(errors.ErrCodeInvalidConfig, "unknown alignment %q", s)
}

// Align is the per-axis alignment pair of a container.
type Align struct {
	Horizontal Alignment
	Vertical   Alignment
}

// Along returns the alignment on axis a.
func (a Align) Along(axis Axis) Alignment {
	if axis == Horizontal {
		return a.Horizontal
	}
	return a.Vertical
}

// Item is the input for placing one child: its intrinsic size and whether it
// is itself a container.
type Item struct {
	Size   Dimension
	Nested bool
}

// Rect is a placed child, relative to the content box's top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// ContentBox owns an ordered child list and lays it out inside its content
// area.
type ContentBox struct {
	dim      *ContentDimension
	align    Align
	children []int
}

// NewContentBox creates a ContentBox with main axis main, initial content
// size, fixed flags per axis and inter-child spacing.
func NewContentBox(main Axis, align Align, size Dimension, fixedW, fixedH bool, spacing float64) *ContentBox {
	b := NewBox(size, fixedW, fixedH, spacing)
	return &ContentBox{
		dim:   NewContentDimension(b, main, align.Along(main) == Expanded),
		align: align,
	}
}

// Dimension exposes the size bookkeeping.
func (c *ContentBox) Dimension() *ContentDimension { return c.dim }

// Align returns the alignment pair.
func (c *ContentBox) Align() Align { return c.align }

// Main returns the main axis.
func (c *ContentBox) Main() Axis { return c.dim.Main() }

// Size returns the content box size.
func (c *ContentBox) Size() Dimension { return c.dim.Size() }

// Children returns the child ids in insertion order.
func (c *ContentBox) Children() []int { return c.children }

// Add appends child id with size d. Adding the same id twice is an error.
func (c *ContentBox) Add(id int, d Dimension, nested bool) (Change, error) {
	if slices.Contains(c.children, id) {
		return Change{}, errors.New(errors.ErrCodeDuplicateChild, "child %d already inserted", id)
	}
	ch, err := c.dim.AddContent(d, nested)
	if err != nil {
		return ch, err
	}
	c.children = append(c.children, id)
	return ch, nil
}

// Grow records that an existing child grew from old to cur.
func (c *ContentBox) Grow(old, cur Dimension) (Change, error) {
	return c.dim.GrowContent(old, cur)
}

// SetSize widens the content box to size. Shrinking is an error.
func (c *ContentBox) SetSize(size Dimension) error {
	if err := c.dim.X.SetFinalValue(c.dim.X.Bounds().Min + size.Width); err != nil {
		return err
	}
	return c.dim.Y.SetFinalValue(c.dim.Y.Bounds().Min + size.Height)
}

// Arrange places items, one per child in insertion order, and returns their
// rectangles. Distribution runs on the main axis, alignment on the cross
// axis.
func (c *ContentBox) Arrange(items []Item) []Rect {
	rects := make([]Rect, len(items))
	if len(items) == 0 {
		return rects
	}
	main := c.Main()
	mainPos, mainLen := c.Distribute(items)
	crossPos, crossLen := c.AlignCross(items)
	for i := range items {
		if main == Horizontal {
			rects[i] = Rect{X: mainPos[i], Y: crossPos[i], Width: mainLen[i], Height: crossLen[i]}
		} else {
			rects[i] = Rect{X: crossPos[i], Y: mainPos[i], Width: crossLen[i], Height: mainLen[i]}
		}
	}
	return rects
}

// Distribute computes main-axis offsets and lengths.
func (c *ContentBox) Distribute(items []Item) (pos, length []float64) {
	main := c.Main()
	n := len(items)
	pos = make([]float64, n)
	length = make([]float64, n)
	spacing := c.dim.Spacing
	avail := c.dim.Axis(main).Length()
	totalSpacing := spacing * float64(n-1)

	if c.align.Along(main) == Expanded {
		ref := ReferenceSize(avail, totalSpacing, items, main)
		var x float64
		for i := range items {
			pos[i] = x
			length[i] = ref
			x += ref + spacing
		}
		return pos, length
	}

	var used float64
	for i, it := range items {
		length[i] = it.Size.Along(main)
		used += length[i]
	}
	used += totalSpacing

	var x float64
	switch c.align.Along(main) {
	case End:
		x = avail - used
	case Center:
		x = (avail - used) / 2
	}
	for i := range items {
		pos[i] = x
		x += length[i] + spacing
	}
	return pos, length
}

// AlignCross computes cross-axis offsets and lengths.
func (c *ContentBox) AlignCross(items []Item) (pos, length []float64) {
	cross := c.Main().Cross()
	avail := c.dim.Axis(cross).Length()
	pos = make([]float64, len(items))
	length = make([]float64, len(items))
	for i, it := range items {
		size := it.Size.Along(cross)
		switch c.align.Along(cross) {
		case Expanded:
			pos[i], length[i] = 0, avail
		case End:
			pos[i], length[i] = avail-size, size
		case Center:
			pos[i], length[i] = (avail-size)/2, size
		default:
			pos[i], length[i] = 0, size
		}
	}
	return pos, length
}

// ReferenceSize is the shared main-axis size of EXPANDED children:
// (available - spacing) / n, raised to the largest intrinsic size when it
// falls below it and at least one child is a container.
func ReferenceSize(available, totalSpacing float64, items []Item, main Axis) float64 {
	if len(items) == 0 {
		return 0
	}
	ref := (available - totalSpacing) / float64(len(items))
	var largest float64
	nested := false
	for _, it := range items {
		largest = max(largest, it.Size.Along(main))
		nested = nested || it.Nested
	}
	if ref <= largest && nested {
		ref = largest
	}
	return ref
}
