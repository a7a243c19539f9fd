package box

import (
	"math"

	"github.com/matzehuels/smartview/pkg/errors"
)

const eps = 1e-9

// Dimension is a width/height pair.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Along returns the dimension's length on the given axis.
func (d Dimension) Along(a Axis) float64 {
	if a == Horizontal {
		return d.Width
	}
	return d.Height
}

// Axis names one of the two layout axes.
type Axis int

const (
	// Horizontal is the x axis. It is the main axis of a row.
	Horizontal Axis = iota
	// Vertical is the y axis. It is the main axis of a column.
	Vertical
)

// Cross returns the perpendicular axis.
func (a Axis) Cross() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Interval is a closed range on one axis.
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Length returns Max - Min.
func (i Interval) Length() float64 { return i.Max - i.Min }

// Scalar tracks the content interval and used length of one axis.
//
// A fixed Scalar rejects content that does not fit. A non-fixed Scalar grows
// its interval instead, pushing Max outward by the overflow.
type Scalar struct {
	bounds Interval
	used   float64
	fixed  bool
}

// NewScalar creates a Scalar spanning [0, length].
func NewScalar(length float64, fixed bool) *Scalar {
	return &Scalar{bounds: Interval{Max: length}, fixed: fixed}
}

// Bounds returns the current interval.
func (s *Scalar) Bounds() Interval { return s.bounds }

// Length returns the content length.
func (s *Scalar) Length() float64 { return s.bounds.Length() }

// Used returns the length consumed by content.
func (s *Scalar) Used() float64 { return s.used }

// Available returns the unused length.
func (s *Scalar) Available() float64 { return s.Length() - s.used }

// Fixed reports whether the axis refuses to grow.
func (s *Scalar) Fixed() bool { return s.fixed }

// Increment adds value to the used length, preceded by spacing unless first.
// It returns true when the content length changed.
func (s *Scalar) Increment(value, spacing float64, first bool) (bool, error) {
	next := s.used + value
	if !first {
		next += spacing
	}
	return s.Reserve(next)
}

// Reserve raises the used length to at least length. Smaller values are
// ignored. It returns true when the content length changed.
func (s *Scalar) Reserve(length float64) (bool, error) {
	if length <= s.used {
		return false, nil
	}
	s.used = length
	overflow := s.used - s.Length()
	if overflow <= eps {
		return false, nil
	}
	if s.fixed {
		return false, errors.New(errors.ErrCodeDimensionOverflow,
			"used length %.2f exceeds fixed length %.2f", s.used, s.Length())
	}
	s.bounds.Max += overflow
	return true, nil
}

// SetFinalValue moves the upper boundary to boundary. The boundary may only
// grow during a layout pass.
func (s *Scalar) SetFinalValue(boundary float64) error {
	if boundary < s.bounds.Max-eps {
		return errors.New(errors.ErrCodeDimensionOverflow,
			"boundary %.2f below current boundary %.2f", boundary, s.bounds.Max)
	}
	s.bounds.Max = math.Max(boundary, s.bounds.Max)
	return nil
}

// Box pairs an x and a y Scalar sharing one inter-child spacing.
type Box struct {
	X       *Scalar
	Y       *Scalar
	Spacing float64
}

// NewBox creates a Box of the given size.
func NewBox(size Dimension, fixedW, fixedH bool, spacing float64) *Box {
	return &Box{
		X:       NewScalar(size.Width, fixedW),
		Y:       NewScalar(size.Height, fixedH),
		Spacing: spacing,
	}
}

// Axis returns the Scalar for a.
func (b *Box) Axis(a Axis) *Scalar {
	if a == Horizontal {
		return b.X
	}
	return b.Y
}

// Size returns the content lengths.
func (b *Box) Size() Dimension {
	return Dimension{Width: b.X.Length(), Height: b.Y.Length()}
}

// Used returns the used lengths.
func (b *Box) Used() Dimension {
	return Dimension{Width: b.X.Used(), Height: b.Y.Used()}
}

// Change reports which content lengths moved during an update.
type Change struct {
	Width  bool
	Height bool
}

// Any reports whether either axis changed.
func (c Change) Any() bool { return c.Width || c.Height }

func (c *Change) mark(a Axis, changed bool) {
	if !changed {
		return
	}
	if a == Horizontal {
		c.Width = true
	} else {
		c.Height = true
	}
}

// ContentDimension adds a main/cross direction to a Box and records the
// largest child seen on the main axis.
type ContentDimension struct {
	*Box
	main         Axis
	expanded     bool
	count        int
	sum          float64
	largest      float64
	nestedGroups int
}

// NewContentDimension creates a ContentDimension whose main axis is main.
// When expanded is set, the main axis reserves room for every child at the
// size of the largest one as soon as a nested group is present.
func NewContentDimension(b *Box, main Axis, expanded bool) *ContentDimension {
	return &ContentDimension{Box: b, main: main, expanded: expanded}
}

// Main returns the main axis.
func (c *ContentDimension) Main() Axis { return c.main }

// Largest returns the largest child size seen on the main axis.
func (c *ContentDimension) Largest() float64 { return c.largest }

// HasNestedGroup reports whether any child is a container.
func (c *ContentDimension) HasNestedGroup() bool { return c.nestedGroups > 0 }

// Count returns the number of children added.
func (c *ContentDimension) Count() int { return c.count }

// AddContent accounts for a new child of size d. The main axis grows by the
// child's main size; the cross axis grows only when the child is larger than
// the used cross size.
func (c *ContentDimension) AddContent(d Dimension, nested bool) (Change, error) {
	var ch Change
	first := c.count == 0
	c.count++
	if nested {
		c.nestedGroups++
	}
	mainSize, crossSize := d.Along(c.main), d.Along(c.main.Cross())
	if mainSize > c.largest {
		c.largest = mainSize
	}
	c.sum += mainSize
	if !first {
		c.sum += c.Spacing
	}

	changed, err := c.Axis(c.main).Increment(mainSize, c.Spacing, first)
	if err != nil {
		return ch, err
	}
	ch.mark(c.main, changed)

	if changed, err = c.reserveExpanded(); err != nil {
		return ch, err
	}
	ch.mark(c.main, changed)

	changed, err = c.Axis(c.main.Cross()).Reserve(crossSize)
	if err != nil {
		return ch, err
	}
	ch.mark(c.main.Cross(), changed)
	return ch, nil
}

// GrowContent accounts for a child that grew from old to cur after it was
// added.
func (c *ContentDimension) GrowContent(old, cur Dimension) (Change, error) {
	var ch Change
	if m := cur.Along(c.main); m > c.largest {
		c.largest = m
	}
	if delta := cur.Along(c.main) - old.Along(c.main); delta > eps {
		c.sum += delta
		changed, err := c.Axis(c.main).Reserve(c.sum)
		if err != nil {
			return ch, err
		}
		ch.mark(c.main, changed)
	}
	changed, err := c.reserveExpanded()
	if err != nil {
		return ch, err
	}
	ch.mark(c.main, changed)

	changed, err = c.Axis(c.main.Cross()).Reserve(cur.Along(c.main.Cross()))
	if err != nil {
		return ch, err
	}
	ch.mark(c.main.Cross(), changed)
	return ch, nil
}

// reserveExpanded keeps n * largest + spacing available on an EXPANDED main
// axis holding nested groups, so the clamped reference size always fits.
func (c *ContentDimension) reserveExpanded() (bool, error) {
	if !c.expanded || c.nestedGroups == 0 {
		return false, nil
	}
	need := float64(c.count)*c.largest + float64(c.count-1)*c.Spacing
	return c.Axis(c.main).Reserve(need)
}
