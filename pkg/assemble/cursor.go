package assemble

import (
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/layout/box"
)

// Point is a position relative to the page origin.
type Point struct {
	X, Y float64
}

// PlotCursor places elements left to right on a page, wrapping to a new line
// when the next element would cross the page width. Lines are as tall as
// their tallest element.
type PlotCursor struct {
	width   float64
	height  float64
	spacing float64

	x, y       float64
	lineHeight float64
	extent     box.Dimension
}

// NewPlotCursor creates a cursor for a page of the given size. A height of
// zero leaves the page unbounded vertically.
func NewPlotCursor(width, height, spacing float64) *PlotCursor {
	return &PlotCursor{width: width, height: height, spacing: spacing}
}

// CalculatePosition returns where an element of size d goes and advances
// past it. An element that does not fit below the page height fails with
// PAGE_AREA_EXCEEDED.
func (c *PlotCursor) CalculatePosition(d box.Dimension) (Point, error) {
	before := c.y
	p := c.advance(d)
	if c.y != before {
		// the advance only broke the line; place on the new one
		p = c.advance(d)
	}
	if c.height > 0 && p.Y+d.Height > c.height+1e-9 {
		return p, errors.New(errors.ErrCodePageAreaExceeded,
			"element at y=%.2f with height %.2f exceeds page height %.2f", p.Y, d.Height, c.height)
	}
	c.extent.Width = max(c.extent.Width, p.X+d.Width)
	c.extent.Height = max(c.extent.Height, p.Y+d.Height)
	return p, nil
}

func (c *PlotCursor) advance(d box.Dimension) Point {
	p := Point{X: c.x, Y: c.y}
	if c.x > 0 && c.x+d.Width > c.width {
		c.x = 0
		c.y += c.lineHeight + c.spacing
		c.lineHeight = 0
		return p
	}
	c.x += d.Width + c.spacing
	c.lineHeight = max(c.lineHeight, d.Height)
	return p
}

// Extent returns the size covered by everything placed so far.
func (c *PlotCursor) Extent() box.Dimension { return c.extent }

// AtLineStart reports whether the next element starts a line.
func (c *PlotCursor) AtLineStart() bool { return c.x == 0 }
