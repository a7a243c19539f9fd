// Package svg draws a view as nested rectangles.
//
// Nodes are drawn in view order, parents first, so children paint over the
// containers holding them. Containers carry their caption in the label band
// along their top edge; elements carry a centered, truncated name.
package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/smartview/pkg/view"
)

// Theme holds the colors of a drawing.
type Theme struct {
	Background      string
	ContainerFill   string
	ContainerStroke string
	ElementFill     string
	ElementStroke   string
	Text            string
}

// DefaultTheme is a light theme.
var DefaultTheme = Theme{
	Background:      "white",
	ContainerFill:   "#f4f6f8",
	ContainerStroke: "#8a99a8",
	ElementFill:     "#ffffff",
	ElementStroke:   "#36495c",
	Text:            "#1d2833",
}

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	margin      float64
	labelHeight float64
	theme       Theme
}

// WithMargin sets the blank border around the drawing.
func WithMargin(m float64) Option { return func(r *renderer) { r.margin = m } }

// WithLabelHeight sets the height of the caption band of containers.
func WithLabelHeight(h float64) Option { return func(r *renderer) { r.labelHeight = h } }

// WithTheme sets the colors.
func WithTheme(t Theme) Option { return func(r *renderer) { r.theme = t } }

// Render returns v as an SVG document.
func Render(v view.View, opts ...Option) []byte {
	r := renderer{margin: 10, labelHeight: 20, theme: DefaultTheme}
	for _, opt := range opts {
		opt(&r)
	}

	b := v.Bounds
	w, h := b.Width()+2*r.margin, b.Height()+2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		b.Horizontal.Min-r.margin, b.Vertical.Min-r.margin, w, h, w, h)
	if v.Name != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(v.Name))
	}
	fmt.Fprintf(&buf, `  <rect class="background" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		b.Horizontal.Min-r.margin, b.Vertical.Min-r.margin, w, h, r.theme.Background)

	for i := range v.ViewNodes {
		n := &v.ViewNodes[i]
		if n.IsContainer() {
			r.container(&buf, n)
		} else {
			r.element(&buf, n)
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) container(buf *bytes.Buffer, n *view.Node) {
	fmt.Fprintf(buf, `  <rect class="container" id="node-%s" data-model="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		escape(n.ViewNodeID), escape(n.ModelNodeID), n.X, n.Y, n.Width, n.Height, r.theme.ContainerFill, r.theme.ContainerStroke)
	if n.Name == "" {
		return
	}
	size := fontSize(n.Width-16, r.labelHeight, len(n.Name))
	fmt.Fprintf(buf, `  <text class="label" x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" font-weight="bold" fill="%s">%s</text>`+"\n",
		n.X+8, n.Y+8+r.labelHeight*0.75, size, r.theme.Text, escape(truncate(n.Name, n.Width-16, size)))
}

func (r *renderer) element(buf *bytes.Buffer, n *view.Node) {
	fmt.Fprintf(buf, `  <rect class="element" id="node-%s" data-model="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		escape(n.ViewNodeID), escape(n.ModelNodeID), n.X, n.Y, n.Width, n.Height, r.theme.ElementFill, r.theme.ElementStroke)
	if n.Name == "" {
		return
	}
	size := fontSize(n.Width, n.Height, len(n.Name))
	fmt.Fprintf(buf, `  <text class="name" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
		n.X+n.Width/2, n.Y+n.Height/2, size, r.theme.Text, escape(truncate(n.Name, n.Width, size)))
}
