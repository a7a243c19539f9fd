// Package render turns positioned views into files.
//
// The [svg] subpackage draws a view as nested rectangles. The [nodelink]
// subpackage draws the parent/child graph behind a view with Graphviz. Both
// produce SVG; [ToPDF] and [ToPNG] convert that SVG with the external
// rsvg-convert tool (from librsvg):
//
//	out := svg.Render(v)
//	pdf, err := render.ToPDF(out)
//	png, err := render.ToPNG(out, 2.0)
//
// [svg]: github.com/matzehuels/smartview/pkg/render/svg
// [nodelink]: github.com/matzehuels/smartview/pkg/render/nodelink
package render
