// Package nodelink draws the parent/child graph behind a view with Graphviz.
//
// Where the svg package shows containment, a node-link diagram shows the
// relationships themselves: one box per model node and one arrow per
// parent/child link, however many times a node was duplicated in the view.
//
//	dot := nodelink.ToDOT(v, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [ToDOT] only builds text, so its output can also be saved and run through
// the Graphviz command line tools. Rendering uses
// [github.com/goccy/go-graphviz] in process; [RenderPDF] and [RenderPNG]
// additionally need rsvg-convert.
package nodelink
