package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/smartview/pkg/render"
	"github.com/matzehuels/smartview/pkg/view"
)

// Options configures ToDOT.
type Options struct {
	// Detailed adds the node type and occurrence count to labels.
	Detailed bool
}

type dotNode struct {
	name        string
	typ         string
	occurrences int
}

// ToDOT converts the relationships of v to Graphviz DOT source, one node per
// model id in first-seen order.
func ToDOT(v view.View, opts Options) string {
	byView := make(map[string]*view.Node, len(v.ViewNodes))
	for i := range v.ViewNodes {
		byView[v.ViewNodes[i].ViewNodeID] = &v.ViewNodes[i]
	}

	var order []string
	nodes := map[string]*dotNode{}
	type edge struct{ from, to string }
	var edges []edge
	seen := map[edge]bool{}

	for _, n := range v.ViewNodes {
		d, ok := nodes[n.ModelNodeID]
		if !ok {
			d = &dotNode{name: n.Name, typ: n.Type}
			nodes[n.ModelNodeID] = d
			order = append(order, n.ModelNodeID)
		}
		d.occurrences++
		if p, ok := byView[n.ParentID]; ok {
			e := edge{p.ModelNodeID, n.ModelNodeID}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
	for _, id := range order {
		d := nodes[id]
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs(id, d, opts.Detailed), ", "))
	}
	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func attrs(id string, d *dotNode, detailed bool) []string {
	label := d.name
	if label == "" {
		label = id
	}
	if detailed {
		var parts []string
		if d.typ != "" {
			parts = append(parts, "type: "+d.typ)
		}
		parts = append(parts, fmt.Sprintf("occurrences: %d", d.occurrences))
		label += "\n" + strings.Join(parts, "\n")
	}
	out := []string{fmt.Sprintf("label=%q", label)}
	if d.occurrences > 1 {
		out = append(out, "peripheries=2")
	}
	return out
}

// RenderSVG lays out and renders DOT source with Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root tag, which sizes in points,
// with one sized in user units.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT source to PDF.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source to PNG at scale.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
