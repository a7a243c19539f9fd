package pipeline

import (
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/render"
	"github.com/matzehuels/smartview/pkg/render/nodelink"
	"github.com/matzehuels/smartview/pkg/render/svg"
	"github.com/matzehuels/smartview/pkg/view"
)

// Render produces every format in opts.Formats from v.
func Render(v view.View, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var drawing []byte
	drawSVG := func() ([]byte, error) {
		if drawing != nil {
			return drawing, nil
		}
		var err error
		drawing, err = renderSVG(v, opts)
		return drawing, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = drawSVG()
		case FormatPNG:
			if data, err = drawSVG(); err == nil {
				data, err = render.ToPNG(data, opts.Scale)
			}
		case FormatPDF:
			if data, err = drawSVG(); err == nil {
				data, err = render.ToPDF(data)
			}
		case FormatJSON:
			data, err = view.Marshal(v)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(v, nodelink.Options{Detailed: opts.Detailed}))
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(v view.View, opts Options) ([]byte, error) {
	if opts.IsNodelink() {
		return nodelink.RenderSVG(nodelink.ToDOT(v, nodelink.Options{Detailed: opts.Detailed}))
	}
	var so []svg.Option
	if h := opts.Settings.LabelHeight; h > 0 {
		so = append(so, svg.WithLabelHeight(h))
	}
	return svg.Render(v, so...), nil
}
