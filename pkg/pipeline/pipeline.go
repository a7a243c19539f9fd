// Package pipeline runs the path → view → artifact flow shared by the CLI
// and library callers.
//
// # Stages
//
//  1. Layout: fold paths into the semantic DAG, assemble and position the
//     view ([Generate]).
//  2. Render: turn the view into files ([Render]): box diagrams as SVG, the
//     relationship graph as DOT or Graphviz SVG, the view itself as JSON, and
//     PNG or PDF through rsvg-convert.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, paths, pipeline.Options{
//	    Settings: settings.Default(),
//	    Formats:  []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
//
// Every failure coming out of [Generate] carries RENDER_FAILED with the
// precise cause underneath; use errors.RootCode to reach it.
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/smartview/pkg/cache"
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/layout"
	"github.com/matzehuels/smartview/pkg/settings"
	"github.com/matzehuels/smartview/pkg/view"
)

const (
	// DefaultViewName names views whose caller gave no name.
	DefaultViewName = "smartview"

	// DefaultScale is the PNG resolution factor.
	DefaultScale = 2.0
)

// Visualization types.
const (
	// VizBoxes draws containment: parents as boxes around their children.
	VizBoxes = "boxes"

	// VizNodelink draws relationships as a Graphviz node-link diagram.
	VizNodelink = "nodelink"
)

// DefaultVizType is the visualization drawn when none is requested.
const DefaultVizType = VizBoxes

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizBoxes:    true,
	VizNodelink: true,
}

// Options configures a pipeline run.
type Options struct {
	Settings settings.Settings `json:"settings"`
	ViewID   string            `json:"view_id,omitempty"`
	ViewName string            `json:"view_name,omitempty"`

	VizType  string   `json:"viz_type,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // node-link labels show type and occurrences
	Scale    float64  `json:"scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	// IDs names view nodes and layout groups. It defaults to random UUIDs.
	IDs    layout.IDSource `json:"-"`
	Logger *log.Logger     `json:"-"`

	validated bool
}

// Result holds the outputs of a run.
type Result struct {
	View      view.View
	Artifacts map[string][]byte
	Stats     Stats
	CacheHit  bool // the view came from the cache
}

// Stats holds sizes and timings of a run.
type Stats struct {
	PathCount  int
	NodeCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that vizType is supported.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid viz_type: %q (must be one of: boxes, nodelink)", vizType)
	}
	return nil
}

// ParseFormats splits a comma separated format list, dropping blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ValidateAndSetDefaults fills defaults and checks every field. Calling it
// again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout fills layout defaults and validates the settings.
func (o *Options) ValidateForLayout() error {
	o.Settings.ApplyDefaults()
	if err := o.Settings.Validate(); err != nil {
		return err
	}
	if o.ViewName == "" {
		o.ViewName = DefaultViewName
	}
	if o.IDs == nil {
		o.IDs = layout.NewUUIDSource()
	}
	o.setLogger()
	return nil
}

// ValidateForRender fills render defaults and checks formats.
func (o *Options) ValidateForRender() error {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsNodelink reports whether SVG output draws the relationship graph.
func (o *Options) IsNodelink() bool { return o.VizType == VizNodelink }

// ViewKeyOpts returns the cache key options of the layout stage.
func (o *Options) ViewKeyOpts() cache.ViewKeyOpts {
	return cache.ViewKeyOpts{
		Settings: o.Settings,
		ViewID:   o.ViewID,
		ViewName: o.ViewName,
		IDs:      layout.Scheme(o.IDs),
	}
}

// ArtifactFormat is the cache key component of one rendered format. It
// includes everything besides the view that changes the bytes.
func (o *Options) ArtifactFormat(format string) string {
	return fmt.Sprintf("%s/%s/detailed=%t/scale=%.2f/label=%.1f", format, o.VizType, o.Detailed, o.Scale, o.Settings.LabelHeight)
}
