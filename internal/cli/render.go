package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/path"
	"github.com/matzehuels/smartview/pkg/pipeline"
	"github.com/matzehuels/smartview/pkg/view"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file (single format) or base path (multiple)
	formats  string  // comma separated output formats
	vizType  string  // "boxes" or "nodelink"
	detailed bool    // node-link labels show type and occurrences
	scale    float64 // PNG scale factor
	refresh  bool    // ignore cached results
}

// renderCommand creates the render command. It accepts a paths file, which
// is laid out first, or a view written by 'layout'.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		ro      = renderOpts{vizType: pipeline.DefaultVizType, scale: pipeline.DefaultScale}
		caching cacheFlags
		sf      settingsFlags
	)

	cmd := &cobra.Command{
		Use:   "render [paths.json|view.json]",
		Short: "Render paths or a view to SVG, PNG, PDF, JSON or DOT",
		Long: `Render paths or a view to SVG, PNG, PDF, JSON or DOT.

A paths file is laid out first using the layout flags. A view file written by
'layout' is rendered as is.

Boxes (--viz boxes) draws the positioned view. Node-link (--viz nodelink)
draws the parent/child graph of the semantic elements with Graphviz; a node
drawn with a double border appears under several parents. PNG and PDF need
rsvg-convert on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := pipeline.ParseFormats(ro.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if err := pipeline.ValidateVizType(ro.vizType); err != nil {
				return err
			}
			opts, err := sf.options(cmd)
			if err != nil {
				return err
			}
			opts.Formats = formats
			opts.VizType = ro.vizType
			opts.Detailed = ro.detailed
			opts.Scale = ro.scale
			opts.Refresh = ro.refresh
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runRender(ctx, args[0], opts, ro.output, caching)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&ro.vizType, "viz", ro.vizType, "visualization: boxes (default), nodelink")
	cmd.Flags().BoolVar(&ro.detailed, "detailed", false, "show type and occurrences (nodelink)")
	cmd.Flags().Float64Var(&ro.scale, "scale", ro.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&ro.refresh, "refresh", false, "recompute even when a cached view exists")
	caching.register(cmd)
	sf.register(cmd)

	return cmd
}

// runRender loads input, lays it out when it holds paths, and writes every
// requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, caching cacheFlags) error {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner, err := c.newRunner(caching)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.VizType))
	spinner.Start()

	var (
		artifacts map[string][]byte
		cacheHit  bool
		pathCount int
		nodeCount int
	)
	if isViewDocument(data) {
		v, err := view.Unmarshal(data)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("load view %s: %w", input, err)
		}
		nodeCount = len(v.ViewNodes)
		artifacts, cacheHit, err = runner.RenderWithCacheInfo(ctx, v, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
	} else {
		paths, err := path.Read(bytes.NewReader(data))
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("load paths %s: %w", input, err)
		}
		result, err := runner.Execute(ctx, paths, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
		artifacts, cacheHit = result.Artifacts, result.CacheHit
		pathCount, nodeCount = result.Stats.PathCount, result.Stats.NodeCount
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	written, err := writeArtifacts(artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, f := range written {
		printFile(f)
	}
	printStats(pathCount, nodeCount, cacheHit)
	return nil
}

// isViewDocument reports whether data holds a JSON object, which is a view;
// paths files are JSON arrays.
func isViewDocument(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// writeArtifacts writes each format to its own file and returns the paths in
// format order. A single format goes to output itself when given.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	sorted := append([]string(nil), formats...)
	sort.Strings(sorted)

	base := basePath(output, input)
	var written []string
	for _, format := range sorted {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		name := base + "." + format
		if format == pipeline.FormatJSON {
			name = base + ".view.json"
		}
		if len(sorted) == 1 && output != "" {
			name = output
		}
		if err := os.WriteFile(name, data, 0644); err != nil {
			return written, fmt.Errorf("write output %s: %w", name, err)
		}
		written = append(written, name)
	}
	return written, nil
}
