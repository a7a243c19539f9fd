package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/path"
	"github.com/matzehuels/smartview/pkg/pipeline"
	"github.com/matzehuels/smartview/pkg/settings"
	"github.com/matzehuels/smartview/pkg/view"
)

// layoutCommand creates the layout command for computing a view from paths.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		refresh bool
		caching cacheFlags
		sf      settingsFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [paths.json]",
		Short: "Compute a positioned view from hierarchy paths",
		Long: `Compute a positioned view from hierarchy paths.

The layout command reads a JSON array of ancestor-to-descendant paths and
writes the positioned view (view.json) that 'render' and 'inspect' accept.

Settings come from --settings, then SMARTVIEW_* environment variables, then
flags. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := sf.options(cmd)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runLayout(ctx, args[0], opts, output, caching)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.view.json)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached view exists")
	caching.register(cmd)
	sf.register(cmd)

	return cmd
}

// runLayout loads the paths, computes the view, and writes it.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, caching cacheFlags) error {
	logger := loggerFromContext(ctx)

	paths, err := path.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load paths %s: %w", input, err)
	}

	runner, err := c.newRunner(caching)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger

	p := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", layoutType(opts)))
	spinner.Start()

	v, cacheHit, err := runner.LayoutWithCacheInfo(ctx, paths, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	p.done(fmt.Sprintf("Laid out %d nodes", len(v.ViewNodes)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".view.json"
	}

	if err := view.WriteFile(v, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(paths), len(v.ViewNodes), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

func layoutType(opts pipeline.Options) string {
	if opts.Settings.LayoutType == "" {
		return settings.DefaultLayoutType
	}
	return opts.Settings.LayoutType
}
