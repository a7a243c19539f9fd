package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/buildinfo"
	"github.com/matzehuels/smartview/pkg/cache"
	"github.com/matzehuels/smartview/pkg/observability"
	"github.com/matzehuels/smartview/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "smartview"

	// envRedisURL selects a shared Redis cache when --redis is not given.
	envRedisURL = "SMARTVIEW_REDIS_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level every pipeline and
// cache event is logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.LogHooks{Logger: c.Logger}
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
}

// logLevel maps --verbose and --quiet to a level. ok is false when neither
// is set and the level given to New stays.
func logLevel(verbose, quiet bool) (level log.Level, ok bool) {
	switch {
	case verbose:
		return LogDebug, true
	case quiet:
		return LogWarn, true
	}
	return LogInfo, false
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "SmartView lays out hierarchies as nested box diagrams",
		Long:         `SmartView turns ancestor-to-descendant paths into a positioned diagram of nested boxes and renders it to SVG, PNG, PDF, JSON or DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	var verbose, quiet bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log warnings and errors only")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")
	// The level is known only after flag parsing.
	root.PersistentPreRun = func(*cobra.Command, []string) {
		if level, ok := logLevel(verbose, quiet); ok {
			c.SetLogLevel(level)
		}
	}

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backing a runner.
type cacheFlags struct {
	noCache  bool
	redisURL string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redisURL, "redis", "", "shared Redis cache URL (default: $"+envRedisURL+", else local files)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(f cacheFlags) (*pipeline.Runner, error) {
	cache, err := c.newCache(f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newCache picks Redis when a URL is configured and the local file cache
// otherwise. An unusable file cache directory disables caching.
func (c *CLI) newCache(f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	url := f.redisURL
	if url == "" {
		url = os.Getenv(envRedisURL)
	}
	if url != "" {
		c.Logger.Debug("using redis cache")
		return cache.NewRedisCache(url)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/smartview/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
