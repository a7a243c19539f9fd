package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local view and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cachePingCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached views and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, err := fc.Len()
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	}
}

// cachePingCommand creates the "cache ping" subcommand, which checks that a
// shared Redis cache answers.
func (c *CLI) cachePingCommand() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check the shared Redis cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = os.Getenv(envRedisURL)
			}
			if url == "" {
				return fmt.Errorf("no redis URL: pass --redis or set %s", envRedisURL)
			}
			rc, err := cache.NewRedisCache(url)
			if err != nil {
				return err
			}
			defer rc.Close()
			if err := rc.Ping(cmd.Context()); err != nil {
				printWarning("Redis unreachable")
				return err
			}
			printSuccess("Redis is reachable")
			printDetail("URL: %s", url)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "redis", "", "Redis URL (default: $"+envRedisURL+")")
	return cmd
}
