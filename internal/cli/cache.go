package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neunenak/typst/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the compile cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached compilations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ch, err := c.newCache(ctx, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				printWarning("Cache backend does not support clearing")
				return nil
			}
			n, err := clearer.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached entries", n)
			if fc, ok := ch.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.RedisAddr != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "redis://"+c.Config.RedisAddr)
				return nil
			}
			dir, err := c.Config.ResolveCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
