package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dotwalk/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached SVG and PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer store.Close()

			status := cmd.ErrOrStderr()
			if _, ok := store.(*cache.NullCache); ok {
				printInfo(status, "Caching is disabled, nothing to clear")
				return nil
			}
			if err := store.Clear(ctx); err != nil {
				return err
			}
			printSuccess(status, "Cleared the layout cache")
			printDetail(status, "Location: %s", c.cacheLocation(store))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the layout cache lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Fprintln(cmd.OutOrStdout(), c.cacheLocation(store))
			return nil
		},
	}
}

// cacheLocation describes where store keeps its entries.
func (c *CLI) cacheLocation(store cache.Cache) string {
	switch s := store.(type) {
	case *cache.FileCache:
		return s.Dir()
	case *cache.RedisCache:
		return "redis://" + c.Config.Cache.Redis
	default:
		return "disabled"
	}
}
