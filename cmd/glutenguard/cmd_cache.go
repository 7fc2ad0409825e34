package main

import (
	"context"
	"fmt"

	"github.com/shahar-caura/glutenguard/internal/render"
	"github.com/shahar-caura/glutenguard/internal/store"
	"github.com/spf13/cobra"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the product lookup cache",
	}

	cmd.AddCommand(
		newCachePruneCmd(a, "cleanup", "Delete expired and unreadable cache entries", (*store.Store).CleanupCache),
		newCachePruneCmd(a, "clear", "Delete every cache entry", (*store.Store).ClearCache),
	)

	return cmd
}

func newCachePruneCmd(a *app, use, short string, prune func(*store.Store, context.Context) (int, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore(a.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			n, err := prune(st, cmd.Context())
			if err != nil {
				return fmt.Errorf("cache %s: %w", use, err)
			}
			a.logger.Debug("cache pruned", "action", use, "deleted", n)
			if a.jsonOutput {
				return render.JSON(cmd.OutOrStdout(), map[string]int{"deleted": n})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d cache entries\n", n)
			return err
		},
	}
}
