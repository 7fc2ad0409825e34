package main

import (
	"fmt"

	"github.com/shahar-caura/glutenguard/internal/render"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent checks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0, got %d", limit)
			}

			svc, err := a.wire()
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			entries, err := svc.Checker.History(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			if a.jsonOutput {
				return render.JSON(cmd.OutOrStdout(), entries)
			}
			return render.History(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")

	return cmd
}
