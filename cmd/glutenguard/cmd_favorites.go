package main

import (
	"fmt"

	"github.com/shahar-caura/glutenguard/internal/render"
	"github.com/spf13/cobra"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage saved products",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listFavorites(cmd, a)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved products",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return listFavorites(cmd, a)
			},
		},
		&cobra.Command{
			Use:   "add <barcode>",
			Short: "Look up a product and save it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.wire()
				if err != nil {
					return err
				}
				defer func() { _ = svc.Close() }()

				rec, err := svc.Checker.AddFavorite(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return render.JSON(cmd.OutOrStdout(), rec)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s saved %s (%s)\n",
					render.Badge(rec.Result.Status), rec.Name, rec.Barcode)
				return err
			},
		},
		&cobra.Command{
			Use:     "remove <barcode>",
			Aliases: []string{"rm"},
			Short:   "Remove a saved product",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.wire()
				if err != nil {
					return err
				}
				defer func() { _ = svc.Close() }()

				if err := svc.Checker.RemoveFavorite(cmd.Context(), args[0]); err != nil {
					return err
				}
				if a.jsonOutput {
					return render.JSON(cmd.OutOrStdout(), map[string]string{"removed": args[0]})
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return err
			},
		},
	)

	return cmd
}

func listFavorites(cmd *cobra.Command, a *app) error {
	svc, err := a.wire()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	recs, err := svc.Checker.Favorites(cmd.Context())
	if err != nil {
		return err
	}
	if a.jsonOutput {
		return render.JSON(cmd.OutOrStdout(), recs)
	}
	return render.Favorites(cmd.OutOrStdout(), recs)
}
