package main

import (
	"strings"

	"github.com/shahar-caura/glutenguard/internal/checker"
	"github.com/shahar-caura/glutenguard/internal/dishes"
	"github.com/shahar-caura/glutenguard/internal/render"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search dishes, recipes and products by name",
		Long: `Search by dish or product name. Local dishes are listed first with their
typical risk, followed by recipes and Open Food Facts products.`,
		Example: "  glutenguard search pad thai --limit 3",
		Args:    cobra.MinimumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeDishNames(toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.wire()
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			checks, err := svc.Checker.CheckName(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return render.JSON(cmd.OutOrStdout(), checks)
			}
			return render.Checks(cmd.OutOrStdout(), checks)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", checker.DefaultLimit, "maximum number of matches")

	return cmd
}

func completeDishNames(toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := dishes.Normalize(toComplete)
	var names []string
	for _, d := range dishes.Default().All() {
		if strings.HasPrefix(d.Name, prefix) {
			names = append(names, d.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
