package main

import (
	"github.com/shahar-caura/glutenguard/internal/phrases"
	"github.com/shahar-caura/glutenguard/internal/render"
	"github.com/spf13/cobra"
)

func newPhrasesCmd(a *app) *cobra.Command {
	var (
		file    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "phrases",
		Short: "Show or validate the gluten reference lists",
		Long: `Print the active reference lists. With --file, load and validate that file
instead of the configured one; a non-zero exit means it would be rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				set *phrases.Set
				err error
			)
			if file != "" {
				set, err = phrases.LoadFile(file)
			} else {
				set, err = loadPhrases(a.cfg)
			}
			if err != nil {
				return err
			}

			if a.jsonOutput {
				return render.JSON(cmd.OutOrStdout(), set)
			}
			return render.Phrases(cmd.OutOrStdout(), set, verbose)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "validate and show this phrase file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every phrase")

	return cmd
}
