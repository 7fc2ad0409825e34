package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shahar-caura/glutenguard/internal/checker"
	"github.com/shahar-caura/glutenguard/internal/render"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [ingredients...|-]",
		Short: "Classify an ingredient list",
		Long: `Classify free-text ingredients. Arguments are joined with spaces; with no
arguments or "-" the list is read from stdin.`,
		Example: `  glutenguard check "rice flour, sugar, natural flavors"
  pbpaste | glutenguard check -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := ingredientsInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			svc, err := a.wire()
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			chk := svc.Checker.CheckText(cmd.Context(), text)
			return a.printCheck(cmd.OutOrStdout(), chk)
		},
	}
}

func ingredientsInput(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	if f, ok := stdin.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no ingredients given; pass them as arguments or pipe them to stdin")
		}
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func (a *app) printCheck(w io.Writer, chk checker.Check) error {
	if a.jsonOutput {
		return render.JSON(w, chk)
	}
	return render.Check(w, chk)
}
