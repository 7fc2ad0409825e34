package main

import (
	"errors"
	"io"

	"github.com/shahar-caura/glutenguard/internal/checker"
	"github.com/shahar-caura/glutenguard/internal/scanner"
	"github.com/spf13/cobra"
)

func newScanCmd(a *app) *cobra.Command {
	var favorite bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Check barcodes from a scanner until end of input",
		Long: `Read barcodes one per line from stdin. Keyboard-wedge USB scanners work
as-is. Unknown or malformed codes are reported and skipped; Ctrl-D or
Ctrl-C ends the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.wire()
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			ctx := cmd.Context()
			sc := scanner.NewLineScanner(cmd.InOrStdin())
			defer func() { _ = sc.Close() }()
			scanned := 0
			for {
				code, err := sc.Scan(ctx)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					if ctx.Err() != nil {
						break
					}
					return err
				}

				chk, err := svc.Checker.CheckBarcode(ctx, code)
				switch {
				case errors.Is(err, scanner.ErrInvalidBarcode), errors.Is(err, checker.ErrProductNotFound):
					a.logger.Warn("skipping barcode", "barcode", code, "error", err)
					continue
				case err != nil:
					a.logger.Error("lookup failed", "barcode", code, "error", err)
					continue
				}
				scanned++

				if err := a.printCheck(cmd.OutOrStdout(), *chk); err != nil {
					return err
				}
				if favorite {
					if _, err := svc.Checker.AddFavoriteFromCheck(ctx, *chk); err != nil {
						a.logger.Warn("saving favorite", "barcode", code, "error", err)
					}
				}
			}

			a.logger.Info("scan finished", "checked", scanned)
			return nil
		},
	}

	cmd.Flags().BoolVar(&favorite, "favorite", false, "save every product found as a favorite")

	return cmd
}
