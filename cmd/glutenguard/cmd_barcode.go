package main

import (
	"github.com/spf13/cobra"
)

func newBarcodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "barcode <code>",
		Short:   "Look up a product by barcode and classify it",
		Example: "  glutenguard barcode 5000159484695",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.wire()
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			chk, err := svc.Checker.CheckBarcode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printCheck(cmd.OutOrStdout(), *chk)
		},
	}
}
