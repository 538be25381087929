package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/qrscan/internal/version"
)

func newAboutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show a short description and link",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: QR and barcode scanner for image files\n", version.Short())
			fmt.Fprintln(out, "https://github.com/oukeidos/qrscan")
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
