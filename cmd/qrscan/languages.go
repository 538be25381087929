package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/qrscan/internal/language"
)

func newLanguagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "languages",
		Aliases: []string{"list"},
		Short:   "List supported interface languages",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Supported Languages:")
			for _, l := range language.Supported() {
				marker := " "
				if l.Lang == language.Default {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), " %s %-12s [%s]\n", marker, l.Name, l.Code)
			}
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
