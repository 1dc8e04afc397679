package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonpal34/Compiler/pkg/frontend"
)

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List the supported dialects",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, d := range frontend.Dialects {
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", d.Name, strings.Join(d.Extensions, " "))
		}
	},
}
