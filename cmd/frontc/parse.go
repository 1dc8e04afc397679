package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/frontend"
)

var dump bool

var parseCmd = &cobra.Command{
	Use:   "parse <source>...",
	Short: "Translate source files and report their syntax errors",
	Args:  cobra.MinimumNArgs(1),
	RunE:  parseRun,
}

func init() {
	parseCmd.Flags().BoolVar(&dump, "dump", false, "print the symbol tables and intermediate code")
}

func parseRun(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		in, err := openInput(cmd, path)
		if err != nil {
			return err
		}

		stderr := cmd.ErrOrStderr()
		in.config.OnDiagnostic = func(d diag.Diagnostic) {
			fmt.Fprintf(stderr, "%s:%d:%d: %s\n", path, d.Line, d.Position+1, d.Code.Message())
		}

		res, err := frontend.Translate(in.reader, in.config)
		in.reader.Close()
		if res != nil && dump {
			if derr := res.Dump(cmd.OutOrStdout()); derr != nil {
				return derr
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if len(res.Diagnostics) > 0 {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("syntax errors in %d of %d files", failed, len(args))
	}
	return nil
}
