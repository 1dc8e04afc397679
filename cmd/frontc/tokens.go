package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/frontend"
	"github.com/simonpal34/Compiler/pkg/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <source>",
	Short: "List the tokens of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  tokensRun,
}

func tokensRun(cmd *cobra.Command, args []string) error {
	in, err := openInput(cmd, args[0])
	if err != nil {
		return err
	}
	defer in.reader.Close()

	toks, err := frontend.Scan(in.reader, in.config)
	out := cmd.OutOrStdout()
	for _, tok := range toks {
		fmt.Fprintf(out, "%4d:%-3d %-16s %s\n", tok.Line, tok.Pos+1, tok.Type, describe(tok))
	}
	return err
}

// describe shows a token's text, its value when that differs, or the
// error an error token stands for.
func describe(tok token.Token) string {
	switch v := tok.Value.(type) {
	case diag.Code:
		return fmt.Sprintf("%s (%s)", tok.Text, v.Message())
	case nil:
		return tok.Text
	case string:
		return fmt.Sprintf("%s = %q", tok.Text, v)
	}
	return fmt.Sprintf("%s = %v", tok.Text, tok.Value)
}
