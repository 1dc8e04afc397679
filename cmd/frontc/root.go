package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/frontend"
	"github.com/simonpal34/Compiler/pkg/utils"
)

var (
	dialectName string
	maxErrors   int
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "frontc",
	Short: "frontc: Pascal and subC front end",
	Long: `frontc parses Pascal and subC programs into symbol tables and
intermediate code, reporting every syntax error it recovers from.

Commands:
  parse     Translate source files and report their syntax errors
  tokens    List the tokens of a source file
  dialects  List the supported dialects
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dialectName, "dialect", "d", "",
		"source dialect; inferred from the file extension when empty")
	rootCmd.PersistentFlags().IntVar(&maxErrors, "max-errors", diag.DefaultMaxErrors,
		"syntax errors tolerated before a translation is aborted")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log a summary line for each translation")

	rootCmd.AddCommand(parseCmd, tokensCmd, dialectsCmd)
}

// input is an opened source file with the configuration to translate it.
type input struct {
	file   utils.SourceFile
	reader io.ReadCloser
	config frontend.Config
}

// openInput resolves path, picks its dialect and opens it.
func openInput(cmd *cobra.Command, path string) (*input, error) {
	file, err := utils.GetPathInfo(path)
	if err != nil {
		return nil, err
	}

	var d *frontend.Dialect
	if dialectName != "" {
		d, err = frontend.Lookup(dialectName)
	} else {
		d, err = frontend.ForFile(path)
	}
	if err != nil {
		return nil, err
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %q: %w", path, err)
	}

	cfg := frontend.Config{
		Dialect:     d,
		MaxErrors:   maxErrors,
		ProgramName: file.Name,
		BaseDir:     file.Dir,
	}
	if verbose {
		cfg.Logger = log.New(cmd.ErrOrStderr(), "frontc: ", 0)
	}
	return &input{file: file, reader: f, config: cfg}, nil
}
