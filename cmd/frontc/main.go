// Command frontc runs the front end over Pascal and subC sources and
// reports their syntax errors, tokens, symbol tables and intermediate code.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/simonpal34/Compiler/pkg/diag"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "frontc:", err)
		os.Exit(exitStatus(err))
	}
}

// exitStatus maps a fatal translation error to its own status.
func exitStatus(err error) int {
	var fatal *diag.FatalError
	if errors.As(err, &fatal) {
		return fatal.Code.Status()
	}
	return 1
}
