// Package frontend runs a whole translation: it picks the dialect, reads
// and, for subC, preprocesses the source, sets up the predefined scope and
// the shared parser, and collects the results.
//
// Pipeline: source → [Preprocess] → Scanner → dialect Parse → symbol table stack + ICode
package frontend

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/parser"
	"github.com/simonpal34/Compiler/pkg/scanner"
	"github.com/simonpal34/Compiler/pkg/source"
	"github.com/simonpal34/Compiler/pkg/token"
)

// Config controls one translation. The zero value of every field but
// Dialect is usable.
type Config struct {
	Dialect     *Dialect
	MaxErrors   int    // default diag.DefaultMaxErrors
	ProgramName string // subC unit name, or the Pascal name when the heading is missing
	BaseDir     string // where subC includes are resolved, default "."

	Logger       *log.Logger           // nil is silent
	OnDiagnostic func(diag.Diagnostic) // called as each diagnostic is flagged
}

// Result is what a translation produced.
type Result struct {
	Stack       *intermediate.Stack
	Program     *intermediate.Entry
	Diagnostics []diag.Diagnostic
	Summary     parser.Summary
}

var ErrNoDialect = errors.New("no dialect selected")

// Translate parses the source read from r. Syntax errors are collected in
// the result and do not make an error. The error is a *diag.FatalError
// when the translation was aborted, in which case the partial result is
// returned too, or a plain error when the source could not be read or
// preprocessed.
func Translate(r io.Reader, cfg Config) (*Result, error) {
	src, err := open(r, cfg)
	if err != nil {
		return nil, err
	}
	d := cfg.Dialect

	errs := diag.NewHandler(cfg.MaxErrors)
	errs.Logger = cfg.Logger
	errs.OnFlag = cfg.OnDiagnostic

	stack := intermediate.NewStack()
	d.Predefine(stack)
	p := parser.New(scanner.New(src, d.Lexicon, errs), d.Lang, stack, errs)

	start := time.Now()
	program := d.Parse(p, cfg.ProgramName)

	res := &Result{
		Stack:       stack,
		Program:     program,
		Diagnostics: errs.Diagnostics(),
		Summary: parser.Summary{
			Lines:   p.Line(),
			Errors:  errs.Count(),
			Elapsed: time.Since(start),
		},
	}
	if cfg.Logger != nil {
		cfg.Logger.Printf("%s: %s", d.Name, res.Summary)
	}
	return res, errs.Fatal()
}

// Scan returns the tokens of the source read from r, up to but not
// including EOF. Error tokens are kept.
func Scan(r io.Reader, cfg Config) ([]token.Token, error) {
	src, err := open(r, cfg)
	if err != nil {
		return nil, err
	}
	sc := scanner.New(src, cfg.Dialect.Lexicon, nil)

	var toks []token.Token
	for tok := sc.NextToken(); tok.Type != token.EOF; tok = sc.NextToken() {
		toks = append(toks, tok)
	}
	if err := sc.Err(); err != nil {
		return toks, fmt.Errorf("reading source: %w", err)
	}
	return toks, nil
}

// open wraps r in a source, running the dialect's preprocessor first.
func open(r io.Reader, cfg Config) (*source.Source, error) {
	d := cfg.Dialect
	if d == nil {
		return nil, ErrNoDialect
	}
	if d.Preprocess == nil {
		return source.New(r), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	baseDir := cfg.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	text, err := d.Preprocess(string(data), baseDir)
	if err != nil {
		return nil, fmt.Errorf("preprocessing: %w", err)
	}
	return source.FromString(text), nil
}

// Dump writes the program's scope and the body of every routine, nested
// routines after their parent.
func (res *Result) Dump(w io.Writer) error {
	var sb strings.Builder
	dumpRoutine(&sb, res.Program)
	_, err := io.WriteString(w, sb.String())
	return err
}

func dumpRoutine(sb *strings.Builder, id *intermediate.Entry) {
	if id == nil {
		return
	}
	fmt.Fprintf(sb, "== %s %s ==\n", id.Defn, id.Name())
	if id.SymTab != nil {
		sb.WriteString(id.SymTab.String())
	}
	if id.ICode != nil {
		sb.WriteString(intermediate.Format(id.ICode.Root()))
		sb.WriteString("\n")
	}
	if id.Main != nil && id.Main.SymTab != nil {
		fmt.Fprintf(sb, "== main scope ==\n%s", id.Main.SymTab)
	}
	for _, r := range id.Routines {
		dumpRoutine(sb, r)
	}
}
