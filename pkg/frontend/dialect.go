package frontend

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/parser"
	"github.com/simonpal34/Compiler/pkg/parser/pascal"
	"github.com/simonpal34/Compiler/pkg/parser/subc"
	"github.com/simonpal34/Compiler/pkg/preprocess"
	"github.com/simonpal34/Compiler/pkg/scanner"
)

// Dialect bundles what a translation needs to know about one language.
type Dialect struct {
	Name       string
	Extensions []string // source file extensions, with the dot

	Lexicon   *scanner.Lexicon
	Lang      *parser.Lang
	Predefine func(*intermediate.Stack)
	Parse     func(p *parser.Parser, programName string) *intermediate.Entry

	// Preprocess, when set, rewrites the whole source before scanning.
	Preprocess func(src, baseDir string) (string, error)
}

var (
	Pascal = &Dialect{
		Name:       "pascal",
		Extensions: []string{".pas", ".p"},
		Lexicon:    pascal.Lexicon,
		Lang:       pascal.Lang,
		Predefine:  intermediate.Predefine,
		Parse:      pascal.Parse,
	}

	SubC = &Dialect{
		Name:       "subc",
		Extensions: []string{".c", ".subc"},
		Lexicon:    subc.Lexicon,
		Lang:       subc.Lang,
		Predefine:  subc.Predefine,
		Parse:      subc.Parse,
		Preprocess: preprocess.Process,
	}
)

// Dialects lists the supported dialects.
var Dialects = []*Dialect{Pascal, SubC}

// Lookup finds a dialect by name, ignoring case.
func Lookup(name string) (*Dialect, error) {
	for _, d := range Dialects {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("unknown dialect %q", name)
}

// ForFile picks the dialect from the extension of path.
func ForFile(path string) (*Dialect, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, d := range Dialects {
		for _, e := range d.Extensions {
			if e == ext {
				return d, nil
			}
		}
	}
	return nil, fmt.Errorf("cannot tell the dialect of %s", path)
}
