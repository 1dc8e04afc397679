// Package preprocess expands the #define and #include directives of subC
// source before it is scanned.
package preprocess

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Macro is a defined macro, object-like when Params is empty.
type Macro struct {
	Params []string
	Body   string
}

// ErrIncludeCycle is wrapped by the error for a file that includes itself,
// directly or through other files.
var ErrIncludeCycle = errors.New("circular include")

// Process expands src. Included files are looked up relative to baseDir,
// then relative to the working directory, and spliced in place of their
// directive; a file already included elsewhere is skipped. Every other
// directive line becomes an empty line, so lines keep their numbers up to
// the first include.
func Process(src, baseDir string) (string, error) {
	pp := &preprocessor{
		defines:  make(map[string]Macro),
		included: make(map[string]bool),
	}
	return pp.process(src, baseDir, nil)
}

type preprocessor struct {
	defines  map[string]Macro
	included map[string]bool
}

// process expands one file. open holds the absolute paths of the files
// whose includes are being expanded.
func (pp *preprocessor) process(src, baseDir string, open []string) (string, error) {
	var out strings.Builder

	for i, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			out.WriteString(expand(line, pp.defines, nil))
			out.WriteString("\n")
			continue
		}

		text := strings.TrimSpace(trimmed[1:])
		end := strings.IndexAny(text, " \t")
		if end < 0 {
			end = len(text)
		}
		directive, rest := text[:end], strings.TrimSpace(text[end:])

		switch directive {
		case "define":
			if err := pp.define(rest); err != nil {
				return "", fmt.Errorf("line %d: %w", i+1, err)
			}
			out.WriteString("\n")

		case "undef":
			delete(pp.defines, rest)
			out.WriteString("\n")

		case "include":
			included, err := pp.include(rest, baseDir, open)
			if err != nil {
				return "", fmt.Errorf("line %d: %w", i+1, err)
			}
			out.WriteString(included)
			out.WriteString("\n")

		default:
			return "", fmt.Errorf("line %d: unknown directive #%s", i+1, directive)
		}
	}
	return strings.TrimSuffix(out.String(), "\n"), nil
}

// define parses "NAME body" or "NAME(a, b) body". The parameter list must
// follow the name without a space.
func (pp *preprocessor) define(rest string) error {
	end := strings.IndexAny(rest, " \t(")
	if end < 0 {
		end = len(rest)
	}
	name := rest[:end]
	if name == "" {
		return errors.New("#define without a name")
	}
	rest = rest[end:]

	var params []string
	if strings.HasPrefix(rest, "(") {
		closing := strings.Index(rest, ")")
		if closing < 0 {
			return fmt.Errorf("unterminated parameter list of macro %s", name)
		}
		if list := strings.TrimSpace(rest[1:closing]); list != "" {
			for _, p := range strings.Split(list, ",") {
				params = append(params, strings.TrimSpace(p))
			}
		}
		rest = rest[closing+1:]
	}

	body := strings.TrimSpace(rest)
	if len(params) == 0 {
		body = expand(body, pp.defines, nil)
	}
	pp.defines[name] = Macro{Params: params, Body: body}
	return nil
}

func (pp *preprocessor) include(rest, baseDir string, open []string) (string, error) {
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", fmt.Errorf("invalid include directive: #include %s", rest)
	}
	name := rest[1 : len(rest)-1]

	path := filepath.Join(baseDir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if cwd, err := filepath.Abs(name); err == nil {
			if _, err := os.Stat(cwd); err == nil {
				path = cwd
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	for _, o := range open {
		if o == abs {
			return "", fmt.Errorf("%w: %s", ErrIncludeCycle, name)
		}
	}
	if pp.included[abs] {
		return "", nil
	}
	pp.included[abs] = true

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading included file %s: %w", name, err)
	}
	return pp.process(string(content), filepath.Dir(path), append(open, abs))
}

// expand replaces the macros in input outside string and char literals.
// Arguments are expanded before they are substituted. active holds the
// macros being expanded, which are not expanded again.
func expand(input string, defines map[string]Macro, active map[string]bool) string {
	if len(defines) == 0 {
		return input
	}

	var sb strings.Builder
	n := len(input)
	for i := 0; i < n; {
		c := input[i]
		switch {
		case c == '"' || c == '\'':
			end := literalEnd(input, i)
			sb.WriteString(input[i:end])
			i = end

		case isIdentStart(c):
			start := i
			for i < n && isIdentPart(input[i]) {
				i++
			}
			word := input[start:i]
			macro, ok := defines[word]
			if !ok || active[word] {
				sb.WriteString(word)
				continue
			}
			if len(macro.Params) == 0 {
				sb.WriteString(expand(macro.Body, defines, with(active, word)))
				continue
			}
			args, end, ok := arguments(input, i)
			if !ok || len(args) != len(macro.Params) {
				sb.WriteString(word)
				continue
			}
			params := make(map[string]Macro, len(args))
			for k, p := range macro.Params {
				params[p] = Macro{Body: expand(args[k], defines, active)}
			}
			body := expand(macro.Body, params, nil)
			sb.WriteString(expand(body, defines, with(active, word)))
			i = end

		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// literalEnd returns the index just past the literal that opens at start.
func literalEnd(input string, start int) int {
	quote := input[start]
	i := start + 1
	for i < len(input) {
		switch input[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return len(input)
}

// arguments parses "(a, (b, c))" starting at or after i, skipping blanks.
// It returns the arguments and the index past the closing parenthesis.
func arguments(input string, i int) ([]string, int, bool) {
	for i < len(input) && (input[i] == ' ' || input[i] == '\t') {
		i++
	}
	if i >= len(input) || input[i] != '(' {
		return nil, i, false
	}
	i++

	var args []string
	var arg strings.Builder
	for depth := 1; i < len(input); i++ {
		switch c := input[i]; {
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				args = append(args, strings.TrimSpace(arg.String()))
				return args, i + 1, true
			}
		case c == ',' && depth == 1:
			args = append(args, strings.TrimSpace(arg.String()))
			arg.Reset()
			continue
		}
		arg.WriteByte(input[i])
	}
	return nil, i, false
}

func with(active map[string]bool, name string) map[string]bool {
	next := make(map[string]bool, len(active)+1)
	for k := range active {
		next[k] = true
	}
	next[name] = true
	return next
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
