package diag

import (
	"fmt"
	"log"
)

// DefaultMaxErrors is the number of syntax errors tolerated before the
// translation is aborted.
const DefaultMaxErrors = 25

// Diagnostic is one reported error.
type Diagnostic struct {
	Line     int
	Position int
	Text     string // offending token text
	Code     Code
}

func (d Diagnostic) String() string {
	if d.Text == "" {
		return fmt.Sprintf("line %d: %s", d.Line, d.Code.Message())
	}
	return fmt.Sprintf("line %d: %s [at %q]", d.Line, d.Code.Message(), d.Text)
}

// FatalError aborts a translation.
type FatalError struct {
	Code Code
	Err  error // underlying cause, if any
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fatal error: %s: %v", e.Code.Message(), e.Err)
	}
	return "fatal error: " + e.Code.Message()
}

func (e *FatalError) Unwrap() error { return e.Err }

// Handler counts and records diagnostics for one translation. Once a
// fatal error is recorded it stays set; the scanner checks Aborted and
// stops producing tokens so that every production unwinds normally.
type Handler struct {
	MaxErrors int
	Logger    *log.Logger      // optional
	OnFlag    func(Diagnostic) // optional listener

	diagnostics []Diagnostic
	fatal       *FatalError
}

func NewHandler(maxErrors int) *Handler {
	if maxErrors <= 0 {
		maxErrors = DefaultMaxErrors
	}
	return &Handler{MaxErrors: maxErrors}
}

// Flag records a diagnostic. Exceeding MaxErrors aborts with TOO_MANY_ERRORS.
func (h *Handler) Flag(line, pos int, text string, code Code) {
	if h.fatal != nil {
		return
	}
	d := Diagnostic{Line: line, Position: pos, Text: text, Code: code}
	h.diagnostics = append(h.diagnostics, d)
	if h.OnFlag != nil {
		h.OnFlag(d)
	}
	if len(h.diagnostics) > h.MaxErrors {
		h.Abort(TOO_MANY_ERRORS, nil)
	}
}

// Abort records a fatal error. Only the first one is kept.
func (h *Handler) Abort(code Code, cause error) {
	if h.fatal != nil {
		return
	}
	h.fatal = &FatalError{Code: code, Err: cause}
	if h.Logger != nil {
		h.Logger.Printf("FATAL ERROR: %v", h.fatal)
	}
}

func (h *Handler) Aborted() bool { return h.fatal != nil }

// Fatal returns the recorded fatal error, or nil.
func (h *Handler) Fatal() error {
	if h.fatal == nil {
		return nil
	}
	return h.fatal
}

func (h *Handler) Count() int { return len(h.diagnostics) }

func (h *Handler) Diagnostics() []Diagnostic { return h.diagnostics }

// Count returns how many diagnostics in ds carry code c.
func Count(ds []Diagnostic, c Code) int {
	n := 0
	for _, d := range ds {
		if d.Code == c {
			n++
		}
	}
	return n
}
