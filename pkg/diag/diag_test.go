package diag

import (
	"errors"
	"testing"
)

func TestCodeNamesAndMessages(t *testing.T) {
	for c := ALREADY_FORWARDED; c <= TOO_MANY_ERRORS; c++ {
		if names[c] == "" {
			t.Errorf("code %d has no name", int(c))
		}
		if messages[c] == "" {
			t.Errorf("code %s has no message", c)
		}
	}
	if got := MISSING_SEMICOLON.Message(); got != "Missing ;" {
		t.Errorf("message: expected %q, got %q", "Missing ;", got)
	}
	if got := Code(0).String(); got != "Code(0)" {
		t.Errorf("zero code: got %q", got)
	}
	if !IO_ERROR.Fatal() || !TOO_MANY_ERRORS.Fatal() || UNEXPECTED_TOKEN.Fatal() {
		t.Errorf("Fatal misclassifies codes")
	}
}

func TestHandlerFlag(t *testing.T) {
	h := NewHandler(0)
	if h.MaxErrors != DefaultMaxErrors {
		t.Fatalf("default max errors: expected %d, got %d", DefaultMaxErrors, h.MaxErrors)
	}

	var seen []Diagnostic
	h.OnFlag = func(d Diagnostic) { seen = append(seen, d) }

	h.Flag(3, 7, "x", IDENTIFIER_UNDEFINED)
	h.Flag(4, 0, ";", UNEXPECTED_TOKEN)

	if h.Count() != 2 || len(seen) != 2 {
		t.Fatalf("count: expected 2, got %d (listener saw %d)", h.Count(), len(seen))
	}
	want := Diagnostic{Line: 3, Position: 7, Text: "x", Code: IDENTIFIER_UNDEFINED}
	if h.Diagnostics()[0] != want {
		t.Errorf("first diagnostic: expected %+v, got %+v", want, h.Diagnostics()[0])
	}
	if got := want.String(); got != `line 3: Undefined identifier [at "x"]` {
		t.Errorf("String: got %q", got)
	}
	if Count(h.Diagnostics(), UNEXPECTED_TOKEN) != 1 {
		t.Errorf("Count: expected one UNEXPECTED_TOKEN")
	}
	if h.Aborted() || h.Fatal() != nil {
		t.Errorf("handler must not be aborted")
	}
}

func TestHandlerTooManyErrors(t *testing.T) {
	h := NewHandler(2)
	for i := 0; i < 5; i++ {
		h.Flag(i+1, 0, "", UNEXPECTED_TOKEN)
	}
	if !h.Aborted() {
		t.Fatal("expected the handler to abort")
	}
	if h.Count() != 3 {
		t.Errorf("count: expected 3 diagnostics before the abort, got %d", h.Count())
	}
	var fe *FatalError
	if !errors.As(h.Fatal(), &fe) || fe.Code != TOO_MANY_ERRORS {
		t.Errorf("expected TOO_MANY_ERRORS, got %v", h.Fatal())
	}
}

func TestHandlerAbortKeepsFirst(t *testing.T) {
	h := NewHandler(10)
	cause := errors.New("broken pipe")
	h.Abort(IO_ERROR, cause)
	h.Abort(TOO_MANY_ERRORS, nil)

	if !errors.Is(h.Fatal(), cause) {
		t.Errorf("expected the I/O cause to be wrapped, got %v", h.Fatal())
	}
	var fe *FatalError
	if errors.As(h.Fatal(), &fe) && fe.Code != IO_ERROR {
		t.Errorf("expected IO_ERROR, got %s", fe.Code)
	}
}
