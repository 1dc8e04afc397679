package scanner

import (
	"reflect"
	"testing"

	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/source"
	"github.com/simonpal34/Compiler/pkg/token"
)

var testLexicon = &Lexicon{
	Reserved: map[string]token.Type{"begin": token.BEGIN, "end": token.END},
	Symbols: map[string]token.Type{
		":=": token.ASSIGN, ":": token.COLON, "<": token.LESS_THAN,
		"<=": token.LESS_EQUALS, "<>": token.NOT_EQUALS, ".": token.DOT,
		"..": token.DOT_DOT, ";": token.SEMICOLON, "(": token.LEFT_PAREN,
	},
	Comments: []Comment{{Open: "{", Close: "}"}, {Open: "(*", Close: "*)"}, {Open: "//"}},
	Quotes:   "'",
}

var escapingLexicon = &Lexicon{
	Symbols:    map[string]token.Type{";": token.SEMICOLON},
	Comments:   []Comment{{Open: "/*", Close: "*/"}},
	Quotes:     `'"`,
	Escapes:    true,
	Underscore: true,
}

type lexed struct {
	Type  token.Type
	Text  string
	Value any
	Line  int
}

func scanAll(lex *Lexicon, input string) []lexed {
	s := New(source.FromString(input), lex, nil)
	var out []lexed
	for {
		tok := s.NextToken()
		out = append(out, lexed{tok.Type, tok.Text, tok.Value, tok.Line})
		if tok.Type == token.EOF {
			return out
		}
	}
}

func TestScan(t *testing.T) {
	tests := []struct {
		name     string
		lex      *Lexicon
		input    string
		expected []lexed
	}{
		{
			name:     "Empty",
			lex:      testLexicon,
			input:    "",
			expected: []lexed{{token.EOF, "", nil, 0}},
		},
		{
			name:  "Words",
			lex:   testLexicon,
			input: "BEGIN Alpha end",
			expected: []lexed{
				{token.BEGIN, "BEGIN", nil, 1},
				{token.IDENTIFIER, "Alpha", nil, 1},
				{token.END, "end", nil, 1},
				{token.EOF, "", nil, 1},
			},
		},
		{
			name:  "Greedy symbols",
			lex:   testLexicon,
			input: "a:=b<=c<>d<e:f",
			expected: []lexed{
				{token.IDENTIFIER, "a", nil, 1},
				{token.ASSIGN, ":=", nil, 1},
				{token.IDENTIFIER, "b", nil, 1},
				{token.LESS_EQUALS, "<=", nil, 1},
				{token.IDENTIFIER, "c", nil, 1},
				{token.NOT_EQUALS, "<>", nil, 1},
				{token.IDENTIFIER, "d", nil, 1},
				{token.LESS_THAN, "<", nil, 1},
				{token.IDENTIFIER, "e", nil, 1},
				{token.COLON, ":", nil, 1},
				{token.IDENTIFIER, "f", nil, 1},
				{token.EOF, "", nil, 1},
			},
		},
		{
			name:  "Numbers",
			lex:   testLexicon,
			input: "42 3.25 1e3 2.5E-2 1..10",
			expected: []lexed{
				{token.INTEGER, "42", 42, 1},
				{token.REAL, "3.25", 3.25, 1},
				{token.REAL, "1e3", 1000.0, 1},
				{token.REAL, "2.5E-2", 0.025, 1},
				{token.INTEGER, "1", 1, 1},
				{token.DOT_DOT, "..", nil, 1},
				{token.INTEGER, "10", 10, 1},
				{token.EOF, "", nil, 1},
			},
		},
		{
			name:  "Bad numbers",
			lex:   testLexicon,
			input: "99999999999 1.x 2e+",
			expected: []lexed{
				{token.ERROR, "99999999999", diag.RANGE_INTEGER, 1},
				{token.ERROR, "1.", diag.INVALID_NUMBER, 1},
				{token.IDENTIFIER, "x", nil, 1},
				{token.ERROR, "2e+", diag.INVALID_NUMBER, 1},
				{token.EOF, "", nil, 1},
			},
		},
		{
			name:  "Quoted strings",
			lex:   testLexicon,
			input: "'it''s' 'x'",
			expected: []lexed{
				{token.STRING, "'it''s'", "it's", 1},
				{token.STRING, "'x'", "x", 1},
				{token.EOF, "", nil, 1},
			},
		},
		{
			name:  "Unterminated string",
			lex:   testLexicon,
			input: "'abc",
			expected: []lexed{
				{token.ERROR, "'abc ", diag.UNTERMINATED_STRING, 1},
				{token.EOF, "", nil, 1},
			},
		},
		{
			name:  "Comments",
			lex:   testLexicon,
			input: "a { one\ntwo } b (* three *) c // four\nd",
			expected: []lexed{
				{token.IDENTIFIER, "a", nil, 1},
				{token.IDENTIFIER, "b", nil, 2},
				{token.IDENTIFIER, "c", nil, 2},
				{token.IDENTIFIER, "d", nil, 3},
				{token.EOF, "", nil, 3},
			},
		},
		{
			name:  "Invalid character",
			lex:   testLexicon,
			input: "a ? b",
			expected: []lexed{
				{token.IDENTIFIER, "a", nil, 1},
				{token.ERROR, "?", diag.INVALID_CHARACTER, 1},
				{token.IDENTIFIER, "b", nil, 1},
				{token.EOF, "", nil, 1},
			},
		},
		{
			name:  "Escapes and underscores",
			lex:   escapingLexicon,
			input: `my_var '\n' "a\"b"; /* c * d */ x`,
			expected: []lexed{
				{token.IDENTIFIER, "my_var", nil, 1},
				{token.STRING, `'\n'`, "\n", 1},
				{token.STRING, `"a\"b"`, `a"b`, 1},
				{token.SEMICOLON, ";", nil, 1},
				{token.IDENTIFIER, "x", nil, 1},
				{token.EOF, "", nil, 1},
			},
		},
		{
			name:  "Literal must end on its line",
			lex:   escapingLexicon,
			input: "\"abc\nx",
			expected: []lexed{
				{token.ERROR, `"abc`, diag.UNTERMINATED_STRING, 1},
				{token.IDENTIFIER, "x", nil, 2},
				{token.EOF, "", nil, 2},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := scanAll(tc.lex, tc.input)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("expected:\n%v\ngot:\n%v", tc.expected, got)
			}
		})
	}
}

func TestFollowCharacter(t *testing.T) {
	s := New(source.FromString("main (x); y"), escapingLexicon, nil)
	if tok := s.NextToken(); tok.Follow != '(' {
		t.Errorf("follow of main: expected '(', got %q", tok.Follow)
	}
}

func TestScannerStopsAfterAbort(t *testing.T) {
	errs := diag.NewHandler(5)
	s := New(source.FromString("a b c"), testLexicon, errs)
	if tok := s.NextToken(); tok.Type != token.IDENTIFIER {
		t.Fatalf("expected an identifier, got %v", tok)
	}
	errs.Abort(diag.TOO_MANY_ERRORS, nil)
	if tok := s.NextToken(); tok.Type != token.EOF {
		t.Errorf("expected EOF after abort, got %v", tok)
	}
}
