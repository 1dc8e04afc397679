// Package scanner turns a source.Source into tokens. Both dialects use the
// same Scanner; what differs between them (reserved words, special
// symbols, comment and string syntax) is data in a Lexicon.
package scanner

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/source"
	"github.com/simonpal34/Compiler/pkg/token"
)

// Comment describes one comment syntax. An empty Close runs the comment to
// the end of the line.
type Comment struct {
	Open  string
	Close string
}

// Lexicon is the scanning data of one dialect.
type Lexicon struct {
	Reserved   map[string]token.Type // lower-case reserved words
	Symbols    map[string]token.Type // one and two character symbols
	Comments   []Comment
	Quotes     string // characters that open a string literal
	Escapes    bool   // backslash escapes, literals end on their own line
	Underscore bool   // identifiers may contain '_'
}

// Scanner holds the state of one scanning pass.
type Scanner struct {
	src     *source.Source
	lex     *Lexicon
	errs    *diag.Handler
	starts  map[rune]bool // first characters of the special symbols
	current token.Token
}

// New creates a scanner. errs may be nil; when set, the scanner reports
// EOF once the handler has recorded a fatal error.
func New(src *source.Source, lex *Lexicon, errs *diag.Handler) *Scanner {
	starts := make(map[rune]bool, len(lex.Symbols))
	for sym := range lex.Symbols {
		r := []rune(sym)
		starts[r[0]] = true
	}
	return &Scanner{src: src, lex: lex, errs: errs, starts: starts}
}

func (s *Scanner) CurrentToken() token.Token { return s.current }

// NextToken consumes and returns the next token.
func (s *Scanner) NextToken() token.Token {
	s.current = s.extract()
	return s.current
}

// Err reports a failure of the underlying source.
func (s *Scanner) Err() error { return s.src.Err() }

// Line is the number of the source line being scanned.
func (s *Scanner) Line() int { return s.src.LineNumber() }

func (s *Scanner) extract() token.Token {
	if s.errs != nil && s.errs.Aborted() {
		return token.Token{Type: token.EOF, Line: s.src.LineNumber()}
	}
	s.skipWhiteSpace()

	c := s.src.CurrentChar()
	tok := token.Token{Line: s.src.LineNumber(), Pos: s.src.Position()}

	switch {
	case c == source.EOF:
		tok.Type = token.EOF
		return tok
	case unicode.IsLetter(c) || (c == '_' && s.lex.Underscore):
		return s.word(tok)
	case unicode.IsDigit(c):
		return s.number(tok)
	case strings.ContainsRune(s.lex.Quotes, c):
		return s.str(tok, c)
	case s.starts[c]:
		return s.symbol(tok)
	}

	tok = errorToken(tok, diag.INVALID_CHARACTER, string(c))
	s.src.NextChar() // consume the bad character
	return tok
}

func errorToken(tok token.Token, code diag.Code, text string) token.Token {
	tok.Type = token.ERROR
	tok.Text = text
	tok.Value = code
	return tok
}

func (s *Scanner) skipWhiteSpace() {
	for {
		c := s.src.CurrentChar()
		if c == source.EOF {
			return
		}
		if unicode.IsSpace(c) {
			s.src.NextChar()
			continue
		}
		if !s.skipComment() {
			return
		}
	}
}

// skipComment consumes one comment if one starts at the current character.
func (s *Scanner) skipComment() bool {
	for _, cm := range s.lex.Comments {
		if !s.at(cm.Open) {
			continue
		}
		s.advance(len([]rune(cm.Open)))

		if cm.Close == "" {
			for c := s.src.CurrentChar(); c != source.EOL && c != source.EOF; c = s.src.NextChar() {
			}
			return true
		}
		for s.src.CurrentChar() != source.EOF {
			if s.at(cm.Close) {
				s.advance(len([]rune(cm.Close)))
				break
			}
			s.src.NextChar()
		}
		return true
	}
	return false
}

// at reports whether text (one or two characters) starts at the current
// character.
func (s *Scanner) at(text string) bool {
	r := []rune(text)
	if s.src.CurrentChar() != r[0] {
		return false
	}
	return len(r) == 1 || s.src.PeekChar() == r[1]
}

func (s *Scanner) advance(n int) {
	for i := 0; i < n; i++ {
		s.src.NextChar()
	}
}

func (s *Scanner) word(tok token.Token) token.Token {
	var b strings.Builder
	for c := s.src.CurrentChar(); unicode.IsLetter(c) || unicode.IsDigit(c) || (c == '_' && s.lex.Underscore); c = s.src.NextChar() {
		b.WriteRune(c)
	}
	tok.Text = b.String()
	tok.Type = token.IDENTIFIER
	if tt, ok := s.lex.Reserved[strings.ToLower(tok.Text)]; ok {
		tok.Type = tt
	}
	tok.Follow = s.src.Lookahead()
	return tok
}

func (s *Scanner) digits(b *strings.Builder) int {
	n := 0
	for c := s.src.CurrentChar(); unicode.IsDigit(c); c = s.src.NextChar() {
		b.WriteRune(c)
		n++
	}
	return n
}

// number scans an unsigned integer or real literal. "1..5" leaves the ".."
// for the next token.
func (s *Scanner) number(tok token.Token) token.Token {
	var b strings.Builder
	s.digits(&b)
	tok.Type = token.INTEGER

	if s.src.CurrentChar() == '.' && s.src.PeekChar() != '.' {
		tok.Type = token.REAL
		b.WriteRune('.')
		s.src.NextChar()
		if s.digits(&b) == 0 {
			return errorToken(tok, diag.INVALID_NUMBER, b.String())
		}
	}

	if c := s.src.CurrentChar(); c == 'e' || c == 'E' {
		tok.Type = token.REAL
		b.WriteRune(c)
		c = s.src.NextChar()
		if c == '+' || c == '-' {
			b.WriteRune(c)
			s.src.NextChar()
		}
		if s.digits(&b) == 0 {
			return errorToken(tok, diag.INVALID_NUMBER, b.String())
		}
	}

	tok.Text = b.String()
	if tok.Type == token.INTEGER {
		v, err := strconv.ParseInt(tok.Text, 10, 32)
		if err != nil {
			return errorToken(tok, diag.RANGE_INTEGER, tok.Text)
		}
		tok.Value = int(v)
		return tok
	}
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil || math.IsInf(v, 0) {
		return errorToken(tok, diag.RANGE_REAL, tok.Text)
	}
	tok.Value = v
	return tok
}

// str scans a string or character literal opened by quote. Without
// escapes a doubled quote stands for one quote character and the literal
// may span lines, each line end reading as a blank.
func (s *Scanner) str(tok token.Token, quote rune) token.Token {
	var raw, val strings.Builder
	raw.WriteRune(quote)
	s.src.NextChar()

	for {
		c := s.src.CurrentChar()
		switch {
		case c == source.EOF:
			return errorToken(tok, diag.UNTERMINATED_STRING, raw.String())
		case c == source.EOL:
			if s.lex.Escapes {
				return errorToken(tok, diag.UNTERMINATED_STRING, raw.String())
			}
			raw.WriteRune(' ')
			val.WriteRune(' ')
			s.src.NextChar()
		case c == quote:
			raw.WriteRune(quote)
			if !s.lex.Escapes && s.src.PeekChar() == quote {
				raw.WriteRune(quote)
				val.WriteRune(quote)
				s.advance(2)
				continue
			}
			s.src.NextChar()
			tok.Type = token.STRING
			tok.Text = raw.String()
			tok.Value = val.String()
			return tok
		case c == '\\' && s.lex.Escapes:
			e := s.src.NextChar()
			if e == source.EOL || e == source.EOF {
				continue
			}
			raw.WriteRune(c)
			raw.WriteRune(e)
			val.WriteRune(unescape(e))
			s.src.NextChar()
		default:
			raw.WriteRune(c)
			val.WriteRune(c)
			s.src.NextChar()
		}
	}
}

func unescape(e rune) rune {
	switch e {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	}
	return e
}

// symbol scans a special symbol, preferring the longest match.
func (s *Scanner) symbol(tok token.Token) token.Token {
	c, p := s.src.CurrentChar(), s.src.PeekChar()
	if p != source.EOL && p != source.EOF {
		if tt, ok := s.lex.Symbols[string([]rune{c, p})]; ok {
			s.advance(2)
			tok.Type, tok.Text = tt, string([]rune{c, p})
			return tok
		}
	}
	if tt, ok := s.lex.Symbols[string(c)]; ok {
		s.src.NextChar()
		tok.Type, tok.Text = tt, string(c)
		return tok
	}
	tok = errorToken(tok, diag.INVALID_CHARACTER, string(c))
	s.src.NextChar()
	return tok
}
