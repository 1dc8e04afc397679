// Package source reads program text one character at a time for the
// scanners. It works a line at a time so that diagnostics can quote line
// numbers and character positions.
package source

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	EOL rune = '\n' // end of every source line
	EOF rune = 0    // end of the source
)

// Source holds the reader and the line currently being consumed.
type Source struct {
	r       *bufio.Reader
	line    []rune
	lineNum int
	pos     int // -2 before the first read, -1 at the start of a line
	done    bool
	err     error
}

func New(r io.Reader) *Source {
	return &Source{r: bufio.NewReader(r), pos: -2}
}

func FromString(s string) *Source {
	return New(strings.NewReader(s))
}

// CurrentChar returns the character at the current position without
// consuming it. Line ends read as EOL and the end of input as EOF.
func (s *Source) CurrentChar() rune {
	switch {
	case s.pos == -2:
		s.readLine()
		return s.NextChar()
	case s.done:
		return EOF
	case s.pos == -1 || s.pos == len(s.line):
		return EOL
	case s.pos > len(s.line):
		s.readLine()
		return s.NextChar()
	}
	return s.line[s.pos]
}

// NextChar consumes the current character and returns the new one.
func (s *Source) NextChar() rune {
	s.pos++
	return s.CurrentChar()
}

// PeekChar returns the character after the current one.
func (s *Source) PeekChar() rune {
	s.CurrentChar()
	if s.done {
		return EOF
	}
	next := s.pos + 1
	if next < len(s.line) {
		return s.line[next]
	}
	return EOL
}

// Lookahead returns the first non-blank character at or after the current
// position on the current line, or EOL if the rest of the line is blank.
func (s *Source) Lookahead() rune {
	c := s.CurrentChar()
	if s.done {
		return EOF
	}
	if c != ' ' && c != '\t' && c != EOL {
		return c
	}
	for i := s.pos + 1; i < len(s.line); i++ {
		if r := s.line[i]; r != ' ' && r != '\t' && r != '\r' {
			return r
		}
	}
	return EOL
}

func (s *Source) LineNumber() int { return s.lineNum }

// Position is the zero-based index of the current character in its line.
func (s *Source) Position() int { return s.pos }

// Err reports a read failure. A failed source reads as EOF from then on.
func (s *Source) Err() error { return s.err }

func (s *Source) readLine() {
	if s.done {
		return
	}
	text, err := s.r.ReadString('\n')
	if err != nil && err != io.EOF {
		s.err = fmt.Errorf("read source line %d: %w", s.lineNum+1, err)
		s.done = true
		s.line = nil
		return
	}
	if text == "" && err == io.EOF {
		s.done = true
		s.line = nil
		return
	}
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	s.line = []rune(text)
	s.lineNum++
	s.pos = -1
}
