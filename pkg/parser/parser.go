// Package parser is the part of the front end both dialects share: the
// parsing context with its single-token lookahead, error flagging and
// panic-mode recovery, and the expression, variable and call productions,
// which are driven by the operator tables in a Lang.
//
// Parsing, name resolution and type checking happen in one pass. Every
// node's type is set before the node is adopted by its parent.
package parser

import (
	"fmt"
	"time"

	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/scanner"
	"github.com/simonpal34/Compiler/pkg/token"
)

// Lang is what the shared productions need to know about a dialect.
type Lang struct {
	Name string

	RelOps map[token.Type]intermediate.NodeType
	AddOps map[token.Type]intermediate.NodeType
	MulOps map[token.Type]intermediate.NodeType

	// ExprStart holds the tokens that can start an expression.
	ExprStart token.Set

	// RelationalType is the type of a comparison.
	RelationalType *intermediate.TypeSpec

	// LenientLogic lets integers stand for truth values in conditions
	// and in the operands of and, or and not.
	LenientLogic bool

	// VoidValue is reported when a procedure is used as a value.
	VoidValue diag.Code
}

// IsCondition reports whether a value of type t can control an if or a loop.
func (l *Lang) IsCondition(t *intermediate.TypeSpec) bool {
	if l.LenientLogic {
		return intermediate.IsBoolean(t) || intermediate.IsInteger(t)
	}
	return intermediate.IsBoolean(t)
}

// Parser is the context shared by every production of one translation.
type Parser struct {
	Lang   *Lang
	Stack  *intermediate.Stack
	Errors *diag.Handler

	scanner    *scanner.Scanner
	dummies    int
	eofFlagged bool
}

func New(sc *scanner.Scanner, lang *Lang, stack *intermediate.Stack, errs *diag.Handler) *Parser {
	return &Parser{Lang: lang, Stack: stack, Errors: errs, scanner: sc}
}

func (p *Parser) CurrentToken() token.Token { return p.scanner.CurrentToken() }

// NextToken advances to the next token. Error tokens are flagged with
// their own code and skipped, so productions never see them. A failing
// source aborts the translation with IO_ERROR.
func (p *Parser) NextToken() token.Token {
	for {
		tok := p.scanner.NextToken()
		switch tok.Type {
		case token.EOF:
			if err := p.scanner.Err(); err != nil {
				p.Errors.Abort(diag.IO_ERROR, err)
			}
			return tok
		case token.ERROR:
			code, ok := tok.Value.(diag.Code)
			if !ok {
				code = diag.INVALID_CHARACTER
			}
			p.Flag(tok, code)
		default:
			return tok
		}
	}
}

// Flag reports code at tok.
func (p *Parser) Flag(tok token.Token, code diag.Code) {
	p.Errors.Flag(tok.Line, tok.Pos, tok.Text, code)
}

// Synchronize returns the current token if its type is in set. Otherwise
// it reports the token and skips ahead to the first token in set, or to
// EOF. The end of the source is reported only once.
func (p *Parser) Synchronize(set token.Set) token.Token {
	tok := p.CurrentToken()
	if set.Contains(tok.Type) {
		return tok
	}
	if tok.Type == token.EOF {
		if !p.eofFlagged {
			p.eofFlagged = true
			p.Flag(tok, diag.UNEXPECTED_EOF)
		}
		return tok
	}
	p.Flag(tok, diag.UNEXPECTED_TOKEN)
	for tok.Type != token.EOF && !set.Contains(tok.Type) {
		tok = p.NextToken()
	}
	return tok
}

// Line is the number of the source line the scanner has reached.
func (p *Parser) Line() int { return p.scanner.Line() }

// DummyName makes up a unique name for a routine whose own name was
// missing or already taken.
func (p *Parser) DummyName(kind string) string {
	p.dummies++
	return fmt.Sprintf("dummy%sname_%03d", kind, p.dummies)
}

// Summary describes a finished translation.
type Summary struct {
	Lines   int
	Errors  int
	Elapsed time.Duration
}

func (s Summary) String() string {
	return fmt.Sprintf("%d source lines, %d syntax errors, %.2f seconds total parsing time",
		s.Lines, s.Errors, s.Elapsed.Seconds())
}

// TypeOf returns the type of an expression node, UndefinedType for a
// missing node or one without a type.
func TypeOf(n *intermediate.Node) *intermediate.TypeSpec {
	if n == nil || n.TypeSpec == nil {
		return intermediate.UndefinedType
	}
	return n.TypeSpec
}

// CheckAssignable flags INCOMPATIBLE_TYPES at tok unless a value of type
// value may be assigned to target. Undefined types were reported where
// they arose and are not flagged again.
func (p *Parser) CheckAssignable(tok token.Token, target, value *intermediate.TypeSpec) {
	if intermediate.IsUndefined(target) || intermediate.IsUndefined(value) {
		return
	}
	if !intermediate.AreAssignmentCompatible(target, value) {
		p.Flag(tok, diag.INCOMPATIBLE_TYPES)
	}
}

// CheckCondition flags INCOMPATIBLE_TYPES at tok unless t can be a condition.
func (p *Parser) CheckCondition(tok token.Token, t *intermediate.TypeSpec) {
	if !intermediate.IsUndefined(t) && !p.Lang.IsCondition(t) {
		p.Flag(tok, diag.INCOMPATIBLE_TYPES)
	}
}

// LookupIdentifier resolves the identifier tok. An unknown name is
// reported once and entered into the local scope as undefined, so later
// references resolve silently.
func (p *Parser) LookupIdentifier(tok token.Token) *intermediate.Entry {
	id := p.Stack.Lookup(tok.Text)
	if id == nil {
		p.Flag(tok, diag.IDENTIFIER_UNDEFINED)
		id = p.Stack.EnterLocal(tok.Text)
		id.Defn = intermediate.DefnUndefined
		id.Type = intermediate.UndefinedType
	}
	return id
}
