package parser

import (
	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/token"
)

// parmMode selects the check applied to each actual parameter.
type parmMode int

const (
	parmDeclared parmMode = iota // against the routine's formal parameters
	parmRead                     // read and readln targets
	parmWrite                    // write, writeln and printf values
	parmPlain                    // standard functions, checked by the caller
)

// ParseCall parses a call of the routine id whose name tok is the current
// token. Standard routines are checked by their own rules.
func (p *Parser) ParseCall(tok token.Token, id *intermediate.Entry) *intermediate.Node {
	if id.Routine.IsStandard() {
		return p.parseStandardCall(tok, id)
	}

	call := intermediate.NewNode(intermediate.NodeCall)
	call.Line = tok.Line
	call.ID = id
	if id.Defn == intermediate.DefnFunction {
		call.TypeSpec = id.Type
		if call.TypeSpec == nil {
			call.TypeSpec = intermediate.UndefinedType
		}
	}
	id.AppendLine(tok.Line)

	p.NextToken()
	call.AddChild(p.parseActualParameters(id, parmDeclared))
	return call
}

func (p *Parser) actualFollow() token.Set {
	return p.Lang.ExprStart.With(token.COMMA, token.RIGHT_PAREN, token.SEMICOLON)
}

// parseActualParameters parses an optional parenthesized argument list.
// It returns nil when there is no list.
func (p *Parser) parseActualParameters(id *intermediate.Entry, mode parmMode) *intermediate.Node {
	tok := p.CurrentToken()
	if tok.Type != token.LEFT_PAREN {
		if mode == parmDeclared && len(id.Parms) > 0 {
			p.Flag(tok, diag.WRONG_NUMBER_OF_PARMS)
		}
		return nil
	}

	parms := intermediate.NewNode(intermediate.NodeParameters)
	parms.Line = tok.Line
	formals := id.Parms
	count := 0
	countFlagged := false
	follow := p.actualFollow()

	tok = p.NextToken() // "("
	for tok.Type != token.RIGHT_PAREN && tok.Type != token.SEMICOLON && tok.Type != token.EOF {
		actual := p.ParseExpression()

		switch mode {
		case parmDeclared:
			if count < len(formals) {
				p.checkActualParameter(tok, formals[count], actual)
			} else if !countFlagged {
				p.Flag(tok, diag.WRONG_NUMBER_OF_PARMS)
				countFlagged = true
			}
		case parmRead:
			p.checkReadParameter(tok, actual)
		case parmWrite:
			actual = p.parseWriteSpec(tok, actual)
		}
		parms.AddChild(actual)
		count++

		tok = p.Synchronize(follow)
		switch {
		case tok.Type == token.COMMA:
			tok = p.NextToken()
		case p.Lang.ExprStart.Contains(tok.Type):
			p.Flag(tok, diag.MISSING_COMMA)
		}
	}

	if tok.Type == token.RIGHT_PAREN {
		p.NextToken()
	} else {
		p.Flag(tok, diag.MISSING_RIGHT_PAREN)
	}
	if mode == parmDeclared && count < len(formals) && !countFlagged {
		p.Flag(tok, diag.WRONG_NUMBER_OF_PARMS)
	}
	return parms
}

// checkActualParameter checks one actual against its formal: a VAR formal
// takes only a variable of the identical type, a value formal anything
// assignment compatible.
func (p *Parser) checkActualParameter(tok token.Token, formal *intermediate.Entry, actual *intermediate.Node) {
	formalType := formal.Type
	actualType := TypeOf(actual)

	if formal.Defn == intermediate.DefnVarParm {
		if actual == nil || actual.Type != intermediate.NodeVariable {
			p.Flag(tok, diag.INVALID_VAR_PARM)
			return
		}
		if intermediate.IsUndefined(actualType) || intermediate.IsUndefined(formalType) {
			return
		}
		if !intermediate.SameType(formalType, actualType) {
			p.Flag(tok, diag.INVALID_VAR_PARM)
		}
		return
	}
	p.CheckAssignable(tok, formalType, actualType)
}

// checkReadParameter requires a variable of a scalar, boolean or integer
// subrange type.
func (p *Parser) checkReadParameter(tok token.Token, actual *intermediate.Node) {
	if actual == nil || actual.Type != intermediate.NodeVariable {
		p.Flag(tok, diag.INVALID_VAR_PARM)
		return
	}
	t := TypeOf(actual)
	switch {
	case t.Form == intermediate.FormScalar:
	case intermediate.IsBoolean(t):
	case t.Form == intermediate.FormSubrange && intermediate.IsInteger(t.BaseType()):
	default:
		p.Flag(tok, diag.INVALID_VAR_PARM)
	}
}

// parseWriteSpec wraps a write value in a WRITE_PARM node and parses its
// optional ":width" and ":precision".
func (p *Parser) parseWriteSpec(tok token.Token, value *intermediate.Node) *intermediate.Node {
	wp := intermediate.NewNode(intermediate.NodeWriteParm)
	wp.Line = tok.Line

	t := TypeOf(value).BaseType()
	if !intermediate.IsUndefined(t) &&
		t.Form != intermediate.FormScalar && !intermediate.IsBoolean(t) && !t.IsPascalString() {
		p.Flag(tok, diag.INCOMPATIBLE_TYPES)
	}
	wp.TypeSpec = TypeOf(value)
	wp.AddChild(value)

	if p.CurrentToken().Type == token.COLON {
		p.parseWriteField(wp)
		if p.CurrentToken().Type == token.COLON {
			p.parseWriteField(wp)
		}
	}
	return wp
}

func (p *Parser) parseWriteField(wp *intermediate.Node) {
	tok := p.NextToken() // ":"
	if tok.Type != token.INTEGER {
		p.Flag(tok, diag.INVALID_NUMBER)
		return
	}
	field := p.ParseExpression()
	if field == nil || field.Type != intermediate.NodeIntegerConstant {
		p.Flag(tok, diag.INVALID_NUMBER)
		return
	}
	wp.AddChild(field)
}
