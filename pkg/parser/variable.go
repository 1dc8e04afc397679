package parser

import (
	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/token"
)

var subscriptFollow = token.NewSet(token.RIGHT_BRACKET, token.EQUALS, token.ASSIGN,
	token.SEMICOLON, token.RIGHT_PAREN)

// ParseVariable parses a variable reference whose identifier tok, already
// resolved to id, is the current token:
//
//	variable = identifier { "[" expression { "," expression } "]" | "." identifier }
func (p *Parser) ParseVariable(tok token.Token, id *intermediate.Entry) *intermediate.Node {
	return p.parseVariable(tok, id, false)
}

// ParseFunctionTarget parses the name of the enclosing function as the
// target of the assignment that sets its result.
func (p *Parser) ParseFunctionTarget(tok token.Token, id *intermediate.Entry) *intermediate.Node {
	return p.parseVariable(tok, id, true)
}

func (p *Parser) parseVariable(tok token.Token, id *intermediate.Entry, functionTarget bool) *intermediate.Node {
	switch id.Defn {
	case intermediate.DefnVariable, intermediate.DefnValueParm, intermediate.DefnVarParm,
		intermediate.DefnUndefined:
	case intermediate.DefnFunction:
		if !functionTarget {
			p.Flag(tok, diag.INVALID_IDENTIFIER_USAGE)
		}
	default:
		p.Flag(tok, diag.INVALID_IDENTIFIER_USAGE)
	}
	id.AppendLine(tok.Line)

	n := intermediate.NewNode(intermediate.NodeVariable)
	n.ID = id
	n.Line = tok.Line

	t := id.Type
	if t == nil {
		t = intermediate.UndefinedType
	}

	next := p.NextToken()
	for !functionTarget && (next.Type == token.LEFT_BRACKET || next.Type == token.DOT) {
		var sub *intermediate.Node
		if next.Type == token.LEFT_BRACKET {
			sub = p.parseSubscripts(t)
		} else {
			sub = p.parseField(t)
		}
		t = sub.TypeSpec
		n.AddChild(sub)
		next = p.CurrentToken()
	}

	n.TypeSpec = t
	return n
}

func (p *Parser) parseSubscripts(t *intermediate.TypeSpec) *intermediate.Node {
	n := intermediate.NewNode(intermediate.NodeSubscripts)
	n.Line = p.CurrentToken().Line

	for {
		tok := p.NextToken() // "[" or ","
		if t.Form == intermediate.FormArray {
			index := p.ParseExpression()
			p.CheckAssignable(tok, t.IndexType, TypeOf(index))
			n.AddChild(index)
			t = t.ElementType
			if t == nil {
				t = intermediate.UndefinedType
			}
		} else {
			if !intermediate.IsUndefined(t) {
				p.Flag(tok, diag.TOO_MANY_SUBSCRIPTS)
				t = intermediate.UndefinedType
			}
			p.ParseExpression()
		}
		if p.CurrentToken().Type != token.COMMA {
			break
		}
	}

	tok := p.Synchronize(subscriptFollow)
	if tok.Type == token.RIGHT_BRACKET {
		p.NextToken()
	} else {
		p.Flag(tok, diag.MISSING_RIGHT_BRACKET)
	}
	n.TypeSpec = t
	return n
}

func (p *Parser) parseField(t *intermediate.TypeSpec) *intermediate.Node {
	n := intermediate.NewNode(intermediate.NodeField)
	tok := p.NextToken() // "."
	n.Line = tok.Line
	n.TypeSpec = intermediate.UndefinedType

	switch {
	case tok.Type != token.IDENTIFIER:
		p.Flag(tok, diag.INVALID_FIELD)
		return n
	case t.Form == intermediate.FormRecord && t.Fields != nil:
		if field := t.Fields.Lookup(tok.Text); field != nil {
			field.AppendLine(tok.Line)
			n.ID = field
			n.TypeSpec = field.Type
		} else {
			p.Flag(tok, diag.INVALID_FIELD)
		}
	case !intermediate.IsUndefined(t):
		p.Flag(tok, diag.NOT_RECORD_VARIABLE)
	}
	p.NextToken()
	return n
}

// ParseAssignment parses "target assign expression" where the target
// identifier tok, resolved to id, is the current token. Its own
// diagnostic is reported when the assignment operator is missing.
func (p *Parser) ParseAssignment(tok token.Token, id *intermediate.Entry, functionTarget bool,
	assignSet token.Set, missing diag.Code) *intermediate.Node {
	assign := intermediate.NewNode(intermediate.NodeAssign)
	assign.Line = tok.Line

	var target *intermediate.Node
	if functionTarget {
		target = p.ParseFunctionTarget(tok, id)
	} else {
		target = p.ParseVariable(tok, id)
	}
	targetType := TypeOf(target)

	op := p.Synchronize(assignSet)
	if op.Type == token.ASSIGN {
		p.NextToken()
	} else {
		p.Flag(op, missing)
	}

	value := p.ParseExpression()
	p.CheckAssignable(op, targetType, TypeOf(value))

	assign.TypeSpec = targetType
	assign.AddChild(target)
	assign.AddChild(value)
	return assign
}
