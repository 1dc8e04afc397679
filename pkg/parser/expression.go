package parser

import (
	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/token"
)

// ParseExpression parses
//
//	expression        = simpleExpression [ relOp simpleExpression ]
//	simpleExpression  = [ "+" | "-" ] term { addOp term }
//	term              = factor { mulOp factor }
//
// It does not synchronize on entry. A token that cannot start a factor is
// reported and left for the caller, whose own synchronization skips it.
// The result is nil when no operand could be parsed at all.
func (p *Parser) ParseExpression() *intermediate.Node {
	root := p.parseSimpleExpression()

	tok := p.CurrentToken()
	op, ok := p.Lang.RelOps[tok.Type]
	if !ok {
		return root
	}
	opNode := intermediate.NewNode(op)
	opNode.Line = tok.Line
	p.NextToken()
	right := p.parseSimpleExpression()
	opNode.TypeSpec = p.binaryType(tok, op, TypeOf(root), TypeOf(right))
	opNode.AddChild(root)
	opNode.AddChild(right)
	return opNode
}

func (p *Parser) parseSimpleExpression() *intermediate.Node {
	var sign *token.Token
	if tok := p.CurrentToken(); tok.Type == token.PLUS || tok.Type == token.MINUS {
		sign = &tok
		p.NextToken()
	}

	root := p.parseTerm()
	if sign != nil {
		t := TypeOf(root)
		if !intermediate.IsUndefined(t) && !intermediate.IsIntegerOrReal(t) {
			p.Flag(*sign, diag.INCOMPATIBLE_TYPES)
		}
		if sign.Type == token.MINUS {
			neg := intermediate.NewNode(intermediate.NodeNegate)
			neg.Line = sign.Line
			neg.TypeSpec = t
			neg.AddChild(root)
			root = neg
		}
	}

	for {
		tok := p.CurrentToken()
		op, ok := p.Lang.AddOps[tok.Type]
		if !ok {
			return root
		}
		opNode := intermediate.NewNode(op)
		opNode.Line = tok.Line
		p.NextToken()
		right := p.parseTerm()
		opNode.TypeSpec = p.binaryType(tok, op, TypeOf(root), TypeOf(right))
		opNode.AddChild(root)
		opNode.AddChild(right)
		root = opNode
	}
}

func (p *Parser) parseTerm() *intermediate.Node {
	root := p.parseFactor()
	for {
		tok := p.CurrentToken()
		op, ok := p.Lang.MulOps[tok.Type]
		if !ok {
			return root
		}
		opNode := intermediate.NewNode(op)
		opNode.Line = tok.Line
		p.NextToken()
		right := p.parseFactor()
		opNode.TypeSpec = p.binaryType(tok, op, TypeOf(root), TypeOf(right))
		opNode.AddChild(root)
		opNode.AddChild(right)
		root = opNode
	}
}

// binaryType types the operator op at tok. Undefined operands make an
// undefined result without a new diagnostic.
func (p *Parser) binaryType(tok token.Token, op intermediate.NodeType, left, right *intermediate.TypeSpec) *intermediate.TypeSpec {
	if intermediate.IsUndefined(left) || intermediate.IsUndefined(right) {
		return intermediate.UndefinedType
	}
	t, ok := intermediate.ResultType(op, left, right)
	if !ok && p.Lang.LenientLogic && (op == intermediate.NodeAnd || op == intermediate.NodeOr) &&
		p.Lang.IsCondition(left) && p.Lang.IsCondition(right) {
		return p.Lang.RelationalType
	}
	if !ok {
		p.Flag(tok, diag.INCOMPATIBLE_TYPES)
		return intermediate.UndefinedType
	}
	if op.IsRelational() {
		return p.Lang.RelationalType
	}
	return t
}

func (p *Parser) parseFactor() *intermediate.Node {
	tok := p.CurrentToken()

	switch tok.Type {
	case token.IDENTIFIER:
		return p.parseIdentifierFactor(tok)

	case token.INTEGER:
		p.NextToken()
		return constantNode(intermediate.NodeIntegerConstant, tok, tok.Value, intermediate.IntegerType)

	case token.REAL:
		p.NextToken()
		return constantNode(intermediate.NodeRealConstant, tok, tok.Value, intermediate.RealType)

	case token.STRING:
		p.NextToken()
		s, _ := tok.Value.(string)
		return constantNode(intermediate.NodeStringConstant, tok, s, StringType(s))

	case token.TRUE, token.FALSE:
		p.NextToken()
		return constantNode(intermediate.NodeBooleanConstant, tok, tok.Type == token.TRUE, intermediate.BooleanType)

	case token.NOT:
		p.NextToken()
		not := intermediate.NewNode(intermediate.NodeNot)
		not.Line = tok.Line
		operand := p.parseFactor()
		t := TypeOf(operand)
		switch {
		case intermediate.IsUndefined(t):
			not.TypeSpec = intermediate.UndefinedType
		case intermediate.IsBoolean(t):
			not.TypeSpec = intermediate.BooleanType
		case p.Lang.IsCondition(t):
			not.TypeSpec = p.Lang.RelationalType
		default:
			p.Flag(tok, diag.INCOMPATIBLE_TYPES)
			not.TypeSpec = intermediate.UndefinedType
		}
		not.AddChild(operand)
		return not

	case token.LEFT_PAREN:
		p.NextToken()
		root := p.ParseExpression()
		if cur := p.CurrentToken(); cur.Type == token.RIGHT_PAREN {
			p.NextToken()
		} else {
			p.Flag(cur, diag.MISSING_RIGHT_PAREN)
		}
		return root
	}

	p.Flag(tok, diag.UNEXPECTED_TOKEN)
	return nil
}

func constantNode(nt intermediate.NodeType, tok token.Token, value any, t *intermediate.TypeSpec) *intermediate.Node {
	n := intermediate.NewNode(nt)
	n.Line = tok.Line
	n.Value = value
	n.TypeSpec = t
	return n
}

// StringType types a string literal: one character is a char, anything
// else an array of char.
func StringType(s string) *intermediate.TypeSpec {
	if len([]rune(s)) == 1 {
		return intermediate.CharType
	}
	return intermediate.NewStringType(s)
}

// parseIdentifierFactor dispatches on what the identifier was defined as.
func (p *Parser) parseIdentifierFactor(tok token.Token) *intermediate.Node {
	id := p.LookupIdentifier(tok)

	switch id.Defn {
	case intermediate.DefnConstant:
		id.AppendLine(tok.Line)
		p.NextToken()
		t := id.Type
		if t == nil {
			t = intermediate.UndefinedType
		}
		switch v := id.Value.(type) {
		case int:
			return constantNode(intermediate.NodeIntegerConstant, tok, v, t)
		case float64:
			return constantNode(intermediate.NodeRealConstant, tok, v, t)
		case string:
			return constantNode(intermediate.NodeStringConstant, tok, v, t)
		case bool:
			return constantNode(intermediate.NodeBooleanConstant, tok, v, t)
		}
		return constantNode(intermediate.NodeIntegerConstant, tok, nil, intermediate.UndefinedType)

	case intermediate.DefnEnumConstant:
		id.AppendLine(tok.Line)
		p.NextToken()
		return constantNode(intermediate.NodeIntegerConstant, tok, id.Value, id.Type)

	case intermediate.DefnFunction:
		return p.ParseCall(tok, id)

	case intermediate.DefnProcedure:
		p.Flag(tok, p.Lang.VoidValue)
		call := p.ParseCall(tok, id)
		call.TypeSpec = intermediate.UndefinedType
		return call
	}

	return p.ParseVariable(tok, id)
}
