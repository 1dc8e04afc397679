package subc

import (
	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/parser"
	"github.com/simonpal34/Compiler/pkg/token"
)

var (
	listSet   = stmtStart.With(token.RIGHT_BRACE)
	assignSet = Lang.ExprStart.With(token.ASSIGN).Union(stmtFollow)
)

// parseStatement parses one statement, including its terminating
// semicolon. Local declarations are entered into the routine's scope and
// yield no node.
func (g *grammar) parseStatement() *intermediate.Node {
	tok := g.CurrentToken()

	var n *intermediate.Node
	switch tok.Type {
	case token.LEFT_BRACE:
		n = g.parseCompound()
	case token.INT, token.CHAR, token.FLOAT, token.DOUBLE, token.VOID:
		g.parseDeclaration()
		return nil
	case token.IDENTIFIER:
		if id := g.Stack.Lookup(tok.Text); id != nil && id.Defn == intermediate.DefnType {
			g.parseDeclaration()
			return nil
		}
		n = g.parseIdentifierStatement(tok)
		g.expectSemicolon()
	case token.IF:
		n = g.parseIf()
	case token.WHILE:
		n = g.parseWhile()
	case token.DO:
		n = g.parseDoWhile()
		g.expectSemicolon()
	case token.FOR:
		n = g.parseFor()
	case token.RETURN:
		n = g.parseReturn()
		g.expectSemicolon()
	case token.BREAK, token.CONTINUE, token.CASE, token.DEFAULT, token.CONST:
		g.Flag(tok, diag.UNIMPLEMENTED)
		g.skipStatement()
		return nil
	case token.SEMICOLON:
		g.NextToken()
		n = intermediate.NewNode(intermediate.NodeNoOp)
	default:
		n = intermediate.NewNode(intermediate.NodeNoOp)
	}

	if n != nil {
		n.Line = tok.Line
	}
	return n
}

// skipStatement skips to the end of the current statement.
func (g *grammar) skipStatement() {
	tok := g.NextToken()
	for !stmtFollow.Contains(tok.Type) && tok.Type != token.EOF {
		tok = g.NextToken()
	}
	if tok.Type == token.SEMICOLON {
		g.NextToken()
	}
}

// parseList parses statements up to the closing brace, which is consumed.
func (g *grammar) parseList(parent *intermediate.Node) {
	tok := g.Synchronize(listSet)
	for tok.Type != token.RIGHT_BRACE && tok.Type != token.EOF {
		parent.AddChild(g.parseStatement())
		tok = g.Synchronize(listSet)
	}

	if tok.Type == token.RIGHT_BRACE {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_RIGHT_BRACE)
	}
}

// parseCompound parses "{ statements }". A block does not open a scope.
func (g *grammar) parseCompound() *intermediate.Node {
	compound := intermediate.NewNode(intermediate.NodeCompound)
	compound.Line = g.CurrentToken().Line
	g.NextToken() // "{"
	g.parseList(compound)
	return compound
}

// parseIdentifierStatement parses an assignment or a call, without the
// semicolon. A function's result is discarded when it is called as a
// statement.
func (g *grammar) parseIdentifierStatement(tok token.Token) *intermediate.Node {
	id := g.LookupIdentifier(tok)

	switch id.Defn {
	case intermediate.DefnVariable, intermediate.DefnValueParm, intermediate.DefnVarParm,
		intermediate.DefnUndefined:
		return g.ParseAssignment(tok, id, false, assignSet, diag.MISSING_EQUALS)
	case intermediate.DefnFunction, intermediate.DefnProcedure:
		return g.ParseCall(tok, id)
	}

	g.Flag(tok, diag.INVALID_TARGET)
	g.NextToken()
	return nil
}

// parseCondition parses "( expression )".
func (g *grammar) parseCondition() *intermediate.Node {
	if tok := g.CurrentToken(); tok.Type == token.LEFT_PAREN {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_LEFT_PAREN)
	}

	cond := g.parseExpressionCondition()

	if tok := g.CurrentToken(); tok.Type == token.RIGHT_PAREN {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_RIGHT_PAREN)
	}
	return cond
}

func (g *grammar) parseExpressionCondition() *intermediate.Node {
	tok := g.CurrentToken()
	cond := g.ParseExpression()
	g.CheckCondition(tok, parser.TypeOf(cond))
	return cond
}

// exitTest makes TEST[NOT[condition]], which leaves a loop once the
// condition no longer holds.
func exitTest(line int, cond *intermediate.Node) *intermediate.Node {
	test := intermediate.NewNode(intermediate.NodeTest)
	not := intermediate.NewNode(intermediate.NodeNot)
	test.Line, not.Line = line, line
	not.TypeSpec = parser.TypeOf(cond)
	not.AddChild(cond)
	test.AddChild(not)
	return test
}

// parseIf makes IF[condition, then] or IF[condition, then, else].
func (g *grammar) parseIf() *intermediate.Node {
	n := intermediate.NewNode(intermediate.NodeIf)
	g.NextToken() // "if"

	n.AddChild(g.parseCondition())
	n.AddChild(g.parseStatement())

	if g.CurrentToken().Type == token.ELSE {
		g.NextToken()
		n.AddChild(g.parseStatement())
	}
	return n
}

// parseWhile makes LOOP[TEST[NOT[condition]], statement].
func (g *grammar) parseWhile() *intermediate.Node {
	loop := intermediate.NewNode(intermediate.NodeLoop)
	tok := g.NextToken() // "while"

	loop.AddChild(exitTest(tok.Line, g.parseCondition()))
	loop.AddChild(g.parseStatement())
	return loop
}

// parseDoWhile makes LOOP[statement, TEST[NOT[condition]]].
func (g *grammar) parseDoWhile() *intermediate.Node {
	loop := intermediate.NewNode(intermediate.NodeLoop)
	g.NextToken() // "do"

	loop.AddChild(g.parseStatement())

	tok := g.Synchronize(stmtFollow.With(token.WHILE, token.LEFT_PAREN))
	if tok.Type == token.WHILE {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_WHILE)
	}
	loop.AddChild(exitTest(tok.Line, g.parseCondition()))
	return loop
}

// parseFor makes
//
//	COMPOUND[init, LOOP[TEST[NOT[condition]], statement, step]]
//
// leaving out whichever of init, condition and step is empty.
func (g *grammar) parseFor() *intermediate.Node {
	compound := intermediate.NewNode(intermediate.NodeCompound)
	loop := intermediate.NewNode(intermediate.NodeLoop)

	tok := g.NextToken() // "for"
	loop.Line = tok.Line
	if tok.Type == token.LEFT_PAREN {
		tok = g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_LEFT_PAREN)
	}

	if tok.Type == token.IDENTIFIER {
		compound.AddChild(g.parseIdentifierStatement(tok))
	}
	g.expectSemicolon()

	if tok = g.CurrentToken(); tok.Type != token.SEMICOLON {
		loop.AddChild(exitTest(tok.Line, g.parseExpressionCondition()))
	}
	g.expectSemicolon()

	var step *intermediate.Node
	if tok = g.CurrentToken(); tok.Type == token.IDENTIFIER {
		step = g.parseIdentifierStatement(tok)
	}
	if tok = g.CurrentToken(); tok.Type == token.RIGHT_PAREN {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_RIGHT_PAREN)
	}

	loop.AddChild(g.parseStatement())
	loop.AddChild(step)
	compound.AddChild(loop)
	return compound
}

// parseReturn makes ASSIGN(routine, value), which sets the routine's
// result. A bare return is a NO_OP.
func (g *grammar) parseReturn() *intermediate.Node {
	tok := g.CurrentToken()
	g.NextToken() // "return"
	routine := g.routine

	if g.CurrentToken().Type == token.SEMICOLON {
		if routine.Defn == intermediate.DefnFunction {
			g.Flag(tok, diag.INVALID_ASSIGNMENT_VOID)
		}
		return intermediate.NewNode(intermediate.NodeNoOp)
	}

	target := intermediate.NewNode(intermediate.NodeVariable)
	target.Line = tok.Line
	target.ID = routine
	target.TypeSpec = routine.Type
	if routine.Defn != intermediate.DefnFunction || target.TypeSpec == nil {
		target.TypeSpec = intermediate.UndefinedType
	}

	valueTok := g.CurrentToken()
	value := g.ParseExpression()
	if routine.Defn == intermediate.DefnProcedure {
		g.Flag(tok, diag.INVALID_ASSIGNMENT_VOID)
	} else {
		g.CheckAssignable(valueTok, target.TypeSpec, parser.TypeOf(value))
	}

	assign := intermediate.NewNode(intermediate.NodeAssign)
	assign.TypeSpec = target.TypeSpec
	assign.AddChild(target)
	assign.AddChild(value)
	return assign
}
