package pascal

import (
	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/parser"
	"github.com/simonpal34/Compiler/pkg/token"
)

var (
	assignSet = Lang.ExprStart.With(token.ASSIGN).Union(stmtFollow)
	thenSet   = stmtStart.With(token.THEN).Union(stmtFollow)
	doSet     = stmtStart.With(token.DO).Union(stmtFollow)
	ofSet     = caseConstantStart.With(token.OF).Union(stmtFollow)

	forAssignSet = assignSet.With(token.TO, token.DOWNTO, token.DO)
	toDowntoSet  = Lang.ExprStart.With(token.TO, token.DOWNTO, token.DO).Union(stmtFollow)

	caseConstantStart = token.NewSet(token.IDENTIFIER, token.INTEGER, token.PLUS,
		token.MINUS, token.STRING)
	caseBranchSet = caseConstantStart.With(token.END, token.SEMICOLON)
	caseCommaSet  = caseConstantStart.With(token.COMMA, token.COLON).Union(stmtStart).Union(stmtFollow)
)

// parseStatement parses one statement. An empty statement is a NO_OP.
func (g *grammar) parseStatement() *intermediate.Node {
	tok := g.CurrentToken()

	var n *intermediate.Node
	switch tok.Type {
	case token.BEGIN:
		n = g.parseCompound()
	case token.IDENTIFIER:
		n = g.parseIdentifierStatement(tok)
	case token.REPEAT:
		n = g.parseRepeat()
	case token.WHILE:
		n = g.parseWhile()
	case token.FOR:
		n = g.parseFor()
	case token.IF:
		n = g.parseIf()
	case token.CASE:
		n = g.parseCase()
	default:
		n = intermediate.NewNode(intermediate.NodeNoOp)
	}

	if n != nil {
		n.Line = tok.Line
	}
	return n
}

// parseList parses statements separated by semicolons up to terminator,
// which is consumed.
func (g *grammar) parseList(parent *intermediate.Node, terminator token.Type, missing diag.Code) {
	terminators := stmtStart.With(terminator)

	tok := g.CurrentToken()
	for tok.Type != token.EOF && tok.Type != terminator {
		parent.AddChild(g.parseStatement())

		tok = g.CurrentToken()
		if tok.Type == token.SEMICOLON {
			g.NextToken()
		} else if stmtStart.Contains(tok.Type) {
			g.Flag(tok, diag.MISSING_SEMICOLON)
		}
		tok = g.Synchronize(terminators)
	}

	if tok.Type == terminator {
		g.NextToken()
	} else {
		g.Flag(tok, missing)
	}
}

func (g *grammar) parseCompound() *intermediate.Node {
	compound := intermediate.NewNode(intermediate.NodeCompound)
	g.NextToken() // "begin"
	g.parseList(compound, token.END, diag.MISSING_END)
	return compound
}

// parseIdentifierStatement parses an assignment, an assignment to a
// function's result or a procedure call.
func (g *grammar) parseIdentifierStatement(tok token.Token) *intermediate.Node {
	defn := intermediate.DefnUndefined
	id := g.Stack.Lookup(tok.Text)
	if id != nil {
		defn = id.Defn
	}

	switch defn {
	case intermediate.DefnVariable, intermediate.DefnValueParm, intermediate.DefnVarParm,
		intermediate.DefnUndefined:
		return g.ParseAssignment(tok, g.LookupIdentifier(tok), false, assignSet, diag.MISSING_COLON_EQUALS)
	case intermediate.DefnFunction:
		return g.ParseAssignment(tok, id, true, assignSet, diag.MISSING_COLON_EQUALS)
	case intermediate.DefnProcedure:
		return g.ParseCall(tok, id)
	}

	g.Flag(tok, diag.UNEXPECTED_TOKEN)
	g.NextToken()
	return nil
}

// parseCondition parses a boolean expression.
func (g *grammar) parseCondition() *intermediate.Node {
	tok := g.CurrentToken()
	cond := g.ParseExpression()
	g.CheckCondition(tok, parser.TypeOf(cond))
	return cond
}

// parseRepeat makes LOOP[statements..., TEST[condition]].
func (g *grammar) parseRepeat() *intermediate.Node {
	loop := intermediate.NewNode(intermediate.NodeLoop)
	test := intermediate.NewNode(intermediate.NodeTest)

	g.NextToken() // "repeat"
	g.parseList(loop, token.UNTIL, diag.MISSING_UNTIL)

	test.Line = g.CurrentToken().Line
	test.AddChild(g.parseCondition())
	loop.AddChild(test)
	return loop
}

// parseWhile makes LOOP[TEST[NOT[condition]], statement].
func (g *grammar) parseWhile() *intermediate.Node {
	loop := intermediate.NewNode(intermediate.NodeLoop)
	test := intermediate.NewNode(intermediate.NodeTest)
	not := intermediate.NewNode(intermediate.NodeNot)

	tok := g.NextToken() // "while"
	test.Line, not.Line = tok.Line, tok.Line
	cond := g.parseCondition()
	not.TypeSpec = parser.TypeOf(cond)
	not.AddChild(cond)
	test.AddChild(not)
	loop.AddChild(test)

	tok = g.Synchronize(doSet)
	if tok.Type == token.DO {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_DO)
	}
	loop.AddChild(g.parseStatement())
	return loop
}

// parseFor makes
//
//	COMPOUND[ASSIGN(control,initial),
//	         LOOP[TEST[GT(control,final)], statement, ASSIGN(control,ADD(control,1))]]
//
// with LT and SUBTRACT for downto.
func (g *grammar) parseFor() *intermediate.Node {
	compound := intermediate.NewNode(intermediate.NodeCompound)

	tok := g.NextToken() // "for"
	var assign, control *intermediate.Node
	if tok.Type == token.IDENTIFIER {
		assign = g.ParseAssignment(tok, g.LookupIdentifier(tok), false, forAssignSet, diag.MISSING_COLON_EQUALS)
		control = assign.Child(0)
		t := parser.TypeOf(control).BaseType()
		if !intermediate.IsUndefined(t) && !intermediate.IsInteger(t) && t.Form != intermediate.FormEnumeration {
			g.Flag(tok, diag.INCOMPATIBLE_TYPES)
		}
	} else {
		g.Flag(tok, diag.MISSING_FOR_CONTROL)
		assign = intermediate.NewNode(intermediate.NodeAssign)
		assign.Line = tok.Line
		if tok.Type == token.ASSIGN {
			g.NextToken()
		}
		assign.AddChild(g.ParseExpression())
	}
	compound.AddChild(assign)
	controlType := parser.TypeOf(control)

	tok = g.Synchronize(toDowntoSet)
	direction := token.TO
	if tok.Type == token.TO || tok.Type == token.DOWNTO {
		direction = tok.Type
		tok = g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_TO_DOWNTO)
	}

	cmp := intermediate.NewNode(intermediate.NodeGT)
	step := intermediate.NewNode(intermediate.NodeAdd)
	if direction == token.DOWNTO {
		cmp = intermediate.NewNode(intermediate.NodeLT)
		step = intermediate.NewNode(intermediate.NodeSubtract)
	}
	cmp.Line = tok.Line
	cmp.TypeSpec = intermediate.BooleanType
	cmp.AddChild(control.Copy())
	final := g.ParseExpression()
	g.CheckAssignable(tok, controlType, parser.TypeOf(final))
	cmp.AddChild(final)

	loop := intermediate.NewNode(intermediate.NodeLoop)
	test := intermediate.NewNode(intermediate.NodeTest)
	test.Line = cmp.Line
	test.AddChild(cmp)
	loop.AddChild(test)

	tok = g.Synchronize(doSet)
	if tok.Type == token.DO {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_DO)
	}
	loop.AddChild(g.parseStatement())

	if control != nil {
		one := intermediate.NewNode(intermediate.NodeIntegerConstant)
		one.Line = control.Line
		one.Value = 1
		one.TypeSpec = intermediate.IntegerType

		step.Line = control.Line
		step.TypeSpec = controlType
		step.AddChild(control.Copy())
		step.AddChild(one)

		next := intermediate.NewNode(intermediate.NodeAssign)
		next.Line = control.Line
		next.TypeSpec = controlType
		next.AddChild(control.Copy())
		next.AddChild(step)
		loop.AddChild(next)
	}

	compound.AddChild(loop)
	return compound
}

// parseIf makes IF[condition, then] or IF[condition, then, else].
func (g *grammar) parseIf() *intermediate.Node {
	ifNode := intermediate.NewNode(intermediate.NodeIf)

	g.NextToken() // "if"
	ifNode.AddChild(g.parseCondition())

	tok := g.Synchronize(thenSet)
	if tok.Type == token.THEN {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_THEN)
	}
	ifNode.AddChild(g.parseStatement())

	if g.CurrentToken().Type == token.ELSE {
		g.NextToken()
		ifNode.AddChild(g.parseStatement())
	}
	return ifNode
}

// parseCase makes SELECT[expression, SELECT_BRANCH[SELECT_CONSTANTS[...],
// statement], ...].
func (g *grammar) parseCase() *intermediate.Node {
	sel := intermediate.NewNode(intermediate.NodeSelect)

	tok := g.NextToken() // "case"
	expr := g.ParseExpression()
	exprType := parser.TypeOf(expr).BaseType()
	if !intermediate.IsUndefined(exprType) && !intermediate.IsInteger(exprType) &&
		!intermediate.IsChar(exprType) && exprType.Form != intermediate.FormEnumeration {
		g.Flag(tok, diag.INCOMPATIBLE_TYPES)
	}
	sel.AddChild(expr)

	tok = g.Synchronize(ofSet)
	if tok.Type == token.OF {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_OF)
	}

	seen := make(map[any]bool)
	for {
		tok = g.Synchronize(caseBranchSet)
		if tok.Type == token.END || tok.Type == token.EOF {
			break
		}
		sel.AddChild(g.parseBranch(exprType, seen))

		tok = g.CurrentToken()
		if tok.Type == token.SEMICOLON {
			g.NextToken()
		} else if caseConstantStart.Contains(tok.Type) {
			g.Flag(tok, diag.MISSING_SEMICOLON)
		}
	}

	if tok.Type == token.END {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_END)
	}
	return sel
}

func (g *grammar) parseBranch(exprType *intermediate.TypeSpec, seen map[any]bool) *intermediate.Node {
	branch := intermediate.NewNode(intermediate.NodeSelectBranch)
	constants := intermediate.NewNode(intermediate.NodeSelectConstants)
	tok := g.CurrentToken()
	branch.Line, constants.Line = tok.Line, tok.Line
	branch.AddChild(constants)

	for caseConstantStart.Contains(tok.Type) {
		constants.AddChild(g.parseCaseConstant(tok, exprType, seen))

		tok = g.Synchronize(caseCommaSet)
		if tok.Type == token.COMMA {
			tok = g.NextToken()
		} else if caseConstantStart.Contains(tok.Type) {
			g.Flag(tok, diag.MISSING_COMMA)
		}
	}

	if tok.Type == token.COLON {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_COLON)
	}
	branch.AddChild(g.parseStatement())
	return branch
}

// parseCaseConstant parses one branch label, which must match the case
// expression's type and appear only once.
func (g *grammar) parseCaseConstant(tok token.Token, exprType *intermediate.TypeSpec, seen map[any]bool) *intermediate.Node {
	var sign *token.Token
	if tok.Type == token.PLUS || tok.Type == token.MINUS {
		signTok := tok
		sign = &signTok
		tok = g.NextToken()
	}
	negative := sign != nil && sign.Type == token.MINUS

	n := intermediate.NewNode(intermediate.NodeIntegerConstant)
	n.Line = tok.Line
	n.TypeSpec = intermediate.UndefinedType

	switch tok.Type {
	case token.INTEGER:
		v, _ := tok.Value.(int)
		if negative {
			v = -v
		}
		n.Value, n.TypeSpec = v, intermediate.IntegerType

	case token.STRING:
		s, _ := tok.Value.(string)
		n.Type = intermediate.NodeStringConstant
		n.Value = s
		if sign != nil || len([]rune(s)) != 1 {
			g.Flag(tok, diag.INVALID_CONSTANT)
		} else {
			n.TypeSpec = intermediate.CharType
		}

	case token.IDENTIFIER:
		id := g.Stack.Lookup(tok.Text)
		switch {
		case id == nil:
			g.Flag(tok, diag.IDENTIFIER_UNDEFINED)
			id = g.Stack.EnterLocal(tok.Text)
			id.Defn = intermediate.DefnUndefined
			id.Type = intermediate.UndefinedType
		case id.Defn == intermediate.DefnEnumConstant:
			if sign != nil {
				g.Flag(tok, diag.INVALID_CONSTANT)
			}
			n.Value, n.TypeSpec = id.Value, id.Type
		case id.Defn == intermediate.DefnConstant:
			switch v := id.Value.(type) {
			case int:
				if negative {
					v = -v
				}
				n.Value, n.TypeSpec = v, id.Type
			case string:
				n.Type = intermediate.NodeStringConstant
				n.Value, n.TypeSpec = v, id.Type
			default:
				g.Flag(tok, diag.INVALID_CONSTANT)
			}
		default:
			g.Flag(tok, diag.INVALID_CONSTANT)
		}
		id.AppendLine(tok.Line)

	default:
		g.Flag(tok, diag.INVALID_CONSTANT)
		return n
	}
	g.NextToken()

	t := n.TypeSpec.BaseType()
	switch {
	case intermediate.IsUndefined(t) || intermediate.IsUndefined(exprType):
	case !intermediate.SameType(t, exprType):
		g.Flag(tok, diag.INCOMPATIBLE_TYPES)
	case seen[n.Value]:
		g.Flag(tok, diag.CASE_CONSTANT_REUSED)
	default:
		seen[n.Value] = true
	}
	return n
}
