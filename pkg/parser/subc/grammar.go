package subc

import (
	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/parser"
	"github.com/simonpal34/Compiler/pkg/token"
)

// grammar carries the subC productions on top of the shared parser.
type grammar struct {
	*parser.Parser
	program *intermediate.Entry
	routine *intermediate.Entry // the routine whose body is being parsed
}

var (
	nameSet         = token.NewSet(token.IDENTIFIER, token.SEMICOLON)
	parameterFollow = typeStart.With(token.COMMA, token.RIGHT_PAREN, token.LEFT_BRACE, token.SEMICOLON)
	bodySet         = stmtStart.With(token.LEFT_BRACE, token.SEMICOLON)
	unitSet         = declarationStart.With(token.EOF)
)

// Parse translates a whole subC translation unit and returns the program
// entry, which stands for the unit in the level 0 scope. Its scope holds
// the global declarations and its body is the body of main, if any.
func Parse(p *parser.Parser, programName string) *intermediate.Entry {
	if programName == "" {
		programName = "program"
	}
	g := &grammar{Parser: p}

	program := g.Stack.EnterLocal(programName)
	program.Defn = intermediate.DefnProgram
	program.Routine = intermediate.RoutineDeclared
	program.ICode = intermediate.NewICode()
	program.SymTab = g.Stack.Push()
	g.Stack.SetProgramID(program)
	g.program = program

	g.NextToken()
	for tok := g.Synchronize(unitSet); tok.Type != token.EOF; tok = g.Synchronize(unitSet) {
		g.parseDeclaration()
	}

	g.Stack.Pop()
	return program
}

// parseDeclaration parses "type name ..." and dispatches on the token after
// the name: a parenthesis makes it a routine, anything else a list of
// variables. Routines can only be declared at the outermost level.
func (g *grammar) parseDeclaration() {
	typeTok := g.CurrentToken()
	t, void := g.parseTypeSpec()

	tok := g.Synchronize(nameSet)
	if tok.Type == token.IDENTIFIER && tok.Follow == '(' && g.routine == nil {
		g.parseRoutine(tok, t, void)
		return
	}

	if void {
		g.Flag(typeTok, diag.INVALID_TYPE)
		t = intermediate.UndefinedType
	}
	g.parseVariableList(t)
	g.expectSemicolon()
}

// parseTypeSpec parses a type keyword or a type identifier. void reports
// the void keyword, which has no type.
func (g *grammar) parseTypeSpec() (t *intermediate.TypeSpec, void bool) {
	tok := g.CurrentToken()

	switch tok.Type {
	case token.INT:
		g.NextToken()
		return intermediate.IntegerType, false
	case token.CHAR:
		g.NextToken()
		return intermediate.CharType, false
	case token.FLOAT, token.DOUBLE:
		g.NextToken()
		return intermediate.RealType, false
	case token.VOID:
		g.NextToken()
		return nil, true

	case token.IDENTIFIER:
		g.NextToken()
		id := g.Stack.Lookup(tok.Text)
		if id == nil {
			g.Flag(tok, diag.IDENTIFIER_UNDEFINED)
			return intermediate.UndefinedType, false
		}
		if id.Defn != intermediate.DefnType {
			g.Flag(tok, diag.NOT_TYPE_IDENTIFIER)
			return intermediate.UndefinedType, false
		}
		id.AppendLine(tok.Line)
		return id.Type, false
	}

	g.Flag(tok, diag.INVALID_TYPE)
	return intermediate.UndefinedType, false
}

// parseVariableList parses "a, b[10], c" and enters each name into the
// local scope.
func (g *grammar) parseVariableList(t *intermediate.TypeSpec) {
	for {
		tok := g.CurrentToken()
		if tok.Type != token.IDENTIFIER {
			g.Flag(tok, diag.MISSING_IDENTIFIER)
			return
		}
		g.NextToken()

		vt := t
		if g.CurrentToken().Type == token.LEFT_BRACKET {
			vt = g.parseArrayDimensions(t)
		}
		g.declare(tok, intermediate.DefnVariable, vt)

		switch tok = g.CurrentToken(); tok.Type {
		case token.COMMA:
			g.NextToken()
		case token.IDENTIFIER:
			g.Flag(tok, diag.MISSING_COMMA)
		default:
			return
		}
	}
}

// parseArrayDimensions parses "[n]" one or more times. An array of n
// elements is indexed by the integer subrange 0..n-1; each further
// dimension nests another array.
func (g *grammar) parseArrayDimensions(elem *intermediate.TypeSpec) *intermediate.TypeSpec {
	var counts []int
	for g.CurrentToken().Type == token.LEFT_BRACKET {
		tok := g.NextToken()
		count := 0
		if tok.Type == token.INTEGER {
			count, _ = tok.Value.(int)
			if count < 1 {
				g.Flag(tok, diag.INVALID_INDEX_TYPE)
			}
			tok = g.NextToken()
		} else {
			g.Flag(tok, diag.MISSING_CONSTANT)
		}

		if tok.Type == token.RIGHT_BRACKET {
			g.NextToken()
		} else {
			g.Flag(tok, diag.MISSING_RIGHT_BRACKET)
		}
		counts = append(counts, count)
	}

	t := elem
	for i := len(counts) - 1; i >= 0; i-- {
		index := intermediate.NewTypeSpec(intermediate.FormSubrange)
		index.Base = intermediate.IntegerType
		index.MaxValue = counts[i] - 1

		arr := intermediate.NewTypeSpec(intermediate.FormArray)
		arr.IndexType = index
		arr.ElementType = t
		arr.ElementCount = counts[i]
		t = arr
	}
	return t
}

// declare enters a new variable or parameter into the local scope and
// gives it a slot. It returns nil when the name is already declared there.
func (g *grammar) declare(tok token.Token, defn intermediate.Definition, t *intermediate.TypeSpec) *intermediate.Entry {
	if g.Stack.LookupLocal(tok.Text) != nil {
		g.Flag(tok, diag.IDENTIFIER_REDEFINED)
		return nil
	}
	id := g.Stack.EnterLocal(tok.Text)
	id.Defn = defn
	id.Type = t
	id.AppendLine(tok.Line)
	id.Slot = id.Table().NextSlot()
	return id
}

func (g *grammar) expectSemicolon() {
	if tok := g.CurrentToken(); tok.Type == token.SEMICOLON {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_SEMICOLON)
	}
}

// parseRoutine parses a routine whose name tok is the current token: its
// parameters, then either ";" for a prototype or a body. A body may
// complete an earlier prototype with the same signature.
func (g *grammar) parseRoutine(tok token.Token, t *intermediate.TypeSpec, void bool) {
	defn, kind := intermediate.DefnFunction, "function"
	if void {
		defn, kind = intermediate.DefnProcedure, "procedure"
	}

	id := g.Stack.LookupLocal(tok.Text)
	prototyped := false
	switch {
	case id == nil:
		id = g.Stack.EnterLocal(tok.Text)
	case id.Routine == intermediate.RoutineForward:
		prototyped = true
	default:
		g.Flag(tok, diag.IDENTIFIER_REDEFINED)
		id = g.Stack.EnterLocal(g.DummyName(kind))
	}
	id.AppendLine(tok.Line)
	g.NextToken()

	isMain := id.Name() == "main"
	scope := g.Stack.Push()
	if isMain {
		scope.NextSlot()
	}
	parms := g.parseFormalParameters()

	if prototyped && !sameSignature(id, defn, t, parms) {
		g.Flag(tok, diag.ALREADY_FORWARDED)
	}
	id.Defn, id.Type, id.SymTab, id.Parms = defn, t, scope, parms
	id.ICode = intermediate.NewICode()

	switch {
	case isMain:
		g.program.Main = id
		g.program.ICode = id.ICode
	case !prototyped:
		g.program.Routines = append(g.program.Routines, id)
	}

	switch body := g.Synchronize(bodySet); body.Type {
	case token.SEMICOLON:
		g.NextToken()
		id.Routine = intermediate.RoutineForward
	case token.LEFT_BRACE:
		id.Routine = intermediate.RoutineDeclared
		g.routine = id
		id.ICode.SetRoot(g.parseCompound())
		g.routine = nil
	default:
		g.Flag(body, diag.MISSING_LEFT_BRACE)
		id.Routine = intermediate.RoutineDeclared
		if stmtStart.Contains(body.Type) {
			compound := intermediate.NewNode(intermediate.NodeCompound)
			compound.Line = body.Line
			g.routine = id
			g.parseList(compound)
			g.routine = nil
			id.ICode.SetRoot(compound)
		}
	}
	g.Stack.Pop()
}

// sameSignature reports whether a definition matches the prototype id.
func sameSignature(id *intermediate.Entry, defn intermediate.Definition, t *intermediate.TypeSpec,
	parms []*intermediate.Entry) bool {
	if id.Defn != defn || len(id.Parms) != len(parms) {
		return false
	}
	if defn == intermediate.DefnFunction && !intermediate.SameType(id.Type, t) {
		return false
	}
	for i, p := range parms {
		if !intermediate.SameType(id.Parms[i].Type, p.Type) {
			return false
		}
	}
	return true
}

// parseFormalParameters parses "(type a, type b)", "(void)" or "()".
func (g *grammar) parseFormalParameters() []*intermediate.Entry {
	tok := g.CurrentToken()
	if tok.Type != token.LEFT_PAREN {
		g.Flag(tok, diag.MISSING_LEFT_PAREN)
		return nil
	}
	tok = g.NextToken()
	if tok.Type == token.VOID && tok.Follow == ')' {
		tok = g.NextToken()
	}

	var parms []*intermediate.Entry
	for tok.Type != token.RIGHT_PAREN && tok.Type != token.LEFT_BRACE &&
		tok.Type != token.SEMICOLON && tok.Type != token.EOF {
		if parm := g.parseParameter(); parm != nil {
			parms = append(parms, parm)
		}

		tok = g.Synchronize(parameterFollow)
		if tok.Type == token.COMMA {
			tok = g.NextToken()
		} else if typeStart.Contains(tok.Type) {
			g.Flag(tok, diag.MISSING_COMMA)
		}
	}

	if tok.Type == token.RIGHT_PAREN {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_RIGHT_PAREN)
	}
	return parms
}

// parseParameter parses "type name". A prototype may leave out the name.
func (g *grammar) parseParameter() *intermediate.Entry {
	typeTok := g.CurrentToken()
	t, void := g.parseTypeSpec()
	if !declarationStart.Contains(typeTok.Type) {
		return nil
	}
	if void {
		g.Flag(typeTok, diag.INVALID_TYPE)
		t = intermediate.UndefinedType
	}

	tok := g.CurrentToken()
	if tok.Type != token.IDENTIFIER {
		return &intermediate.Entry{Defn: intermediate.DefnValueParm, Type: t, Slot: -1}
	}
	g.NextToken()
	return g.declare(tok, intermediate.DefnValueParm, t)
}
