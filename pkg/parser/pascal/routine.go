package pascal

import (
	"strings"

	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/parser"
	"github.com/simonpal34/Compiler/pkg/token"
)

// grammar carries the Pascal productions on top of the shared parser.
type grammar struct {
	*parser.Parser
	programName string
}

var (
	leftParenSet    = declarationStart.With(token.LEFT_PAREN, token.SEMICOLON, token.COLON)
	rightParenSet   = leftParenSet.Without(token.LEFT_PAREN).With(token.RIGHT_PAREN)
	parameterSet    = declarationStart.With(token.IDENTIFIER, token.VAR, token.RIGHT_PAREN)
	parameterNext   = token.NewSet(token.IDENTIFIER, token.VAR)
	parameterFollow = declarationStart.With(token.COLON, token.RIGHT_PAREN, token.SEMICOLON)
	parameterComma  = declarationStart.With(token.COMMA, token.COLON, token.IDENTIFIER,
		token.RIGHT_PAREN, token.SEMICOLON)
)

// Parse translates a whole Pascal program from p's current position and
// returns the program entry. programName names the program when its
// heading is missing.
func Parse(p *parser.Parser, programName string) *intermediate.Entry {
	if programName == "" {
		programName = "program"
	}
	g := &grammar{Parser: p, programName: programName}

	g.NextToken()
	g.Synchronize(declarationStart.With(token.PROGRAM, token.SEMICOLON, token.IDENTIFIER))
	program := g.parseRoutine(nil)

	if tok := g.CurrentToken(); tok.Type != token.DOT {
		g.Flag(tok, diag.MISSING_PERIOD)
	}
	return program
}

// parseRoutine parses a program, procedure or function: its heading, then
// either "forward" or a block. parent is nil for the program.
func (g *grammar) parseRoutine(parent *intermediate.Entry) *intermediate.Entry {
	tok := g.CurrentToken()

	var defn intermediate.Definition
	var dummy string
	quiet := false
	switch {
	case parent == nil && tok.Type == token.PROGRAM:
		g.NextToken()
		defn, dummy = intermediate.DefnProgram, g.programName
	case parent == nil:
		// Leading routines become the nested routines of an unnamed program.
		g.Flag(tok, diag.MISSING_PROGRAM)
		defn, dummy, quiet = intermediate.DefnProgram, g.programName, true
	case tok.Type == token.FUNCTION:
		g.NextToken()
		defn, dummy = intermediate.DefnFunction, g.DummyName("function")
	default:
		g.NextToken()
		defn, dummy = intermediate.DefnProcedure, g.DummyName("procedure")
	}

	id := g.parseRoutineName(dummy, quiet)
	forwarded := id.Routine == intermediate.RoutineForward
	if !forwarded {
		id.Defn = defn
	}

	if forwarded {
		g.Stack.PushTable(id.SymTab)
	} else {
		id.SymTab = g.Stack.Push()
	}
	id.ICode = intermediate.NewICode()

	switch {
	case defn == intermediate.DefnProgram:
		g.Stack.SetProgramID(id)
	case !forwarded:
		parent.Routines = append(parent.Routines, id)
	}

	if !forwarded {
		g.parseHeader(id)
	} else if tok := g.CurrentToken(); tok.Type != token.SEMICOLON || defn != id.Defn {
		g.Flag(tok, diag.ALREADY_FORWARDED)
		g.discardHeader(defn)
	}

	tok = g.CurrentToken()
	if tok.Type == token.SEMICOLON {
		for tok.Type == token.SEMICOLON {
			tok = g.NextToken()
		}
	} else if !quiet {
		g.Flag(tok, diag.MISSING_SEMICOLON)
	}

	if tok.Type == token.IDENTIFIER && strings.EqualFold(tok.Text, "forward") {
		g.NextToken()
		id.Routine = intermediate.RoutineForward
	} else {
		id.Routine = intermediate.RoutineDeclared
		id.ICode.SetRoot(g.parseBlock(id))
	}

	g.Stack.Pop()
	return id
}

// parseRoutineName enters the routine's name into the enclosing scope. A
// forward declared routine is returned as is. A name that is missing or
// taken is replaced by dummy.
func (g *grammar) parseRoutineName(dummy string, quiet bool) *intermediate.Entry {
	tok := g.CurrentToken()
	var id *intermediate.Entry

	if tok.Type == token.IDENTIFIER {
		id = g.Stack.LookupLocal(tok.Text)
		switch {
		case id == nil:
			id = g.Stack.EnterLocal(tok.Text)
		case id.Routine != intermediate.RoutineForward:
			g.Flag(tok, diag.IDENTIFIER_REDEFINED)
			id = nil
		}
		if id != nil {
			id.AppendLine(tok.Line)
		}
		g.NextToken()
	} else if !quiet {
		g.Flag(tok, diag.MISSING_IDENTIFIER)
	}

	if id == nil {
		id = g.Stack.EnterLocal(dummy)
	}
	return id
}

// parseHeader parses the formal parameters and, for a function, the
// return type.
func (g *grammar) parseHeader(id *intermediate.Entry) {
	g.parseFormalParameters(id)

	if id.Defn != intermediate.DefnFunction {
		return
	}
	tok := g.CurrentToken()
	t := g.parseTypeAnnotation(intermediate.DefnFunction)
	if t.Form == intermediate.FormArray || t.Form == intermediate.FormRecord {
		g.Flag(tok, diag.INVALID_TYPE)
	}
	id.Type = t
}

// discardHeader parses a heading repeated after a forward declaration into
// a scratch scope, keeping the forward declaration's kind and parameters.
// defn is the kind the repeated heading declares.
func (g *grammar) discardHeader(defn intermediate.Definition) {
	scratch := &intermediate.Entry{Defn: defn}
	g.Stack.Push()
	g.parseHeader(scratch)
	g.Stack.Pop()
}

func (g *grammar) parseFormalParameters(id *intermediate.Entry) {
	tok := g.Synchronize(leftParenSet)
	if tok.Type != token.LEFT_PAREN {
		return
	}
	g.NextToken()

	var parms []*intermediate.Entry
	tok = g.Synchronize(parameterSet)
	for tok.Type == token.IDENTIFIER || tok.Type == token.VAR {
		parms = append(parms, g.parseParameterSublist(id)...)
		tok = g.CurrentToken()
	}

	tok = g.Synchronize(rightParenSet)
	if tok.Type == token.RIGHT_PAREN {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_RIGHT_PAREN)
	}
	id.Parms = parms
}

// parseParameterSublist parses "[var] a, b: type" and the semicolons
// after it. Program parameters have no type.
func (g *grammar) parseParameterSublist(routine *intermediate.Entry) []*intermediate.Entry {
	defn := intermediate.DefnValueParm
	switch {
	case routine.Defn == intermediate.DefnProgram:
		defn = intermediate.DefnProgramParm
	case g.CurrentToken().Type == token.VAR:
		defn = intermediate.DefnVarParm
		g.NextToken()
	}

	sublist := g.parseIdentifierSublist(defn, parameterFollow, parameterComma)
	if defn != intermediate.DefnProgramParm {
		t := g.parseTypeAnnotation(defn)
		for _, e := range sublist {
			e.Type = t
		}
	}

	tok := g.CurrentToken()
	if tok.Type == token.SEMICOLON {
		for tok.Type == token.SEMICOLON {
			tok = g.NextToken()
		}
	} else if parameterNext.Contains(tok.Type) {
		g.Flag(tok, diag.MISSING_SEMICOLON)
	}
	return sublist
}

// parseIdentifierSublist parses a comma separated list of new identifiers
// up to a token in follow.
func (g *grammar) parseIdentifierSublist(defn intermediate.Definition, follow, comma token.Set) []*intermediate.Entry {
	start := token.NewSet(token.IDENTIFIER, token.COMMA)
	var list []*intermediate.Entry

	for {
		tok := g.Synchronize(start)
		if tok.Type == token.EOF {
			return list
		}
		if id := g.parseIdentifier(tok, defn); id != nil {
			list = append(list, id)
		}

		tok = g.Synchronize(comma)
		if tok.Type == token.COMMA {
			tok = g.NextToken()
			if follow.Contains(tok.Type) {
				g.Flag(tok, diag.MISSING_IDENTIFIER)
			}
		} else if start.Contains(tok.Type) {
			g.Flag(tok, diag.MISSING_COMMA)
		}

		if follow.Contains(tok.Type) || tok.Type == token.EOF {
			return list
		}
	}
}

// parseIdentifier enters one new identifier into the local scope. It
// returns nil when the name is missing or already declared there.
func (g *grammar) parseIdentifier(tok token.Token, defn intermediate.Definition) *intermediate.Entry {
	if tok.Type != token.IDENTIFIER {
		g.Flag(tok, diag.MISSING_IDENTIFIER)
		return nil
	}
	defer g.NextToken()

	if g.Stack.LookupLocal(tok.Text) != nil {
		g.Flag(tok, diag.IDENTIFIER_REDEFINED)
		return nil
	}
	id := g.Stack.EnterLocal(tok.Text)
	id.Defn = defn
	id.AppendLine(tok.Line)
	if defn != intermediate.DefnProgramParm {
		id.Slot = id.Table().NextSlot()
	}
	return id
}
