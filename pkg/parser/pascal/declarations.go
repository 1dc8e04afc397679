package pascal

import (
	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/parser"
	"github.com/simonpal34/Compiler/pkg/token"
)

var (
	constIdentifierSet = typeSectionStart.With(token.IDENTIFIER)
	typeIdentifierSet  = varSectionStart.With(token.IDENTIFIER)
	varIdentifierSet   = varSectionStart.With(token.IDENTIFIER, token.END, token.SEMICOLON)

	constNext = typeSectionStart.With(token.SEMICOLON, token.IDENTIFIER)
	typeNext  = varSectionStart.With(token.SEMICOLON, token.IDENTIFIER)
	varNext   = routineStart.With(token.IDENTIFIER, token.SEMICOLON)

	varFollow = varSectionStart.With(token.COLON, token.SEMICOLON)
	varComma  = token.NewSet(token.COMMA, token.COLON, token.IDENTIFIER, token.SEMICOLON)
)

// parseBlock parses a routine's declarations and its compound statement.
func (g *grammar) parseBlock(routine *intermediate.Entry) *intermediate.Node {
	g.parseDeclarations(routine)

	tok := g.Synchronize(stmtStart)
	if tok.Type == token.BEGIN {
		return g.parseStatement()
	}

	g.Flag(tok, diag.MISSING_BEGIN)
	if !stmtStart.Contains(tok.Type) {
		return nil
	}
	compound := intermediate.NewNode(intermediate.NodeCompound)
	compound.Line = tok.Line
	g.parseList(compound, token.END, diag.MISSING_END)
	return compound
}

func (g *grammar) parseDeclarations(routine *intermediate.Entry) {
	tok := g.Synchronize(declarationStart)
	if tok.Type == token.CONST {
		g.NextToken()
		g.parseConstantDefinitions()
	}

	tok = g.Synchronize(typeSectionStart)
	if tok.Type == token.TYPE {
		g.NextToken()
		g.parseTypeDefinitions()
	}

	tok = g.Synchronize(varSectionStart)
	if tok.Type == token.VAR {
		g.NextToken()
		g.parseVariableDeclarations(intermediate.DefnVariable)
	}

	tok = g.Synchronize(routineStart)
	for tok.Type == token.PROCEDURE || tok.Type == token.FUNCTION {
		g.parseRoutine(routine)

		tok = g.CurrentToken()
		if tok.Type == token.SEMICOLON {
			for tok.Type == token.SEMICOLON {
				tok = g.NextToken()
			}
		}
		tok = g.Synchronize(routineStart)
	}
}

func (g *grammar) skipSemicolons(next token.Set) {
	tok := g.CurrentToken()
	if tok.Type == token.SEMICOLON {
		for tok.Type == token.SEMICOLON {
			tok = g.NextToken()
		}
	} else if next.Contains(tok.Type) {
		g.Flag(tok, diag.MISSING_SEMICOLON)
	}
}

// newDefinition enters the name being defined by a constant or type
// definition. It returns nil when the name is already declared locally.
func (g *grammar) newDefinition(tok token.Token) *intermediate.Entry {
	if g.Stack.LookupLocal(tok.Text) != nil {
		g.Flag(tok, diag.IDENTIFIER_REDEFINED)
		return nil
	}
	id := g.Stack.EnterLocal(tok.Text)
	id.AppendLine(tok.Line)
	return id
}

func (g *grammar) parseConstantDefinitions() {
	equalsSet := constantStart.With(token.EQUALS)

	tok := g.Synchronize(constIdentifierSet)
	for tok.Type == token.IDENTIFIER {
		id := g.newDefinition(tok)
		g.NextToken()

		tok = g.Synchronize(equalsSet)
		if tok.Type == token.EQUALS {
			g.NextToken()
		} else {
			g.Flag(tok, diag.MISSING_EQUALS)
		}

		value, t := g.parseConstant()
		if id != nil {
			id.Defn = intermediate.DefnConstant
			id.Value = value
			id.Type = t
		}

		g.skipSemicolons(constNext)
		tok = g.Synchronize(constIdentifierSet)
	}
}

// parseConstant parses an optionally signed number, string or constant
// identifier and returns its value and type.
func (g *grammar) parseConstant() (any, *intermediate.TypeSpec) {
	tok := g.Synchronize(constantStart)

	var sign *token.Token
	if tok.Type == token.PLUS || tok.Type == token.MINUS {
		signTok := tok
		sign = &signTok
		tok = g.NextToken()
	}
	negative := sign != nil && sign.Type == token.MINUS

	switch tok.Type {
	case token.IDENTIFIER:
		return g.parseIdentifierConstant(tok, sign)

	case token.INTEGER:
		g.NextToken()
		v, _ := tok.Value.(int)
		if negative {
			v = -v
		}
		return v, intermediate.IntegerType

	case token.REAL:
		g.NextToken()
		v, _ := tok.Value.(float64)
		if negative {
			v = -v
		}
		return v, intermediate.RealType

	case token.STRING:
		if sign != nil {
			g.Flag(*sign, diag.INVALID_CONSTANT)
		}
		g.NextToken()
		s, _ := tok.Value.(string)
		return s, parser.StringType(s)
	}

	g.Flag(tok, diag.INVALID_CONSTANT)
	return nil, intermediate.UndefinedType
}

func (g *grammar) parseIdentifierConstant(tok token.Token, sign *token.Token) (any, *intermediate.TypeSpec) {
	g.NextToken()
	id := g.Stack.Lookup(tok.Text)
	if id == nil {
		g.Flag(tok, diag.IDENTIFIER_UNDEFINED)
		return nil, intermediate.UndefinedType
	}
	id.AppendLine(tok.Line)
	negative := sign != nil && sign.Type == token.MINUS

	switch id.Defn {
	case intermediate.DefnConstant:
		switch v := id.Value.(type) {
		case int:
			if negative {
				v = -v
			}
			return v, id.Type
		case float64:
			if negative {
				v = -v
			}
			return v, id.Type
		case string:
			if sign != nil {
				g.Flag(*sign, diag.INVALID_CONSTANT)
			}
			return v, id.Type
		}
		return nil, intermediate.UndefinedType

	case intermediate.DefnEnumConstant:
		if sign != nil {
			g.Flag(*sign, diag.INVALID_CONSTANT)
		}
		return id.Value, id.Type
	}

	g.Flag(tok, diag.NOT_CONSTANT_IDENTIFIER)
	return nil, intermediate.UndefinedType
}

func (g *grammar) parseTypeDefinitions() {
	equalsSet := typeStart.With(token.EQUALS)

	tok := g.Synchronize(typeIdentifierSet)
	for tok.Type == token.IDENTIFIER {
		id := g.newDefinition(tok)
		g.NextToken()

		tok = g.Synchronize(equalsSet)
		if tok.Type == token.EQUALS {
			g.NextToken()
		} else {
			g.Flag(tok, diag.MISSING_EQUALS)
		}

		t := g.parseTypeSpec()
		if id != nil {
			id.Defn = intermediate.DefnType
			if t.Identifier == nil && t.Primitive() == intermediate.PrimNone {
				t.Identifier = id
			}
			id.Type = t
		}

		g.skipSemicolons(typeNext)
		tok = g.Synchronize(typeIdentifierSet)
	}
}

// parseVariableDeclarations parses "a, b: type;" lists of variables, or of
// record fields when defn is DefnField.
func (g *grammar) parseVariableDeclarations(defn intermediate.Definition) {
	tok := g.Synchronize(varIdentifierSet)
	for tok.Type == token.IDENTIFIER {
		sublist := g.parseIdentifierSublist(defn, varFollow, varComma)
		t := g.parseTypeAnnotation(defn)
		for _, e := range sublist {
			e.Type = t
		}

		g.skipSemicolons(varNext)
		tok = g.Synchronize(varIdentifierSet)
	}
}

// parseTypeAnnotation parses ": type". Parameters and function results
// must be of a named type.
func (g *grammar) parseTypeAnnotation(defn intermediate.Definition) *intermediate.TypeSpec {
	tok := g.Synchronize(typeStart.With(token.COLON))
	if tok.Type == token.COLON {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_COLON)
	}

	tok = g.CurrentToken()
	t := g.parseTypeSpec()
	if defn != intermediate.DefnVariable && defn != intermediate.DefnField &&
		!intermediate.IsUndefined(t) && t.Identifier == nil && t.Primitive() == intermediate.PrimNone {
		g.Flag(tok, diag.INVALID_TYPE)
	}
	return t
}
