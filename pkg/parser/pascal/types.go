package pascal

import (
	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/token"
)

var (
	simpleTypeStart = constantStart.With(token.LEFT_PAREN, token.COMMA)
	typeStart       = simpleTypeStart.With(token.ARRAY, token.RECORD)

	enumStart  = token.NewSet(token.IDENTIFIER, token.COMMA)
	enumFollow = varSectionStart.With(token.RIGHT_PAREN, token.SEMICOLON)

	indexStart = simpleTypeStart.With(token.COMMA)
	indexEnd   = token.NewSet(token.RIGHT_BRACKET, token.OF, token.SEMICOLON)
)

// parseTypeSpec parses a type. It never returns nil: a type that could
// not be parsed is UndefinedType.
func (g *grammar) parseTypeSpec() *intermediate.TypeSpec {
	var t *intermediate.TypeSpec
	switch tok := g.Synchronize(typeStart); tok.Type {
	case token.ARRAY:
		t = g.parseArrayType()
	case token.RECORD:
		t = g.parseRecordType()
	default:
		t = g.parseSimpleType()
	}
	if t == nil {
		return intermediate.UndefinedType
	}
	return t
}

// parseSimpleType parses a type identifier, an enumeration or a subrange.
func (g *grammar) parseSimpleType() *intermediate.TypeSpec {
	tok := g.Synchronize(simpleTypeStart)

	switch tok.Type {
	case token.IDENTIFIER:
		id := g.Stack.Lookup(tok.Text)
		if id == nil {
			g.Flag(tok, diag.IDENTIFIER_UNDEFINED)
			g.NextToken()
			return nil
		}
		switch id.Defn {
		case intermediate.DefnType:
			id.AppendLine(tok.Line)
			g.NextToken()
			return id.Type
		case intermediate.DefnConstant, intermediate.DefnEnumConstant:
			return g.parseSubrangeType()
		}
		g.Flag(tok, diag.NOT_TYPE_IDENTIFIER)
		g.NextToken()
		return nil

	case token.LEFT_PAREN:
		return g.parseEnumerationType()

	case token.COMMA, token.SEMICOLON, token.EOF:
		g.Flag(tok, diag.INVALID_TYPE)
		return nil
	}
	return g.parseSubrangeType()
}

// parseSubrangeType parses "min..max" over integers, chars or an
// enumeration.
func (g *grammar) parseSubrangeType() *intermediate.TypeSpec {
	t := intermediate.NewTypeSpec(intermediate.FormSubrange)

	minTok := g.CurrentToken()
	minValue, minType := g.parseConstant()
	minInt, minOK := g.subrangeValue(minTok, minValue, minType)
	t.Base = minType.BaseType()
	t.MinValue = minInt

	tok := g.CurrentToken()
	sawDotDot := tok.Type == token.DOT_DOT
	if sawDotDot {
		tok = g.NextToken()
	}
	if !constantStart.Contains(tok.Type) || tok.Type == token.SEMICOLON {
		g.Flag(tok, diag.INVALID_SUBRANGE_TYPE)
		return t
	}
	if !sawDotDot {
		g.Flag(tok, diag.MISSING_DOT_DOT)
	}

	maxTok := g.CurrentToken()
	maxValue, maxType := g.parseConstant()
	maxInt, maxOK := g.subrangeValue(maxTok, maxValue, maxType)
	t.MaxValue = maxInt

	switch {
	case intermediate.IsUndefined(minType) || intermediate.IsUndefined(maxType):
	case !intermediate.SameType(minType.BaseType(), maxType.BaseType()):
		g.Flag(maxTok, diag.INVALID_SUBRANGE_TYPE)
	case minOK && maxOK && minInt > maxInt:
		g.Flag(maxTok, diag.MIN_GT_MAX)
	}
	return t
}

// subrangeValue converts a subrange bound to its ordinal value. Chars
// range over their code points.
func (g *grammar) subrangeValue(tok token.Token, value any, t *intermediate.TypeSpec) (int, bool) {
	if intermediate.IsUndefined(t) {
		return 0, false
	}
	switch base := t.BaseType(); {
	case intermediate.IsInteger(base), base.Form == intermediate.FormEnumeration:
		v, ok := value.(int)
		return v, ok
	case intermediate.IsChar(base):
		s, _ := value.(string)
		if r := []rune(s); len(r) == 1 {
			return int(r[0]), true
		}
	}
	g.Flag(tok, diag.INVALID_SUBRANGE_TYPE)
	return 0, false
}

// parseEnumerationType parses "(a, b, c)". Each constant is entered into
// the local scope with its ordinal as value.
func (g *grammar) parseEnumerationType() *intermediate.TypeSpec {
	t := intermediate.NewTypeSpec(intermediate.FormEnumeration)
	sync := enumStart.Union(enumFollow)
	value := -1

	tok := g.NextToken() // "("
	for {
		tok = g.Synchronize(sync)
		if enumFollow.Contains(tok.Type) || tok.Type == token.EOF {
			if value < 0 {
				g.Flag(tok, diag.MISSING_IDENTIFIER)
			}
			break
		}

		value++
		g.parseEnumerationIdentifier(tok, value, t)

		tok = g.CurrentToken()
		if tok.Type == token.COMMA {
			tok = g.NextToken()
			if enumFollow.Contains(tok.Type) {
				g.Flag(tok, diag.MISSING_IDENTIFIER)
			}
		} else if enumStart.Contains(tok.Type) {
			g.Flag(tok, diag.MISSING_COMMA)
		}
	}

	if tok.Type == token.RIGHT_PAREN {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_RIGHT_PAREN)
	}
	return t
}

func (g *grammar) parseEnumerationIdentifier(tok token.Token, value int, t *intermediate.TypeSpec) {
	if tok.Type != token.IDENTIFIER {
		g.Flag(tok, diag.MISSING_IDENTIFIER)
		return
	}
	defer g.NextToken()

	if g.Stack.LookupLocal(tok.Text) != nil {
		g.Flag(tok, diag.IDENTIFIER_REDEFINED)
		return
	}
	id := g.Stack.EnterLocal(tok.Text)
	id.Defn = intermediate.DefnEnumConstant
	id.Type = t
	id.Value = value
	id.AppendLine(tok.Line)
	t.Constants = append(t.Constants, id)
}

// parseArrayType parses "array [index, ...] of element". Each index after
// the first makes a nested array type.
func (g *grammar) parseArrayType() *intermediate.TypeSpec {
	arr := intermediate.NewTypeSpec(intermediate.FormArray)

	g.NextToken() // "array"
	tok := g.Synchronize(indexStart.Union(indexEnd).With(token.LEFT_BRACKET))
	if tok.Type == token.LEFT_BRACKET {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_LEFT_BRACKET)
	}

	elem := g.parseIndexTypeList(arr)

	tok = g.Synchronize(indexEnd)
	if tok.Type == token.RIGHT_BRACKET {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_RIGHT_BRACKET)
	}

	tok = g.Synchronize(typeStart.With(token.OF))
	if tok.Type == token.OF {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_OF)
	}

	elem.ElementType = g.parseTypeSpec()
	return arr
}

// parseIndexTypeList parses the index types and returns the innermost
// array type, whose element type is still unset.
func (g *grammar) parseIndexTypeList(arr *intermediate.TypeSpec) *intermediate.TypeSpec {
	follow := indexStart.Union(indexEnd)
	elem := arr

	for {
		g.Synchronize(follow)
		g.parseIndexType(elem)

		tok := g.Synchronize(follow)
		switch {
		case tok.Type == token.COMMA:
			next := intermediate.NewTypeSpec(intermediate.FormArray)
			elem.ElementType = next
			elem = next
			g.NextToken()
		case indexEnd.Contains(tok.Type) || tok.Type == token.EOF:
			return elem
		default:
			g.Flag(tok, diag.MISSING_COMMA)
		}
	}
}

func (g *grammar) parseIndexType(arr *intermediate.TypeSpec) {
	tok := g.CurrentToken()
	t := g.parseSimpleType()
	if t == nil {
		arr.IndexType = intermediate.UndefinedType
		return
	}
	arr.IndexType = t

	switch t.Form {
	case intermediate.FormSubrange:
		arr.ElementCount = t.MaxValue - t.MinValue + 1
	case intermediate.FormEnumeration:
		arr.ElementCount = t.EnumCount()
	default:
		if !intermediate.IsUndefined(t) {
			g.Flag(tok, diag.INVALID_INDEX_TYPE)
		}
	}
}

// parseRecordType parses "record fields end". The fields get their own
// scope, kept on the type.
func (g *grammar) parseRecordType() *intermediate.TypeSpec {
	rec := intermediate.NewTypeSpec(intermediate.FormRecord)

	g.NextToken() // "record"
	rec.Fields = g.Stack.Push()
	g.parseVariableDeclarations(intermediate.DefnField)
	g.Stack.Pop()

	tok := g.Synchronize(varSectionStart.With(token.END, token.SEMICOLON))
	if tok.Type == token.END {
		g.NextToken()
	} else {
		g.Flag(tok, diag.MISSING_END)
	}
	return rec
}
