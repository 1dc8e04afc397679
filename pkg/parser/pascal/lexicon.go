// Package pascal is the Pascal dialect: its lexicon, its operator table
// and the grammar for programs, routines, declarations and statements.
package pascal

import (
	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/parser"
	"github.com/simonpal34/Compiler/pkg/scanner"
	"github.com/simonpal34/Compiler/pkg/token"
)

var Lexicon = &scanner.Lexicon{
	Reserved: map[string]token.Type{
		"and": token.AND, "array": token.ARRAY, "begin": token.BEGIN, "case": token.CASE,
		"const": token.CONST, "div": token.DIV, "do": token.DO, "downto": token.DOWNTO,
		"else": token.ELSE, "end": token.END, "file": token.FILE, "for": token.FOR,
		"function": token.FUNCTION, "goto": token.GOTO, "if": token.IF, "in": token.IN,
		"label": token.LABEL, "mod": token.MOD, "nil": token.NIL, "not": token.NOT,
		"of": token.OF, "or": token.OR, "packed": token.PACKED, "procedure": token.PROCEDURE,
		"program": token.PROGRAM, "record": token.RECORD, "repeat": token.REPEAT,
		"set": token.SET, "then": token.THEN, "to": token.TO, "type": token.TYPE,
		"until": token.UNTIL, "var": token.VAR, "while": token.WHILE, "with": token.WITH,
	},
	Symbols: map[string]token.Type{
		"+": token.PLUS, "-": token.MINUS, "*": token.STAR, "/": token.SLASH,
		":=": token.ASSIGN, ".": token.DOT, ",": token.COMMA, ";": token.SEMICOLON,
		":": token.COLON, "=": token.EQUALS, "<>": token.NOT_EQUALS,
		"<": token.LESS_THAN, "<=": token.LESS_EQUALS, ">=": token.GREATER_EQUALS,
		">": token.GREATER_THAN, "(": token.LEFT_PAREN, ")": token.RIGHT_PAREN,
		"[": token.LEFT_BRACKET, "]": token.RIGHT_BRACKET, "^": token.UP_ARROW,
		"..": token.DOT_DOT,
	},
	Comments: []scanner.Comment{
		{Open: "{", Close: "}"},
		{Open: "(*", Close: "*)"},
		{Open: "//"},
	},
	Quotes: "'",
}

var Lang = &parser.Lang{
	Name: "pascal",
	RelOps: map[token.Type]intermediate.NodeType{
		token.EQUALS:         intermediate.NodeEQ,
		token.NOT_EQUALS:     intermediate.NodeNE,
		token.LESS_THAN:      intermediate.NodeLT,
		token.LESS_EQUALS:    intermediate.NodeLE,
		token.GREATER_THAN:   intermediate.NodeGT,
		token.GREATER_EQUALS: intermediate.NodeGE,
	},
	AddOps: map[token.Type]intermediate.NodeType{
		token.PLUS:  intermediate.NodeAdd,
		token.MINUS: intermediate.NodeSubtract,
		token.OR:    intermediate.NodeOr,
	},
	MulOps: map[token.Type]intermediate.NodeType{
		token.STAR:  intermediate.NodeMultiply,
		token.SLASH: intermediate.NodeFloatDivide,
		token.DIV:   intermediate.NodeIntegerDivide,
		token.MOD:   intermediate.NodeMod,
		token.AND:   intermediate.NodeAnd,
	},
	ExprStart: token.NewSet(token.PLUS, token.MINUS, token.IDENTIFIER, token.INTEGER,
		token.REAL, token.STRING, token.NOT, token.LEFT_PAREN),
	RelationalType: intermediate.BooleanType,
	VoidValue:      diag.INVALID_IDENTIFIER_USAGE,
}

// Synchronization sets.
var (
	declarationStart = token.NewSet(token.CONST, token.TYPE, token.VAR,
		token.PROCEDURE, token.FUNCTION, token.BEGIN)
	typeSectionStart = declarationStart.Without(token.CONST)
	varSectionStart  = typeSectionStart.Without(token.TYPE)
	routineStart     = varSectionStart.Without(token.VAR)

	stmtStart = token.NewSet(token.BEGIN, token.CASE, token.FOR, token.IF,
		token.REPEAT, token.WHILE, token.IDENTIFIER, token.SEMICOLON)
	stmtFollow = token.NewSet(token.SEMICOLON, token.END, token.ELSE,
		token.UNTIL, token.DOT)

	constantStart = token.NewSet(token.IDENTIFIER, token.INTEGER, token.REAL,
		token.PLUS, token.MINUS, token.STRING, token.SEMICOLON)
)
