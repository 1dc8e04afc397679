// Package subc is the subC dialect, a small subset of C: its lexicon, its
// operator table and the grammar for global declarations, routines and
// statements.
package subc

import (
	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/parser"
	"github.com/simonpal34/Compiler/pkg/scanner"
	"github.com/simonpal34/Compiler/pkg/token"
)

var Lexicon = &scanner.Lexicon{
	Reserved: map[string]token.Type{
		"break": token.BREAK, "case": token.CASE, "char": token.CHAR, "const": token.CONST,
		"continue": token.CONTINUE, "default": token.DEFAULT, "do": token.DO,
		"double": token.DOUBLE, "else": token.ELSE, "false": token.FALSE,
		"float": token.FLOAT, "for": token.FOR, "if": token.IF, "int": token.INT,
		"return": token.RETURN, "true": token.TRUE, "void": token.VOID, "while": token.WHILE,
	},
	Symbols: map[string]token.Type{
		"+": token.PLUS, "-": token.MINUS, "*": token.STAR, "/": token.SLASH,
		"%": token.MOD, "=": token.ASSIGN, "==": token.EQUALS, "!=": token.NOT_EQUALS,
		"<": token.LESS_THAN, "<=": token.LESS_EQUALS, ">": token.GREATER_THAN,
		">=": token.GREATER_EQUALS, "!": token.NOT, "&&": token.AND, "||": token.OR,
		".": token.DOT, ",": token.COMMA, ";": token.SEMICOLON, ":": token.COLON,
		"(": token.LEFT_PAREN, ")": token.RIGHT_PAREN, "[": token.LEFT_BRACKET,
		"]": token.RIGHT_BRACKET, "{": token.LEFT_BRACE, "}": token.RIGHT_BRACE,
	},
	Comments: []scanner.Comment{
		{Open: "/*", Close: "*/"},
		{Open: "//"},
	},
	Quotes:     `'"`,
	Escapes:    true,
	Underscore: true,
}

var Lang = &parser.Lang{
	Name: "subc",
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
		token.MOD:   intermediate.NodeMod,
		token.AND:   intermediate.NodeAnd,
	},
	ExprStart: token.NewSet(token.PLUS, token.MINUS, token.IDENTIFIER, token.INTEGER,
		token.REAL, token.STRING, token.NOT, token.LEFT_PAREN, token.TRUE, token.FALSE),
	RelationalType: intermediate.IntegerType,
	LenientLogic:   true,
	VoidValue:      diag.INVALID_ASSIGNMENT_VOID,
}

// Predefine installs the standard scope for subC: the shared predefined
// names plus printf.
func Predefine(stack *intermediate.Stack) {
	intermediate.Predefine(stack)
	intermediate.DefineStandardRoutine(stack, "printf", intermediate.DefnProcedure, intermediate.RoutinePrintf)
}

// Synchronization sets.
var (
	typeStart = token.NewSet(token.INT, token.CHAR, token.FLOAT, token.DOUBLE,
		token.VOID)
	declarationStart = typeStart.With(token.IDENTIFIER)

	stmtStart = typeStart.With(token.LEFT_BRACE, token.IF, token.WHILE, token.DO,
		token.FOR, token.RETURN, token.IDENTIFIER, token.SEMICOLON, token.BREAK,
		token.CONTINUE, token.CASE, token.DEFAULT, token.CONST)
	stmtFollow = token.NewSet(token.SEMICOLON, token.RIGHT_BRACE, token.ELSE)
)
