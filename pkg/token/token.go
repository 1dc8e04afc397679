// Package token defines the token kinds shared by the Pascal and subC
// scanners. A kind has one meaning in both dialects even when the source
// text differs: ASSIGN is ":=" in Pascal and "=" in subC, EQUALS is "=" in
// Pascal and "==" in subC.
package token

import "fmt"

// Type identifies the category of a scanned token.
type Type int

const (
	EOF   Type = iota // sentinel: end of input
	ERROR             // scanner error; Value holds the diag.Code

	// Literals
	IDENTIFIER
	INTEGER
	REAL
	STRING

	// Reserved words
	AND
	ARRAY
	BEGIN
	BREAK
	CASE
	CHAR
	CONST
	CONTINUE
	DEFAULT
	DIV
	DO
	DOUBLE
	DOWNTO
	ELSE
	END
	FALSE
	FILE
	FLOAT
	FOR
	FUNCTION
	GOTO
	IF
	IN
	INT
	LABEL
	MOD
	NIL
	NOT
	OF
	OR
	PACKED
	PROCEDURE
	PROGRAM
	RECORD
	REPEAT
	RETURN
	SET
	THEN
	TO
	TRUE
	TYPE
	UNTIL
	VAR
	VOID
	WHILE
	WITH

	// Special symbols
	PLUS           // +
	MINUS          // -
	STAR           // *
	SLASH          // /
	ASSIGN         // := or =
	DOT            // .
	COMMA          // ,
	SEMICOLON      // ;
	COLON          // :
	EQUALS         // = or ==
	NOT_EQUALS     // <> or !=
	LESS_THAN      // <
	LESS_EQUALS    // <=
	GREATER_EQUALS // >=
	GREATER_THAN   // >
	LEFT_PAREN     // (
	RIGHT_PAREN    // )
	LEFT_BRACKET   // [
	RIGHT_BRACKET  // ]
	LEFT_BRACE     // {
	RIGHT_BRACE    // }
	UP_ARROW       // ^
	DOT_DOT        // ..

	numTypes
)

var typeNames = [...]string{
	EOF:        "EOF",
	ERROR:      "ERROR",
	IDENTIFIER: "IDENTIFIER",
	INTEGER:    "INTEGER",
	REAL:       "REAL",
	STRING:     "STRING",

	AND:       "AND",
	ARRAY:     "ARRAY",
	BEGIN:     "BEGIN",
	BREAK:     "BREAK",
	CASE:      "CASE",
	CHAR:      "CHAR",
	CONST:     "CONST",
	CONTINUE:  "CONTINUE",
	DEFAULT:   "DEFAULT",
	DIV:       "DIV",
	DO:        "DO",
	DOUBLE:    "DOUBLE",
	DOWNTO:    "DOWNTO",
	ELSE:      "ELSE",
	END:       "END",
	FALSE:     "FALSE",
	FILE:      "FILE",
	FLOAT:     "FLOAT",
	FOR:       "FOR",
	FUNCTION:  "FUNCTION",
	GOTO:      "GOTO",
	IF:        "IF",
	IN:        "IN",
	INT:       "INT",
	LABEL:     "LABEL",
	MOD:       "MOD",
	NIL:       "NIL",
	NOT:       "NOT",
	OF:        "OF",
	OR:        "OR",
	PACKED:    "PACKED",
	PROCEDURE: "PROCEDURE",
	PROGRAM:   "PROGRAM",
	RECORD:    "RECORD",
	REPEAT:    "REPEAT",
	RETURN:    "RETURN",
	SET:       "SET",
	THEN:      "THEN",
	TO:        "TO",
	TRUE:      "TRUE",
	TYPE:      "TYPE",
	UNTIL:     "UNTIL",
	VAR:       "VAR",
	VOID:      "VOID",
	WHILE:     "WHILE",
	WITH:      "WITH",

	PLUS:           "PLUS",
	MINUS:          "MINUS",
	STAR:           "STAR",
	SLASH:          "SLASH",
	ASSIGN:         "ASSIGN",
	DOT:            "DOT",
	COMMA:          "COMMA",
	SEMICOLON:      "SEMICOLON",
	COLON:          "COLON",
	EQUALS:         "EQUALS",
	NOT_EQUALS:     "NOT_EQUALS",
	LESS_THAN:      "LESS_THAN",
	LESS_EQUALS:    "LESS_EQUALS",
	GREATER_EQUALS: "GREATER_EQUALS",
	GREATER_THAN:   "GREATER_THAN",
	LEFT_PAREN:     "LEFT_PAREN",
	RIGHT_PAREN:    "RIGHT_PAREN",
	LEFT_BRACKET:   "LEFT_BRACKET",
	RIGHT_BRACKET:  "RIGHT_BRACKET",
	LEFT_BRACE:     "LEFT_BRACE",
	RIGHT_BRACE:    "RIGHT_BRACE",
	UP_ARROW:       "UP_ARROW",
	DOT_DOT:        "DOT_DOT",
}

func (tt Type) String() string {
	if int(tt) >= 0 && int(tt) < len(typeNames) && typeNames[tt] != "" {
		return typeNames[tt]
	}
	return fmt.Sprintf("Type(%d)", int(tt))
}

// Token is a single scanned token.
type Token struct {
	Type  Type
	Text  string // source text as written
	Value any    // int, float64, string, or diag.Code for ERROR tokens
	Line  int
	Pos   int // position of the first character within the line

	// Follow is the first non-blank character after the token on the same
	// line. subC uses it to tell "int f(" from "int f;".
	Follow rune
}

func (t Token) String() string {
	return fmt.Sprintf("%-14s %-14q  line %d", t.Type, t.Text, t.Line)
}
