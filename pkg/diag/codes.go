// Package diag holds the translator's diagnostic codes and the handler
// that collects them.
package diag

import "fmt"

// Code identifies a syntax or semantic error.
type Code int

const (
	ALREADY_FORWARDED Code = iota + 1
	CASE_CONSTANT_REUSED
	IDENTIFIER_REDEFINED
	IDENTIFIER_UNDEFINED
	INCOMPATIBLE_ASSIGNMENT
	INCOMPATIBLE_TYPES
	INVALID_ASSIGNMENT
	INVALID_ASSIGNMENT_VOID
	INVALID_CHARACTER
	INVALID_CONSTANT
	INVALID_EXPONENT
	INVALID_EXPRESSION
	INVALID_FIELD
	INVALID_FRACTION
	INVALID_IDENTIFIER_USAGE
	INVALID_INDEX_TYPE
	INVALID_NUMBER
	INVALID_STATEMENT
	INVALID_SUBRANGE_TYPE
	INVALID_TARGET
	INVALID_TYPE
	INVALID_VAR_PARM
	MIN_GT_MAX
	MISSING_BEGIN
	MISSING_COLON
	MISSING_COLON_EQUALS
	MISSING_COMMA
	MISSING_CONSTANT
	MISSING_DO
	MISSING_DOT_DOT
	MISSING_END
	MISSING_EQUALS
	MISSING_FOR_CONTROL
	MISSING_IDENTIFIER
	MISSING_LEFT_BRACE
	MISSING_LEFT_BRACKET
	MISSING_LEFT_PAREN
	MISSING_OF
	MISSING_PERIOD
	MISSING_PROGRAM
	MISSING_RIGHT_BRACE
	MISSING_RIGHT_BRACKET
	MISSING_RIGHT_PAREN
	MISSING_SEMICOLON
	MISSING_THEN
	MISSING_TO_DOWNTO
	MISSING_UNTIL
	MISSING_VARIABLE
	MISSING_WHILE
	NOT_CONSTANT_IDENTIFIER
	NOT_RECORD_VARIABLE
	NOT_TYPE_IDENTIFIER
	RANGE_INTEGER
	RANGE_REAL
	TOO_MANY_SUBSCRIPTS
	UNEXPECTED_EOF
	UNEXPECTED_TOKEN
	UNIMPLEMENTED
	UNTERMINATED_STRING
	WRONG_NUMBER_OF_PARMS

	// Fatal errors.
	IO_ERROR
	TOO_MANY_ERRORS
)

var messages = [...]string{
	ALREADY_FORWARDED:        "Already specified in FORWARD",
	CASE_CONSTANT_REUSED:     "CASE constant reused",
	IDENTIFIER_REDEFINED:     "Redefined identifier",
	IDENTIFIER_UNDEFINED:     "Undefined identifier",
	INCOMPATIBLE_ASSIGNMENT:  "Incompatible assignment",
	INCOMPATIBLE_TYPES:       "Incompatible types",
	INVALID_ASSIGNMENT:       "Invalid assignment statement",
	INVALID_ASSIGNMENT_VOID:  "Cannot use a void routine as a value",
	INVALID_CHARACTER:        "Invalid character",
	INVALID_CONSTANT:         "Invalid constant",
	INVALID_EXPONENT:         "Invalid exponent",
	INVALID_EXPRESSION:       "Invalid expression",
	INVALID_FIELD:            "Invalid field",
	INVALID_FRACTION:         "Invalid fraction",
	INVALID_IDENTIFIER_USAGE: "Invalid identifier usage",
	INVALID_INDEX_TYPE:       "Invalid index type",
	INVALID_NUMBER:           "Invalid number",
	INVALID_STATEMENT:        "Invalid statement",
	INVALID_SUBRANGE_TYPE:    "Invalid subrange type",
	INVALID_TARGET:           "Invalid assignment target",
	INVALID_TYPE:             "Invalid type",
	INVALID_VAR_PARM:         "Invalid VAR parameter",
	MIN_GT_MAX:               "Min limit greater than max limit",
	MISSING_BEGIN:            "Missing BEGIN",
	MISSING_COLON:            "Missing :",
	MISSING_COLON_EQUALS:     "Missing :=",
	MISSING_COMMA:            "Missing ,",
	MISSING_CONSTANT:         "Missing constant",
	MISSING_DO:               "Missing DO",
	MISSING_DOT_DOT:          "Missing ..",
	MISSING_END:              "Missing END",
	MISSING_EQUALS:           "Missing =",
	MISSING_FOR_CONTROL:      "Invalid FOR control variable",
	MISSING_IDENTIFIER:       "Missing identifier",
	MISSING_LEFT_BRACE:       "Missing {",
	MISSING_LEFT_BRACKET:     "Missing [",
	MISSING_LEFT_PAREN:       "Missing (",
	MISSING_OF:               "Missing OF",
	MISSING_PERIOD:           "Missing .",
	MISSING_PROGRAM:          "Missing PROGRAM",
	MISSING_RIGHT_BRACE:      "Missing }",
	MISSING_RIGHT_BRACKET:    "Missing ]",
	MISSING_RIGHT_PAREN:      "Missing )",
	MISSING_SEMICOLON:        "Missing ;",
	MISSING_THEN:             "Missing THEN",
	MISSING_TO_DOWNTO:        "Missing TO or DOWNTO",
	MISSING_UNTIL:            "Missing UNTIL",
	MISSING_VARIABLE:         "Missing variable",
	MISSING_WHILE:            "Missing WHILE",
	NOT_CONSTANT_IDENTIFIER:  "Not a constant identifier",
	NOT_RECORD_VARIABLE:      "Not a record variable",
	NOT_TYPE_IDENTIFIER:      "Not a type identifier",
	RANGE_INTEGER:            "Integer literal out of range",
	RANGE_REAL:               "Real literal out of range",
	TOO_MANY_SUBSCRIPTS:      "Too many subscripts",
	UNEXPECTED_EOF:           "Unexpected end of file",
	UNEXPECTED_TOKEN:         "Unexpected token",
	UNIMPLEMENTED:            "Unimplemented feature",
	UNTERMINATED_STRING:      "Unterminated string",
	WRONG_NUMBER_OF_PARMS:    "Wrong number of actual parameters",

	IO_ERROR:        "Object I/O error",
	TOO_MANY_ERRORS: "Too many syntax errors",
}

var names = [...]string{
	ALREADY_FORWARDED:        "ALREADY_FORWARDED",
	CASE_CONSTANT_REUSED:     "CASE_CONSTANT_REUSED",
	IDENTIFIER_REDEFINED:     "IDENTIFIER_REDEFINED",
	IDENTIFIER_UNDEFINED:     "IDENTIFIER_UNDEFINED",
	INCOMPATIBLE_ASSIGNMENT:  "INCOMPATIBLE_ASSIGNMENT",
	INCOMPATIBLE_TYPES:       "INCOMPATIBLE_TYPES",
	INVALID_ASSIGNMENT:       "INVALID_ASSIGNMENT",
	INVALID_ASSIGNMENT_VOID:  "INVALID_ASSIGNMENT_VOID",
	INVALID_CHARACTER:        "INVALID_CHARACTER",
	INVALID_CONSTANT:         "INVALID_CONSTANT",
	INVALID_EXPONENT:         "INVALID_EXPONENT",
	INVALID_EXPRESSION:       "INVALID_EXPRESSION",
	INVALID_FIELD:            "INVALID_FIELD",
	INVALID_FRACTION:         "INVALID_FRACTION",
	INVALID_IDENTIFIER_USAGE: "INVALID_IDENTIFIER_USAGE",
	INVALID_INDEX_TYPE:       "INVALID_INDEX_TYPE",
	INVALID_NUMBER:           "INVALID_NUMBER",
	INVALID_STATEMENT:        "INVALID_STATEMENT",
	INVALID_SUBRANGE_TYPE:    "INVALID_SUBRANGE_TYPE",
	INVALID_TARGET:           "INVALID_TARGET",
	INVALID_TYPE:             "INVALID_TYPE",
	INVALID_VAR_PARM:         "INVALID_VAR_PARM",
	MIN_GT_MAX:               "MIN_GT_MAX",
	MISSING_BEGIN:            "MISSING_BEGIN",
	MISSING_COLON:            "MISSING_COLON",
	MISSING_COLON_EQUALS:     "MISSING_COLON_EQUALS",
	MISSING_COMMA:            "MISSING_COMMA",
	MISSING_CONSTANT:         "MISSING_CONSTANT",
	MISSING_DO:               "MISSING_DO",
	MISSING_DOT_DOT:          "MISSING_DOT_DOT",
	MISSING_END:              "MISSING_END",
	MISSING_EQUALS:           "MISSING_EQUALS",
	MISSING_FOR_CONTROL:      "MISSING_FOR_CONTROL",
	MISSING_IDENTIFIER:       "MISSING_IDENTIFIER",
	MISSING_LEFT_BRACE:       "MISSING_LEFT_BRACE",
	MISSING_LEFT_BRACKET:     "MISSING_LEFT_BRACKET",
	MISSING_LEFT_PAREN:       "MISSING_LEFT_PAREN",
	MISSING_OF:               "MISSING_OF",
	MISSING_PERIOD:           "MISSING_PERIOD",
	MISSING_PROGRAM:          "MISSING_PROGRAM",
	MISSING_RIGHT_BRACE:      "MISSING_RIGHT_BRACE",
	MISSING_RIGHT_BRACKET:    "MISSING_RIGHT_BRACKET",
	MISSING_RIGHT_PAREN:      "MISSING_RIGHT_PAREN",
	MISSING_SEMICOLON:        "MISSING_SEMICOLON",
	MISSING_THEN:             "MISSING_THEN",
	MISSING_TO_DOWNTO:        "MISSING_TO_DOWNTO",
	MISSING_UNTIL:            "MISSING_UNTIL",
	MISSING_VARIABLE:         "MISSING_VARIABLE",
	MISSING_WHILE:            "MISSING_WHILE",
	NOT_CONSTANT_IDENTIFIER:  "NOT_CONSTANT_IDENTIFIER",
	NOT_RECORD_VARIABLE:      "NOT_RECORD_VARIABLE",
	NOT_TYPE_IDENTIFIER:      "NOT_TYPE_IDENTIFIER",
	RANGE_INTEGER:            "RANGE_INTEGER",
	RANGE_REAL:               "RANGE_REAL",
	TOO_MANY_SUBSCRIPTS:      "TOO_MANY_SUBSCRIPTS",
	UNEXPECTED_EOF:           "UNEXPECTED_EOF",
	UNEXPECTED_TOKEN:         "UNEXPECTED_TOKEN",
	UNIMPLEMENTED:            "UNIMPLEMENTED",
	UNTERMINATED_STRING:      "UNTERMINATED_STRING",
	WRONG_NUMBER_OF_PARMS:    "WRONG_NUMBER_OF_PARMS",

	IO_ERROR:        "IO_ERROR",
	TOO_MANY_ERRORS: "TOO_MANY_ERRORS",
}

// String returns the code's identifier, e.g. "MISSING_SEMICOLON".
func (c Code) String() string {
	if c > 0 && int(c) < len(names) && names[c] != "" {
		return names[c]
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Message returns the human readable text of the code.
func (c Code) Message() string {
	if c > 0 && int(c) < len(messages) && messages[c] != "" {
		return messages[c]
	}
	return c.String()
}

// Fatal reports whether the code aborts the translation.
func (c Code) Fatal() bool {
	return c == IO_ERROR || c == TOO_MANY_ERRORS
}

// Status is the process exit status for a fatal code.
func (c Code) Status() int {
	switch c {
	case IO_ERROR:
		return 101
	case TOO_MANY_ERRORS:
		return 102
	}
	return 1
}
