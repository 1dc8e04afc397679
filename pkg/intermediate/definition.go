package intermediate

import "fmt"

// Definition says how an identifier was declared.
type Definition int

const (
	DefnUndefined Definition = iota
	DefnConstant
	DefnEnumConstant
	DefnType
	DefnVariable
	DefnField
	DefnValueParm
	DefnVarParm
	DefnProgramParm
	DefnProgram
	DefnProcedure
	DefnFunction
)

var definitionNames = [...]string{
	DefnUndefined:    "undefined",
	DefnConstant:     "constant",
	DefnEnumConstant: "enumeration constant",
	DefnType:         "type",
	DefnVariable:     "variable",
	DefnField:        "record field",
	DefnValueParm:    "value parameter",
	DefnVarParm:      "VAR parameter",
	DefnProgramParm:  "program parameter",
	DefnProgram:      "program",
	DefnProcedure:    "procedure",
	DefnFunction:     "function",
}

func (d Definition) String() string {
	if int(d) >= 0 && int(d) < len(definitionNames) {
		return definitionNames[d]
	}
	return fmt.Sprintf("Definition(%d)", int(d))
}

// IsRoutine reports whether d names a program, procedure or function.
func (d Definition) IsRoutine() bool {
	return d == DefnProgram || d == DefnProcedure || d == DefnFunction
}

// RoutineCode tells declared routines apart from the standard ones.
type RoutineCode int

const (
	RoutineNone RoutineCode = iota
	RoutineDeclared
	RoutineForward

	RoutineRead
	RoutineReadln
	RoutineWrite
	RoutineWriteln
	RoutinePrintf

	RoutineAbs
	RoutineArctan
	RoutineChr
	RoutineCos
	RoutineEOF
	RoutineEOLN
	RoutineExp
	RoutineLn
	RoutineOdd
	RoutineOrd
	RoutinePred
	RoutineRound
	RoutineSin
	RoutineSqr
	RoutineSqrt
	RoutineSucc
	RoutineTrunc
)

var routineNames = [...]string{
	RoutineNone:     "none",
	RoutineDeclared: "declared",
	RoutineForward:  "forward",
	RoutineRead:     "read",
	RoutineReadln:   "readln",
	RoutineWrite:    "write",
	RoutineWriteln:  "writeln",
	RoutinePrintf:   "printf",
	RoutineAbs:      "abs",
	RoutineArctan:   "arctan",
	RoutineChr:      "chr",
	RoutineCos:      "cos",
	RoutineEOF:      "eof",
	RoutineEOLN:     "eoln",
	RoutineExp:      "exp",
	RoutineLn:       "ln",
	RoutineOdd:      "odd",
	RoutineOrd:      "ord",
	RoutinePred:     "pred",
	RoutineRound:    "round",
	RoutineSin:      "sin",
	RoutineSqr:      "sqr",
	RoutineSqrt:     "sqrt",
	RoutineSucc:     "succ",
	RoutineTrunc:    "trunc",
}

func (c RoutineCode) String() string {
	if int(c) >= 0 && int(c) < len(routineNames) {
		return routineNames[c]
	}
	return fmt.Sprintf("RoutineCode(%d)", int(c))
}

// IsStandard reports whether c is one of the predefined routines.
func (c RoutineCode) IsStandard() bool {
	return c >= RoutineRead
}
