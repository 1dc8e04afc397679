package intermediate

var standardProcedures = []struct {
	name string
	code RoutineCode
}{
	{"read", RoutineRead},
	{"readln", RoutineReadln},
	{"write", RoutineWrite},
	{"writeln", RoutineWriteln},
}

var standardFunctions = []struct {
	name string
	code RoutineCode
}{
	{"abs", RoutineAbs},
	{"arctan", RoutineArctan},
	{"chr", RoutineChr},
	{"cos", RoutineCos},
	{"eof", RoutineEOF},
	{"eoln", RoutineEOLN},
	{"exp", RoutineExp},
	{"ln", RoutineLn},
	{"odd", RoutineOdd},
	{"ord", RoutineOrd},
	{"pred", RoutinePred},
	{"round", RoutineRound},
	{"sin", RoutineSin},
	{"sqr", RoutineSqr},
	{"sqrt", RoutineSqrt},
	{"succ", RoutineSucc},
	{"trunc", RoutineTrunc},
}

// Predefine installs the predefined types, constants and standard routines
// into the level 0 scope of stack.
func Predefine(stack *Stack) {
	global := stack.Global()

	for _, t := range []*TypeSpec{IntegerType, RealType, BooleanType, CharType} {
		e := global.Enter(t.Primitive().String())
		e.Defn = DefnType
		e.Type = t
	}

	for i, name := range []string{"false", "true"} {
		e := global.Enter(name)
		e.Defn = DefnEnumConstant
		e.Type = BooleanType
		e.Value = i
	}

	for _, r := range standardProcedures {
		DefineStandardRoutine(stack, r.name, DefnProcedure, r.code)
	}
	for _, r := range standardFunctions {
		DefineStandardRoutine(stack, r.name, DefnFunction, r.code)
	}
}

// DefineStandardRoutine adds one predefined routine to the level 0 scope.
func DefineStandardRoutine(stack *Stack, name string, defn Definition, code RoutineCode) *Entry {
	e := stack.Global().Enter(name)
	e.Defn = defn
	e.Routine = code
	return e
}
