package pascal

import (
	"reflect"
	"testing"

	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/parser"
	"github.com/simonpal34/Compiler/pkg/scanner"
	"github.com/simonpal34/Compiler/pkg/source"
)

func translate(src string) (*intermediate.Entry, *parser.Parser) {
	errs := diag.NewHandler(0)
	stack := intermediate.NewStack()
	intermediate.Predefine(stack)
	p := parser.New(scanner.New(source.FromString(src), Lexicon, errs), Lang, stack, errs)
	return Parse(p, "prog"), p
}

func codes(p *parser.Parser) []diag.Code {
	var out []diag.Code
	for _, d := range p.Errors.Diagnostics() {
		out = append(out, d.Code)
	}
	return out
}

// body formats the first statement of the program's compound statement.
func body(program *intermediate.Entry) string {
	return intermediate.Format(program.ICode.Root().Child(0))
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name   string
		stmt   string
		format string
	}{
		{
			"for",
			"for i := 1 to 3 do x := x + i",
			"COMPOUND[ASSIGN(i,1), LOOP[TEST[GT(i,3)], ASSIGN(x,ADD(x,i)), ASSIGN(i,ADD(i,1))]]",
		},
		{
			"downto",
			"for i := 3 downto 1 do x := i",
			"COMPOUND[ASSIGN(i,3), LOOP[TEST[LT(i,1)], ASSIGN(x,i), ASSIGN(i,SUBTRACT(i,1))]]",
		},
		{
			"repeat",
			"repeat x := x + 1 until x = 5",
			"LOOP[ASSIGN(x,ADD(x,1)), TEST[EQ(x,5)]]",
		},
		{
			"if",
			"if x > 0 then begin y := 1 end",
			"IF[GT(x,0), COMPOUND[ASSIGN(y,1)]]",
		},
		{
			"if else",
			"if x > 0 then y := 1 else y := 2",
			"IF[GT(x,0), ASSIGN(y,1), ASSIGN(y,2)]",
		},
		{
			"while",
			"while x < 10 do x := x * 2",
			"LOOP[TEST[NOT[LT(x,10)]], ASSIGN(x,MULTIPLY(x,2))]",
		},
		{
			"call",
			"writeln('x = ', x:4)",
			`CALL:writeln(PARAMETERS(WRITE_PARM("x = "),WRITE_PARM(x,4)))`,
		},
		{
			"empty",
			";",
			"NO_OP",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := "program t;\nvar i, x, y: integer;\nbegin\n  " + tc.stmt + "\nend.\n"
			program, p := translate(src)
			if got := body(program); got != tc.format {
				t.Errorf("expected %s, got %s", tc.format, got)
			}
			if got := codes(p); got != nil {
				t.Errorf("expected no diagnostics, got %v", got)
			}
		})
	}
}

func TestProgramStructure(t *testing.T) {
	src := `program t(input, output);
var x: integer;
procedure outer;
var y: real;
  procedure inner(var z: real);
  begin z := y + x end;
begin inner(y) end;
begin outer end.
`
	program, p := translate(src)
	if got := codes(p); got != nil {
		t.Fatalf("expected no diagnostics, got %v", got)
	}

	if program.Defn != intermediate.DefnProgram || program.Name() != "t" {
		t.Errorf("program: got %s %s", program.Defn, program.Name())
	}
	if p.Stack.ProgramID() != program || p.Stack.Global().Lookup("t") != program {
		t.Errorf("program entry must be the level 0 program id")
	}
	if program.SymTab.NestingLevel() != 1 {
		t.Errorf("program scope: expected level 1, got %d", program.SymTab.NestingLevel())
	}

	parm := program.SymTab.Lookup("input")
	if parm == nil || parm.Defn != intermediate.DefnProgramParm || parm.Slot != -1 {
		t.Errorf("program parameter input: got %+v", parm)
	}
	if x := program.SymTab.Lookup("x"); x == nil || x.Slot != 0 {
		t.Errorf("x: expected slot 0, got %+v", x)
	}

	if len(program.Routines) != 1 {
		t.Fatalf("expected 1 routine, got %d", len(program.Routines))
	}
	outer := program.Routines[0]
	if outer.Name() != "outer" || outer.SymTab.NestingLevel() != 2 || outer.SymTab.MaxSlot() != 1 {
		t.Errorf("outer: got %s level %d slots %d", outer.Name(), outer.SymTab.NestingLevel(), outer.SymTab.MaxSlot())
	}
	if len(outer.Routines) != 1 {
		t.Fatalf("expected 1 nested routine, got %d", len(outer.Routines))
	}
	inner := outer.Routines[0]
	if inner.SymTab.NestingLevel() != 3 {
		t.Errorf("inner: expected level 3, got %d", inner.SymTab.NestingLevel())
	}
	if len(inner.Parms) != 1 || inner.Parms[0].Defn != intermediate.DefnVarParm || inner.Parms[0].Type != intermediate.RealType {
		t.Errorf("inner parameters: got %+v", inner.Parms)
	}
	if got := intermediate.Format(inner.ICode.Root()); got != "COMPOUND[ASSIGN(z,ADD(y,x))]" {
		t.Errorf("inner body: got %s", got)
	}
	if got := intermediate.Format(program.ICode.Root()); got != "COMPOUND[CALL:outer]" {
		t.Errorf("program body: got %s", got)
	}
	if p.Stack.CurrentNestingLevel() != 0 {
		t.Errorf("every scope must be popped, at level %d", p.Stack.CurrentNestingLevel())
	}
}

func TestDeclarations(t *testing.T) {
	src := `program t;
const
  n = 10;
  m = -n;
  pi = 3.14;
  s = 'hi';
type
  point = record x, y: integer end;
  days = (mon, tue, wed);
  row = array[1..3] of point;
  letters = 'a'..'z';
var
  r: row;
  d: days;
  a: array[days] of char;
  grid: array[1..2, 0..4] of real;
begin
  r[2].x := 5;
  d := tue;
  a[mon] := 'z';
  grid[1, 4] := n
end.
`
	program, p := translate(src)
	if got := codes(p); got != nil {
		t.Fatalf("expected no diagnostics, got %v", got)
	}
	scope := program.SymTab

	constants := []struct {
		name  string
		value any
		typ   *intermediate.TypeSpec
	}{
		{"n", 10, intermediate.IntegerType},
		{"m", -10, intermediate.IntegerType},
		{"pi", 3.14, intermediate.RealType},
	}
	for _, c := range constants {
		e := scope.Lookup(c.name)
		if e == nil || e.Defn != intermediate.DefnConstant || e.Value != c.value || e.Type != c.typ {
			t.Errorf("%s: expected %v of %v, got %+v", c.name, c.value, c.typ, e)
		}
	}
	if s := scope.Lookup("s"); !s.Type.IsPascalString() || s.Value != "hi" {
		t.Errorf("s: got %+v", s)
	}

	point := scope.Lookup("point").Type
	if point.Form != intermediate.FormRecord || point.Identifier.Name() != "point" {
		t.Errorf("point: got %s", point.Form)
	}
	if f := point.Fields.Lookup("y"); f == nil || f.Defn != intermediate.DefnField {
		t.Errorf("point.y: got %+v", f)
	}

	days := scope.Lookup("days").Type
	if days.EnumCount() != 3 || scope.Lookup("wed").Value != 2 {
		t.Errorf("days: got %d constants", days.EnumCount())
	}

	row := scope.Lookup("row").Type
	if row.ElementCount != 3 || row.ElementType != point || row.IndexType.MinValue != 1 {
		t.Errorf("row: got %s with %d elements", row.Name(), row.ElementCount)
	}

	letters := scope.Lookup("letters").Type
	if letters.Base != intermediate.CharType || letters.MinValue != 'a' || letters.MaxValue != 'z' {
		t.Errorf("letters: got %+v", letters)
	}

	if a := scope.Lookup("a").Type; a.ElementCount != 3 || a.IndexType != days {
		t.Errorf("a: got %s", a.Name())
	}

	grid := scope.Lookup("grid").Type
	if grid.ElementCount != 2 || grid.ElementType.ElementCount != 5 || grid.ElementType.ElementType != intermediate.RealType {
		t.Errorf("grid: got %s", grid.Name())
	}

	want := []string{
		"ASSIGN(r(SUBSCRIPTS(2),FIELD:x),5)",
		"ASSIGN(d,1)",
		`ASSIGN(a(SUBSCRIPTS(0)),"z")`,
		"ASSIGN(grid(SUBSCRIPTS(1,4)),10)",
	}
	for i, w := range want {
		if got := intermediate.Format(program.ICode.Root().Child(i)); got != w {
			t.Errorf("statement %d: expected %s, got %s", i, w, got)
		}
	}
}

func TestForward(t *testing.T) {
	src := `program t;
var r: integer;
function f(n: integer): integer; forward;
procedure p;
begin r := f(2) end;
function f;
begin f := n * 2 end;
begin p end.
`
	program, p := translate(src)
	if got := codes(p); got != nil {
		t.Fatalf("expected no diagnostics, got %v", got)
	}
	if len(program.Routines) != 2 {
		t.Fatalf("expected 2 routines, got %d", len(program.Routines))
	}
	f := program.Routines[0]
	if f.Routine != intermediate.RoutineDeclared || f.Type != intermediate.IntegerType || len(f.Parms) != 1 {
		t.Errorf("f: got %s returning %v with %d parameters", f.Routine, f.Type, len(f.Parms))
	}
	if got := intermediate.Format(f.ICode.Root()); got != "COMPOUND[ASSIGN(f,MULTIPLY(n,2))]" {
		t.Errorf("f body: got %s", got)
	}

	src = `program t;
function f(n: integer): integer; forward;
function f(n: integer): integer;
begin f := n end;
begin end.
`
	program, p = translate(src)
	if got, want := codes(p), []diag.Code{diag.ALREADY_FORWARDED}; !reflect.DeepEqual(got, want) {
		t.Errorf("repeated heading: expected %v, got %v", want, got)
	}
	if f := program.Routines[0]; len(program.Routines) != 1 || len(f.Parms) != 1 || len(f.SymTab.Entries()) != 1 {
		t.Errorf("the repeated heading must not change f")
	}
}

func TestCase(t *testing.T) {
	src := `program t;
var k, y: integer;
begin
  case k of
    1, 2: y := 1;
    3: y := 2;
    2: y := 3
  end
end.
`
	program, p := translate(src)
	want := "SELECT[k, SELECT_BRANCH[SELECT_CONSTANTS[1, 2], ASSIGN(y,1)], " +
		"SELECT_BRANCH[SELECT_CONSTANTS[3], ASSIGN(y,2)], SELECT_BRANCH[SELECT_CONSTANTS[2], ASSIGN(y,3)]]"
	if got := body(program); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if got, want := codes(p), []diag.Code{diag.CASE_CONSTANT_REUSED}; !reflect.DeepEqual(got, want) {
		t.Errorf("diagnostics: expected %v, got %v", want, got)
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		codes []diag.Code
	}{
		{"missing program", "var x: integer; begin x := 1 end.",
			[]diag.Code{diag.MISSING_PROGRAM}},
		{"missing period", "program t; begin end",
			[]diag.Code{diag.MISSING_PERIOD}},
		{"missing semicolon", "program t; var x: integer; begin x := 1 x := 2 end.",
			[]diag.Code{diag.MISSING_SEMICOLON}},
		{"missing then", "program t; var x: integer; begin if x > 0 x := 1 end.",
			[]diag.Code{diag.MISSING_THEN}},
		{"missing do", "program t; var x: integer; begin while x > 0 x := x - 1 end.",
			[]diag.Code{diag.MISSING_DO}},
		{"condition type", "program t; var x: integer; begin if x then x := 1 end.",
			[]diag.Code{diag.INCOMPATIBLE_TYPES}},
		{"real control", "program t; var r: real; begin for r := 1 to 2 do end.",
			[]diag.Code{diag.INCOMPATIBLE_TYPES}},
		{"undefined", "program t; begin y := 1 end.",
			[]diag.Code{diag.IDENTIFIER_UNDEFINED}},
		{"redefined", "program t; var x: integer; x: real; begin end.",
			[]diag.Code{diag.IDENTIFIER_REDEFINED}},
		{"min greater than max", "program t; type r = 5..1; begin end.",
			[]diag.Code{diag.MIN_GT_MAX}},
		{"anonymous parameter type", "program t; procedure p(a: 1..3); begin end; begin end.",
			[]diag.Code{diag.INVALID_TYPE}},
		{"too many parameters", "program t; procedure p(a, b: integer); begin end; begin p(1, 2, 3, 4) end.",
			[]diag.Code{diag.WRONG_NUMBER_OF_PARMS}},
		{"literal var parameter", "program t; procedure q(var a: integer); begin end; begin q(5) end.",
			[]diag.Code{diag.INVALID_VAR_PARM}},
		{"procedure as value", "program t; var x: integer; procedure p; begin end; begin x := p end.",
			[]diag.Code{diag.INVALID_IDENTIFIER_USAGE}},
		{"missing end", "program t; begin",
			[]diag.Code{diag.MISSING_END, diag.MISSING_PERIOD}},
		{"forward procedure completed as function",
			"program t; procedure p; forward; function p: integer; begin end; begin end.",
			[]diag.Code{diag.ALREADY_FORWARDED}},
		{"forward function completed as procedure",
			"program t; function f: integer; forward; procedure f; begin end; begin end.",
			[]diag.Code{diag.ALREADY_FORWARDED}},
		{"leading procedure", "procedure p; begin end; begin p end.",
			[]diag.Code{diag.MISSING_PROGRAM}},
		{"leading function", "function f: integer; begin f := 1 end; begin end.",
			[]diag.Code{diag.MISSING_PROGRAM}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, p := translate(tc.src)
			if got := codes(p); !reflect.DeepEqual(got, tc.codes) {
				t.Errorf("expected %v, got %v", tc.codes, got)
			}
		})
	}
}

func TestMissingProgramName(t *testing.T) {
	program, _ := translate("begin end.")
	if program.Name() != "prog" || program.Defn != intermediate.DefnProgram {
		t.Errorf("expected the fallback program name, got %s", program.Name())
	}
}

func TestLeadingRoutine(t *testing.T) {
	for _, src := range []string{"procedure p; begin end.", "function f: integer; begin f := 1 end."} {
		program, p := translate(src)
		if program == nil || program.Defn != intermediate.DefnProgram {
			t.Fatalf("%q: expected a program entry, got %v", src, program)
		}
		if got := codes(p); len(got) == 0 || got[0] != diag.MISSING_PROGRAM {
			t.Errorf("%q: expected MISSING_PROGRAM first, got %v", src, got)
		}
		if len(program.Routines) != 1 {
			t.Errorf("%q: expected the routine nested in the program, got %d routines", src, len(program.Routines))
		}
	}

	program, _ := translate("procedure p; begin end; begin p end.")
	if got := body(program); got != "CALL:p" {
		t.Errorf("expected CALL:p, got %s", got)
	}
}

func TestNegativeConstants(t *testing.T) {
	src := `program t;
const k = -10;
type r = -5..-1;
var x: integer;
begin
  case x of
    -1: x := 0;
    1: x := 2
  end
end.
`
	program, p := translate(src)
	if got := codes(p); got != nil {
		t.Fatalf("expected no diagnostics, got %v", got)
	}
	if k := program.SymTab.Lookup("k"); k.Value != -10 {
		t.Errorf("k: expected -10, got %v", k.Value)
	}
	if r := program.SymTab.Lookup("r").Type; r.MinValue != -5 || r.MaxValue != -1 {
		t.Errorf("r: expected -5..-1, got %v..%v", r.MinValue, r.MaxValue)
	}
	labels := program.ICode.Root().Child(0).Child(1).Child(0).Child(0)
	if labels.Value != -1 {
		t.Errorf("case label: expected -1, got %v", labels.Value)
	}
}
