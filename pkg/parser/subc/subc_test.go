package subc

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
	Predefine(stack)
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

func TestStatements(t *testing.T) {
	tests := []struct {
		name   string
		stmt   string
		format string
	}{
		{
			"if",
			"if (x > 0) { y = 1; }",
			"IF[GT(x,0), COMPOUND[ASSIGN(y,1)]]",
		},
		{
			"if else",
			"if (x) y = 1; else y = 2;",
			"IF[x, ASSIGN(y,1), ASSIGN(y,2)]",
		},
		{
			"while",
			"while (x < 10) x = x * 2;",
			"LOOP[TEST[NOT[LT(x,10)]], ASSIGN(x,MULTIPLY(x,2))]",
		},
		{
			"do while",
			"do x = x + 1; while (x != 5);",
			"LOOP[ASSIGN(x,ADD(x,1)), TEST[NOT[NE(x,5)]]]",
		},
		{
			"for",
			"for (i = 0; i < 3; i = i + 1) x = x + i;",
			"COMPOUND[ASSIGN(i,0), LOOP[TEST[NOT[LT(i,3)]], ASSIGN(x,ADD(x,i)), ASSIGN(i,ADD(i,1))]]",
		},
		{
			"for without clauses",
			"for (;;) x = 1;",
			"COMPOUND[LOOP[ASSIGN(x,1)]]",
		},
		{
			"logic",
			"x = !y && x;",
			"ASSIGN(x,AND(NOT[y],x))",
		},
		{
			"mod",
			"x = x % 3;",
			"ASSIGN(x,MOD(x,3))",
		},
		{
			"printf",
			`printf("x = %d", x);`,
			`CALL:printf(PARAMETERS(WRITE_PARM("x = %d"),WRITE_PARM(x)))`,
		},
		{
			"empty",
			";",
			"NO_OP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, p := translate("int main() { int x, y, i; " + tt.stmt + " }")
			if n := p.Errors.Count(); n != 0 {
				t.Fatalf("expected no errors, got %v", codes(p))
			}
			got := intermediate.Format(program.ICode.Root().Child(0))
			if got != tt.format {
				t.Errorf("expected %s, got %s", tt.format, got)
			}
		})
	}
}

func TestIfWithoutElse(t *testing.T) {
	program, p := translate("int main() { int x, y; if (x > 0) { y = 1; } }")
	if n := p.Errors.Count(); n != 0 {
		t.Fatalf("expected no errors, got %v", codes(p))
	}
	n := program.ICode.Root().Child(0)
	if n.Type != intermediate.NodeIf {
		t.Fatalf("expected IF, got %v", n.Type)
	}
	if got := len(n.Children()); got != 2 {
		t.Errorf("expected 2 children, got %d", got)
	}
}

func TestProgramStructure(t *testing.T) {
	src := `
int count;
float rate[10];

/* the sum of two numbers */
int add(int a, int b) {
	return a + b;
}

void show(int v) {
	printf("%d", v);  // one value
}

int main() {
	int x;
	x = add(1, 2);
	show(x);
	return 0;
}
`
	program, p := translate(src)
	if n := p.Errors.Count(); n != 0 {
		t.Fatalf("expected no errors, got %v", codes(p))
	}

	if program.Name() != "prog" || program.Defn != intermediate.DefnProgram {
		t.Errorf("program: expected prog, got %s %v", program.Name(), program.Defn)
	}
	if got := program.SymTab.NestingLevel(); got != 1 {
		t.Errorf("globals: expected level 1, got %d", got)
	}
	if program.Main == nil || program.Main.Name() != "main" {
		t.Fatalf("expected main to be linked to the program")
	}
	if program.ICode != program.Main.ICode {
		t.Errorf("expected the program body to be main's body")
	}

	var names []string
	for _, r := range program.Routines {
		names = append(names, r.Name())
	}
	if !reflect.DeepEqual(names, []string{"add", "show"}) {
		t.Errorf("routines: expected [add show], got %v", names)
	}

	count := program.SymTab.Lookup("count")
	rate := program.SymTab.Lookup("rate")
	if count.Slot != 0 || rate.Slot != 1 {
		t.Errorf("global slots: expected 0 and 1, got %d and %d", count.Slot, rate.Slot)
	}
	if rate.Type.Form != intermediate.FormArray || rate.Type.ElementCount != 10 ||
		rate.Type.IndexType.MaxValue != 9 || !intermediate.IsReal(rate.Type.ElementType) {
		t.Errorf("rate: expected array of 10 reals, got %v", rate.Type)
	}

	add := program.SymTab.Lookup("add")
	if add.Defn != intermediate.DefnFunction || !intermediate.IsInteger(add.Type) {
		t.Errorf("add: expected integer function, got %v %v", add.Defn, add.Type)
	}
	if len(add.Parms) != 2 || add.Parms[0].Slot != 0 || add.Parms[1].Slot != 1 {
		t.Errorf("add: expected parameters in slots 0 and 1, got %v", add.Parms)
	}
	if got := add.SymTab.NestingLevel(); got != 2 {
		t.Errorf("add scope: expected level 2, got %d", got)
	}
	if got := intermediate.Format(add.ICode.Root()); got != "COMPOUND[ASSIGN(add,ADD(a,b))]" {
		t.Errorf("add body: got %s", got)
	}

	show := program.SymTab.Lookup("show")
	if show.Defn != intermediate.DefnProcedure {
		t.Errorf("show: expected procedure, got %v", show.Defn)
	}

	if got := program.Main.SymTab.Lookup("x").Slot; got != 1 {
		t.Errorf("main: expected x in slot 1, got %d", got)
	}
	body := program.ICode.Root()
	want := []string{"ASSIGN(x,CALL:add(PARAMETERS(1,2)))", "CALL:show(PARAMETERS(x))", "ASSIGN(main,0)"}
	for i, w := range want {
		if got := intermediate.Format(body.Child(i)); got != w {
			t.Errorf("main statement %d: expected %s, got %s", i, w, got)
		}
	}
}

func TestPrototype(t *testing.T) {
	src := `
int twice(int);

int main() {
	int x;
	x = twice(4);
	return x;
}

int twice(int n) {
	return n * 2;
}
`
	program, p := translate(src)
	if n := p.Errors.Count(); n != 0 {
		t.Fatalf("expected no errors, got %v", codes(p))
	}

	twice := program.SymTab.Lookup("twice")
	if twice.Routine != intermediate.RoutineDeclared {
		t.Errorf("twice: expected declared, got %v", twice.Routine)
	}
	if len(twice.Parms) != 1 || twice.Parms[0].Name() != "n" {
		t.Errorf("twice: expected the definition's parameters, got %v", twice.Parms)
	}
	if len(program.Routines) != 1 {
		t.Errorf("routines: expected 1, got %d", len(program.Routines))
	}
	if got := intermediate.Format(twice.ICode.Root()); got != "COMPOUND[ASSIGN(twice,MULTIPLY(n,2))]" {
		t.Errorf("twice body: got %s", got)
	}
}

func TestMultiDimensionalArray(t *testing.T) {
	program, p := translate("int grid[2][3]; int main() { grid[1][2] = 5; }")
	if n := p.Errors.Count(); n != 0 {
		t.Fatalf("expected no errors, got %v", codes(p))
	}
	grid := program.SymTab.Lookup("grid").Type
	if grid.ElementCount != 2 || grid.ElementType.ElementCount != 3 ||
		!intermediate.IsInteger(grid.ElementType.ElementType) {
		t.Errorf("grid: expected 2 x 3 integers, got %v", grid)
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		codes []diag.Code
	}{
		{
			"missing semicolon",
			"int main() { int x; x = 1 }",
			[]diag.Code{diag.MISSING_SEMICOLON},
		},
		{
			"missing right paren",
			"int main() { int x; if (x > 0 x = 1; }",
			[]diag.Code{diag.MISSING_RIGHT_PAREN},
		},
		{
			"missing left paren",
			"int main() { int x; while x < 3) x = x + 1; }",
			[]diag.Code{diag.MISSING_LEFT_PAREN},
		},
		{
			"missing while",
			"int main() { int x; do x = x + 1; (x < 3); }",
			[]diag.Code{diag.MISSING_WHILE},
		},
		{
			"missing equals",
			"int main() { int x; x 1; }",
			[]diag.Code{diag.MISSING_EQUALS},
		},
		{
			"undefined reported once",
			"int main() { y = 1; y = 2; }",
			[]diag.Code{diag.IDENTIFIER_UNDEFINED},
		},
		{
			"void variable",
			"int main() { void v; }",
			[]diag.Code{diag.INVALID_TYPE},
		},
		{
			"value returned from void",
			"void f() { return 1; }",
			[]diag.Code{diag.INVALID_ASSIGNMENT_VOID},
		},
		{
			"bare return from function",
			"int f() { return; }",
			[]diag.Code{diag.INVALID_ASSIGNMENT_VOID},
		},
		{
			"void used as value",
			"void f() { } int main() { int x; x = f(); }",
			[]diag.Code{diag.INVALID_ASSIGNMENT_VOID},
		},
		{
			"break",
			"int main() { int x; while (x) { break; } }",
			[]diag.Code{diag.UNIMPLEMENTED},
		},
		{
			"redefined",
			"int x; int x;",
			[]diag.Code{diag.IDENTIFIER_REDEFINED},
		},
		{
			"prototype mismatch",
			"int f(int a); int f(float a) { return 1; }",
			[]diag.Code{diag.ALREADY_FORWARDED},
		},
		{
			"too many arguments",
			"int f(int a, int b) { return a; } int main() { int x; x = f(1, 2, 3); }",
			[]diag.Code{diag.WRONG_NUMBER_OF_PARMS},
		},
		{
			"unclosed body",
			"int main() { int x; x = 1;",
			[]diag.Code{diag.UNEXPECTED_EOF, diag.MISSING_RIGHT_BRACE},
		},
		{
			"missing left brace",
			"int main() return 0; }",
			[]diag.Code{diag.MISSING_LEFT_BRACE},
		},
		{
			"string to int",
			`int main() { int x; x = "hello"; }`,
			[]diag.Code{diag.INCOMPATIBLE_TYPES},
		},
		{
			"slash divides as real",
			"int main() { int x; x = 4 / 2; }",
			[]diag.Code{diag.INCOMPATIBLE_TYPES},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, p := translate(tt.src)
			if got := codes(p); !reflect.DeepEqual(got, tt.codes) {
				t.Errorf("expected %v, got %v", tt.codes, got)
			}
		})
	}
}

func TestRecoveryContinues(t *testing.T) {
	src := `
int main() {
	int x;
	x = ;
	x = 2;
}

int after() {
	return 1;
}
`
	program, _ := translate(src)
	if program.SymTab.Lookup("after") == nil {
		t.Fatalf("expected parsing to reach the routine after the error")
	}
	if got := intermediate.Format(program.ICode.Root().Child(1)); got != "ASSIGN(x,2)" {
		t.Errorf("expected ASSIGN(x,2), got %s", got)
	}
}

func TestCleanUnitEndsQuietly(t *testing.T) {
	tests := []string{
		"",
		"int x;",
		"int main() { int y; y = 1; }",
		"void f(int a) { } int main() { f(1); }",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, p := translate(src)
			if got := codes(p); got != nil {
				t.Errorf("expected no diagnostics, got %v", got)
			}
		})
	}
}
