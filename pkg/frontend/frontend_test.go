package frontend

import (
	"bytes"
	"testing"

	"github.com/th13vn/cc0/internal/ast"
	"github.com/th13vn/cc0/internal/types"
)

func TestCompileCleanProgramHasNoErrors(t *testing.T) {
	src := `
int add(int a, int b) {
	return a + b;
}
int total = add(1, 2);
`
	var buf bytes.Buffer
	result := Compile(src, &buf, Options{})
	if result.Errors != 0 {
		t.Fatalf("expected 0 errors, got %d: %s", result.Errors, buf.String())
	}
}

func TestCompileReportsDegreeMismatch(t *testing.T) {
	src := `
int f(int a, int b) { return a + b; }
int z = f(1);
`
	var buf bytes.Buffer
	result := Compile(src, &buf, Options{})
	if result.Errors == 0 {
		t.Fatalf("expected at least one error for a call with too few arguments")
	}
}

func TestCompileReportsMissingMember(t *testing.T) {
	src := `
struct Point { int x; int y; };
struct Point p;
int bad = p.z;
`
	var buf bytes.Buffer
	result := Compile(src, &buf, Options{})
	if result.Errors == 0 {
		t.Fatalf("expected an error for accessing an undeclared struct member")
	}
}

func TestCompileAllowsPointerArithmetic(t *testing.T) {
	src := `
int *p;
int *q = p + 1;
`
	var buf bytes.Buffer
	result := Compile(src, &buf, Options{})
	if result.Errors != 0 {
		t.Fatalf("expected pointer arithmetic to be permitted, got %d errors: %s", result.Errors, buf.String())
	}
}

func TestCompileReportsReturningAFunctionValueInsteadOfCallingIt(t *testing.T) {
	src := `
int f() { return 0; }
int g() {
	return f;
}
`
	var buf bytes.Buffer
	result := Compile(src, &buf, Options{})
	if result.Errors == 0 {
		t.Fatalf("expected an error for returning an uncalled function value")
	}
}

func TestCompileWarnsOnDiscardedValueWhenEnabled(t *testing.T) {
	src := `
int f() { return 1; }
int g() {
	f();
	return 0;
}
`
	var buf bytes.Buffer
	result := Compile(src, &buf, Options{WarnDiscardedValues: true})
	if result.Errors != 0 {
		t.Fatalf("a discarded value is a warning, not an error; got %d errors", result.Errors)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected the discarded-value warning to be written to the diagnostic sink")
	}
}

func TestCompileAnnotatesEveryExpressionWithAType(t *testing.T) {
	src := `int x = 1 + 2;`
	result := Compile(src, nil, Options{})

	var decl *ast.Node
	for _, c := range result.Module.Children() {
		if c.Class == ast.Decl {
			decl = c
		}
	}
	if decl == nil {
		t.Fatalf("expected a Decl node")
	}
	declarator := decl.Children()[0]
	if declarator.R == nil {
		t.Fatalf("expected the declarator to carry its initializer")
	}
	if types.IsInvalid(declarator.R.DT) {
		t.Fatalf("expected the initializer expression to be annotated with a valid type")
	}
	if !types.IsBasic(declarator.R.DT) || types.ToString(declarator.R.DT, "") != "int" {
		t.Errorf("expected 1 + 2 to be typed int, got %s", types.ToString(declarator.R.DT, ""))
	}
	for _, operand := range []*ast.Node{declarator.R.L, declarator.R.R} {
		if types.IsInvalid(operand.DT) {
			t.Errorf("expected operand %q to be annotated with a valid type", operand.Literal)
		}
	}
}
