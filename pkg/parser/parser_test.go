package parser

import (
	"strings"
	"testing"

	"github.com/th13vn/cc0/internal/ast"
	"github.com/th13vn/cc0/internal/symbols"
)

func TestParseSimpleFunction(t *testing.T) {
	input := `
		int add(int a, int b) {
			return a + b;
		}
	`

	result, err := Parse(input, nil, Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors != 0 {
		t.Fatalf("expected 0 errors, got %d", result.Errors)
	}
	if result.Module.Class != ast.Module {
		t.Errorf("expected Module root, got %s", result.Module.Class)
	}
	children := result.Module.Children()
	if len(children) != 1 {
		t.Fatalf("expected 1 top-level child, got %d", len(children))
	}
	if children[0].Class != ast.FnImpl {
		t.Errorf("expected FnImpl, got %s", children[0].Class)
	}
}

func TestParseGlobalDeclaration(t *testing.T) {
	input := `int counter = 0;`

	result, err := Parse(input, nil, Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors != 0 {
		t.Fatalf("expected 0 errors, got %d", result.Errors)
	}
	children := result.Module.Children()
	if len(children) != 1 || children[0].Class != ast.Decl {
		t.Fatalf("expected a single Decl child, got %v", children)
	}
}

func TestParseStorageClassDeclaration(t *testing.T) {
	input := `static int hits; extern int total; int plain;`

	result, err := Parse(input, nil, Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors != 0 {
		t.Fatalf("expected 0 errors, got %d", result.Errors)
	}

	cases := []struct {
		name string
		want symbols.StorageClass
	}{
		{"hits", symbols.Static},
		{"total", symbols.Extern},
		{"plain", symbols.Auto},
	}
	for _, c := range cases {
		sym, ok := result.Root.LookupLocal(c.name)
		if !ok {
			t.Fatalf("expected symbol %q to be declared", c.name)
		}
		if sym.Storage != c.want {
			t.Errorf("%q: expected storage class %v, got %v", c.name, c.want, sym.Storage)
		}
	}
}

func TestParseStructDefinition(t *testing.T) {
	input := `
		struct Point {
			int x;
			int y;
		};
		struct Point origin;
	`

	result, err := Parse(input, nil, Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors != 0 {
		t.Fatalf("expected 0 errors, got %d", result.Errors)
	}
	children := result.Module.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 top-level children, got %d", len(children))
	}
	if children[0].Class != ast.DeclStruct {
		t.Errorf("expected DeclStruct first, got %s", children[0].Class)
	}
}

func TestParseUnionDefinition(t *testing.T) {
	input := `
		union Value {
			int asInt;
			char asChar;
		};
	`

	result, err := Parse(input, nil, Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors != 0 {
		t.Fatalf("expected 0 errors, got %d", result.Errors)
	}
}

func TestParseEnumDeclaration(t *testing.T) {
	input := `
		enum Color { Red, Green, Blue };
		enum Color c = Red;
	`

	result, err := Parse(input, nil, Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors != 0 {
		t.Fatalf("expected 0 errors, got %d", result.Errors)
	}
}

func TestParseControlFlow(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name: "if else",
			input: `
				int f(int a) {
					if (a > 0) { return 1; } else { return 0; }
				}
			`,
		},
		{
			name: "while loop",
			input: `
				int f(int a) {
					while (a > 0) { a = a - 1; }
					return a;
				}
			`,
		},
		{
			name: "for loop",
			input: `
				int f(int a) {
					int total = 0;
					for (int i = 0; i < a; i = i + 1) { total = total + i; }
					return total;
				}
			`,
		},
		{
			name: "break inside loop",
			input: `
				int f(int a) {
					while (1) { break; }
					return a;
				}
			`,
		},
		{
			name: "do while loop",
			input: `
				int f(int a) {
					do {
						a = a - 1;
					} while (a > 0);
					return a;
				}
			`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.input, nil, Options{})
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if result.Errors != 0 {
				t.Errorf("expected 0 errors, got %d", result.Errors)
			}
		})
	}
}

func TestParseDoWhileProducesLoopNode(t *testing.T) {
	input := `
		int f(int a) {
			do { break; } while (a > 0);
			return a;
		}
	`
	result, err := Parse(input, nil, Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors != 0 {
		t.Fatalf("expected 0 errors, got %d", result.Errors)
	}

	var loop *ast.Node
	VisitSimple(result.Module, &SimpleVisitor{
		Fn: func(n *ast.Node) {
			if n.Class == ast.Loop {
				loop = n
			}
		},
	})
	if loop == nil {
		t.Fatalf("expected a Loop node for the do-while statement")
	}
	if loop.Operator != "do" {
		t.Errorf("expected the do-while Loop node's Operator to be %q, got %q", "do", loop.Operator)
	}
	if loop.L == nil || loop.R == nil {
		t.Fatalf("expected the Loop node to carry both a condition and a body")
	}
}

func TestParseBreakOutsideLoopReported(t *testing.T) {
	input := `
		int f(void) {
			break;
			return 0;
		}
	`
	var out strings.Builder
	result, err := Parse(input, &out, Options{Tolerant: true})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors == 0 {
		t.Error("expected illegalBreak diagnostic")
	}
	if !strings.Contains(out.String(), "error(") {
		t.Errorf("expected a formatted diagnostic line, got %q", out.String())
	}
}

func TestParseUndefinedSymbolReported(t *testing.T) {
	input := `
		int f(void) {
			return missing;
		}
	`
	var out strings.Builder
	result, err := Parse(input, &out, Options{Tolerant: true})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors == 0 {
		t.Error("expected undefinedSymbol diagnostic")
	}
}

func TestParseFunctionPrototypeThenDefinition(t *testing.T) {
	input := `
		int square(int x);
		int square(int x) {
			return x * x;
		}
	`
	result, err := Parse(input, nil, Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors != 0 {
		t.Fatalf("expected 0 errors, prototype-then-definition should not be a duplicate, got %d", result.Errors)
	}
}

func TestParseDuplicateDeclarationReported(t *testing.T) {
	input := `
		int x;
		int x;
	`
	var out strings.Builder
	result, err := Parse(input, &out, Options{Tolerant: true})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors == 0 {
		t.Error("expected duplicateSymbol diagnostic")
	}
}

func TestParsePointerAndArrayDeclarators(t *testing.T) {
	input := `
		int *p;
		int arr[10];
	`
	result, err := Parse(input, nil, Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Errors != 0 {
		t.Fatalf("expected 0 errors, got %d", result.Errors)
	}
}

func TestVisitorCountsFunctions(t *testing.T) {
	input := `
		int foo(void) { return 0; }
		int bar(void) { return 1; }
	`
	result, err := Parse(input, nil, Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var names []string
	visitor := &SimpleVisitor{
		Fn: func(n *ast.Node) {
			if n.Class == ast.FnImpl && n.Symbol != nil {
				names = append(names, n.Symbol.Name)
			}
		},
	}
	VisitSimple(result.Module, visitor)

	if len(names) != 2 {
		t.Fatalf("expected 2 functions, found %d", len(names))
	}
	if names[0] != "foo" || names[1] != "bar" {
		t.Errorf("unexpected function names: %v", names)
	}
}

func TestJSONOutput(t *testing.T) {
	input := `int main(void) { return 0; }`

	jsonOutput, err := ParseToJSON(input, Options{})
	if err != nil {
		t.Fatalf("ParseToJSON failed: %v", err)
	}
	if !strings.Contains(string(jsonOutput), "\"class\"") {
		t.Errorf("expected a class field in the JSON AST, got %s", jsonOutput)
	}
}

func TestParseReader(t *testing.T) {
	r := strings.NewReader(`int main(void) { return 0; }`)
	result, err := ParseReader(r, nil, Options{})
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if result.Errors != 0 {
		t.Errorf("expected 0 errors, got %d", result.Errors)
	}
}
