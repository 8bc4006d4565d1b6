package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nalgeon/be"
	"github.com/strager/sjavac/ast"
	"github.com/strager/sjavac/types"
)

func parse(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	return New(types.Builtin()).Parse(src)
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := parse(t, src)
	be.Err(t, err, nil)
	return program
}

func syntaxError(t *testing.T, src string) *SyntaxError {
	t.Helper()
	_, err := parse(t, src)
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	return se
}

func TestParseEmptyProgram(t *testing.T) {
	for _, src := range []string{"", "\n\n", "   \n\t\n"} {
		program := mustParse(t, src)
		be.Equal(t, len(program.Body), 0)
	}
}

func TestParseProgramTree(t *testing.T) {
	src := `// globals
final int limit = 10;
double ratio, scale = 2.5;
count = 3;
void run(int a, final String name) {
// inside
  boolean done = false;
  while (done || a) {
    if (true) {
      run(1, "x");
    }
    done = true;
  }
  return;
}
`
	got := mustParse(t, src)
	want := &ast.Program{Body: []ast.Node{
		&ast.VariableDeclaration{Line: 2, Entries: []*ast.VariableEntry{
			{Line: 2, Type: "int", Name: "limit", Value: "10", HasValue: true, Final: true},
		}},
		&ast.VariableDeclaration{Line: 3, Entries: []*ast.VariableEntry{
			{Line: 3, Type: "double", Name: "ratio"},
			{Line: 3, Type: "double", Name: "scale", Value: "2.5", HasValue: true},
		}},
		&ast.Assignment{Line: 4, Name: "count", Value: "3"},
		&ast.FunctionDeclaration{
			Line: 5,
			Name: "run",
			Arguments: []*ast.Argument{
				{Type: "int", Name: "a"},
				{Type: "String", Name: "name", Final: true},
			},
			Body: []ast.Node{
				&ast.VariableDeclaration{Line: 7, Entries: []*ast.VariableEntry{
					{Line: 7, Type: "boolean", Name: "done", Value: "false", HasValue: true},
				}},
				&ast.WhileScope{Line: 8, Conditions: []string{"done", "a"}, Body: []ast.Node{
					&ast.IfScope{Line: 9, Conditions: []string{"true"}, Body: []ast.Node{
						&ast.Invocation{Line: 10, Name: "run", Arguments: []string{"1", `"x"`}},
					}},
					&ast.Assignment{Line: 12, Name: "done", Value: "true"},
				}},
				&ast.Return{Line: 14},
			},
		},
	}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	src := "int a = 1;\nvoid f() {\n  a = 2;\n  return;\n}\n"
	p := New(types.Builtin())
	first, err := p.Parse(src)
	be.Err(t, err, nil)
	second, err := p.Parse(src)
	be.Err(t, err, nil)
	be.Equal(t, cmp.Diff(first, second), "")
}

func TestParseCRLF(t *testing.T) {
	program := mustParse(t, "int a;\r\nvoid f() {\r\n  return;\r\n}\r\n")
	be.Equal(t, len(program.Body), 2)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		err    error
		line   int
		reason string
	}{
		{
			name: "unknown type",
			src:  "void f() {\n  foo x;\n  return;\n}",
			err:  ErrUnrecognized, line: 2,
			reason: "Unknown syntax feature detected",
		},
		{
			name: "stray close",
			src:  "int a;\n}",
			err:  ErrUnexpectedScopeClose, line: 2,
			reason: "Unexpected token }",
		},
		{
			name: "missing close",
			src:  "void f() {\n  return;\n\n",
			err:  ErrMissingScopeClose, line: 2,
			reason: "Missing code scope closing",
		},
		{
			name: "indented comment",
			src:  "  // hello",
			err:  ErrMalformedComment, line: 1,
		},
		{
			name: "trailing comment",
			src:  "int a; // hello",
			err:  ErrUnrecognized, line: 1,
		},
		{
			name: "declaration leading comma",
			src:  "int , a;",
			err:  ErrMalformedDeclaration, line: 1,
			reason: "Unexpected variable declaration",
		},
		{
			name: "declaration trailing comma",
			src:  "int a,;",
			err:  ErrMalformedDeclaration, line: 1,
		},
		{
			name: "declaration empty value",
			src:  "int a = ;",
			err:  ErrMalformedDeclaration, line: 1,
		},
		{
			name: "declaration bad name",
			src:  "int 5a;",
			err:  ErrMalformedDeclaration, line: 1,
		},
		{
			name: "assignment empty value",
			src:  "a = ;",
			err:  ErrMalformedAssignment, line: 1,
			reason: "Unexpected assignment",
		},
		{
			name: "invocation at top level",
			src:  "foo();",
			err:  ErrUnrecognized, line: 1,
		},
		{
			name: "invocation bad argument",
			src:  "void f() {\n  f(1 + 2);\n  return;\n}",
			err:  ErrMalformedArguments, line: 2,
			reason: "Invalid function arguments list",
		},
		{
			name: "invocation trailing comma",
			src:  "void f() {\n  f(a,);\n  return;\n}",
			err:  ErrMalformedArguments, line: 2,
		},
		{
			name: "invocation missing paren",
			src:  "void f() {\n  f(a;\n  return;\n}",
			err:  ErrMalformedInvocation, line: 2,
			reason: "Unexpected function call",
		},
		{
			name: "function bad arguments",
			src:  "void f(int) {\n}",
			err:  ErrMalformedArguments, line: 1,
		},
		{
			name: "final without a type",
			src:  "void f(final int) {\n}",
			err:  ErrMalformedArguments, line: 1,
		},
		{
			name: "function junk after parens",
			src:  "void f() x {\n}",
			err:  ErrMalformedFunction, line: 1,
			reason: "Unexpected function declaration",
		},
		{
			name: "function underscore name",
			src:  "void _f() {\n}",
			err:  ErrUnrecognized, line: 1,
		},
		{
			name: "nested function",
			src:  "void f() {\n  void g() {\n  }\n  return;\n}",
			err:  ErrUnrecognized, line: 2,
		},
		{
			name: "if at top level",
			src:  "if (true) {\n}",
			err:  ErrUnrecognized, line: 1,
		},
		{
			name: "leading operator",
			src:  "void f() {\n  if (|| a) {\n  }\n  return;\n}",
			err:  ErrMalformedCondition, line: 2,
			reason: "Invalid condition expression",
		},
		{
			name: "trailing operator",
			src:  "void f() {\n  while (a &&) {\n  }\n  return;\n}",
			err:  ErrMalformedCondition, line: 2,
		},
		{
			name: "empty operand",
			src:  "void f() {\n  if (a || || b) {\n  }\n  return;\n}",
			err:  ErrMalformedCondition, line: 2,
		},
		{
			name: "string condition",
			src:  "void f() {\n  if (\"s\") {\n  }\n  return;\n}",
			err:  ErrMalformedCondition, line: 2,
		},
		{
			name: "empty condition",
			src:  "void f() {\n  if () {\n  }\n  return;\n}",
			err:  ErrMalformedCondition, line: 2,
		},
		{
			name: "split keyword",
			src:  "void f() {\n  wh ile (a) {\n  }\n  return;\n}",
			err:  ErrMalformedControlFlow, line: 2,
			reason: "Invalid while statement",
		},
		{
			name: "unbalanced open paren",
			src:  "void f() {\n  if ((a) {\n  }\n  return;\n}",
			err:  ErrMalformedControlFlow, line: 2,
			reason: "Invalid if statement",
		},
		{
			name: "unbalanced close paren",
			src:  "void f() {\n  while (a)) {\n  }\n  return;\n}",
			err:  ErrMalformedControlFlow, line: 2,
		},
		{
			name: "return with value",
			src:  "void f() {\n  return 5;\n}",
			err:  ErrUnrecognized, line: 2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			se := syntaxError(t, test.src)
			be.True(t, errors.Is(se, test.err))
			be.Equal(t, se.Line, test.line)
			if test.reason != "" {
				be.Equal(t, se.Reason, test.reason)
			}
		})
	}
}

func TestSyntaxErrorFields(t *testing.T) {
	se := syntaxError(t, "int a;\nint b = 1,;\n")
	be.Equal(t, se.Line, 2)
	be.Equal(t, se.Text, "int b = 1,;")
	be.Equal(t, se.Kind(), "malformed-declaration")
	be.Equal(t, se.Error(), `line 2: Unexpected variable declaration: "int b = 1,;"`)
}

func TestMissingCloseReportsLastLine(t *testing.T) {
	se := syntaxError(t, "void f() {\n  if (true) {\n  }\n  return;\n")
	be.True(t, errors.Is(se, ErrMissingScopeClose))
	be.Equal(t, se.Line, 4)
	be.Equal(t, se.Text, "  return;")
	be.Equal(t, se.Kind(), "missing-scope-close")
}

func TestStringArgumentsMayContainCommas(t *testing.T) {
	program := mustParse(t, "String s = \"a,b\", t;\nvoid f() {\n  f(\"x, y\", 'c');\n  return;\n}")
	decl := program.Body[0].(*ast.VariableDeclaration)
	be.Equal(t, len(decl.Entries), 2)
	be.Equal(t, decl.Entries[0].Value, `"a,b"`)

	call := program.Body[1].(*ast.FunctionDeclaration).Body[0].(*ast.Invocation)
	be.Equal(t, call.Arguments, []string{`"x, y"`, "'c'"})
}

func TestBlocksInheritFeatureSet(t *testing.T) {
	program := mustParse(t, `void f() {
  if (a) {
    while (b && true) {
      int x;
      g();
      return;
    }
  }
  return;
}`)
	fn := program.Body[0].(*ast.FunctionDeclaration)
	outer := fn.Body[0].(*ast.IfScope)
	inner := outer.Body[0].(*ast.WhileScope)
	be.Equal(t, inner.Conditions, []string{"b", "true"})
	be.Equal(t, len(inner.Body), 3)
}

func TestParenthesesInConditionsAreDropped(t *testing.T) {
	program := mustParse(t, "void f() {\n  if ((a || b) && (-1.5)) {\n  }\n  return;\n}")
	cond := program.Body[0].(*ast.FunctionDeclaration).Body[0].(*ast.IfScope)
	be.Equal(t, cond.Conditions, []string{"a", "b", "-1.5"})
}
