package verifier

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/nalgeon/be"
	"github.com/strager/sjavac/parser"
	"github.com/strager/sjavac/semantic"
	"github.com/strager/sjavac/types"
)

func src(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestVerifyValid(t *testing.T) {
	res, err := New(types.Builtin()).Verify(src(
		"int x = 5;",
		"void foo(int a){",
		"  boolean b = true;",
		"  if(b){",
		"    x = a;",
		"  }",
		"  return;",
		"}",
	))
	be.Err(t, err, nil)
	be.Equal(t, len(res.Program.Body), 2)
	be.Equal(t, len(res.Globals.Variables), 1)
	be.Equal(t, res.Globals.Functions[0].Name, "foo")
}

func TestVerifySyntaxError(t *testing.T) {
	_, err := New(types.Builtin()).Verify(src(
		"void foo() {",
		"  return;",
	))
	be.Err(t, err, parser.ErrMissingScopeClose)
	be.True(t, IsSyntaxError(err))
	be.True(t, !IsSemanticError(err))

	var serr *parser.SyntaxError
	be.True(t, errors.As(err, &serr))
	be.Equal(t, serr.Line, 2)
}

func TestVerifySemanticError(t *testing.T) {
	_, err := New(types.Builtin()).Verify(src(
		"int x = 5;",
		`x = "hi";`,
	))
	be.Err(t, err, semantic.ErrInvalidExpression)
	be.True(t, IsSemanticError(err))
	be.True(t, !IsSyntaxError(err))
}

func TestCustomRegistry(t *testing.T) {
	reg, err := types.NewRegistry(types.NewType(types.Int, "0", types.IsInteger))
	be.Err(t, err, nil)

	v := New(reg)
	_, err = v.Verify(src("int a = 1;"))
	be.Err(t, err, nil)

	// Without a registered double, the line is no declaration at all.
	_, err = v.Verify(src("double d = 1.0;"))
	be.Err(t, err, parser.ErrUnrecognized)
}

func TestVerifyConcurrently(t *testing.T) {
	v := New(types.Builtin())
	program := src(
		"void f(int n) {",
		"  f(n);",
		"  return;",
		"}",
	)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = v.Verify(program)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		be.Err(t, err, nil)
	}
}

func TestOutcome(t *testing.T) {
	v := New(types.Builtin())
	tests := []struct {
		src  string
		want string
	}{
		{src("int a = 1;"), "(ok)"},
		{src("void f() {"), "(syntax missing-scope-close 1)"},
		{src("}"), "(syntax unexpected-scope-close 1)"},
		{src("int a;", "int b = a;"), `(semantic access-uninitialized 2 "a")`},
		{src("void f() {", "}"), `(semantic missing-return 1 "f")`},
	}
	for _, test := range tests {
		_, err := v.Verify(test.src)
		be.Equal(t, Outcome(err).String(), test.want)
	}
	be.Equal(t, Outcome(errors.New("boom")).String(), `(error "boom")`)
}
