package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/strager/sjavac/ast"
	"github.com/strager/sjavac/parser"
	"github.com/strager/sjavac/sexy"
	"github.com/strager/sjavac/types"
	"github.com/strager/sjavac/verifier"
)

func TestSexyAllTests(t *testing.T) {
	testFiles, err := filepath.Glob("test/*_test.md")
	be.Err(t, err, nil)
	be.True(t, len(testFiles) > 0)

	v := verifier.New(types.Builtin())
	p := parser.New(types.Builtin())

	for _, testFile := range testFiles {
		testName := strings.TrimSuffix(filepath.Base(testFile), ".md")

		t.Run(testName, func(t *testing.T) {
			content, err := os.ReadFile(testFile)
			be.Err(t, err, nil)

			testCases, err := sexy.ExtractTestCases(string(content))
			be.Err(t, err, nil)

			for _, tc := range testCases {
				t.Run(tc.Name, func(t *testing.T) {
					if tc.InputType != sexy.InputTypeProgram {
						t.Fatalf("unknown input type: %s", tc.InputType)
					}
					for _, assertion := range tc.Assertions {
						if assertion.ParsedSexy == nil {
							t.Errorf("%s:%d: empty %s assertion; run go run ./scripts to fill it in",
								testFile, assertion.Line, assertion.Type)
							continue
						}
						switch assertion.Type {
						case sexy.AssertionTypeAST:
							program, err := p.Parse(tc.Input)
							if err != nil {
								t.Errorf("%s:%d: parse failed: %v", testFile, tc.Line, err)
								continue
							}
							assertMatch(t, testFile, assertion, ast.ToSexy(program))
						case sexy.AssertionTypeOutcome:
							_, err := v.Verify(tc.Input)
							assertMatch(t, testFile, assertion, verifier.Outcome(err))
						}
					}
				})
			}
		})
	}
}

func assertMatch(t *testing.T, file string, assertion sexy.Assertion, got *sexy.Node) {
	t.Helper()
	if err := sexy.Match(assertion.ParsedSexy, got); err != nil {
		t.Errorf("%s:%d: %s assertion failed: %v\ngot: %s", file, assertion.Line, assertion.Type, err, got)
	}
}
