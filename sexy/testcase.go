package sexy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType is the language tag of a test's input fence.
type InputType string

const (
	InputTypeProgram InputType = "sjava-program"
)

// AssertionType is the language tag of an assertion fence.
type AssertionType string

const (
	// AssertionTypeAST matches the parsed tree, rendered by ast.ToSexy.
	AssertionTypeAST AssertionType = "ast"
	// AssertionTypeOutcome matches the verification result: (ok),
	// (syntax <kind> <line>) or (semantic <kind> <line> ...).
	AssertionTypeOutcome AssertionType = "outcome"
)

type Assertion struct {
	Type       AssertionType
	Content    string
	ParsedSexy *Node

	// Start and End are the byte offsets of the fence body in the markdown
	// source, so tools can rewrite it in place.
	Start, End int
	Line       int
}

type TestCase struct {
	Name       string // heading text after "Test: "
	Input      string
	InputType  InputType
	Line       int
	Assertions []Assertion
}

// Assertion returns the first assertion of the given type.
func (tc *TestCase) Assertion(typ AssertionType) (Assertion, bool) {
	for _, a := range tc.Assertions {
		if a.Type == typ {
			return a, true
		}
	}
	return Assertion{}, false
}

// ExtractTestCases reads every "Test: name" section of a markdown document.
// Each section needs exactly one input fence and at least one assertion
// fence; fences outside a test section are errors unless untagged.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	source := []byte(markdownContent)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var current *TestCase
	names := map[string]int{}

	flush := func() error {
		if current == nil {
			return nil
		}
		if err := validateTestCase(current); err != nil {
			return err
		}
		testCases = append(testCases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := extractTextFromNode(n, source)
			name, ok := strings.CutPrefix(heading, "Test: ")
			if !ok {
				return ast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return ast.WalkStop, err
			}
			line := lineOf(n, source)
			if prev, dup := names[name]; dup {
				return ast.WalkStop, fmt.Errorf("line %d: test '%s' already defined on line %d", line, name, prev)
			}
			names[name] = line
			current = &TestCase{Name: name, Line: line}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			line := lineOf(n, source)
			if language == "" {
				return ast.WalkContinue, nil
			}
			if current == nil {
				if isInputFence(language) || isAssertionFence(language) {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
				}
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' found outside of test case", line, language)
			}

			content := extractCodeBlockContent(n, source)
			switch {
			case isInputFence(language):
				if current.InputType != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", line, current.Name)
				}
				current.Input = strings.TrimRight(content, "\n")
				current.InputType = InputType(language)
			case isAssertionFence(language):
				assertion := Assertion{
					Type:    AssertionType(language),
					Content: strings.TrimRight(content, "\n"),
					Line:    line,
				}
				assertion.Start, assertion.End = bodyRange(n, source)
				// An empty body is a placeholder for the golden tool to fill.
				if strings.TrimSpace(assertion.Content) != "" {
					parsed, err := Parse(assertion.Content)
					if err != nil {
						return ast.WalkStop, fmt.Errorf("line %d: failed to parse assertion in test '%s': %w", line, current.Name, err)
					}
					assertion.ParsedSexy = parsed
				}
				current.Assertions = append(current.Assertions, assertion)
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return testCases, nil
}

func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlockContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// bodyRange returns the byte range covered by the lines of a fence. An empty
// fence yields an empty range positioned after the opening fence line.
func bodyRange(block *ast.FencedCodeBlock, source []byte) (int, int) {
	lines := block.Lines()
	if lines.Len() == 0 {
		pos := 0
		if block.Info != nil {
			pos = block.Info.Segment.Stop
		}
		if i := bytes.IndexByte(source[pos:], '\n'); i >= 0 {
			pos += i + 1
		}
		return pos, pos
	}
	return lines.At(0).Start, lines.At(lines.Len() - 1).Stop
}

func isInputFence(language string) bool {
	return language == string(InputTypeProgram)
}

func isAssertionFence(language string) bool {
	return language == string(AssertionTypeAST) || language == string(AssertionTypeOutcome)
}

func validateTestCase(tc *TestCase) error {
	if tc.InputType == "" {
		return fmt.Errorf("test '%s' has no input fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	return nil
}

func lineOf(node ast.Node, source []byte) int {
	var pos int
	switch {
	case node.Lines().Len() > 0:
		pos = node.Lines().At(0).Start
	default:
		return 1
	}
	return bytes.Count(source[:pos], []byte("\n")) + 1
}
