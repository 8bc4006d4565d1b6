package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/strager/sjavac/ast"
	"github.com/strager/sjavac/types"
)

// commentFeature drops "//" lines. The marker must be in the first column;
// there are no trailing comments.
type commentFeature struct{}

func (commentFeature) Name() string { return "comment" }

func (commentFeature) Identifies(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), commentPrefix)
}

func (commentFeature) Parse(line Line) (ast.Node, error) {
	if !strings.HasPrefix(line.Text, commentPrefix) {
		return nil, fail(ErrMalformedComment,
			"Unexpected comment found. Comments may not be preceded by any content, including spaces")
	}
	return nil, nil
}

// assignmentFeature handles "name = value;".
type assignmentFeature struct{}

func (assignmentFeature) Name() string { return "assignment" }

func (assignmentFeature) Identifies(line string) bool {
	if !isStatement(line) {
		return false
	}
	word, rest := leadingWord(strings.TrimSpace(line))
	return types.IsIdentifier(word) && strings.HasPrefix(strings.TrimSpace(rest), "=")
}

func (assignmentFeature) Parse(line Line) (ast.Node, error) {
	name, value, ok := splitAssignment(line.Text)
	if !ok {
		return nil, fail(ErrMalformedAssignment, "Unexpected assignment")
	}
	return &ast.Assignment{Line: line.Num, Name: name, Value: value}, nil
}

// declarationFeature handles "[final] type a [= v], b [= v];".
type declarationFeature struct {
	reg *types.Registry
}

func (declarationFeature) Name() string { return "variable-declaration" }

// split separates the optional final modifier and the type name from the
// entry list.
func (declarationFeature) split(line string) (final bool, typ, rest string) {
	s := strings.TrimSpace(line)
	s, final = cutKeyword(s, kwFinal)
	typ, rest = leadingWord(s)
	return final, typ, rest
}

func (f declarationFeature) Identifies(line string) bool {
	if !isStatement(line) {
		return false
	}
	_, typ, rest := f.split(line)
	return f.reg.IsRegistered(typ) && rest != "" && unicode.IsSpace(rune(rest[0]))
}

func (f declarationFeature) Parse(line Line) (ast.Node, error) {
	malformed := fail(ErrMalformedDeclaration, "Unexpected variable declaration")

	final, typ, rest := f.split(line.Text)
	items, ok := splitList(stripTerminator(rest))
	if !ok || len(items) == 0 {
		return nil, malformed
	}

	entries := make([]*ast.VariableEntry, 0, len(items))
	for _, item := range items {
		entry := &ast.VariableEntry{Type: typ, Final: final}
		if strings.Contains(item, "=") {
			name, value, ok := splitAssignment(item)
			if !ok {
				return nil, malformed
			}
			entry.Name, entry.Value, entry.HasValue = name, value, true
		} else {
			if !types.IsIdentifier(item) {
				return nil, malformed
			}
			entry.Name = item
		}
		entries = append(entries, entry)
	}

	decl, err := ast.NewVariableDeclaration(line.Num, entries)
	if err != nil {
		return nil, malformed
	}
	return decl, nil
}

// invocationFeature handles "name(arg, ...);".
type invocationFeature struct {
	reg *types.Registry
}

func (invocationFeature) Name() string { return "invocation" }

func (invocationFeature) Identifies(line string) bool {
	if !isStatement(line) {
		return false
	}
	word, rest := leadingWord(strings.TrimSpace(line))
	return types.IsMethodIdentifier(word) && strings.HasPrefix(strings.TrimSpace(rest), "(")
}

func (f invocationFeature) Parse(line Line) (ast.Node, error) {
	call := stripTerminator(line.Text)
	name, rest := leadingWord(call)
	rest = strings.TrimSpace(rest)
	if !types.IsMethodIdentifier(name) || !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return nil, fail(ErrMalformedInvocation, "Unexpected function call")
	}

	args, ok := splitList(rest[1 : len(rest)-1])
	if !ok {
		return nil, fail(ErrMalformedArguments, "Invalid function arguments list")
	}
	for _, arg := range args {
		if !isExpression(f.reg, arg) {
			return nil, fail(ErrMalformedArguments, "Invalid function arguments list")
		}
	}
	return &ast.Invocation{Line: line.Num, Name: name, Arguments: args}, nil
}

// controlFlowFeature handles "if (cond) {" and "while (cond) {". The
// blocks inherit the enclosing feature set.
type controlFlowFeature struct {
	keyword string
}

func (f controlFlowFeature) Name() string { return f.keyword }

func (f controlFlowFeature) Inner() *FeatureSet { return nil }

func (f controlFlowFeature) Identifies(line string) bool {
	if !isScopeOpener(line) {
		return false
	}
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
	head := f.keyword + "("
	return len(compact) > len(head) && strings.HasPrefix(compact, head)
}

func (f controlFlowFeature) Parse(line Line) (ast.Node, error) {
	malformed := fail(ErrMalformedControlFlow, fmt.Sprintf("Invalid %s statement", f.keyword))

	rest, ok := strings.CutPrefix(strings.TrimSpace(line.Text), f.keyword)
	if !ok {
		return nil, malformed
	}
	rest, ok = strings.CutSuffix(rest, "{")
	if !ok {
		return nil, malformed
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") || !balanced(rest) {
		return nil, malformed
	}

	conds, ok := parseCondition(rest)
	if !ok {
		return nil, fail(ErrMalformedCondition, "Invalid condition expression")
	}
	if f.keyword == kwWhile {
		return &ast.WhileScope{Line: line.Num, Conditions: conds}, nil
	}
	return &ast.IfScope{Line: line.Num, Conditions: conds}, nil
}

// functionFeature handles "void name([final] type arg, ...) {". Argument
// types are not checked here; an unknown type is a semantic error.
type functionFeature struct {
	body *FeatureSet
}

func (functionFeature) Name() string { return "function-declaration" }

func (f functionFeature) Inner() *FeatureSet { return f.body }

func (functionFeature) Identifies(line string) bool {
	if !isScopeOpener(line) {
		return false
	}
	rest, ok := cutKeyword(strings.TrimSpace(line), kwVoid)
	if !ok {
		return false
	}
	name, _ := leadingWord(rest)
	return types.IsMethodIdentifier(name)
}

func (functionFeature) Parse(line Line) (ast.Node, error) {
	malformed := fail(ErrMalformedFunction, "Unexpected function declaration")

	rest, _ := cutKeyword(strings.TrimSpace(line.Text), kwVoid)
	name, rest := leadingWord(rest)
	rest = strings.TrimSpace(rest)
	lparen := strings.IndexByte(rest, '(')
	rparen := strings.IndexByte(rest, ')')
	if lparen != 0 || rparen < 0 || strings.TrimSpace(rest[rparen+1:]) != "{" {
		return nil, malformed
	}

	items, ok := splitList(rest[1:rparen])
	if !ok {
		return nil, fail(ErrMalformedArguments, "Invalid function arguments list")
	}
	args := make([]*ast.Argument, 0, len(items))
	for _, item := range items {
		arg, ok := parseArgument(item)
		if !ok {
			return nil, fail(ErrMalformedArguments, "Invalid function arguments list")
		}
		args = append(args, arg)
	}

	fn, err := ast.NewFunctionDeclaration(line.Num, name, args)
	if err != nil {
		return nil, malformed
	}
	return fn, nil
}

// parseArgument parses "[final] type name". The keyword is never a type.
func parseArgument(s string) (*ast.Argument, bool) {
	fields := strings.Fields(s)
	arg := &ast.Argument{}
	if len(fields) == 3 && fields[0] == kwFinal {
		arg.Final = true
		fields = fields[1:]
	}
	if len(fields) != 2 || fields[0] == kwFinal || !types.IsIdentifier(fields[0]) || !types.IsIdentifier(fields[1]) {
		return nil, false
	}
	arg.Type, arg.Name = fields[0], fields[1]
	return arg, true
}

// returnFeature handles "return;".
type returnFeature struct{}

func (returnFeature) Name() string { return "return" }

func (returnFeature) Identifies(line string) bool {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), kwReturn)
	return ok && strings.TrimSpace(rest) == ";"
}

func (returnFeature) Parse(line Line) (ast.Node, error) {
	return &ast.Return{Line: line.Num}, nil
}
