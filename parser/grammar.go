package parser

import (
	"strings"
	"unicode"

	"github.com/strager/sjavac/types"
)

// Keywords and punctuation of the language.
const (
	kwFinal  = "final"
	kwVoid   = "void"
	kwIf     = "if"
	kwWhile  = "while"
	kwReturn = "return"

	opAnd = "&&"
	opOr  = "||"

	commentPrefix = "//"
)

// isStatement reports whether the trimmed line ends with ';'.
func isStatement(line string) bool {
	return strings.HasSuffix(strings.TrimSpace(line), ";")
}

// isScopeOpener reports whether the trimmed line ends with '{'.
func isScopeOpener(line string) bool {
	return strings.HasSuffix(strings.TrimSpace(line), "{")
}

// leadingWord splits s after its leading run of word characters.
func leadingWord(s string) (word, rest string) {
	i := 0
	for i < len(s) && (s[i] == '_' || unicode.IsLetter(rune(s[i])) || unicode.IsDigit(rune(s[i]))) {
		i++
	}
	return s[:i], s[i:]
}

// cutKeyword removes kw from the front of s when it is followed by
// whitespace. It reports whether kw was present.
func cutKeyword(s, kw string) (string, bool) {
	rest, ok := strings.CutPrefix(s, kw)
	if !ok || rest == "" || !unicode.IsSpace(rune(rest[0])) {
		return s, false
	}
	return strings.TrimLeft(rest, " \t"), true
}

// stripTerminator trims s and removes one trailing ';'.
func stripTerminator(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";"))
}

// unquoted returns the offsets of every sep in s that lies outside string
// and char literals.
func unquoted(s string, sep byte) []int {
	var at []int
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == sep:
			at = append(at, i)
		}
	}
	return at
}

// splitList splits a comma-separated list. Commas inside string or char
// literals do not split. A leading or trailing comma, or an empty element,
// makes the list invalid. An all-blank list yields no elements.
func splitList(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	if s[0] == ',' || s[len(s)-1] == ',' {
		return nil, false
	}

	var parts []string
	start := 0
	for _, i := range unquoted(s, ',') {
		parts = append(parts, strings.TrimSpace(s[start:i]))
		start = i + 1
	}
	parts = append(parts, strings.TrimSpace(s[start:]))

	for _, p := range parts {
		if p == "" {
			return nil, false
		}
	}
	return parts, true
}

// splitAssignment parses "name = value" with an optional trailing ';'. The
// value must be non-empty; a ';' may appear in it only inside a literal.
func splitAssignment(s string) (name, value string, ok bool) {
	lhs, rhs, found := strings.Cut(s, "=")
	if !found {
		return "", "", false
	}
	name = strings.TrimSpace(lhs)
	value = stripTerminator(rhs)
	if !types.IsIdentifier(name) || value == "" || len(unquoted(value, ';')) > 0 {
		return "", "", false
	}
	return name, value, true
}

// isExpression reports whether s may appear as an invocation argument: a
// variable name or a literal of any registered type.
func isExpression(reg *types.Registry, s string) bool {
	return types.IsIdentifier(s) || reg.ResolveLiteral(s) != nil
}

// balanced reports whether every ')' in s closes an earlier '('.
func balanced(s string) bool {
	depth := 0
	for _, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// parseCondition splits a parenthesised condition into its operands.
// Parentheses carry no meaning and are dropped. Each operand must be a
// variable name or a boolean literal.
func parseCondition(cond string) ([]string, bool) {
	cond = strings.NewReplacer("(", "", ")", "").Replace(cond)
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return nil, false
	}
	for _, op := range []string{opAnd, opOr} {
		if strings.HasPrefix(cond, op) || strings.HasSuffix(cond, op) {
			return nil, false
		}
	}

	parts := strings.Split(strings.ReplaceAll(cond, opAnd, opOr), opOr)
	operands := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || !(types.IsIdentifier(p) || types.IsBoolean(p)) {
			return nil, false
		}
		operands = append(operands, p)
	}
	return operands, true
}
