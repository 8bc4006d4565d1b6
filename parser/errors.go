package parser

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by SyntaxError. Use errors.Is to tell them apart.
var (
	ErrUnrecognized         = errors.New("unknown syntax feature detected")
	ErrMalformedDeclaration = errors.New("unexpected variable declaration")
	ErrMalformedAssignment  = errors.New("unexpected assignment")
	ErrMalformedInvocation  = errors.New("unexpected function call")
	ErrMalformedArguments   = errors.New("invalid function arguments list")
	ErrMalformedFunction    = errors.New("unexpected function declaration")
	ErrMalformedControlFlow = errors.New("invalid control flow statement")
	ErrMalformedCondition   = errors.New("invalid condition expression")
	ErrMalformedComment     = errors.New("unexpected comment found")
	ErrUnexpectedScopeClose = errors.New("unexpected token }")
	ErrMissingScopeClose    = errors.New("missing code scope closing")
)

// kinds names each sentinel for machine-readable output.
var kinds = []struct {
	err  error
	name string
}{
	{ErrUnrecognized, "unrecognized"},
	{ErrMalformedDeclaration, "malformed-declaration"},
	{ErrMalformedAssignment, "malformed-assignment"},
	{ErrMalformedInvocation, "malformed-invocation"},
	{ErrMalformedArguments, "malformed-arguments"},
	{ErrMalformedFunction, "malformed-function"},
	{ErrMalformedControlFlow, "malformed-control-flow"},
	{ErrMalformedCondition, "malformed-condition"},
	{ErrMalformedComment, "malformed-comment"},
	{ErrUnexpectedScopeClose, "unexpected-scope-close"},
	{ErrMissingScopeClose, "missing-scope-close"},
}

// featureError is returned by Feature.Parse. The parser attaches the line.
type featureError struct {
	err    error
	reason string
}

func (e *featureError) Error() string { return e.reason }
func (e *featureError) Unwrap() error { return e.err }

func fail(err error, reason string) error {
	return &featureError{err: err, reason: reason}
}

// SyntaxError reports the first line that could not be parsed.
type SyntaxError struct {
	Line   int    // 1-based
	Text   string // the line as written
	Reason string // human-readable, e.g. "Invalid while statement"
	Err    error  // one of the Err* sentinels
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Kind returns a short name for the wrapped sentinel, such as
// "unexpected-scope-close".
func (e *SyntaxError) Kind() string {
	for _, k := range kinds {
		if errors.Is(e.Err, k.err) {
			return k.name
		}
	}
	return "syntax"
}

func newSyntaxError(line int, text string, err error) *SyntaxError {
	se := &SyntaxError{Line: line, Text: text, Err: err}
	var fe *featureError
	if errors.As(err, &fe) {
		se.Reason = fe.reason
		se.Err = fe.err
	} else {
		se.Reason = capitalize(err.Error())
	}
	return se
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
