package semantic

import (
	"errors"
	"fmt"

	"github.com/strager/sjavac/symbols"
)

// Kind classifies semantic errors.
type Kind int

const (
	KindSymbolNotFound Kind = iota
	KindSymbolAlreadyExists
	KindTypeNotFound
	KindInvalidExpression
	KindUninitializedFinal
	KindAccessUninitialized
	KindInvalidInvocation
	KindMissingReturn
)

var kindNames = [...]string{
	KindSymbolNotFound:      "symbol-not-found",
	KindSymbolAlreadyExists: "symbol-already-exists",
	KindTypeNotFound:        "type-not-found",
	KindInvalidExpression:   "invalid-expression",
	KindUninitializedFinal:  "uninitialized-final",
	KindAccessUninitialized: "access-uninitialized",
	KindInvalidInvocation:   "invalid-invocation",
	KindMissingReturn:       "missing-return",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels, one per Kind. Every error returned by the validator matches
// exactly one of them with errors.Is.
var (
	ErrSymbolNotFound      = errors.New("symbol not found")
	ErrSymbolAlreadyExists = errors.New("symbol already exists")
	ErrTypeNotFound        = errors.New("type not found")
	ErrInvalidExpression   = errors.New("invalid expression")
	ErrUninitializedFinal  = errors.New("uninitialized final variable")
	ErrAccessUninitialized = errors.New("access to uninitialized variable")
	ErrInvalidInvocation   = errors.New("invalid invocation")
	ErrMissingReturn       = errors.New("missing return statement")
)

var sentinels = [...]error{
	KindSymbolNotFound:      ErrSymbolNotFound,
	KindSymbolAlreadyExists: ErrSymbolAlreadyExists,
	KindTypeNotFound:        ErrTypeNotFound,
	KindInvalidExpression:   ErrInvalidExpression,
	KindUninitializedFinal:  ErrUninitializedFinal,
	KindAccessUninitialized: ErrAccessUninitialized,
	KindInvalidInvocation:   ErrInvalidInvocation,
	KindMissingReturn:       ErrMissingReturn,
}

// Error is implemented by every semantic error.
type Error interface {
	error
	Kind() Kind
	// Pos is the 1-based line of the offending statement.
	Pos() int
	// Subject names the symbol or type the error is about.
	Subject() string
}

// base carries the fields every error has.
type base struct {
	Line int
	kind Kind
}

func (b base) Kind() Kind { return b.kind }
func (b base) Pos() int   { return b.Line }

func (b base) Is(target error) bool {
	return target == sentinels[b.kind]
}

func withSuggestion(msg, suggestion string) string {
	if suggestion == "" {
		return msg
	}
	return fmt.Sprintf("%s Did you mean %q?", msg, suggestion)
}

type SymbolNotFoundError struct {
	base
	Name       string
	Suggestion string
}

func (e *SymbolNotFoundError) Subject() string { return e.Name }

func (e *SymbolNotFoundError) Error() string {
	return withSuggestion(fmt.Sprintf("The symbol \"%s\" couldn't be found.", e.Name), e.Suggestion)
}

type SymbolAlreadyExistsError struct {
	base
	Symbol symbols.Key
}

func (e *SymbolAlreadyExistsError) Subject() string { return e.Symbol.Name }

func (e *SymbolAlreadyExistsError) Error() string {
	return fmt.Sprintf("The symbol \"%s\" of type %s was already defined earlier.", e.Symbol.Name, e.Symbol.Kind)
}

type TypeNotFoundError struct {
	base
	Type       string
	Suggestion string
}

func (e *TypeNotFoundError) Subject() string { return e.Type }

func (e *TypeNotFoundError) Error() string {
	return withSuggestion(fmt.Sprintf("The type \"%s\" wasn't defined.", e.Type), e.Suggestion)
}

// InvalidExpressionError covers assignments to final variables, values that
// do not fit the target type, and conditions that are not boolean.
type InvalidExpressionError struct {
	base
	Name string
	Msg  string
}

func (e *InvalidExpressionError) Subject() string { return e.Name }
func (e *InvalidExpressionError) Error() string   { return e.Msg }

type UninitializedFinalError struct {
	base
	Name string
}

func (e *UninitializedFinalError) Subject() string { return e.Name }

func (e *UninitializedFinalError) Error() string {
	return fmt.Sprintf("The variable \"%s\" was marked as final while it didn't got any initial value.", e.Name)
}

type AccessUninitializedError struct {
	base
	Name string
}

func (e *AccessUninitializedError) Subject() string { return e.Name }

func (e *AccessUninitializedError) Error() string {
	return fmt.Sprintf("The variable \"%s\" has been accessed before it got initialized.", e.Name)
}

// InvalidInvocationError is a call with the wrong number of arguments
// (Index is 0) or with an argument that does not fit its parameter (Index is
// the 1-based argument position).
type InvalidInvocationError struct {
	base
	Function string
	Index    int
	Msg      string
}

func (e *InvalidInvocationError) Subject() string { return e.Function }
func (e *InvalidInvocationError) Error() string   { return e.Msg }

type MissingReturnError struct {
	base
	Function string
}

func (e *MissingReturnError) Subject() string { return e.Function }

func (e *MissingReturnError) Error() string {
	return fmt.Sprintf("The function \"%s\" missing a return statement at the end of the function body.", e.Function)
}

func symbolNotFound(line int, name, suggestion string) error {
	return &SymbolNotFoundError{base: base{line, KindSymbolNotFound}, Name: name, Suggestion: suggestion}
}

func alreadyExists(line int, key symbols.Key) error {
	return &SymbolAlreadyExistsError{base: base{line, KindSymbolAlreadyExists}, Symbol: key}
}

func typeNotFound(line int, typ, suggestion string) error {
	return &TypeNotFoundError{base: base{line, KindTypeNotFound}, Type: typ, Suggestion: suggestion}
}

func finalAssignment(line int, name string) error {
	return &InvalidExpressionError{
		base: base{line, KindInvalidExpression},
		Name: name,
		Msg:  fmt.Sprintf("The variable %s was defined as \"final\" and therefore its value can't be changed.", name),
	}
}

func invalidValue(line int, name, typ string) error {
	return &InvalidExpressionError{
		base: base{line, KindInvalidExpression},
		Name: name,
		Msg: fmt.Sprintf("The assigned value for the variable \"%s\" (of type \"%s\") is invalid and therefore got rejected.",
			name, typ),
	}
}

func invalidCondition(line int, name, typ, want string) error {
	return &InvalidExpressionError{
		base: base{line, KindInvalidExpression},
		Name: name,
		Msg: fmt.Sprintf("The specified condition can't be evaluated. The variable \"%s\" is of type \"%s\" and thus couldn't be casted to \"%s\".",
			name, typ, want),
	}
}

func uninitializedFinal(line int, name string) error {
	return &UninitializedFinalError{base: base{line, KindUninitializedFinal}, Name: name}
}

func accessUninitialized(line int, name string) error {
	return &AccessUninitializedError{base: base{line, KindAccessUninitialized}, Name: name}
}

func wrongArgumentCount(line int, fn string, got, want int) error {
	return &InvalidInvocationError{
		base:     base{line, KindInvalidInvocation},
		Function: fn,
		Msg: fmt.Sprintf("An invocation of the function \"%s\" was detected with %d arguments, while it accepts %d arguments.",
			fn, got, want),
	}
}

func badArgument(line int, fn, value string, index int, param, typ string) error {
	return &InvalidInvocationError{
		base:     base{line, KindInvalidInvocation},
		Function: fn,
		Index:    index,
		Msg: fmt.Sprintf("The function %s was tried to be invoked with an invalid value, %s, as it's %d'th argument (\"%s\" of type \"%s\").",
			fn, value, index, param, typ),
	}
}

func missingReturn(line int, fn string) error {
	return &MissingReturnError{base: base{line, KindMissingReturn}, Function: fn}
}
