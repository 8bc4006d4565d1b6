// Package verifier runs the parser and the semantic validator over a source
// file.
package verifier

import (
	"errors"

	"github.com/strager/sjavac/ast"
	"github.com/strager/sjavac/internal/log"
	"github.com/strager/sjavac/parser"
	"github.com/strager/sjavac/semantic"
	"github.com/strager/sjavac/types"
)

// Result is what a successful verification produces.
type Result struct {
	Program *ast.Program
	Globals *semantic.Globals
}

// Verifier holds only immutable state and may be shared by goroutines.
type Verifier struct {
	parser    *parser.Parser
	validator *semantic.Validator
	log       log.Logger
}

// New returns a verifier for the types in reg.
func New(reg *types.Registry) *Verifier {
	return &Verifier{
		parser:    parser.New(reg),
		validator: semantic.New(reg),
		log:       log.New("component", "verifier"),
	}
}

// Verify parses and validates src. The error is either a *parser.SyntaxError
// or a semantic.Error.
func (v *Verifier) Verify(src string) (*Result, error) {
	program, err := v.parser.Parse(src)
	if err != nil {
		return nil, err
	}
	globals, err := v.validator.Validate(program)
	if err != nil {
		return nil, err
	}
	v.log.Debug("Verified program", "statements", len(program.Body))
	return &Result{Program: program, Globals: globals}, nil
}

// IsSyntaxError reports whether err came from the parser.
func IsSyntaxError(err error) bool {
	var serr *parser.SyntaxError
	return errors.As(err, &serr)
}

// IsSemanticError reports whether err came from the validator.
func IsSemanticError(err error) bool {
	var serr semantic.Error
	return errors.As(err, &serr)
}
