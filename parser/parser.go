// Package parser turns source text into a syntax tree, one line at a time.
//
// Every non-blank line is either "}" or is claimed by exactly one Feature of
// the feature set active in the current block. Blocks are tracked on an
// explicit stack; the tree for a block is complete when its "}" is read.
package parser

import (
	"fmt"
	"strings"

	"github.com/strager/sjavac/ast"
	"github.com/strager/sjavac/internal/log"
	"github.com/strager/sjavac/types"
)

type Parser struct {
	features *Features
	log      log.Logger
}

// New returns a parser for the types in reg. A Parser has no mutable state
// and may be used from several goroutines.
func New(reg *types.Registry) *Parser {
	return &Parser{
		features: NewFeatures(reg),
		log:      log.New("component", "parser"),
	}
}

// Features exposes the feature sets the parser dispatches to.
func (p *Parser) Features() *Features {
	return p.features
}

type frame struct {
	scope ast.Scope
	set   *FeatureSet
}

// Parse parses a whole program. The returned error is a *SyntaxError.
func (p *Parser) Parse(src string) (*ast.Program, error) {
	program := &ast.Program{}
	stack := []frame{{scope: program, set: p.features.Global}}

	lines := splitLines(src)
	for i, text := range lines {
		line := Line{Num: i + 1, Text: text}
		var err error
		stack, err = p.parseLine(line, stack)
		if err != nil {
			p.log.Debug("Syntax error", "line", line.Num, "err", err)
			return nil, newSyntaxError(line.Num, line.Text, err)
		}
	}

	if len(stack) != 1 {
		last := Line{}
		if len(lines) > 0 {
			last = Line{Num: len(lines), Text: lines[len(lines)-1]}
		}
		p.log.Debug("Unclosed scope at end of input", "depth", len(stack))
		return nil, newSyntaxError(last.Num, last.Text, ErrMissingScopeClose)
	}
	return program, nil
}

func (p *Parser) parseLine(line Line, stack []frame) ([]frame, error) {
	trimmed := strings.TrimSpace(line.Text)
	if trimmed == "" {
		return stack, nil
	}
	if trimmed == "}" {
		if len(stack) == 1 {
			return stack, ErrUnexpectedScopeClose
		}
		p.log.Trace("Popped scope", "line", line.Num, "depth", len(stack)-1)
		return stack[:len(stack)-1], nil
	}

	top := stack[len(stack)-1]
	feature, ok := top.set.Select(line.Text)
	if !ok {
		return stack, ErrUnrecognized
	}
	node, err := feature.Parse(line)
	if err != nil {
		return stack, err
	}
	if node == nil {
		return stack, nil
	}

	top.scope.Append(node)
	if scope, ok := node.(ast.Scope); ok {
		sf, ok := feature.(ScopeFeature)
		if !ok {
			return stack, fmt.Errorf("feature %s produced a block without being a scope feature", feature.Name())
		}
		inner := sf.Inner()
		if inner == nil {
			inner = top.set
		}
		stack = append(stack, frame{scope: scope, set: inner})
		p.log.Trace("Pushed scope", "line", line.Num, "feature", feature.Name(), "set", inner.Name(), "depth", len(stack))
	}
	return stack, nil
}

// splitLines splits src on newlines. A trailing "\r" is dropped from every
// line, and trailing empty lines are dropped so that the last line is the
// last one with content.
func splitLines(src string) []string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
