package parser

import (
	"github.com/strager/sjavac/ast"
	"github.com/strager/sjavac/types"
)

// Line is one physical source line.
type Line struct {
	Num  int // 1-based
	Text string
}

// A Feature recognizes one kind of line.
//
// Identifies is a cheap test that claims the line. Parse then applies the
// full grammar; once a feature has claimed a line, a Parse failure is the
// line's diagnostic and no other feature is tried. Parse returns a nil node
// for lines that contribute nothing to the tree, such as comments.
type Feature interface {
	Name() string
	Identifies(line string) bool
	Parse(line Line) (ast.Node, error)
}

// A ScopeFeature opens a block. Lines inside the block are dispatched to
// Inner, or to the enclosing block's set when Inner returns nil.
type ScopeFeature interface {
	Feature
	Inner() *FeatureSet
}

// FeatureSet is an ordered list of features legal in some kind of block.
type FeatureSet struct {
	name     string
	features []Feature
}

func NewFeatureSet(name string, features ...Feature) *FeatureSet {
	return &FeatureSet{name: name, features: features}
}

func (s *FeatureSet) Name() string {
	return s.name
}

// Select returns the first feature, in order, that identifies line.
func (s *FeatureSet) Select(line string) (Feature, bool) {
	for _, f := range s.features {
		if f.Identifies(line) {
			return f, true
		}
	}
	return nil, false
}

// Features holds the two feature sets of the language.
type Features struct {
	// Global is legal at the top level: comments, assignments, variable
	// declarations and function declarations.
	Global *FeatureSet
	// FunctionBody is legal inside functions and the if/while blocks nested
	// in them.
	FunctionBody *FeatureSet
}

// NewFeatures builds the feature sets. reg decides which words name types.
func NewFeatures(reg *types.Registry) *Features {
	body := NewFeatureSet("function-body",
		commentFeature{},
		assignmentFeature{},
		declarationFeature{reg: reg},
		invocationFeature{reg: reg},
		controlFlowFeature{keyword: kwIf},
		controlFlowFeature{keyword: kwWhile},
		returnFeature{},
	)
	global := NewFeatureSet("global",
		commentFeature{},
		assignmentFeature{},
		declarationFeature{reg: reg},
		functionFeature{body: body},
	)
	return &Features{Global: global, FunctionBody: body}
}
