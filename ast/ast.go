// Package ast holds the syntax tree produced by the line parser.
//
// The tree is a closed sum type: every node implements Node, and consumers
// switch on the concrete type. Scope nodes own their children exclusively and
// keep them in source order.
package ast

import (
	"errors"
	"strings"
)

var (
	ErrEmptyDeclaration = errors.New("variable declaration without entries")
	ErrEmptyName        = errors.New("empty name")
)

// Node is implemented by every syntax tree node.
type Node interface {
	// Pos returns the 1-based line the node was parsed from.
	Pos() int
	node()
}

// Scope is a node owning an ordered list of child statements.
type Scope interface {
	Node
	Children() []Node
	Append(child Node)
}

// Program is the root scope. It holds global declarations, global
// assignments and function declarations.
type Program struct {
	Body []Node
}

// VariableDeclaration declares one or more variables of the same type, as in
// "final int a = 1, b = 2;".
type VariableDeclaration struct {
	Line    int
	Entries []*VariableEntry
}

// VariableEntry is one declared name. Value is empty when HasValue is false.
type VariableEntry struct {
	Line     int
	Type     string
	Name     string
	Value    string
	HasValue bool
	Final    bool
}

type Assignment struct {
	Line  int
	Name  string
	Value string
}

type FunctionDeclaration struct {
	Line      int
	Name      string
	Arguments []*Argument
	Body      []Node
}

type Argument struct {
	Type  string
	Name  string
	Final bool
}

// Invocation is a call statement. Arguments are the raw argument texts:
// identifiers or literals.
type Invocation struct {
	Line      int
	Name      string
	Arguments []string
}

// IfScope and WhileScope carry their condition operands in source order.
// The && and || operators themselves are not kept.
type IfScope struct {
	Line       int
	Conditions []string
	Body       []Node
}

type WhileScope struct {
	Line       int
	Conditions []string
	Body       []Node
}

type Return struct {
	Line int
}

// NewVariableDeclaration fails when entries is empty.
func NewVariableDeclaration(line int, entries []*VariableEntry) (*VariableDeclaration, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyDeclaration
	}
	for _, e := range entries {
		e.Line = line
	}
	return &VariableDeclaration{Line: line, Entries: entries}, nil
}

// NewFunctionDeclaration fails when name is blank. A function may take no
// arguments.
func NewFunctionDeclaration(line int, name string, args []*Argument) (*FunctionDeclaration, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &FunctionDeclaration{Line: line, Name: name, Arguments: args}, nil
}

func (*Program) Pos() int               { return 1 }
func (n *VariableDeclaration) Pos() int { return n.Line }
func (n *VariableEntry) Pos() int       { return n.Line }
func (n *Assignment) Pos() int          { return n.Line }
func (n *FunctionDeclaration) Pos() int { return n.Line }
func (n *Invocation) Pos() int          { return n.Line }
func (n *IfScope) Pos() int             { return n.Line }
func (n *WhileScope) Pos() int          { return n.Line }
func (n *Return) Pos() int              { return n.Line }

func (*Program) node()             {}
func (*VariableDeclaration) node() {}
func (*VariableEntry) node()       {}
func (*Assignment) node()          {}
func (*FunctionDeclaration) node() {}
func (*Invocation) node()          {}
func (*IfScope) node()             {}
func (*WhileScope) node()          {}
func (*Return) node()              {}

func (n *Program) Children() []Node             { return n.Body }
func (n *FunctionDeclaration) Children() []Node { return n.Body }
func (n *IfScope) Children() []Node             { return n.Body }
func (n *WhileScope) Children() []Node          { return n.Body }

func (n *Program) Append(child Node)             { n.Body = append(n.Body, child) }
func (n *FunctionDeclaration) Append(child Node) { n.Body = append(n.Body, child) }
func (n *IfScope) Append(child Node)             { n.Body = append(n.Body, child) }
func (n *WhileScope) Append(child Node)          { n.Body = append(n.Body, child) }

// Last returns the final child of a scope, or nil if it is empty.
func Last(s Scope) Node {
	children := s.Children()
	if len(children) == 0 {
		return nil
	}
	return children[len(children)-1]
}
