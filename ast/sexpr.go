package ast

import (
	"fmt"

	"github.com/strager/sjavac/sexy"
)

// ToSExpr renders node as an S-expression, e.g.
//
//	(program (declare (entry "int" "x" "5")) (func "f" (args) (return)))
func ToSExpr(node Node) string {
	return ToSexy(node).String()
}

// ToSexy converts node to a sexy tree, for printing or for matching against
// a pattern.
func ToSexy(node Node) *sexy.Node {
	switch n := node.(type) {
	case *Program:
		return scopeList("program", nil, n.Body)
	case *VariableDeclaration:
		items := []*sexy.Node{sexy.NewSymbol("declare")}
		for _, e := range n.Entries {
			items = append(items, ToSexy(e))
		}
		return sexy.NewList(items)
	case *VariableEntry:
		items := []*sexy.Node{sexy.NewSymbol("entry")}
		if n.Final {
			items = append(items, sexy.NewSymbol("final"))
		}
		items = append(items, sexy.NewString(n.Type), sexy.NewString(n.Name))
		if n.HasValue {
			items = append(items, sexy.NewString(n.Value))
		}
		return sexy.NewList(items)
	case *Assignment:
		return sexy.NewList([]*sexy.Node{
			sexy.NewSymbol("assign"), sexy.NewString(n.Name), sexy.NewString(n.Value),
		})
	case *FunctionDeclaration:
		args := []*sexy.Node{sexy.NewSymbol("args")}
		for _, a := range n.Arguments {
			arg := []*sexy.Node{sexy.NewSymbol("arg")}
			if a.Final {
				arg = append(arg, sexy.NewSymbol("final"))
			}
			arg = append(arg, sexy.NewString(a.Type), sexy.NewString(a.Name))
			args = append(args, sexy.NewList(arg))
		}
		head := []*sexy.Node{sexy.NewString(n.Name), sexy.NewList(args)}
		return scopeList("func", head, n.Body)
	case *Invocation:
		items := []*sexy.Node{sexy.NewSymbol("call"), sexy.NewString(n.Name)}
		for _, a := range n.Arguments {
			items = append(items, sexy.NewString(a))
		}
		return sexy.NewList(items)
	case *IfScope:
		return scopeList("if", []*sexy.Node{conditionList(n.Conditions)}, n.Body)
	case *WhileScope:
		return scopeList("while", []*sexy.Node{conditionList(n.Conditions)}, n.Body)
	case *Return:
		return sexy.NewList([]*sexy.Node{sexy.NewSymbol("return")})
	default:
		panic(fmt.Sprintf("unexpected node %T", node))
	}
}

func scopeList(tag string, head []*sexy.Node, body []Node) *sexy.Node {
	items := append([]*sexy.Node{sexy.NewSymbol(tag)}, head...)
	for _, child := range body {
		items = append(items, ToSexy(child))
	}
	return sexy.NewList(items)
}

func conditionList(conds []string) *sexy.Node {
	items := []*sexy.Node{sexy.NewSymbol("cond")}
	for _, c := range conds {
		items = append(items, sexy.NewString(c))
	}
	return sexy.NewList(items)
}
