// Package semantic checks a parsed program against the scoping and typing
// rules of the language.
//
// Validation runs in two passes. The first pass declares every function and
// every global variable, and checks global assignments in source order. The
// second pass walks each function body with the globals and the full function
// table in view, so calls may refer to functions declared later in the file.
package semantic

import (
	mapset "github.com/deckarep/golang-set"

	"github.com/strager/sjavac/ast"
	"github.com/strager/sjavac/internal/log"
	"github.com/strager/sjavac/symbols"
	"github.com/strager/sjavac/types"
)

// Globals is the global state left after a successful validation.
type Globals struct {
	Variables []symbols.Variable
	Functions []symbols.Function
}

type Validator struct {
	reg *types.Registry
	log log.Logger
}

func New(reg *types.Registry) *Validator {
	return &Validator{reg: reg, log: log.New("component", "semantic")}
}

// Validate checks program and returns the first violation as an Error.
func (v *Validator) Validate(program *ast.Program) (*Globals, error) {
	c := &checker{
		reg:   v.reg,
		vars:  symbols.NewTable[symbols.Variable](),
		funcs: symbols.NewTable[symbols.Function](),
		log:   v.log,
	}
	c.boolean, _ = v.reg.Lookup(types.Boolean)

	if err := c.declareGlobals(program); err != nil {
		return nil, err
	}
	v.log.Debug("Declared globals", "variables", len(c.vars.Names()), "functions", len(c.funcs.Names()))

	if err := c.checkBodies(program); err != nil {
		return nil, err
	}
	return &Globals{Variables: c.vars.Symbols(), Functions: c.funcs.Symbols()}, nil
}

// checker holds the state of one validation run.
type checker struct {
	reg     *types.Registry
	boolean *types.Type
	vars    *symbols.Table[symbols.Variable]
	funcs   *symbols.Table[symbols.Function]
	log     log.Logger
}

func (c *checker) declareGlobals(program *ast.Program) error {
	for _, child := range program.Body {
		var err error
		switch n := child.(type) {
		case *ast.FunctionDeclaration:
			err = c.declareFunction(n)
		case *ast.VariableDeclaration:
			for _, entry := range n.Entries {
				if prev, ok := c.vars.Get(entry.Name); ok {
					return alreadyExists(entry.Line, prev.Key())
				}
				if err = c.declareVariable(entry, true); err != nil {
					break
				}
			}
		case *ast.Assignment:
			err = c.checkAssignment(n)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) lookupType(line int, name string) (*types.Type, error) {
	typ, ok := c.reg.Lookup(name)
	if !ok {
		return nil, typeNotFound(line, name, suggest(name, c.reg.Names()))
	}
	return typ, nil
}

func (c *checker) declareFunction(fn *ast.FunctionDeclaration) error {
	if c.funcs.Contains(fn.Name) {
		return alreadyExists(fn.Line, symbols.Key{Kind: symbols.KindFunction, Name: fn.Name})
	}

	seen := mapset.NewSet()
	args := make([]symbols.Argument, 0, len(fn.Arguments))
	for _, arg := range fn.Arguments {
		typ, err := c.lookupType(fn.Line, arg.Type)
		if err != nil {
			return err
		}
		if !seen.Add(arg.Name) {
			return alreadyExists(fn.Line, symbols.Key{Kind: symbols.KindArgument, Name: arg.Name})
		}
		args = append(args, symbols.Argument{Name: arg.Name, Type: typ, Final: arg.Final})
	}

	c.funcs.Put(symbols.Function{Name: fn.Name, Arguments: args, Line: fn.Line})
	c.log.Trace("Declared function", "name", fn.Name, "arguments", len(args))
	return nil
}

// declareVariable binds entry in the current frame. The caller has already
// dealt with any existing binding of the same name.
func (c *checker) declareVariable(entry *ast.VariableEntry, global bool) error {
	typ, err := c.lookupType(entry.Line, entry.Type)
	if err != nil {
		return err
	}

	sym := symbols.Variable{
		Name:   entry.Name,
		Type:   typ,
		Final:  entry.Final,
		Global: global,
		Line:   entry.Line,
	}
	switch {
	case entry.HasValue:
		ok, err := c.matches(entry.Line, entry.Value, typ)
		if err != nil {
			return err
		}
		if !ok {
			return invalidValue(entry.Line, entry.Name, typ.Name())
		}
		sym.Assign(entry.Value)
	case entry.Final:
		return uninitializedFinal(entry.Line, entry.Name)
	}

	c.vars.Put(sym)
	return nil
}

func (c *checker) checkAssignment(a *ast.Assignment) error {
	target, ok := c.vars.Get(a.Name)
	if !ok {
		return symbolNotFound(a.Line, a.Name, suggest(a.Name, c.vars.Names()))
	}
	if target.Final {
		return finalAssignment(a.Line, a.Name)
	}
	ok, err := c.matches(a.Line, a.Value, target.Type)
	if err != nil {
		return err
	}
	if !ok {
		return invalidValue(a.Line, a.Name, target.Type.Name())
	}

	target.Assign(a.Value)
	c.vars.Put(target)
	return nil
}

// matches reports whether value may be stored in a variable of type typ.
// Anything shaped like an identifier that is not a literal of typ is looked
// up as a name, so "true" may name an int variable.
func (c *checker) matches(line int, value string, typ *types.Type) (bool, error) {
	if typ.IsLiteral(value) {
		return true, nil
	}
	if !types.IsIdentifier(value) {
		return false, nil
	}
	src, err := c.initializedVariable(line, value)
	if err != nil {
		return false, err
	}
	return typ.CanBeCreatedFrom(src.Type), nil
}

func (c *checker) initializedVariable(line int, name string) (symbols.Variable, error) {
	v, ok := c.vars.Get(name)
	if !ok {
		return v, symbolNotFound(line, name, suggest(name, c.vars.Names()))
	}
	if !v.HasValue {
		return v, accessUninitialized(line, name)
	}
	return v, nil
}

func (c *checker) checkBodies(program *ast.Program) error {
	for _, child := range program.Body {
		if fn, ok := child.(*ast.FunctionDeclaration); ok {
			if err := c.checkFunction(fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *checker) checkFunction(fn *ast.FunctionDeclaration) error {
	c.vars.Push()
	defer c.vars.Pop()
	c.log.Debug("Checking function", "name", fn.Name, "line", fn.Line)

	decl, _ := c.funcs.Get(fn.Name)
	for _, arg := range decl.Arguments {
		c.vars.Put(symbols.Variable{
			Name:     arg.Name,
			Type:     arg.Type,
			Value:    arg.Type.DefaultValue(),
			HasValue: true,
			Final:    arg.Final,
			Line:     fn.Line,
		})
	}

	if _, ok := ast.Last(fn).(*ast.Return); !ok {
		return missingReturn(fn.Line, fn.Name)
	}
	return c.checkStatements(fn.Body)
}

func (c *checker) checkStatements(body []ast.Node) error {
	for _, stmt := range body {
		if err := c.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkStatement(stmt ast.Node) error {
	switch n := stmt.(type) {
	case *ast.VariableDeclaration:
		for _, entry := range n.Entries {
			if prev, ok := c.vars.Get(entry.Name); ok {
				if !prev.Global {
					return alreadyExists(entry.Line, prev.Key())
				}
				c.vars.Remove(entry.Name)
			}
			if err := c.declareVariable(entry, false); err != nil {
				return err
			}
		}
	case *ast.Assignment:
		return c.checkAssignment(n)
	case *ast.Invocation:
		return c.checkInvocation(n)
	case *ast.IfScope:
		return c.checkBlock(n.Line, n.Conditions, n.Body)
	case *ast.WhileScope:
		return c.checkBlock(n.Line, n.Conditions, n.Body)
	}
	return nil
}

func (c *checker) checkBlock(line int, conditions []string, body []ast.Node) error {
	if err := c.checkConditions(line, conditions); err != nil {
		return err
	}
	c.vars.Push()
	defer c.vars.Pop()
	c.log.Trace("Entered block", "line", line, "depth", c.vars.Depth())
	return c.checkStatements(body)
}

func (c *checker) checkConditions(line int, conditions []string) error {
	if c.boolean == nil {
		return typeNotFound(line, types.Boolean, "")
	}
	for _, cond := range conditions {
		if c.boolean.IsLiteral(cond) {
			continue
		}
		v, err := c.initializedVariable(line, cond)
		if err != nil {
			return err
		}
		if !c.boolean.CanBeCreatedFrom(v.Type) {
			return invalidCondition(line, cond, v.Type.Name(), c.boolean.Name())
		}
	}
	return nil
}

func (c *checker) checkInvocation(call *ast.Invocation) error {
	fn, ok := c.funcs.Get(call.Name)
	if !ok {
		return symbolNotFound(call.Line, call.Name, suggest(call.Name, c.funcs.Names()))
	}
	if len(call.Arguments) != len(fn.Arguments) {
		return wrongArgumentCount(call.Line, call.Name, len(call.Arguments), len(fn.Arguments))
	}
	for i, value := range call.Arguments {
		param := fn.Arguments[i]
		ok, err := c.matches(call.Line, value, param.Type)
		if err != nil {
			return err
		}
		if !ok {
			return badArgument(call.Line, call.Name, value, i+1, param.Name, param.Type.Name())
		}
	}
	return nil
}
