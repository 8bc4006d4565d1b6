// Package symbols holds the symbol kinds and the scoped table the validator
// resolves names against.
package symbols

import (
	"fmt"

	"github.com/strager/sjavac/types"
)

type Kind int

const (
	KindVariable Kind = iota
	KindFunction
	KindArgument
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "VARIABLE"
	case KindFunction:
		return "FUNCTION"
	case KindArgument:
		return "FUNCTION_ARGUMENT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Key identifies a symbol. Two symbols are the same symbol when their keys
// are equal, whatever their other fields.
type Key struct {
	Kind Kind
	Name string
}

type Symbol interface {
	Key() Key
}

// Variable is a declared variable, global or local. Arguments are entered
// into a function's scope as variables holding their type's default value.
type Variable struct {
	Name     string
	Type     *types.Type
	Value    string
	HasValue bool
	Final    bool
	Global   bool
	Line     int
}

func (v Variable) Key() Key { return Key{KindVariable, v.Name} }

// Assign records a value. Only presence matters; values are never
// evaluated.
func (v *Variable) Assign(value string) {
	v.Value = value
	v.HasValue = true
}

type Argument struct {
	Name  string
	Type  *types.Type
	Final bool
}

func (a Argument) Key() Key { return Key{KindArgument, a.Name} }

type Function struct {
	Name      string
	Arguments []Argument
	Line      int
}

func (f Function) Key() Key { return Key{KindFunction, f.Name} }
