// Package types defines the primitive types of the language: how their
// literals look, their default values, and which types widen into which.
package types

import "fmt"

// Names of the built-in types as they appear in source.
const (
	Int     = "int"
	Double  = "double"
	Boolean = "boolean"
	Char    = "char"
	String  = "String"
)

// Type is one primitive type. Types are compared by identity; a Registry
// never holds two types with the same name.
type Type struct {
	name       string
	defaultVal string
	literal    func(string) bool
	// widensFrom lists the other types whose values are accepted where this
	// type is expected.
	widensFrom []string
}

// NewType creates a type that can only be created from itself.
func NewType(name, defaultValue string, literal func(string) bool, widensFrom ...string) *Type {
	return &Type{
		name:       name,
		defaultVal: defaultValue,
		literal:    literal,
		widensFrom: widensFrom,
	}
}

func (t *Type) Name() string         { return t.name }
func (t *Type) String() string       { return t.name }
func (t *Type) DefaultValue() string { return t.defaultVal }

// IsLiteral reports whether text is a literal of this type.
func (t *Type) IsLiteral(text string) bool {
	return t.literal(text)
}

// CanBeCreatedFrom reports whether a value of type other is accepted where t
// is expected.
func (t *Type) CanBeCreatedFrom(other *Type) bool {
	if other == nil {
		return false
	}
	if other.name == t.name {
		return true
	}
	for _, name := range t.widensFrom {
		if name == other.name {
			return true
		}
	}
	return false
}

// Registry is an immutable table of types, kept in registration order.
type Registry struct {
	byName map[string]*Type
	order  []*Type
}

// NewRegistry builds a registry from the given types. Registering the same
// name twice is an error.
func NewRegistry(ts ...*Type) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Type, len(ts))}
	for _, t := range ts {
		if _, ok := r.byName[t.name]; ok {
			return nil, fmt.Errorf("type %q registered twice", t.name)
		}
		r.byName[t.name] = t
		r.order = append(r.order, t)
	}
	return r, nil
}

// Builtin returns a registry holding the five primitive types.
func Builtin() *Registry {
	r, err := NewRegistry(
		NewType(Int, "0", IsInteger),
		NewType(Double, "0", IsDouble, Int),
		NewType(Boolean, "false", IsBoolean, Int, Double),
		NewType(Char, "''", IsChar),
		NewType(String, `""`, IsString),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// IsRegistered reports whether name is a known type.
func (r *Registry) IsRegistered(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Names returns the registered type names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, t := range r.order {
		names[i] = t.name
	}
	return names
}

// ResolveLiteral returns the first type, in registration order, whose
// literal grammar accepts text, or nil if none does.
func (r *Registry) ResolveLiteral(text string) *Type {
	for _, t := range r.order {
		if t.IsLiteral(text) {
			return t
		}
	}
	return nil
}
