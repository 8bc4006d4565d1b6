package types

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		text       string
		identifier bool
		method     bool
	}{
		{"a", true, true},
		{"foo_55", true, true},
		{"_a", true, false},
		{"__", true, false},
		{"_", false, false},
		{"5a", false, false},
		{"a-b", false, false},
		{"", false, false},
		{"  x  ", true, true},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			be.Equal(t, IsIdentifier(test.text), test.identifier)
			be.Equal(t, IsMethodIdentifier(test.text), test.method)
		})
	}
}

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		text    string
		integer bool
		double  bool
	}{
		{"0", true, true},
		{"-12", true, true},
		{"3.5", false, true},
		{"3.", false, true},
		{".5", false, true},
		{"-.5", false, true},
		{".", false, false},
		{"-", false, false},
		{"1.2.3", false, false},
		{"1e5", false, false},
		{"abc", false, false},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			be.Equal(t, IsInteger(test.text), test.integer)
			be.Equal(t, IsDouble(test.text), test.double)
		})
	}
}

func TestBooleanLiterals(t *testing.T) {
	be.True(t, IsBoolean("true"))
	be.True(t, IsBoolean("false"))
	be.True(t, IsBoolean("7"))
	be.True(t, IsBoolean("-0.5"))
	be.True(t, !IsBoolean("True"))
	be.True(t, !IsBoolean("x"))
}

func TestCharLiterals(t *testing.T) {
	valid := []string{`'a'`, `' '`, `'é'`, `'\n'`, `'\''`, `'\x'`, `'\123'`, `'\x7f'`, `'"'`}
	for _, text := range valid {
		be.True(t, IsChar(text))
	}

	invalid := []string{`''`, `'ab'`, `'''`, `'\'`, `a`, `"a"`, `'éé'`, `'\1234'`}
	for _, text := range invalid {
		be.True(t, !IsChar(text))
	}
}

func TestStringLiterals(t *testing.T) {
	valid := []string{`""`, `"hello"`, `"a \"quoted\" word"`, `"back\\"`, `"it's"`}
	for _, text := range valid {
		be.True(t, IsString(text))
	}

	invalid := []string{`"`, `"abc`, `abc"`, `"a"b"`, `"\"`, `'a'`}
	for _, text := range invalid {
		be.True(t, !IsString(text))
	}
}

func TestWidening(t *testing.T) {
	r := Builtin()
	lookup := func(name string) *Type {
		typ, ok := r.Lookup(name)
		be.True(t, ok)
		return typ
	}
	intType, doubleType, boolType := lookup(Int), lookup(Double), lookup(Boolean)
	charType, stringType := lookup(Char), lookup(String)

	be.True(t, doubleType.CanBeCreatedFrom(intType))
	be.True(t, !intType.CanBeCreatedFrom(doubleType))
	be.True(t, boolType.CanBeCreatedFrom(intType))
	be.True(t, boolType.CanBeCreatedFrom(doubleType))
	be.True(t, boolType.CanBeCreatedFrom(boolType))
	be.True(t, !charType.CanBeCreatedFrom(stringType))
	be.True(t, !stringType.CanBeCreatedFrom(charType))
	be.True(t, !intType.CanBeCreatedFrom(nil))
}

func TestRegistry(t *testing.T) {
	r := Builtin()
	be.Equal(t, r.Names(), []string{"int", "double", "boolean", "char", "String"})
	be.True(t, r.IsRegistered("String"))
	be.True(t, !r.IsRegistered("string"))

	be.Equal(t, r.ResolveLiteral("5").Name(), Int)
	be.Equal(t, r.ResolveLiteral("5.5").Name(), Double)
	be.Equal(t, r.ResolveLiteral("true").Name(), Boolean)
	be.Equal(t, r.ResolveLiteral("'c'").Name(), Char)
	be.Equal(t, r.ResolveLiteral(`"s"`).Name(), String)
	be.True(t, r.ResolveLiteral("name") == nil)

	_, err := NewRegistry(NewType("a", "", IsInteger), NewType("a", "", IsDouble))
	be.True(t, err != nil)
}

func TestDefaultValues(t *testing.T) {
	r := Builtin()
	for _, name := range r.Names() {
		typ, _ := r.Lookup(name)
		be.True(t, typ.DefaultValue() != "")
	}
}
