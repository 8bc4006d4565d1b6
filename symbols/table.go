package symbols

import (
	"errors"
	"maps"
	"slices"
)

var ErrPopGlobal = errors.New("cannot pop the global scope")

// Table maps names to symbols through a stack of frames.
//
// Push copies every binding of the current frame into a new frame, so
// changes made while the new frame is on top, such as marking a global as
// assigned, are discarded by the matching Pop. Symbols are stored by value;
// Get returns a copy, and callers Put a modified copy back.
type Table[S Symbol] struct {
	frames []map[string]S
}

func NewTable[S Symbol]() *Table[S] {
	return &Table[S]{frames: []map[string]S{{}}}
}

func (t *Table[S]) top() map[string]S {
	return t.frames[len(t.frames)-1]
}

// Depth is 1 at global scope.
func (t *Table[S]) Depth() int {
	return len(t.frames)
}

func (t *Table[S]) Push() {
	t.frames = append(t.frames, maps.Clone(t.top()))
}

func (t *Table[S]) Pop() error {
	if len(t.frames) == 1 {
		return ErrPopGlobal
	}
	t.frames = t.frames[:len(t.frames)-1]
	return nil
}

// Put binds s under its name in the current frame and returns the binding
// it replaced, if any.
func (t *Table[S]) Put(s S) (prev S, replaced bool) {
	name := s.Key().Name
	prev, replaced = t.top()[name]
	t.top()[name] = s
	return prev, replaced
}

func (t *Table[S]) Get(name string) (S, bool) {
	s, ok := t.top()[name]
	return s, ok
}

func (t *Table[S]) Contains(name string) bool {
	_, ok := t.top()[name]
	return ok
}

// Remove unbinds name in the current frame only.
func (t *Table[S]) Remove(name string) bool {
	_, ok := t.top()[name]
	delete(t.top(), name)
	return ok
}

// Names returns the names bound in the current frame, sorted.
func (t *Table[S]) Names() []string {
	return slices.Sorted(maps.Keys(t.top()))
}

// Symbols returns the symbols of the current frame ordered by name.
func (t *Table[S]) Symbols() []S {
	names := t.Names()
	out := make([]S, len(names))
	for i, name := range names {
		out[i] = t.top()[name]
	}
	return out
}
