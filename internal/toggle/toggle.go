// Package toggle holds the named boolean state behind two-state commands.
package toggle

import (
	"sort"

	"vlcrc/internal/errors"
)

// Spec declares one toggle: its starting value and the command emitted
// when a flip lands on each value.
type Spec struct {
	Name      string
	Initial   bool
	WhenFalse string
	WhenTrue  string
}

type entry struct {
	value     bool
	whenFalse string
	whenTrue  string
}

// Set is the toggle store. It is owned by the dispatcher and is not safe
// for concurrent use.
type Set struct {
	entries map[string]*entry
}

// New declares the given toggles. Declaring a name twice or leaving a
// name empty is a configuration error.
func New(specs ...Spec) (*Set, error) {
	s := &Set{entries: make(map[string]*entry, len(specs))}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, errors.NewConfigError("toggle name is required", "", errors.InvalidConfig, nil)
		}
		if _, dup := s.entries[spec.Name]; dup {
			return nil, errors.NewConfigError("toggle declared twice", spec.Name, errors.InvalidConfig, nil)
		}
		s.entries[spec.Name] = &entry{
			value:     spec.Initial,
			whenFalse: spec.WhenFalse,
			whenTrue:  spec.WhenTrue,
		}
	}
	return s, nil
}

// Flip inverts the named toggle and returns the command for its new value.
func (s *Set) Flip(name string) (string, error) {
	e, ok := s.entries[name]
	if !ok {
		return "", errors.NewConfigError("unknown toggle", name, errors.UnknownToggle, nil)
	}
	e.value = !e.value
	if e.value {
		return e.whenTrue, nil
	}
	return e.whenFalse, nil
}

// Value reports the current value of name and whether it is declared.
func (s *Set) Value(name string) (bool, bool) {
	e, ok := s.entries[name]
	if !ok {
		return false, false
	}
	return e.value, true
}

// Names returns the declared toggle names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot captures every toggle's current value.
func (s *Set) Snapshot() map[string]bool {
	snap := make(map[string]bool, len(s.entries))
	for name, e := range s.entries {
		snap[name] = e.value
	}
	return snap
}

// Restore puts back values captured by Snapshot. Names that are no
// longer declared are ignored.
func (s *Set) Restore(snap map[string]bool) {
	for name, v := range snap {
		if e, ok := s.entries[name]; ok {
			e.value = v
		}
	}
}

// Reconcile builds a set from a new declaration list, carrying over the
// current value of every toggle that is still declared.
func (s *Set) Reconcile(specs []Spec) (*Set, error) {
	next, err := New(specs...)
	if err != nil {
		return nil, err
	}
	next.Restore(s.Snapshot())
	return next, nil
}
