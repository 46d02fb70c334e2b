// Package keys maps keypresses to remote-control commands.
//
// The table is built once from a declarative list keyed by the final key
// identifiers. A Registry never changes after New returns; a config
// reload builds a fresh one.
package keys

import (
	"vlcrc/internal/errors"
	"vlcrc/internal/toggle"
	"vlcrc/pkg/types"
)

// Entry describes what one key does and where it appears in the help
// layout.
type Entry struct {
	Key types.Key
	// Glyph is how the key is drawn in the help layout. Defaults to Key.
	Glyph string
	// Label is the description shown next to the glyph. Entries without
	// a label (the bookmark keys) are left out of the layout.
	Label   string
	Column  int
	Command Template
	// Query entries always show their response in the pager.
	Query bool
}

// Title is the text used to head the pager for this entry.
func (e Entry) Title() string {
	if e.Label != "" {
		return e.Label
	}
	if !e.Command.IsResolver() {
		return e.Command.String()
	}
	return e.displayGlyph()
}

// Resolve returns the exact command text for this entry.
func (e Entry) Resolve(toggles *toggle.Set) (string, error) {
	return Resolve(e.Command, toggles)
}

func (e Entry) displayGlyph() string {
	if e.Glyph != "" {
		return e.Glyph
	}
	return string(e.Key)
}

// Registry is an immutable key table.
type Registry struct {
	entries []Entry
	index   map[types.Key]int
	layout  Layout
}

// New validates entries and builds the registry. A key listed twice is
// rejected rather than letting the later entry win.
func New(entries []Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, len(entries)),
		index:   make(map[types.Key]int, len(entries)),
	}
	copy(r.entries, entries)

	for i, e := range r.entries {
		if e.Key == "" {
			return nil, errors.NewConfigError("binding has no key", "", errors.InvalidBinding, nil)
		}
		if _, dup := r.index[e.Key]; dup {
			return nil, errors.NewConfigError("key bound twice", string(e.Key), errors.DuplicateKey, nil)
		}
		if e.Command.IsZero() {
			return nil, errors.NewConfigError("binding has no command", string(e.Key), errors.InvalidBinding, nil)
		}
		if e.Column < 0 || e.Column >= Columns {
			return nil, errors.NewConfigError("binding column out of range", string(e.Key), errors.InvalidBinding, nil)
		}
		r.index[e.Key] = i
	}

	r.layout = computeLayout(r.entries)
	return r, nil
}

// Lookup finds the entry bound to k. An unmapped key is not an error.
func (r *Registry) Lookup(k types.Key) (Entry, bool) {
	i, ok := r.index[k]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Entries returns the table in declaration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len is the number of bound keys.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Layout returns the help-screen placement computed for this table.
func (r *Registry) Layout() Layout {
	return r.layout
}

// Merge overlays overrides on base. An override replaces the base entry
// bound to the same key in place; the rest are appended in order, so a
// key repeated within overrides still reaches New twice and is rejected.
func Merge(base, overrides []Entry) []Entry {
	first := make(map[types.Key]int, len(overrides))
	for i, o := range overrides {
		if _, seen := first[o.Key]; !seen {
			first[o.Key] = i
		}
	}

	used := make(map[int]bool, len(overrides))
	out := make([]Entry, 0, len(base)+len(overrides))
	for _, e := range base {
		if i, ok := first[e.Key]; ok && !used[i] {
			out = append(out, overrides[i])
			used[i] = true
			continue
		}
		out = append(out, e)
	}
	for i, o := range overrides {
		if !used[i] {
			out = append(out, o)
		}
	}
	return out
}
