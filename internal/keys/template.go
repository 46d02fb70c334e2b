package keys

import (
	"strings"

	"vlcrc/internal/errors"
	"vlcrc/internal/toggle"
)

type templateKind int

const (
	kindNone templateKind = iota
	kindLiteral
	kindSequence
	kindResolver
)

// ResolverFunc produces a Literal or Sequence at dispatch time. It gets
// the dispatcher's toggle set so toggles reflect send-time state.
type ResolverFunc func(toggles *toggle.Set) (Template, error)

// Template is the command a key sends: a literal line, an ordered
// sequence of lines, or a resolver evaluated when the key is pressed.
type Template struct {
	kind  templateKind
	lines []string
	fn    ResolverFunc
}

// Literal is a single command line.
func Literal(command string) Template {
	return Template{kind: kindLiteral, lines: []string{command}}
}

// Sequence is several command lines sent over one connection.
func Sequence(commands ...string) Template {
	lines := make([]string, len(commands))
	copy(lines, commands)
	return Template{kind: kindSequence, lines: lines}
}

// Resolver defers the choice of command to fn.
func Resolver(fn ResolverFunc) Template {
	return Template{kind: kindResolver, fn: fn}
}

// ToggleCommand flips the named toggle and sends the command for the
// value it lands on.
func ToggleCommand(name string) Template {
	return Resolver(func(toggles *toggle.Set) (Template, error) {
		cmd, err := toggles.Flip(name)
		if err != nil {
			return Template{}, err
		}
		return Literal(cmd), nil
	})
}

// IsZero reports whether t was never set.
func (t Template) IsZero() bool {
	return t.kind == kindNone
}

// IsResolver reports whether t is resolved lazily.
func (t Template) IsResolver() bool {
	return t.kind == kindResolver
}

// String renders static templates as the text they send. Resolvers have
// no text until they run.
func (t Template) String() string {
	switch t.kind {
	case kindLiteral, kindSequence:
		return strings.Join(t.lines, "\n")
	case kindResolver:
		return "<resolver>"
	}
	return ""
}

// Resolve turns t into the exact text to send.
func Resolve(t Template, toggles *toggle.Set) (string, error) {
	switch t.kind {
	case kindLiteral, kindSequence:
		return strings.Join(t.lines, "\n"), nil
	case kindResolver:
		if t.fn == nil {
			return "", errors.NewConfigError("resolver has no function", "", errors.InvalidBinding, nil)
		}
		out, err := t.fn(toggles)
		if err != nil {
			return "", err
		}
		if out.kind != kindLiteral && out.kind != kindSequence {
			return "", errors.NewConfigError("resolver must produce a literal or sequence", "", errors.InvalidBinding, nil)
		}
		return strings.Join(out.lines, "\n"), nil
	}
	return "", errors.NewConfigError("empty command template", "", errors.InvalidBinding, nil)
}
