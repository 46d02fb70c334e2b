package keys

import (
	"strings"

	"vlcrc/internal/errors"

	"github.com/gobwas/glob"
)

// DefaultQueryPatterns match the RC commands whose whole point is their
// output.
var DefaultQueryPatterns = []string{"get_*", "info", "stats", "playlist", "status", "help", "longhelp"}

// QueryMatcher decides whether a configured binding should be treated as
// a query when the config does not say.
type QueryMatcher struct {
	patterns []glob.Glob
}

// NewQueryMatcher compiles patterns.
func NewQueryMatcher(patterns ...string) (*QueryMatcher, error) {
	m := &QueryMatcher{patterns: make([]glob.Glob, 0, len(patterns))}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewConfigError("invalid query pattern", p, errors.InvalidConfig, err)
		}
		m.patterns = append(m.patterns, g)
	}
	return m, nil
}

// Matches reports whether any line of command matches any pattern.
func (m *QueryMatcher) Matches(command string) bool {
	for _, line := range strings.Split(command, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, g := range m.patterns {
			if g.Match(line) {
				return true
			}
		}
	}
	return false
}
