package workspace

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gobwas/glob"
)

// IgnoreMatcher matches workspace-relative paths against Fossil style glob
// lists. As in Fossil, "*" also matches "/".
type IgnoreMatcher struct {
	patterns []string
	globs    []glob.Glob
}

// SplitGlobList splits a Fossil glob setting into its patterns.
// Patterns are separated by commas or whitespace and may be quoted.
func SplitGlobList(list string) []string {
	var patterns []string
	var cur strings.Builder
	var quote rune

	flush := func() {
		p := strings.TrimSpace(cur.String())
		if p != "" {
			patterns = append(patterns, p)
		}
		cur.Reset()
	}

	for _, r := range list {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
		case r == ',' || unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return patterns
}

// NewIgnoreMatcher compiles the patterns of every glob list.
func NewIgnoreMatcher(lists ...string) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{}
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, p := range SplitGlobList(list) {
			if seen[p] {
				continue
			}
			seen[p] = true
			g, err := glob.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
			}
			m.patterns = append(m.patterns, p)
			m.globs = append(m.globs, g)
		}
	}
	return m, nil
}

// Empty reports whether the matcher has no patterns.
func (m *IgnoreMatcher) Empty() bool {
	return m == nil || len(m.globs) == 0
}

// Patterns returns the compiled patterns in order.
func (m *IgnoreMatcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.patterns...)
}

// Match reports whether rel, or one of its leading directories, matches.
func (m *IgnoreMatcher) Match(rel string) bool {
	if m.Empty() || rel == "" {
		return false
	}
	candidate := rel
	for {
		for _, g := range m.globs {
			if g.Match(candidate) {
				return true
			}
		}
		i := strings.LastIndexByte(candidate, '/')
		if i <= 0 {
			return false
		}
		candidate = candidate[:i]
	}
}
