package pattern

import (
	"path/filepath"
	"strings"
)

// excludeRule is one parsed line of the ignore list.
type excludeRule struct {
	// prefix is set for "dir/*" rules, which exclude by plain string prefix
	prefix   string
	isPrefix bool
	direct   Glob
	anyDepth Glob
}

// Matcher decides which paths are selected by include and exclude lists.
type Matcher struct {
	include []Glob
	exclude []excludeRule
}

// NewMatcher compiles include and exclude pattern lists.
//
// Include patterns are tested against a file's basename. Exclude patterns are
// tested against a path relative to the scan root, after stripping leading
// slashes. An exclude pattern ending in "/*" excludes every relative path that
// starts with the text before "/*". Any other exclude pattern excludes a path
// that matches it directly or matches it prefixed with "**/".
func NewMatcher(include, exclude []string) *Matcher {
	m := &Matcher{
		include: make([]Glob, 0, len(include)),
		exclude: make([]excludeRule, 0, len(exclude)),
	}

	for _, p := range include {
		m.include = append(m.include, Compile(p))
	}

	for _, p := range exclude {
		p = strings.TrimLeft(p, "/")
		if strings.HasSuffix(p, "/*") {
			m.exclude = append(m.exclude, excludeRule{
				prefix:   strings.TrimSuffix(p, "/*"),
				isPrefix: true,
			})
			continue
		}
		m.exclude = append(m.exclude, excludeRule{
			direct:   Compile(p),
			anyDepth: Compile("**/" + p),
		})
	}

	return m
}

// Included reports whether the basename of path matches any include pattern.
// With no include patterns nothing is included.
func (m *Matcher) Included(path string) bool {
	name := filepath.Base(path)
	for _, g := range m.include {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Excluded reports whether rel, a path relative to the scan root, matches any
// exclude pattern.
func (m *Matcher) Excluded(rel string) bool {
	for _, r := range m.exclude {
		if r.isPrefix {
			if strings.HasPrefix(rel, r.prefix) {
				return true
			}
			continue
		}
		if r.direct.Match(rel) || r.anyDepth.Match(rel) {
			return true
		}
	}
	return false
}

// IncludeCount returns the number of include patterns.
func (m *Matcher) IncludeCount() int {
	return len(m.include)
}

// ExcludeCount returns the number of exclude patterns.
func (m *Matcher) ExcludeCount() int {
	return len(m.exclude)
}
