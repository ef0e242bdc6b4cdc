package pattern

import (
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Glob is a compiled shell-style wildcard pattern.
//
// Matching follows fnmatch rules: '*' matches any run of characters including
// path separators, '?' matches one character and '[seq]' / '[!seq]' match a
// character class. A '[' without a closing ']' is a literal '['. Braces and
// backslashes have no special meaning.
type Glob struct {
	// nil when no name can match, e.g. a pattern holding an empty class
	compiled glob.Glob
}

// Compile builds a Glob from pattern.
func Compile(pattern string) Glob {
	expr, ok := translate(pattern)
	if !ok {
		return Glob{}
	}
	g, err := glob.Compile(expr)
	if err != nil {
		return Glob{}
	}
	return Glob{compiled: g}
}

// Match reports whether name matches the pattern.
func (g Glob) Match(name string) bool {
	return g.compiled != nil && g.compiled.Match(name)
}

// translate rewrites an fnmatch pattern into gobwas/glob syntax. ok is false
// when the pattern contains a class that matches no character.
func translate(pattern string) (expr string, ok bool) {
	runes := []rune(pattern)

	var b strings.Builder
	b.Grow(len(pattern))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '*', '?':
			b.WriteRune(r)
		case '[':
			end := classEnd(runes, i+1)
			if end < 0 {
				writeLiteral(&b, r)
				continue
			}
			if !writeClass(&b, parseClass(runes[i+1:end])) {
				return "", false
			}
			i = end
		default:
			writeLiteral(&b, r)
		}
	}
	return b.String(), true
}

// classEnd returns the index of the ']' closing a class whose body starts at
// j, or -1 if the class is never closed. A ']' right after the opening '['
// or '[!' is a member.
func classEnd(runes []rune, j int) int {
	if j < len(runes) && runes[j] == '!' {
		j++
	}
	if j < len(runes) && runes[j] == ']' {
		j++
	}
	for ; j < len(runes); j++ {
		if runes[j] == ']' {
			return j
		}
	}
	return -1
}

type class struct {
	negated bool
	// ranges holds inclusive bounds; a single member has lo == hi
	ranges [][2]rune
}

// parseClass reads a class body. "x-y" is a range, a '-' first or last is a
// member, and a reversed range matches nothing.
func parseClass(body []rune) class {
	var c class
	if len(body) > 0 && body[0] == '!' {
		c.negated = true
		body = body[1:]
	}
	for k := 0; k < len(body); k++ {
		lo := body[k]
		if k+2 < len(body) && body[k+1] == '-' {
			hi := body[k+2]
			k += 2
			if lo <= hi {
				c.ranges = append(c.ranges, [2]rune{lo, hi})
			}
			continue
		}
		c.ranges = append(c.ranges, [2]rune{lo, lo})
	}
	return c
}

// writeClass emits c in gobwas form. gobwas accepts either one lo-hi range
// or a plain member list per class, so anything else is expanded into a
// member list.
func writeClass(b *strings.Builder, c class) bool {
	if len(c.ranges) == 1 {
		lo, hi := c.ranges[0][0], c.ranges[0][1]
		// a leading '!' would read as negation
		if lo < hi && (c.negated || lo != '!') {
			b.WriteByte('[')
			if c.negated {
				b.WriteByte('!')
			}
			b.WriteRune(lo)
			b.WriteByte('-')
			b.WriteRune(hi)
			b.WriteByte(']')
			return true
		}
	}

	var members []rune
	for _, rg := range c.ranges {
		for r := rg[0]; r <= rg[1]; r++ {
			members = append(members, r)
		}
	}
	slices.Sort(members)
	members = slices.Compact(members)

	switch {
	case len(members) == 0 && c.negated:
		b.WriteByte('?')
		return true
	case len(members) == 0:
		return false
	case len(members) == 1 && !c.negated:
		writeLiteral(b, members[0])
		return true
	}

	// gobwas reads the first member raw: it must not be followed by '-',
	// nor be '!' in a plain class.
	if i := slices.Index(members, '-'); i > 0 {
		members = append(append([]rune{'-'}, members[:i]...), members[i+1:]...)
	} else if i < 0 && !c.negated && members[0] == '!' {
		members[0], members[1] = members[1], members[0]
	}

	b.WriteByte('[')
	if c.negated {
		b.WriteByte('!')
	}
	for _, r := range members {
		if r == '\\' || r == ']' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte(']')
	return true
}

// writeLiteral emits r so gobwas matches it verbatim.
func writeLiteral(b *strings.Builder, r rune) {
	switch r {
	case '\\', '{', '}', '[', ']', ',', '*', '?':
		b.WriteByte('\\')
	}
	b.WriteRune(r)
}
