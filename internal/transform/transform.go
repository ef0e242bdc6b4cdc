// Package transform shrinks file content before it is aggregated: whitespace
// is collapsed and, for a fixed set of extensions, comments are removed.
package transform

import (
	"regexp"
	"strings"
)

var (
	cStyleComments = regexp.MustCompile(`//[^\n]*|/\*(?s:.*?)\*/`)
	hashComments   = regexp.MustCompile(`#[^\n]*|'''(?s:.*?)'''|"""(?s:.*?)"""`)
	markupComments = regexp.MustCompile(`<!--(?s:.*?)-->`)
)

var commentSyntax = map[string]*regexp.Regexp{
	".js":   cStyleComments,
	".ts":   cStyleComments,
	".jsx":  cStyleComments,
	".tsx":  cStyleComments,
	".css":  cStyleComments,
	".py":   hashComments,
	".html": markupComments,
	".xml":  markupComments,
}

// CollapseWhitespace replaces every run of whitespace, newlines included,
// with a single space and trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripComments removes the comment syntax associated with ext.
// Extensions are compared case-insensitively; unknown extensions are
// returned unchanged.
func StripComments(s, ext string) string {
	re, ok := commentSyntax[strings.ToLower(ext)]
	if !ok {
		return s
	}
	return re.ReplaceAllString(s, "")
}

// Transform collapses whitespace and then strips comments.
//
// The order matters: once content is flattened to one line, a "//" or "#"
// comment runs to the end of the whole content rather than to its original
// newline.
func Transform(s, ext string) string {
	return StripComments(CollapseWhitespace(s), ext)
}
