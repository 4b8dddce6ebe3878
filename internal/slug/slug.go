// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a display name to its slug.
//
// The transformation is:
//   - lowercase the input
//   - trim surrounding whitespace and turn every inner whitespace run into one hyphen
//   - drop everything except a-z, 0-9 and hyphen
//   - collapse repeated hyphens and strip them from both ends
//
// Slugify is idempotent and returns "" for blank input.
//
//	Slugify("Jane's Quilts")  // "janes-quilts"
//	Slugify("Quilt  Co.")     // "quilt-co"
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.Join(strings.FieldsFunc(s, isSpace), "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Equal reports whether two names collapse to the same non-empty slug.
func Equal(a, b string) bool {
	sa := Slugify(a)
	return sa != "" && sa == Slugify(b)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
