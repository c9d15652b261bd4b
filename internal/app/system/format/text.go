// internal/app/system/format/text.go
package format

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultTruncateLength is the length Truncate callers use for list cells.
const DefaultTruncateLength = 100

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWord       = regexp.MustCompile(`[^\w-]+`)
	hyphenRun     = regexp.MustCompile(`--+`)
)

// combining diacritical marks block, U+0300..U+036F
var diacritic = runes.Predicate(func(r rune) bool { return r >= 0x0300 && r <= 0x036F })

// StripDiacritics decomposes s and removes combining diacritical marks.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(diacritic))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify turns free text into a URL-safe identifier: diacritics stripped,
// lowercased, whitespace runs become "-", anything outside [A-Za-z0-9_-] is
// dropped and repeated hyphens collapse. Slugify(Slugify(x)) == Slugify(x).
func Slugify(s string) string {
	s = strings.TrimSpace(strings.ToLower(StripDiacritics(s)))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonWord.ReplaceAllString(s, "")
	return hyphenRun.ReplaceAllString(s, "-")
}

// Truncate shortens s to n runes, appending "..." when anything was cut.
func Truncate(s string, n int) string {
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}

// Fold lowercases s and strips diacritics for accent-insensitive matching.
func Fold(s string) string {
	return strings.ToLower(StripDiacritics(s))
}
