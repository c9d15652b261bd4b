// Package htmlsanitize cleans the free-text notes stored on records.
//
// Notes are entered as plain text. StripTags removes any markup before a
// note is saved; PrepareForDisplay renders a stored note for a template,
// keeping line breaks.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	basic  = newBasicPolicy()
)

// newBasicPolicy allows the inline formatting legacy notes may carry.
func newBasicPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "b", "strong", "i", "em", "u", "ul", "ol", "li")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(true)
	return p
}

// StripTags removes every HTML element from s and trims surrounding space.
// Entities produced by the policy are decoded back to text.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Sanitize keeps basic inline formatting and drops everything else.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return basic.Sanitize(s)
}

// IsPlainText reports whether s has no tag-like sequence.
func IsPlainText(s string) bool {
	i := strings.IndexByte(s, '<')
	if i < 0 {
		return true
	}
	j := strings.IndexByte(s[i:], '>')
	if j < 0 {
		return true
	}
	tag := s[i+1 : i+j]
	return tag == "" || strings.HasPrefix(tag, " ")
}

// PlainTextToHTML escapes s and turns newlines into <br> inside one <p>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	esc := html.EscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return "<p>" + strings.ReplaceAll(esc, "\n", "<br>") + "</p>"
}

// PrepareForDisplay renders a note for a template: plain text is escaped
// with line breaks kept, markup is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return template.HTML(Sanitize(s))
}
