// Package htmlutil holds the string primitives every renderer relies on:
// entity escaping, style and URL sanitization, text format wrapping and
// an ordered-attribute tag builder.
package htmlutil

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// EscapeHTML replaces &, <, >, " and ' with entities in a single pass.
// Escaping already-escaped text escapes it again; callers escape once.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// dangerousStyle matches style fragments that can run script or load resources.
var dangerousStyle = regexp.MustCompile(`(?i)javascript:|expression\(|url\(|@import`)

// SanitizeStyle removes javascript:, expression(, url( and @import from an
// inline CSS declaration string, case-insensitively. Removal repeats until
// nothing matches, so split tokens such as "javajavascript:script:" do not
// reassemble. No other character is changed.
func SanitizeStyle(style string) string {
	for dangerousStyle.MatchString(style) {
		style = dangerousStyle.ReplaceAllString(style, "")
	}
	return style
}

// BlankURL replaces link targets with a disallowed scheme.
const BlankURL = "about:blank"

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"sms":    true,
	"tel":    true,
}

// SanitizeURL returns raw unchanged when it is relative or uses an allowed
// scheme (http, https, mailto, sms, tel), and BlankURL otherwise.
func SanitizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return BlankURL
	}
	if u.Scheme == "" || allowedSchemes[strings.ToLower(u.Scheme)] {
		return raw
	}
	return BlankURL
}

// FormatFloat renders a number the way it should appear in markup: no
// exponent and no trailing zeros.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
