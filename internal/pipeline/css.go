package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultPrefix is the wrapper class every bundled stylesheet is scoped to.
const DefaultPrefix = "lexical-content"

const maxPrefixLength = 64

// ErrInvalidPrefix indicates a CSS class prefix that is not a valid identifier.
var ErrInvalidPrefix = errors.New("invalid CSS prefix")

var prefixPattern = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// ValidatePrefix checks that prefix can be used as a CSS class name.
// An empty prefix is valid and means DefaultPrefix.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if len(prefix) > maxPrefixLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidPrefix, maxPrefixLength)
	}
	if !prefixPattern.MatchString(prefix) {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}
	return nil
}

// ApplyPrefix replaces every `.lexical-content` class selector with `.prefix`.
func ApplyPrefix(css, prefix string) string {
	if prefix == "" || prefix == DefaultPrefix {
		return css
	}
	return strings.ReplaceAll(css, "."+DefaultPrefix, "."+prefix)
}

// minifyRules run in order; later rules depend on the whitespace collapse.
var minifyRules = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`/\*[\s\S]*?\*/`), ""},
	{regexp.MustCompile(`\s+`), " "},
	{regexp.MustCompile(`;\s*}`), "}"},
	{regexp.MustCompile(`\s*\{\s*`), "{"},
	{regexp.MustCompile(`\s*}\s*`), "}"},
	{regexp.MustCompile(`\s*,\s*`), ","},
	{regexp.MustCompile(`\s*:\s*`), ":"},
	{regexp.MustCompile(`\s*;\s*`), ";"},
}

// MinifyCSS strips comments and insignificant whitespace.
// Whitespace around `:` is removed everywhere, including descendant
// selectors with pseudo-classes such as `a :hover`.
func MinifyCSS(css string) string {
	for _, rule := range minifyRules {
		css = rule.pattern.ReplaceAllString(css, rule.repl)
	}
	return strings.TrimSpace(css)
}

// MinifyScript drops full-line `//` comments, blank lines and indentation.
// Code on a line is left untouched.
func MinifyScript(js string) string {
	lines := strings.Split(js, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
