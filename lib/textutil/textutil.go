package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeToken upper-cases a value and trims surrounding whitespace, it is
// how the portal's combo-box values and sub-unit markers are compared.
func NormalizeToken(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// CollapseWhitespace trims a value and replaces every run of whitespace
// inside of it with a single space.
func CollapseWhitespace(value string) string {
	value = strings.TrimSpace(value)
	return whitespaceRegex.ReplaceAllString(value, " ")
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(substr))
}
