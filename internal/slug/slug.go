// Package slug derives URL-friendly identifiers from theme names.
package slug

import (
	"regexp"
	"strings"
)

// maxLen caps generated slugs at the themes.slug column width.
const maxLen = 100

var (
	// disallowed matches anything that is not a lowercase letter, digit,
	// space, or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	// hyphenRuns collapses consecutive hyphens into one.
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Generate turns a theme name into a slug.
// Example: "Warm Bistro (2026)" becomes "warm-bistro-2026".
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = disallowed.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.Trim(s[:maxLen], "-")
	}
	return s
}
