// Package genre provides genre slug normalization and the source-site
// genre directory.
package genre

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	invalidChars  = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Slugify maps free-text genre input to the source site's URL path segment:
// lowercase, internal whitespace collapsed to single hyphens, anything
// outside [a-z0-9-] stripped. Slugify(Slugify(x)) == Slugify(x).
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = invalidChars.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// DisplayName derives a human-readable name from a slug by capitalizing
// each hyphen segment. Used for directory listings only; it does not
// round-trip through Slugify for genres with punctuation.
func DisplayName(slug string) string {
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
