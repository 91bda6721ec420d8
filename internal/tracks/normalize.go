// Package tracks resolves an album's community-rating track order and
// selects representative tracks from the destination catalog.
package tracks

import (
	"regexp"
	"strings"
)

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	// delimiterTail strips a trailing dash-delimited subtitle or feature
	// segment, e.g. " - Remix" or " – Live".
	delimiterTail = regexp.MustCompile(`\s+[-–—].*$`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// NormalizeName canonicalizes a track name for cross-catalog matching:
// lowercase, parenthesized annotations removed, any dash-delimited tail
// removed, whitespace collapsed. Idempotent.
func NormalizeName(name string) string {
	s := strings.ToLower(name)
	s = parenthetical.ReplaceAllString(s, "")
	s = delimiterTail.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
