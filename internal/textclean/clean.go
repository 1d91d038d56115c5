// Package textclean normalizes text returned by the language model before
// it is persisted or served.
package textclean

import (
	"regexp"
	"strings"
)

// parenthetical matches a parenthesized aside together with the whitespace
// around it, e.g. " (gloss) " in "కర్మ (gloss) యోగం".
var parenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*`)

// Clean strips markdown bold markers and parenthetical asides that the
// model tends to sprinkle into Telugu text, then trims the result. Empty
// input comes back unchanged. Cleaning an already-clean string is a no-op.
func Clean(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "**", "")
	s = parenthetical.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
