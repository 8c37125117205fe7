// Package byline extracts short, sanitized channel descriptions ("bylines")
// from markdown-mirror renditions of creator profile pages. The pipeline is
// pure and stateless: classify the source URL, run the platform extractor,
// dedupe, redact self-identifying tokens, and clamp to a display length.
package byline

import (
	"regexp"
	"strings"
)

var (
	// The markdown mirror prefixes its output with a label line; everything up
	// to and including the label is wrapper, not page content.
	mirrorMarkerRe = regexp.MustCompile(`(?i)markdown content:`)

	hspaceRunRe    = regexp.MustCompile(`[ \t\x{00a0}]+`)
	trailingWSRe   = regexp.MustCompile(`[ \t]+\n`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	anyWSRunRe     = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes raw mirror output: strips the mirror preamble,
// unifies line endings, collapses horizontal whitespace runs, trims trailing
// spaces, and reduces 3+ blank lines to a single paragraph break. Line
// structure is preserved; use Flatten to reduce to one line.
func Normalize(raw string) string {
	if loc := mirrorMarkerRe.FindStringIndex(raw); loc != nil {
		raw = raw[loc[1]:]
	}
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = hspaceRunRe.ReplaceAllString(s, " ")
	s = trailingWSRe.ReplaceAllString(s, "\n")
	s = multiNewlineRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Flatten collapses every whitespace sequence (including newlines) to a
// single space and trims the ends.
func Flatten(s string) string {
	return strings.TrimSpace(anyWSRunRe.ReplaceAllString(s, " "))
}

// hasAlnum reports whether s contains at least one ASCII letter or digit.
// Extractors use it to reject blocks that are pure boilerplate punctuation.
func hasAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return true
		}
	}
	return false
}
