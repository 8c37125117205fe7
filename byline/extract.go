package byline

import (
	"regexp"
	"strings"
)

// extractor isolates the raw byline candidate for one platform family. The
// candidate is not yet deduplicated, redacted, or clamped; the orchestrator
// applies those uniformly afterwards. An empty result means the page has no
// byline text, which is a valid outcome.
type extractor func(normalized string) string

func extractorFor(p Platform) extractor {
	switch p {
	case PlatformYouTube:
		return extractYouTubeAbout
	case PlatformTwitch:
		return extractTwitchAbout
	default:
		return extractGeneric
	}
}

var (
	// Decorative line shapes shared across extractors.
	hrLineRe    = regexp.MustCompile(`^[-=_*]{3,}$`)
	decorLineRe = regexp.MustCompile(`^[\s\-–•·*]+$`)

	mdImageRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	bracketURLRe = regexp.MustCompile(`[\[(]\s*(?:https?://|www\.)[^\])\s]*\s*[\])]`)
	strayBrackRe = regexp.MustCompile(`[\[\]]`)
)

// stripLinks removes markdown image/link syntax (keeping link labels),
// bracket- or paren-wrapped bare URLs, and remaining bare URLs. Extraction
// drops link text outright; masking contact links in prose is redaction's
// job.
func stripLinks(s string) string {
	s = mdImageRe.ReplaceAllString(s, "")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = bracketURLRe.ReplaceAllString(s, "")
	s = urlRe.ReplaceAllString(s, "")
	return s
}

// cleanupLoose is the last-ditch candidate builder: drop decorative lines,
// strip link syntax, and flatten whatever prose remains.
func cleanupLoose(text string) string {
	var kept []string
	for _, ln := range strings.Split(text, "\n") {
		line := strings.TrimSpace(stripLinks(ln))
		if line == "" || hrLineRe.MatchString(line) || decorLineRe.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	out := Flatten(strings.Join(kept, " "))
	if !hasAlnum(out) {
		return ""
	}
	return out
}
