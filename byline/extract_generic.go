package byline

import (
	"regexp"
	"strings"
)

// The generic fallback has no structural cues to lean on, so it scores
// blank-line-separated paragraphs and returns the best one: navigation menu
// fragments are dropped line-by-line, legal boilerplate disqualifies a whole
// paragraph, and the scorer favors sentence-length personable prose.

// navWords are single navigation-menu words; whole-line match only.
var navWords = map[string]struct{}{
	"home": {}, "videos": {}, "shorts": {}, "live": {}, "playlists": {},
	"community": {}, "channels": {}, "store": {}, "members": {}, "about": {},
	"description": {}, "search": {}, "subscriptions": {}, "popular": {},
	"stats": {}, "links": {}, "details": {}, "location": {}, "joined": {},
	"business": {}, "email": {}, "contact": {}, "creator": {}, "more": {},
}

// boilerplateWords disqualify the paragraph that contains them: cookie
// banners and privacy notices score well on length and must never win.
var boilerplateWords = []string{
	"cookie", "consent", "privacy", "policy", "analytics",
	"partners", "third-party", "marketing", "targeting",
}

var personableRe = regexp.MustCompile(`(?i)\b(?:i|my|we|channel|subscribe|videos?|stream(?:ing)?|gaming|variety)\b`)

const (
	scoreLengthLow   = 40
	scoreLengthHigh  = 400
	scoreLength      = 60
	scoreSentenceEnd = 10
	scorePersonable  = 20
)

func scoreParagraph(p string) int {
	score := 0
	if n := len(p); n >= scoreLengthLow && n <= scoreLengthHigh {
		score += scoreLength
	}
	if strings.HasSuffix(p, ".") || strings.HasSuffix(p, "!") || strings.HasSuffix(p, "?") {
		score += scoreSentenceEnd
	}
	if personableRe.MatchString(p) {
		score += scorePersonable
	}
	return score
}

func containsBoilerplate(p string) bool {
	lower := strings.ToLower(p)
	for _, w := range boilerplateWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func extractGeneric(normalized string) string {
	best := ""
	bestScore := -1

	for _, para := range strings.Split(normalized, "\n\n") {
		if containsBoilerplate(para) {
			continue
		}
		var kept []string
		for _, ln := range strings.Split(para, "\n") {
			line := strings.TrimSpace(ln)
			if _, nav := navWords[strings.ToLower(line)]; nav {
				continue
			}
			line = strings.TrimSpace(strayBrackRe.ReplaceAllString(stripLinks(line), ""))
			if line == "" || hrLineRe.MatchString(line) || decorLineRe.MatchString(line) {
				continue
			}
			kept = append(kept, line)
		}
		cand := Flatten(strings.Join(kept, " "))
		if !hasAlnum(cand) {
			continue
		}
		// Ties keep the first-seen paragraph.
		if s := scoreParagraph(cand); s > bestScore {
			best, bestScore = cand, s
		}
	}
	return best
}
