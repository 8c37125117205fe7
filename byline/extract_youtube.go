package byline

import (
	"regexp"
	"strings"
)

// The YouTube About tab, as rendered by the markdown mirror, carries the
// channel description between a "Description" heading and the "Links"
// section (or the trailing metadata: subscriber counts, join date, country).
// A small line-indexed state machine walks the page: seeking-start until the
// Description heading, in-block until a stop line, then done.

var (
	descHeadingRe  = regexp.MustCompile(`(?i)^(?:#{1,6}\s*)?Description\b:?\s*(.*)$`)
	linksHeadingRe = regexp.MustCompile(`(?i)^(?:#{1,6}\s*)?Links\b\s*$`)
	mdHeadingRe    = regexp.MustCompile(`^#{2,6}\s`)
	stopPhraseRe   = regexp.MustCompile(`(?i)^\[?\s*(?:More info|Sign in|Log in)\b`)
	countLineRe    = regexp.MustCompile(`(?i)^[\d.,]+\s*[KMB]?\s*(?:subscribers?|views?|videos?)\b`)
	joinedLineRe   = regexp.MustCompile(`(?i)^Joined\b`)
	shareLineRe    = regexp.MustCompile(`(?i)^Share channel\b`)
	bracketOnlyRe  = regexp.MustCompile(`^\[[^\]]*\]$`)
)

// Bare country names appear between the description and the stat lines on
// About tabs. Whole-line match only.
var countryLines = map[string]struct{}{
	"united states": {}, "united kingdom": {}, "canada": {}, "australia": {},
	"germany": {}, "france": {}, "spain": {}, "italy": {}, "netherlands": {},
	"sweden": {}, "norway": {}, "denmark": {}, "finland": {}, "poland": {},
	"brazil": {}, "mexico": {}, "argentina": {}, "japan": {}, "south korea": {},
	"india": {}, "indonesia": {}, "philippines": {}, "thailand": {},
	"vietnam": {}, "singapore": {}, "malaysia": {}, "new zealand": {},
	"ireland": {}, "portugal": {}, "austria": {}, "switzerland": {},
	"belgium": {}, "russia": {}, "ukraine": {}, "turkey": {}, "israel": {},
	"south africa": {}, "taiwan": {}, "hong kong": {}, "china": {},
}

func isCountryLine(line string) bool {
	_, ok := countryLines[strings.ToLower(strings.TrimSpace(line))]
	return ok
}

// isYouTubeStop reports whether a line terminates the description block.
func isYouTubeStop(line string) bool {
	return linksHeadingRe.MatchString(line) ||
		mdHeadingRe.MatchString(line) ||
		stopPhraseRe.MatchString(line) ||
		countLineRe.MatchString(line) ||
		joinedLineRe.MatchString(line) ||
		shareLineRe.MatchString(line) ||
		isCountryLine(line)
}

type ytScanState int

const (
	ytSeekingStart ytScanState = iota
	ytInBlock
	ytDone
)

func extractYouTubeAbout(normalized string) string {
	state := ytSeekingStart
	var frags []string

	for _, raw := range strings.Split(normalized, "\n") {
		line := strings.TrimSpace(raw)
		switch state {
		case ytSeekingStart:
			m := descHeadingRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			state = ytInBlock
			// Inline trailing text on the heading line is the first
			// fragment of the block.
			if rest := strings.TrimSpace(m[1]); rest != "" {
				if isYouTubeStop(rest) {
					state = ytDone
					break
				}
				frags = append(frags, rest)
			}
		case ytInBlock:
			if isYouTubeStop(line) {
				state = ytDone
				break
			}
			if line == "" || hrLineRe.MatchString(line) || bracketOnlyRe.MatchString(line) {
				continue
			}
			frags = append(frags, line)
		}
		if state == ytDone {
			break
		}
	}

	cand := Flatten(strings.Join(frags, " "))
	// A pure-boilerplate About tab must not produce a garbage byline.
	if !hasAlnum(cand) {
		return ""
	}
	return cand
}
