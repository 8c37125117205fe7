package byline

import (
	"regexp"
	"strings"
)

// The Twitch About page renders as an "About <name>" heading, a follower
// count line, the channel blurb, and then the panel-image section (embedded
// image links). The blurb is the first real prose line between the follower
// count and the panels.

var (
	aboutHeadingRe = regexp.MustCompile(`(?i)^#{1,6}\s*About\b`)
	followerLineRe = regexp.MustCompile(`(?i)^\d[\d,.]*\s*[KMB]?\s*followers\b`)
	h3HeadingRe    = regexp.MustCompile(`^###\s`)
)

// panelMarker starts the channel's panel-image section.
const panelMarker = "[!["

func extractTwitchAbout(normalized string) string {
	lines := strings.Split(normalized, "\n")

	aboutIdx := -1
	for i, ln := range lines {
		if aboutHeadingRe.MatchString(strings.TrimSpace(ln)) {
			aboutIdx = i
			break
		}
	}
	if aboutIdx == -1 {
		return cleanupLoose(normalized)
	}

	followerIdx := -1
	for i := aboutIdx; i < len(lines); i++ {
		if followerLineRe.MatchString(strings.TrimSpace(lines[i])) {
			followerIdx = i
			break
		}
	}
	if followerIdx == -1 {
		return cleanupLoose(strings.Join(lines[aboutIdx+1:], "\n"))
	}

	for i := followerIdx + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if strings.Contains(line, panelMarker) || h3HeadingRe.MatchString(line) {
			break
		}
		clean := strings.TrimSpace(stripLinks(line))
		if clean == "" || decorLineRe.MatchString(clean) || !hasAlnum(clean) {
			continue
		}
		return Flatten(clean)
	}
	return ""
}
