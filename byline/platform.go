package byline

import (
	"net/url"
	"strings"
)

// Platform identifies which extractor handles a source URL. The set is
// closed: dispatch is an ordered substring match on the host, first match
// wins, and anything unrecognized falls through to the generic extractor.
type Platform int

const (
	PlatformGeneric Platform = iota
	PlatformYouTube
	PlatformTwitch
)

func (p Platform) String() string {
	switch p {
	case PlatformYouTube:
		return "youtube"
	case PlatformTwitch:
		return "twitch"
	default:
		return "generic"
	}
}

// ClassifyURL maps a source URL to its platform. Classification is pure and
// never fails; unparseable input is generic.
func ClassifyURL(sourceURL string) Platform {
	host := hostOf(sourceURL)
	switch {
	case strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be"):
		return PlatformYouTube
	case strings.Contains(host, "twitch.tv"):
		return PlatformTwitch
	default:
		return PlatformGeneric
	}
}

func hostOf(sourceURL string) string {
	u, err := url.Parse(strings.TrimSpace(sourceURL))
	if err != nil || u.Host == "" {
		// Tolerate scheme-less input ("www.youtube.com/@x").
		u, err = url.Parse("https://" + strings.TrimSpace(sourceURL))
		if err != nil {
			return ""
		}
	}
	return strings.ToLower(u.Host)
}

func pathSegments(sourceURL string) []string {
	u, err := url.Parse(strings.TrimSpace(sourceURL))
	if err != nil || u.Host == "" {
		u, err = url.Parse("https://" + strings.TrimSpace(sourceURL))
		if err != nil {
			return nil
		}
	}
	var segs []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// HandleFromURL derives the channel's public handle from a profile URL.
// YouTube: the "@handle" path segment, a "/channel/<id>" id, or a legacy
// "/c|/user/<name>" segment. Twitch: the first path segment (the login).
// Generic URLs yield no handle; email and URL masking still applies without
// one.
func HandleFromURL(sourceURL string) string {
	segs := pathSegments(sourceURL)
	switch ClassifyURL(sourceURL) {
	case PlatformYouTube:
		for i, s := range segs {
			if strings.HasPrefix(s, "@") {
				return strings.TrimPrefix(s, "@")
			}
			if (s == "channel" || s == "c" || s == "user") && i+1 < len(segs) {
				return segs[i+1]
			}
		}
		return ""
	case PlatformTwitch:
		if len(segs) > 0 {
			return segs[0]
		}
		return ""
	default:
		return ""
	}
}

// CanonicalURL forces the profile's "about" sub-page for platforms that have
// one. Canonicalization is idempotent: applying it to its own output returns
// the same URL.
func CanonicalURL(sourceURL string) string {
	sourceURL = strings.TrimSpace(sourceURL)
	trimmed := strings.TrimRight(sourceURL, "/")
	switch ClassifyURL(sourceURL) {
	case PlatformYouTube, PlatformTwitch:
		if strings.HasSuffix(strings.ToLower(trimmed), "/about") {
			return trimmed
		}
		return trimmed + "/about"
	default:
		return sourceURL
	}
}
