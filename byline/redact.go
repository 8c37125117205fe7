package byline

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Mask replaces every redacted substring. It contains no word characters, so
// redaction is idempotent: a masked string is never itself a redaction
// target.
const Mask = "****"

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	urlRe   = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s<>()\[\]]+`)

	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
)

const (
	minTokenLen  = 4
	maxWindowLen = 8
)

// TokensForHandle expands a channel handle into the set of lowercase tokens
// that must never appear in extracted text. The set holds the full stripped
// handle, every contiguous substring of it with length in [4, min(8, len)],
// and every camelCase/digit segment of the original handle with length >= 4.
// Tokens are ordered longest-first so that alternation masks the longest
// candidate before any of its fragments.
func TokensForHandle(handle string) []string {
	base := strings.ToLower(handle)
	base = nonAlnumRe.ReplaceAllString(base, "")
	if base == "" {
		return nil
	}

	set := map[string]struct{}{base: {}}
	if len(base) >= minTokenLen {
		max := maxWindowLen
		if len(base) < max {
			max = len(base)
		}
		for n := minTokenLen; n <= max; n++ {
			for i := 0; i+n <= len(base); i++ {
				set[base[i:i+n]] = struct{}{}
			}
		}
	}
	for _, seg := range handleSegments(handle) {
		if len(seg) >= minTokenLen {
			set[strings.ToLower(seg)] = struct{}{}
		}
	}

	tokens := make([]string, 0, len(set))
	for t := range set {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}

// handleSegments splits a raw handle into camelCase words, all-caps runs, and
// digit runs. An all-caps run followed by a lowercase letter gives up its
// last letter to the next word ("JSONParser" -> "JSON", "Parser").
func handleSegments(handle string) []string {
	runes := []rune(handle)
	var segs []string
	i := 0
	for i < len(runes) {
		switch {
		case unicode.IsDigit(runes[i]):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			segs = append(segs, string(runes[i:j]))
			i = j
		case unicode.IsUpper(runes[i]):
			j := i + 1
			for j < len(runes) && unicode.IsUpper(runes[j]) {
				j++
			}
			if j < len(runes) && unicode.IsLower(runes[j]) {
				if j > i+1 {
					j-- // last capital starts the next word
				} else {
					for j < len(runes) && unicode.IsLower(runes[j]) {
						j++
					}
				}
			}
			segs = append(segs, string(runes[i:j]))
			i = j
		case unicode.IsLower(runes[i]):
			j := i
			for j < len(runes) && unicode.IsLower(runes[j]) {
				j++
			}
			segs = append(segs, string(runes[i:j]))
			i = j
		default:
			i++
		}
	}
	return segs
}

// tokenPattern compiles a case-insensitive whole-token alternation for the
// given token set, or nil for an empty set. Tokens are alphanumeric, so \b
// gives whole-token matching.
func tokenPattern(tokens []string) *regexp.Regexp {
	if len(tokens) == 0 {
		return nil
	}
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Redact masks every email address, every URL, and every whole-token match of
// the channel's self-identifying token set (derived from the source URL) in
// text, then collapses whitespace. Email and URL masking applies even when no
// handle can be derived. Deterministic and idempotent.
func Redact(text, sourceURL string) string {
	out := emailRe.ReplaceAllString(text, Mask)
	out = urlRe.ReplaceAllString(out, Mask)
	if re := tokenPattern(TokensForHandle(HandleFromURL(sourceURL))); re != nil {
		out = re.ReplaceAllString(out, Mask)
	}
	return Flatten(out)
}
