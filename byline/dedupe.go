package byline

import (
	"regexp"
	"strings"
)

// Scrapes commonly echo their opening content: the same sentence twice, a
// repeated header glued on without sentence punctuation, or a short phrase
// stuttered at the very start. The three filters below are independent and
// composable; each is a pure (string) -> string pass and each is idempotent.

const (
	leadPhraseMin = 8
	leadPhraseMax = 160

	dupHeadMinInput = 30
	dupHeadScanFrom = 40
	dupHeadScanTo   = 20
)

// CollapseLeadingPhrase collapses a leading phrase that is immediately
// repeated one or more times down to a single occurrence. Longer phrases are
// preferred so a doubled sentence wins over its doubled prefix.
func CollapseLeadingPhrase(s string) string {
	for n := leadPhraseMax; n >= leadPhraseMin; n-- {
		if len(s) < 2*n {
			continue
		}
		if s[:n] != s[n:2*n] {
			continue
		}
		for len(s) >= 2*n && s[:n] == s[n:2*n] {
			s = s[n:]
		}
		return strings.TrimSpace(s)
	}
	return s
}

var sentenceBoundaryRe = regexp.MustCompile(`[.!?]["']?\s+`)

// DedupeSentences splits on sentence-ending punctuation and drops any
// sentence that case-insensitively repeats the immediately preceding retained
// sentence.
func DedupeSentences(s string) string {
	bounds := sentenceBoundaryRe.FindAllStringIndex(s, -1)
	if len(bounds) == 0 {
		return s
	}
	var parts []string
	start := 0
	for _, b := range bounds {
		end := b[1]
		for end > b[0] && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\n') {
			end--
		}
		parts = append(parts, s[start:end])
		start = b[1]
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}

	kept := parts[:0]
	for _, p := range parts {
		if len(kept) > 0 && sentenceKey(kept[len(kept)-1]) == sentenceKey(p) {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, " ")
}

func sentenceKey(s string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(s), `.!?"'`))
}

// CollapseDupHead splices out a duplicated head: if the first N characters
// (N scanning from 40 down to 20) repeat immediately at position N, the
// duplicate is removed and scanning restarts on the reduced string. Catches
// repeated headers that are not sentence-aligned. Strings under 30 chars are
// returned unchanged.
func CollapseDupHead(s string) string {
	if len(s) < dupHeadMinInput {
		return s
	}
	for {
		spliced := false
		for n := dupHeadScanFrom; n >= dupHeadScanTo; n-- {
			if len(s) < 2*n {
				continue
			}
			if s[:n] == s[n:2*n] {
				s = s[:n] + s[2*n:]
				spliced = true
				break
			}
		}
		if !spliced {
			return s
		}
	}
}
