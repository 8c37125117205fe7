package byline

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxRawLen bounds memory against adversarial or malformed mirror
	// responses. Callers truncate before handing text to the pipeline; the
	// pipeline enforces the cap again.
	MaxRawLen = 400_000

	// DefaultMaxLen is the display clamp for finished bylines.
	DefaultMaxLen = 100

	// Ellipsis marks a clamped byline.
	Ellipsis = "…"
)

// Redaction can mask the final token of a string, leaving a dangling
// "****;)" tail. The cleanup runs after redaction, the only point at which
// masking has occurred.
var maskedTailRe = regexp.MustCompile(`\*{4,}[\W_]*$`)

// Pipeline turns raw mirror markdown into a finished byline. It is pure and
// stateless; a single Pipeline is safe for concurrent use.
type Pipeline struct {
	maxLen int
}

// New returns a Pipeline clamping output to maxLen characters. Non-positive
// maxLen selects DefaultMaxLen.
func New(maxLen int) *Pipeline {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Pipeline{maxLen: maxLen}
}

// MaxLen reports the configured display clamp.
func (p *Pipeline) MaxLen() int { return p.maxLen }

// GetByline extracts, deduplicates, redacts, and clamps the byline for a
// profile page. The empty string is the canonical "no byline available"
// result, not an error. Malformed input is expected: any internal fault is
// recovered at this boundary and degrades to the empty result.
func (p *Pipeline) GetByline(sourceURL, rawMarkdown string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("byline pipeline recovered", slog.Any("panic", r),
				slog.String("url", sourceURL), slog.String("component", "byline"))
			out = ""
		}
	}()

	if len(rawMarkdown) > MaxRawLen {
		rawMarkdown = rawMarkdown[:MaxRawLen]
	}
	norm := Normalize(rawMarkdown)

	cand := extractorFor(ClassifyURL(sourceURL))(norm)
	if strings.TrimSpace(cand) == "" {
		// Structurally no byline text on this page; skip the later stages.
		return ""
	}

	cand = CollapseLeadingPhrase(cand)
	cand = DedupeSentences(cand)
	cand = CollapseDupHead(cand)
	cand = Redact(cand, sourceURL)
	cand = stripMaskedTail(cand)
	return clamp(cand, p.maxLen)
}

// stripMaskedTail removes a trailing run of 4+ mask characters plus any
// dangling punctuation or emoticon left behind it.
func stripMaskedTail(s string) string {
	return strings.TrimSpace(maskedTailRe.ReplaceAllString(s, ""))
}

// clamp truncates s to at most max characters, cutting at the last
// whitespace boundary before the limit and appending an ellipsis.
func clamp(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	cut := max - utf8.RuneCountInString(Ellipsis)
	if cut < 1 {
		cut = 1
	}
	head := runes[:cut]
	// Cutting mid-word trims back to the previous word boundary; a cut that
	// lands on whitespace already sits on one.
	if cut < len(runes) && runes[cut] != ' ' && runes[cut] != '\t' {
		if i := lastSpaceIndex(head); i > 0 {
			head = head[:i]
		}
	}
	return strings.TrimRight(string(head), " \t") + Ellipsis
}

func lastSpaceIndex(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' || runes[i] == '\t' {
			return i
		}
	}
	return -1
}
