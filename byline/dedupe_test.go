package byline

import (
	"strings"
	"testing"
)

func TestCollapseLeadingPhrase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "doubled leading sentence",
			input: "Hello world! Hello world! Extra",
			want:  "Hello world! Extra",
		},
		{
			name:  "tripled leading phrase collapses fully",
			input: strings.Repeat("I make videos. ", 3) + "Welcome.",
			want:  "I make videos. Welcome.",
		},
		{
			name:  "no repetition unchanged",
			input: "Just a normal sentence with no echo.",
			want:  "Just a normal sentence with no echo.",
		},
		{
			name:  "repeat shorter than minimum is kept",
			input: "ha ha ha",
			want:  "ha ha ha",
		},
		{
			name:  "repetition not at the start is kept",
			input: "Intro. Echo echo echo end.",
			want:  "Intro. Echo echo echo end.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollapseLeadingPhrase(tt.input)
			if got != tt.want {
				t.Errorf("CollapseLeadingPhrase(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := CollapseLeadingPhrase(got); again != got {
				t.Errorf("CollapseLeadingPhrase not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestDedupeSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "adjacent duplicate dropped",
			input: "I make games. I make games. Come watch.",
			want:  "I make games. Come watch.",
		},
		{
			name:  "case-insensitive match",
			input: "Welcome to my channel! WELCOME TO MY CHANNEL! Enjoy.",
			want:  "Welcome to my channel! Enjoy.",
		},
		{
			name:  "non-adjacent duplicates kept",
			input: "First one. Something else. First one.",
			want:  "First one. Something else. First one.",
		},
		{
			name:  "no boundaries returns input unchanged",
			input: "a single run of text without terminal punctuation",
			want:  "a single run of text without terminal punctuation",
		},
		{
			name:  "quoted sentence end",
			input: `He said "hi." He said "hi." Then left.`,
			want:  `He said "hi." Then left.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupeSentences(tt.input)
			if got != tt.want {
				t.Errorf("DedupeSentences(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := DedupeSentences(got); again != got {
				t.Errorf("DedupeSentences not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestCollapseDupHead(t *testing.T) {
	head := "0123456789abcdefghij" // 20 chars, the scan minimum

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "duplicated 20-char head is spliced out",
			input: head + head + " trailing text",
			want:  head + " trailing text",
		},
		{
			name:  "short strings untouched",
			input: "tiny tiny tiny",
			want:  "tiny tiny tiny",
		},
		{
			name:  "no duplication unchanged",
			input: "a perfectly ordinary description of a channel",
			want:  "a perfectly ordinary description of a channel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollapseDupHead(tt.input)
			if got != tt.want {
				t.Errorf("CollapseDupHead(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
