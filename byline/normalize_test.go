package byline

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips mirror preamble through the content marker",
			input: "Title: Some Channel\nURL Source: https://example.com\nMarkdown Content:\nHello world",
			want:  "Hello world",
		},
		{
			name:  "marker match is case-insensitive",
			input: "markdown content:\nactual text",
			want:  "actual text",
		},
		{
			name:  "no marker leaves content intact",
			input: "plain text with no wrapper",
			want:  "plain text with no wrapper",
		},
		{
			name:  "unifies CRLF and bare CR line endings",
			input: "line one\r\nline two\rline three",
			want:  "line one\nline two\nline three",
		},
		{
			name:  "collapses horizontal whitespace runs",
			input: "spaced\t\t out   text",
			want:  "spaced out text",
		},
		{
			name:  "trims trailing spaces on lines",
			input: "ends with spaces   \nnext line",
			want:  "ends with spaces\nnext line",
		},
		{
			name:  "reduces blank line runs to one paragraph break",
			input: "para one\n\n\n\n\npara two",
			want:  "para one\n\npara two",
		},
		{
			name:  "trims leading and trailing whitespace",
			input: "\n\n  centered  \n\n",
			want:  "centered",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Markdown Content:\nHello\r\nworld\n\n\n\nbye",
		"no wrapper\t here",
		"",
	}
	for _, in := range inputs {
		first := Normalize(in)
		if second := Normalize(first); second != first {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", in, first, second)
		}
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a\nb\tc", "a b c"},
		{"  padded   text  ", "padded text"},
		{"one\n\n\ntwo", "one two"},
		{"", ""},
		{"single", "single"},
	}
	for _, tt := range tests {
		if got := Flatten(tt.input); got != tt.want {
			t.Errorf("Flatten(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
