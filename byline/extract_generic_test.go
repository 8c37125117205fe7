package byline

import (
	"strings"
	"testing"
)

func TestExtractGeneric(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "picks personable prose over navigation and boilerplate",
			page: strings.Join([]string{
				"Home",
				"Videos",
				"About",
				"",
				"We use cookie consent tools and share data with analytics partners.",
				"",
				"I make videos about retro gaming and hardware restoration.",
			}, "\n"),
			want: "I make videos about retro gaming and hardware restoration.",
		},
		{
			name: "navigation-only lines inside a paragraph are dropped",
			page: strings.Join([]string{
				"Search",
				"My channel is all about cozy variety streaming.",
				"More",
			}, "\n"),
			want: "My channel is all about cozy variety streaming.",
		},
		{
			name: "link syntax stripped before scoring",
			page: "Check my [store](https://shop.example.com) for posters, I restock weekly.",
			want: "Check my store for posters, I restock weekly.",
		},
		{
			name: "boilerplate everywhere yields empty",
			page: "This site uses cookie banners.\n\nRead our privacy policy.",
			want: "",
		},
		{
			name: "first paragraph wins a tie",
			page: "alpha one\n\nbeta two",
			want: "alpha one",
		},
		{
			name: "empty page",
			page: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractGeneric(tt.page); got != tt.want {
				t.Errorf("extractGeneric() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreParagraph(t *testing.T) {
	tests := []struct {
		name string
		p    string
		want int
	}{
		{
			name: "length plus sentence end plus personable",
			p:    "I make videos about retro gaming and old hardware.",
			want: scoreLength + scoreSentenceEnd + scorePersonable,
		},
		{
			name: "short fragment scores nothing",
			p:    "short bit",
			want: 0,
		},
		{
			name: "sentence end only",
			p:    "ends well.",
			want: scoreSentenceEnd,
		},
		{
			name: "personable but short",
			p:    "my channel",
			want: scorePersonable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreParagraph(tt.p); got != tt.want {
				t.Errorf("scoreParagraph(%q) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}
