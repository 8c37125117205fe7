package byline

import "testing"

func TestClassifyURL(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://www.youtube.com/@SamStreams/about", PlatformYouTube},
		{"https://youtube.com/channel/UC12345", PlatformYouTube},
		{"https://youtu.be/abc123", PlatformYouTube},
		{"https://www.twitch.tv/samstreams/about", PlatformTwitch},
		{"https://twitch.tv/someone", PlatformTwitch},
		{"https://example.com/profile", PlatformGeneric},
		{"https://notyoutube.example.org/x", PlatformGeneric},
		// Scheme-less input is tolerated.
		{"www.youtube.com/@SamStreams", PlatformYouTube},
		{"twitch.tv/samstreams", PlatformTwitch},
		{"", PlatformGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := ClassifyURL(tt.url); got != tt.want {
				t.Errorf("ClassifyURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestPlatformString(t *testing.T) {
	tests := []struct {
		p    Platform
		want string
	}{
		{PlatformYouTube, "youtube"},
		{PlatformTwitch, "twitch"},
		{PlatformGeneric, "generic"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Platform(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestHandleFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"youtube at-handle", "https://www.youtube.com/@SamStreams/about", "SamStreams"},
		{"youtube channel id", "https://www.youtube.com/channel/UCabc123/about", "UCabc123"},
		{"youtube legacy c path", "https://youtube.com/c/CoolName", "CoolName"},
		{"youtube legacy user path", "https://youtube.com/user/legacyname", "legacyname"},
		{"youtube bare host", "https://www.youtube.com/", ""},
		{"twitch login", "https://www.twitch.tv/samstreams/about", "samstreams"},
		{"twitch bare host", "https://twitch.tv", ""},
		{"generic url yields no handle", "https://example.com/@someone", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandleFromURL(tt.url); got != tt.want {
				t.Errorf("HandleFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"twitch gets about suffix", "https://www.twitch.tv/samstreams", "https://www.twitch.tv/samstreams/about"},
		{"trailing slash trimmed first", "https://www.twitch.tv/samstreams/", "https://www.twitch.tv/samstreams/about"},
		{"youtube gets about suffix", "https://www.youtube.com/@SamStreams", "https://www.youtube.com/@SamStreams/about"},
		{"already canonical", "https://www.youtube.com/@SamStreams/about", "https://www.youtube.com/@SamStreams/about"},
		{"generic passes through", "https://example.com/profile", "https://example.com/profile"},
		{"surrounding whitespace trimmed", "  https://twitch.tv/x  ", "https://twitch.tv/x/about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalURL(tt.url)
			if got != tt.want {
				t.Errorf("CanonicalURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
			if again := CanonicalURL(got); again != got {
				t.Errorf("CanonicalURL not idempotent: %q -> %q", got, again)
			}
		})
	}
}
