package mirror

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/onnwee/byline-relay/byline"
)

func TestMirrorURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		target string
		want   string
	}{
		{
			name:   "https scheme stripped",
			base:   "https://mirror.example/https://",
			target: "https://www.twitch.tv/samstreams/about",
			want:   "https://mirror.example/https://www.twitch.tv/samstreams/about",
		},
		{
			name:   "http scheme stripped",
			base:   "https://mirror.example/https://",
			target: "http://example.com/page",
			want:   "https://mirror.example/https://example.com/page",
		},
		{
			name:   "default base when unset",
			base:   "",
			target: "https://example.com",
			want:   DefaultBaseURL + "example.com",
		},
		{
			name:   "whitespace trimmed",
			base:   "https://mirror.example/",
			target: "  https://example.com  ",
			want:   "https://mirror.example/example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{BaseURL: tt.base}
			if got := c.MirrorURL(tt.target); got != tt.want {
				t.Errorf("MirrorURL(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", 0)
	if c.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL, DefaultBaseURL)
	}
	if c.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", c.Timeout, DefaultTimeout)
	}
	if c.HTTPClient == nil {
		t.Fatal("HTTPClient not initialized")
	}

	c = NewClient("https://other.example/", 3*time.Second)
	if c.BaseURL != "https://other.example/" {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	if c.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", c.Timeout)
	}
}

func TestFetchMarkdown(t *testing.T) {
	var gotPath, gotUA, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("Markdown Content:\nhello"))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/", time.Second)
	got, err := c.FetchMarkdown(context.Background(), "https://example.com/profile/about")
	if err != nil {
		t.Fatalf("FetchMarkdown: %v", err)
	}
	if got != "Markdown Content:\nhello" {
		t.Errorf("body = %q", got)
	}
	if gotPath != "/example.com/profile/about" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("user agent = %q, want %q", gotUA, DefaultUserAgent)
	}
	if !strings.Contains(gotAccept, "text/plain") {
		t.Errorf("accept header = %q", gotAccept)
	}
}

func TestFetchMarkdownUpstreamStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusTooManyRequests, http.StatusBadGateway} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := NewClient(ts.URL+"/", time.Second)
		_, err := c.FetchMarkdown(context.Background(), "https://example.com")
		if !errors.Is(err, ErrUpstreamStatus) {
			t.Errorf("status %d: err = %v, want ErrUpstreamStatus", status, err)
		}
		ts.Close()
	}
}

func TestFetchMarkdownTruncatesBody(t *testing.T) {
	big := strings.Repeat("x", byline.MaxRawLen+10_000)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(big))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/", 5*time.Second)
	got, err := c.FetchMarkdown(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("FetchMarkdown: %v", err)
	}
	if len(got) != byline.MaxRawLen {
		t.Errorf("body length = %d, want %d", len(got), byline.MaxRawLen)
	}
}

func TestFetchMarkdownContextCancel(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(ts.URL+"/", 5*time.Second)
	if _, err := c.FetchMarkdown(ctx, "https://example.com"); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
