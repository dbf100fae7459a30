package utils

import "testing"

func TestClassifyReferrer(t *testing.T) {
	tests := []struct {
		name     string
		referrer string
		want     string
	}{
		{"empty is direct", "", "direct"},
		{"already direct", "direct", "direct"},
		{"google url", "https://www.google.com/search?q=ahau", "google"},
		{"facebook", "https://facebook.com/some/page", "facebook"},
		{"short twitter", "https://t.co/abc123", "twitter"},
		{"x dot com", "https://x.com/someone/status/1", "twitter"},
		{"linkedin", "https://www.linkedin.com/feed/", "linkedin"},
		{"instagram", "https://instagram.com/p/xyz", "instagram"},
		{"unknown host kept", "https://www.example.org/blog", "example.org"},
		{"bare host", "news.ycombinator.com", "news.ycombinator.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyReferrer(tt.referrer); got != tt.want {
				t.Errorf("ClassifyReferrer(%q) = %q, want %q", tt.referrer, got, tt.want)
			}
		})
	}
}
