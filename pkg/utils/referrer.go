package utils

import (
	"net/url"
	"strings"
)

var knownSources = map[string]string{
	"google":    "google",
	"facebook":  "facebook",
	"instagram": "instagram",
	"twitter":   "twitter",
	"t.co":      "twitter",
	"x.com":     "twitter",
	"linkedin":  "linkedin",
}

// ClassifyReferrer maps a raw referrer to a known source name, the bare
// hostname, or "direct" when nothing was sent.
func ClassifyReferrer(referrer string) string {
	if referrer == "" || referrer == "direct" {
		return "direct"
	}

	host := strings.ToLower(referrer)
	if u, err := url.Parse(referrer); err == nil && u.Host != "" {
		host = strings.ToLower(u.Host)
	}
	host = strings.TrimPrefix(host, "www.")

	for needle, source := range knownSources {
		if strings.Contains(host, needle) {
			return source
		}
	}

	return host
}
