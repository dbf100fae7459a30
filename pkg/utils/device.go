package utils

import "strings"

// ClassifyDevice maps a raw user agent to a coarse device bucket.
// Priority matters: phones report "mobile" before tablets report "tablet".
func ClassifyDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "mobile"), strings.Contains(ua, "android"), strings.Contains(ua, "iphone"):
		return "mobile"
	case strings.Contains(ua, "tablet"), strings.Contains(ua, "ipad"):
		return "tablet"
	default:
		return "desktop"
	}
}
