package utils

import "testing"

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		want      string
	}{
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) Mobile/15E148", "mobile"},
		{"android", "Mozilla/5.0 (Linux; Android 13; Pixel 7)", "mobile"},
		{"generic mobile", "SomeBrowser/1.0 Mobile Safari", "mobile"},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)", "tablet"},
		{"tablet keyword", "Mozilla/5.0 (Linux; Tablet PC 2.0)", "tablet"},
		{"windows desktop", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", "desktop"},
		{"mac desktop", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", "desktop"},
		{"empty", "", "desktop"},
		{"unknown default", "unknown", "desktop"},
		{"case insensitive", "MOZILLA (IPHONE)", "mobile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyDevice(tt.userAgent); got != tt.want {
				t.Errorf("ClassifyDevice(%q) = %q, want %q", tt.userAgent, got, tt.want)
			}
		})
	}
}

func TestClassifyDeviceMobileBeatsTablet(t *testing.T) {
	// "Android ... Tablet" UAs exist; the mobile check runs first
	if got := ClassifyDevice("Mozilla/5.0 (Linux; Android 13; Tablet)"); got != "mobile" {
		t.Errorf("expected mobile priority, got %q", got)
	}
}
