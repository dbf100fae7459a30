package utils

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	ts := time.Date(2025, 3, 9, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))

	key, err := DateKey(ts)
	if err != nil {
		t.Fatalf("DateKey returned error: %v", err)
	}

	// 23:30 UTC-5 is already the next day in UTC
	if key != "2025-03-10" {
		t.Errorf("DateKey = %q, want %q", key, "2025-03-10")
	}
}

func TestDateKeyZeroTime(t *testing.T) {
	if _, err := DateKey(time.Time{}); err != ErrInvalidTimestamp {
		t.Errorf("expected ErrInvalidTimestamp, got %v", err)
	}
}

func TestTimeParts(t *testing.T) {
	ts := time.Date(2025, 6, 15, 14, 5, 0, 0, time.UTC) // a Sunday

	hour, dayOfWeek, month := TimeParts(ts)
	if hour != 14 {
		t.Errorf("hour = %d, want 14", hour)
	}
	if dayOfWeek != int(time.Sunday) {
		t.Errorf("dayOfWeek = %d, want %d", dayOfWeek, int(time.Sunday))
	}
	if month != 6 {
		t.Errorf("month = %d, want 6", month)
	}
}
