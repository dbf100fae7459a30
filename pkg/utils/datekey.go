package utils

import (
	"errors"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// DateKey formats the UTC calendar date of t as YYYY-MM-DD. All aggregate
// keys are derived in UTC so that a visit lands in the same bucket no matter
// which region served it.
func DateKey(t time.Time) (string, error) {
	if t.IsZero() {
		return "", ErrInvalidTimestamp
	}
	return t.UTC().Format("2006-01-02"), nil
}

// TimeParts returns the hour, day of week and month of t in UTC, persisted
// on raw visit records for replay-time breakdowns.
func TimeParts(t time.Time) (hour, dayOfWeek, month int) {
	u := t.UTC()
	return u.Hour(), int(u.Weekday()), int(u.Month())
}
