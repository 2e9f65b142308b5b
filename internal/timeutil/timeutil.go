package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// CompactDateLayout is the 8-digit key used by the public scoreboard API (YYYYMMDD).
const CompactDateLayout = "20060102"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CompactDate formats a time as YYYYMMDD in its current location.
func CompactDate(t time.Time) string {
	return t.Format(CompactDateLayout)
}

// Midnight truncates a time to local midnight in its current location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays moves a time forward by whole calendar days. Using AddDate rather
// than a Duration keeps day boundaries stable across DST transitions.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}
