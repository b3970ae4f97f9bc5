package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date or instant string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// instantLayouts are tried in order. Layouts without an offset are read in
// the reference zone.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseInstant parses a birth instant. A bare date means midnight.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, Zone); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseDate parses YYYY-MM-DD as midnight in the reference zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, use YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate formats t's reference-zone date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.In(Zone).Format("2006-01-02")
}

// FormatInstant formats t as RFC 3339 in the reference zone.
func FormatInstant(t time.Time) string {
	return t.In(Zone).Format(time.RFC3339)
}
