// Package calendar resolves instants to astrological years and months using
// the solar term table.
package calendar

import (
	"time"

	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

// Zone is the reference zone all boundaries are evaluated in.
var Zone = sekki.ReferenceZone

// StartOfDay returns midnight of t's calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween counts whole calendar days from from's date to to's date,
// both taken in loc. Time of day is ignored and the result is negative when
// to is earlier.
func DaysBetween(from, to time.Time, loc *time.Location) int {
	return int((civilDay(to, loc) - civilDay(from, loc)) / 86400)
}

// civilDay maps t's date in loc to UTC midnight seconds. Unix seconds do
// not saturate the way time.Duration does across centuries.
func civilDay(t time.Time, loc *time.Location) int64 {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()
}
