package kigaku

import (
	"time"

	"github.com/zapponejosh/kigaku-api/internal/calendar"
)

// Day star cycle. The star at midnight 1995-02-04 (reference zone) is 9
// and each following calendar day is one lower, wrapping from 1 to 9.
const (
	DayStarReferenceYear  = 1995
	DayStarReferenceMonth = time.February
	DayStarReferenceDay   = 4
	DayStarReferenceStar  = 9
)

// DayStarReference is the anchor date of the day star cycle.
func DayStarReference(loc *time.Location) time.Time {
	return time.Date(DayStarReferenceYear, DayStarReferenceMonth, DayStarReferenceDay, 0, 0, 0, 0, loc)
}

// DayStar returns the Nichimei of t's calendar date in the reference zone.
func DayStar(t time.Time) int {
	return dayStarIn(t, calendar.Zone)
}

// dayStarIn counts days in loc. A nil loc yields the default star 1.
func dayStarIn(t time.Time, loc *time.Location) int {
	if loc == nil {
		return DefaultStar
	}
	days := calendar.DaysBetween(DayStarReference(loc), t, loc)
	offset := ((days % 9) + 9) % 9
	return Normalize(DayStarReferenceStar - offset)
}
