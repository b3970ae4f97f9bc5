package calendar

import "time"

// fallbackBoundaries gives, per Gregorian month, the day the next
// astrological month usually begins and the months on either side of it.
var fallbackBoundaries = [12]struct {
	day    int
	before int
	after  int
}{
	{6, 11, 12}, // January: shoukan
	{4, 12, 1},  // February: risshun
	{6, 1, 2},
	{5, 2, 3},
	{5, 3, 4},
	{6, 4, 5},
	{7, 5, 6},
	{7, 6, 7},
	{8, 7, 8},
	{8, 8, 9},
	{7, 9, 10},
	{7, 10, 11}, // December: taisetsu
}

// FallbackMonth approximates the astrological month of t from its
// reference-zone date alone. It is used only when the table has no data
// for the relevant years.
func FallbackMonth(t time.Time) int {
	t = t.In(Zone)
	b := fallbackBoundaries[t.Month()-1]
	if t.Day() < b.day {
		return b.before
	}
	return b.after
}
