// Package kigaku computes Nine Star Ki year, month and day stars.
package kigaku

// Normalize maps any integer onto the 1-9 star ring: 0 is 9, 10 is 1,
// -1 is 8.
func Normalize(v int) int {
	r := v % 9
	if r <= 0 {
		r += 9
	}
	return r
}

// Honmei returns the year star of an astrological year.
//
// The raw value is 11 - (year mod 9), except for 2000 through 2099 where
// it is 9 - (year mod 9).
func Honmei(year int) int {
	raw := 11 - year%9
	if year >= 2000 && year <= 2099 {
		raw = 9 - year%9
	}
	return Normalize(raw)
}

// monthOffsets repeats every three months starting at month 1.
var monthOffsets = [3]int{2, 5, 8}

// Getsumei returns the month star for a year star and an astrological
// month. Months outside 1-12 wrap.
func Getsumei(honmei, month int) int {
	m := ((month-1)%12 + 12) % 12
	return Normalize(honmei + monthOffsets[m%3])
}
