package sekki

import (
	"slices"
	"sort"
	"time"
)

// Source supplies the term instants recorded for a calendar year. The
// slice for year Y may include Shoukan of January Y+1.
type Source interface {
	TermsForYear(year int) []Instant
}

// YearLister is implemented by sources that can enumerate their years.
// Sources without it are scanned over [ScanFirstYear, ScanLastYear].
type YearLister interface {
	Years() []int
}

// Scan range for sources that cannot list their years.
const (
	ScanFirstYear = 1800
	ScanLastYear  = 2200
)

// MemorySource is a Source backed by a map. It is used by tests and by the
// database-backed loader.
type MemorySource map[int][]Instant

// TermsForYear returns a chronologically sorted copy of the year's terms.
func (m MemorySource) TermsForYear(year int) []Instant {
	terms := slices.Clone(m[year])
	sortInstants(terms)
	return terms
}

// Years returns the stored years in ascending order.
func (m MemorySource) Years() []int {
	years := make([]int, 0, len(m))
	for y := range m {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Add appends an instant to year's block.
func (m MemorySource) Add(year int, term Term, at time.Time) {
	m[year] = append(m[year], Instant{Term: term, Time: at.In(ReferenceZone)})
}

func sortInstants(terms []Instant) {
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Time.Before(terms[j].Time)
	})
}
