package sekki

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"
)

// Table is the read-only, process-wide view of all known term instants.
// Every year's terms are also flattened into one chronological slice so the
// nearest preceding term can be found with a binary search.
//
// A Table is never mutated after NewTable returns and is safe for
// concurrent use.
type Table struct {
	years map[int][]Instant
	all   []Instant
}

// NewTable builds a Table from src. Years that fail validation are dropped
// and logged; a nil src yields an empty table.
func NewTable(src Source, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Table{years: make(map[int][]Instant)}
	if src == nil {
		return t
	}

	var years []int
	if l, ok := src.(YearLister); ok {
		years = l.Years()
	} else {
		for y := ScanFirstYear; y <= ScanLastYear; y++ {
			years = append(years, y)
		}
	}

	for _, y := range years {
		terms, err := normalizeYear(src.TermsForYear(y))
		if err != nil {
			logger.Warn("dropping solar term year",
				slog.Int("year", y),
				slog.Any("error", err),
			)
			continue
		}
		if len(terms) == 0 {
			continue
		}
		if len(terms) < 12 {
			logger.Debug("partial solar term year",
				slog.Int("year", y),
				slog.Int("terms", len(terms)),
			)
		}
		t.years[y] = terms
		t.all = append(t.all, terms...)
	}
	sortInstants(t.all)

	return t
}

// normalizeYear sorts one year's block and checks its invariants: the first
// entry is Risshun, and terms follow month order with strictly increasing
// instants. Invalid terms and repeated terms are skipped.
func normalizeYear(in []Instant) ([]Instant, error) {
	if len(in) == 0 {
		return nil, nil
	}

	terms := make([]Instant, 0, len(in))
	for _, inst := range in {
		if !inst.Term.Valid() || inst.Time.IsZero() {
			continue
		}
		terms = append(terms, Instant{Term: inst.Term, Time: inst.Time.In(ReferenceZone)})
	}
	sortInstants(terms)

	seen := make(map[Term]bool, len(terms))
	out := terms[:0]
	for _, inst := range terms {
		if seen[inst.Term] {
			continue
		}
		seen[inst.Term] = true
		out = append(out, inst)
	}

	if len(out) == 0 {
		return nil, nil
	}
	if out[0].Term != Risshun {
		return nil, fmt.Errorf("first term is %s, want %s", out[0].Term, Risshun)
	}
	for i := 1; i < len(out); i++ {
		if !out[i].Time.After(out[i-1].Time) {
			return nil, fmt.Errorf("%s and %s share instant %s", out[i-1].Term, out[i].Term, out[i].Time.Format(time.RFC3339))
		}
		if out[i].Term <= out[i-1].Term {
			return nil, fmt.Errorf("%s out of order after %s", out[i].Term, out[i-1].Term)
		}
	}

	return out, nil
}

// TermsForYear returns the year's terms in chronological order, or nil if
// the year is unknown.
func (t *Table) TermsForYear(year int) []Instant {
	return slices.Clone(t.years[year])
}

// HasYear reports whether the table holds data for year.
func (t *Table) HasYear(year int) bool {
	return len(t.years[year]) > 0
}

// YearStart returns the Risshun instant of year, or FallbackYearStart when
// the year is unknown.
func (t *Table) YearStart(year int) time.Time {
	if terms := t.years[year]; len(terms) > 0 {
		return terms[0].Time
	}
	return FallbackYearStart(year)
}

// FallbackYearStart is February 4th 00:00 in the reference zone.
func FallbackYearStart(year int) time.Time {
	return time.Date(year, time.February, 4, 0, 0, 0, 0, ReferenceZone)
}

// LatestAtOrBefore returns the latest term whose instant is not after at.
// An instant equal to at counts. ok is false when at precedes all data.
func (t *Table) LatestAtOrBefore(at time.Time) (inst Instant, ok bool) {
	i := sort.Search(len(t.all), func(i int) bool {
		return t.all[i].Time.After(at)
	})
	if i == 0 {
		return Instant{}, false
	}
	return t.all[i-1], true
}

// TermInstant looks up a single term in year's block.
func (t *Table) TermInstant(term Term, year int) (Instant, bool) {
	for _, inst := range t.years[year] {
		if inst.Term == term {
			return inst, true
		}
	}
	return Instant{}, false
}

// Years returns the known years in ascending order.
func (t *Table) Years() []int {
	years := make([]int, 0, len(t.years))
	for y := range t.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Len returns the total number of term instants.
func (t *Table) Len() int {
	return len(t.all)
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table built from the embedded data set. It is built
// on first use, once, even under concurrent callers.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = Load("", slog.Default())
	})
	return defaultTable
}
