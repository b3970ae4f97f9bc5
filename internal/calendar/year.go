package calendar

import (
	"time"

	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

// YearResolution is the outcome of resolving an instant's year. Fallback
// reports whether the boundary consulted, the year start of t's calendar
// year, came from the approximation.
type YearResolution struct {
	Year     int
	Fallback bool
}

// YearResolver decides which astrological year an instant belongs to.
type YearResolver struct {
	table *sekki.Table
}

// NewYearResolver returns a resolver over table. A nil table behaves as an
// empty one.
func NewYearResolver(table *sekki.Table) *YearResolver {
	if table == nil {
		table = sekki.NewTable(nil, nil)
	}
	return &YearResolver{table: table}
}

// AstrologicalYear returns the astrological year containing t.
//
// The astrological year begins at Risshun (around February 4th), not
// January 1st. With Y the calendar year of t in the reference zone, t
// belongs to Y-1 if it is before Y's year start and to Y otherwise. The
// year start instant itself belongs to Y.
//
// Examples, with Risshun 1995 at 02-04 15:21:
//   - 1995-02-04 15:20: 1994
//   - 1995-02-04 15:21: 1995
//   - 1995-01-20 any time: 1994
//
// Years missing from the table start at February 4th 00:00.
func (r *YearResolver) AstrologicalYear(t time.Time) int {
	return r.Resolve(t).Year
}

// Resolve is AstrologicalYear with the fallback state of the boundary it
// compared against. In January the resolved year is Y-1 while the
// boundary is still Y's, so the flag can differ from IsFallback(Year).
func (r *YearResolver) Resolve(t time.Time) YearResolution {
	year := t.In(Zone).Year()
	res := YearResolution{Year: year, Fallback: r.IsFallback(year)}
	if t.Before(r.table.YearStart(year)) {
		res.Year = year - 1
	}
	return res
}

// YearStart returns the instant astrological year starts.
func (r *YearResolver) YearStart(year int) time.Time {
	return r.table.YearStart(year)
}

// IsFallback reports whether year's start comes from the approximation
// rather than the table.
func (r *YearResolver) IsFallback(year int) bool {
	return !r.table.HasYear(year)
}
