package calendar

import (
	"slices"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

// MonthResolution is the outcome of resolving an instant's month.
type MonthResolution struct {
	Month    int
	Term     sekki.Instant // zero when Fallback is set
	Fallback bool
}

// MonthResolver decides which of the twelve astrological months an instant
// falls in.
type MonthResolver struct {
	table *sekki.Table
}

// NewMonthResolver returns a resolver over table. A nil table behaves as an
// empty one.
func NewMonthResolver(table *sekki.Table) *MonthResolver {
	if table == nil {
		table = sekki.NewTable(nil, nil)
	}
	return &MonthResolver{table: table}
}

// AstrologicalMonth returns the astrological month (1-12) containing t.
func (r *MonthResolver) AstrologicalMonth(t time.Time) int {
	return r.Resolve(t).Month
}

// Resolve finds the most recent term at or before t among the blocks of
// t's calendar year and the year before it. The previous block is needed
// because early January still belongs to its taisetsu or shoukan month.
// A term starting exactly at t counts as started.
//
// The approximation table is used when no candidate term precedes t, or
// when t's own calendar year has no data and t is already past February
// 4th, where the previous block's shoukan would otherwise run on for the
// rest of the year.
func (r *MonthResolver) Resolve(t time.Time) MonthResolution {
	year := t.In(Zone).Year()

	if !r.table.HasYear(year) && !t.Before(sekki.FallbackYearStart(year)) {
		return MonthResolution{Month: FallbackMonth(t), Fallback: true}
	}

	candidates := append(r.table.TermsForYear(year-1), r.table.TermsForYear(year)...)
	slices.SortFunc(candidates, func(a, b sekki.Instant) int {
		return a.Time.Compare(b.Time)
	})

	var (
		latest sekki.Instant
		found  bool
	)
	for _, c := range candidates {
		if c.Time.After(t) {
			break
		}
		latest, found = c, true
	}

	if !found {
		return MonthResolution{Month: FallbackMonth(t), Fallback: true}
	}
	return MonthResolution{Month: latest.Term.Month(), Term: latest}
}

// MonthStart returns the term opening month of the given astrological
// year. Month 12 starts in January of year+1.
func (r *MonthResolver) MonthStart(month, year int) (sekki.Instant, bool) {
	term, ok := sekki.TermForMonth(month)
	if !ok {
		return sekki.Instant{}, false
	}
	return r.table.TermInstant(term, year)
}
