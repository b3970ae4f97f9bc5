package calendar

import (
	"testing"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

func TestAstrologicalYear(t *testing.T) {
	r := NewYearResolver(fixtureTable())

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"minute before risshun 1995", jst(1995, 2, 4, 15, 20), 1994},
		{"exactly risshun 1995", jst(1995, 2, 4, 15, 21), 1995},
		{"minute after risshun 1995", jst(1995, 2, 4, 15, 22), 1995},
		{"new year's day", jst(1995, 1, 1, 0, 0), 1994},
		{"december", jst(1995, 12, 31, 23, 59), 1995},
		{"utc instant on boundary", time.Date(1995, 2, 4, 6, 21, 0, 0, time.UTC), 1995},
		{"utc instant before boundary", time.Date(1995, 2, 4, 6, 20, 59, 0, time.UTC), 1994},
		{"utc date differs from jst date", time.Date(1994, 12, 31, 16, 0, 0, 0, time.UTC), 1994},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.AstrologicalYear(tt.at); got != tt.want {
				t.Errorf("AstrologicalYear(%v) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}

func TestAstrologicalYear_Fallback(t *testing.T) {
	r := NewYearResolver(nil)

	tests := []struct {
		at   time.Time
		want int
	}{
		{jst(2021, 2, 3, 23, 59), 2020},
		{jst(2021, 2, 4, 0, 0), 2021},
		{jst(2021, 2, 4, 0, 1), 2021},
		{jst(1850, 6, 1, 0, 0), 1850},
		{jst(2300, 1, 15, 0, 0), 2299},
	}

	for _, tt := range tests {
		if got := r.AstrologicalYear(tt.at); got != tt.want {
			t.Errorf("AstrologicalYear(%v) = %d, want %d", tt.at, got, tt.want)
		}
	}
	if !r.IsFallback(2021) {
		t.Error("IsFallback(2021) = false on empty table")
	}
}

// The flag follows the boundary compared against, which in January is
// the next year's.
func TestYearResolve_TableEdges(t *testing.T) {
	r := NewYearResolver(fixtureTable())

	tests := []struct {
		name         string
		at           time.Time
		wantYear     int
		wantFallback bool
	}{
		{"january before first block", jst(1994, 1, 10, 12, 0), 1993, false},
		{"mid year in block", jst(1994, 6, 1, 0, 0), 1994, false},
		{"january after last block", jst(2021, 1, 10, 12, 0), 2020, true},
		{"after approximate start", jst(2021, 2, 4, 0, 0), 2021, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.at)
			if got.Year != tt.wantYear || got.Fallback != tt.wantFallback {
				t.Errorf("Resolve(%v) = %+v, want year %d fallback %v", tt.at, got, tt.wantYear, tt.wantFallback)
			}
		})
	}
}

// Every year of the embedded table: the year start belongs to the new
// year, one minute earlier to the old one.
func TestAstrologicalYear_EmbeddedBoundaries(t *testing.T) {
	table := sekki.Default()
	r := NewYearResolver(table)

	for _, year := range table.Years() {
		start := table.YearStart(year)
		if got := r.AstrologicalYear(start); got != year {
			t.Errorf("%d: at start got %d", year, got)
		}
		if got := r.AstrologicalYear(start.Add(-time.Minute)); got != year-1 {
			t.Errorf("%d: minute before got %d", year, got)
		}
		if got := r.AstrologicalYear(start.Add(time.Minute)); got != year {
			t.Errorf("%d: minute after got %d", year, got)
		}
	}
}
