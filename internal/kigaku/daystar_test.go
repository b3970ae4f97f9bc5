package kigaku

import (
	"testing"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/calendar"
)

func TestDayStar(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"reference date", jst(1995, 2, 4, 0, 0), 9},
		{"reference date evening", jst(1995, 2, 4, 23, 59), 9},
		{"day after", jst(1995, 2, 5, 0, 0), 8},
		{"day before", jst(1995, 2, 3, 12, 0), 1},
		{"nine days later", jst(1995, 2, 13, 0, 0), 9},
		{"nine days earlier", jst(1995, 1, 26, 0, 0), 9},
		{"2020-03-05", jst(2020, 3, 5, 10, 57), 1},
		{"2024-01-01", jst(2024, 1, 1, 0, 0), 8},
		{"1900-01-01", jst(1900, 1, 1, 0, 0), 1},
		{"2100-12-31", jst(2100, 12, 31, 0, 0), 1},
		{"year 1", jst(1, 1, 1, 0, 0), 2},
		{"utc evening counts as next jst day", time.Date(1995, 2, 4, 15, 0, 0, 0, time.UTC), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayStar(tt.at); got != tt.want {
				t.Errorf("DayStar(%v) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}

func TestDayStar_Periodic(t *testing.T) {
	base := jst(2000, 1, 1, 12, 0)
	for d := -40; d <= 40; d++ {
		day := base.AddDate(0, 0, d)
		want := DayStar(day)
		for _, k := range []int{-3, -1, 1, 2, 50} {
			if got := DayStar(day.AddDate(0, 0, 9*k)); got != want {
				t.Fatalf("DayStar(%v + %d days) = %d, want %d", day, 9*k, got, want)
			}
		}
	}
}

func TestDayStar_DescendsDaily(t *testing.T) {
	prev := DayStar(jst(2020, 1, 1, 0, 0))
	for d := 1; d < 30; d++ {
		got := DayStar(jst(2020, 1, 1+d, 0, 0))
		if want := Normalize(prev - 1); got != want {
			t.Fatalf("day %d: got %d, want %d", d, got, want)
		}
		prev = got
	}
}

func TestDayStar_NilLocation(t *testing.T) {
	if got := dayStarIn(time.Now(), nil); got != DefaultStar {
		t.Errorf("dayStarIn with nil location = %d, want %d", got, DefaultStar)
	}
	if got := dayStarIn(jst(1995, 2, 4, 0, 0), calendar.Zone); got != DayStarReferenceStar {
		t.Errorf("reference star = %d", got)
	}
}
