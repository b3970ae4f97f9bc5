package kigaku

import (
	"io"
	"log/slog"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

// withoutZone simulates a calculator with no zone to evaluate boundaries in.
func withoutZone() Option {
	return func(c *Calculator) { c.loc = nil }
}

func jst(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, sekki.ReferenceZone)
}

// fixtureTable holds 1994, 1995, 2019 and 2020 with hand-picked instants.
// Risshun 1995 at 15:21 and Keichitsu 2020 at 10:57 are the boundaries the
// scenario tests pin.
func fixtureTable() *sekki.Table {
	src := sekki.MemorySource{}
	add := func(year int, times ...time.Time) {
		for i, at := range times {
			src.Add(year, sekki.Term(i+1), at)
		}
	}
	add(1994,
		jst(1994, 2, 4, 9, 31), jst(1994, 3, 6, 3, 38), jst(1994, 4, 5, 8, 32),
		jst(1994, 5, 6, 2, 36), jst(1994, 6, 6, 7, 5), jst(1994, 7, 7, 17, 19),
		jst(1994, 8, 8, 3, 4), jst(1994, 9, 8, 6, 55), jst(1994, 10, 8, 22, 29),
		jst(1994, 11, 8, 1, 36), jst(1994, 12, 7, 18, 23), jst(1995, 1, 6, 5, 34),
	)
	add(1995,
		jst(1995, 2, 4, 15, 21), jst(1995, 3, 6, 9, 16), jst(1995, 4, 5, 14, 8),
		jst(1995, 5, 6, 8, 30), jst(1995, 6, 6, 12, 42), jst(1995, 7, 7, 23, 1),
		jst(1995, 8, 8, 8, 52), jst(1995, 9, 8, 11, 49), jst(1995, 10, 9, 3, 27),
		jst(1995, 11, 8, 6, 36), jst(1995, 12, 7, 23, 22), jst(1996, 1, 6, 10, 31),
	)
	add(2019,
		jst(2019, 2, 4, 12, 14), jst(2019, 3, 6, 6, 10), jst(2019, 4, 5, 10, 51),
		jst(2019, 5, 6, 4, 3), jst(2019, 6, 6, 8, 6), jst(2019, 7, 7, 18, 21),
		jst(2019, 8, 8, 4, 13), jst(2019, 9, 8, 7, 17), jst(2019, 10, 8, 23, 6),
		jst(2019, 11, 8, 2, 24), jst(2019, 12, 7, 19, 18), jst(2020, 1, 6, 6, 28),
	)
	add(2020,
		jst(2020, 2, 4, 17, 3), jst(2020, 3, 5, 10, 57), jst(2020, 4, 4, 9, 38),
		jst(2020, 5, 5, 9, 51), jst(2020, 6, 5, 13, 58), jst(2020, 7, 7, 0, 14),
		jst(2020, 8, 7, 10, 6), jst(2020, 9, 7, 13, 8), jst(2020, 10, 8, 4, 55),
		jst(2020, 11, 7, 8, 14), jst(2020, 12, 7, 1, 9), jst(2021, 1, 5, 12, 23),
	)
	return sekki.NewTable(src, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
