package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/calendar"
	"github.com/zapponejosh/kigaku-api/internal/kigaku"
	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

// This script prints every boundary of an astrological year with the
// stars resolved one minute before, at, and one minute after it. Use it to
// produce expected values for tests or to eyeball a new data file.

func main() {
	year := flag.Int("year", 2025, "Astrological year to generate boundaries for")
	jsonPath := flag.String("json", "", "Path to solar term JSON file (default: embedded data set)")
	lang := flag.String("lang", kigaku.LangJapanese, "Star name language (ja, en)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	table := sekki.Load(*jsonPath, logger)
	calc := kigaku.New(table, kigaku.WithLanguage(*lang), kigaku.WithLogger(logger))

	fmt.Printf("=== Kigaku Boundary Generator for %d ===\n\n", *year)

	start := calc.Years().YearStart(*year)
	fmt.Println("Key Dates:")
	fmt.Printf("  Year Start:      %s\n", calendar.FormatInstant(start))
	fmt.Printf("  Next Year Start: %s\n", calendar.FormatInstant(calc.Years().YearStart(*year+1)))
	fmt.Printf("  Year Star:       %d %s\n", kigaku.Honmei(*year), kigaku.NameIn(*lang, kigaku.Honmei(*year)))
	if calc.Years().IsFallback(*year) {
		fmt.Println("  (year missing from data, boundaries are approximate)")
	}
	fmt.Println()

	var terms []sekki.Instant
	for m := 1; m <= 12; m++ {
		if in, ok := calc.Months().MonthStart(m, *year); ok {
			terms = append(terms, in)
		}
	}
	if len(terms) == 0 {
		fmt.Println("No solar term data for this year.")
		os.Exit(1)
	}

	fmt.Printf("%-10s %-6s %-25s | %-14s | %-14s | %-14s\n",
		"Term", "Kanji", "Instant", "-1 min", "at", "+1 min")
	fmt.Println("--------------------------------------------------------------------------------------------------")

	for _, in := range terms {
		cells := make([]string, 0, 3)
		for _, offset := range []time.Duration{-time.Minute, 0, time.Minute} {
			r := calc.Compute(in.Time.Add(offset))
			cells = append(cells, fmt.Sprintf("%d/%-2d y%d m%d", r.KigakuYear, r.AstrologicalMonth, r.Honmei, r.Getsumei))
		}
		fmt.Printf("%-10s %-6s %-25s | %-14s | %-14s | %-14s\n",
			in.Term, in.Term.Kanji(), calendar.FormatInstant(in.Time), cells[0], cells[1], cells[2])
	}
	fmt.Println()

	// Day stars for the first nine days of the year form one full cycle.
	fmt.Println("Day Stars:")
	day := calendar.StartOfDay(start, calendar.Zone)
	for i := 0; i < 9; i++ {
		d := day.AddDate(0, 0, i)
		star := kigaku.DayStar(d)
		fmt.Printf("  %s  %d %s\n", calendar.FormatDate(d), star, kigaku.NameIn(*lang, star))
	}
}
