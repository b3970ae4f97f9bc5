// Command coverage checks a solar term data set: which years it covers and
// whether every boundary resolves the way the calculator expects.
//
// Usage:
//
//	go run ./cmd/coverage -start 1900 -end 2100
//	go run ./cmd/coverage -json data/sekki.json -o report.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/calendar"
	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

// CheckResult is one failed check.
type CheckResult struct {
	Year   int    `json:"year"`
	Check  string `json:"check"`
	Detail string `json:"detail"`
}

// Analysis summarizes a run.
type Analysis struct {
	Source       string         `json:"source"`
	StartYear    int            `json:"start_year"`
	EndYear      int            `json:"end_year"`
	Covered      []int          `json:"covered"`
	Missing      []int          `json:"missing"`
	Partial      map[int]int    `json:"partial"`
	ChecksRun    int            `json:"checks_run"`
	Failures     []CheckResult  `json:"failures"`
	FailureCount map[string]int `json:"failure_count"`
}

func (a *Analysis) fail(year int, check, format string, args ...any) {
	a.Failures = append(a.Failures, CheckResult{Year: year, Check: check, Detail: fmt.Sprintf(format, args...)})
	a.FailureCount[check]++
}

func main() {
	jsonPath := flag.String("json", "", "Path to solar term JSON file (default: embedded data set)")
	startYear := flag.Int("start", 1900, "First year to check")
	endYear := flag.Int("end", 2100, "Last year to check")
	verbose := flag.Bool("v", false, "Verbose output (log skipped entries)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	logOut := io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	var (
		src *sekki.FileSource
		err error
	)
	if *jsonPath == "" {
		src, err = sekki.Embedded(logger)
	} else {
		src, err = sekki.LoadFile(*jsonPath, logger)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	table := sekki.NewTable(src, logger)

	fmt.Println("================================================================")
	fmt.Println("Solar Term Data - Coverage Check")
	fmt.Println("================================================================")
	fmt.Printf("Source:      %s\n", src.Path)
	fmt.Printf("Year Range:  %d to %d\n", *startYear, *endYear)
	fmt.Println()

	analysis := analyze(table, src.Path, *startYear, *endYear)

	printSummary(analysis, len(src.Years()), len(table.Years()))
	printFailures(analysis)

	if *outputFile != "" {
		saveResults(*outputFile, analysis)
	}

	// Exit with error code if there were failures
	if len(analysis.Failures) > 0 {
		os.Exit(1)
	}
}

func analyze(table *sekki.Table, source string, startYear, endYear int) *Analysis {
	a := &Analysis{
		Source:       source,
		StartYear:    startYear,
		EndYear:      endYear,
		Partial:      make(map[int]int),
		FailureCount: make(map[string]int),
	}
	years := calendar.NewYearResolver(table)
	months := calendar.NewMonthResolver(table)

	for year := startYear; year <= endYear; year++ {
		terms := table.TermsForYear(year)
		if len(terms) == 0 {
			a.Missing = append(a.Missing, year)
			continue
		}
		a.Covered = append(a.Covered, year)
		if len(terms) < len(sekki.Terms()) {
			a.Partial[year] = len(terms)
		}

		checkYear(a, years, year, terms[0])
		for _, in := range terms {
			checkTerm(a, table, months, year, in)
		}
	}

	return a
}

// checkYear verifies Risshun's date and that it opens the year to the
// minute.
func checkYear(a *Analysis, years *calendar.YearResolver, year int, risshun sekki.Instant) {
	a.ChecksRun++
	local := risshun.Time.In(calendar.Zone)
	if local.Month() != time.February || local.Day() < 3 || local.Day() > 5 {
		a.fail(year, "risshun_date", "risshun on %s", calendar.FormatInstant(risshun.Time))
	}

	a.ChecksRun++
	before := years.AstrologicalYear(risshun.Time.Add(-time.Minute))
	at := years.AstrologicalYear(risshun.Time)
	if before != year-1 || at != year {
		a.fail(year, "year_boundary", "minute before -> %d, at -> %d", before, at)
	}
}

// checkTerm verifies the month changes exactly at the term. The minute
// before is only checked when the preceding term is in the table.
func checkTerm(a *Analysis, table *sekki.Table, months *calendar.MonthResolver, year int, in sekki.Instant) {
	a.ChecksRun++
	if got := months.AstrologicalMonth(in.Time); got != in.Term.Month() {
		a.fail(year, "month_at_term", "%s at %s -> month %d, want %d",
			in.Term, calendar.FormatInstant(in.Time), got, in.Term.Month())
	}

	prev, ok := table.LatestAtOrBefore(in.Time.Add(-time.Minute))
	if !ok || in.Time.Sub(prev.Time) > 40*24*time.Hour {
		return
	}
	a.ChecksRun++
	if got := months.AstrologicalMonth(in.Time.Add(-time.Minute)); got != prev.Term.Month() {
		a.fail(year, "month_before_term", "minute before %s -> month %d, want %d",
			in.Term, got, prev.Term.Month())
	}
	if want := (in.Term.Month()+10)%12 + 1; prev.Term.Month() != want {
		a.fail(year, "term_order", "%s follows %s, want month %d before it", in.Term, prev.Term, want)
	}
}

func printSummary(a *Analysis, sourceYears, validYears int) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Years in source:   %d\n", sourceYears)
	fmt.Printf("Years valid:       %d\n", validYears)
	fmt.Printf("Covered in range:  %d\n", len(a.Covered))
	fmt.Printf("Missing in range:  %d\n", len(a.Missing))
	fmt.Printf("Partial years:     %d\n", len(a.Partial))
	fmt.Printf("Checks run:        %d\n", a.ChecksRun)
	fmt.Printf("Failed:            %d\n", len(a.Failures))
	fmt.Println()

	if len(a.Missing) > 0 {
		fmt.Println("Missing years (approximate boundaries apply):")
		for _, r := range yearRanges(a.Missing) {
			fmt.Printf("  - %s\n", r)
		}
		fmt.Println()
	}

	if len(a.Partial) > 0 {
		fmt.Println("Partial years:")
		years := make([]int, 0, len(a.Partial))
		for y := range a.Partial {
			years = append(years, y)
		}
		sort.Ints(years)
		for _, y := range years {
			fmt.Printf("  - %d: %d terms\n", y, a.Partial[y])
		}
		fmt.Println()
	}
}

func printFailures(a *Analysis) {
	if len(a.Failures) == 0 {
		fmt.Println("No failures!")
		return
	}

	fmt.Println("================================================================")
	fmt.Println("FAILURES BY CHECK")
	fmt.Println("================================================================")

	byCheck := make(map[string][]CheckResult)
	for _, f := range a.Failures {
		byCheck[f.Check] = append(byCheck[f.Check], f)
	}
	checks := make([]string, 0, len(byCheck))
	for c := range byCheck {
		checks = append(checks, c)
	}
	sort.Slice(checks, func(i, j int) bool {
		return len(byCheck[checks[i]]) > len(byCheck[checks[j]])
	})

	for _, check := range checks {
		failures := byCheck[check]
		fmt.Printf("\n%s: %d failures\n", check, len(failures))
		// Show up to 5 examples
		for i, f := range failures {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(failures)-5)
				break
			}
			fmt.Printf("  - %d: %s\n", f.Year, f.Detail)
		}
	}
	fmt.Println()
}

// yearRanges collapses sorted years into "a-b" runs.
func yearRanges(years []int) []string {
	var out []string
	for i := 0; i < len(years); {
		j := i
		for j+1 < len(years) && years[j+1] == years[j]+1 {
			j++
		}
		if i == j {
			out = append(out, fmt.Sprintf("%d", years[i]))
		} else {
			out = append(out, fmt.Sprintf("%d-%d", years[i], years[j]))
		}
		i = j + 1
	}
	return out
}

func saveResults(filename string, a *Analysis) {
	output := struct {
		GeneratedAt string `json:"generated_at"`
		*Analysis
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Analysis:    a,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}
