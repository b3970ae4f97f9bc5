// Command import loads a solar term JSON file into the SQLite database so
// the server can run with SEKKI_SOURCE=database.
//
// Usage:
//
//	go run ./cmd/import -json data/sekki.json -db data/kigaku.db
//
// Without -json the data set compiled into the binary is imported.
//
// This tool:
// 1. Parses the JSON file (ISO timestamp or component schema)
// 2. Validates every year the same way the server does
// 3. Creates/opens the SQLite database and runs migrations
// 4. Replaces the stored rows for each imported year in one transaction
//
// Re-running the import is safe: years present in the file are replaced,
// other stored years are left alone.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/database"
	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

func main() {
	// Parse command line flags
	jsonPath := flag.String("json", "", "Path to solar term JSON file (default: embedded data set)")
	dbPath := flag.String("db", "data/kigaku.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*jsonPath, *dbPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(jsonPath, dbPath string, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse JSON
	// =========================================================================
	var (
		src *sekki.FileSource
		err error
	)
	if jsonPath == "" {
		logger.Info("reading embedded data set")
		src, err = sekki.Embedded(logger)
	} else {
		logger.Info("reading JSON file", slog.String("path", jsonPath))
		src, err = sekki.LoadFile(jsonPath, logger)
	}
	if err != nil {
		return fmt.Errorf("load solar terms: %w", err)
	}

	// =========================================================================
	// Step 2: Validate
	// =========================================================================
	table := sekki.NewTable(src, logger)
	clean := sekki.MemorySource{}
	for _, year := range table.Years() {
		clean[year] = table.TermsForYear(year)
	}

	stats := ImportStats{
		SourceYears: len(src.Years()),
		Years:       len(clean),
		Terms:       table.Len(),
	}
	for _, terms := range clean {
		if len(terms) < len(sekki.Terms()) {
			stats.PartialYears++
		}
	}
	if stats.Years == 0 {
		return fmt.Errorf("no valid years in %s", src.Path)
	}

	logger.Info("validated solar terms",
		slog.Int("years", stats.Years),
		slog.Int("dropped", stats.SourceYears-stats.Years),
	)

	// =========================================================================
	// Step 3: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 4: Store and verify
	// =========================================================================
	rows, err := db.ReplaceSolarTerms(ctx, clean)
	if err != nil {
		return fmt.Errorf("store solar terms: %w", err)
	}

	stored, err := db.LoadSolarTerms(ctx)
	if err != nil {
		return fmt.Errorf("verify solar terms: %w", err)
	}
	for year, terms := range clean {
		if len(stored[year]) != len(terms) {
			return fmt.Errorf("verify year %d: stored %d terms, want %d", year, len(stored[year]), len(terms))
		}
	}

	elapsed := time.Since(startTime)

	// Print summary
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Source:              %s\n", src.Path)
	fmt.Printf("Years in source:     %d\n", stats.SourceYears)
	fmt.Printf("Years imported:      %d\n", stats.Years)
	fmt.Printf("Partial years:       %d\n", stats.PartialYears)
	fmt.Printf("Rows written:        %d\n", rows)
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// ImportStats tracks import statistics.
type ImportStats struct {
	SourceYears  int
	Years        int
	Terms        int
	PartialYears int
}
