package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

// ReplaceSolarTerms stores every year of src, replacing rows already held
// for those years. It returns the number of rows written.
func (db *DB) ReplaceSolarTerms(ctx context.Context, src sekki.MemorySource) (int, error) {
	count := 0
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO solar_terms (year, term, month, instant) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, year := range src.Years() {
			if _, err := tx.ExecContext(ctx, `DELETE FROM solar_terms WHERE year = ?`, year); err != nil {
				return fmt.Errorf("clear year %d: %w", year, err)
			}
			for _, inst := range src.TermsForYear(year) {
				_, err := stmt.ExecContext(ctx,
					year,
					inst.Term.String(),
					inst.Term.Month(),
					inst.Time.In(sekki.ReferenceZone).Format(time.RFC3339),
				)
				if err != nil {
					return fmt.Errorf("insert %d %s: %w", year, inst.Term, constraintError(err))
				}
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	db.logger.Info("solar terms stored",
		slog.Int("years", len(src)),
		slog.Int("rows", count),
	)
	return count, nil
}

// LoadSolarTerms reads the stored table as a sekki source. Rows with an
// unknown term or unparsable instant are skipped.
func (db *DB) LoadSolarTerms(ctx context.Context) (sekki.MemorySource, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT year, term, instant FROM solar_terms ORDER BY year, instant`)
	if err != nil {
		return nil, fmt.Errorf("query solar terms: %w", err)
	}
	defer rows.Close()

	src := sekki.MemorySource{}
	for rows.Next() {
		var (
			year          int
			name, instant string
		)
		if err := rows.Scan(&year, &name, &instant); err != nil {
			return nil, fmt.Errorf("scan solar term row: %w", err)
		}

		term, err := sekki.ParseTerm(name)
		if err != nil {
			db.logger.Warn("skipping stored solar term", slog.Int("year", year), slog.Any("error", err))
			continue
		}
		at, err := time.Parse(time.RFC3339, instant)
		if err != nil {
			db.logger.Warn("skipping stored solar term",
				slog.Int("year", year),
				slog.String("term", name),
				slog.Any("error", err),
			)
			continue
		}
		src.Add(year, term, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solar term rows: %w", err)
	}
	return src, nil
}
