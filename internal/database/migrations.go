package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type migration struct {
	version int
	name    string
	sql     string
}

// migrations is the schema in version order. Versions are never edited
// once released; add a new one instead.
var migrations = []migration{
	{1, "profiles", migrationV1Profiles},
	{2, "readings", migrationV2Readings},
	{3, "solar_terms", migrationV3SolarTerms},
}

const createSchemaMigrations = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	applied_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// Migrate applies pending migrations in one transaction and returns how
// many were applied. A failure leaves the schema as it was.
func (db *DB) Migrate(ctx context.Context) (int, error) {
	applied := 0
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, createSchemaMigrations); err != nil {
			return fmt.Errorf("create schema_migrations: %w", err)
		}

		var current int
		err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}

		for _, m := range migrations {
			if m.version <= current {
				continue
			}
			db.logger.Info("applying migration",
				slog.Int("version", m.version),
				slog.String("name", m.name),
			)
			if _, err := tx.ExecContext(ctx, m.sql); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
				return fmt.Errorf("record migration %d: %w", m.version, err)
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// migrationV1Profiles stores the people stars are computed for.
//
// birth_at is RFC 3339 with the +09:00 offset so the stored wall-clock time
// matches what the user entered.
const migrationV1Profiles = `
CREATE TABLE IF NOT EXISTS profiles (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	name                TEXT    NOT NULL,
	gender              TEXT    NOT NULL DEFAULT '',
	birth_at            TEXT    NOT NULL,
	prefecture          TEXT    NOT NULL DEFAULT '',
	municipality        TEXT    NOT NULL DEFAULT '',
	location_permission INTEGER NOT NULL DEFAULT 0,
	created_at          TEXT    NOT NULL,
	updated_at          TEXT    NOT NULL
);
`

// migrationV2Readings keeps the history of generated readings. Star numbers
// and names are copied at creation so history survives profile edits.
const migrationV2Readings = `
CREATE TABLE IF NOT EXISTS readings (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	profile_id      INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	category        TEXT    NOT NULL,
	message         TEXT    NOT NULL DEFAULT '',
	response_text   TEXT    NOT NULL,
	honmei          INTEGER NOT NULL CHECK (honmei BETWEEN 1 AND 9),
	honmei_name     TEXT    NOT NULL,
	getsumei        INTEGER NOT NULL CHECK (getsumei BETWEEN 1 AND 9),
	getsumei_name   TEXT    NOT NULL,
	region_snapshot TEXT    NOT NULL DEFAULT '',
	created_at      TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_readings_profile_created
	ON readings (profile_id, created_at DESC);
`

// migrationV3SolarTerms holds an imported sekki table, one row per term.
// The year column is the data block the term belongs to, so shoukan rows
// carry an instant in the following January.
const migrationV3SolarTerms = `
CREATE TABLE IF NOT EXISTS solar_terms (
	year    INTEGER NOT NULL,
	term    TEXT    NOT NULL,
	month   INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
	instant TEXT    NOT NULL,
	PRIMARY KEY (year, term)
);
`
