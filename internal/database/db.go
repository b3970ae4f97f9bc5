// Package database stores profiles, reading history and imported solar
// terms in SQLite.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
)

// DB is the application store.
type DB struct {
	*sql.DB
	path   string
	logger *slog.Logger
}

// Config holds database configuration options.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a single-connection pool. SQLite allows one writer,
// and ":memory:" databases exist per connection.
func DefaultConfig(path string) Config {
	return Config{
		Path:            path,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}
}

// dsn enables WAL for concurrent readers and foreign keys, which reading
// history relies on to cascade profile deletes.
func dsn(path string) string {
	return path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
}

// Open connects to the database at cfg.Path, creating its directory if
// needed. Call Migrate before using the queries.
func Open(cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite3", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database %s: %w", cfg.Path, err)
	}

	logger.Info("database connected", slog.String("path", cfg.Path))
	return &DB{DB: sqlDB, path: cfg.Path, logger: logger}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.logger.Info("closing database", slog.String("path", db.path))
	return db.DB.Close()
}

// Stats is what the store currently holds.
type Stats struct {
	SchemaVersion  int `json:"schema_version"`
	Profiles       int `json:"profiles"`
	Readings       int `json:"readings"`
	SolarTermYears int `json:"solar_term_years"`
	FirstTermYear  int `json:"first_term_year,omitempty"`
	LastTermYear   int `json:"last_term_year,omitempty"`
}

// Health pings the database and reports its contents. The solar term
// counts tell whether SEKKI_SOURCE=database has anything to load.
func (db *DB) Health(ctx context.Context) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s Stats
	err := db.QueryRowContext(ctx, `
		SELECT
			(SELECT COALESCE(MAX(version), 0) FROM schema_migrations),
			(SELECT COUNT(*) FROM profiles),
			(SELECT COUNT(*) FROM readings),
			(SELECT COUNT(DISTINCT year) FROM solar_terms),
			(SELECT COALESCE(MIN(year), 0) FROM solar_terms),
			(SELECT COALESCE(MAX(year), 0) FROM solar_terms)`,
	).Scan(&s.SchemaVersion, &s.Profiles, &s.Readings, &s.SolarTermYears, &s.FirstTermYear, &s.LastTermYear)
	if err != nil {
		return Stats{}, fmt.Errorf("database health: %w", err)
	}
	return s, nil
}

// WithTx runs fn in a transaction, committing on success and rolling back
// when fn returns an error.
func (db *DB) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var (
	// ErrNotFound is returned when a requested record doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownProfile is returned when a reading names a profile that
	// does not exist.
	ErrUnknownProfile = errors.New("profile does not exist")

	// ErrInvalid is returned when a row fails a CHECK or NOT NULL
	// constraint, such as a star outside 1-9.
	ErrInvalid = errors.New("invalid record")
)

// IsNotFound reports whether err means the record is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// constraintError maps SQLite constraint failures onto the errors above.
// Anything else is returned unchanged.
func constraintError(err error) error {
	var se sqlite3.Error
	if !errors.As(err, &se) || se.Code != sqlite3.ErrConstraint {
		return err
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %v", ErrUnknownProfile, err)
	case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return err
}
