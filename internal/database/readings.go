package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const readingColumns = `
	id, profile_id, category, message, response_text,
	honmei, honmei_name, getsumei, getsumei_name,
	region_snapshot, created_at`

func scanReading(row rowScanner) (*Reading, error) {
	var (
		r         Reading
		createdAt string
	)
	err := row.Scan(
		&r.ID,
		&r.ProfileID,
		&r.Category,
		&r.Message,
		&r.ResponseText,
		&r.Honmei,
		&r.HonmeiName,
		&r.Getsumei,
		&r.GetsumeiName,
		&r.RegionSnapshot,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	if r.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &r, nil
}

// CreateReading stores r. CreatedAt defaults to now.
func (db *DB) CreateReading(ctx context.Context, r *Reading) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO readings (
			profile_id, category, message, response_text,
			honmei, honmei_name, getsumei, getsumei_name,
			region_snapshot, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ProfileID,
		r.Category,
		r.Message,
		r.ResponseText,
		r.Honmei,
		r.HonmeiName,
		r.Getsumei,
		r.GetsumeiName,
		r.RegionSnapshot,
		formatTimestamp(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", constraintError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get reading id: %w", err)
	}
	r.ID = id
	return nil
}

// GetReading returns the reading with id, or ErrNotFound.
func (db *DB) GetReading(ctx context.Context, id int64) (*Reading, error) {
	row := db.QueryRowContext(ctx, `SELECT `+readingColumns+` FROM readings WHERE id = ?`, id)
	r, err := scanReading(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query reading: %w", err)
	}
	return r, nil
}

// ListReadings returns readings newest first.
func (db *DB) ListReadings(ctx context.Context, f ReadingFilter) ([]Reading, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	var (
		where []string
		args  []any
	)
	if f.ProfileID > 0 {
		where = append(where, "profile_id = ?")
		args = append(args, f.ProfileID)
	}

	query := `SELECT ` + readingColumns + ` FROM readings`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	readings := []Reading{}
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reading row: %w", err)
		}
		readings = append(readings, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reading rows: %w", err)
	}
	return readings, nil
}

// DeleteReading removes one reading.
func (db *DB) DeleteReading(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM readings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reading: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}
