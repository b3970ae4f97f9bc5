package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const profileColumns = `
	id, name, gender, birth_at, prefecture, municipality,
	location_permission, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*Profile, error) {
	var (
		p                             Profile
		birthAt, createdAt, updatedAt string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Gender,
		&birthAt,
		&p.Prefecture,
		&p.Municipality,
		&p.LocationPermission,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.BirthAt, err = parseTimestamp(birthAt); err != nil {
		return nil, fmt.Errorf("parse birth_at: %w", err)
	}
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &p, nil
}

// CreateProfile inserts p and fills in its ID and timestamps.
func (db *DB) CreateProfile(ctx context.Context, p *Profile) error {
	now := time.Now().UTC().Truncate(time.Second)

	res, err := db.ExecContext(ctx, `
		INSERT INTO profiles (
			name, gender, birth_at, prefecture, municipality,
			location_permission, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name,
		p.Gender,
		formatTimestamp(p.BirthAt),
		p.Prefecture,
		p.Municipality,
		p.LocationPermission,
		formatTimestamp(now),
		formatTimestamp(now),
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", constraintError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get profile id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// GetProfile returns the profile with id, or ErrNotFound.
func (db *DB) GetProfile(ctx context.Context, id int64) (*Profile, error) {
	row := db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return p, nil
}

// ListProfiles returns profiles ordered by ID.
func (db *DB) ListProfiles(ctx context.Context, limit, offset int) ([]Profile, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile rows: %w", err)
	}
	return profiles, nil
}

// UpdateProfile overwrites the editable fields of p.ID.
func (db *DB) UpdateProfile(ctx context.Context, p *Profile) error {
	now := time.Now().UTC().Truncate(time.Second)

	res, err := db.ExecContext(ctx, `
		UPDATE profiles SET
			name = ?, gender = ?, birth_at = ?, prefecture = ?,
			municipality = ?, location_permission = ?, updated_at = ?
		WHERE id = ?`,
		p.Name,
		p.Gender,
		formatTimestamp(p.BirthAt),
		p.Prefecture,
		p.Municipality,
		p.LocationPermission,
		formatTimestamp(now),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", constraintError(err))
	}
	if err := rowsAffectedOrNotFound(res); err != nil {
		return err
	}
	p.UpdatedAt = now
	return nil
}

// DeleteProfile removes a profile and, through the foreign key, its
// readings.
func (db *DB) DeleteProfile(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}
