package database

import (
	"database/sql"
	"time"
)

// timestampLayout is used for every stored timestamp.
const timestampLayout = time.RFC3339

// parseTimestamp reads a stored timestamp. Rows written by hand with
// SQLite's datetime() are accepted too.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
}

func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// rowsAffectedOrNotFound maps a zero-row update or delete to ErrNotFound.
func rowsAffectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// clampPage applies the default and maximum page sizes.
func clampPage(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = 50
	case limit > 100:
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
