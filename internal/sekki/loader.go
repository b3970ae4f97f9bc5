package sekki

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// FileSource is a Source parsed from a JSON document.
type FileSource struct {
	Path string
	MemorySource
}

// document is the on-disk layout. Each entry of Years is either an object
// of term name to timestamp or an array of componentEntry.
type document struct {
	Version  string                     `json:"version"`
	Timezone string                     `json:"timezone"`
	Years    map[string]json.RawMessage `json:"years"`
}

// componentEntry gives a term as wall-clock parts in the reference zone.
// An entry in January belongs to the following calendar year.
type componentEntry struct {
	Name   string `json:"name"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

var errNoYears = errors.New("document has no years")

// LoadFile reads and parses a sekki JSON file.
func LoadFile(path string, logger *slog.Logger) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sekki file: %w", err)
	}

	src, err := Parse(data, logger)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	src.Path = path
	return src, nil
}

// Parse decodes a sekki document. Malformed entries and years are skipped
// with a warning; only an undecodable document is an error.
func Parse(data []byte, logger *slog.Logger) (*FileSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode sekki document: %w", err)
	}
	if len(doc.Years) == 0 {
		return nil, errNoYears
	}
	switch doc.Timezone {
	case "", "Asia/Tokyo", "JST", "+09:00":
	default:
		logger.Warn("sekki document timezone ignored",
			slog.String("timezone", doc.Timezone),
			slog.String("using", ReferenceZone.String()),
		)
	}

	src := &FileSource{MemorySource: make(MemorySource, len(doc.Years))}
	for key, raw := range doc.Years {
		year, err := strconv.Atoi(key)
		if err != nil {
			logger.Warn("skipping sekki year with bad key", slog.String("key", key))
			continue
		}

		var terms []Instant
		switch firstByte(raw) {
		case '{':
			terms, err = parseTimestampYear(year, raw, logger)
		case '[':
			terms, err = parseComponentYear(year, raw, logger)
		default:
			err = errors.New("year is neither an object nor an array")
		}
		if err != nil {
			logger.Warn("skipping malformed sekki year",
				slog.Int("year", year),
				slog.Any("error", err),
			)
			continue
		}
		if len(terms) > 0 {
			src.MemorySource[year] = terms
		}
	}

	return src, nil
}

func parseTimestampYear(year int, raw json.RawMessage, logger *slog.Logger) ([]Instant, error) {
	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	terms := make([]Instant, 0, len(entries))
	for name, value := range entries {
		term, err := ParseTerm(name)
		if err != nil {
			logger.Warn("skipping sekki entry", slog.Int("year", year), slog.Any("error", err))
			continue
		}
		at, err := parseTimestamp(value)
		if err != nil {
			logger.Warn("skipping sekki entry",
				slog.Int("year", year),
				slog.String("term", term.String()),
				slog.Any("error", err),
			)
			continue
		}
		terms = append(terms, Instant{Term: term, Time: at})
	}
	return terms, nil
}

func parseComponentYear(year int, raw json.RawMessage, logger *slog.Logger) ([]Instant, error) {
	var entries []componentEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	terms := make([]Instant, 0, len(entries))
	for _, e := range entries {
		term, err := ParseTerm(e.Name)
		if err != nil {
			logger.Warn("skipping sekki entry", slog.Int("year", year), slog.Any("error", err))
			continue
		}
		at, err := e.instant(year)
		if err != nil {
			logger.Warn("skipping sekki entry",
				slog.Int("year", year),
				slog.String("term", term.String()),
				slog.Any("error", err),
			)
			continue
		}
		terms = append(terms, Instant{Term: term, Time: at})
	}
	return terms, nil
}

func (e componentEntry) instant(year int) (time.Time, error) {
	if e.Month < 1 || e.Month > 12 || e.Hour < 0 || e.Hour > 23 || e.Minute < 0 || e.Minute > 59 {
		return time.Time{}, fmt.Errorf("invalid components %02d-%02d %02d:%02d", e.Month, e.Day, e.Hour, e.Minute)
	}
	if e.Month == 1 {
		year++
	}
	at := time.Date(year, time.Month(e.Month), e.Day, e.Hour, e.Minute, 0, 0, ReferenceZone)
	if at.Day() != e.Day || int(at.Month()) != e.Month {
		return time.Time{}, fmt.Errorf("invalid date %d-%02d-%02d", year, e.Month, e.Day)
	}
	return at, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseTimestamp accepts RFC 3339 or a zone-less local form read in the
// reference zone.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, ReferenceZone); err == nil {
			return t.In(ReferenceZone), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// Load builds a Table from the JSON file at path, or from the embedded data
// set when path is empty. A missing or undecodable source yields an empty
// table so every lookup uses the fallback boundaries.
func Load(path string, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		src *FileSource
		err error
	)
	if path == "" {
		src, err = Embedded(logger)
	} else {
		src, err = LoadFile(path, logger)
	}
	if err != nil {
		logger.Warn("solar term table unavailable, using fallback boundaries",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return NewTable(nil, logger)
	}

	table := NewTable(src, logger)
	logger.Info("solar term table loaded",
		slog.String("source", src.Path),
		slog.Int("years", len(table.years)),
		slog.Int("terms", table.Len()),
	)
	return table
}
