package sekki

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParse_TimestampSchema(t *testing.T) {
	data := []byte(`{
		"version": "1.0",
		"timezone": "Asia/Tokyo",
		"years": {
			"1995": {
				"立春": "1995-02-04T15:21:00+09:00",
				"keichitsu": "1995-03-06T09:16:00+09:00",
				"小寒": "1996-01-06T10:31"
			}
		}
	}`)

	src, err := Parse(data, quietLogger())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	terms := src.TermsForYear(1995)
	if len(terms) != 3 {
		t.Fatalf("got %d terms, want 3", len(terms))
	}
	if !terms[0].Time.Equal(jst(1995, 2, 4, 15, 21)) {
		t.Errorf("risshun = %v", terms[0].Time)
	}
	if terms[2].Term != Shoukan || !terms[2].Time.Equal(jst(1996, 1, 6, 10, 31)) {
		t.Errorf("shoukan = %v at %v", terms[2].Term, terms[2].Time)
	}
}

func TestParse_ComponentSchema(t *testing.T) {
	data := []byte(`{
		"years": {
			"2020": [
				{"name": "立春", "month": 2, "day": 4, "hour": 17, "minute": 3},
				{"name": "啓蟄", "month": 3, "day": 5, "hour": 10, "minute": 57},
				{"name": "小寒", "month": 1, "day": 5, "hour": 12, "minute": 23}
			]
		}
	}`)

	src, err := Parse(data, quietLogger())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	table := NewTable(src, quietLogger())
	shoukan, ok := table.TermInstant(Shoukan, 2020)
	if !ok {
		t.Fatal("Shoukan missing from 2020 block")
	}
	if want := jst(2021, 1, 5, 12, 23); !shoukan.Time.Equal(want) {
		t.Errorf("January entry = %v, want %v (following year)", shoukan.Time, want)
	}
	if got := table.YearStart(2020); !got.Equal(jst(2020, 2, 4, 17, 3)) {
		t.Errorf("YearStart(2020) = %v", got)
	}
}

func TestParse_SkipsMalformed(t *testing.T) {
	data := []byte(`{
		"years": {
			"2020": {
				"立春": "2020-02-04T17:03:00+09:00",
				"啓蟄": "not a time",
				"冬至": "2020-12-21T19:02:00+09:00"
			},
			"2021": [
				{"name": "立春", "month": 2, "day": 3, "hour": 23, "minute": 59},
				{"name": "啓蟄", "month": 2, "day": 30, "hour": 10, "minute": 0},
				{"name": "清明", "month": 4, "day": 4, "hour": 25, "minute": 0}
			],
			"twenty": {"立春": "2022-02-04T05:51:00+09:00"},
			"2023": "garbage",
			"2024": [1, 2, 3]
		}
	}`)

	src, err := Parse(data, quietLogger())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := len(src.TermsForYear(2020)); got != 1 {
		t.Errorf("2020 kept %d terms, want 1", got)
	}
	if got := len(src.TermsForYear(2021)); got != 1 {
		t.Errorf("2021 kept %d terms, want 1", got)
	}
	if got := src.Years(); len(got) != 2 {
		t.Errorf("Years() = %v, want [2020 2021]", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"no years", `{"version": "1.0"}`},
		{"empty years", `{"years": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data), quietLogger()); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func TestLoad_DegradesToEmptyTable(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.json"), corrupt} {
		table := Load(path, quietLogger())
		if table.Len() != 0 {
			t.Errorf("Load(%s) returned %d terms, want empty table", path, table.Len())
		}
		if got := table.YearStart(2020); !got.Equal(FallbackYearStart(2020)) {
			t.Errorf("YearStart(2020) = %v, want fallback", got)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sekki.json")
	data := `{"years": {"2020": {"立春": "2020-02-04T17:03:00+09:00"}}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := LoadFile(path, quietLogger())
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if src.Path != path {
		t.Errorf("Path = %q, want %q", src.Path, path)
	}
	if len(src.TermsForYear(2020)) != 1 {
		t.Error("2020 block not loaded")
	}
}

func TestEmbedded(t *testing.T) {
	src, err := Embedded(quietLogger())
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}

	table := NewTable(src, quietLogger())
	years := table.Years()
	if len(years) != 201 || years[0] != 1900 || years[len(years)-1] != 2100 {
		t.Fatalf("embedded years = %d (%d..%d)", len(years), years[0], years[len(years)-1])
	}

	for _, y := range years {
		terms := table.TermsForYear(y)
		if len(terms) != 12 {
			t.Errorf("%d has %d terms", y, len(terms))
			continue
		}
		risshun := terms[0].Time
		if risshun.Month() != time.February || risshun.Day() < 3 || risshun.Day() > 5 {
			t.Errorf("%d risshun on %v", y, risshun)
		}
		if shoukan := terms[11].Time; shoukan.Year() != y+1 || shoukan.Month() != time.January {
			t.Errorf("%d shoukan on %v", y, shoukan)
		}
	}

	if got := table.YearStart(2020); !got.Equal(jst(2020, 2, 4, 18, 3)) {
		t.Errorf("YearStart(2020) = %v", got)
	}
}

// Instants published in the NAOJ almanac (rekiyou), to the minute.
func TestEmbedded_AlmanacInstants(t *testing.T) {
	src, err := Embedded(quietLogger())
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}
	table := NewTable(src, quietLogger())

	tests := []struct {
		year int
		term Term
		want time.Time
	}{
		{2016, Risshun, jst(2016, 2, 4, 18, 46)},
		{2017, Risshun, jst(2017, 2, 4, 0, 34)},
		{2019, Risshun, jst(2019, 2, 4, 12, 14)},
		{2020, Risshun, jst(2020, 2, 4, 18, 3)},
		{2020, Keichitsu, jst(2020, 3, 5, 11, 57)},
		{2021, Risshun, jst(2021, 2, 3, 23, 59)},
		{2022, Risshun, jst(2022, 2, 4, 5, 51)},
		{2023, Risshun, jst(2023, 2, 4, 11, 43)},
		{2023, Shoukan, jst(2024, 1, 6, 5, 49)},
		{2024, Risshun, jst(2024, 2, 4, 17, 27)},
		{2024, Keichitsu, jst(2024, 3, 5, 11, 23)},
		{2024, Shoukan, jst(2025, 1, 5, 11, 33)},
		{2025, Risshun, jst(2025, 2, 3, 23, 10)},
	}

	for _, tt := range tests {
		got, ok := table.TermInstant(tt.term, tt.year)
		if !ok {
			t.Errorf("%d %s missing", tt.year, tt.term)
			continue
		}
		if !got.Time.Equal(tt.want) {
			t.Errorf("%d %s = %s, want %s", tt.year, tt.term,
				got.Time.In(ReferenceZone).Format(time.RFC3339), tt.want.Format(time.RFC3339))
		}
	}
}
