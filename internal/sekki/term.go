// Package sekki holds the table of principal solar terms (sekki) that mark
// the astrological year and month boundaries.
package sekki

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ReferenceZone is the fixed zone every term instant is anchored to.
// A fixed offset is used so the 1948-1951 Japanese DST never applies.
var ReferenceZone = time.FixedZone("Asia/Tokyo", 9*60*60)

// ErrUnknownTerm is returned when a term name cannot be parsed.
var ErrUnknownTerm = errors.New("unknown solar term")

// Term is one of the twelve principal solar terms. The numeric value is the
// astrological month the term opens.
type Term int

const (
	Risshun Term = iota + 1
	Keichitsu
	Seimei
	Rikka
	Boushu
	Shousho
	Risshuu
	Hakuro
	Kanro
	Rittou
	Taisetsu
	Shoukan
)

var termNames = [...]struct {
	kanji  string
	romaji string
}{
	{"", ""},
	{"立春", "risshun"},
	{"啓蟄", "keichitsu"},
	{"清明", "seimei"},
	{"立夏", "rikka"},
	{"芒種", "boushu"},
	{"小暑", "shousho"},
	{"立秋", "risshuu"},
	{"白露", "hakuro"},
	{"寒露", "kanro"},
	{"立冬", "rittou"},
	{"大雪", "taisetsu"},
	{"小寒", "shoukan"},
}

// Terms returns the twelve terms in month order.
func Terms() []Term {
	out := make([]Term, 0, 12)
	for t := Risshun; t <= Shoukan; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t is one of the twelve terms.
func (t Term) Valid() bool {
	return t >= Risshun && t <= Shoukan
}

// Month returns the astrological month (1-12) the term opens.
func (t Term) Month() int {
	return int(t)
}

// Kanji returns the Japanese name, e.g. 立春.
func (t Term) Kanji() string {
	if !t.Valid() {
		return ""
	}
	return termNames[t].kanji
}

// String returns the romanized name, e.g. risshun.
func (t Term) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Term(%d)", int(t))
	}
	return termNames[t].romaji
}

// ParseTerm accepts a kanji or romaji name. Romaji is matched
// case-insensitively.
func ParseTerm(name string) (Term, error) {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)
	for t := Risshun; t <= Shoukan; t++ {
		if name == termNames[t].kanji || lower == termNames[t].romaji {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTerm, name)
}

// TermForMonth returns the term opening astrological month m.
func TermForMonth(m int) (Term, bool) {
	t := Term(m)
	return t, t.Valid()
}

// Instant is a term together with the moment it starts.
type Instant struct {
	Term Term
	Time time.Time
}
