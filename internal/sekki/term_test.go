package sekki

import (
	"errors"
	"testing"
)

func TestParseTerm(t *testing.T) {
	tests := []struct {
		in   string
		want Term
	}{
		{"立春", Risshun},
		{"risshun", Risshun},
		{"Keichitsu", Keichitsu},
		{" 小寒 ", Shoukan},
		{"TAISETSU", Taisetsu},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTerm(tt.in)
			if err != nil {
				t.Fatalf("ParseTerm(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTerm(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTerm_Unknown(t *testing.T) {
	for _, in := range []string{"", "冬至", "shunbun"} {
		if _, err := ParseTerm(in); !errors.Is(err, ErrUnknownTerm) {
			t.Errorf("ParseTerm(%q) error = %v, want ErrUnknownTerm", in, err)
		}
	}
}

func TestTermMonths(t *testing.T) {
	terms := Terms()
	if len(terms) != 12 {
		t.Fatalf("Terms() returned %d terms, want 12", len(terms))
	}
	for i, term := range terms {
		if term.Month() != i+1 {
			t.Errorf("%s.Month() = %d, want %d", term, term.Month(), i+1)
		}
		back, ok := TermForMonth(i + 1)
		if !ok || back != term {
			t.Errorf("TermForMonth(%d) = %v, %v", i+1, back, ok)
		}
		if term.Kanji() == "" {
			t.Errorf("%s has no kanji name", term)
		}
	}

	if _, ok := TermForMonth(13); ok {
		t.Error("TermForMonth(13) should not be valid")
	}
	if Term(0).String() != "Term(0)" {
		t.Errorf("Term(0).String() = %q", Term(0).String())
	}
}
