package kigaku

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{1, 1}, {9, 9}, {10, 1}, {18, 9}, {0, 9}, {-1, 8}, {-8, 1}, {-9, 9}, {-10, 8}, {14, 5},
		{math.MaxInt, Normalize(math.MaxInt % 9)},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_TotalAndIdempotent(t *testing.T) {
	inputs := []int{math.MinInt, math.MinInt + 1, math.MaxInt, -1000, -9, 0, 9, 1000}
	for v := -50; v <= 50; v++ {
		inputs = append(inputs, v)
	}

	for _, v := range inputs {
		got := Normalize(v)
		if got < 1 || got > 9 {
			t.Errorf("Normalize(%d) = %d, outside 1-9", v, got)
		}
		if Normalize(got) != got {
			t.Errorf("Normalize not idempotent at %d", v)
		}
		if v > math.MinInt+9 && Normalize(v-9) != got {
			t.Errorf("Normalize(%d) != Normalize(%d)", v-9, v)
		}
	}
}

func TestHonmei(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{1899, 2},
		{1900, 1},
		{1989, 2},
		{1990, 1},
		{1994, 6},
		{1995, 5},
		{1999, 1},
		{2000, 7},
		{2019, 6},
		{2020, 5},
		{2026, 8},
		{2099, 7},
		{2100, 8},
		{0, 2},
		{-5, 7},
	}

	for _, tt := range tests {
		if got := Honmei(tt.year); got != tt.want {
			t.Errorf("Honmei(%d) = %d, want %d", tt.year, got, tt.want)
		}
	}
}

func TestGetsumei(t *testing.T) {
	tests := []struct {
		honmei int
		month  int
		want   int
	}{
		{5, 1, 7},
		{5, 2, 1},
		{5, 3, 4},
		{5, 4, 7},
		{6, 11, 2},
		{6, 12, 5},
		{9, 1, 2},
		{1, 3, 9},
		{5, 13, 7},
		{5, 0, 4},
	}

	for _, tt := range tests {
		if got := Getsumei(tt.honmei, tt.month); got != tt.want {
			t.Errorf("Getsumei(%d, %d) = %d, want %d", tt.honmei, tt.month, got, tt.want)
		}
	}
}
