package domain_test

import (
	"reflect"
	"testing"

	"github.com/Thesaidctm/automate/internal/domain"
)

func TestSortCodes(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "numeric hierarchy not lexical",
			input: []string{"1.2", "1.10", "1.9", "2.1"},
			want:  []string{"1.2", "1.9", "1.10", "2.1"},
		},
		{
			name:  "deep sub items",
			input: []string{"1.100", "1.99", "1.1", "10.1", "2.1"},
			want:  []string{"1.1", "1.99", "1.100", "2.1", "10.1"},
		},
		{
			name:  "macro before its items",
			input: []string{"1.1", "1", "2"},
			want:  []string{"1", "1.1", "2"},
		},
		{
			name:  "natural alphanumeric",
			input: []string{"item10", "Item2", "item1"},
			want:  []string{"item1", "Item2", "item10"},
		},
		{
			name:  "blank sorts first",
			input: []string{"3", "", "1"},
			want:  []string{"", "1", "3"},
		},
		{
			name:  "numeric run before text run",
			input: []string{"A1", "1A"},
			want:  []string{"1A", "A1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]string(nil), tt.input...)
			domain.SortCodes(got)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SortCodes(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSortKeyHandlesLongNumbers(t *testing.T) {
	a := domain.SortKey("1.99999999999999999999")
	b := domain.SortKey("1.100000000000000000000")
	if a.Compare(b) >= 0 {
		t.Fatalf("expected shorter number to sort first")
	}
}

func TestCompareCodesIsTotal(t *testing.T) {
	if domain.CompareCodes("1.01", "1.1") == 0 {
		t.Fatalf("expected distinct codes with equal keys to have a stable order")
	}
	if domain.CompareCodes("1.1", "1.1") != 0 {
		t.Fatalf("expected identical codes to compare equal")
	}
}

func TestHierarchicalParts(t *testing.T) {
	tests := []struct {
		code      string
		macro     string
		sub       string
		wantMatch bool
	}{
		{"1.2", "1", "2", true},
		{" 12.304 ", "12", "304", true},
		{"1", "", "", false},
		{"1.2.3", "", "", false},
		{"A.1", "", "", false},
		{"1.", "", "", false},
	}

	for _, tt := range tests {
		macro, sub, ok := domain.HierarchicalParts(tt.code)
		if ok != tt.wantMatch || macro != tt.macro || sub != tt.sub {
			t.Fatalf("HierarchicalParts(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.code, macro, sub, ok, tt.macro, tt.sub, tt.wantMatch)
		}
	}
}

func TestSameNumber(t *testing.T) {
	if !domain.SameNumber("01", "1") {
		t.Fatalf("expected leading zeros to be ignored")
	}
	if domain.SameNumber("1", "10") {
		t.Fatalf("expected different numbers")
	}
	if domain.SameNumber("", "") {
		t.Fatalf("expected empty strings to never match")
	}
}
