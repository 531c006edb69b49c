package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Thesaidctm/automate/internal/domain"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"87,04", "87.04", true},
		{"1.234,50", "1234.5", true},
		{"1,234.50", "1234.5", true},
		{"1,234,567", "1234567", true},
		{"1.234.567", "1234567", true},
		{"R$ 87,04", "87.04", true},
		{"r$ 1.234,56", "1234.56", true},
		{"1 234,5", "1234.5", true},
		{"  120,00  ", "120", true},
		{"87.04", "87.04", true},
		{"0,005", "0.01", true},
		{"0,004", "0", true},
		{"-12,345", "-12.35", true},
		{"1.2.3,4", "123.4", true},
		{"", "", false},
		{"   ", "", false},
		{"abc", "", false},
		{",", "", false},
		{"-", "", false},
		{"12-3", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := domain.ParseAmount(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNumberSkipsSeparatorRules(t *testing.T) {
	got, ok := domain.ParseNumber("1.234")
	if !ok {
		t.Fatalf("expected numeric text to parse")
	}
	if !got.Equal(decimal.RequireFromString("1.23")) {
		t.Fatalf("expected 1.23, got %s", got)
	}

	if _, ok := domain.ParseNumber("1,5"); ok {
		t.Fatalf("expected comma to be rejected for numeric text")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"87.04", "87,04"},
		{"120", "120,00"},
		{"1234567.5", "1234567,50"},
		{"-3.1", "-3,10"},
		{"0", "0,00"},
	}

	for _, tt := range tests {
		if got := domain.FormatAmount(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Fatalf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	inputs := []string{"87,04", "1.234,50", "1,234.50", "1,234,567", "R$ 0,99", "42"}
	for _, in := range inputs {
		first, ok := domain.ParseAmount(in)
		if !ok {
			t.Fatalf("ParseAmount(%q) failed", in)
		}
		formatted := domain.FormatAmount(first)
		second, ok := domain.ParseAmount(formatted)
		if !ok || !second.Equal(first) {
			t.Fatalf("round trip of %q via %q gave %s, want %s", in, formatted, second, first)
		}
		if domain.FormatAmount(second) != formatted {
			t.Fatalf("format is not canonical for %q", in)
		}
	}
}

func TestAmountDigits(t *testing.T) {
	if got := domain.AmountDigits(decimal.RequireFromString("87.04")); got != "8704" {
		t.Fatalf("expected 8704, got %q", got)
	}
	if got := domain.AmountDigits(decimal.RequireFromString("1200")); got != "120000" {
		t.Fatalf("expected 120000, got %q", got)
	}
}

func TestSameAmount(t *testing.T) {
	a := decimal.RequireFromString("87.04")
	b := decimal.RequireFromString("87.040")
	if !domain.SameAmount(a, b) {
		t.Fatalf("expected %s and %s to be the same amount", a, b)
	}
	if domain.SameAmount(a, decimal.RequireFromString("87.05")) {
		t.Fatalf("expected different amounts")
	}
}
