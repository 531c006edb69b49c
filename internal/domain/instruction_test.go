package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Thesaidctm/automate/internal/domain"
)

func TestBuildInstructions(t *testing.T) {
	rows := []domain.SourceRow{
		{Line: 3, Code: "1.10", Value: "10,00"},
		{Line: 4, Code: "1.2", Value: "R$ 1.234,50"},
		{Line: 5, Code: "1.9", Value: "87.04", Numeric: true},
		{Line: 6, Code: "1.2", Value: "120,00"},
		{Line: 7, Code: "", Value: "5,00"},
		{Line: 8, Code: "2.1", Value: "n/a"},
		{Line: 9, Code: "3.0", Value: "1"},
	}

	instructions, rejected := domain.BuildInstructions(rows)

	wantCodes := []string{"1.2", "1.9", "1.10", "3"}
	if len(instructions) != len(wantCodes) {
		t.Fatalf("expected %d instructions, got %d: %+v", len(wantCodes), len(instructions), instructions)
	}
	for i, code := range wantCodes {
		if instructions[i].Code != code {
			t.Fatalf("instruction %d: expected code %s, got %s", i, code, instructions[i].Code)
		}
	}

	if !instructions[0].Target.Equal(decimal.RequireFromString("120")) {
		t.Fatalf("expected last occurrence of 1.2 to win, got %s", instructions[0].Target)
	}
	if instructions[1].TargetText() != "87,04" {
		t.Fatalf("expected numeric cell to keep its value, got %s", instructions[1].TargetText())
	}

	if len(rejected) != 2 {
		t.Fatalf("expected 2 rejected rows, got %d", len(rejected))
	}
	if rejected[0].Row.Line != 7 || rejected[1].Row.Line != 8 {
		t.Fatalf("unexpected rejected rows: %+v", rejected)
	}
}

func TestBuildInstructionsKeepsEarlierValidRowWhenLastIsUnparsable(t *testing.T) {
	instructions, rejected := domain.BuildInstructions([]domain.SourceRow{
		{Code: "1.1", Value: "5,00"},
		{Code: "1.1", Value: "-"},
	})

	if len(instructions) != 1 || instructions[0].TargetText() != "5,00" {
		t.Fatalf("unexpected instructions: %+v", instructions)
	}
	if len(rejected) != 1 {
		t.Fatalf("expected one rejected row, got %d", len(rejected))
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := map[string]string{
		" 1.2 ": "1.2",
		"4.0":   "4",
		"A-7":   "A-7",
		"  ":    "",
	}
	for in, want := range tests {
		if got := domain.NormalizeCode(in); got != want {
			t.Fatalf("NormalizeCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestErrorKind(t *testing.T) {
	if domain.Kind(domain.ErrRowNotFound) != "not_found" {
		t.Fatalf("expected row not found to be not_found")
	}
	if !domain.IsRetryable(domain.ErrIdentityMismatch) {
		t.Fatalf("expected identity mismatch to be retryable")
	}
	if domain.IsRetryable(domain.ErrUnparsableAmount) {
		t.Fatalf("expected unparsable amount to be permanent")
	}
}
