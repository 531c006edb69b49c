package idgen

import (
	"testing"
	"time"
)

func TestNewRunID(t *testing.T) {
	startedAt := time.Date(2026, 10, 19, 10, 15, 0, 123_000_000, time.UTC)

	id := NewRunID(startedAt)
	if !id.StartedAt().Equal(startedAt) {
		t.Fatalf("expected start %s, got %s", startedAt, id.StartedAt())
	}

	parsed, err := ParseRunID(id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.String() != id.String() {
		t.Fatalf("expected %s, got %s", id, parsed)
	}
}

func TestRunID_Before(t *testing.T) {
	first := NewRunID(time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC))
	second := NewRunID(time.Date(2026, 10, 19, 11, 0, 0, 0, time.UTC))

	if !first.Before(second) {
		t.Fatalf("expected %s before %s", first, second)
	}
	if second.Before(first) {
		t.Fatalf("expected %s not before %s", second, first)
	}
}

func TestParseRunID_Invalid(t *testing.T) {
	if _, err := ParseRunID("not-a-run-id"); err == nil {
		t.Fatal("expected an error")
	}
}
