package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Thesaidctm/automate/internal/domain"
)

func TestNewRegistersMetrics(t *testing.T) {
	m := New()

	if m.Outcomes == nil || m.WriteAttempts == nil || m.SaveFallbacks == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.IdentityRetry()
	metricFamilies, err := m.Gatherer().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestObserveOutcome(t *testing.T) {
	m := New()

	m.ObserveOutcome(domain.StatusSuccess, "", 2*time.Second)
	m.ObserveOutcome(domain.StatusFailed, "not_found", time.Second)
	m.ObserveOutcome(domain.StatusFailed, "not_found", time.Second)

	if got := testutil.ToFloat64(m.Outcomes.WithLabelValues("failed", "not_found")); got != 2 {
		t.Fatalf("expected 2 not_found failures, got %v", got)
	}
	if got := testutil.ToFloat64(m.Outcomes.WithLabelValues("success", "")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
}

func TestWriteAttempt(t *testing.T) {
	m := New()

	m.WriteAttempt("digits", false)
	m.WriteAttempt("formatted", true)

	if got := testutil.ToFloat64(m.WriteAttempts.WithLabelValues("digits", "mismatch")); got != 1 {
		t.Fatalf("expected 1 digits mismatch, got %v", got)
	}
	if got := testutil.ToFloat64(m.WriteAttempts.WithLabelValues("formatted", "match")); got != 1 {
		t.Fatalf("expected 1 formatted match, got %v", got)
	}
}

func TestWriteToTextfile(t *testing.T) {
	m := New()
	m.SaveFallback()

	path := filepath.Join(t.TempDir(), "pricesync.prom")
	if err := m.WriteToTextfile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "pricesync_save_fallbacks_total 1") {
		t.Fatalf("expected save fallback counter in output, got %q", out)
	}
	if !strings.Contains(out, "pricesync_last_run_timestamp_seconds") {
		t.Fatalf("expected last run gauge in output")
	}
}
