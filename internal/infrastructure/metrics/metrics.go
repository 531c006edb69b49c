package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Thesaidctm/automate/internal/domain"
)

// Metrics holds all Prometheus metrics of a sync run.
type Metrics struct {
	registry *prometheus.Registry

	// Outcome metrics
	Outcomes        *prometheus.CounterVec
	OutcomeDuration *prometheus.HistogramVec

	// Page interaction metrics
	IdentityRetries prometheus.Counter
	WriteAttempts   *prometheus.CounterVec
	SaveFallbacks   prometheus.Counter

	// Run metrics
	Instructions prometheus.Gauge
	RejectedRows prometheus.Gauge
	LastRun      prometheus.Gauge
}

// New creates the metrics on a registry of their own. A run is a short-lived
// process, so they are exported with WriteToTextfile rather than scraped.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		Outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricesync_outcomes_total",
				Help: "Total number of recorded outcomes by status and failure kind",
			},
			[]string{"status", "kind"},
		),
		OutcomeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pricesync_record_duration_seconds",
				Help:    "Time spent synchronizing one record",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
			},
			[]string{"status"},
		),

		IdentityRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "pricesync_identity_retries_total",
			Help: "Total number of times the wrong record opened and was reopened",
		}),
		WriteAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricesync_write_attempts_total",
				Help: "Total number of price entry attempts by mode and read-back result",
			},
			[]string{"mode", "result"},
		),
		SaveFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "pricesync_save_fallbacks_total",
			Help: "Total number of saves after which the list had to be reopened",
		}),

		Instructions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pricesync_instructions",
			Help: "Number of instructions in the last run",
		}),
		RejectedRows: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pricesync_rejected_rows",
			Help: "Number of spreadsheet rows dropped in the last run",
		}),
		LastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pricesync_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
	}
}

// ObserveOutcome implements usecase.Metrics.
func (m *Metrics) ObserveOutcome(status domain.Status, kind string, elapsed time.Duration) {
	m.Outcomes.WithLabelValues(string(status), kind).Inc()
	m.OutcomeDuration.WithLabelValues(string(status)).Observe(elapsed.Seconds())
}

// IdentityRetry implements usecase.Metrics.
func (m *Metrics) IdentityRetry() {
	m.IdentityRetries.Inc()
}

// WriteAttempt implements usecase.Metrics.
func (m *Metrics) WriteAttempt(mode string, matched bool) {
	result := "mismatch"
	if matched {
		result = "match"
	}
	m.WriteAttempts.WithLabelValues(mode, result).Inc()
}

// SaveFallback implements usecase.Metrics.
func (m *Metrics) SaveFallback() {
	m.SaveFallbacks.Inc()
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteToTextfile writes the current values in the text exposition format, ready for
// a node exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	m.LastRun.SetToCurrentTime()
	return prometheus.WriteToTextfile(path, m.registry)
}
