package telemetry

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Telemetry collects pipeline metrics on its own registry so multiple
// instances (e.g. in tests) never collide.
type Telemetry struct {
	enabled  bool
	logger   *log.Logger
	registry *prometheus.Registry

	runsTotal     prometheus.Counter
	runDuration   prometheus.Histogram
	runEvidence   prometheus.Histogram
	detectTotal   prometheus.Counter
	toolFailures  *prometheus.CounterVec
	cacheRequests *prometheus.CounterVec
}

// New builds a Telemetry. When disabled every record call is a no-op but the
// registry still serves an empty /metrics.
func New(enabled bool) *Telemetry {
	t := &Telemetry{
		enabled:  enabled,
		logger:   log.New(log.Writer(), "[TELEMETRY] ", log.LstdFlags),
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "briefer_runs_total",
			Help: "Completed research runs.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "briefer_run_duration_seconds",
			Help:    "Wall-clock duration of research runs.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		runEvidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "briefer_run_evidence_items",
			Help:    "Evidence items collected per run.",
			Buckets: prometheus.LinearBuckets(0, 4, 10),
		}),
		detectTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "briefer_detections_total",
			Help: "Single-article detections served.",
		}),
		toolFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "briefer_tool_failures_total",
			Help: "External tool failures absorbed by the pipeline.",
		}, []string{"tool"}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "briefer_cache_requests_total",
			Help: "Run cache lookups by outcome.",
		}, []string{"outcome"}),
	}
	t.registry.MustRegister(t.runsTotal, t.runDuration, t.runEvidence, t.detectTotal, t.toolFailures, t.cacheRequests)
	return t
}

// Registry exposes the metrics registry for the HTTP handler.
func (t *Telemetry) Registry() *prometheus.Registry {
	return t.registry
}

// RecordRun records a completed research run.
func (t *Telemetry) RecordRun(d time.Duration, evidenceItems int) {
	if !t.enabled {
		return
	}
	t.runsTotal.Inc()
	t.runDuration.Observe(d.Seconds())
	t.runEvidence.Observe(float64(evidenceItems))
}

// RecordDetection records a single-article detection.
func (t *Telemetry) RecordDetection() {
	if !t.enabled {
		return
	}
	t.detectTotal.Inc()
}

// RecordToolFailure records an absorbed external tool failure.
func (t *Telemetry) RecordToolFailure(tool string) {
	if !t.enabled {
		return
	}
	t.toolFailures.WithLabelValues(tool).Inc()
}

// RecordCacheLookup records a run-cache lookup outcome (hit, miss, error).
func (t *Telemetry) RecordCacheLookup(outcome string) {
	if !t.enabled {
		return
	}
	t.cacheRequests.WithLabelValues(outcome).Inc()
}
