package telemetry

import (
	"testing"
	"time"
)

func TestRecordingPopulatesRegistry(t *testing.T) {
	tele := New(true)
	tele.RecordRun(2*time.Second, 7)
	tele.RecordDetection()
	tele.RecordToolFailure("scraper")
	tele.RecordCacheLookup("miss")

	mfs, err := tele.Registry().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	names := make(map[string]bool, len(mfs))
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"briefer_runs_total",
		"briefer_run_duration_seconds",
		"briefer_detections_total",
		"briefer_tool_failures_total",
		"briefer_cache_requests_total",
	} {
		if !names[want] {
			t.Fatalf("metric %q missing from registry, got %#v", want, names)
		}
	}
}

func TestDisabledTelemetryIsSilent(t *testing.T) {
	tele := New(false)
	tele.RecordRun(time.Second, 3)
	tele.RecordDetection()

	mfs, err := tele.Registry().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil && c.GetValue() != 0 {
				t.Fatalf("disabled telemetry recorded %s", mf.GetName())
			}
		}
	}
}

func TestInstancesDoNotCollide(t *testing.T) {
	a := New(true)
	b := New(true)
	a.RecordDetection()
	if a.Registry() == b.Registry() {
		t.Fatalf("each instance must own its registry")
	}
}
