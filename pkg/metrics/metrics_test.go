package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewManagerWithCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewManager(
		WithNamespace("test"),
		WithSubsystem("builders"),
		WithPrometheusRegistry(reg),
	)
	if m == nil {
		t.Fatal("expected manager, got nil")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) != 0 {
		// Unused metrics are lazy; nothing observed yet.
		t.Fatalf("expected no populated metric families before use, got %d", len(families))
	}
}

func TestPackageHelpers(t *testing.T) {
	// Exercise the package-level helpers against the global manager.
	RecordListMutation("players", "drag")
	RecordListMutation("teams", "add")
	RecordUndo("players")
	RecordRedo("players")
	UpdateHistoryDepth("players", 3)
	UpdateListLength("players", 100)
	RecordExport("teams")
	RecordExportDuration(12.5)
	RecordExportError()
	RecordSaveCreated("players")
	RecordSaveDeleted("players")
	UpdateSavedCount("players", 4)
	RecordFeedFetch("players", "ok")
	RecordFeedLatency(80)
	RecordFeedFallback("standings")
	RecordLogoLoaded()
	RecordLogoFailed()
	UpdatePreloadReady(true)
	RecordHTTPRequest("export", "POST", "200")
	RecordHTTPRequestDuration("export", "POST", "200", 42)
	UpdateSystemMemoryUsage(1 << 20)
	UpdateSystemGoroutineCount(8)

	families, err := GetRegistry().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected populated metric families after recording")
	}
}
