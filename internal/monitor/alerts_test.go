package monitor

import (
	"context"
	"testing"
)

func newAlertMonitor(t *testing.T, cfg AlertConfig) *SystemMonitor {
	t.Helper()
	return newTestMonitor(t, newFakeProvider(), cfg)
}

func snapshotWithPercents(cpu, memory, disk float64) *SystemSnapshot {
	return &SystemSnapshot{
		CPU:    CPUInfo{Percent: cpu, Count: 4},
		Memory: MemoryInfo{TotalGB: 16, UsedGB: 8, AvailableGB: 8, Percent: memory},
		Disk:   DiskInfo{TotalGB: 512, UsedGB: 256, FreeGB: 256, Percent: disk, MountPoint: "/"},
	}
}

func TestCheckAlerts_DisabledReturnsNone(t *testing.T) {
	cfg := DefaultAlertConfig()
	cfg.Enabled = false
	m := newAlertMonitor(t, cfg)

	alerts := m.CheckAlerts(snapshotWithPercents(100, 100, 100))
	if len(alerts) != 0 {
		t.Errorf("got %d alerts, want 0 when disabled", len(alerts))
	}
}

func TestCheckAlerts_ThresholdInclusive(t *testing.T) {
	m := newAlertMonitor(t, DefaultAlertConfig())

	// Exactly at threshold fires.
	alerts := m.CheckAlerts(snapshotWithPercents(80.0, 0, 0))
	if len(alerts) != 1 || alerts[0].Type != AlertTypeCPU {
		t.Fatalf("alerts = %v, want one cpu alert at threshold", alerts)
	}

	// One unit below does not.
	alerts = m.CheckAlerts(snapshotWithPercents(79.0, 0, 0))
	if len(alerts) != 0 {
		t.Errorf("alerts = %v, want none below threshold", alerts)
	}
}

func TestCheckAlerts_SeverityBoundary(t *testing.T) {
	m := newAlertMonitor(t, DefaultAlertConfig())

	alerts := m.CheckAlerts(snapshotWithPercents(95.0, 0, 0))
	if len(alerts) != 1 || alerts[0].Severity != SeverityCritical {
		t.Errorf("alerts = %v, want critical at exactly 95.0", alerts)
	}

	alerts = m.CheckAlerts(snapshotWithPercents(94.999, 0, 0))
	if len(alerts) != 1 || alerts[0].Severity != SeverityWarning {
		t.Errorf("alerts = %v, want warning at 94.999", alerts)
	}
}

func TestCheckAlerts_CriticalPointIgnoresThreshold(t *testing.T) {
	// Even with a threshold above 95, a firing alert at >=95 is critical.
	cfg := DefaultAlertConfig()
	cfg.CPUThreshold = 96.0
	m := newAlertMonitor(t, cfg)

	alerts := m.CheckAlerts(snapshotWithPercents(97.0, 0, 0))
	if len(alerts) != 1 || alerts[0].Severity != SeverityCritical {
		t.Errorf("alerts = %v, want one critical alert", alerts)
	}
}

func TestCheckAlerts_SingleCriticalCPU(t *testing.T) {
	m := newAlertMonitor(t, DefaultAlertConfig())

	alerts := m.CheckAlerts(snapshotWithPercents(96.0, 50.0, 50.0))
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want exactly 1", len(alerts))
	}
	a := alerts[0]
	if a.Type != AlertTypeCPU || a.Severity != SeverityCritical {
		t.Errorf("alert = %+v, want critical cpu", a)
	}
	if a.CurrentValue != 96.0 || a.Threshold != 80.0 {
		t.Errorf("alert = %+v, want value 96 threshold 80", a)
	}
	if a.Message != "CPU usage is 96.0%" {
		t.Errorf("Message = %q", a.Message)
	}
	if !a.Timestamp.Equal(testNow) {
		t.Errorf("Timestamp = %v, want %v", a.Timestamp, testNow)
	}
}

func TestCheckAlerts_ThreeWarnings(t *testing.T) {
	m := newAlertMonitor(t, DefaultAlertConfig())

	alerts := m.CheckAlerts(snapshotWithPercents(81.0, 90.0, 91.0))
	if len(alerts) != 3 {
		t.Fatalf("got %d alerts, want 3", len(alerts))
	}

	wantTypes := []AlertType{AlertTypeCPU, AlertTypeMemory, AlertTypeDisk}
	for i, a := range alerts {
		if a.Type != wantTypes[i] {
			t.Errorf("alerts[%d].Type = %q, want %q", i, a.Type, wantTypes[i])
		}
		if a.Severity != SeverityWarning {
			t.Errorf("alerts[%d].Severity = %q, want warning (all <95)", i, a.Severity)
		}
	}
}

func TestCheckAlerts_AtMostOnePerCategory(t *testing.T) {
	m := newAlertMonitor(t, DefaultAlertConfig())

	alerts := m.CheckAlerts(snapshotWithPercents(100, 100, 100))
	if len(alerts) != 3 {
		t.Fatalf("got %d alerts, want 3 (one per category)", len(alerts))
	}

	seen := map[AlertType]int{}
	for _, a := range alerts {
		seen[a.Type]++
	}
	for typ, n := range seen {
		if n != 1 {
			t.Errorf("category %q has %d alerts, want 1", typ, n)
		}
	}
}

func TestCaptureSnapshot_AlertsFromLiveMetrics(t *testing.T) {
	f := newFakeProvider()
	f.cpuPercent = []float64{96.0}
	m := newTestMonitor(t, f, DefaultAlertConfig())

	snap, err := m.CaptureSnapshot(context.Background(), DefaultOptions())
	if err != nil {
		t.Fatalf("CaptureSnapshot failed: %v", err)
	}
	if len(snap.Alerts) != 1 || snap.Alerts[0].Type != AlertTypeCPU || snap.Alerts[0].Severity != SeverityCritical {
		t.Errorf("Alerts = %v, want one critical cpu alert", snap.Alerts)
	}
}
