package monitor

import "fmt"

// criticalPercent is the fixed escalation point for critical severity,
// independent of the configured thresholds.
const criticalPercent = 95.0

// CheckAlerts evaluates the snapshot against the monitor's thresholds. It is
// a pure function of (snapshot, config): no I/O, deterministic apart from the
// alert timestamps. At most one alert is emitted per category, and none when
// alerts are disabled.
func (m *SystemMonitor) CheckAlerts(snapshot *SystemSnapshot) []Alert {
	alerts := []Alert{}
	if !m.alertConfig.Enabled {
		return alerts
	}

	if alert := m.evaluate(AlertTypeCPU, "CPU usage", snapshot.CPU.Percent, m.alertConfig.CPUThreshold); alert != nil {
		alerts = append(alerts, *alert)
	}
	if alert := m.evaluate(AlertTypeMemory, "Memory usage", snapshot.Memory.Percent, m.alertConfig.MemoryThreshold); alert != nil {
		alerts = append(alerts, *alert)
	}
	if alert := m.evaluate(AlertTypeDisk, "Disk usage", snapshot.Disk.Percent, m.alertConfig.DiskThreshold); alert != nil {
		alerts = append(alerts, *alert)
	}

	return alerts
}

// evaluate returns an alert when value crossed threshold (inclusive),
// nil otherwise.
func (m *SystemMonitor) evaluate(alertType AlertType, label string, value, threshold float64) *Alert {
	if value < threshold {
		return nil
	}

	severity := SeverityWarning
	if value >= criticalPercent {
		severity = SeverityCritical
	}

	return &Alert{
		Timestamp:    m.clk.Now(),
		Type:         alertType,
		Severity:     severity,
		Message:      fmt.Sprintf("%s is %.1f%%", label, value),
		CurrentValue: value,
		Threshold:    threshold,
	}
}
