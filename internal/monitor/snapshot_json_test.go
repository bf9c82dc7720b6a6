package monitor

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func fullSnapshot() *SystemSnapshot {
	freq := 3200.0
	return &SystemSnapshot{
		Timestamp: time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
		System: SystemInfo{
			OS:            "linux",
			OSVersion:     "22.04",
			Hostname:      "testhost",
			Architecture:  "x86_64",
			BootTime:      time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
			UptimeSeconds: 86400,
		},
		CPU: CPUInfo{
			Percent:      42.5,
			Count:        8,
			FrequencyMHz: &freq,
			PerCPU:       []float64{40.0, 45.0, 41.5, 43.0},
		},
		Memory: MemoryInfo{TotalGB: 16, UsedGB: 8.25, AvailableGB: 7.75, Percent: 51.56},
		Disk:   DiskInfo{TotalGB: 512, UsedGB: 256.5, FreeGB: 255.5, Percent: 50.1, MountPoint: "/"},
		DiskIO: &DiskIOInfo{
			ReadBytesMB:  100.25,
			WriteBytesMB: 50.5,
			ReadCount:    1000,
			WriteCount:   500,
			ReadTimeMs:   1200,
			WriteTimeMs:  800,
		},
		Network: NetworkInfo{BytesSentMB: 10.5, BytesRecvMB: 20.75, PacketsSent: 9000, PacketsRecv: 12000},
		NetworkInterfaces: []NetworkInterfaceInfo{
			{Name: "eth0", BytesSentMB: 5, BytesRecvMB: 15, PacketsSent: 4000, PacketsRecv: 8000, IsUp: true, IPAddr: "192.168.1.10"},
			{Name: "wlan0", BytesSentMB: 0.5, BytesRecvMB: 1.5, PacketsSent: 40, PacketsRecv: 80, IsUp: false},
		},
		TopProcesses: []ProcessInfo{
			{PID: 100, Name: "worker", CPUPercent: 12.5, MemoryPercent: 1.5, Status: "running"},
		},
		Alerts: []Alert{
			{
				Timestamp:    time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
				Type:         AlertTypeCPU,
				Severity:     SeverityWarning,
				Message:      "CPU usage is 85.0%",
				CurrentValue: 85.0,
				Threshold:    80.0,
			},
		},
	}
}

func TestSnapshotJSON_RoundTrip(t *testing.T) {
	original := fullSnapshot()

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded SystemSnapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, &decoded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", &decoded, original)
	}
}

func TestSnapshotJSON_OptionalFieldsStayAbsent(t *testing.T) {
	snap := fullSnapshot()
	snap.DiskIO = nil
	snap.NetworkInterfaces = nil
	snap.CPU.FrequencyMHz = nil
	snap.CPU.PerCPU = nil

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal to map failed: %v", err)
	}
	for _, key := range []string{"disk_io", "network_interfaces"} {
		if _, present := raw[key]; present {
			t.Errorf("key %q present in JSON, want omitted", key)
		}
	}

	var rawCPU map[string]json.RawMessage
	if err := json.Unmarshal(raw["cpu"], &rawCPU); err != nil {
		t.Fatalf("Unmarshal cpu failed: %v", err)
	}
	for _, key := range []string{"frequency_mhz", "per_cpu"} {
		if _, present := rawCPU[key]; present {
			t.Errorf("cpu key %q present in JSON, want omitted", key)
		}
	}

	var decoded SystemSnapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.DiskIO != nil || decoded.NetworkInterfaces != nil || decoded.CPU.FrequencyMHz != nil {
		t.Error("absent optional fields must decode as absent")
	}
}

func TestSnapshotJSON_TimestampsAreISO8601(t *testing.T) {
	data, err := json.Marshal(fullSnapshot())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw struct {
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, raw.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC 3339: %v", raw.Timestamp, err)
	}
}

func TestSnapshotJSON_EmptyListsStayLists(t *testing.T) {
	snap := fullSnapshot()
	snap.TopProcesses = []ProcessInfo{}
	snap.Alerts = []Alert{}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if string(raw["top_processes"]) != "[]" {
		t.Errorf("top_processes = %s, want []", raw["top_processes"])
	}
	if string(raw["alerts"]) != "[]" {
		t.Errorf("alerts = %s, want []", raw["alerts"])
	}
}
