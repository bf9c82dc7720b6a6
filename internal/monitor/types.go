package monitor

import "time"

// SystemInfo contains basic host identity information.
type SystemInfo struct {
	OS            string    `json:"os"`
	OSVersion     string    `json:"os_version"`
	Hostname      string    `json:"hostname"`
	Architecture  string    `json:"architecture"`
	BootTime      time.Time `json:"boot_time"`
	UptimeSeconds float64   `json:"uptime_seconds"`
}

// CPUInfo contains CPU usage information.
type CPUInfo struct {
	// Percent is the aggregate usage over the sampling interval, 0-100.
	Percent float64 `json:"percent"`
	// Count is the number of logical cores.
	Count int `json:"count"`
	// FrequencyMHz is the current frequency; absent when the host exposes
	// no frequency reading.
	FrequencyMHz *float64 `json:"frequency_mhz,omitempty"`
	// PerCPU is the per-core usage breakdown, present only when requested.
	PerCPU []float64 `json:"per_cpu,omitempty"`
}

// MemoryInfo contains virtual memory usage in GB.
type MemoryInfo struct {
	TotalGB     float64 `json:"total_gb"`
	UsedGB      float64 `json:"used_gb"`
	AvailableGB float64 `json:"available_gb"`
	Percent     float64 `json:"percent"`
}

// DiskInfo contains volume usage for one mount point in GB.
type DiskInfo struct {
	TotalGB    float64 `json:"total_gb"`
	UsedGB     float64 `json:"used_gb"`
	FreeGB     float64 `json:"free_gb"`
	Percent    float64 `json:"percent"`
	MountPoint string  `json:"mount_point"`
}

// DiskIOInfo contains cumulative disk I/O counters. Byte counts are in MB;
// all values are monotonically non-decreasing on a given host.
type DiskIOInfo struct {
	ReadBytesMB  float64 `json:"read_bytes_mb"`
	WriteBytesMB float64 `json:"write_bytes_mb"`
	ReadCount    uint64  `json:"read_count"`
	WriteCount   uint64  `json:"write_count"`
	ReadTimeMs   uint64  `json:"read_time_ms"`
	WriteTimeMs  uint64  `json:"write_time_ms"`
}

// NetworkInfo contains aggregate cumulative network counters, bytes in MB.
type NetworkInfo struct {
	BytesSentMB float64 `json:"bytes_sent_mb"`
	BytesRecvMB float64 `json:"bytes_recv_mb"`
	PacketsSent uint64  `json:"packets_sent"`
	PacketsRecv uint64  `json:"packets_recv"`
}

// NetworkInterfaceInfo contains cumulative counters for one interface.
type NetworkInterfaceInfo struct {
	Name        string  `json:"name"`
	BytesSentMB float64 `json:"bytes_sent_mb"`
	BytesRecvMB float64 `json:"bytes_recv_mb"`
	PacketsSent uint64  `json:"packets_sent"`
	PacketsRecv uint64  `json:"packets_recv"`
	IsUp        bool    `json:"is_up"`
	IPAddr      string  `json:"ip_addr,omitempty"`
}

// ProcessInfo contains usage information for one running process.
type ProcessInfo struct {
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Status        string  `json:"status"`
}

// AlertType identifies the metric category an alert was raised for.
type AlertType string

const (
	AlertTypeCPU    AlertType = "cpu"
	AlertTypeMemory AlertType = "memory"
	AlertTypeDisk   AlertType = "disk"
)

// Severity is the escalation level of an alert.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is one threshold crossing observed in a snapshot.
type Alert struct {
	Timestamp    time.Time `json:"timestamp"`
	Type         AlertType `json:"alert_type"`
	Severity     Severity  `json:"severity"`
	Message      string    `json:"message"`
	CurrentValue float64   `json:"current_value"`
	Threshold    float64   `json:"threshold"`
}

// AlertConfig holds the alert thresholds, each in percent. The config is
// fixed for the lifetime of the monitor holding it.
type AlertConfig struct {
	CPUThreshold    float64 `json:"cpu_threshold"`
	MemoryThreshold float64 `json:"memory_threshold"`
	DiskThreshold   float64 `json:"disk_threshold"`
	Enabled         bool    `json:"enabled"`
}

// DefaultAlertConfig returns the default thresholds.
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{
		CPUThreshold:    80.0,
		MemoryThreshold: 85.0,
		DiskThreshold:   90.0,
		Enabled:         true,
	}
}

// SystemSnapshot is one point-in-time aggregate of all sampled metrics.
// DiskIO and NetworkInterfaces are absent when the host does not expose them
// or their collection was not requested.
type SystemSnapshot struct {
	Timestamp         time.Time              `json:"timestamp"`
	System            SystemInfo             `json:"system"`
	CPU               CPUInfo                `json:"cpu"`
	Memory            MemoryInfo             `json:"memory"`
	Disk              DiskInfo               `json:"disk"`
	DiskIO            *DiskIOInfo            `json:"disk_io,omitempty"`
	Network           NetworkInfo            `json:"network"`
	NetworkInterfaces []NetworkInterfaceInfo `json:"network_interfaces,omitempty"`
	TopProcesses      []ProcessInfo          `json:"top_processes"`
	Alerts            []Alert                `json:"alerts"`
}

// Options controls which optional categories CaptureSnapshot collects.
type Options struct {
	// PerCPU includes the per-core usage breakdown.
	PerCPU bool
	// IncludeProcesses includes the top process list.
	IncludeProcesses bool
	// ProcessCount bounds the top process list length.
	ProcessCount int
	// IncludeDiskIO includes cumulative disk I/O counters.
	IncludeDiskIO bool
	// IncludeNetworkInterfaces includes per-interface network counters.
	IncludeNetworkInterfaces bool
	// CheckAlerts evaluates alert thresholds against the snapshot.
	CheckAlerts bool
	// MountPoint is the volume checked for disk usage.
	MountPoint string
}

// DefaultOptions returns the default capture options.
func DefaultOptions() Options {
	return Options{
		PerCPU:                   false,
		IncludeProcesses:         true,
		ProcessCount:             5,
		IncludeDiskIO:            true,
		IncludeNetworkInterfaces: false,
		CheckAlerts:              true,
		MountPoint:               "/",
	}
}
