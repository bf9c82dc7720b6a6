// Package provider abstracts host-level metric retrieval behind a single
// capability interface so the capture pipeline can be exercised against fakes.
package provider

import (
	"context"
	"time"
)

// HostIdentity describes the host the provider is reading from.
type HostIdentity struct {
	OS           string
	OSVersion    string
	Hostname     string
	Architecture string
}

// MemoryStat contains virtual memory counters in bytes.
type MemoryStat struct {
	Total       uint64
	Used        uint64
	Available   uint64
	UsedPercent float64
}

// DiskUsageStat contains volume usage counters in bytes for one mount point.
type DiskUsageStat struct {
	Total       uint64
	Used        uint64
	Free        uint64
	UsedPercent float64
}

// DiskIOStat contains cumulative host-wide disk I/O counters.
type DiskIOStat struct {
	ReadBytes   uint64
	WriteBytes  uint64
	ReadCount   uint64
	WriteCount  uint64
	ReadTimeMs  uint64
	WriteTimeMs uint64
}

// NetIOStat contains cumulative network I/O counters.
type NetIOStat struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
}

// InterfaceIOStat contains cumulative counters for one network interface.
type InterfaceIOStat struct {
	Name string
	NetIOStat
}

// InterfaceDetail contains link state and address info for one interface.
type InterfaceDetail struct {
	Up   bool
	IPv4 string // empty when the interface has no IPv4 address
}

// ProcessSample is one process observed during enumeration. The provider
// reports every process it can read; filtering is the caller's concern.
type ProcessSample struct {
	PID           int32
	Name          string
	CPUPercent    float64
	MemoryPercent float32
	Status        string
}

// Provider is the host metrics capability consumed by the capture pipeline.
// Every query is a single best-effort attempt; no implementation retries.
type Provider interface {
	// HostIdentity returns static identity information for the host.
	HostIdentity(ctx context.Context) (HostIdentity, error)

	// BootTime returns the host boot timestamp.
	BootTime(ctx context.Context) (time.Time, error)

	// CPUPercent samples CPU utilization. A nonzero interval blocks for the
	// given duration and returns an interval average; a zero interval returns
	// an instantaneous reading relative to the previous call.
	CPUPercent(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error)

	// CPUCount returns the number of logical cores.
	CPUCount(ctx context.Context) (int, error)

	// CPUFrequencyMHz returns the current CPU frequency. Hosts without a
	// frequency reading return an error.
	CPUFrequencyMHz(ctx context.Context) (float64, error)

	// VirtualMemory returns virtual memory counters.
	VirtualMemory(ctx context.Context) (MemoryStat, error)

	// DiskUsage returns usage counters for the volume at path.
	DiskUsage(ctx context.Context, path string) (DiskUsageStat, error)

	// DiskIO returns cumulative disk I/O counters, or nil when the platform
	// exposes none.
	DiskIO(ctx context.Context) (*DiskIOStat, error)

	// NetIO returns aggregate network I/O counters.
	NetIO(ctx context.Context) (NetIOStat, error)

	// NetIOPerInterface returns per-interface network I/O counters.
	NetIOPerInterface(ctx context.Context) ([]InterfaceIOStat, error)

	// InterfaceDetails returns link state and address info keyed by
	// interface name.
	InterfaceDetails(ctx context.Context) (map[string]InterfaceDetail, error)

	// Processes enumerates running processes. Processes that vanish or are
	// inaccessible mid-enumeration are skipped, not reported as errors.
	Processes(ctx context.Context) ([]ProcessSample, error)
}
