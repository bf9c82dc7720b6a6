// Package monitor assembles host metrics into consistent, serializable
// snapshots and derives alert events from them.
package monitor

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"sysmon/internal/logger"
	"sysmon/internal/provider"
	"sysmon/internal/units"
)

// cpuSampleInterval is the blocking window for the aggregate CPU reading.
// A nonzero interval is required for a meaningful average; an instantaneous
// read would report zero or stale data.
const cpuSampleInterval = time.Second

// SystemMonitor captures system snapshots from a metrics provider.
//
// Boot time and the alert config are fixed at construction and only read
// afterwards, so a single monitor is safe for concurrent captures.
type SystemMonitor struct {
	provider    provider.Provider
	clk         clock.Clock
	bootTime    time.Time
	alertConfig AlertConfig
	log         zerolog.Logger
}

// New creates a SystemMonitor, caching the host boot time for the process
// lifetime.
func New(ctx context.Context, p provider.Provider, cfg AlertConfig) (*SystemMonitor, error) {
	bootTime, err := p.BootTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("boot time: %w", err)
	}

	return &SystemMonitor{
		provider:    p,
		clk:         clock.New(),
		bootTime:    bootTime,
		alertConfig: cfg,
		log:         logger.WithComponent("monitor"),
	}, nil
}

// AlertConfig returns the thresholds the monitor was constructed with.
func (m *SystemMonitor) AlertConfig() AlertConfig {
	return m.alertConfig
}

// GetSystemInfo gathers host identity and uptime. Host identity is assumed
// always available, so a provider failure here is fatal to a capture.
func (m *SystemMonitor) GetSystemInfo(ctx context.Context) (SystemInfo, error) {
	ident, err := m.provider.HostIdentity(ctx)
	if err != nil {
		return SystemInfo{}, fmt.Errorf("host identity: %w", err)
	}

	return SystemInfo{
		OS:            ident.OS,
		OSVersion:     ident.OSVersion,
		Hostname:      ident.Hostname,
		Architecture:  ident.Architecture,
		BootTime:      m.bootTime,
		UptimeSeconds: m.clk.Now().Sub(m.bootTime).Seconds(),
	}, nil
}

// GetCPUInfo samples CPU usage. The aggregate reading blocks for
// cpuSampleInterval; the optional per-core reading uses a zero interval so a
// capture never blocks twice, at the cost of the per-core numbers being
// instantaneous rather than interval averages. Frequency is best-effort and
// absent when the host has no reading.
func (m *SystemMonitor) GetCPUInfo(ctx context.Context, perCPU bool) (CPUInfo, error) {
	percents, err := m.provider.CPUPercent(ctx, cpuSampleInterval, false)
	if err != nil {
		return CPUInfo{}, fmt.Errorf("cpu percent: %w", err)
	}

	info := CPUInfo{}
	if len(percents) > 0 {
		info.Percent = percents[0]
	}

	if perCPU {
		perCore, err := m.provider.CPUPercent(ctx, 0, true)
		if err != nil {
			return CPUInfo{}, fmt.Errorf("per-core cpu percent: %w", err)
		}
		info.PerCPU = perCore
	}

	count, err := m.provider.CPUCount(ctx)
	if err != nil {
		return CPUInfo{}, fmt.Errorf("cpu count: %w", err)
	}
	info.Count = count

	if freq, err := m.provider.CPUFrequencyMHz(ctx); err != nil {
		m.log.Debug().Err(err).Msg("CPU frequency unavailable")
	} else {
		info.FrequencyMHz = &freq
	}

	return info, nil
}

// GetMemoryInfo gathers virtual memory usage.
func (m *SystemMonitor) GetMemoryInfo(ctx context.Context) (MemoryInfo, error) {
	vm, err := m.provider.VirtualMemory(ctx)
	if err != nil {
		return MemoryInfo{}, fmt.Errorf("virtual memory: %w", err)
	}

	return MemoryInfo{
		TotalGB:     units.BytesToGB(vm.Total),
		UsedGB:      units.BytesToGB(vm.Used),
		AvailableGB: units.BytesToGB(vm.Available),
		Percent:     vm.UsedPercent,
	}, nil
}

// GetDiskInfo gathers volume usage for the given mount point.
func (m *SystemMonitor) GetDiskInfo(ctx context.Context, mountPoint string) (DiskInfo, error) {
	usage, err := m.provider.DiskUsage(ctx, mountPoint)
	if err != nil {
		return DiskInfo{}, fmt.Errorf("disk usage for %s: %w", mountPoint, err)
	}

	return DiskInfo{
		TotalGB:    units.BytesToGB(usage.Total),
		UsedGB:     units.BytesToGB(usage.Used),
		FreeGB:     units.BytesToGB(usage.Free),
		Percent:    usage.UsedPercent,
		MountPoint: mountPoint,
	}, nil
}

// GetDiskIOInfo gathers cumulative disk I/O counters. This never fails: a
// platform without counters and a provider error both yield absence, the
// latter logged as feature-unavailable.
func (m *SystemMonitor) GetDiskIOInfo(ctx context.Context) *DiskIOInfo {
	io, err := m.provider.DiskIO(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("Disk I/O counters unavailable")
		return nil
	}
	if io == nil {
		return nil
	}

	return &DiskIOInfo{
		ReadBytesMB:  units.BytesToMB(io.ReadBytes),
		WriteBytesMB: units.BytesToMB(io.WriteBytes),
		ReadCount:    io.ReadCount,
		WriteCount:   io.WriteCount,
		ReadTimeMs:   io.ReadTimeMs,
		WriteTimeMs:  io.WriteTimeMs,
	}
}

// GetNetworkInfo gathers aggregate network counters.
func (m *SystemMonitor) GetNetworkInfo(ctx context.Context) (NetworkInfo, error) {
	io, err := m.provider.NetIO(ctx)
	if err != nil {
		return NetworkInfo{}, fmt.Errorf("network counters: %w", err)
	}

	return NetworkInfo{
		BytesSentMB: units.BytesToMB(io.BytesSent),
		BytesRecvMB: units.BytesToMB(io.BytesRecv),
		PacketsSent: io.PacketsSent,
		PacketsRecv: io.PacketsRecv,
	}, nil
}

// GetNetworkInterfaces gathers per-interface counters with link state and
// address detail. This never fails: enumeration errors and zero usable
// interfaces both yield absence. A failure resolving one interface's detail
// does not affect the others; its link state defaults to up.
func (m *SystemMonitor) GetNetworkInterfaces(ctx context.Context) []NetworkInterfaceInfo {
	counters, err := m.provider.NetIOPerInterface(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("Per-interface network counters unavailable")
		return nil
	}

	details, err := m.provider.InterfaceDetails(ctx)
	if err != nil {
		m.log.Debug().Err(err).Msg("Interface details unavailable")
		details = nil
	}

	interfaces := make([]NetworkInterfaceInfo, 0, len(counters))
	for _, c := range counters {
		iface := NetworkInterfaceInfo{
			Name:        c.Name,
			BytesSentMB: units.BytesToMB(c.BytesSent),
			BytesRecvMB: units.BytesToMB(c.BytesRecv),
			PacketsSent: c.PacketsSent,
			PacketsRecv: c.PacketsRecv,
			IsUp:        true,
		}
		if detail, ok := details[c.Name]; ok {
			iface.IsUp = detail.Up
			iface.IPAddr = detail.IPv4
		}
		interfaces = append(interfaces, iface)
	}

	if len(interfaces) == 0 {
		return nil
	}
	return interfaces
}

// GetTopProcesses returns up to count processes ordered by CPU usage
// descending. PID 0 and processes observed at exactly zero CPU are excluded.
// Process listing is advisory: enumeration failure yields an empty list.
func (m *SystemMonitor) GetTopProcesses(ctx context.Context, count int) []ProcessInfo {
	samples, err := m.provider.Processes(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("Process enumeration failed")
		return []ProcessInfo{}
	}

	processes := make([]ProcessInfo, 0, len(samples))
	for _, s := range samples {
		if !keepProcess(s) {
			continue
		}
		processes = append(processes, ProcessInfo{
			PID:           s.PID,
			Name:          s.Name,
			CPUPercent:    s.CPUPercent,
			MemoryPercent: float64(s.MemoryPercent),
			Status:        s.Status,
		})
	}

	// Stable: ties keep encounter order.
	sort.SliceStable(processes, func(i, j int) bool {
		return processes[i].CPUPercent > processes[j].CPUPercent
	})

	if count >= 0 && len(processes) > count {
		processes = processes[:count]
	}
	return processes
}

// keepProcess filters out pid 0 (reserved/kernel) and zero-CPU processes.
// A zero reading also covers processes whose first sample has not accumulated
// CPU time yet; they drop out of the ranking the same way idle ones do.
func keepProcess(s provider.ProcessSample) bool {
	return s.PID != 0 && s.CPUPercent != 0
}

// CaptureSnapshot gathers all metric categories into one snapshot. Any
// failure in a required category (system, cpu, memory, disk, network) aborts
// the capture; optional categories degrade to absence per their own
// contracts.
func (m *SystemMonitor) CaptureSnapshot(ctx context.Context, opts Options) (*SystemSnapshot, error) {
	system, err := m.GetSystemInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("system info: %w", err)
	}

	cpu, err := m.GetCPUInfo(ctx, opts.PerCPU)
	if err != nil {
		return nil, fmt.Errorf("cpu info: %w", err)
	}

	memory, err := m.GetMemoryInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("memory info: %w", err)
	}

	mountPoint := opts.MountPoint
	if mountPoint == "" {
		mountPoint = "/"
	}
	disk, err := m.GetDiskInfo(ctx, mountPoint)
	if err != nil {
		return nil, fmt.Errorf("disk info: %w", err)
	}

	network, err := m.GetNetworkInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("network info: %w", err)
	}

	snapshot := &SystemSnapshot{
		Timestamp:    m.clk.Now(),
		System:       system,
		CPU:          cpu,
		Memory:       memory,
		Disk:         disk,
		Network:      network,
		TopProcesses: []ProcessInfo{},
		Alerts:       []Alert{},
	}

	if opts.IncludeDiskIO {
		snapshot.DiskIO = m.GetDiskIOInfo(ctx)
	}
	if opts.IncludeNetworkInterfaces {
		snapshot.NetworkInterfaces = m.GetNetworkInterfaces(ctx)
	}
	if opts.IncludeProcesses {
		snapshot.TopProcesses = m.GetTopProcesses(ctx, opts.ProcessCount)
	}
	if opts.CheckAlerts {
		snapshot.Alerts = m.CheckAlerts(snapshot)
	}

	return snapshot, nil
}
