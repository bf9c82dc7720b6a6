package provider

import (
	"context"
	"fmt"
	stdnet "net"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// GopsutilProvider implements Provider on top of gopsutil, which handles the
// per-OS dispatch internally.
type GopsutilProvider struct{}

// NewGopsutilProvider creates the production metrics provider.
func NewGopsutilProvider() *GopsutilProvider {
	return &GopsutilProvider{}
}

var _ Provider = (*GopsutilProvider)(nil)

// HostIdentity returns static identity information for the host.
func (g *GopsutilProvider) HostIdentity(ctx context.Context) (HostIdentity, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostIdentity{}, err
	}
	return HostIdentity{
		OS:           info.OS,
		OSVersion:    info.PlatformVersion,
		Hostname:     info.Hostname,
		Architecture: info.KernelArch,
	}, nil
}

// BootTime returns the host boot timestamp.
func (g *GopsutilProvider) BootTime(ctx context.Context) (time.Time, error) {
	bt, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(bt), 0), nil
}

// CPUPercent samples CPU utilization.
func (g *GopsutilProvider) CPUPercent(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error) {
	return cpu.PercentWithContext(ctx, interval, perCPU)
}

// CPUCount returns the number of logical cores.
func (g *GopsutilProvider) CPUCount(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

// CPUFrequencyMHz returns the current CPU frequency.
func (g *GopsutilProvider) CPUFrequencyMHz(ctx context.Context) (float64, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	if len(infos) == 0 || infos[0].Mhz <= 0 {
		return 0, fmt.Errorf("no cpu frequency reading available")
	}
	return infos[0].Mhz, nil
}

// VirtualMemory returns virtual memory counters.
func (g *GopsutilProvider) VirtualMemory(ctx context.Context) (MemoryStat, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStat{}, err
	}
	return MemoryStat{
		Total:       vm.Total,
		Used:        vm.Used,
		Available:   vm.Available,
		UsedPercent: vm.UsedPercent,
	}, nil
}

// DiskUsage returns usage counters for the volume at path.
func (g *GopsutilProvider) DiskUsage(ctx context.Context, path string) (DiskUsageStat, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return DiskUsageStat{}, err
	}
	return DiskUsageStat{
		Total:       usage.Total,
		Used:        usage.Used,
		Free:        usage.Free,
		UsedPercent: usage.UsedPercent,
	}, nil
}

// DiskIO returns host-wide cumulative disk I/O counters. gopsutil reports
// per-device counters; these are summed because the pipeline wants the same
// host-wide totals the platform exposes. An empty counter map means the
// platform has no disk I/O accounting and yields (nil, nil).
func (g *GopsutilProvider) DiskIO(ctx context.Context) (*DiskIOStat, error) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(counters) == 0 {
		return nil, nil
	}

	var total DiskIOStat
	for _, c := range counters {
		total.ReadBytes += c.ReadBytes
		total.WriteBytes += c.WriteBytes
		total.ReadCount += c.ReadCount
		total.WriteCount += c.WriteCount
		total.ReadTimeMs += c.ReadTime
		total.WriteTimeMs += c.WriteTime
	}
	return &total, nil
}

// NetIO returns aggregate network I/O counters.
func (g *GopsutilProvider) NetIO(ctx context.Context) (NetIOStat, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetIOStat{}, err
	}
	if len(counters) == 0 {
		return NetIOStat{}, fmt.Errorf("no network counters available")
	}
	c := counters[0]
	return NetIOStat{
		BytesSent:   c.BytesSent,
		BytesRecv:   c.BytesRecv,
		PacketsSent: c.PacketsSent,
		PacketsRecv: c.PacketsRecv,
	}, nil
}

// NetIOPerInterface returns per-interface network I/O counters.
func (g *GopsutilProvider) NetIOPerInterface(ctx context.Context) ([]InterfaceIOStat, error) {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, err
	}

	stats := make([]InterfaceIOStat, 0, len(counters))
	for _, c := range counters {
		stats = append(stats, InterfaceIOStat{
			Name: c.Name,
			NetIOStat: NetIOStat{
				BytesSent:   c.BytesSent,
				BytesRecv:   c.BytesRecv,
				PacketsSent: c.PacketsSent,
				PacketsRecv: c.PacketsRecv,
			},
		})
	}
	return stats, nil
}

// InterfaceDetails returns link state and first IPv4 address per interface.
func (g *GopsutilProvider) InterfaceDetails(ctx context.Context) (map[string]InterfaceDetail, error) {
	ifaces, err := net.InterfacesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	details := make(map[string]InterfaceDetail, len(ifaces))
	for _, iface := range ifaces {
		detail := InterfaceDetail{Up: hasFlag(iface.Flags, "up")}
		for _, addr := range iface.Addrs {
			if ip := parseIPv4(addr.Addr); ip != "" {
				detail.IPv4 = ip
				break
			}
		}
		details[iface.Name] = detail
	}
	return details, nil
}

// Processes enumerates running processes. Per-process read failures are
// skipped: process lists are inherently racy.
func (g *GopsutilProvider) Processes(ctx context.Context) ([]ProcessSample, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	samples := make([]ProcessSample, 0, len(procs))
	for _, p := range procs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		cpuPercent, err := p.CPUPercentWithContext(ctx)
		if err != nil {
			continue
		}
		memPercent, _ := p.MemoryPercentWithContext(ctx)

		status := ""
		if st, err := p.StatusWithContext(ctx); err == nil && len(st) > 0 {
			status = st[0]
		}

		samples = append(samples, ProcessSample{
			PID:           p.Pid,
			Name:          name,
			CPUPercent:    cpuPercent,
			MemoryPercent: memPercent,
			Status:        status,
		})
	}
	return samples, nil
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

// parseIPv4 extracts an IPv4 address from a plain or CIDR address string.
func parseIPv4(addr string) string {
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		addr = addr[:i]
	}
	ip := stdnet.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return ""
	}
	return ip.String()
}
