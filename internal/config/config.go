// Package config provides configuration management for sysmon.
package config

import (
	"time"

	"sysmon/internal/logger"
	"sysmon/internal/monitor"
)

// Config is the root configuration structure.
type Config struct {
	// Interval between captures in watch mode.
	Interval time.Duration
	// Mount is the volume checked for disk usage.
	Mount   string
	Capture CaptureConfig
	Alerts  AlertsConfig
	Logging logger.Config
}

// CaptureConfig holds the capture toggles.
type CaptureConfig struct {
	PerCPU                   bool
	IncludeProcesses         bool
	ProcessCount             int
	IncludeDiskIO            bool
	IncludeNetworkInterfaces bool
	CheckAlerts              bool
}

// AlertsConfig holds the alert thresholds in percent.
type AlertsConfig struct {
	Enabled         bool
	CPUThreshold    float64
	MemoryThreshold float64
	DiskThreshold   float64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Interval: 10 * time.Second,
		Mount:    "/",
		Capture: CaptureConfig{
			PerCPU:                   false,
			IncludeProcesses:         true,
			ProcessCount:             5,
			IncludeDiskIO:            true,
			IncludeNetworkInterfaces: false,
			CheckAlerts:              true,
		},
		Alerts: AlertsConfig{
			Enabled:         true,
			CPUThreshold:    80.0,
			MemoryThreshold: 85.0,
			DiskThreshold:   90.0,
		},
		Logging: logger.DefaultConfig(),
	}
}

// Options converts the capture configuration to monitor options.
func (c *Config) Options() monitor.Options {
	return monitor.Options{
		PerCPU:                   c.Capture.PerCPU,
		IncludeProcesses:         c.Capture.IncludeProcesses,
		ProcessCount:             c.Capture.ProcessCount,
		IncludeDiskIO:            c.Capture.IncludeDiskIO,
		IncludeNetworkInterfaces: c.Capture.IncludeNetworkInterfaces,
		CheckAlerts:              c.Capture.CheckAlerts,
		MountPoint:               c.Mount,
	}
}

// AlertConfig converts the alerts configuration to monitor thresholds.
func (c *Config) AlertConfig() monitor.AlertConfig {
	return monitor.AlertConfig{
		Enabled:         c.Alerts.Enabled,
		CPUThreshold:    c.Alerts.CPUThreshold,
		MemoryThreshold: c.Alerts.MemoryThreshold,
		DiskThreshold:   c.Alerts.DiskThreshold,
	}
}
