package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"sysmon/internal/logger"
)

// rawConfig is used for JSON unmarshaling with duration strings and
// optional booleans. Pointer fields distinguish "absent" from "false".
type rawConfig struct {
	Interval string      `json:"Interval"`
	Mount    string      `json:"Mount"`
	Capture  *rawCapture `json:"Capture"`
	Alerts   *rawAlerts  `json:"Alerts"`
	Logging  *rawLogging `json:"Logging"`
}

type rawCapture struct {
	PerCPU                   *bool `json:"PerCPU"`
	IncludeProcesses         *bool `json:"IncludeProcesses"`
	ProcessCount             *int  `json:"ProcessCount"`
	IncludeDiskIO            *bool `json:"IncludeDiskIO"`
	IncludeNetworkInterfaces *bool `json:"IncludeNetworkInterfaces"`
	CheckAlerts              *bool `json:"CheckAlerts"`
}

type rawAlerts struct {
	Enabled         *bool    `json:"Enabled"`
	CPUThreshold    *float64 `json:"CPUThreshold"`
	MemoryThreshold *float64 `json:"MemoryThreshold"`
	DiskThreshold   *float64 `json:"DiskThreshold"`
}

type rawLogging struct {
	Level      string `json:"Level"`
	FilePath   string `json:"FilePath"`
	MaxSizeMB  int    `json:"MaxSizeMB"`
	MaxBackups int    `json:"MaxBackups"`
	MaxAgeDays int    `json:"MaxAgeDays"`
	Compress   *bool  `json:"Compress"`
	Console    *bool  `json:"Console"`
}

// Load reads configuration from the specified file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration from JSON bytes, applying defaults for any
// field the document does not set.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg := DefaultConfig()

	if raw.Interval != "" {
		d, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid Interval duration: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("Interval must be positive, got %s", d)
		}
		cfg.Interval = d
	}
	if raw.Mount != "" {
		cfg.Mount = raw.Mount
	}

	if raw.Capture != nil {
		mergeCapture(&cfg.Capture, raw.Capture)
	}
	if raw.Alerts != nil {
		if err := mergeAlerts(&cfg.Alerts, raw.Alerts); err != nil {
			return nil, err
		}
	}
	if raw.Logging != nil {
		mergeLogging(&cfg.Logging, raw.Logging)
	}

	return cfg, nil
}

func mergeCapture(dst *CaptureConfig, raw *rawCapture) {
	if raw.PerCPU != nil {
		dst.PerCPU = *raw.PerCPU
	}
	if raw.IncludeProcesses != nil {
		dst.IncludeProcesses = *raw.IncludeProcesses
	}
	if raw.ProcessCount != nil {
		dst.ProcessCount = *raw.ProcessCount
	}
	if raw.IncludeDiskIO != nil {
		dst.IncludeDiskIO = *raw.IncludeDiskIO
	}
	if raw.IncludeNetworkInterfaces != nil {
		dst.IncludeNetworkInterfaces = *raw.IncludeNetworkInterfaces
	}
	if raw.CheckAlerts != nil {
		dst.CheckAlerts = *raw.CheckAlerts
	}
}

func mergeAlerts(dst *AlertsConfig, raw *rawAlerts) error {
	if raw.Enabled != nil {
		dst.Enabled = *raw.Enabled
	}
	if raw.CPUThreshold != nil {
		dst.CPUThreshold = *raw.CPUThreshold
	}
	if raw.MemoryThreshold != nil {
		dst.MemoryThreshold = *raw.MemoryThreshold
	}
	if raw.DiskThreshold != nil {
		dst.DiskThreshold = *raw.DiskThreshold
	}

	for name, v := range map[string]float64{
		"CPUThreshold":    dst.CPUThreshold,
		"MemoryThreshold": dst.MemoryThreshold,
		"DiskThreshold":   dst.DiskThreshold,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be within [0,100], got %v", name, v)
		}
	}
	return nil
}

func mergeLogging(dst *logger.Config, raw *rawLogging) {
	if raw.Level != "" {
		dst.Level = raw.Level
	}
	if raw.FilePath != "" {
		dst.FilePath = raw.FilePath
	}
	if raw.MaxSizeMB != 0 {
		dst.MaxSizeMB = raw.MaxSizeMB
	}
	if raw.MaxBackups != 0 {
		dst.MaxBackups = raw.MaxBackups
	}
	if raw.MaxAgeDays != 0 {
		dst.MaxAgeDays = raw.MaxAgeDays
	}
	if raw.Compress != nil {
		dst.Compress = *raw.Compress
	}
	if raw.Console != nil {
		dst.Console = *raw.Console
	}
}
