// Package main is the entry point for the sysmon agent.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sysmon/internal/config"
	"sysmon/internal/logger"
	"sysmon/internal/monitor"
	"sysmon/internal/provider"
	"sysmon/internal/scheduler"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "sysmon",
		Short:         "Capture host metric snapshots and evaluate alert thresholds",
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to JSON configuration file")

	root.AddCommand(newSnapshotCmd(&cfgPath))
	root.AddCommand(newWatchCmd(&cfgPath))
	return root
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

// registerCaptureFlags adds the capture toggles shared by snapshot and watch.
func registerCaptureFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().Bool("per-cpu", def.Capture.PerCPU, "Include per-core CPU breakdown")
	cmd.Flags().Bool("processes", def.Capture.IncludeProcesses, "Include top processes")
	cmd.Flags().Int("process-count", def.Capture.ProcessCount, "Number of top processes")
	cmd.Flags().Bool("disk-io", def.Capture.IncludeDiskIO, "Include disk I/O counters")
	cmd.Flags().Bool("interfaces", def.Capture.IncludeNetworkInterfaces, "Include per-interface network counters")
	cmd.Flags().Bool("alerts", def.Capture.CheckAlerts, "Evaluate alert thresholds")
	cmd.Flags().String("mount", def.Mount, "Mount point for disk usage")
}

// applyCaptureFlags overrides config values with explicitly set flags.
func applyCaptureFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("per-cpu") {
		cfg.Capture.PerCPU, _ = flags.GetBool("per-cpu")
	}
	if flags.Changed("processes") {
		cfg.Capture.IncludeProcesses, _ = flags.GetBool("processes")
	}
	if flags.Changed("process-count") {
		cfg.Capture.ProcessCount, _ = flags.GetInt("process-count")
	}
	if flags.Changed("disk-io") {
		cfg.Capture.IncludeDiskIO, _ = flags.GetBool("disk-io")
	}
	if flags.Changed("interfaces") {
		cfg.Capture.IncludeNetworkInterfaces, _ = flags.GetBool("interfaces")
	}
	if flags.Changed("alerts") {
		cfg.Capture.CheckAlerts, _ = flags.GetBool("alerts")
	}
	if flags.Changed("mount") {
		cfg.Mount, _ = flags.GetString("mount")
	}
}

func newMonitor(ctx context.Context, cfg *config.Config) (*monitor.SystemMonitor, error) {
	return monitor.New(ctx, provider.NewGopsutilProvider(), cfg.AlertConfig())
}

func newSnapshotCmd(cfgPath *string) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture one snapshot and print it as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			applyCaptureFlags(cmd, cfg)
			if err := logger.Init(cfg.Logging); err != nil {
				return err
			}

			ctx := cmd.Context()
			m, err := newMonitor(ctx, cfg)
			if err != nil {
				return err
			}

			snapshot, err := m.CaptureSnapshot(ctx, cfg.Options())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(snapshot)
		},
	}

	registerCaptureFlags(cmd)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	return cmd
}

func newWatchCmd(cfgPath *string) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Capture snapshots periodically, printing each as a JSON line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			applyCaptureFlags(cmd, cfg)
			if cmd.Flags().Changed("interval") {
				cfg.Interval = interval
			}
			if err := logger.Init(cfg.Logging); err != nil {
				return err
			}

			return runWatch(cmd.Context(), *cfgPath, cfg)
		},
	}

	registerCaptureFlags(cmd)
	cmd.Flags().DurationVar(&interval, "interval", config.DefaultConfig().Interval, "Capture interval")
	return cmd
}

func runWatch(ctx context.Context, cfgPath string, cfg *config.Config) error {
	log := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := newMonitor(ctx, cfg)
	if err != nil {
		return err
	}

	holder := &monitorHolder{}
	holder.set(m)

	sched := scheduler.New(holder, &stdoutEmitter{}, cfg.Options(), cfg.Interval)
	sched.Start(ctx)
	defer sched.Stop()

	// Hot reload: threshold or toggle changes in the config file take effect
	// without restarting. The monitor is replaced wholesale because its
	// alert config is fixed at construction.
	if cfgPath != "" {
		watcher, err := config.NewFileWatcher(cfgPath, func() {
			next, err := config.Load(cfgPath)
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			replacement, err := newMonitor(ctx, next)
			if err != nil {
				log.Warn().Err(err).Msg("Could not rebuild monitor for new config")
				return
			}
			holder.set(replacement)
			sched.SetOptions(next.Options())
			log.Info().Msg("Configuration reloaded")
		})
		if err != nil {
			return err
		}
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	log.Info().
		Dur("interval", cfg.Interval).
		Str("version", version).
		Msg("sysmon watching")

	<-ctx.Done()
	return nil
}

// monitorHolder lets the watch loop swap the monitor on config reload while
// the scheduler keeps a stable Capturer.
type monitorHolder struct {
	v atomic.Value // *monitor.SystemMonitor
}

func (h *monitorHolder) set(m *monitor.SystemMonitor) {
	h.v.Store(m)
}

func (h *monitorHolder) CaptureSnapshot(ctx context.Context, opts monitor.Options) (*monitor.SystemSnapshot, error) {
	return h.v.Load().(*monitor.SystemMonitor).CaptureSnapshot(ctx, opts)
}

// stdoutEmitter prints one JSON line per snapshot.
type stdoutEmitter struct{}

func (e *stdoutEmitter) Emit(_ context.Context, snapshot *monitor.SystemSnapshot) error {
	return json.NewEncoder(os.Stdout).Encode(snapshot)
}
