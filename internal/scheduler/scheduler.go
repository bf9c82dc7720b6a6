// Package scheduler runs periodic snapshot captures.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"sysmon/internal/logger"
	"sysmon/internal/monitor"
)

// Capturer produces snapshots. Satisfied by *monitor.SystemMonitor.
type Capturer interface {
	CaptureSnapshot(ctx context.Context, opts monitor.Options) (*monitor.SystemSnapshot, error)
}

// Emitter receives each captured snapshot.
type Emitter interface {
	Emit(ctx context.Context, snapshot *monitor.SystemSnapshot) error
}

// captureTimeout bounds one capture. Generous compared to the 1 s CPU
// sampling window so the sample is never cut short.
const captureTimeout = 30 * time.Second

// Scheduler captures snapshots on a fixed interval and hands them to an
// emitter. Captures are serialized: a tick that fires while a capture is
// still running waits for it.
type Scheduler struct {
	capturer Capturer
	emitter  Emitter
	opts     monitor.Options
	interval time.Duration
	clk      clock.Clock

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a scheduler with the given components.
func New(c Capturer, e Emitter, opts monitor.Options, interval time.Duration) *Scheduler {
	return &Scheduler{
		capturer: c,
		emitter:  e,
		opts:     opts,
		interval: interval,
		clk:      clock.New(),
	}
}

// SetOptions replaces the capture options used from the next capture on.
func (s *Scheduler) SetOptions(opts monitor.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
}

func (s *Scheduler) options() monitor.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Start begins the capture loop. A failed capture is logged and the loop
// continues: a periodic agent must survive transient provider failures even
// for required categories.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	log := logger.WithComponent("scheduler")
	log.Info().Dur("interval", s.interval).Msg("Starting capture loop")

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop stops the loop and waits for an in-flight capture to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	log := logger.WithComponent("scheduler")
	log.Info().Msg("Capture loop stopped")
}

// IsRunning reports whether the scheduler is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	// Initial capture before the first tick.
	s.capture(ctx)

	ticker := s.clk.Ticker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.capture(ctx)
		}
	}
}

func (s *Scheduler) capture(ctx context.Context) {
	log := logger.WithComponent("scheduler")

	captureCtx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	start := s.clk.Now()
	snapshot, err := s.capturer.CaptureSnapshot(captureCtx, s.options())
	duration := s.clk.Since(start)

	if err != nil {
		log.Error().Err(err).Dur("duration", duration).Msg("Capture failed")
		return
	}

	if err := s.emitter.Emit(ctx, snapshot); err != nil {
		log.Error().Err(err).Msg("Failed to emit snapshot")
		return
	}

	log.Debug().
		Dur("duration", duration).
		Int("alerts", len(snapshot.Alerts)).
		Msg("Capture completed")
}
